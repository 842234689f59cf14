package usecase

import "encoding/json"

type CaptureFormInput struct {
	FormData   map[string]interface{} `json:"formData"`
	PageURL    string                 `json:"pageUrl"`
	UserAgent  string                 `json:"userAgent"`
	TrackingID string                 `json:"trackingId"`
}

type CaptureFormOutput struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	FormID  string `json:"formId,omitempty"`
}

type LogContactInput struct {
	FormID  string `json:"formId"`
	Type    string `json:"type"` // phone | email
	Details string `json:"details"`
}

type LogContactOutput struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type SendRecoveryEmailInput struct {
	FormID       string                 `json:"formId"`
	Email        string                 `json:"email"`
	Template     string                 `json:"template"`
	CustomerName string                 `json:"customerName"`
	Postcode     string                 `json:"postcode"`
	FormData     map[string]interface{} `json:"formData"`
}

type SendRecoveryEmailOutput struct {
	Success    bool   `json:"success"`
	Status     string `json:"status"`
	TrackingID string `json:"trackingId"`
}

type CreateBookingInput struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Postcode      string          `json:"postcode"`
	Bins          json.RawMessage `json:"bins"`
	CollectionDay string          `json:"collectionDay"`
	PaymentMethod string          `json:"paymentMethod"`
}

type CreateBookingOutput struct {
	Success    bool   `json:"success"`
	BookingID  string `json:"bookingId"`
	Status     string `json:"status"`
	PricePence int    `json:"pricePence"`
}

type CheckPostcodeInput struct {
	Postcode string `json:"postcode"`
}

type CheckPostcodeOutput struct {
	Available bool   `json:"available"`
	Postcode  string `json:"postcode"`
	Area      string `json:"area,omitempty"`
	Message   string `json:"message"`
}
