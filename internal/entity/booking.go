package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is a completed bin-clean order. It is a flat record: status is a
// free-text field set by admin action or by the confirmation-email worker,
// there is no transition table behind it.
type Booking struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Postcode      string          `json:"postcode"`
	Bins          json.RawMessage `json:"bins"` // selected bins, variable shape
	CollectionDay string          `json:"collection_day"`
	PaymentMethod string          `json:"payment_method"`
	PricePence    int             `json:"price_pence"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewBooking(name, email, phone, address, postcode string, bins json.RawMessage, collectionDay, paymentMethod string, pricePence int) (*Booking, error) {
	b := &Booking{
		ID:            uuid.New().String(),
		Name:          name,
		Email:         email,
		Phone:         phone,
		Address:       address,
		Postcode:      postcode,
		Bins:          bins,
		CollectionDay: collectionDay,
		PaymentMethod: paymentMethod,
		PricePence:    pricePence,
		Status:        BookingPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Booking) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.Email == "" {
		return errors.New("email is required")
	}
	if b.Address == "" {
		return errors.New("address is required")
	}
	if b.Postcode == "" {
		return errors.New("postcode is required")
	}
	return nil
}
