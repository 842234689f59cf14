package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FormStatus string

const (
	StatusNeverContacted   FormStatus = "never_contacted"
	StatusAbandoned        FormStatus = "abandoned"
	StatusPhoneCalled      FormStatus = "phone_called"
	StatusEmailSent        FormStatus = "email_sent"
	StatusResponded        FormStatus = "responded"
	StatusMultipleAttempts FormStatus = "multiple_attempts"
	StatusUnqualified      FormStatus = "unqualified"
)

const (
	ContactPhone = "phone"
	ContactEmail = "email"
)

// AbandonedForm is a booking form snapshot captured because the visitor
// left before submitting. ContactHistory is loaded from the contact_events
// table and is append-only.
type AbandonedForm struct {
	FormID         string          `json:"form_id"`
	FormData       json.RawMessage `json:"form_data"`
	PageURL        string          `json:"page_url,omitempty"`
	UserAgent      string          `json:"user_agent,omitempty"`
	TrackingID     string          `json:"tracking_id,omitempty"`
	Status         FormStatus      `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	ContactHistory []ContactEvent  `json:"contact_history"`
	CreatedAt      time.Time       `json:"created_at"`
	AbandonedAt    time.Time       `json:"abandoned_at"`
}

// ContactEvent is one outreach attempt (phone call or recovery email)
// against an abandoned form. Email events carry the pixel tracking id and
// are mutated in place once when the open pixel fires.
type ContactEvent struct {
	ID          string     `json:"id"`
	FormID      string     `json:"form_id"`
	Type        string     `json:"type"` // phone | email
	Details     string     `json:"details,omitempty"`
	Template    string     `json:"template,omitempty"`
	TrackingID  string     `json:"tracking_id,omitempty"`
	EmailOpened bool       `json:"email_opened"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

func NewAbandonedForm(formData json.RawMessage, pageURL, userAgent, trackingID string) *AbandonedForm {
	now := time.Now()
	return &AbandonedForm{
		FormID:      uuid.New().String(),
		FormData:    formData,
		PageURL:     pageURL,
		UserAgent:   userAgent,
		TrackingID:  trackingID,
		Status:      StatusNeverContacted,
		CreatedAt:   now,
		AbandonedAt: now,
	}
}

// valid admin-settable statuses, used by the PATCH endpoint
func IsValidFormStatus(s FormStatus) bool {
	switch s {
	case StatusNeverContacted, StatusAbandoned, StatusPhoneCalled,
		StatusEmailSent, StatusResponded, StatusMultipleAttempts, StatusUnqualified:
		return true
	}
	return false
}

// DeriveStatus replays the ordered contact history and returns the status
// it implies. The result depends only on the history, so a record's status
// can always be recomputed from its events:
//
//   - a phone event whose details mention "interested" marks the prospect
//     as responded
//   - the first contact against a fresh record becomes phone_called or
//     email_sent
//   - any contact after that becomes multiple_attempts
//   - an opened recovery email upgrades email_sent to responded
func DeriveStatus(events []ContactEvent) FormStatus {
	status := StatusNeverContacted
	for i, ev := range events {
		switch ev.Type {
		case ContactPhone:
			if strings.Contains(strings.ToLower(ev.Details), "interested") {
				status = StatusResponded
				continue
			}
			if status == StatusNeverContacted || status == StatusAbandoned {
				status = StatusPhoneCalled
			} else {
				status = StatusMultipleAttempts
			}
		case ContactEmail:
			if status == StatusNeverContacted || status == StatusAbandoned {
				status = StatusEmailSent
			} else if i > 0 {
				status = StatusMultipleAttempts
			}
		}
	}

	// opens always land after the append that produced them, so they are
	// applied last: only a record still sitting at email_sent is upgraded
	if status == StatusEmailSent {
		for _, ev := range events {
			if ev.Type == ContactEmail && ev.EmailOpened {
				return StatusResponded
			}
		}
	}
	return status
}

// HasContactInfo reports whether a raw form snapshot contains at least one
// of the contact fields worth storing a record for.
func HasContactInfo(formData map[string]interface{}) bool {
	for _, key := range []string{"name", "firstName", "lastName", "email", "phone"} {
		if v, ok := formData[key].(string); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
