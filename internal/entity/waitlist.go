package entity

import (
	"time"

	"github.com/google/uuid"
)

type WaitlistStatus string

const (
	WaitlistPending   WaitlistStatus = "pending"
	WaitlistContacted WaitlistStatus = "contacted"
	WaitlistConverted WaitlistStatus = "converted"
)

// WaitlistEntry is a visitor outside the current service area who asked to
// be told when coverage arrives. Status only changes by explicit admin
// action, never automatically.
type WaitlistEntry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Postcode  string         `json:"postcode"`
	Status    WaitlistStatus `json:"status"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// WaitlistStats is the aggregation the admin dashboard shows.
type WaitlistStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Contacted int `json:"contacted"`
	Converted int `json:"converted"`
}

func NewWaitlistEntry(name, email, phone, postcode string) *WaitlistEntry {
	now := time.Now()
	return &WaitlistEntry{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Postcode:  postcode,
		Status:    WaitlistPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func IsValidWaitlistStatus(s WaitlistStatus) bool {
	return s == WaitlistPending || s == WaitlistContacted || s == WaitlistConverted
}
