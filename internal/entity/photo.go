package entity

import (
	"time"

	"github.com/google/uuid"
)

// Photo is gallery metadata for the marketing site. The image itself lives
// in object storage; only the URL is recorded here.
type Photo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category,omitempty"` // before | after | team
	SortOrder int       `json:"sort_order"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPhoto(title, url, category string, sortOrder int) *Photo {
	return &Photo{
		ID:        uuid.New().String(),
		Title:     title,
		URL:       url,
		Category:  category,
		SortOrder: sortOrder,
		Visible:   true,
		CreatedAt: time.Now(),
	}
}
