package entity

import "time"

// ServiceArea is one outward code (the "M1" in "M1 1AA") the round covers.
type ServiceArea struct {
	OutwardCode string    `json:"outward_code"`
	AreaName    string    `json:"area_name"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
