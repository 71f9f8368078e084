package cities

import (
	"time"
)

// City represents a city entity
type City struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Code        string    `json:"code" validate:"required,min=2,max=10"`
	CountryID   int64     `json:"country_id" validate:"gt=0"`
	CountryName string    `json:"country_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
