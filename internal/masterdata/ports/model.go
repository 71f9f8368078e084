package ports

import (
	"time"
)

// Port types.
const (
	TypePort    = "port"
	TypeAirport = "airport"
)

// Port represents a sea port or an airport.
type Port struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=150"`
	Code      string    `json:"code" validate:"required,min=2,max=10"`
	Type      string    `json:"type" validate:"required,oneof=port airport"`
	CityID    int64     `json:"city_id" validate:"gt=0"`
	CityName  string    `json:"city_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
