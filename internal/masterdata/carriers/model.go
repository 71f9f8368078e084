package carriers

import (
	"time"
)

// Carrier types.
const (
	TypeAirline      = "airline"
	TypeShippingLine = "shipping_line"
	TypeTrucking     = "trucking"
	TypeRailway      = "railway"
)

// Types lists every carrier type.
func Types() []string {
	return []string{TypeAirline, TypeShippingLine, TypeTrucking, TypeRailway}
}

// Carrier represents an airline, shipping line or haulier.
type Carrier struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required,min=2,max=150"`
	Code          string    `json:"code" validate:"required,min=2,max=10"`
	Type          string    `json:"type" validate:"required,oneof=airline shipping_line trucking railway"`
	ContactPerson string    `json:"contact_person" validate:"max=100"`
	Email         string    `json:"email" validate:"omitempty,email"`
	Phone         string    `json:"phone" validate:"max=30"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
