package commodities

import (
	"time"
)

// Commodity represents a class of goods carried on house AWBs.
type Commodity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,min=2,max=150"`
	Code        string    `json:"code" validate:"required,min=2,max=20"`
	Category    string    `json:"category" validate:"max=100"`
	Description string    `json:"description" validate:"max=500"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
