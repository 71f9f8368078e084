package countries

import (
	"time"
)

// Country represents a country entity
type Country struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Code      string    `json:"code" validate:"required,len=3,alpha"`
	Capital   string    `json:"capital" validate:"max=100"`
	Currency  string    `json:"currency" validate:"max=10"`
	Language  string    `json:"language" validate:"max=50"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
