package parties

import (
	"time"
)

// Party types.
const (
	TypeConsignee = "consignee"
	TypeShipper   = "shipper"
	TypeCarrier   = "carrier"
	TypeVendor    = "vendor"
)

// Types lists every party type.
func Types() []string {
	return []string{TypeConsignee, TypeShipper, TypeCarrier, TypeVendor}
}

// Party represents a customer, shipper, consignee or vendor.
type Party struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name" validate:"required,min=2,max=200"`
	ShortName        string    `json:"short_name" validate:"max=50"`
	Type             string    `json:"type" validate:"required,oneof=consignee shipper carrier vendor"`
	BillingAddress   string    `json:"billing_address" validate:"max=500"`
	CorporateAddress string    `json:"corporate_address" validate:"max=500"`
	CreditLimit      float64   `json:"credit_limit" validate:"gte=0"`
	CreditDays       int       `json:"credit_days" validate:"gte=0"`
	TDSRate          float64   `json:"tds_rate" validate:"gte=0,lte=100"`
	TDSApplicable    bool      `json:"tds_applicable"`
	ContactPerson    string    `json:"contact_person" validate:"max=100"`
	Phone            string    `json:"phone" validate:"max=30"`
	Email            string    `json:"email" validate:"omitempty,email"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
