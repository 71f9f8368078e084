package houseawbs

import "time"

// HouseAWB is the forwarder's waybill issued to one shipper under a job.
type HouseAWB struct {
	ID            int64     `json:"id"`
	HouseNumber   string    `json:"house_number" validate:"required,max=50"`
	JobID         int64     `json:"job_id" validate:"gt=0"`
	JobNumber     string    `json:"job_number,omitempty"`
	MasterID      *int64    `json:"master_id,omitempty"`
	MasterNumber  string    `json:"master_number,omitempty"`
	ShipperID     int64     `json:"shipper_id" validate:"gt=0"`
	ShipperName   string    `json:"shipper_name,omitempty"`
	ConsigneeID   int64     `json:"consignee_id" validate:"gt=0"`
	ConsigneeName string    `json:"consignee_name,omitempty"`
	IssueDate     time.Time `json:"issue_date" validate:"required"`
	Status        string    `json:"status" validate:"required,oneof=draft issued cancelled"`
	IsActive      bool      `json:"is_active"`
	Items         []Item    `json:"items" validate:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item is one commodity line on a house AWB.
type Item struct {
	ID            int64   `json:"id,omitempty"`
	HouseID       int64   `json:"house_awb_id,omitempty"`
	CommodityID   int64   `json:"commodity_id" validate:"gt=0"`
	CommodityName string  `json:"commodity_name,omitempty"`
	Description   string  `json:"description" validate:"required,max=500"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	Unit          string  `json:"unit" validate:"required,max=20"`
	Volume        float64 `json:"volume" validate:"gte=0"`
	Weight        float64 `json:"weight" validate:"gte=0"`
	PackageCount  int     `json:"package_count" validate:"gte=0"`
	PackageType   string  `json:"package_type" validate:"max=50"`
	Value         float64 `json:"value" validate:"gte=0"`
	Currency      string  `json:"currency" validate:"omitempty,len=3"`
}

// Totals sums the item lines.
func (h HouseAWB) Totals() (weight, volume float64, packages int) {
	for _, it := range h.Items {
		weight += it.Weight
		volume += it.Volume
		packages += it.PackageCount
	}
	return weight, volume, packages
}
