package jobs

import (
	"time"
)

// Job statuses.
const (
	StatusOpen     = "open"
	StatusInvoiced = "invoiced"
	StatusClosed   = "closed"
)

// Job types.
const (
	TypeExport = "export"
	TypeImport = "import"
)

// Statuses lists every job status.
func Statuses() []string {
	return []string{StatusOpen, StatusInvoiced, StatusClosed}
}

// Job is a shipment file that master and house AWBs hang off.
type Job struct {
	ID                  int64      `json:"id"`
	JobNumber           string     `json:"job_number" validate:"required,max=50"`
	JobType             string     `json:"job_type" validate:"required,oneof=export import"`
	ShipperID           int64      `json:"shipper_id" validate:"gt=0"`
	ShipperName         string     `json:"shipper_name,omitempty"`
	ConsigneeID         int64      `json:"consignee_id" validate:"gt=0"`
	ConsigneeName       string     `json:"consignee_name,omitempty"`
	NotifyPartyID       *int64     `json:"notify_party_id,omitempty"`
	CarrierID           int64      `json:"carrier_id" validate:"gt=0"`
	CarrierName         string     `json:"carrier_name,omitempty"`
	OriginPortID        int64      `json:"origin_port_id" validate:"gt=0"`
	OriginPortName      string     `json:"origin_port_name,omitempty"`
	DestinationPortID   int64      `json:"destination_port_id" validate:"gt=0"`
	DestinationPortName string     `json:"destination_port_name,omitempty"`
	LoadingPortID       *int64     `json:"loading_port_id,omitempty"`
	DischargePortID     *int64     `json:"discharge_port_id,omitempty"`
	SalesPersonID       *int64     `json:"sales_person_id,omitempty"`
	JobDate             time.Time  `json:"job_date" validate:"required"`
	Status              string     `json:"status" validate:"required,oneof=open invoiced closed"`
	GrossWeight         float64    `json:"gross_weight" validate:"gte=0"`
	ChargeableWeight    float64    `json:"chargeable_weight" validate:"gte=0"`
	PackageCount        int        `json:"package_count" validate:"gte=0"`
	ETA                 *time.Time `json:"eta,omitempty"`
	ETD                 *time.Time `json:"etd,omitempty"`
	ClosedDate          *time.Time `json:"closed_date,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
