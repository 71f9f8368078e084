package masterawbs

import "time"

// AWB statuses shared by master and house documents.
const (
	StatusDraft     = "draft"
	StatusIssued    = "issued"
	StatusCancelled = "cancelled"
)

// Statuses lists every AWB status.
func Statuses() []string {
	return []string{StatusDraft, StatusIssued, StatusCancelled}
}

// MasterAWB is the carrier's air waybill covering a consolidated job.
type MasterAWB struct {
	ID           int64     `json:"id"`
	MasterNumber string    `json:"master_number" validate:"required,max=50"`
	JobID        int64     `json:"job_id" validate:"gt=0"`
	JobNumber    string    `json:"job_number,omitempty"`
	CarrierID    int64     `json:"carrier_id" validate:"gt=0"`
	CarrierName  string    `json:"carrier_name,omitempty"`
	IssueDate    time.Time `json:"issue_date" validate:"required"`
	Status       string    `json:"status" validate:"required,oneof=draft issued cancelled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
