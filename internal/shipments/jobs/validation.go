package jobs

import (
	"strings"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

func (s *Service) normalize(j Job) Job {
	j.JobNumber = strings.ToUpper(strings.TrimSpace(j.JobNumber))
	j.JobType = strings.ToLower(strings.TrimSpace(j.JobType))
	j.Status = strings.ToLower(strings.TrimSpace(j.Status))
	return j
}

func (s *Service) validate(j Job) error {
	fields := map[string]string{}
	if err := rootshared.ValidateStruct(j); err != nil {
		f := rootshared.FieldErrors(err)
		if f == nil {
			return err
		}
		fields = f
	}
	if j.OriginPortID > 0 && j.OriginPortID == j.DestinationPortID {
		fields["destination_port_id"] = "Destination port must differ from origin port"
	}
	if j.ETA != nil && j.ETD != nil && j.ETA.Before(*j.ETD) {
		fields["eta"] = "ETA cannot be before ETD"
	}
	if len(fields) > 0 {
		return rootshared.NewValidationError(fields)
	}
	return nil
}

func validStatus(status string) bool {
	for _, s := range Statuses() {
		if s == status {
			return true
		}
	}
	return false
}

// checkTransition rejects reopening or re-invoicing a closed job.
func checkTransition(from, to string) error {
	if from == StatusClosed && to != StatusClosed {
		return rootshared.NewValidationError(map[string]string{"status": "Closed jobs cannot change status"})
	}
	return nil
}
