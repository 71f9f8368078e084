package parties

import (
	"strings"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

func normalize(p Party) Party {
	p.Name = strings.TrimSpace(p.Name)
	p.ShortName = strings.TrimSpace(p.ShortName)
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.ContactPerson = strings.TrimSpace(p.ContactPerson)
	p.Phone = strings.TrimSpace(p.Phone)
	if !p.TDSApplicable {
		p.TDSRate = 0
	}
	return p
}

func (s *Service) validate(p Party) error {
	if err := rootshared.ValidateStruct(p); err != nil {
		if fields := rootshared.FieldErrors(err); fields != nil {
			if _, ok := fields["tds_rate"]; ok {
				fields["tds_rate"] = "TDS rate must be between 0 and 100"
			}
			if _, ok := fields["type"]; ok {
				fields["type"] = "Invalid party type"
			}
		}
		return err
	}
	return nil
}
