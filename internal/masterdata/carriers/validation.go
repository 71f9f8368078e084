package carriers

import (
	"strings"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

func normalize(c Carrier) Carrier {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Type = strings.ToLower(strings.TrimSpace(c.Type))
	c.ContactPerson = strings.TrimSpace(c.ContactPerson)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

func (s *Service) validate(c Carrier) error {
	return rootshared.ValidateStruct(c)
}
