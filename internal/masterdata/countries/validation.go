package countries

import (
	"strings"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

func normalize(c Country) Country {
	c.Name = strings.TrimSpace(c.Name)
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Capital = strings.TrimSpace(c.Capital)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.Language = strings.TrimSpace(c.Language)
	return c
}

func (s *Service) validate(c Country) error {
	return rootshared.ValidateStruct(c)
}
