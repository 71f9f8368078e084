package shared

import (
	"fmt"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

// InvalidID reports a non-positive identifier for the named entity.
func InvalidID(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, rootshared.ErrInvalidID)
}
