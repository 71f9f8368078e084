// Package numbering generates document numbers of the form PREFIX-YYYYMMDDHHmm.
package numbering

import (
	"strings"
	"time"
)

// Document prefixes.
const (
	PrefixJob       = "JOB"
	PrefixMasterAWB = "MAWB"
	PrefixHouseAWB  = "HAWB"
)

const layout = "200601021504"

// Generator produces numbers from a clock.
type Generator struct {
	Now func() time.Time
}

// New returns a generator on the system clock.
func New() Generator {
	return Generator{Now: time.Now}
}

// Next returns prefix-YYYYMMDDHHmm for the current minute.
func (g Generator) Next(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return prefix + "-" + now().Format(layout)
}

// Ensure returns current when it is set, otherwise a fresh number.
func (g Generator) Ensure(current, prefix string) string {
	if s := strings.TrimSpace(current); s != "" {
		return s
	}
	return g.Next(prefix)
}
