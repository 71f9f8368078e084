package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	g := Generator{Now: func() time.Time { return time.Date(2025, 10, 23, 17, 10, 59, 0, time.UTC) }}

	assert.Equal(t, "JOB-202510231710", g.Next(PrefixJob))
	assert.Equal(t, "MAWB-202510231710", g.Next(PrefixMasterAWB))
	assert.Equal(t, "HAWB-202510231710", g.Next(PrefixHouseAWB))
}

func TestEnsureKeepsProvidedNumber(t *testing.T) {
	g := Generator{Now: func() time.Time { return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC) }}

	assert.Equal(t, "JOB-CUSTOM", g.Ensure(" JOB-CUSTOM ", PrefixJob))
	assert.Equal(t, "JOB-202501020304", g.Ensure("", PrefixJob))
}
