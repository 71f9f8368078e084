package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countryInput struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Code      string  `json:"code" validate:"required,len=3"`
	Email     string  `json:"email" validate:"omitempty,email"`
	CountryID int64   `json:"country_id" validate:"gt=0"`
	TDSRate   float64 `json:"tds_rate" validate:"gte=0,lte=100"`
	Type      string  `json:"type" validate:"oneof=port airport"`
}

func TestValidateStructFieldMessages(t *testing.T) {
	err := ValidateStruct(countryInput{Name: "A", Code: "ABCD", Email: "nope", TDSRate: 120, Type: "dock"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	fields := FieldErrors(err)
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])
	assert.Equal(t, "Code must be exactly 3 characters", fields["code"])
	assert.Equal(t, "Invalid email address", fields["email"])
	assert.Equal(t, "Country is required", fields["country_id"])
	assert.Equal(t, "Tds Rate must be at most 100", fields["tds_rate"])
	assert.Equal(t, "Type must be one of: port, airport", fields["type"])
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(countryInput{Name: "Kenya", Code: "KEN", CountryID: 1, Type: "port"})
	assert.NoError(t, err)
}

func TestHumanizeField(t *testing.T) {
	assert.Equal(t, "Country", HumanizeField("country_id"))
	assert.Equal(t, "Contact Person", HumanizeField("contact_person"))
}
