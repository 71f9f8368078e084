package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/shared"
)

func TestRespondErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("create: %w", shared.NewValidationError(map[string]string{"name": "is required"})))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "is required", env.Errors["name"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(shared.ErrNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(shared.ErrDuplicate))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(shared.ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, StatusFor(shared.ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(fmt.Errorf("boom")))
}
