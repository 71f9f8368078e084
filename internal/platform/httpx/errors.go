package httpx

import (
	"errors"
	"net/http"

	"github.com/freightdesk/freightdesk/internal/shared"
)

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrDuplicate), errors.Is(err, shared.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrInvalidID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an unsuccessful envelope.
func RespondError(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), shared.UserSafeMessage(err), shared.FieldErrors(err))
}
