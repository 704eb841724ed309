package api

import (
	"errors"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/collection"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/session"
)

// MapErrorToStatusCode translates service-layer errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, collection.ErrSetNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, collection.ErrCapacityExceeded):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidTheme),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// isDomainValidationError matches the per-field sentinel errors the domain
// constructors return.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrSetIDEmpty,
		domain.ErrSetNameEmpty,
		domain.ErrSetIconEmpty,
		domain.ErrTagIDEmpty,
		domain.ErrTagNameEmpty,
		domain.ErrTagIDDuplicate,
		domain.ErrCardIDEmpty,
		domain.ErrCardSetIDEmpty,
		domain.ErrCardTopTextEmpty,
		domain.ErrCardBottomTextEmpty,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
