package helpers

import (
	"errors"
	"net/http"

	"campusevents/internal/domain"
)

// MapDomainError maps a service error to an HTTP status and error code.
// It returns ok=false for errors with no client mapping; callers should log
// those and respond 500.
func MapDomainError(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, ErrCodeBadRequest, true
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusUnauthorized, ErrCodeUnauthorized, true
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden, ErrCodeForbidden, true
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, true
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrEventFull),
		errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrCertificateIssued),
		errors.Is(err, domain.ErrNotAttended),
		errors.Is(err, domain.ErrApplicationPending):
		return http.StatusConflict, ErrCodeConflict, true
	}
	return 0, "", false
}
