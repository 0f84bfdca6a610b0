package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	"campusevents/internal/delivery/http/helpers"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// pathUUID reads a path value and validates it as a UUID. On failure it writes
// a 400 and returns ok=false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if !uuidRegex.MatchString(v) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return v, true
}

// writeServiceError maps a service error onto the response envelope, logging
// and responding 500 for errors without a client mapping.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if status, code, ok := helpers.MapDomainError(err); ok {
		helpers.WriteJSONError(w, status, code, err.Error())
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
