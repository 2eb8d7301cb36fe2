package httpapi

import (
	"encoding/json"
	"net/http"

	"swapman/internal/manager"
	"swapman/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case manager.IsValidation(err):
		return http.StatusBadRequest
	case manager.IsNotFound(err):
		return http.StatusNotFound
	case manager.IsConflict(err):
		return http.StatusConflict
	case manager.IsPayloadTooLarge(err):
		return http.StatusRequestEntityTooLarge
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeServiceError maps and writes a service error as a JSON payload.
func writeServiceError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusForError(err), err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
