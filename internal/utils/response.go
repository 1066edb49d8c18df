package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobprep/api/internal/models"
)

// JSON writes a JSON response with status code
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes an error body that always carries a message
func JSONError(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, models.ErrorResponse{Code: code, Message: message})
}

// StatusForError maps the shared error categories onto HTTP statuses.
func StatusForError(err error) (int, string) {
	var errResp *models.ErrorResponse
	switch {
	case errors.As(err, &errResp):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// WriteError writes err using StatusForError. Server errors get fallback as their
// message so store or provider details never leave the process.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	status, code := StatusForError(err)

	var errResp *models.ErrorResponse
	if errors.As(err, &errResp) {
		JSON(w, status, *errResp)
		return
	}
	message := fallback
	if status != http.StatusInternalServerError {
		message = err.Error()
	}
	JSONError(w, status, code, message)
}
