package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/autocare/autocare/internal/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes err with the status mapped from its code. Internal
// errors hide their cause from the client.
func WriteError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Code: string(apperrors.InternalError), Error: "Internal server error"}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		resp.Code = string(appErr.Code)
		resp.Details = appErr.Details
		if appErr.Code != apperrors.InternalError {
			resp.Error = appErr.Message
		}
	}
	writeJSON(w, resp, StatusFor(apperrors.ErrorCode(resp.Code)))
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.InvalidInput:
		return http.StatusUnprocessableEntity
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a successful envelope {success: true, ...fields}.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	writeJSON(w, data, status)
}

func writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// InternalError writes a 500 response.
func InternalError(w http.ResponseWriter, message string, err error) {
	WriteError(w, apperrors.Internal(message, err))
}

// BadRequest writes a 422 response with a single message.
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, apperrors.Invalid(message))
}
