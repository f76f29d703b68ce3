package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/services/auth"
	"github.com/mcoot/mergington-activities/internal/services/registry"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError.
// Detail repeats the message for clients that only read a flat detail string.
type ErrorResponse struct {
	Error  APIError `json:"error"`
	Detail string   `json:"detail"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeActivityNotFound   = "ACTIVITY_NOT_FOUND"
	CodeAlreadySignedUp    = "ALREADY_SIGNED_UP"
	CodeNotSignedUp        = "NOT_SIGNED_UP"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError, Detail: he.apiError.Message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, "Unauthorized"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}

	// Registry errors
	case errors.Is(err, model.ErrActivityNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeActivityNotFound, "Activity not found"}}
	case errors.Is(err, model.ErrAlreadySignedUp):
		return &httpError{http.StatusBadRequest, APIError{CodeAlreadySignedUp, "Student is already signed up"}}
	case errors.Is(err, model.ErrNotSignedUp):
		return &httpError{http.StatusBadRequest, APIError{CodeNotSignedUp, "Student is not signed up for this activity"}}
	case errors.Is(err, registry.ErrEmailRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Email is required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a route-not-found error
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
