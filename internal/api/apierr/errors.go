package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/roster"
)

// ErrorResponse is the body of every error reply
// The browser front-end only reads Error
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidation      = "VALIDATION_FAILED"
	CodeTeamNotFound    = "TEAM_NOT_FOUND"
	CodeNoSavedKeepers  = "NO_SAVED_KEEPERS"
	CodeRosterError     = "ROSTER_ERROR"
	CodeStorageError    = "STORAGE_ERROR"
	CodeDraftTrackerErr = "DRAFT_TRACKER_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// NoSavedKeepersMessage is shared by a missing record and a wrong password
const NoSavedKeepersMessage = "No saved keepers found for this team"

// httpError combines an HTTP status code with a response body
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Error
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// Status returns the HTTP status WriteError would use for err
func Status(err error) int {
	return toHTTPError(err).status
}

// Message returns the user-facing message WriteError would use for err
func Message(err error) string {
	return toHTTPError(err).body.Error
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return &httpError{http.StatusBadRequest, ErrorResponse{validationErr.Reason, CodeValidation}}
	}

	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Roster file could not be read", CodeRosterError}}
	}

	var persistErr *model.PersistenceError
	if errors.As(err, &persistErr) {
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Could not save keepers, please try again", CodeStorageError}}
	}

	var apiErr *model.ExternalAPIError
	if errors.As(err, &apiErr) {
		return &httpError{http.StatusBadGateway, ErrorResponse{apiErr.Error(), CodeDraftTrackerErr}}
	}

	switch {
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{"Team not found", CodeTeamNotFound}}
	case errors.Is(err, model.ErrNoSavedKeepers),
		errors.Is(err, model.ErrRecordNotFound),
		errors.Is(err, model.ErrDecryption):
		return &httpError{http.StatusNotFound, ErrorResponse{NoSavedKeepersMessage, CodeNoSavedKeepers}}
	case errors.Is(err, roster.ErrSeasonNotFound):
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Roster for the current season is not available", CodeRosterError}}
	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{message, CodeInvalidRequest}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
}
