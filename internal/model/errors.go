package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Roster errors
	ErrTeamNotFound = errors.New("team not found")

	// Keeper record errors
	ErrRecordNotFound  = errors.New("keeper record not found")
	ErrDecryption      = errors.New("unable to decrypt keepers")
	ErrInvalidTeamName = errors.New("invalid team name")

	// ErrNoSavedKeepers is the only decrypt failure callers see, so a wrong
	// password cannot be told apart from a team that never saved
	ErrNoSavedKeepers = errors.New("no saved keepers found for this team")

	// Replay errors
	ErrOwnerNotFound        = errors.New("owner not found")
	ErrRosterPlayerNotFound = errors.New("could not find roster info")
	ErrRemotePlayerNotFound = errors.New("could not find matching API player")
)

// ParseError reports a roster source that cannot be turned into a snapshot
type ParseError struct {
	Line   int // 1-based, 0 when not tied to a line
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("roster parse error on line %d: %s", e.Line, e.Reason)
	}
	return "roster parse error: " + e.Reason
}

// ValidationError is a recoverable rejection of user input
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError creates a ValidationError
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ExternalAPIError wraps a failed call to the draft tracker
type ExternalAPIError struct {
	Status int    // 0 when the request never got a response
	Body   string
	Err    error
}

func (e *ExternalAPIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("draft tracker request failed: %v", e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
