package compiler

import (
	"errors"
	"fmt"
)

// Compilation error codes (E200-E299)
const (
	ErrIntentNotUnderstood = "E201" // nothing actionable in the intent
	ErrMissingAirport      = "E202" // volume query without airport or year
	ErrMissingYear         = "E203" // volume query without year (and not airport+month)
	ErrUnrecognizedAirport = "E204" // airport filter not in the airport table
)

// Missing field names reported in Error.Missing.
const (
	FieldAirport = "airport"
	FieldYear    = "year"
)

// Error reports an intent that cannot be compiled into a plan.
//
// E201-E203 all ask the user to clarify; Missing lists which parameters to
// ask for. E204 names the airport that was not recognized.
type Error struct {
	Code    string   `json:"code"`
	Field   string   `json:"field"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`

	// Value is the offending input, when there is one.
	Value string `json:"value,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsIntentNotUnderstood returns true for errors that need the user to
// clarify the question (E201, E202, E203).
func IsIntentNotUnderstood(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		switch ce.Code {
		case ErrIntentNotUnderstood, ErrMissingAirport, ErrMissingYear:
			return true
		}
	}
	return false
}

// IsUnrecognizedAirport returns true if the error is E204.
func IsUnrecognizedAirport(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrUnrecognizedAirport
	}
	return false
}

// MissingFields returns the parameters a clarification should ask for.
// Nil when err is not a compilation error.
func MissingFields(err error) []string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Missing
	}
	return nil
}
