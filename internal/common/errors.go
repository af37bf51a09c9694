// Package common defines the error taxonomy shared by the SINTAC client
// layers. Sentinel values are matched with errors.Is; typed errors carry
// details and are matched with errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors.
	ErrAircraftNotFound = errors.New("aircraft registration not found")
	ErrPilotIDNotFound  = errors.New("could not resolve pilot logbook id")
)

// RemoteError carries the message of an in-band alert signal found in a
// response body. The portal answers 200 OK even on failure; the embedded
// alert script is its only error channel, so the message text is all the
// caller gets.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "portal alert: " + e.Message
}

// ValidationError reports a logbook field that failed local validation.
// It always names the field and keeps the offending raw value.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}
