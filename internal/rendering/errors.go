// Package rendering turns a normalized profile into the layout blocks of a CV
// and writes the finished document.
package rendering

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntries is returned when a section selects nothing from the profile.
	ErrNoEntries = errors.New("no matching entries")
	// ErrUnknownSection is returned for section kinds no renderer handles.
	ErrUnknownSection = errors.New("unknown section kind")
)

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
