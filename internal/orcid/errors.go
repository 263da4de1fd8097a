package orcid

import (
	"errors"
	"fmt"
)

// ErrPrimaryEmail is returned when person.xml does not flag exactly one
// email as primary.
var ErrPrimaryEmail = errors.New("exactly one primary email required")

// Error represents an error while reading or normalizing a profile export.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("orcid error: %s: %s: %v", e.Path, e.Message, e.Cause)
		}
		return fmt.Sprintf("orcid error: %s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("orcid error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("orcid error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
