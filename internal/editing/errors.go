package editing

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound is returned when an edit names an id missing from its collection.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUnknownCollection is returned for collection names other than the profile's.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownField is returned when Override names a field the record does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrDerivedField is returned when Override targets a name derived at load time.
	ErrDerivedField = errors.New("derived field cannot be overridden")
)

// EditError represents a failed profile edit.
type EditError struct {
	Op      string
	Message string
	Cause   error
}

func (e *EditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("edit error: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("edit error: %s: %s", e.Op, e.Message)
}

func (e *EditError) Unwrap() error {
	return e.Cause
}
