package enrich

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup response carries no usable name.
var ErrNotFound = errors.New("name not found")

// LookupError represents a failed enrichment lookup.
type LookupError struct {
	Key     string
	Message string
	Cause   error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lookup error for %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("lookup error for %s: %s", e.Key, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}
