package layout

import "fmt"

// Error represents a layout or PDF backend failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("layout error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
