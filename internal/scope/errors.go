package scope

import (
	"errors"
	"fmt"
)

var (
	// ErrMismatch is matched by every *MismatchError.
	ErrMismatch = errors.New("scope mismatch")
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by storage when a write collides with existing
	// data: duplicate keys or rows still referenced elsewhere.
	ErrConflict = errors.New("conflict")
)

// MismatchError is returned when a view is asked to read or write an entity
// outside the scope it was built for.
type MismatchError struct {
	Kind     string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("scope mismatch: %s %s is outside %s", e.Kind, e.Actual, e.Expected)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Mismatch builds a *MismatchError for a scope of the given kind.
func Mismatch(kind string, expected, actual fmt.Stringer) error {
	return &MismatchError{
		Kind:     kind,
		Expected: expected.String(),
		Actual:   actual.String(),
	}
}
