package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec is wrapped by every *SpecError.
	ErrInvalidSpec = errors.New("invalid specification")
	// ErrLayoutInconsistency is wrapped by every *LayoutError.
	ErrLayoutInconsistency = errors.New("layout inconsistency")
)

// SpecError reports a chipboard, part spec or kerf that cannot be packed.
type SpecError struct {
	Subject string // e.g. `chipboard "Oak"` or `part "Shelf" (a1b2c3d4)`
	Field   string
	Reason  string
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidSpec, e.Subject, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s %s", ErrInvalidSpec, e.Subject, e.Field, e.Reason)
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

// LayoutError reports a placed part that breaks the bounds or no-overlap rules.
// OtherID is set when the problem is an overlapping pair.
type LayoutError struct {
	PartID  string
	OtherID string
	Reason  string
}

func (e *LayoutError) Error() string {
	if e.OtherID == "" {
		return fmt.Sprintf("%s: part %s %s", ErrLayoutInconsistency, e.PartID, e.Reason)
	}
	return fmt.Sprintf("%s: parts %s and %s %s", ErrLayoutInconsistency, e.PartID, e.OtherID, e.Reason)
}

func (e *LayoutError) Unwrap() error { return ErrLayoutInconsistency }
