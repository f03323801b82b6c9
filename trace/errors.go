package trace

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter matches every InvalidParameterError through errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a generation parameter that violates its
// constraint.
type InvalidParameterError struct {
	Field      string
	Constraint string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Constraint)
}

// Is reports whether target is ErrInvalidParameter.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParameter(field, constraint string) error {
	return &InvalidParameterError{Field: field, Constraint: constraint}
}
