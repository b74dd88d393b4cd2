package transform

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ParameterTransform is a composable what-if edit of a set of inputs.
// Transforms never modify their argument; they return an edited copy.
type ParameterTransform interface {
	// Apply returns base with the edit applied.
	Apply(base domain.InputParameters) (domain.InputParameters, error)

	// Name is the registry key, e.g. "adjust".
	Name() string

	Description() string

	// Validate checks the transform against base without applying it.
	Validate(base domain.InputParameters) error
}

// ApplyTransforms applies transforms in order, each one receiving the output
// of the previous one. Every transform is validated before it is applied.
func ApplyTransforms(base domain.InputParameters, transforms []ParameterTransform) (domain.InputParameters, error) {
	out := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform #%d is nil", i+1)
		}
		if err := t.Validate(out); err != nil {
			return base, fmt.Errorf("%s: invalid for these inputs: %w", t.Name(), err)
		}
		var err error
		if out, err = t.Apply(out); err != nil {
			return base, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}
	return out, nil
}

// Describe joins the descriptions of transforms.
func Describe(transforms []ParameterTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError reports which transform rejected which inputs.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
