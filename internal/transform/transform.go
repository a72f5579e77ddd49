package transform

import (
	"fmt"

	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/domain"
)

// ConfigTransform defines the interface for all simulation transformations.
// Transforms are composable operations that derive a variant of a simulation,
// used by scenario comparison, goal seeking and the interactive simulator.
type ConfigTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.SimulationConfig) (domain.SimulationConfig, error)

	// Name returns a short identifier for this transform (e.g., "set_yield").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform can be applied to base without applying it.
	Validate(base domain.SimulationConfig) error
}

// ApplyTransforms applies a sequence of transforms to a base simulation.
// Each transform receives the output of the previous one.
func ApplyTransforms(base domain.SimulationConfig, transforms []ConfigTransform) (domain.SimulationConfig, error) {
	current := base.Clone()

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// ApplyToScenario derives a named scenario from base by applying transforms.
// The derived simulation must pass the same checks as one read from a file.
func ApplyToScenario(base *domain.Scenario, name string, transforms []ConfigTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	sim, err := ApplyTransforms(base.Simulation, transforms)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateSimulation(sim); err != nil {
		return nil, fmt.Errorf("scenario %s is invalid: %w", name, err)
	}
	return &domain.Scenario{
		Name:        name,
		Description: describe(transforms),
		Simulation:  sim,
	}, nil
}

func describe(transforms []ConfigTransform) string {
	desc := ""
	for i, t := range transforms {
		if i > 0 {
			desc += "; "
		}
		desc += t.Description()
	}
	return desc
}

// TransformError represents an error that occurred during transformation.
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

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
