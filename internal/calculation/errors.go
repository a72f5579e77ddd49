package calculation

import "errors"

var (
	// ErrDivisionByZero is returned when a payout would be split among zero participants
	ErrDivisionByZero = errors.New("division by zero")
	// ErrEmptyProjection is returned when a run covers no months
	ErrEmptyProjection = errors.New("projection has no months")
)

// CalculationError describes a failed engine operation
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}
