package breakeven

import (
	"errors"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeContribution OptimizationTarget = "contribution"
	OptimizeDuration     OptimizationTarget = "duration"
	OptimizeAll          OptimizationTarget = "all"
)

// ParseTarget converts CLI input into an OptimizationTarget
func ParseTarget(s string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(s); t {
	case OptimizeContribution, OptimizeDuration, OptimizeAll:
		return t, nil
	default:
		return "", &BreakEvenError{
			Operation: "parse_target",
			Message:   "unknown target " + s + " (valid: contribution, duration, all)",
		}
	}
}

// ErrTargetUnreachable is returned when no value inside the constraints meets the target
var ErrTargetUnreachable = errors.New("target payout unreachable within constraints")

// MaxDurationMonths is the longest horizon the duration search considers
const MaxDurationMonths = 60

// Constraints define bounds for the search
type Constraints struct {
	// Payout per participant to reach; defaults to the scenario's target
	TargetPayout *decimal.Decimal `json:"targetPayout,omitempty"`

	// Contribution bounds (per participant per month)
	MinContribution *decimal.Decimal `json:"minContribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"maxContribution,omitempty"`

	// Duration bounds in months
	MinMonths *int `json:"minMonths,omitempty"`
	MaxMonths *int `json:"maxMonths,omitempty"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.TargetPayout != nil && !c.TargetPayout.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target payout must be positive",
		}
	}

	if c.MinContribution != nil && c.MinContribution.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_contribution cannot be negative",
		}
	}
	if c.MinContribution != nil && c.MaxContribution != nil {
		if c.MinContribution.GreaterThan(*c.MaxContribution) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_contribution cannot be greater than max_contribution",
			}
		}
	}

	if c.MinMonths != nil && (*c.MinMonths < 1 || *c.MinMonths > MaxDurationMonths) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_months must be between 1 and 60",
		}
	}
	if c.MaxMonths != nil && (*c.MaxMonths < 1 || *c.MaxMonths > MaxDurationMonths) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_months must be between 1 and 60",
		}
	}
	if c.MinMonths != nil && c.MaxMonths != nil && *c.MinMonths > *c.MaxMonths {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_months cannot be greater than max_months",
		}
	}

	return nil
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int // Maximum solver iterations
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Target          OptimizationTarget  `json:"target"`
	TargetPayout    decimal.Decimal     `json:"targetPayout"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergenceInfo"`

	// Solved parameters
	OptimalContribution *decimal.Decimal `json:"optimalContribution,omitempty"`
	OptimalMonths       *int             `json:"optimalMonths,omitempty"`

	// Closed-form annuity estimate for the same target, for contrast
	AnnuityEstimate *decimal.Decimal `json:"annuityEstimate,omitempty"`

	// Results at the solved parameters
	Projection           *domain.Projection `json:"-"`
	FinalBalance         decimal.Decimal    `json:"finalBalance"`
	PayoutPerParticipant decimal.Decimal    `json:"payoutPerParticipant"`

	// Comparison to base
	BaseProjection           *domain.Projection `json:"-"`
	PayoutDiffFromBase       decimal.Decimal    `json:"payoutDiffFromBase"`
	ContributionDiffFromBase decimal.Decimal    `json:"contributionDiffFromBase"`
	MonthsDiffFromBase       int                `json:"monthsDiffFromBase"`
}

// MultiDimensionalResult contains results when solving for several targets
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int // Maximum iterations per search
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
