package calculation

import (
	"fmt"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionEngine orchestrates the solver, the simulator and result derivation
type ProjectionEngine struct {
	Logger Logger
	Debug  bool // Emit per-month traces through Logger
}

// NewProjectionEngine creates an engine that logs nowhere
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger; nil restores the no-op logger
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Project runs one complete projection. The input config is never modified;
// the resolved config (solved contribution and, in target mode, the achieved
// payout as the new target baseline) is returned inside the Projection.
func (pe *ProjectionEngine) Project(cfg domain.SimulationConfig) (*domain.Projection, error) {
	if err := guard(cfg); err != nil {
		return nil, err
	}

	log := pe.logger()
	resolved := cfg.Clone()
	requestedTarget := cfg.TargetPayoutPerParticipant

	if resolved.Mode.IsTargetDriven() {
		// The fine estimate uses the contribution from before the solve.
		// It is not iterated to convergence.
		estimate := AuxiliaryIncomeEstimate(resolved)
		resolved.MonthlyContribution = SolveMonthlyContribution(
			resolved.TargetPayoutPerParticipant,
			resolved.ParticipantCount,
			resolved.DurationMonths,
			resolved.MonthlyYieldRate,
			estimate,
		)
		log.Infof("solved monthly contribution %s for target %s (auxiliary estimate %s)",
			resolved.MonthlyContribution.StringFixed(2), requestedTarget.StringFixed(2), estimate.StringFixed(2))
	}

	var snapshots []domain.MonthlySnapshot
	if pe.Debug {
		snapshots = simulate(resolved, log)
	} else {
		snapshots = simulate(resolved, NopLogger{})
	}

	result, err := DeriveResult(resolved, snapshots)
	if err != nil {
		return nil, err
	}

	if resolved.Mode.IsTargetDriven() {
		resolved.TargetPayoutPerParticipant = result.PayoutPerParticipant
	}

	return &domain.Projection{
		Config:             resolved,
		Snapshots:          snapshots,
		Result:             result,
		SolvedContribution: cfg.Mode.IsTargetDriven(),
		RequestedTarget:    requestedTarget,
	}, nil
}

// Recompute is the state transition (config) -> (config', result) performed
// on every edit of a simulation form.
func (pe *ProjectionEngine) Recompute(cfg domain.SimulationConfig) (domain.SimulationConfig, domain.SimulationResult, error) {
	p, err := pe.Project(cfg)
	if err != nil {
		return cfg, domain.SimulationResult{}, err
	}
	return p.Config, p.Result, nil
}

// RunScenario projects a single named scenario
func (pe *ProjectionEngine) RunScenario(scenario *domain.Scenario) (*domain.Projection, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	p, err := pe.Project(scenario.Simulation)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	p.Name = scenario.Name
	return p, nil
}

// RunScenarios projects every scenario of a configuration, in file order
func (pe *ProjectionEngine) RunScenarios(config *domain.Configuration) (*domain.ProjectionSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	set := &domain.ProjectionSet{
		Group:       config.Group,
		Projections: make([]domain.Projection, 0, len(config.Scenarios)),
	}
	for i := range config.Scenarios {
		p, err := pe.RunScenario(&config.Scenarios[i])
		if err != nil {
			return nil, err
		}
		set.Projections = append(set.Projections, *p)
	}
	return set, nil
}

// DeriveResult builds the summary of a run from its last snapshot
func DeriveResult(cfg domain.SimulationConfig, snapshots []domain.MonthlySnapshot) (domain.SimulationResult, error) {
	if cfg.ParticipantCount < 1 {
		return domain.SimulationResult{}, &CalculationError{
			Operation: "derive_result",
			Message:   fmt.Sprintf("cannot split the balance among %d participants", cfg.ParticipantCount),
			Cause:     ErrDivisionByZero,
		}
	}
	if len(snapshots) == 0 {
		return domain.SimulationResult{}, &CalculationError{
			Operation: "derive_result",
			Message:   "no monthly snapshots to summarise",
			Cause:     ErrEmptyProjection,
		}
	}

	last := snapshots[len(snapshots)-1]
	payout := last.Balance.Div(decimal.NewFromInt(int64(cfg.ParticipantCount))).Floor()

	// Yield is the residual once every other flow is accounted for, so the
	// breakdown always sums to the final balance.
	yield := last.Balance.
		Sub(last.CumulativeContributions).
		Sub(last.CumulativeRaffleIncome).
		Sub(last.CumulativeFineIncome).
		Sub(last.CumulativeLoanInterest)

	breakdown := []domain.IncomeSource{
		{Label: domain.SourceContributions, Amount: last.CumulativeContributions},
		{Label: domain.SourceYield, Amount: yield},
	}
	aux := cfg.AuxiliaryIncome
	if aux.Raffles.Enabled {
		breakdown = append(breakdown, domain.IncomeSource{Label: domain.SourceRaffles, Amount: last.CumulativeRaffleIncome})
	}
	if aux.Fines.Enabled {
		breakdown = append(breakdown, domain.IncomeSource{Label: domain.SourceFines, Amount: last.CumulativeFineIncome})
	}
	if aux.Loans.Enabled {
		breakdown = append(breakdown, domain.IncomeSource{Label: domain.SourceLoanInterest, Amount: last.CumulativeLoanInterest})
	}

	return domain.SimulationResult{
		FinalBalance:         last.Balance,
		PayoutPerParticipant: payout,
		IncomeBreakdown:      breakdown,
		TargetMet:            payout.GreaterThanOrEqual(cfg.TargetPayoutPerParticipant),
		Shortfall:            payout.Sub(cfg.TargetPayoutPerParticipant),
	}, nil
}

func guard(cfg domain.SimulationConfig) error {
	if cfg.ParticipantCount < 1 {
		return &CalculationError{
			Operation: "project",
			Message:   fmt.Sprintf("participant count must be at least 1, got %d", cfg.ParticipantCount),
			Cause:     ErrDivisionByZero,
		}
	}
	if cfg.DurationMonths < 1 {
		return &CalculationError{
			Operation: "project",
			Message:   fmt.Sprintf("duration must be at least 1 month, got %d", cfg.DurationMonths),
			Cause:     ErrEmptyProjection,
		}
	}
	return nil
}
