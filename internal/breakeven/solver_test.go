package breakeven

import (
	"context"
	"strings"
	"testing"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScenario() *domain.Scenario {
	return &domain.Scenario{
		Name: "Base",
		Simulation: domain.SimulationConfig{
			ParticipantCount:           10,
			DurationMonths:             12,
			MonthlyContribution:        decimal.NewFromInt(150),
			MonthlyYieldRate:           decimal.NewFromFloat(0.5),
			TargetPayoutPerParticipant: decimal.NewFromInt(2000),
			Mode:                       domain.ModeContributionDriven,
		},
	}
}

func withLoans(sc *domain.Scenario) *domain.Scenario {
	sc.Simulation.AuxiliaryIncome.Loans = domain.LoanStream{
		Enabled:                true,
		MonthlyInterestRate:    decimal.NewFromInt(3),
		PercentOfBalanceLoaned: decimal.NewFromInt(40),
	}
	return sc
}

func withRaffles(sc *domain.Scenario) *domain.Scenario {
	sc.Simulation.AuxiliaryIncome.Raffles = domain.RaffleStream{
		Enabled:          true,
		RafflesPerMonth:  1,
		TicketPrice:      decimal.NewFromInt(10),
		TicketsPerMember: 2,
	}
	return sc
}

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewProjectionEngine())
}

func TestNewSolver(t *testing.T) {
	calcEngine := calculation.NewProjectionEngine()
	solver := NewSolver(calcEngine, SolverOptions{MaxIterations: 10})

	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, 10, solver.Options.MaxIterations)
	assert.Equal(t, DefaultSolverOptions(), NewDefaultSolver(calcEngine).Options)
}

func TestSolver_Optimize_Validation(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{Target: OptimizeContribution})
	assert.Error(t, err, "missing scenario")

	neg := decimal.NewFromInt(-5)
	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       OptimizeContribution,
		Constraints:  Constraints{MinContribution: &neg},
	})
	assert.Error(t, err, "invalid constraints")

	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       "interest_rate",
	})
	var beErr *BreakEvenError
	require.ErrorAs(t, err, &beErr)
	assert.Equal(t, "optimize", beErr.Operation)
}

func TestSolver_OptimizeContribution(t *testing.T) {
	tests := []struct {
		name         string
		scenario     *domain.Scenario
		contribution int64
		estimate     int64
	}{
		{"no auxiliary income", baseScenario(), 162, 162},
		// Loan interest is invisible to the annuity estimate
		{"loans", withLoans(baseScenario()), 150, 162},
		{"raffles and loans", withRaffles(withLoans(baseScenario())), 130, 142},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newSolver().Optimize(context.Background(), OptimizationRequest{
				BaseScenario: tt.scenario,
				Target:       OptimizeContribution,
			})
			require.NoError(t, err)
			require.True(t, result.Success)
			require.NotNil(t, result.OptimalContribution)
			require.NotNil(t, result.AnnuityEstimate)

			assert.Equal(t, tt.contribution, result.OptimalContribution.IntPart())
			assert.Equal(t, tt.estimate, result.AnnuityEstimate.IntPart())
			assert.True(t, result.PayoutPerParticipant.GreaterThanOrEqual(decimal.NewFromInt(2000)))
			assert.Equal(t, tt.contribution-150, result.ContributionDiffFromBase.IntPart())

			// One unit less must miss the target
			less := tt.scenario.Simulation
			less.MonthlyContribution = result.OptimalContribution.Sub(decimal.NewFromInt(1))
			p, err := calculation.NewProjectionEngine().Project(less)
			require.NoError(t, err)
			assert.False(t, p.Result.TargetMet)
		})
	}
}

func TestSolver_OptimizeContribution_TargetModeScenario(t *testing.T) {
	sc := baseScenario()
	sc.Simulation.Mode = domain.ModeTargetDriven

	result, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: sc,
		Target:       OptimizeContribution,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(162), result.OptimalContribution.IntPart())
	assert.Equal(t, domain.ModeTargetDriven, sc.Simulation.Mode, "input scenario must not change")
}

func TestSolver_OptimizeContribution_Unreachable(t *testing.T) {
	maxContribution := decimal.NewFromInt(100)
	_, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       OptimizeContribution,
		Constraints:  Constraints{MaxContribution: &maxContribution},
	})
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestSolver_OptimizeContribution_TargetOverride(t *testing.T) {
	target := decimal.NewFromInt(1859)
	result, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       OptimizeContribution,
		Constraints:  Constraints{TargetPayout: &target},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), result.OptimalContribution.IntPart())
	assert.True(t, result.TargetPayout.Equal(target))
}

func TestSolver_OptimizeDuration(t *testing.T) {
	tests := []struct {
		name     string
		scenario *domain.Scenario
		months   int
	}{
		{"no auxiliary income", baseScenario(), 13},
		{"raffles", withRaffles(baseScenario()), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newSolver().Optimize(context.Background(), OptimizationRequest{
				BaseScenario: tt.scenario,
				Target:       OptimizeDuration,
			})
			require.NoError(t, err)
			require.NotNil(t, result.OptimalMonths)
			assert.Equal(t, tt.months, *result.OptimalMonths)
			assert.Equal(t, tt.months-12, result.MonthsDiffFromBase)
			assert.Len(t, result.Projection.Snapshots, tt.months)
			assert.True(t, result.Projection.Result.TargetMet)
		})
	}
}

func TestSolver_OptimizeDuration_Unreachable(t *testing.T) {
	sc := baseScenario()
	sc.Simulation.MonthlyContribution = decimal.NewFromInt(10)

	_, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: sc,
		Target:       OptimizeDuration,
	})
	assert.ErrorIs(t, err, ErrTargetUnreachable)

	maxMonths := 12
	_, err = newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       OptimizeDuration,
		Constraints:  Constraints{MaxMonths: &maxMonths},
	})
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestSolver_Optimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, target := range []OptimizationTarget{OptimizeContribution, OptimizeDuration} {
		_, err := newSolver().Optimize(ctx, OptimizationRequest{
			BaseScenario: baseScenario(),
			Target:       target,
		})
		assert.ErrorIs(t, err, context.Canceled, string(target))
	}
}

func TestSolver_OptimizeAllTargets(t *testing.T) {
	md, err := newSolver().OptimizeAllTargets(context.Background(), baseScenario(), Constraints{})
	require.NoError(t, err)
	require.Len(t, md.Results, 2)
	assert.Equal(t, OptimizeContribution, md.Results[0].Target)
	assert.Equal(t, OptimizeDuration, md.Results[1].Target)
	require.Len(t, md.Recommendations, 2)
	assert.Contains(t, md.Recommendations[1], "13 months")

	// Contribution is capped below the target; only duration survives
	maxContribution := decimal.NewFromInt(100)
	md, err = newSolver().OptimizeAllTargets(context.Background(), baseScenario(),
		Constraints{MaxContribution: &maxContribution})
	require.NoError(t, err)
	require.Len(t, md.Results, 1)
	assert.Equal(t, OptimizeDuration, md.Results[0].Target)
}

func TestTableFormatter(t *testing.T) {
	result, err := newSolver().Optimize(context.Background(), OptimizationRequest{
		BaseScenario: baseScenario(),
		Target:       OptimizeContribution,
	})
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(result)
	assert.Contains(t, out, "BREAK-EVEN RESULTS")
	assert.Contains(t, out, "Scenario:        Base")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "Contribution:         +12.00")
	assert.False(t, strings.Contains(out, "Duration:"))

	js, err := (&JSONFormatter{}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"kind":"breakeven"`)
	assert.Contains(t, js, `"optimalContribution":"162"`)
}
