package breakeven

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the contribution or duration that reaches a payout target
// by running the full month-by-month simulator
type Solver struct {
	CalcEngine *calculation.ProjectionEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.ProjectionEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.ProjectionEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BaseScenario == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base scenario is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	switch req.Target {
	case OptimizeContribution:
		return s.optimizeContribution(ctx, req)
	case OptimizeDuration:
		return s.optimizeDuration(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// forecastConfig is the base simulation as a plain forecast: the solver, not
// the annuity estimate, decides the contribution
func forecastConfig(req OptimizationRequest) (domain.SimulationConfig, decimal.Decimal, error) {
	cfg, err := transform.ApplyTransforms(req.BaseScenario.Simulation, []transform.ConfigTransform{
		&transform.SetMode{Mode: domain.ModeContributionDriven},
	})
	if err != nil {
		return cfg, decimal.Zero, err
	}

	target := cfg.TargetPayoutPerParticipant
	if req.Constraints.TargetPayout != nil {
		target = *req.Constraints.TargetPayout
		cfg.TargetPayoutPerParticipant = target
	}
	if !target.IsPositive() {
		return cfg, target, fmt.Errorf("scenario %s has no positive target payout", req.BaseScenario.Name)
	}
	return cfg, target, nil
}

func (s *Solver) payoutAt(cfg domain.SimulationConfig, contribution decimal.Decimal) (*domain.Projection, error) {
	candidate, err := transform.ApplyTransforms(cfg, []transform.ConfigTransform{
		&transform.SetContribution{Amount: contribution},
	})
	if err != nil {
		return nil, err
	}
	return s.CalcEngine.Project(candidate)
}

// optimizeContribution finds the smallest whole contribution whose simulated
// payout meets the target. Unlike the annuity estimate it accounts for loan
// interest and for fines scaling with the candidate contribution.
func (s *Solver) optimizeContribution(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	cfg, target, err := forecastConfig(req)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_contribution", Message: "invalid base scenario", Cause: err}
	}

	base, err := s.CalcEngine.Project(cfg)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_contribution", Message: "failed to calculate base scenario", Cause: err}
	}

	estimate := calculation.SolveMonthlyContribution(target, cfg.ParticipantCount, cfg.DurationMonths,
		cfg.MonthlyYieldRate, calculation.AuxiliaryIncomeEstimate(cfg))

	lo := calculation.MinimumContribution
	if req.Constraints.MinContribution != nil {
		lo = req.Constraints.MinContribution.Ceil()
	}
	hi := decimal.Max(estimate, lo)
	capped := req.Constraints.MaxContribution != nil
	if capped {
		hi = req.Constraints.MaxContribution.Floor()
		if hi.LessThan(lo) {
			return nil, &BreakEvenError{
				Operation: "optimize_contribution",
				Message:   "no whole contribution fits between min_contribution and max_contribution",
				Cause:     ErrTargetUnreachable,
			}
		}
	}

	iterations := 0
	check := func(c decimal.Decimal) (*domain.Projection, bool, error) {
		iterations++
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}
		p, err := s.payoutAt(cfg, c)
		if err != nil {
			return nil, false, &BreakEvenError{Operation: "optimize_contribution", Message: "failed to calculate scenario", Cause: err}
		}
		return p, p.Result.PayoutPerParticipant.GreaterThanOrEqual(target), nil
	}

	// Grow the upper bound until it meets the target
	best, ok, err := check(hi)
	if err != nil {
		return nil, err
	}
	for !ok {
		if capped || iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "optimize_contribution",
				Message:   fmt.Sprintf("contribution %s does not reach %s", hi.StringFixed(2), target.StringFixed(2)),
				Cause:     ErrTargetUnreachable,
			}
		}
		lo = hi.Add(decimal.NewFromInt(1))
		hi = hi.Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(1))
		if best, ok, err = check(hi); err != nil {
			return nil, err
		}
	}
	bestContribution := hi

	// Binary search for the smallest whole contribution in [lo, hi)
	two := decimal.NewFromInt(2)
	for lo.LessThan(bestContribution) {
		if iterations >= req.MaxIterations {
			return s.buildContributionResult(req, target, estimate, bestContribution, best, base, iterations,
				fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)), nil
		}
		mid := lo.Add(bestContribution).Div(two).Floor()
		p, ok, err := check(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			bestContribution, best = mid, p
		} else {
			lo = mid.Add(decimal.NewFromInt(1))
		}
	}

	info := fmt.Sprintf("Binary search converged; annuity estimate %s", estimate.StringFixed(0))
	if !bestContribution.Equal(estimate) {
		info = fmt.Sprintf("Binary search converged; simulated minimum differs from annuity estimate %s by %s",
			estimate.StringFixed(0), bestContribution.Sub(estimate).StringFixed(0))
	}
	result := s.buildContributionResult(req, target, estimate, bestContribution, best, base, iterations, info)
	result.Success = true
	return result, nil
}

func (s *Solver) buildContributionResult(
	req OptimizationRequest,
	target, estimate, contribution decimal.Decimal,
	p, base *domain.Projection,
	iterations int,
	info string,
) *OptimizationResult {
	result := &OptimizationResult{
		Request:                  req,
		Target:                   req.Target,
		TargetPayout:             target,
		Iterations:               iterations,
		ConvergenceInfo:          info,
		OptimalContribution:      &contribution,
		AnnuityEstimate:          &estimate,
		Projection:               p,
		FinalBalance:             p.Result.FinalBalance,
		PayoutPerParticipant:     p.Result.PayoutPerParticipant,
		BaseProjection:           base,
		PayoutDiffFromBase:       p.Result.PayoutPerParticipant.Sub(base.Result.PayoutPerParticipant),
		ContributionDiffFromBase: contribution.Sub(base.Config.MonthlyContribution),
	}
	return result
}

// optimizeDuration finds the fewest months that reach the target at the
// configured contribution. A run is a prefix of any longer run with the same
// parameters, so one simulation over the longest horizon covers every candidate.
func (s *Solver) optimizeDuration(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	cfg, target, err := forecastConfig(req)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_duration", Message: "invalid base scenario", Cause: err}
	}

	base, err := s.CalcEngine.Project(cfg)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_duration", Message: "failed to calculate base scenario", Cause: err}
	}

	minMonths, maxMonths := 1, MaxDurationMonths
	if req.Constraints.MinMonths != nil {
		minMonths = *req.Constraints.MinMonths
	}
	if req.Constraints.MaxMonths != nil {
		maxMonths = *req.Constraints.MaxMonths
	}

	longest := cfg.Clone()
	longest.DurationMonths = maxMonths
	snapshots := calculation.Simulate(longest)
	participants := decimal.NewFromInt(int64(cfg.ParticipantCount))

	iterations := 0
	for months := minMonths; months <= maxMonths; months++ {
		iterations++
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		payout := snapshots[months-1].Balance.Div(participants).Floor()
		if payout.LessThan(target) {
			continue
		}

		solved, err := transform.ApplyTransforms(cfg, []transform.ConfigTransform{&transform.SetDuration{Months: months}})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_duration", Message: "failed to apply duration", Cause: err}
		}
		p, err := s.CalcEngine.Project(solved)
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_duration", Message: "failed to calculate scenario", Cause: err}
		}

		m := months
		return &OptimizationResult{
			Request:                  req,
			Target:                   req.Target,
			TargetPayout:             target,
			Success:                  true,
			Iterations:               iterations,
			ConvergenceInfo:          fmt.Sprintf("Target first reached in month %d", months),
			OptimalMonths:            &m,
			Projection:               p,
			FinalBalance:             p.Result.FinalBalance,
			PayoutPerParticipant:     p.Result.PayoutPerParticipant,
			BaseProjection:           base,
			PayoutDiffFromBase:       p.Result.PayoutPerParticipant.Sub(base.Result.PayoutPerParticipant),
			MonthsDiffFromBase:       months - cfg.DurationMonths,
			ContributionDiffFromBase: decimal.Zero,
		}, nil
	}

	return nil, &BreakEvenError{
		Operation: "optimize_duration",
		Message:   fmt.Sprintf("payout stays below %s through month %d", target.StringFixed(2), maxMonths),
		Cause:     ErrTargetUnreachable,
	}
}
