package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/output"
)

// OptimizeAllTargets solves every target for the same scenario and constraints.
// Unreachable targets are skipped; any other failure aborts.
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	baseScenario *domain.Scenario,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeContribution,
		OptimizeDuration,
	}

	var results []OptimizationResult
	for _, target := range targets {
		req := OptimizationRequest{
			BaseScenario:  baseScenario,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
		}

		result, err := s.Optimize(ctx, req)
		if errors.Is(err, ErrTargetUnreachable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all",
			Message:   "no target could be solved",
			Cause:     ErrTargetUnreachable,
		}
	}

	md := &MultiDimensionalResult{Results: results}
	md.Recommendations = generateRecommendations(md)
	return md, nil
}

func generateRecommendations(md *MultiDimensionalResult) []string {
	var recs []string
	for _, r := range md.Results {
		switch {
		case r.OptimalContribution != nil && r.ContributionDiffFromBase.IsPositive():
			recs = append(recs, fmt.Sprintf("Raise the monthly contribution to %s (+%s) to pay out %s each",
				output.FormatCurrency(*r.OptimalContribution),
				output.FormatCurrency(r.ContributionDiffFromBase),
				output.FormatCurrency(r.TargetPayout)))
		case r.OptimalContribution != nil:
			recs = append(recs, fmt.Sprintf("A monthly contribution of %s already reaches %s; the current plan has %s of slack",
				output.FormatCurrency(*r.OptimalContribution),
				output.FormatCurrency(r.TargetPayout),
				output.FormatCurrency(r.ContributionDiffFromBase.Neg())))
		case r.OptimalMonths != nil && r.MonthsDiffFromBase > 0:
			recs = append(recs, fmt.Sprintf("Keep the current contribution and run %d months (%d more)",
				*r.OptimalMonths, r.MonthsDiffFromBase))
		case r.OptimalMonths != nil:
			recs = append(recs, fmt.Sprintf("The target is reached after %d months at the current contribution",
				*r.OptimalMonths))
		}
	}
	return recs
}
