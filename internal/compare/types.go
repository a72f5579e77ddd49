package compare

import (
	"fmt"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Projection   *domain.Projection `json:"-"`

	// Key Metrics
	Mode                 domain.Mode     `json:"mode"`
	DurationMonths       int             `json:"durationMonths"`
	MonthlyContribution  decimal.Decimal `json:"monthlyContribution"`
	FinalBalance         decimal.Decimal `json:"finalBalance"`
	PayoutPerParticipant decimal.Decimal `json:"payoutPerParticipant"`
	TotalContributions   decimal.Decimal `json:"totalContributions"`
	TotalYield           decimal.Decimal `json:"totalYield"`
	AuxiliaryIncome      decimal.Decimal `json:"auxiliaryIncome"` // raffles + fines + loan interest
	TargetMet            bool            `json:"targetMet"`

	// Comparison to Base
	PayoutDiffFromBase       decimal.Decimal `json:"payoutDiffFromBase"`
	PayoutPctFromBase        decimal.Decimal `json:"payoutPctFromBase"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
	AuxiliaryDiffFromBase    decimal.Decimal `json:"auxiliaryDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToProjectionSet collects the underlying projections (base first) so the
// report formatters can render a comparison
func (cs *ComparisonSet) ToProjectionSet(group domain.GroupInfo) *domain.ProjectionSet {
	set := &domain.ProjectionSet{Group: group}
	if cs.BaseResult != nil && cs.BaseResult.Projection != nil {
		set.Projections = append(set.Projections, *cs.BaseResult.Projection)
	}
	for _, result := range cs.AlternativeResults {
		if result.Projection != nil {
			set.Projections = append(set.Projections, *result.Projection)
		}
	}
	return set
}

// MetricsCalculator extracts key metrics from projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection
func (mc *MetricsCalculator) CalculateMetrics(p *domain.Projection) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:         p.Name,
		Projection:           p,
		Mode:                 p.Config.Mode,
		DurationMonths:       p.Config.DurationMonths,
		MonthlyContribution:  p.Config.MonthlyContribution,
		FinalBalance:         p.Result.FinalBalance,
		PayoutPerParticipant: p.Result.PayoutPerParticipant,
		TotalYield:           p.Result.BreakdownAmount(domain.SourceYield),
		TargetMet:            p.Result.TargetMet,
	}

	if last, ok := p.LastSnapshot(); ok {
		result.TotalContributions = last.CumulativeContributions
		result.AuxiliaryIncome = last.CumulativeRaffleIncome.
			Add(last.CumulativeFineIncome).
			Add(last.CumulativeLoanInterest)
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PayoutDiffFromBase = scenario.PayoutPerParticipant.Sub(base.PayoutPerParticipant)

	if !base.PayoutPerParticipant.IsZero() {
		scenario.PayoutPctFromBase = scenario.PayoutDiffFromBase.
			Div(base.PayoutPerParticipant).
			Mul(decimal.NewFromInt(100))
	}

	scenario.ContributionDiffFromBase = scenario.MonthlyContribution.Sub(base.MonthlyContribution)
	scenario.AuxiliaryDiffFromBase = scenario.AuxiliaryIncome.Sub(base.AuxiliaryIncome)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest payout
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PayoutPerParticipant.GreaterThan(best.PayoutPerParticipant) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			"Best Payout: "+best.ScenarioName+" pays "+
				output.FormatCurrency(best.PayoutDiffFromBase)+" more per participant than the base scenario")
	}

	// Cheapest contribution that still meets its target
	cheapest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TargetMet && alt.MonthlyContribution.LessThan(cheapest.MonthlyContribution) {
			cheapest = alt
		}
	}
	if cheapest != base {
		recommendations = append(recommendations,
			"Lowest Contribution: "+cheapest.ScenarioName+" needs "+
				output.FormatCurrency(cheapest.ContributionDiffFromBase.Neg())+" less per month and still meets the target")
	}

	// Scenarios that lose a lot by dropping auxiliary income
	for _, alt := range compSet.AlternativeResults {
		if alt.AuxiliaryDiffFromBase.IsNegative() && alt.PayoutDiffFromBase.IsNegative() {
			recommendations = append(recommendations,
				fmt.Sprintf("Auxiliary Income: %s gives up %s of extra income (%s%% payout)",
					alt.ScenarioName,
					output.FormatCurrency(alt.AuxiliaryDiffFromBase.Neg()),
					alt.PayoutPctFromBase.StringFixed(1)))
		}
	}

	// Scenarios that miss the target the base meets
	for _, alt := range compSet.AlternativeResults {
		if base.TargetMet && !alt.TargetMet {
			recommendations = append(recommendations,
				"Target Missed: "+alt.ScenarioName+" no longer reaches the target payout")
		}
	}

	return recommendations
}
