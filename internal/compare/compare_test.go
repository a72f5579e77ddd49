package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *domain.Configuration {
	base := domain.SimulationConfig{
		ParticipantCount:           10,
		DurationMonths:             12,
		MonthlyContribution:        decimal.NewFromInt(150),
		MonthlyYieldRate:           decimal.RequireFromString("0.5"),
		TargetPayoutPerParticipant: decimal.NewFromInt(1800),
		Mode:                       domain.ModeContributionDriven,
		AuxiliaryIncome: domain.AuxiliaryIncome{
			Raffles: domain.RaffleStream{Enabled: true, RafflesPerMonth: 1, TicketPrice: decimal.NewFromInt(10), TicketsPerMember: 2},
			Loans:   domain.LoanStream{Enabled: true, MonthlyInterestRate: decimal.NewFromInt(3), PercentOfBalanceLoaned: decimal.NewFromInt(40)},
		},
	}
	plain := base
	plain.AuxiliaryIncome = domain.AuxiliaryIncome{}

	return &domain.Configuration{
		Group: domain.GroupInfo{Name: "Teste"},
		Scenarios: []domain.Scenario{
			{Name: "Base", Description: "with raffles and loans", Simulation: base},
			{Name: "Plain", Simulation: plain},
		},
	}
}

func TestCompare_WithTemplates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewProjectionEngine())

	compSet, err := engine.Compare(context.Background(), createTestConfig(), CompareOptions{
		BaseScenarioName: "base",
		Templates:        []string{"no_raffles", "no_auxiliary", "extend_6mo", "target_mode"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Base", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 4)

	names := []string{}
	for _, alt := range compSet.AlternativeResults {
		names = append(names, alt.ScenarioName)
	}
	assert.Equal(t, []string{"Base_no_raffles", "Base_no_auxiliary", "Base_extend_6mo", "Base_target_mode"}, names)

	noRaffles := compSet.AlternativeResults[0]
	assert.Equal(t, "Stop holding raffles", noRaffles.Description)
	assert.True(t, noRaffles.PayoutDiffFromBase.IsNegative())
	assert.True(t, noRaffles.AuxiliaryDiffFromBase.IsNegative())
	assert.True(t, noRaffles.ContributionDiffFromBase.IsZero())

	noAux := compSet.AlternativeResults[1]
	assert.True(t, noAux.AuxiliaryIncome.IsZero())
	assert.Equal(t, "1859", noAux.PayoutPerParticipant.String())

	extended := compSet.AlternativeResults[2]
	assert.Equal(t, 18, extended.DurationMonths)
	assert.True(t, extended.PayoutDiffFromBase.IsPositive())

	target := compSet.AlternativeResults[3]
	assert.Equal(t, domain.ModeTargetDriven, target.Mode)
	assert.True(t, target.TargetMet)
	assert.True(t, target.ContributionDiffFromBase.IsNegative(), "1800 needs less than 150 with extra income")

	assert.NotEmpty(t, compSet.Recommendations)
	joined := strings.Join(compSet.Recommendations, "\n")
	assert.Contains(t, joined, "Best Payout: Base_extend_6mo")
	assert.Contains(t, joined, "Lowest Contribution: Base_target_mode")
}

func TestCompare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewProjectionEngine())
	ctx := context.Background()

	_, err := engine.Compare(ctx, nil, CompareOptions{})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, createTestConfig(), CompareOptions{BaseScenarioName: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = engine.Compare(ctx, createTestConfig(), CompareOptions{BaseScenarioName: "Base", Templates: []string{"postpone_1yr"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template postpone_1yr not found")

	broken := createTestConfig()
	broken.Scenarios[0].Simulation.ParticipantCount = 0
	_, err = engine.Compare(ctx, broken, CompareOptions{BaseScenarioName: "Base", Scenarios: []string{"Plain"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to calculate base scenario")

	_, err = engine.Compare(ctx, createTestConfig(), CompareOptions{BaseScenarioName: "Base"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to compare")

	long := createTestConfig()
	long.Scenarios[0].Simulation.DurationMonths = 60
	_, err = engine.Compare(ctx, long, CompareOptions{BaseScenarioName: "Base", Templates: []string{"extend_6mo"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply template extend_6mo")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, createTestConfig(), CompareOptions{BaseScenarioName: "Base", Templates: []string{"no_loans"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_MixedAlternatives(t *testing.T) {
	engine := NewCompareEngine(calculation.NewProjectionEngine())
	cfg := createTestConfig()

	custom := cfg.Scenarios[0]
	custom.Name = "Base_custom"
	custom.Description = "Contribute 200 per month"
	custom.Simulation.MonthlyContribution = decimal.NewFromInt(200)

	compSet, err := engine.Compare(context.Background(), cfg, CompareOptions{
		BaseScenarioName: "Base",
		Templates:        []string{"no_loans"},
		Scenarios:        []string{"Plain"},
		Variants:         []*domain.Scenario{&custom},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 3)

	assert.Equal(t, "Base_no_loans", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "Plain", compSet.AlternativeResults[1].ScenarioName)
	assert.Equal(t, "Base_custom", compSet.AlternativeResults[2].ScenarioName)
	assert.Equal(t, "Contribute 200 per month", compSet.AlternativeResults[2].Description)
	assert.True(t, compSet.AlternativeResults[2].ContributionDiffFromBase.Equal(decimal.NewFromInt(50)))
}

func TestCompareScenarios(t *testing.T) {
	engine := NewCompareEngine(calculation.NewProjectionEngine())

	compSet, err := engine.CompareScenarios(context.Background(), createTestConfig(), "Base", []string{"Plain"})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	plain := compSet.AlternativeResults[0]
	assert.Equal(t, "Plain", plain.ScenarioName)
	assert.True(t, plain.AuxiliaryIncome.IsZero())
	assert.True(t, plain.AuxiliaryDiffFromBase.Equal(compSet.BaseResult.AuxiliaryIncome.Neg()))
	assert.Equal(t, "with raffles and loans", compSet.BaseResult.Description)

	_, err = engine.CompareScenarios(context.Background(), createTestConfig(), "Base", []string{"Nope"})
	assert.Error(t, err)

	set := compSet.ToProjectionSet(domain.GroupInfo{Name: "Teste"})
	require.Len(t, set.Projections, 2)
	assert.Equal(t, "Base", set.Projections[0].Name)
	assert.Equal(t, "Plain", set.Projections[1].Name)
}

func TestMetricsCalculator(t *testing.T) {
	mc := NewMetricsCalculator()

	p, err := calculation.NewProjectionEngine().RunScenario(&createTestConfig().Scenarios[0])
	require.NoError(t, err)

	m := mc.CalculateMetrics(p)
	last, _ := p.LastSnapshot()
	assert.True(t, m.TotalContributions.Equal(decimal.NewFromInt(18000)))
	assert.True(t, m.AuxiliaryIncome.Equal(last.CumulativeRaffleIncome.Add(last.CumulativeLoanInterest)))
	assert.True(t, m.TotalContributions.Add(m.TotalYield).Add(m.AuxiliaryIncome).Equal(m.FinalBalance))

	base := ComparisonResult{PayoutPerParticipant: decimal.NewFromInt(2000), MonthlyContribution: decimal.NewFromInt(150)}
	alt := ComparisonResult{PayoutPerParticipant: decimal.NewFromInt(2100), MonthlyContribution: decimal.NewFromInt(160)}
	alt = mc.CalculateComparison(alt, base)
	assert.True(t, alt.PayoutDiffFromBase.Equal(decimal.NewFromInt(100)))
	assert.True(t, alt.PayoutPctFromBase.Equal(decimal.NewFromInt(5)))
	assert.True(t, alt.ContributionDiffFromBase.Equal(decimal.NewFromInt(10)))

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, zeroBase.PayoutPctFromBase.Equal(alt.PayoutPctFromBase), "pct is left untouched when the base pays nothing")
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}}))
}

func buildComparisonSet(t *testing.T) *ComparisonSet {
	t.Helper()
	compSet, err := NewCompareEngine(calculation.NewProjectionEngine()).Compare(context.Background(), createTestConfig(), CompareOptions{
		BaseScenarioName: "Base",
		Templates:        []string{"no_loans", "higher_yield"},
	})
	require.NoError(t, err)
	compSet.ConfigPath = "caixinha.yaml"
	return compSet
}

func TestTableFormatter(t *testing.T) {
	compSet := buildComparisonSet(t)
	tf := &TableFormatter{}

	out := tf.Format(compSet)
	assert.Contains(t, out, "CAIXINHA SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: Base")
	assert.Contains(t, out, "Configuration: caixinha.yaml")
	assert.Contains(t, out, "Base (base)")
	assert.Contains(t, out, "Base_no_loans")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "RECOMMENDATIONS")

	compact := tf.FormatCompact(compSet)
	assert.True(t, strings.HasPrefix(compact, "Base: Base | "))
	assert.Contains(t, compact, "Base_higher_yield: +")
	assert.Contains(t, compact, "Base_no_loans: -")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "1.50M", tf.formatDecimal(decimal.NewFromInt(1500000)))
	assert.Equal(t, "18.6K", tf.formatDecimal(decimal.NewFromInt(18595)))
	assert.Equal(t, "1859.00", tf.formatDecimal(decimal.NewFromInt(1859)))
	assert.Equal(t, "+", tf.deltaSymbol(decimal.NewFromInt(1)))
	assert.Equal(t, "-", tf.deltaSymbol(decimal.NewFromInt(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
	assert.Equal(t, "Caixinha...", tf.truncate("Caixinha do escritório", 11))
	assert.Equal(t, "curta", tf.truncate("curta", 11))
}

func TestCSVFormatter(t *testing.T) {
	compSet := buildComparisonSet(t)

	out, err := (&CSVFormatter{}).Format(compSet)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base", "base", "contribution_driven", "12"}, records[1][:4])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "0.00", records[1][11])
}

func TestJSONFormatter(t *testing.T) {
	compSet := buildComparisonSet(t)

	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)

		var decoded struct {
			ReportID string `json:"report_id"`
			Kind     string `json:"kind"`
			Data     struct {
				BaseScenarioName   string            `json:"baseScenarioName"`
				AlternativeResults []json.RawMessage `json:"alternativeResults"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.NotEmpty(t, decoded.ReportID)
		assert.Equal(t, "comparison", decoded.Kind)
		assert.Equal(t, "Base", decoded.Data.BaseScenarioName)
		assert.Len(t, decoded.Data.AlternativeResults, 2)
		assert.Equal(t, pretty, strings.Contains(out, "\n"))
	}
}
