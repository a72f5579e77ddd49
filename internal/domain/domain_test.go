package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeContributionDriven, false},
		{"contribution_driven", ModeContributionDriven, false},
		{"Contribution", ModeContributionDriven, false},
		{"target_driven", ModeTargetDriven, false},
		{" TARGET ", ModeTargetDriven, false},
		{"daily", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimulationConfig_CloneIsIndependent(t *testing.T) {
	original := SimulationConfig{
		ParticipantCount:    10,
		DurationMonths:      12,
		MonthlyContribution: decimal.NewFromInt(150),
		AuxiliaryIncome: AuxiliaryIncome{
			Raffles: RaffleStream{Enabled: true, RafflesPerMonth: 1},
		},
	}

	clone := original.Clone()
	clone.MonthlyContribution = decimal.NewFromInt(999)
	clone.AuxiliaryIncome.Raffles.Enabled = false

	assert.True(t, original.MonthlyContribution.Equal(decimal.NewFromInt(150)))
	assert.True(t, original.AuxiliaryIncome.Raffles.Enabled)
}

func TestSimulationConfig_TotalMonthlyContribution(t *testing.T) {
	cfg := SimulationConfig{ParticipantCount: 10, MonthlyContribution: decimal.NewFromInt(150)}
	assert.True(t, cfg.TotalMonthlyContribution().Equal(decimal.NewFromInt(1500)))
}

func TestConfiguration_FindScenario(t *testing.T) {
	cfg := &Configuration{Scenarios: []Scenario{{Name: "Base"}, {Name: "Rifas"}}}

	sc, ok := cfg.FindScenario("rifas")
	require.True(t, ok)
	assert.Equal(t, "Rifas", sc.Name)

	_, ok = cfg.FindScenario("missing")
	assert.False(t, ok)
}

func TestSimulationResult_BreakdownAmount(t *testing.T) {
	r := SimulationResult{IncomeBreakdown: []IncomeSource{
		{Label: SourceContributions, Amount: decimal.NewFromInt(18000)},
		{Label: SourceRaffles, Amount: decimal.NewFromInt(2400)},
	}}

	assert.True(t, r.BreakdownAmount(SourceRaffles).Equal(decimal.NewFromInt(2400)))
	assert.True(t, r.BreakdownAmount(SourceFines).IsZero())
}

func TestProjection_LastSnapshotAndTotalYield(t *testing.T) {
	p := &Projection{}
	_, ok := p.LastSnapshot()
	assert.False(t, ok)

	p.Snapshots = []MonthlySnapshot{
		{Month: 1, Balance: decimal.NewFromInt(100), YieldThisMonth: decimal.NewFromFloat(0.5)},
		{Month: 2, Balance: decimal.NewFromInt(201), YieldThisMonth: decimal.NewFromFloat(1.0)},
	}
	last, ok := p.LastSnapshot()
	require.True(t, ok)
	assert.Equal(t, 2, last.Month)
	assert.True(t, p.TotalYield().Equal(decimal.NewFromFloat(1.5)))
}
