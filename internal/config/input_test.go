package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile(filepath.Join("testdata", "caixinha.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Caixinha do escritório", config.Group.Name)
	assert.Equal(t, "BRL", config.Group.Currency)
	require.Len(t, config.Scenarios, 2)

	base := config.Scenarios[0].Simulation
	assert.Equal(t, domain.ModeContributionDriven, base.Mode)
	assert.Equal(t, 10, base.ParticipantCount)
	assert.True(t, base.MonthlyContribution.Equal(decimal.NewFromInt(150)))
	assert.True(t, base.MonthlyYieldRate.Equal(decimal.RequireFromString("0.5")))
	assert.False(t, base.AuxiliaryIncome.AnyEnabled())

	goal := config.Scenarios[1].Simulation
	assert.Equal(t, domain.ModeTargetDriven, goal.Mode)
	assert.True(t, goal.MonthlyContribution.IsZero())
	assert.True(t, goal.AuxiliaryIncome.Raffles.Enabled)
	assert.True(t, goal.AuxiliaryIncome.Raffles.TicketPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, goal.AuxiliaryIncome.Loans.PercentOfBalanceLoaned.Equal(decimal.NewFromInt(40)))
	assert.False(t, goal.AuxiliaryIncome.Fines.Enabled)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scenarios: [::"), 0644))
	_, err = parser.LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_UnknownMode(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(`
scenarios:
  - name: x
    simulation:
      participant_count: 1
      duration_months: 1
      mode: weekly
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func validSimulation() domain.SimulationConfig {
	return CreateExampleConfiguration().Scenarios[1].Simulation
}

func TestValidateSimulation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.SimulationConfig)
		wantErr string
	}{
		{"valid", func(*domain.SimulationConfig) {}, ""},
		{"no participants", func(c *domain.SimulationConfig) { c.ParticipantCount = 0 }, "participant count"},
		{"zero months", func(c *domain.SimulationConfig) { c.DurationMonths = 0 }, "duration"},
		{"too many months", func(c *domain.SimulationConfig) { c.DurationMonths = 61 }, "duration"},
		{"negative contribution", func(c *domain.SimulationConfig) { c.MonthlyContribution = decimal.NewFromInt(-1) }, "contribution"},
		{"negative yield", func(c *domain.SimulationConfig) { c.MonthlyYieldRate = decimal.NewFromInt(-1) }, "yield"},
		{"negative target", func(c *domain.SimulationConfig) { c.TargetPayoutPerParticipant = decimal.NewFromInt(-1) }, "target"},
		{"bad mode", func(c *domain.SimulationConfig) { c.Mode = "weekly" }, "invalid mode"},
		{"target mode without target", func(c *domain.SimulationConfig) {
			c.Mode = domain.ModeTargetDriven
			c.TargetPayoutPerParticipant = decimal.Zero
		}, "positive target"},
		{"negative ticket price", func(c *domain.SimulationConfig) { c.AuxiliaryIncome.Raffles.TicketPrice = decimal.NewFromInt(-5) }, "ticket price"},
		{"loaned above 100", func(c *domain.SimulationConfig) {
			c.AuxiliaryIncome.Loans.PercentOfBalanceLoaned = decimal.NewFromInt(101)
		}, "percent of balance loaned"},
		{"late above 100", func(c *domain.SimulationConfig) {
			c.AuxiliaryIncome.Fines.PercentMembersLate = decimal.NewFromInt(150)
		}, "percent of members late"},
		{"disabled stream is not checked", func(c *domain.SimulationConfig) {
			c.AuxiliaryIncome.Loans.Enabled = false
			c.AuxiliaryIncome.Loans.PercentOfBalanceLoaned = decimal.NewFromInt(500)
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := validSimulation()
			tt.mutate(&sim)
			err := ValidateSimulation(sim)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	assert.NoError(t, parser.ValidateConfiguration(CreateExampleConfiguration()))
	assert.Error(t, parser.ValidateConfiguration(nil))
	assert.Error(t, parser.ValidateConfiguration(&domain.Configuration{}))

	dup := CreateExampleConfiguration()
	dup.Scenarios[1].Name = "base"
	err := parser.ValidateConfiguration(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name")

	unnamed := CreateExampleConfiguration()
	unnamed.Scenarios[0].Name = "  "
	assert.Error(t, parser.ValidateConfiguration(unnamed))
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	original := CreateExampleConfiguration()

	require.NoError(t, SaveConfiguration(original, path))

	loaded, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, len(original.Scenarios))
	for i := range original.Scenarios {
		want := original.Scenarios[i].Simulation
		got := loaded.Scenarios[i].Simulation
		assert.Equal(t, original.Scenarios[i].Name, loaded.Scenarios[i].Name)
		assert.Equal(t, want.Mode, got.Mode)
		assert.True(t, want.MonthlyYieldRate.Equal(got.MonthlyYieldRate))
		assert.Equal(t, want.AuxiliaryIncome.AnyEnabled(), got.AuxiliaryIncome.AnyEnabled())
	}
}
