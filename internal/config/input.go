package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxDurationMonths bounds the horizon accepted from input files
const MaxDurationMonths = 60

var hundred = decimal.NewFromInt(100)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates YAML configuration bytes
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range config.Scenarios {
		mode, err := domain.ParseMode(string(config.Scenarios[i].Simulation.Mode))
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		config.Scenarios[i].Simulation.Mode = mode
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is required")
	}
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if strings.TrimSpace(scenario.Name) == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		key := strings.ToLower(scenario.Name)
		if seen[key] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[key] = true

		if err := ValidateSimulation(scenario.Simulation); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
	}
	return nil
}

// ValidateSimulation checks the form-level rules for a single simulation.
// The calculation package still guards its own divisions.
func ValidateSimulation(sim domain.SimulationConfig) error {
	if sim.ParticipantCount < 1 {
		return fmt.Errorf("participant count must be at least 1")
	}
	if sim.DurationMonths < 1 || sim.DurationMonths > MaxDurationMonths {
		return fmt.Errorf("duration must be between 1 and %d months", MaxDurationMonths)
	}
	if sim.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if sim.MonthlyYieldRate.IsNegative() {
		return fmt.Errorf("monthly yield rate cannot be negative")
	}
	if sim.TargetPayoutPerParticipant.IsNegative() {
		return fmt.Errorf("target payout cannot be negative")
	}
	switch sim.Mode {
	case domain.ModeContributionDriven, domain.ModeTargetDriven:
	default:
		return fmt.Errorf("invalid mode %q", sim.Mode)
	}
	if sim.Mode.IsTargetDriven() && !sim.TargetPayoutPerParticipant.IsPositive() {
		return fmt.Errorf("target mode requires a positive target payout")
	}

	aux := sim.AuxiliaryIncome
	if aux.Raffles.Enabled {
		if aux.Raffles.RafflesPerMonth < 0 || aux.Raffles.TicketsPerMember < 0 {
			return fmt.Errorf("raffles: counts cannot be negative")
		}
		if aux.Raffles.TicketPrice.IsNegative() {
			return fmt.Errorf("raffles: ticket price cannot be negative")
		}
	}
	if aux.Loans.Enabled {
		if aux.Loans.MonthlyInterestRate.IsNegative() {
			return fmt.Errorf("loans: interest rate cannot be negative")
		}
		if err := validatePercent("loans: percent of balance loaned", aux.Loans.PercentOfBalanceLoaned); err != nil {
			return err
		}
	}
	if aux.Fines.Enabled {
		if aux.Fines.FinePercentOfContribution.IsNegative() {
			return fmt.Errorf("fines: fine percent cannot be negative")
		}
		if err := validatePercent("fines: percent of members late", aux.Fines.PercentMembersLate); err != nil {
			return err
		}
	}
	return nil
}

func validatePercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%s must be between 0 and 100, got %s", field, v.String())
	}
	return nil
}

// CreateExampleConfiguration returns a configuration showing both modes
func CreateExampleConfiguration() *domain.Configuration {
	base := domain.SimulationConfig{
		ParticipantCount:           10,
		DurationMonths:             12,
		MonthlyContribution:        decimal.NewFromInt(150),
		MonthlyYieldRate:           decimal.NewFromFloat(0.5),
		TargetPayoutPerParticipant: decimal.NewFromInt(2000),
		Mode:                       domain.ModeContributionDriven,
	}

	withIncome := base
	withIncome.AuxiliaryIncome = domain.AuxiliaryIncome{
		Raffles: domain.RaffleStream{Enabled: true, RafflesPerMonth: 1, TicketPrice: decimal.NewFromInt(10), TicketsPerMember: 2},
		Loans:   domain.LoanStream{Enabled: true, MonthlyInterestRate: decimal.NewFromInt(3), PercentOfBalanceLoaned: decimal.NewFromInt(30)},
		Fines:   domain.FineStream{Enabled: true, FinePercentOfContribution: decimal.NewFromInt(10), PercentMembersLate: decimal.NewFromInt(20)},
	}

	target := base
	target.Mode = domain.ModeTargetDriven

	return &domain.Configuration{
		Group: domain.GroupInfo{Name: "Caixinha da família", Currency: "BRL", Locale: "pt-BR"},
		Scenarios: []domain.Scenario{
			{Name: "Base", Description: "Contribuição fixa de R$ 150", Simulation: base},
			{Name: "Com renda extra", Description: "Rifas, empréstimos e multas", Simulation: withIncome},
			{Name: "Meta R$ 2000", Description: "Calcula a contribuição para a meta", Simulation: target},
		},
	}
}

// SaveConfiguration saves a configuration to a file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
