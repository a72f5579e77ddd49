package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how the monthly contribution is obtained for a run
type Mode string

const (
	// ModeContributionDriven simulates a fixed, user supplied monthly contribution
	ModeContributionDriven Mode = "contribution_driven"
	// ModeTargetDriven solves the contribution needed to reach a payout target
	ModeTargetDriven Mode = "target_driven"
)

// ParseMode converts user input (CLI flags, transform params) into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeContributionDriven), "contribution":
		return ModeContributionDriven, nil
	case string(ModeTargetDriven), "target":
		return ModeTargetDriven, nil
	default:
		return "", fmt.Errorf("unknown mode %q (valid: %s, %s)", s, ModeContributionDriven, ModeTargetDriven)
	}
}

// IsTargetDriven reports whether the contribution must be solved from the target
func (m Mode) IsTargetDriven() bool {
	return m == ModeTargetDriven
}

// RaffleStream configures in-group raffle ("rifa") income
type RaffleStream struct {
	Enabled          bool            `yaml:"enabled" json:"enabled"`
	RafflesPerMonth  int             `yaml:"raffles_per_month" json:"raffles_per_month"`
	TicketPrice      decimal.Decimal `yaml:"ticket_price" json:"ticket_price"`
	TicketsPerMember int             `yaml:"tickets_per_member" json:"tickets_per_member"`
}

// LoanStream configures interest earned on loans made from the pooled balance
type LoanStream struct {
	Enabled                bool            `yaml:"enabled" json:"enabled"`
	MonthlyInterestRate    decimal.Decimal `yaml:"monthly_interest_rate" json:"monthly_interest_rate"`         // percent per month
	PercentOfBalanceLoaned decimal.Decimal `yaml:"percent_of_balance_loaned" json:"percent_of_balance_loaned"` // 0..100
}

// FineStream configures late-payment fines charged on the monthly contribution
type FineStream struct {
	Enabled                   bool            `yaml:"enabled" json:"enabled"`
	FinePercentOfContribution decimal.Decimal `yaml:"fine_percent_of_contribution" json:"fine_percent_of_contribution"`
	PercentMembersLate        decimal.Decimal `yaml:"percent_members_late" json:"percent_members_late"` // 0..100
}

// AuxiliaryIncome groups the independently toggleable non-contribution streams
type AuxiliaryIncome struct {
	Raffles RaffleStream `yaml:"raffles" json:"raffles"`
	Loans   LoanStream   `yaml:"loans" json:"loans"`
	Fines   FineStream   `yaml:"fines" json:"fines"`
}

// AnyEnabled reports whether at least one auxiliary stream is switched on
func (a AuxiliaryIncome) AnyEnabled() bool {
	return a.Raffles.Enabled || a.Loans.Enabled || a.Fines.Enabled
}

// SimulationConfig is the complete input of one projection run.
// Rates are expressed in percent (0.5 means 0.5% per month).
type SimulationConfig struct {
	ParticipantCount           int             `yaml:"participant_count" json:"participant_count"`
	DurationMonths             int             `yaml:"duration_months" json:"duration_months"`
	MonthlyContribution        decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
	MonthlyYieldRate           decimal.Decimal `yaml:"monthly_yield_rate" json:"monthly_yield_rate"`
	TargetPayoutPerParticipant decimal.Decimal `yaml:"target_payout_per_participant" json:"target_payout_per_participant"`
	Mode                       Mode            `yaml:"mode" json:"mode"`
	AuxiliaryIncome            AuxiliaryIncome `yaml:"auxiliary_income" json:"auxiliary_income"`
}

// Clone returns an independent copy of the config.
// All fields are values, so a plain copy never aliases the original.
func (c SimulationConfig) Clone() SimulationConfig {
	return c
}

// TotalMonthlyContribution is the group-wide contribution added each month
func (c SimulationConfig) TotalMonthlyContribution() decimal.Decimal {
	return c.MonthlyContribution.Mul(decimal.NewFromInt(int64(c.ParticipantCount)))
}

// Scenario is a named simulation stored in a configuration file
type Scenario struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Simulation  SimulationConfig `yaml:"simulation" json:"simulation"`
}

// GroupInfo carries display-only metadata about the caixinha
type GroupInfo struct {
	Name     string `yaml:"name" json:"name"`
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"` // ISO 4217, e.g. BRL
	Locale   string `yaml:"locale,omitempty" json:"locale,omitempty"`     // BCP 47, e.g. pt-BR
}

// Configuration represents the complete input file
type Configuration struct {
	Group     GroupInfo  `yaml:"group" json:"group"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the scenario with the given name, case-insensitively
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if strings.EqualFold(c.Scenarios[i].Name, name) {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
