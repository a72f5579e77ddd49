package domain

import (
	"github.com/shopspring/decimal"
)

// Income source labels used in breakdowns and charts
const (
	SourceContributions = "Contributions"
	SourceYield         = "Yield"
	SourceRaffles       = "Raffles"
	SourceFines         = "Fines"
	SourceLoanInterest  = "Loan interest"
)

// MonthlySnapshot is the state of the pooled fund at the end of one month.
// Values keep full precision; rounding is a presentation concern.
type MonthlySnapshot struct {
	Month                   int             `json:"month"`
	Balance                 decimal.Decimal `json:"balance"`
	CumulativeContributions decimal.Decimal `json:"cumulativeContributions"`
	CumulativeRaffleIncome  decimal.Decimal `json:"cumulativeRaffleIncome"`
	CumulativeFineIncome    decimal.Decimal `json:"cumulativeFineIncome"`
	CumulativeLoanInterest  decimal.Decimal `json:"cumulativeLoanInterest"`
	LoanInterestThisMonth   decimal.Decimal `json:"loanInterestThisMonth"` // depends on the balance of this month
	YieldThisMonth          decimal.Decimal `json:"yieldThisMonth"`
}

// IncomeSource is one slice of the final balance composition
type IncomeSource struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// SimulationResult summarises a completed run
type SimulationResult struct {
	FinalBalance         decimal.Decimal `json:"finalBalance"`
	PayoutPerParticipant decimal.Decimal `json:"payoutPerParticipant"`
	IncomeBreakdown      []IncomeSource  `json:"incomeBreakdown"`
	TargetMet            bool            `json:"targetMet"`
	Shortfall            decimal.Decimal `json:"shortfall"` // negative when the target is missed
}

// BreakdownAmount returns the amount recorded for a label, or zero
func (r SimulationResult) BreakdownAmount(label string) decimal.Decimal {
	for _, src := range r.IncomeBreakdown {
		if src.Label == label {
			return src.Amount
		}
	}
	return decimal.Zero
}

// Projection is the outcome of one orchestrator run: the resolved config,
// the monthly time series and the derived result.
type Projection struct {
	Name               string            `json:"name,omitempty"`
	Config             SimulationConfig  `json:"config"`
	Snapshots          []MonthlySnapshot `json:"snapshots"`
	Result             SimulationResult  `json:"result"`
	SolvedContribution bool              `json:"solvedContribution"`

	// RequestedTarget is the target the run was asked to meet. In target mode
	// Config carries the rebased target (the achieved payout) instead.
	RequestedTarget decimal.Decimal `json:"requestedTarget"`
}

// LastSnapshot returns the final month, if any
func (p *Projection) LastSnapshot() (MonthlySnapshot, bool) {
	if len(p.Snapshots) == 0 {
		return MonthlySnapshot{}, false
	}
	return p.Snapshots[len(p.Snapshots)-1], true
}

// TotalYield sums the yield credited across all months
func (p *Projection) TotalYield() decimal.Decimal {
	total := decimal.Zero
	for _, s := range p.Snapshots {
		total = total.Add(s.YieldThisMonth)
	}
	return total
}

// ProjectionSet holds the projections of every scenario in a configuration
type ProjectionSet struct {
	Group       GroupInfo    `json:"group"`
	Projections []Projection `json:"projections"`
}
