package calculation

import (
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RaffleIncome returns one month of raffle sales. The amount is the same every month.
func RaffleIncome(cfg domain.SimulationConfig) decimal.Decimal {
	r := cfg.AuxiliaryIncome.Raffles
	if !r.Enabled || cfg.ParticipantCount <= 0 {
		return decimal.Zero
	}
	tickets := int64(cfg.ParticipantCount) * int64(r.TicketsPerMember) * int64(r.RafflesPerMonth)
	return decimal.NewFromInt(tickets).Mul(r.TicketPrice)
}

// LoanInterestIncome returns the interest earned this month on the share of
// currentBalance that is lent out to members.
func LoanInterestIncome(currentBalance decimal.Decimal, cfg domain.SimulationConfig) decimal.Decimal {
	l := cfg.AuxiliaryIncome.Loans
	if !l.Enabled {
		return decimal.Zero
	}
	loaned := currentBalance.Mul(l.PercentOfBalanceLoaned).Div(hundred)
	return loaned.Mul(l.MonthlyInterestRate).Div(hundred)
}

// FineIncome returns one month of late-payment fines. The number of late
// members is rounded to a whole person; the fine is a percentage of the
// per-participant contribution, so it must be recomputed whenever the
// contribution changes.
func FineIncome(cfg domain.SimulationConfig) decimal.Decimal {
	f := cfg.AuxiliaryIncome.Fines
	if !f.Enabled || cfg.ParticipantCount <= 0 || cfg.MonthlyContribution.IsZero() {
		return decimal.Zero
	}
	lateMembers := decimal.NewFromInt(int64(cfg.ParticipantCount)).
		Mul(f.PercentMembersLate).
		Div(hundred).
		Round(0)
	return lateMembers.Mul(cfg.MonthlyContribution).Mul(f.FinePercentOfContribution).Div(hundred)
}

// AuxiliaryIncomeEstimate is the non-contribution income expected over the
// whole horizon for the annuity solve. Loan interest is left out because it
// depends on the balance, which depends on the contribution being solved.
func AuxiliaryIncomeEstimate(cfg domain.SimulationConfig) decimal.Decimal {
	perMonth := RaffleIncome(cfg).Add(FineIncome(cfg))
	return perMonth.Mul(decimal.NewFromInt(int64(cfg.DurationMonths)))
}
