package calculation

import (
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// Simulate runs the month-by-month balance evolution for a config whose
// contribution is already resolved. Each month applies, in this order:
// contributions, raffle income, fines, loan interest on the resulting balance,
// then yield on the balance after loan interest. Changing the order changes
// the compounding base and therefore the numbers.
//
// A config with no months produces an empty slice.
func Simulate(cfg domain.SimulationConfig) []domain.MonthlySnapshot {
	return simulate(cfg, NopLogger{})
}

func simulate(cfg domain.SimulationConfig, logger Logger) []domain.MonthlySnapshot {
	if cfg.DurationMonths <= 0 {
		return []domain.MonthlySnapshot{}
	}

	snapshots := make([]domain.MonthlySnapshot, 0, cfg.DurationMonths)

	contribution := cfg.TotalMonthlyContribution()
	raffle := RaffleIncome(cfg)
	fine := FineIncome(cfg)
	yieldRate := cfg.MonthlyYieldRate.Div(hundred)

	balance := decimal.Zero
	var cumContrib, cumRaffle, cumFine, cumLoan decimal.Decimal

	for month := 1; month <= cfg.DurationMonths; month++ {
		balance = balance.Add(contribution)
		balance = balance.Add(raffle)
		balance = balance.Add(fine)

		loanInterest := LoanInterestIncome(balance, cfg)
		balance = balance.Add(loanInterest)

		yieldAmount := balance.Mul(yieldRate)
		balance = balance.Add(yieldAmount)

		cumContrib = cumContrib.Add(contribution)
		cumRaffle = cumRaffle.Add(raffle)
		cumFine = cumFine.Add(fine)
		cumLoan = cumLoan.Add(loanInterest)

		snapshots = append(snapshots, domain.MonthlySnapshot{
			Month:                   month,
			Balance:                 balance,
			CumulativeContributions: cumContrib,
			CumulativeRaffleIncome:  cumRaffle,
			CumulativeFineIncome:    cumFine,
			CumulativeLoanInterest:  cumLoan,
			LoanInterestThisMonth:   loanInterest,
			YieldThisMonth:          yieldAmount,
		})

		logger.Debugf("month %d: balance=%s loan_interest=%s yield=%s",
			month, balance.StringFixed(2), loanInterest.StringFixed(2), yieldAmount.StringFixed(2))
	}

	return snapshots
}
