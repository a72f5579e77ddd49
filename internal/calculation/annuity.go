package calculation

import (
	"github.com/shopspring/decimal"
)

// MinimumContribution is the floor applied to every solved contribution
var MinimumContribution = decimal.NewFromInt(1)

// AnnuityDueFactor returns ((1+r)^n - 1)/r * (1+r) for a monthly rate given
// in percent. It is the future value of paying 1 at the start of each of n
// months. A zero rate degenerates to n.
func AnnuityDueFactor(monthlyRatePercent decimal.Decimal, months int) decimal.Decimal {
	n := decimal.NewFromInt(int64(months))
	if monthlyRatePercent.IsZero() {
		return n
	}
	r := monthlyRatePercent.Div(hundred)
	growth := decimal.NewFromInt(1).Add(r)
	return growth.Pow(n).Sub(decimal.NewFromInt(1)).Div(r).Mul(growth)
}

// SolveMonthlyContribution returns the per-participant monthly contribution
// that grows to targetPayoutPerParticipant under monthly compounding, net of
// auxiliaryIncomeEstimate. The result is rounded up to a whole currency unit
// and never drops below MinimumContribution, so degenerate inputs (auxiliary
// income already covering the target) still produce a usable number.
//
// participantCount and durationMonths must be at least 1; the engine guards
// this before calling.
func SolveMonthlyContribution(
	targetPayoutPerParticipant decimal.Decimal,
	participantCount int,
	durationMonths int,
	monthlyYieldRate decimal.Decimal,
	auxiliaryIncomeEstimate decimal.Decimal,
) decimal.Decimal {
	if participantCount < 1 || durationMonths < 1 {
		return MinimumContribution
	}

	participants := decimal.NewFromInt(int64(participantCount))
	totalTarget := targetPayoutPerParticipant.Mul(participants)
	netRequired := totalTarget.Sub(auxiliaryIncomeEstimate)

	totalMonthly := netRequired.Div(AnnuityDueFactor(monthlyYieldRate, durationMonths))

	perParticipant := totalMonthly.Div(participants).Ceil()
	return decimal.Max(MinimumContribution, perParticipant)
}
