package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a plain-text summary of each projection.
// Monthly adds the month-by-month balance table.
type ConsoleFormatter struct {
	Monthly bool
}

func (c ConsoleFormatter) Name() string {
	if c.Monthly {
		return "monthly"
	}
	return "console"
}

func (c ConsoleFormatter) Format(set *domain.ProjectionSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("projection set cannot be nil")
	}
	money := moneyForSet(set)
	var buf bytes.Buffer

	title := "CAIXINHA PROJECTION"
	if set.Group.Name != "" {
		title += " - " + set.Group.Name
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	if len(set.Projections) == 0 {
		fmt.Fprintln(&buf, "No scenarios.")
		return buf.Bytes(), nil
	}

	for i := range set.Projections {
		p := &set.Projections[i]
		cfg := p.Config

		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, p.Name)
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		fmt.Fprintf(&buf, "  Participants:          %d\n", cfg.ParticipantCount)
		fmt.Fprintf(&buf, "  Duration:              %d months\n", cfg.DurationMonths)
		fmt.Fprintf(&buf, "  Monthly yield:         %s\n", money.Percent(cfg.MonthlyYieldRate))
		if p.SolvedContribution {
			fmt.Fprintf(&buf, "  Target payout:         %s\n", money.Currency(p.RequestedTarget))
			fmt.Fprintf(&buf, "  Required contribution: %s per participant (solved)\n", money.Currency(cfg.MonthlyContribution))
		} else {
			fmt.Fprintf(&buf, "  Monthly contribution:  %s per participant\n", money.Currency(cfg.MonthlyContribution))
		}
		fmt.Fprintln(&buf)

		r := p.Result
		fmt.Fprintf(&buf, "  Final balance:         %s\n", money.Currency(r.FinalBalance))
		fmt.Fprintf(&buf, "  Payout per person:     %s\n", money.Currency(r.PayoutPerParticipant))
		if r.TargetMet {
			fmt.Fprintf(&buf, "  Target:                met (%s above)\n", money.Currency(r.Shortfall))
		} else {
			fmt.Fprintf(&buf, "  Target:                missed by %s\n", money.Currency(r.Shortfall.Abs()))
		}

		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "  Where the money comes from:")
		for _, src := range r.IncomeBreakdown {
			fmt.Fprintf(&buf, "    %-16s %18s  %6s\n", src.Label, money.Currency(src.Amount), share(src.Amount, r.FinalBalance))
		}

		if c.Monthly {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "  %5s %16s %14s %14s\n", "Month", "Balance", "Loan interest", "Yield")
			for _, s := range p.Snapshots {
				fmt.Fprintf(&buf, "  %5d %16s %14s %14s\n", s.Month,
					money.Number(s.Balance), money.Number(s.LoanInterestThisMonth), money.Number(s.YieldThisMonth))
			}
		}
	}

	return buf.Bytes(), nil
}

func share(part, total decimal.Decimal) string {
	if total.IsZero() {
		return "-"
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
