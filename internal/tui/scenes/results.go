package scenes

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/tui/components"
	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func renderSimulator(m *SimulatorModel) string {
	header := tuistyles.TitleStyle.Render(m.name)
	if m.desc != "" {
		header += "  " + tuistyles.SubtitleStyle.Render(m.desc)
	}

	var sliders strings.Builder
	for _, fs := range m.sliders {
		sliders.WriteString(fs.slider.Render())
		sliders.WriteString("\n")
	}
	sliders.WriteString("\n")
	sliders.WriteString(renderToggles(m.config))

	if m.err != nil {
		sliders.WriteString("\n")
		sliders.WriteString(tuistyles.ErrorStyle.Render("✗ " + m.err.Error()))
	}

	left := tuistyles.BorderStyle.Render(sliders.String())
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderMetrics(m),
		components.NewBalanceChart("Balance", m.balances).
			WithTarget(m.config.TargetPayoutPerParticipant.Mul(decimal.NewFromInt(int64(m.config.ParticipantCount)))).
			WithSize(48, 8).
			Render(),
		"",
		renderBreakdown(m.result),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if m.width > 0 && lipgloss.Width(body) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	help := tuistyles.SubtitleStyle.Render(
		"↑/↓ field • ←/→ adjust • m mode • 1 raffles • 2 loans • 3 fines • ctrl+s save")
	return header + "\n\n" + body + "\n\n" + help
}

func renderToggles(cfg domain.SimulationConfig) string {
	onOff := func(keyName, label string, on bool) string {
		mark := tuistyles.MetricNegativeStyle.Render("○")
		if on {
			mark = tuistyles.MetricPositiveStyle.Render("●")
		}
		return fmt.Sprintf("[%s] %s %s", keyName, mark, label)
	}

	mode := "fixed contribution"
	if cfg.Mode.IsTargetDriven() {
		mode = "solve for target"
	}
	aux := cfg.AuxiliaryIncome
	return strings.Join([]string{
		"[m] mode: " + tuistyles.SelectedItemStyle.Render(mode),
		onOff("1", "raffles", aux.Raffles.Enabled),
		onOff("2", "loans", aux.Loans.Enabled),
		onOff("3", "fines", aux.Fines.Enabled),
	}, "\n")
}

func renderMetrics(m *SimulatorModel) string {
	r := m.result
	payout := components.NewMetricCard("Payout per person", tuistyles.FormatCurrency(r.PayoutPerParticipant))
	if diff := r.PayoutPerParticipant.Sub(m.baseline.PayoutPerParticipant); !diff.IsZero() {
		payout.WithTrend(diff.IsPositive(), tuistyles.FormatCurrency(diff.Abs())+" vs loaded")
	}

	target := components.NewMetricCard("Target", tuistyles.FormatCurrency(m.config.TargetPayoutPerParticipant))
	if r.TargetMet {
		target.WithTrend(true, "met")
	} else {
		target.WithTrend(false, "short by "+tuistyles.FormatCurrency(r.Shortfall.Abs()))
	}

	contribution := components.NewMetricCard("Contribution", tuistyles.FormatCurrency(m.config.MonthlyContribution))
	if m.config.Mode.IsTargetDriven() {
		contribution.WithDescription("solved")
	}

	return components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Final balance", tuistyles.FormatCurrency(r.FinalBalance)),
		payout,
		target,
		contribution,
	}, 2)
}

func renderBreakdown(r domain.SimulationResult) string {
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Where the money comes from"))
	b.WriteString("\n")
	for _, src := range r.IncomeBreakdown {
		pct := "-"
		if !r.FinalBalance.IsZero() {
			pct = src.Amount.Div(r.FinalBalance).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		b.WriteString(fmt.Sprintf("  %-14s %16s %7s\n", src.Label, tuistyles.FormatCurrency(src.Amount), pct))
	}
	return strings.TrimRight(b.String(), "\n")
}
