package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BalanceChart draws the pooled balance month by month as vertical bars,
// with an optional horizontal line at the group-wide target.
type BalanceChart struct {
	Title  string
	Points []float64
	Target float64 // Zero hides the target line
	Width  int     // Columns available for bars
	Height int
}

// NewBalanceChart creates a chart from monthly balances
func NewBalanceChart(title string, balances []decimal.Decimal) *BalanceChart {
	points := make([]float64, len(balances))
	for i, b := range balances {
		points[i] = b.InexactFloat64()
	}
	return &BalanceChart{
		Title:  title,
		Points: points,
		Width:  48,
		Height: 10,
	}
}

// WithTarget sets the level of the target line
func (c *BalanceChart) WithTarget(target decimal.Decimal) *BalanceChart {
	c.Target = target.InexactFloat64()
	return c
}

// WithSize sets the chart dimensions
func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *BalanceChart) Render() string {
	if len(c.Points) == 0 || c.Height < 2 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title))
		sb.WriteString("\n")
	}

	columns := c.columns()
	top := math.Max(c.Target, maxOf(columns))
	if top <= 0 {
		top = 1
	}

	// Row where the target line sits, counted from the top
	targetRow := -1
	if c.Target > 0 {
		targetRow = c.Height - int(math.Ceil(c.Target/top*float64(c.Height)))
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(10).Align(lipgloss.Right)
	bar := lipgloss.NewStyle().Foreground(tuistyles.ColorChartBalance)
	line := lipgloss.NewStyle().Foreground(tuistyles.ColorChartTarget)

	for row := 0; row < c.Height; row++ {
		level := top * float64(c.Height-row) / float64(c.Height)
		label := ""
		if row == 0 || row == c.Height-1 || row == targetRow {
			label = formatChartValue(level)
		}
		sb.WriteString(axis.Render(label))
		sb.WriteString(" │")

		for _, v := range columns {
			switch {
			case v >= level-top/float64(c.Height)/2:
				sb.WriteString(bar.Render("█"))
			case row == targetRow:
				sb.WriteString(line.Render("┄"))
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat(" ", 11))
	sb.WriteString("└")
	sb.WriteString(strings.Repeat("─", len(columns)))
	sb.WriteString("\n")
	sb.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("%s month 1 … month %d", strings.Repeat(" ", 11), len(c.Points))))

	if c.Target > 0 {
		sb.WriteString("\n")
		sb.WriteString(line.Render("┄") + tuistyles.SubtitleStyle.Render(" group target"))
	}
	return sb.String()
}

// columns maps the monthly points onto at most Width bars. Each bar shows
// the last month it covers, so the final bar is always the final balance.
func (c *BalanceChart) columns() []float64 {
	n := len(c.Points)
	if c.Width <= 0 || n <= c.Width {
		return c.Points
	}

	out := make([]float64, c.Width)
	for i := range out {
		idx := (i+1)*n/c.Width - 1
		out[i] = c.Points[idx]
	}
	return out
}

func maxOf(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, v)
	}
	return m
}

// formatChartValue formats a value for the Y axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("R$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("R$%.0fK", value/1000)
	default:
		return fmt.Sprintf("R$%.0f", value)
	}
}
