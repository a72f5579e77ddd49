// Package tuistyles holds the lipgloss palette shared by the TUI packages.
// It lives apart from package tui so that components and scenes can import it
// without a cycle.
package tuistyles

import (
	"github.com/caixinha/caixinha/internal/output"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#00897B")
	ColorAccent    = lipgloss.Color("#F9A825")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#1E88E5")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#78909C")
	ColorBorder     = lipgloss.Color("#455A64")

	ColorChartBalance = lipgloss.Color("#66BB6A")
	ColorChartTarget  = lipgloss.Color("#FFCA28")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)
)

// MetricTrendStyle colours a change green when it is good news
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns the arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders an amount the way reports do
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
