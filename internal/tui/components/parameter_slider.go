package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays one adjustable config field with a visual bar.
// Values are decimals so that repeated steps never drift.
type ParameterSlider struct {
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Step      decimal.Decimal
	Places    int32  // Decimal places shown
	Unit      string // e.g. "%", " months"
	Width     int
	IsFocused bool
	Disabled  bool // Shown dimmed; the value is derived, not edited
}

// NewParameterSlider creates a slider over whole numbers
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	s := &ParameterSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 24,
	}
	s.SetValue(value)
	return s
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithPlaces sets how many decimal places are displayed
func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

// WithWidth sets the slider bar width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// Increment raises the value by one step, stopping at Max
func (p *ParameterSlider) Increment() bool {
	return p.move(p.Step)
}

// Decrement lowers the value by one step, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.move(p.Step.Neg())
}

func (p *ParameterSlider) move(delta decimal.Decimal) bool {
	if p.Disabled {
		return false
	}
	before := p.Value
	p.SetValue(p.Value.Add(delta))
	return !before.Equal(p.Value)
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Min(p.Max, decimal.Max(p.Min, value))
}

// Fit sets the value and widens the range when the value lies outside it.
// Above Max the range grows by its own span, so the value can still go up.
func (p *ParameterSlider) Fit(value decimal.Decimal) {
	if value.LessThan(p.Min) {
		p.Min = value
	}
	if value.GreaterThan(p.Max) {
		p.Max = value.Add(p.Max.Sub(p.Min))
	}
	p.Value = value
}

// Percentage returns the position of the value within the range
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Text returns the formatted value with its unit
func (p *ParameterSlider) Text() string {
	return p.Value.StringFixed(p.Places) + p.Unit
}

// Render returns a single line: label, value and bar
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = "▸ "
	}
	if p.Disabled {
		labelStyle = labelStyle.Foreground(tuistyles.ColorMuted)
		valueStyle = valueStyle.Foreground(tuistyles.ColorMuted)
	}

	label := labelStyle.Width(26).Render(p.Label)
	value := valueStyle.Width(14).Align(lipgloss.Right).Render(p.Text())
	return fmt.Sprintf("%s%s %s %s", marker, label, value, p.renderBar())
}

func (p *ParameterSlider) renderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	filled = max(0, min(p.Width, filled))

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}
	if p.Disabled {
		thumb = tuistyles.SliderTrackStyle
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.Width; i++ {
		switch {
		case i == filled || (i == p.Width-1 && filled == p.Width):
			bar.WriteString(thumb.Render("●"))
		case i < filled:
			bar.WriteString(thumb.Render("━"))
		default:
			bar.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
