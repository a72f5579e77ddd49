package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestParameterSlider_StepsAndClamps(t *testing.T) {
	s := NewParameterSlider("Monthly yield", d(4.95), d(0), d(5), d(0.05)).WithPlaces(2).WithUnit("%")

	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(d(5)))
	assert.False(t, s.Increment(), "already at max")
	assert.Equal(t, "5.00%", s.Text())

	for i := 0; i < 100; i++ {
		s.Decrement()
	}
	assert.True(t, s.Value.Equal(d(0)))
	assert.False(t, s.Decrement())

	s.SetValue(d(42))
	assert.True(t, s.Value.Equal(d(5)), "SetValue clamps")
	assert.InDelta(t, 1.0, s.Percentage(), 1e-9)
}

func TestParameterSlider_Disabled(t *testing.T) {
	s := NewParameterSlider("Monthly contribution", d(162), d(0), d(5000), d(10))
	s.Disabled = true

	assert.False(t, s.Increment())
	assert.True(t, s.Value.Equal(d(162)))
	assert.Contains(t, s.Render(), "Monthly contribution")
}

func TestParameterSlider_FitWidensRange(t *testing.T) {
	s := NewParameterSlider("Participants", d(150), d(1), d(100), d(1))
	assert.True(t, s.Value.Equal(d(100)), "constructor clamps")

	s.Fit(d(150))
	assert.True(t, s.Value.Equal(d(150)))
	assert.True(t, s.Max.Equal(d(249)))
	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(d(151)), "edits step from the fitted value")

	s.Fit(d(120))
	assert.True(t, s.Max.Equal(d(249)), "values inside the range leave it alone")

	s.Fit(d(0))
	assert.True(t, s.Min.Equal(d(0)))
}

func TestParameterSlider_DegenerateRange(t *testing.T) {
	s := NewParameterSlider("Fixed", d(3), d(3), d(3), d(1))
	assert.Zero(t, s.Percentage())
	assert.NotEmpty(t, s.Render())
}

func TestBalanceChart(t *testing.T) {
	assert.Contains(t, NewBalanceChart("Balance", nil).Render(), "No data")

	balances := make([]decimal.Decimal, 60)
	for i := range balances {
		balances[i] = decimal.NewFromInt(int64((i + 1) * 1000))
	}
	chart := NewBalanceChart("Balance", balances).WithSize(12, 6).WithTarget(decimal.NewFromInt(30000))

	cols := chart.columns()
	require.Len(t, cols, 12)
	assert.Equal(t, 60000.0, cols[len(cols)-1])

	out := chart.Render()
	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "group target")
	assert.Contains(t, out, "month 60")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "R$950", formatChartValue(950))
	assert.Equal(t, "R$19K", formatChartValue(18595.86))
	assert.Equal(t, "R$1.5M", formatChartValue(1_500_000))
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Payout per person", "R$ 2.008,00").
		WithTrend(true, "R$ 149,00").
		WithDescription("solved")

	out := card.Render()
	assert.Contains(t, out, "Payout per person")
	assert.Contains(t, out, "▲ R$ 149,00")
	assert.Contains(t, out, "solved")

	assert.Empty(t, MetricGrid(nil, 2))
	assert.NotEmpty(t, MetricGrid([]*MetricCard{card, NewMetricCard("Target", "R$ 2.000,00")}, 2))
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(0, 4).WithLabel("Solving")
	assert.Equal(t, 0.0, p.Percentage())
	assert.False(t, p.IsComplete())

	p.Current = 2
	out := p.Render()
	assert.Contains(t, out, "Solving")
	assert.Contains(t, out, "2/4")
	assert.Equal(t, 15, strings.Count(out, "█"))

	p.Current = 6
	assert.Equal(t, 100.0, p.Percentage())
	assert.True(t, p.IsComplete())

	assert.Equal(t, 0.0, NewProgressBar(1, 0).Percentage())
}

func TestStepListAndSpinner(t *testing.T) {
	steps := StepList{Steps: []Step{
		{Label: "contribution", Status: StepDone, Message: "converged"},
		{Label: "duration", Status: StepFailed},
		{Label: "all"},
	}}
	out := steps.Render()
	assert.Contains(t, out, "● contribution")
	assert.Contains(t, out, "converged")
	assert.Contains(t, out, "✗ duration")
	assert.Contains(t, out, "○ all")

	s := Spinner{Message: "busy"}
	first := s.Render()
	assert.Contains(t, first, "busy")
	for range spinnerFrames {
		s.Next()
	}
	assert.Equal(t, first, s.Render())
}
