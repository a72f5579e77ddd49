package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnnuityDueFactor(t *testing.T) {
	assert.True(t, AnnuityDueFactor(decimal.Zero, 12).Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "12.397240", AnnuityDueFactor(dec("0.5"), 12).StringFixed(6))
	assert.True(t, AnnuityDueFactor(dec("1"), 1).Equal(dec("1.01")), "one month earns one month of yield")
}

func TestSolveMonthlyContribution(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		participants int
		months       int
		rate         string
		auxEstimate  string
		want         string
	}{
		{"compound growth rounds up", "2000", 10, 12, "0.5", "0", "162"},
		{"zero yield divides evenly", "1200", 10, 12, "0", "0", "100"},
		{"zero yield rounds up", "1201", 10, 12, "0", "0", "101"},
		{"auxiliary income lowers contribution", "1200", 10, 12, "0", "2400", "80"},
		{"auxiliary income above target clamps to floor", "1000", 10, 12, "0.5", "50000", "1"},
		{"zero target clamps to floor", "0", 10, 12, "0.5", "0", "1"},
		{"zero participants clamps to floor", "2000", 0, 12, "0.5", "0", "1"},
		{"zero months clamps to floor", "2000", 10, 0, "0", "0", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveMonthlyContribution(dec(tt.target), tt.participants, tt.months, dec(tt.rate), dec(tt.auxEstimate))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
