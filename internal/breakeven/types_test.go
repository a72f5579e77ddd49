package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	for _, s := range []string{"contribution", "duration", "all"} {
		got, err := ParseTarget(s)
		require.NoError(t, err)
		assert.Equal(t, OptimizationTarget(s), got)
	}

	_, err := ParseTarget("yield")
	assert.Error(t, err)
}

func TestConstraints_Validate(t *testing.T) {
	dec := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	months := func(v int) *int { return &v }

	tests := []struct {
		name    string
		c       Constraints
		wantErr bool
	}{
		{"empty", Constraints{}, false},
		{"full", Constraints{TargetPayout: dec(2000), MinContribution: dec(50), MaxContribution: dec(300), MinMonths: months(6), MaxMonths: months(24)}, false},
		{"zero target", Constraints{TargetPayout: dec(0)}, true},
		{"negative min contribution", Constraints{MinContribution: dec(-1)}, true},
		{"min above max contribution", Constraints{MinContribution: dec(300), MaxContribution: dec(50)}, true},
		{"months out of range", Constraints{MaxMonths: months(61)}, true},
		{"zero min months", Constraints{MinMonths: months(0)}, true},
		{"min above max months", Constraints{MinMonths: months(24), MaxMonths: months(12)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	err := &BreakEvenError{Operation: "optimize_duration", Message: "payout too low", Cause: ErrTargetUnreachable}
	assert.Equal(t, "optimize_duration: payout too low: "+ErrTargetUnreachable.Error(), err.Error())
	assert.True(t, errors.Is(err, ErrTargetUnreachable))

	bare := &BreakEvenError{Operation: "parse_target", Message: "bad"}
	assert.Equal(t, "parse_target: bad", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
