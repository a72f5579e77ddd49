package transform

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// Stream names accepted by ToggleStream
const (
	StreamRaffles = "raffles"
	StreamLoans   = "loans"
	StreamFines   = "fines"
	StreamAll     = "all"
)

// ToggleStream switches an auxiliary income stream on or off.
// The stream's parameters are kept so it can be switched back on.
type ToggleStream struct {
	Stream  string
	Enabled bool
}

func (ts *ToggleStream) Name() string {
	return "toggle_stream"
}

func (ts *ToggleStream) Description() string {
	state := "Disable"
	if ts.Enabled {
		state = "Enable"
	}
	if ts.Stream == StreamAll {
		return state + " all auxiliary income"
	}
	return fmt.Sprintf("%s %s", state, ts.Stream)
}

func (ts *ToggleStream) Validate(base domain.SimulationConfig) error {
	switch strings.ToLower(ts.Stream) {
	case StreamRaffles, StreamLoans, StreamFines, StreamAll:
		return nil
	default:
		return NewTransformError(ts.Name(), "validate",
			fmt.Sprintf("unknown stream %q (valid: raffles, loans, fines, all)", ts.Stream), nil)
	}
}

func (ts *ToggleStream) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	aux := &modified.AuxiliaryIncome

	switch strings.ToLower(ts.Stream) {
	case StreamRaffles:
		aux.Raffles.Enabled = ts.Enabled
	case StreamLoans:
		aux.Loans.Enabled = ts.Enabled
	case StreamFines:
		aux.Fines.Enabled = ts.Enabled
	case StreamAll:
		aux.Raffles.Enabled = ts.Enabled
		aux.Loans.Enabled = ts.Enabled
		aux.Fines.Enabled = ts.Enabled
	default:
		return base, NewTransformError(ts.Name(), "apply", fmt.Sprintf("unknown stream %q", ts.Stream), nil)
	}
	return modified, nil
}

// ScaleRaffles multiplies the number of raffles held each month.
// The result is rounded down to whole raffles.
type ScaleRaffles struct {
	Factor decimal.Decimal
}

func (sr *ScaleRaffles) Name() string {
	return "scale_raffles"
}

func (sr *ScaleRaffles) Description() string {
	return fmt.Sprintf("Scale raffles per month by %sx", sr.Factor.String())
}

func (sr *ScaleRaffles) Validate(base domain.SimulationConfig) error {
	if sr.Factor.IsNegative() {
		return NewTransformError(sr.Name(), "validate", "factor cannot be negative", nil)
	}
	if !base.AuxiliaryIncome.Raffles.Enabled {
		return NewTransformError(sr.Name(), "validate", "raffles are not enabled", nil)
	}
	return nil
}

func (sr *ScaleRaffles) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	current := decimal.NewFromInt(int64(base.AuxiliaryIncome.Raffles.RafflesPerMonth))
	modified.AuxiliaryIncome.Raffles.RafflesPerMonth = int(current.Mul(sr.Factor).Floor().IntPart())
	return modified, nil
}
