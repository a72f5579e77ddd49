package transform

import (
	"fmt"

	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/shopspring/decimal"
)

// SetMode switches between contribution-driven and target-driven runs
type SetMode struct {
	Mode domain.Mode
}

func (sm *SetMode) Name() string {
	return "set_mode"
}

func (sm *SetMode) Description() string {
	return fmt.Sprintf("Switch to %s mode", sm.Mode)
}

func (sm *SetMode) Validate(base domain.SimulationConfig) error {
	if sm.Mode != domain.ModeContributionDriven && sm.Mode != domain.ModeTargetDriven {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("invalid mode %q", sm.Mode), nil)
	}
	if sm.Mode.IsTargetDriven() && !base.TargetPayoutPerParticipant.IsPositive() {
		return NewTransformError(sm.Name(), "validate", "target mode requires a positive target payout", nil)
	}
	return nil
}

func (sm *SetMode) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.Mode = sm.Mode
	return modified, nil
}

// SetContribution fixes the monthly contribution per participant.
// In target mode the contribution is solved again on the next run.
type SetContribution struct {
	Amount decimal.Decimal
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Set monthly contribution to %s", sc.Amount.StringFixed(2))
}

func (sc *SetContribution) Validate(base domain.SimulationConfig) error {
	if sc.Amount.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "contribution cannot be negative", nil)
	}
	return nil
}

func (sc *SetContribution) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.MonthlyContribution = sc.Amount
	return modified, nil
}

// SetTarget changes the desired payout per participant
type SetTarget struct {
	Amount decimal.Decimal
}

func (st *SetTarget) Name() string {
	return "set_target"
}

func (st *SetTarget) Description() string {
	return fmt.Sprintf("Set target payout to %s", st.Amount.StringFixed(2))
}

func (st *SetTarget) Validate(base domain.SimulationConfig) error {
	if st.Amount.IsNegative() {
		return NewTransformError(st.Name(), "validate", "target cannot be negative", nil)
	}
	return nil
}

func (st *SetTarget) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.TargetPayoutPerParticipant = st.Amount
	return modified, nil
}

// SetYield replaces the monthly yield rate (percent)
type SetYield struct {
	Rate decimal.Decimal
}

func (sy *SetYield) Name() string {
	return "set_yield"
}

func (sy *SetYield) Description() string {
	return fmt.Sprintf("Set monthly yield to %s%%", sy.Rate.String())
}

func (sy *SetYield) Validate(base domain.SimulationConfig) error {
	if sy.Rate.IsNegative() {
		return NewTransformError(sy.Name(), "validate", "yield rate cannot be negative", nil)
	}
	return nil
}

func (sy *SetYield) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.MonthlyYieldRate = sy.Rate
	return modified, nil
}

// AdjustYield moves the monthly yield rate by Delta percentage points
type AdjustYield struct {
	Delta decimal.Decimal
}

func (ay *AdjustYield) Name() string {
	return "adjust_yield"
}

func (ay *AdjustYield) Description() string {
	if ay.Delta.IsNegative() {
		return fmt.Sprintf("Lower monthly yield by %s pp", ay.Delta.Abs().String())
	}
	return fmt.Sprintf("Raise monthly yield by %s pp", ay.Delta.String())
}

func (ay *AdjustYield) Validate(base domain.SimulationConfig) error {
	if base.MonthlyYieldRate.Add(ay.Delta).IsNegative() {
		return NewTransformError(ay.Name(), "validate",
			fmt.Sprintf("yield %s%% cannot be lowered by %s", base.MonthlyYieldRate.String(), ay.Delta.Abs().String()), nil)
	}
	return nil
}

func (ay *AdjustYield) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.MonthlyYieldRate = base.MonthlyYieldRate.Add(ay.Delta)
	return modified, nil
}

// SetDuration replaces the horizon in months
type SetDuration struct {
	Months int
}

func (sd *SetDuration) Name() string {
	return "set_duration"
}

func (sd *SetDuration) Description() string {
	return fmt.Sprintf("Run for %d months", sd.Months)
}

func (sd *SetDuration) Validate(base domain.SimulationConfig) error {
	if sd.Months < 1 || sd.Months > config.MaxDurationMonths {
		return NewTransformError(sd.Name(), "validate",
			fmt.Sprintf("duration must be between 1 and %d months, got %d", config.MaxDurationMonths, sd.Months), nil)
	}
	return nil
}

func (sd *SetDuration) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.DurationMonths = sd.Months
	return modified, nil
}

// ExtendDuration adds Months to the horizon; negative values shorten it
type ExtendDuration struct {
	Months int
}

func (ed *ExtendDuration) Name() string {
	return "extend_duration"
}

func (ed *ExtendDuration) Description() string {
	if ed.Months < 0 {
		return fmt.Sprintf("Shorten the caixinha by %d months", -ed.Months)
	}
	return fmt.Sprintf("Extend the caixinha by %d months", ed.Months)
}

func (ed *ExtendDuration) Validate(base domain.SimulationConfig) error {
	if ed.Months == 0 {
		return NewTransformError(ed.Name(), "validate", "months cannot be zero", nil)
	}
	if base.DurationMonths+ed.Months < 1 {
		return NewTransformError(ed.Name(), "validate",
			fmt.Sprintf("a %d month caixinha cannot be shortened by %d", base.DurationMonths, -ed.Months), nil)
	}
	if base.DurationMonths+ed.Months > config.MaxDurationMonths {
		return NewTransformError(ed.Name(), "validate",
			fmt.Sprintf("a %d month caixinha cannot run past %d months", base.DurationMonths, config.MaxDurationMonths), nil)
	}
	return nil
}

func (ed *ExtendDuration) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.DurationMonths = base.DurationMonths + ed.Months
	return modified, nil
}

// SetParticipants changes the number of members
type SetParticipants struct {
	Count int
}

func (sp *SetParticipants) Name() string {
	return "set_participants"
}

func (sp *SetParticipants) Description() string {
	return fmt.Sprintf("Set participants to %d", sp.Count)
}

func (sp *SetParticipants) Validate(base domain.SimulationConfig) error {
	if sp.Count < 1 {
		return NewTransformError(sp.Name(), "validate", "at least one participant is required", nil)
	}
	return nil
}

func (sp *SetParticipants) Apply(base domain.SimulationConfig) (domain.SimulationConfig, error) {
	modified := base.Clone()
	modified.ParticipantCount = sp.Count
	return modified, nil
}
