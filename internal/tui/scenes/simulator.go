package scenes

import (
	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/transform"
	"github.com/caixinha/caixinha/internal/tui/components"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Field identifies the config value a slider edits
type Field int

const (
	FieldParticipants Field = iota
	FieldDuration
	FieldContribution
	FieldTarget
	FieldYield
	FieldRafflesPerMonth
	FieldTicketPrice
	FieldTicketsPerMember
	FieldLoanRate
	FieldLoanPercent
	FieldFinePercent
	FieldMembersLate
)

type fieldSlider struct {
	field  Field
	slider *components.ParameterSlider
}

// SimulatorModel edits one scenario and keeps its projection current.
// Every accepted edit replaces config and result together.
type SimulatorModel struct {
	engine   *calculation.ProjectionEngine
	name     string
	desc     string
	config   domain.SimulationConfig
	result   domain.SimulationResult
	balances []decimal.Decimal
	baseline domain.SimulationResult

	sliders []fieldSlider
	focus   int
	err     error
	width   int
}

// NewSimulatorModel creates an empty simulator scene
func NewSimulatorModel(engine *calculation.ProjectionEngine) *SimulatorModel {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &SimulatorModel{engine: engine}
}

// SetScenario loads a scenario and computes its first projection
func (m *SimulatorModel) SetScenario(sc *domain.Scenario) error {
	if sc == nil {
		return nil
	}
	m.name = sc.Name
	m.desc = sc.Description
	m.focus = 0
	m.err = nil

	m.buildSliders(sc.Simulation)
	if err := m.recompute(sc.Simulation); err != nil {
		return err
	}
	m.baseline = m.result
	return nil
}

// SetSize updates the scene dimensions
func (m *SimulatorModel) SetSize(width, _ int) {
	m.width = width
}

// Config returns the current resolved config
func (m *SimulatorModel) Config() domain.SimulationConfig { return m.config }

// Scenario returns the scenario as currently edited
func (m *SimulatorModel) Scenario() domain.Scenario {
	return domain.Scenario{Name: m.name, Description: m.desc, Simulation: m.config}
}

// Result returns the result matching Config
func (m *SimulatorModel) Result() domain.SimulationResult { return m.result }

// Err returns the last rejected edit, if any
func (m *SimulatorModel) Err() error { return m.err }

// Focused returns the field under the cursor
func (m *SimulatorModel) Focused() Field {
	if len(m.sliders) == 0 {
		return FieldParticipants
	}
	return m.sliders[m.focus].field
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decf(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func (m *SimulatorModel) buildSliders(cfg domain.SimulationConfig) {
	aux := cfg.AuxiliaryIncome
	mk := func(f Field, label string, v, lo, hi, step decimal.Decimal, places int32, unit string) fieldSlider {
		s := components.NewParameterSlider(label, v, lo, hi, step).WithPlaces(places).WithUnit(unit)
		s.Fit(v)
		return fieldSlider{field: f, slider: s}
	}

	m.sliders = []fieldSlider{
		mk(FieldParticipants, "Participants", dec(int64(cfg.ParticipantCount)), dec(1), dec(100), dec(1), 0, ""),
		mk(FieldDuration, "Duration", dec(int64(cfg.DurationMonths)), dec(1), dec(config.MaxDurationMonths), dec(1), 0, " mo"),
		mk(FieldContribution, "Monthly contribution", cfg.MonthlyContribution, dec(0), dec(5000), dec(10), 2, ""),
		mk(FieldTarget, "Target payout", cfg.TargetPayoutPerParticipant, dec(0), dec(100000), dec(100), 2, ""),
		mk(FieldYield, "Monthly yield", cfg.MonthlyYieldRate, dec(0), dec(5), decf(0.05), 2, "%"),
		mk(FieldRafflesPerMonth, "Raffles per month", dec(int64(aux.Raffles.RafflesPerMonth)), dec(0), dec(10), dec(1), 0, ""),
		mk(FieldTicketPrice, "Ticket price", aux.Raffles.TicketPrice, dec(0), dec(500), dec(1), 2, ""),
		mk(FieldTicketsPerMember, "Tickets per member", dec(int64(aux.Raffles.TicketsPerMember)), dec(0), dec(50), dec(1), 0, ""),
		mk(FieldLoanRate, "Loan interest", aux.Loans.MonthlyInterestRate, dec(0), dec(20), decf(0.5), 1, "%"),
		mk(FieldLoanPercent, "Balance loaned", aux.Loans.PercentOfBalanceLoaned, dec(0), dec(100), dec(5), 0, "%"),
		mk(FieldFinePercent, "Late fine", aux.Fines.FinePercentOfContribution, dec(0), dec(100), dec(1), 0, "%"),
		mk(FieldMembersLate, "Members late", aux.Fines.PercentMembersLate, dec(0), dec(100), dec(5), 0, "%"),
	}
}

// syncSliders copies the resolved config back into the sliders. In target
// mode this shows the solved contribution and the rebased target. A value
// outside a slider's range widens the range instead of being clamped.
func (m *SimulatorModel) syncSliders() {
	cfg := m.config
	aux := cfg.AuxiliaryIncome
	for i, fs := range m.sliders {
		s := fs.slider
		s.IsFocused = i == m.focus
		switch fs.field {
		case FieldParticipants:
			s.Fit(dec(int64(cfg.ParticipantCount)))
		case FieldDuration:
			s.Fit(dec(int64(cfg.DurationMonths)))
		case FieldContribution:
			s.Fit(cfg.MonthlyContribution)
			s.Disabled = cfg.Mode.IsTargetDriven()
		case FieldTarget:
			s.Fit(cfg.TargetPayoutPerParticipant)
		case FieldYield:
			s.Fit(cfg.MonthlyYieldRate)
		case FieldRafflesPerMonth, FieldTicketPrice, FieldTicketsPerMember:
			s.Disabled = !aux.Raffles.Enabled
		case FieldLoanRate, FieldLoanPercent:
			s.Disabled = !aux.Loans.Enabled
		case FieldFinePercent, FieldMembersLate:
			s.Disabled = !aux.Fines.Enabled
		}
	}
}

// apply writes one slider value into a copy of cfg
func apply(cfg domain.SimulationConfig, f Field, v decimal.Decimal) domain.SimulationConfig {
	out := cfg.Clone()
	switch f {
	case FieldParticipants:
		out.ParticipantCount = int(v.IntPart())
	case FieldDuration:
		out.DurationMonths = int(v.IntPart())
	case FieldContribution:
		out.MonthlyContribution = v
	case FieldTarget:
		out.TargetPayoutPerParticipant = v
	case FieldYield:
		out.MonthlyYieldRate = v
	case FieldRafflesPerMonth:
		out.AuxiliaryIncome.Raffles.RafflesPerMonth = int(v.IntPart())
	case FieldTicketPrice:
		out.AuxiliaryIncome.Raffles.TicketPrice = v
	case FieldTicketsPerMember:
		out.AuxiliaryIncome.Raffles.TicketsPerMember = int(v.IntPart())
	case FieldLoanRate:
		out.AuxiliaryIncome.Loans.MonthlyInterestRate = v
	case FieldLoanPercent:
		out.AuxiliaryIncome.Loans.PercentOfBalanceLoaned = v
	case FieldFinePercent:
		out.AuxiliaryIncome.Fines.FinePercentOfContribution = v
	case FieldMembersLate:
		out.AuxiliaryIncome.Fines.PercentMembersLate = v
	}
	return out
}

// recompute validates a candidate config and, when it is accepted, swaps in
// the new config and result. A rejected candidate leaves both untouched.
func (m *SimulatorModel) recompute(candidate domain.SimulationConfig) error {
	if err := config.ValidateSimulation(candidate); err != nil {
		m.err = err
		return err
	}
	p, err := m.engine.Project(candidate)
	if err != nil {
		m.err = err
		return err
	}

	balances := make([]decimal.Decimal, len(p.Snapshots))
	for i, s := range p.Snapshots {
		balances[i] = s.Balance
	}

	m.config, m.result, m.balances = p.Config, p.Result, balances
	m.err = nil
	m.syncSliders()
	return nil
}

// Update handles messages for the simulator scene
func (m *SimulatorModel) Update(msg tea.Msg) (*SimulatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.moveFocus(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l", "+"))):
		m.adjust(true)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h", "-"))):
		m.adjust(false)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("m"))):
		m.ToggleMode()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("1"))):
		m.ToggleStream(transform.StreamRaffles)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("2"))):
		m.ToggleStream(transform.StreamLoans)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("3"))):
		m.ToggleStream(transform.StreamFines)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("ctrl+s"))):
		sc := m.Scenario()
		return m, func() tea.Msg { return tuimsg.SaveScenarioMsg{Scenario: sc} }
	}
	return m, nil
}

func (m *SimulatorModel) moveFocus(delta int) {
	m.sliders[m.focus].slider.IsFocused = false
	m.focus = (m.focus + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focus].slider.IsFocused = true
}

// adjust steps the focused slider and recomputes. The slider is rolled
// back when the engine rejects the new value.
func (m *SimulatorModel) adjust(up bool) {
	fs := m.sliders[m.focus]
	before := fs.slider.Value

	var moved bool
	if up {
		moved = fs.slider.Increment()
	} else {
		moved = fs.slider.Decrement()
	}
	if !moved {
		return
	}

	if err := m.recompute(apply(m.config, fs.field, fs.slider.Value)); err != nil {
		fs.slider.SetValue(before)
	}
}

// ToggleMode switches between fixed contribution and solving for the target
func (m *SimulatorModel) ToggleMode() {
	mode := domain.ModeTargetDriven
	if m.config.Mode.IsTargetDriven() {
		mode = domain.ModeContributionDriven
	}
	m.applyTransform(&transform.SetMode{Mode: mode})
}

// ToggleStream switches one auxiliary stream on or off; parameters are kept
func (m *SimulatorModel) ToggleStream(stream string) {
	aux := m.config.AuxiliaryIncome
	enabled := map[string]bool{
		transform.StreamRaffles: aux.Raffles.Enabled,
		transform.StreamLoans:   aux.Loans.Enabled,
		transform.StreamFines:   aux.Fines.Enabled,
	}
	current, ok := enabled[stream]
	if !ok {
		return
	}
	m.applyTransform(&transform.ToggleStream{Stream: stream, Enabled: !current})
}

func (m *SimulatorModel) applyTransform(t transform.ConfigTransform) {
	next, err := transform.ApplyTransforms(m.config, []transform.ConfigTransform{t})
	if err != nil {
		m.err = err
		return
	}
	_ = m.recompute(next)
}

// View renders the sliders above the projection
func (m *SimulatorModel) View() string {
	if len(m.sliders) == 0 {
		return "No scenario selected.\n\nPick one from the scenario list."
	}
	return renderSimulator(m)
}
