package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/breakeven"
	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/tui/components"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// OptimizeStage is where the goal-seeking scene is in its flow
type OptimizeStage int

const (
	StageSelectTarget OptimizeStage = iota
	StageSetPayout
	StageRunning
	StageResults
)

var optimizeChoices = []struct {
	label   string
	targets []breakeven.OptimizationTarget
}{
	{"Smallest monthly contribution", []breakeven.OptimizationTarget{breakeven.OptimizeContribution}},
	{"Fewest months at the current contribution", []breakeven.OptimizationTarget{breakeven.OptimizeDuration}},
	{"Both", []breakeven.OptimizationTarget{breakeven.OptimizeContribution, breakeven.OptimizeDuration}},
}

// OptimizeModel solves for the contribution or the duration that reaches a
// target payout. Each target is one step of the run.
type OptimizeModel struct {
	solver   *breakeven.Solver
	scenario *domain.Scenario

	stage  OptimizeStage
	cursor int
	payout textinput.Model
	target decimal.Decimal

	targets  []breakeven.OptimizationTarget
	steps    components.StepList
	progress *components.ProgressBar
	results  []*breakeven.OptimizationResult
	err      error
}

// NewOptimizeModel creates the goal-seeking scene
func NewOptimizeModel(engine *calculation.ProjectionEngine) *OptimizeModel {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	ti := textinput.New()
	ti.Placeholder = "e.g. 2000"
	ti.CharLimit = 12
	ti.Width = 16

	return &OptimizeModel{
		solver: breakeven.NewDefaultSolver(engine),
		payout: ti,
	}
}

// SetScenario sets the scenario to solve and resets the flow
func (m *OptimizeModel) SetScenario(sc domain.Scenario) {
	m.scenario = &sc
	m.stage = StageSelectTarget
	m.cursor = 0
	m.results = nil
	m.err = nil
	m.payout.SetValue(sc.Simulation.TargetPayoutPerParticipant.String())
	m.payout.Blur()
}

// Stage returns the current step of the flow
func (m *OptimizeModel) Stage() OptimizeStage { return m.stage }

// Results returns the solved targets, in run order
func (m *OptimizeModel) Results() []*breakeven.OptimizationResult { return m.results }

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if step, ok := msg.(tuimsg.OptimizationStepMsg); ok {
		return m, m.finishStep(step)
	}
	if m.scenario == nil {
		return m, nil
	}

	switch m.stage {
	case StageSelectTarget:
		return m.updateSelect(msg)
	case StageSetPayout:
		return m.updatePayout(msg)
	case StageResults:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("n"))) {
			m.stage = StageSelectTarget
			m.results = nil
			m.err = nil
		}
	}
	return m, nil
}

func (m *OptimizeModel) updateSelect(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(optimizeChoices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		m.stage = StageSetPayout
		m.err = nil
		return m, m.payout.Focus()
	}
	return m, nil
}

func (m *OptimizeModel) updatePayout(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			target, err := decimal.NewFromString(strings.TrimSpace(m.payout.Value()))
			if err != nil || !target.IsPositive() {
				m.err = fmt.Errorf("target payout must be a positive number")
				return m, nil
			}
			m.payout.Blur()
			return m, m.start(target, optimizeChoices[m.cursor].targets)
		case tea.KeyEsc:
			m.stage = StageSelectTarget
			m.payout.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.payout, cmd = m.payout.Update(msg)
	return m, cmd
}

func (m *OptimizeModel) start(target decimal.Decimal, targets []breakeven.OptimizationTarget) tea.Cmd {
	m.stage = StageRunning
	m.target = target
	m.targets = targets
	m.results = nil
	m.err = nil
	m.progress = components.NewProgressBar(0, len(targets)).WithLabel("Solving for " + tuistyles.FormatCurrency(target))

	m.steps = components.StepList{Steps: make([]components.Step, len(targets))}
	for i, t := range targets {
		m.steps.Steps[i] = components.Step{Label: string(t)}
	}
	m.steps.Steps[0].Status = components.StepRunning
	return m.runStep(0)
}

func (m *OptimizeModel) runStep(index int) tea.Cmd {
	solver := m.solver
	scenario := *m.scenario
	target := m.targets[index]
	payout := m.target
	return func() tea.Msg {
		result, err := solver.Optimize(context.Background(), breakeven.OptimizationRequest{
			BaseScenario: &scenario,
			Target:       target,
			Constraints:  breakeven.Constraints{TargetPayout: &payout},
		})
		return tuimsg.OptimizationStepMsg{Index: index, Target: target, Result: result, Err: err}
	}
}

// finishStep records one solved target and starts the next one
func (m *OptimizeModel) finishStep(step tuimsg.OptimizationStepMsg) tea.Cmd {
	if m.stage != StageRunning || step.Index != m.progress.Current || step.Index >= len(m.targets) {
		return nil
	}

	s := &m.steps.Steps[step.Index]
	if step.Err != nil {
		s.Status = components.StepFailed
		s.Message = step.Err.Error()
	} else {
		s.Status = components.StepDone
		s.Message = step.Result.ConvergenceInfo
		m.results = append(m.results, step.Result)
	}
	m.progress.Current++

	if next := step.Index + 1; next < len(m.targets) {
		m.steps.Steps[next].Status = components.StepRunning
		return m.runStep(next)
	}

	m.stage = StageResults
	if len(m.results) == 0 {
		m.err = fmt.Errorf("no target could be solved")
	}
	return nil
}

// View renders the current stage
func (m *OptimizeModel) View() string {
	if m.scenario == nil {
		return "No scenario selected.\n\nPick one from the scenario list."
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Goal seeking: " + m.scenario.Name))
	b.WriteString("\n\n")

	switch m.stage {
	case StageSelectTarget:
		for i, c := range optimizeChoices {
			if i == m.cursor {
				b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + c.label))
			} else {
				b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + c.label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n" + tuistyles.SubtitleStyle.Render("↑/↓ move • enter choose"))

	case StageSetPayout:
		b.WriteString(tuistyles.MetricLabelStyle.Render("Target payout per participant: "))
		b.WriteString(tuistyles.BorderStyle.Render(m.payout.View()))
		if m.err != nil {
			b.WriteString("\n" + tuistyles.ErrorStyle.Render("✗ "+m.err.Error()))
		}
		b.WriteString("\n\n" + tuistyles.SubtitleStyle.Render("enter solve • esc back"))

	case StageRunning:
		b.WriteString(m.progress.Render())
		b.WriteString("\n\n")
		b.WriteString(m.steps.Render())

	case StageResults:
		b.WriteString(m.progress.Render())
		b.WriteString("\n\n")
		b.WriteString(m.steps.Render())
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(tuistyles.ErrorStyle.Render("✗ "+m.err.Error()) + "\n")
		}
		for _, r := range m.results {
			b.WriteString(renderOptimizationResult(r))
			b.WriteString("\n")
		}
		b.WriteString("\n" + tuistyles.SubtitleStyle.Render("n new search"))
	}
	return b.String()
}

func renderOptimizationResult(r *breakeven.OptimizationResult) string {
	payout := tuistyles.FormatCurrency(r.PayoutPerParticipant)
	switch {
	case r.OptimalContribution != nil:
		return fmt.Sprintf("%s %s per month pays %s (%s%s vs current)",
			tuistyles.MetricLabelStyle.Render("Contribution:"),
			tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(*r.OptimalContribution)),
			payout,
			signOf(r.ContributionDiffFromBase),
			tuistyles.FormatCurrency(r.ContributionDiffFromBase.Abs()))
	case r.OptimalMonths != nil:
		return fmt.Sprintf("%s %s pays %s (%+d vs current)",
			tuistyles.MetricLabelStyle.Render("Duration:"),
			tuistyles.MetricValueStyle.Render(fmt.Sprintf("%d months", *r.OptimalMonths)),
			payout,
			r.MonthsDiffFromBase)
	}
	return ""
}

func signOf(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return "+"
}
