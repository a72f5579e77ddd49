package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/compare"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/tui/components"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// CompareModel runs what-if templates against the scenario being simulated
type CompareModel struct {
	engine    *compare.CompareEngine
	group     domain.GroupInfo
	scenario  *domain.Scenario
	templates []string
	selected  map[int]bool
	cursor    int

	running bool
	spinner components.Spinner
	results *compare.ComparisonSet
	err     error
	width   int
}

// NewCompareModel creates the comparison scene
func NewCompareModel(engine *calculation.ProjectionEngine) *CompareModel {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	ce := compare.NewCompareEngine(engine)
	return &CompareModel{
		engine:    ce,
		templates: ce.TemplateRegistry.List(),
		selected:  make(map[int]bool),
		spinner:   components.Spinner{Message: "Comparing scenarios..."},
	}
}

// SetScenario sets the base of the next comparison and clears old results
func (m *CompareModel) SetScenario(group domain.GroupInfo, sc domain.Scenario) {
	m.group = group
	m.scenario = &sc
	m.results = nil
	m.err = nil
	m.running = false
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, _ int) {
	m.width = width
}

// Results returns the last finished comparison
func (m *CompareModel) Results() *compare.ComparisonSet { return m.results }

// Running reports whether a comparison is in flight
func (m *CompareModel) Running() bool { return m.running }

// SelectedTemplates returns the checked template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for i, name := range m.templates {
		if m.selected[i] {
			names = append(names, name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tuimsg.ComparisonCompleteMsg:
		m.running = false
		m.results, m.err = msg.Set, msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.running {
			m.spinner.Next()
			return m, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursor < len(m.templates)-1 {
				m.cursor++
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys(" ", "x"))):
			m.selected[m.cursor] = !m.selected[m.cursor]
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			return m, m.start()
		case key.Matches(msg, key.NewBinding(key.WithKeys("c"))):
			m.selected = make(map[int]bool)
			m.results = nil
			m.err = nil
		}
	}
	return m, nil
}

func (m *CompareModel) start() tea.Cmd {
	templates := m.SelectedTemplates()
	if m.scenario == nil || len(templates) == 0 {
		return nil
	}
	m.running = true
	m.err = nil

	engine := m.engine
	cfg := &domain.Configuration{Group: m.group, Scenarios: []domain.Scenario{*m.scenario}}
	opts := compare.CompareOptions{BaseScenarioName: m.scenario.Name, Templates: templates}
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), cfg, opts)
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// View renders the template picker, the busy state or the results table
func (m *CompareModel) View() string {
	if m.scenario == nil {
		return "No scenario selected.\n\nPick one from the scenario list."
	}
	if m.running {
		return tuistyles.BorderStyle.Render(m.spinner.Render())
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Compare " + m.scenario.Name))
	b.WriteString("\n\n")

	for i, name := range m.templates {
		cursor := "  "
		if i == m.cursor {
			cursor = tuistyles.SelectedItemStyle.Render("▸ ")
		}
		box := tuistyles.SubtitleStyle.Render("[ ] ")
		if m.selected[i] {
			box = tuistyles.MetricPositiveStyle.Render("[✓] ")
		}
		desc := ""
		if t, ok := m.engine.TemplateRegistry.Get(name); ok {
			desc = tuistyles.SubtitleStyle.Render("  " + t.Description)
		}
		b.WriteString(cursor + box + name + desc + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + tuistyles.ErrorStyle.Render("✗ "+m.err.Error()) + "\n")
	}
	if m.results != nil {
		b.WriteString("\n" + renderComparisonTable(m.results) + "\n")
		for _, rec := range m.results.Recommendations {
			b.WriteString(tuistyles.InfoStyle.Render("• "+rec) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("↑/↓ move • space/x select • enter compare • c clear"))
	return b.String()
}

func renderComparisonTable(set *compare.ComparisonSet) string {
	const labelWidth, colWidth = 16, 18

	rows := append([]compare.ComparisonResult{*set.BaseResult}, set.AlternativeResults...)

	best := rows[0].PayoutPerParticipant
	for _, r := range rows[1:] {
		best = decimal.Max(best, r.PayoutPerParticipant)
	}

	metrics := []struct {
		label string
		value func(r compare.ComparisonResult) string
	}{
		{"Payout", func(r compare.ComparisonResult) string {
			s := tuistyles.FormatCurrency(r.PayoutPerParticipant)
			if r.PayoutPerParticipant.Equal(best) {
				s = tuistyles.MetricPositiveStyle.Render(s + " ★")
			}
			return s
		}},
		{"Final balance", func(r compare.ComparisonResult) string { return tuistyles.FormatCurrency(r.FinalBalance) }},
		{"Contribution", func(r compare.ComparisonResult) string { return tuistyles.FormatCurrency(r.MonthlyContribution) }},
		{"Extra income", func(r compare.ComparisonResult) string { return tuistyles.FormatCurrency(r.AuxiliaryIncome) }},
		{"Duration", func(r compare.ComparisonResult) string { return fmt.Sprintf("%d months", r.DurationMonths) }},
		{"Target met", func(r compare.ComparisonResult) string {
			if r.TargetMet {
				return tuistyles.MetricPositiveStyle.Render("yes")
			}
			return tuistyles.MetricNegativeStyle.Render("no")
		}},
	}

	var t strings.Builder
	t.WriteString(padRight("", labelWidth))
	for _, r := range rows {
		t.WriteString(tuistyles.TitleStyle.Render(padRight(truncate(r.ScenarioName, colWidth-1), colWidth)))
	}
	t.WriteString("\n")
	t.WriteString(strings.Repeat("─", labelWidth+colWidth*len(rows)))
	t.WriteString("\n")

	for _, metric := range metrics {
		t.WriteString(tuistyles.MetricLabelStyle.Render(padRight(metric.label, labelWidth)))
		for _, r := range rows {
			t.WriteString(padRight(metric.value(r), colWidth))
		}
		t.WriteString("\n")
	}
	return strings.TrimRight(t.String(), "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
