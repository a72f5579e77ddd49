package scenes

import (
	"fmt"
	"strings"

	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/caixinha/caixinha/internal/tui/tuistyles"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScenariosModel lists the scenarios of the loaded file
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.ScenarioSelectedMsg{ScenarioName: name}
		}
	}
	return m, nil
}

// View renders the list on the left and the selected scenario on the right
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return "No scenarios available.\n\nLoad a configuration file with at least one scenario."
	}

	var list strings.Builder
	for i, sc := range m.scenarios {
		if i == m.selectedIndex {
			list.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + sc.Name))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + sc.Name))
		}
		list.WriteString("\n")
	}

	left := tuistyles.ActiveBorderStyle.Width(30).Render(strings.TrimRight(list.String(), "\n"))
	right := tuistyles.BorderStyle.Width(44).Render(scenarioDetails(m.scenarios[m.selectedIndex]))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) +
		"\n\n" + tuistyles.SubtitleStyle.Render("↑/k up • ↓/j down • enter simulate")
}

func scenarioDetails(sc domain.Scenario) string {
	cfg := sc.Simulation
	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render(sc.Name) + "\n")
	if sc.Description != "" {
		b.WriteString(tuistyles.SubtitleStyle.Render(sc.Description) + "\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Mode:          %s\n", cfg.Mode)
	fmt.Fprintf(&b, "Participants:  %d\n", cfg.ParticipantCount)
	fmt.Fprintf(&b, "Duration:      %d months\n", cfg.DurationMonths)
	if cfg.Mode.IsTargetDriven() {
		fmt.Fprintf(&b, "Target:        %s\n", tuistyles.FormatCurrency(cfg.TargetPayoutPerParticipant))
	} else {
		fmt.Fprintf(&b, "Contribution:  %s\n", tuistyles.FormatCurrency(cfg.MonthlyContribution))
	}
	fmt.Fprintf(&b, "Yield:         %s%% / month\n", cfg.MonthlyYieldRate.StringFixed(2))

	var streams []string
	if cfg.AuxiliaryIncome.Raffles.Enabled {
		streams = append(streams, "raffles")
	}
	if cfg.AuxiliaryIncome.Loans.Enabled {
		streams = append(streams, "loans")
	}
	if cfg.AuxiliaryIncome.Fines.Enabled {
		streams = append(streams, "fines")
	}
	if len(streams) == 0 {
		streams = append(streams, "none")
	}
	fmt.Fprintf(&b, "Extra income:  %s", strings.Join(streams, ", "))
	return b.String()
}
