package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\nPress any key to continue..."
	case m.config == nil:
		content = "Loading " + m.configPath + "..."
	case m.currentScene == SceneScenarios:
		content = m.scenariosModel.View()
	case m.currentScene == SceneSimulator:
		content = m.simulatorModel.View()
	case m.currentScene == SceneCompare:
		content = m.compareModel.View()
	case m.currentScene == SceneOptimize:
		content = m.optimizeModel.View()
	case m.currentScene == SceneHelp:
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := "Caixinha Simulator"
	if m.config != nil && m.config.Group.Name != "" {
		title += " - " + m.config.Group.Name
	}

	crumb := m.currentScene.String()
	if m.selectedScenario != "" && m.currentScene != SceneScenarios && m.currentScene != SceneHelp {
		crumb += " / " + m.selectedScenario
	}
	return TitleStyle.Render(title) + "\n" + SubtitleStyle.Render(crumb)
}

func (m Model) renderStatusBar() string {
	bar := m.help.View(keys)
	if m.status != "" {
		bar += "  " + SubtitleStyle.Render(m.status)
	}
	return StatusBarStyle.Render(bar)
}

func (m Model) renderHelp() string {
	return BorderStyle.Render(`CAIXINHA SIMULATOR

SCENARIOS
  ↑/↓      choose a scenario
  enter    open it in the simulator

SIMULATOR
  ↑/↓      choose a field
  ←/→      adjust the field; the projection updates at once
  m        switch between fixed contribution and solving for the target
  1 2 3    toggle raffles, loans, fines
  ctrl+s   save the edited scenario back to the file

COMPARE (c)
  space/x  pick what-if templates for the scenario being simulated
  enter    run them side by side with the current settings
  c        clear the selection

GOAL SEEKING (o)
  enter    choose contribution, duration or both, then the target payout
  n        start a new search

In target mode the contribution is derived and the target is reset to the
payout actually achieved, which becomes the baseline for the next edit.

` + m.help.FullHelpView(keys.FullHelp()))
}
