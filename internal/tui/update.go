package tui

import (
	"fmt"

	"github.com/caixinha/caixinha/internal/tui/scenes"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.simulatorModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ConfigLoadedMsg:
		m.config = msg.Config
		m.scenariosModel.SetScenarios(msg.Config.Scenarios)
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		if m.config == nil {
			return m, nil
		}
		sc, ok := m.config.FindScenario(msg.ScenarioName)
		if !ok {
			m.err = fmt.Errorf("scenario %q not found", msg.ScenarioName)
			return m, nil
		}
		if err := m.simulatorModel.SetScenario(sc); err != nil {
			m.err = err
			return m, nil
		}
		m.selectedScenario = sc.Name
		m.status = ""
		return m, navigate(SceneSimulator)

	// Results go to their scene even when the user has moved on
	case tuimsg.ComparisonCompleteMsg:
		var cmd tea.Cmd
		m.compareModel, cmd = m.compareModel.Update(msg)
		return m, cmd

	case tuimsg.OptimizationStepMsg:
		var cmd tea.Cmd
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
		return m, cmd

	case tuimsg.SaveScenarioMsg:
		if m.config == nil {
			return m, nil
		}
		return m, saveScenarioCmd(m.configPath, *m.config, msg.Scenario)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "saved to " + msg.Filename
		return m, loadConfigCmd(m.configPath)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// The payout field takes every key except ctrl+c
	if m.currentScene == SceneOptimize && m.optimizeModel.Stage() == scenes.StageSetPayout {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, keys.Back):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneScenarios)

	case key.Matches(msg, keys.Scenarios) && m.currentScene != SceneScenarios:
		return m, navigate(SceneScenarios)

	case key.Matches(msg, keys.Simulator) && m.currentScene != SceneSimulator && m.selectedScenario != "":
		return m, navigate(SceneSimulator)

	case key.Matches(msg, keys.Compare) && m.currentScene != SceneCompare && m.selectedScenario != "":
		m.compareModel.SetScenario(m.config.Group, m.simulatorModel.Scenario())
		return m, navigate(SceneCompare)

	case key.Matches(msg, keys.Optimize) && m.currentScene != SceneOptimize && m.selectedScenario != "":
		m.optimizeModel.SetScenario(m.simulatorModel.Scenario())
		return m, navigate(SceneOptimize)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneSimulator:
		m.simulatorModel, cmd = m.simulatorModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	}
	return m, cmd
}
