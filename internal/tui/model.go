// Package tui is the interactive caixinha simulator.
package tui

import (
	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/domain"
	"github.com/caixinha/caixinha/internal/tui/scenes"
	"github.com/caixinha/caixinha/internal/tui/tuimsg"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration

	scenariosModel *scenes.ScenariosModel
	simulatorModel *scenes.SimulatorModel
	compareModel   *scenes.CompareModel
	optimizeModel  *scenes.OptimizeModel
	help           help.Model

	selectedScenario string
	status           string
	err              error
}

// NewModel creates a new application model
func NewModel(configPath string, engine *calculation.ProjectionEngine) Model {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return Model{
		currentScene:   SceneScenarios,
		configPath:     configPath,
		scenariosModel: scenes.NewScenariosModel(),
		simulatorModel: scenes.NewSimulatorModel(engine),
		compareModel:   scenes.NewCompareModel(engine),
		optimizeModel:  scenes.NewOptimizeModel(engine),
		help:           help.New(),
		width:          100,
		height:         30,
	}
}

// Init loads the configuration file
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ConfigLoadedMsg{Config: cfg}
	}
}

// saveScenarioCmd replaces the scenario of the same name and writes the file
func saveScenarioCmd(path string, cfg domain.Configuration, sc domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		scenarios := make([]domain.Scenario, len(cfg.Scenarios))
		copy(scenarios, cfg.Scenarios)
		cfg.Scenarios = scenarios

		if existing, ok := cfg.FindScenario(sc.Name); ok {
			*existing = sc
		} else {
			cfg.Scenarios = append(cfg.Scenarios, sc)
		}

		err := config.SaveConfiguration(&cfg, path)
		return tuimsg.SaveCompleteMsg{Filename: path, Err: err}
	}
}
