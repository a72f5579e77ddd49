// Package tuimsg holds messages exchanged between the root model and scenes.
package tuimsg

import (
	"github.com/caixinha/caixinha/internal/breakeven"
	"github.com/caixinha/caixinha/internal/compare"
	"github.com/caixinha/caixinha/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been picked for simulation
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SaveScenarioMsg asks the root model to write the edited scenario back
type SaveScenarioMsg struct {
	Scenario domain.Scenario
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}

// ComparisonCompleteMsg carries the result of a template comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// OptimizationStepMsg carries the outcome of solving one target.
// Index is the position of Target in the run.
type OptimizationStepMsg struct {
	Index  int
	Target breakeven.OptimizationTarget
	Result *breakeven.OptimizationResult
	Err    error
}
