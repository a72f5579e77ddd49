package tui

// Scene represents the screens of the simulator
type Scene int

const (
	SceneScenarios Scene = iota
	SceneSimulator
	SceneCompare
	SceneOptimize
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneSimulator:
		return "Simulator"
	case SceneCompare:
		return "Compare"
	case SceneOptimize:
		return "Goal seeking"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
