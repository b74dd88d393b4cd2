package tui

// Scene is one of the screens reachable from the tab bar.
type Scene int

const (
	SceneDashboard Scene = iota
	SceneScenarios
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

var sceneNames = [...]string{"Dashboard", "Scenarios", "Compare", "Optimize", "Results", "Help"}

// NavigateMsg makes the root model switch scenes.
type NavigateMsg struct {
	Scene Scene
}

func (s Scene) String() string {
	if s < 0 || int(s) >= len(sceneNames) {
		return "Unknown"
	}
	return sceneNames[s]
}
