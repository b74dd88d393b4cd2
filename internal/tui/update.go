package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
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
		m.resize()
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene), nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ConfigLoadedMsg:
		m.config = msg.Config
		m.scenariosModel.SetConfig(msg.Config, msg.Path)
		if len(msg.Config.Scenarios) > 0 {
			first := &msg.Config.Scenarios[0]
			m.dashboardModel.SetInputs(first.Name, msg.Config.InputsFor(first))
		}
		return m, runProjectionsCmd(m.engine, msg.Config)

	case tuimsg.ProjectionsCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.scenariosModel.SetProjection(msg.Projection)
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		m.dashboardModel.SetInputs(msg.ScenarioName, msg.Inputs)
		m.status = "Loaded " + msg.ScenarioName
		return m.navigate(SceneDashboard), nil

	case tuimsg.ApplyInputsMsg:
		m.dashboardModel.SetInputs(msg.Source, msg.Inputs)
		m.status = "Applied " + msg.Source
		return m.navigate(SceneDashboard), nil

	case tuimsg.ComparisonStartedMsg:
		return m, compareCmd(m.compareEngine, m.dashboardModel.Source(), m.dashboardModel.Inputs(), msg.Templates)

	case tuimsg.ComparisonCompleteMsg:
		m.compareModel.SetResults(msg.Set, msg.Err)
		return m, nil

	case tuimsg.OptimizationStartedMsg:
		return m, optimizeCmd(m.solver, m.dashboardModel.Source(), m.dashboardModel.Inputs(), msg.TargetAge)

	case tuimsg.OptimizationCompleteMsg:
		m.optimizeModel.SetResult(msg.Result, msg.Err)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m *Model) resize() {
	contentHeight := m.height - 5
	m.dashboardModel.SetSize(m.width, contentHeight)
	m.scenariosModel.SetSize(m.width, contentHeight)
	m.compareModel.SetSize(m.width, contentHeight)
	m.optimizeModel.SetSize(m.width, contentHeight)
	m.resultsModel.SetSize(m.width, contentHeight)
}

// navigate switches scenes, refreshing the scene that is entered.
func (m Model) navigate(scene Scene) Model {
	if scene == m.currentScene {
		return m
	}
	switch scene {
	case SceneResults:
		m.resultsModel.SetResults(m.dashboardModel.Source(), m.dashboardModel.Result())
	case SceneOptimize:
		m.optimizeModel.SetCurrentAge(m.dashboardModel.Inputs().CurrentAge)
	}
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// the target age field takes every key but esc
	if m.currentScene == SceneOptimize && m.optimizeModel.Capturing() && !key.Matches(msg, m.keys.Back) {
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene), nil
		}
		return m.navigate(SceneHelp), nil
	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene), nil
		}
		return m.navigate(SceneDashboard), nil
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(SceneDashboard), nil
	case key.Matches(msg, m.keys.Scenarios):
		return m.navigate(SceneScenarios), nil
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare), nil
	case key.Matches(msg, m.keys.Optimize):
		return m.navigate(SceneOptimize), nil
	case key.Matches(msg, m.keys.Results):
		return m.navigate(SceneResults), nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	}
	return m, cmd
}
