package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// maxFollowUps bounds the command chain send will follow.
const maxFollowUps = 32

// send feeds msg to m and then every message produced by the returned
// commands, depth first. Cursor blinks reschedule themselves forever, so the
// chain stops at the first one.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, maxFollowUps, "command chain did not settle")
		out := cmd()
		if out == nil {
			break
		}
		if _, ok := out.(cursor.BlinkMsg); ok {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel("", nil)
	cmd := m.Init()
	require.NotNil(t, cmd)
	return send(t, m, cmd())
}

func TestModel_LoadsBuiltInPlan(t *testing.T) {
	m := loaded(t)

	require.NotNil(t, m.config)
	assert.Equal(t, SceneDashboard, m.currentScene)
	assert.Equal(t, "Savings rate", m.dashboardModel.Source())
	assert.Equal(t, 38, m.dashboardModel.Result().Summary.YearsNeeded)

	view := m.View()
	assert.Contains(t, view, "fireplan")
	assert.Contains(t, view, "Dashboard / Savings rate")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("/nonexistent/plan.yaml", nil)
	m = send(t, m, m.Init()())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")

	m = send(t, m, runes("1"))
	assert.NoError(t, m.err, "any key dismisses the error")
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	tests := []struct {
		key  tea.KeyMsg
		want Scene
	}{
		{runes("2"), SceneScenarios},
		{runes("3"), SceneCompare},
		{runes("1"), SceneDashboard},
		{runes("4"), SceneOptimize},
		{esc, SceneDashboard}, // digits belong to the target age field here
		{runes("5"), SceneResults},
		{runes("?"), SceneHelp},
	}
	for _, tt := range tests {
		m = send(t, m, tt.key)
		assert.Equal(t, tt.want, m.currentScene, "after %q", tt.key.String())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneResults, m.currentScene, "esc leaves help for the previous scene")
	assert.Contains(t, m.View(), "Year by year: Savings rate")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)
}

func TestModel_SelectScenarioLoadsDashboard(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("2"))
	assert.Contains(t, m.View(), "Retire at 47 in 17 years")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, SceneDashboard, m.currentScene)
	assert.Equal(t, "Salary split", m.dashboardModel.Source())
	assert.Equal(t, 17, m.dashboardModel.Result().Summary.YearsNeeded)
	assert.Equal(t, "Loaded Salary split", m.status)
}

func TestModel_OptimizeCapturesDigits(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("4"))
	require.Equal(t, SceneOptimize, m.currentScene)

	m = send(t, m, runes("5"))
	assert.Equal(t, SceneOptimize, m.currentScene, "digits go to the target age field")
	m = send(t, m, runes("1"))
	assert.Equal(t, SceneOptimize, m.currentScene)
	assert.Equal(t, "51", m.optimizeModel.TargetValue())
	m = send(t, m, runes("q"))
	assert.Equal(t, SceneOptimize, m.currentScene)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)
}

func TestModel_OptimizeAndApply(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("4"))
	m = send(t, m, runes("60"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Contains(t, m.View(), "savings_rate")
	m = send(t, m, runes("a"))

	assert.Equal(t, SceneDashboard, m.currentScene)
	assert.Equal(t, "Optimized savings_rate for age 60", m.dashboardModel.Source())
	assert.LessOrEqual(t, m.dashboardModel.Result().Summary.RetirementAge, 60)
}

func TestModel_CompareTemplates(t *testing.T) {
	m := loaded(t)
	m = send(t, m, runes("3"))
	m = send(t, m, runes("x"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "Comparison against Savings rate")
	assert.Contains(t, view, "aggressive_returns")
}

func TestModel_ApplyInputsMessage(t *testing.T) {
	m := loaded(t)
	in := m.dashboardModel.Inputs()
	in.CurrentAge = 40
	m = send(t, m, tuimsg.ApplyInputsMsg{Source: "Older", Inputs: in})

	assert.Equal(t, "Older", m.dashboardModel.Source())
	assert.Equal(t, 40, m.dashboardModel.Result().Summary.CurrentAge)
}

func TestModel_WindowResize(t *testing.T) {
	m := loaded(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Equal(t, 160, m.width)
	assert.Equal(t, 160, m.help.Width)
}
