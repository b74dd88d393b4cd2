package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
			tuistyles.HelpDescStyle.Render("Press any key to continue.")
	case m.currentScene == SceneDashboard:
		content = m.dashboardModel.View()
	case m.currentScene == SceneScenarios:
		content = m.scenariosModel.View()
	case m.currentScene == SceneCompare:
		content = m.compareModel.View()
	case m.currentScene == SceneOptimize:
		content = m.optimizeModel.View()
	case m.currentScene == SceneResults:
		content = m.resultsModel.View()
	case m.currentScene == SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	container := lipgloss.NewStyle().Height(max(1, m.height-4)).Render(content)
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("fireplan")
	crumb := m.currentScene.String()
	if m.currentScene == SceneDashboard || m.currentScene == SceneResults {
		crumb += " / " + m.dashboardModel.Source()
	}
	return title + "  " + tuistyles.SubtitleStyle.Render(crumb)
}

func (m Model) renderStatusBar() string {
	left := m.help.View(m.keys)
	if m.status == "" {
		return left
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(m.status) - 4
	return left + strings.Repeat(" ", max(1, gap)) + tuistyles.StatusBarStyle.Render(m.status)
}

func (m Model) renderHelp() string {
	full := m.help
	full.ShowAll = true
	lines := []string{
		tuistyles.TitleStyle.Render("Keys"),
		"",
		full.View(m.keys),
		"",
		tuistyles.SubtitleStyle.Render("The dashboard re-projects on every change. Rate mode saves a share of"),
		tuistyles.SubtitleStyle.Render("taxed salary; split mode divides salary across debt, investments,"),
		tuistyles.SubtitleStyle.Render("living costs and savings and should add up to 100%."),
	}
	return strings.Join(lines, "\n")
}
