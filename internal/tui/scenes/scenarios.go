package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/components"
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// ScenariosModel lists the scenarios of the loaded plan.
type ScenariosModel struct {
	config        *domain.Configuration
	configPath    string
	results       map[string]*domain.SimulationResult
	selectedIndex int
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{results: map[string]*domain.SimulationResult{}}
}

// SetConfig replaces the plan being browsed.
func (m *ScenariosModel) SetConfig(cfg *domain.Configuration, path string) {
	m.config = cfg
	m.configPath = path
	m.results = map[string]*domain.SimulationResult{}
	m.selectedIndex = 0
}

// SetProjection records the outcome of each scenario for display.
func (m *ScenariosModel) SetProjection(p *domain.PlanProjection) {
	if p == nil {
		return
	}
	for i := range p.Results {
		r := p.Results[i]
		m.results[r.Name] = &r
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the scenario under the cursor, or nil.
func (m *ScenariosModel) SelectedScenario() *domain.Scenario {
	if m.config == nil || m.selectedIndex >= len(m.config.Scenarios) {
		return nil
	}
	return &m.config.Scenarios[m.selectedIndex]
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.config == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.config.Scenarios)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.selectScenario()
	}
	return m, nil
}

func (m *ScenariosModel) selectScenario() tea.Cmd {
	s := m.SelectedScenario()
	if s == nil {
		return nil
	}
	name := s.Name
	inputs := m.config.InputsFor(s)
	return func() tea.Msg {
		return tuimsg.ScenarioSelectedMsg{ScenarioName: name, Inputs: inputs}
	}
}

// View renders the scenario list
func (m *ScenariosModel) View() string {
	if m.config == nil {
		return tuistyles.InfoStyle.Render("Loading plan...")
	}

	source := "built-in plan"
	if m.configPath != "" {
		source = m.configPath
	}
	header := tuistyles.TitleStyle.Render("Scenarios") + " " +
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d in %s", len(m.config.Scenarios), source))

	if len(m.config.Scenarios) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", tuistyles.InfoStyle.Render("The plan has no scenarios."))
	}

	width := 64
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}

	items := []string{header, ""}
	for i, s := range m.config.Scenarios {
		card := components.NewScenarioCard(s, m.results[s.Name], m.config.Currency).
			WithSelected(i == m.selectedIndex).
			WithWidth(width)
		items = append(items, card.Render())
	}
	items = append(items, tuistyles.HelpDescStyle.Render("enter: load into dashboard"))
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
