package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// OptimizeStep is the stage the optimize scene is in.
type OptimizeStep int

const (
	StepSetTarget OptimizeStep = iota
	StepOptimizing
	StepShowResults
)

// OptimizeModel finds the inputs that retire by a target age.
type OptimizeModel struct {
	step        OptimizeStep
	targetInput textinput.Model
	currentAge  int
	targetAge   int
	result      *breakeven.MultiDimensionalResult
	cursor      int
	err         error
	width       int
	height      int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 55"
	ti.CharLimit = 3
	ti.Width = 10
	ti.Focus()

	return &OptimizeModel{step: StepSetTarget, targetInput: ti}
}

// SetCurrentAge bounds the target ages that are accepted.
func (m *OptimizeModel) SetCurrentAge(age int) {
	m.currentAge = age
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether typed keys belong to the target age field.
func (m *OptimizeModel) Capturing() bool {
	return m.step == StepSetTarget
}

// Step returns the current stage.
func (m *OptimizeModel) Step() OptimizeStep { return m.step }

// TargetValue is the text typed into the target age field so far.
func (m *OptimizeModel) TargetValue() string { return m.targetInput.Value() }

// SetResult stores a finished optimization.
func (m *OptimizeModel) SetResult(result *breakeven.MultiDimensionalResult, err error) {
	m.result = result
	m.err = err
	m.cursor = 0
	if err != nil {
		m.step = StepSetTarget
		m.targetInput.Focus()
		return
	}
	m.step = StepShowResults
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	switch m.step {
	case StepSetTarget:
		return m.updateTargetInput(msg)
	case StepShowResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m *OptimizeModel) updateTargetInput(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))) {
		age, err := strconv.Atoi(strings.TrimSpace(m.targetInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("target age must be a whole number")
			return m, nil
		}
		if age <= m.currentAge || age > m.currentAge+100 {
			m.err = fmt.Errorf("target age must be between %d and %d", m.currentAge+1, m.currentAge+100)
			return m, nil
		}
		m.err = nil
		m.targetAge = age
		m.step = StepOptimizing
		m.targetInput.Blur()
		return m, func() tea.Msg { return tuimsg.OptimizationStartedMsg{TargetAge: age} }
	}

	var cmd tea.Cmd
	m.targetInput, cmd = m.targetInput.Update(msg)
	return m, cmd
}

func (m *OptimizeModel) updateResults(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.result.Results)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a", "enter"))):
		r := m.result.Results[m.cursor]
		if !r.Success || r.Inputs == nil {
			return m, nil
		}
		inputs := *r.Inputs
		source := fmt.Sprintf("Optimized %s for age %d", r.Request.Target, m.targetAge)
		return m, func() tea.Msg { return tuimsg.ApplyInputsMsg{Source: source, Inputs: inputs} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("e", "esc"))):
		m.step = StepSetTarget
		m.targetInput.Focus()
	}
	return m, nil
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	title := tuistyles.TitleStyle.Render("Retire by a target age")
	switch m.step {
	case StepOptimizing:
		return title + "\n\n" + tuistyles.InfoStyle.Render(fmt.Sprintf("Solving for retirement by age %d...", m.targetAge))
	case StepShowResults:
		return title + "\n\n" + m.renderResults()
	}

	lines := []string{
		title,
		"",
		tuistyles.ParameterLabelStyle.Render("Target retirement age: ") + m.targetInput.View(),
		tuistyles.HelpDescStyle.Render(fmt.Sprintf("You are %d now. Press enter to solve.", m.currentAge)),
	}
	if m.err != nil {
		lines = append(lines, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m *OptimizeModel) renderResults() string {
	if m.result == nil {
		return ""
	}

	var lines []string
	for i, r := range m.result.Results {
		line := fmt.Sprintf("%-18s %s", r.Request.Target, describeOptimum(r))
		if i == m.cursor {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("› "+line))
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}

	if len(m.result.Recommendations) > 0 {
		lines = append(lines, "")
		for _, rec := range m.result.Recommendations {
			lines = append(lines, tuistyles.InfoStyle.Render("• "+rec))
		}
	}
	lines = append(lines, "", tuistyles.HelpDescStyle.Render("a: apply to dashboard • e: new target"))
	return strings.Join(lines, "\n")
}

func describeOptimum(r breakeven.OptimizationResult) string {
	if !r.Success {
		return tuistyles.MetricNegativeStyle.Render("not achievable: " + r.ConvergenceInfo)
	}

	var value string
	switch {
	case r.OptimalSavingsRate != nil:
		value = "savings rate " + r.OptimalSavingsRate.StringFixed(2) + "%"
	case r.OptimalInvestmentShare != nil:
		value = "investment share " + r.OptimalInvestmentShare.StringFixed(2) + "%"
	case r.OptimalWithdrawalRate != nil:
		value = "withdrawal rate " + r.OptimalWithdrawalRate.StringFixed(2) + "%"
	}
	if r.Summary != nil {
		value += fmt.Sprintf(" → retire at %d", r.Summary.RetirementAge)
	}
	return tuistyles.MetricPositiveStyle.Render(value)
}
