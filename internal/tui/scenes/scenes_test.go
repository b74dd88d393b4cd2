package scenes

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDashboard() *DashboardModel {
	return NewDashboardModel(calculation.NewCalculationEngine())
}

func TestDashboard_DefaultProjection(t *testing.T) {
	m := newDashboard()
	sum := m.Result().Summary
	assert.Equal(t, 38, sum.YearsNeeded)
	assert.Equal(t, 68, sum.RetirementAge)
	assert.Equal(t, "savings_rate", m.sliders[0].Field)

	view := m.View()
	assert.Contains(t, view, "Years to retire")
	assert.Contains(t, view, "1,061,149 THB")
}

func TestDashboard_NudgeRecalculates(t *testing.T) {
	m := newDashboard()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, m.Inputs().Rate.SavingsRate.Equal(decimal.RequireFromString("20.5")))
	assert.LessOrEqual(t, m.Result().Summary.YearsNeeded, 38)

	m, _ = m.Update(runes("L"))
	assert.True(t, m.Inputs().Rate.SavingsRate.Equal(decimal.RequireFromString("25.5")))
	assert.Less(t, m.Result().Summary.YearsNeeded, 38)
	assert.Contains(t, m.View(), "sooner")

	m, _ = m.Update(runes("r"))
	assert.True(t, m.Inputs().Rate.SavingsRate.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 38, m.Result().Summary.YearsNeeded)
}

func TestDashboard_FocusMoves(t *testing.T) {
	m := newDashboard()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.focused, "cannot move above the first input")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "tax_rate", m.sliders[m.focused].Field)
	assert.True(t, m.Inputs().Rate.TaxRate.Equal(decimal.RequireFromString("9.5")))
}

func TestDashboard_ToggleMode(t *testing.T) {
	m := newDashboard()
	m, _ = m.Update(runes("m"))

	assert.Equal(t, domain.ModeSplit, m.Inputs().Mode)
	assert.Equal(t, "debt_pct", m.sliders[0].Field)
	assert.Equal(t, 17, m.Result().Summary.YearsNeeded)
	assert.Equal(t, 47, m.Result().Summary.RetirementAge)

	m, _ = m.Update(runes("m"))
	assert.Equal(t, domain.ModeRate, m.Inputs().Mode)
	assert.Equal(t, 38, m.Result().Summary.YearsNeeded)
}

func TestDashboard_ToggleFrequencyConvertsAmounts(t *testing.T) {
	m := newDashboard()
	m, _ = m.Update(runes("f"))

	in := m.Inputs()
	assert.Equal(t, domain.Monthly, in.Frequency)
	assert.Equal(t, "4166.67", in.CurrentSalary.StringFixed(2))
	assert.Contains(t, m.View(), "monthly")

	m, _ = m.Update(runes("f"))
	assert.Equal(t, domain.Yearly, m.Inputs().Frequency)
	assert.Equal(t, "50000.00", m.Inputs().CurrentSalary.StringFixed(2))
}

func TestDashboard_MismatchBanner(t *testing.T) {
	p := domain.DefaultInputParameters()
	p.Mode = domain.ModeSplit
	p.Split.SavingsPct = decimal.NewFromInt(5)

	m := newDashboard()
	m.SetInputs("Short split", p)

	require.NotEmpty(t, m.Result().Issues)
	assert.True(t, m.Result().Summary.Advisory)
	assert.Contains(t, m.View(), "adds up to 95%")
}

func TestDashboard_SetInputsClamps(t *testing.T) {
	p := domain.DefaultInputParameters()
	p.WithdrawalRate = decimal.NewFromInt(40)

	m := newDashboard()
	m.SetInputs("Loaded", p)
	assert.True(t, m.Inputs().WithdrawalRate.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "Loaded", m.Source())
}

func TestScenarios_SelectSendsInputs(t *testing.T) {
	cfg := config.DefaultConfiguration()
	m := NewScenariosModel()
	m.SetConfig(cfg, "")

	projection, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	m.SetProjection(projection)

	view := m.View()
	assert.Contains(t, view, "built-in plan")
	assert.Contains(t, view, "Retire at 68 in 38 years")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(tuimsg.ScenarioSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "Salary split", msg.ScenarioName)
	assert.Equal(t, domain.ModeSplit, msg.Inputs.Mode)
}

func TestCompare_SelectionStartsComparison(t *testing.T) {
	m := NewCompareModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "nothing selected")

	m, _ = m.Update(runes("x"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(runes("x"))
	assert.Equal(t, []string{"aggressive_returns", "conservative_returns"}, m.SelectedTemplates())

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Comparing())
	msg := cmd().(tuimsg.ComparisonStartedMsg)
	assert.Equal(t, []string{"aggressive_returns", "conservative_returns"}, msg.Templates)
	assert.Contains(t, m.View(), "Comparing")

	m.SetResults(nil, assert.AnError)
	assert.False(t, m.Comparing())
	assert.Contains(t, m.View(), "Comparison failed")
}

func TestOptimize_TargetAgeInput(t *testing.T) {
	m := NewOptimizeModel()
	m.SetCurrentAge(30)
	assert.True(t, m.Capturing())

	m, _ = m.Update(runes("2"))
	m, _ = m.Update(runes("5"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "between 31 and 130")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(runes("55"))
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StepOptimizing, m.Step())
	assert.Equal(t, tuimsg.OptimizationStartedMsg{TargetAge: 55}, cmd())
}

func TestOptimize_ApplyResult(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := breakeven.NewDefaultSolver(engine)
	result, err := solver.OptimizeAllTargets(context.Background(), "Defaults", domain.DefaultInputParameters(), breakeven.DefaultConstraints(60))
	require.NoError(t, err)

	m := NewOptimizeModel()
	m.SetCurrentAge(30)
	m.targetAge = 60
	m.SetResult(result, nil)
	assert.Equal(t, StepShowResults, m.Step())
	assert.Contains(t, m.View(), "savings_rate")

	_, cmd := m.Update(runes("a"))
	require.NotNil(t, cmd)
	msg := cmd().(tuimsg.ApplyInputsMsg)
	assert.Contains(t, msg.Source, "age 60")
	assert.True(t, msg.Inputs.Rate.SavingsRate.GreaterThan(decimal.NewFromInt(20)))

	m, _ = m.Update(runes("e"))
	assert.True(t, m.Capturing())
}

func TestResults_Table(t *testing.T) {
	result := calculation.Simulate(domain.DefaultInputParameters())
	m := NewResultsModel()
	m.SetSize(120, 60)
	m.SetResults("Defaults", &result)

	view := m.View()
	assert.Contains(t, view, "Year by year: Defaults")
	assert.Contains(t, view, "Retire at 68 after 38 years")
	assert.Contains(t, view, "Contribution")
}
