package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/rgehrsitz/fireplan/internal/tui/components"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

const sidebarWidth = 44

// sliderSpec describes how one input is edited on the dashboard.
type sliderSpec struct {
	field  string
	label  string
	unit   string
	places int32
	step   string
	desc   string
}

var rateSliders = []sliderSpec{
	{"savings_rate", "Savings rate", "%", 1, "0.5", "Share of taxed salary saved each year"},
	{"tax_rate", "Tax rate", "%", 1, "0.5", "Share of salary paid as tax"},
	{"investment_percentage", "Invested share", "%", 0, "5", "Share of savings that is invested"},
}

var splitSliders = []sliderSpec{
	{"debt_pct", "Debt repayment", "%", 0, "1", "Share of salary paid towards debt"},
	{"investment_pct", "Investments", "%", 0, "1", "Share of salary invested"},
	{"cost_of_living_pct", "Cost of living", "%", 0, "1", "Share of salary spent"},
	{"savings_pct", "Savings", "%", 0, "1", "Share of salary kept as cash"},
}

var commonSliders = []sliderSpec{
	{"current_age", "Current age", " yrs", 0, "1", ""},
	{"current_salary", "Salary", "", 0, "", "Gross salary per period"},
	{"current_savings", "Savings today", "", 0, "1000", ""},
	{"total_debt", "Debt", "", 0, "1000", "Outstanding debt"},
	{"cost_of_living", "Cost of living", "", 0, "", "Spending per period"},
	{"retirement_cost_of_living", "Retirement spending", "", 0, "", "Spending per period once retired"},
	{"salary_growth_rate", "Salary growth", "%", 1, "0.5", ""},
	{"inflation_rate", "Inflation", "%", 1, "0.1", ""},
	{"investment_return_rate", "Investment return", "%", 1, "0.5", ""},
	{"withdrawal_rate", "Withdrawal rate", "%", 1, "0.25", "Sets the fund target: spending / rate"},
}

// per-period amounts scale with the frequency
func amountRange(field string, freq domain.Frequency) (upper, step decimal.Decimal) {
	switch field {
	case "current_savings":
		return decimal.NewFromInt(5_000_000), decimal.NewFromInt(1000)
	case "total_debt":
		return decimal.NewFromInt(2_000_000), decimal.NewFromInt(1000)
	}
	if freq == domain.Monthly {
		return decimal.NewFromInt(100_000), decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(1_000_000), decimal.NewFromInt(1000)
}

var (
	keyUp       = key.NewBinding(key.WithKeys("up", "k"))
	keyDown     = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft     = key.NewBinding(key.WithKeys("left", "h"))
	keyRight    = key.NewBinding(key.WithKeys("right", "l"))
	keyBigLeft  = key.NewBinding(key.WithKeys("shift+left", "H"))
	keyBigRight = key.NewBinding(key.WithKeys("shift+right", "L"))
	keyFreq     = key.NewBinding(key.WithKeys("f"))
	keyMode     = key.NewBinding(key.WithKeys("m"))
	keyReset    = key.NewBinding(key.WithKeys("r"))
)

// DashboardModel edits one set of inputs and re-projects on every change.
type DashboardModel struct {
	engine *calculation.CalculationEngine

	source   string
	original domain.InputParameters
	inputs   domain.InputParameters
	result   domain.SimulationResult
	previous *domain.ResultSummary

	sliders []*components.ParameterSlider
	focused int
	err     error

	width  int
	height int
}

// NewDashboardModel starts from the default inputs.
func NewDashboardModel(engine *calculation.CalculationEngine) *DashboardModel {
	m := &DashboardModel{engine: engine}
	m.SetInputs("Defaults", domain.DefaultInputParameters())
	return m
}

// SetInputs loads a new set of inputs, clamped to the accepted ranges.
func (m *DashboardModel) SetInputs(source string, p domain.InputParameters) {
	if p.Frequency == 0 {
		p.Frequency = domain.Yearly
	}
	if p.Mode == "" {
		p.Mode = domain.ModeRate
	}
	p = config.ClampInputs(p)

	m.source = source
	m.original = p
	m.inputs = p
	m.previous = nil
	m.err = nil
	m.buildSliders()
	m.recalculate()
	m.previous = nil
}

// Source names where the current inputs came from.
func (m *DashboardModel) Source() string { return m.source }

// Inputs returns the inputs as edited.
func (m *DashboardModel) Inputs() domain.InputParameters { return m.inputs }

// Result returns the latest projection.
func (m *DashboardModel) Result() *domain.SimulationResult { return &m.result }

// SetSize updates the scene dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *DashboardModel) specs() []sliderSpec {
	specs := rateSliders
	if m.inputs.Mode == domain.ModeSplit {
		specs = splitSliders
	}
	return append(append([]sliderSpec{}, specs...), commonSliders...)
}

func (m *DashboardModel) buildSliders() {
	focusedField := ""
	if m.focused < len(m.sliders) {
		focusedField = m.sliders[m.focused].Field
	}

	m.sliders = m.sliders[:0]
	m.focused = 0
	for _, spec := range m.specs() {
		value, err := m.inputs.Parameter(spec.field)
		if err != nil {
			continue
		}

		lo, hi := decimal.Zero, decimal.NewFromInt(100)
		step := decimal.RequireFromString(defaultString(spec.step, "1"))
		if r, ok := config.LimitFor(spec.field); ok {
			lo = r.Min
			if r.Max != nil {
				hi = *r.Max
			} else {
				hi, step = amountRange(spec.field, m.inputs.Frequency)
			}
		}

		slider := components.NewParameterSlider(spec.field, spec.label, value, lo, hi, step).
			WithUnit(spec.unit).
			WithPlaces(spec.places).
			WithWidth(sidebarWidth - 8).
			WithDescription(spec.desc)
		if spec.field == focusedField {
			m.focused = len(m.sliders)
		}
		m.sliders = append(m.sliders, slider)
	}
	if len(m.sliders) > 0 {
		m.sliders[m.focused].SetFocused(true)
	}
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (m *DashboardModel) recalculate() {
	prev := m.result.Summary
	m.result = m.engine.Run(m.inputs)
	m.previous = &prev
}

// Update handles messages for the dashboard scene
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		m.moveFocus(-1)
	case key.Matches(keyMsg, keyDown):
		m.moveFocus(1)
	case key.Matches(keyMsg, keyBigLeft):
		m.nudge(-10)
	case key.Matches(keyMsg, keyBigRight):
		m.nudge(10)
	case key.Matches(keyMsg, keyLeft):
		m.nudge(-1)
	case key.Matches(keyMsg, keyRight):
		m.nudge(1)
	case key.Matches(keyMsg, keyFreq):
		m.toggleFrequency()
	case key.Matches(keyMsg, keyMode):
		m.toggleMode()
	case key.Matches(keyMsg, keyReset):
		m.inputs = m.original
		m.buildSliders()
		m.recalculate()
	}
	return m, nil
}

func (m *DashboardModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

// nudge moves the focused slider by steps and re-projects if the value moved.
func (m *DashboardModel) nudge(steps int64) {
	s := m.sliders[m.focused]
	if !s.SetValue(s.Value.Add(s.Step.Mul(decimal.NewFromInt(steps)))) {
		return
	}
	updated, err := m.inputs.WithParameter(s.Field, s.Value)
	if err != nil {
		m.err = err
		return
	}
	m.inputs = updated
	m.err = nil
	m.recalculate()
}

func (m *DashboardModel) toggleFrequency() {
	next := domain.Monthly
	if m.inputs.Frequency == domain.Monthly {
		next = domain.Yearly
	}
	updated, err := transform.ApplyTransforms(m.inputs, []transform.ParameterTransform{
		&transform.SwitchFrequency{Frequency: next},
	})
	if err != nil {
		m.err = err
		return
	}
	m.inputs = updated
	m.buildSliders()
	m.recalculate()
}

func (m *DashboardModel) toggleMode() {
	next := domain.ModeSplit
	if m.inputs.Mode == domain.ModeSplit {
		next = domain.ModeRate
	}
	m.inputs.Mode = next
	m.buildSliders()
	m.recalculate()
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	sidebar := m.renderSidebar()
	main := m.renderMain()
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", main)
}

func (m *DashboardModel) renderSidebar() string {
	header := tuistyles.TitleStyle.Render("Inputs") + " " +
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s mode · %s", m.inputs.Mode, m.inputs.Frequency))

	// keep the focused slider visible on short terminals
	visible := len(m.sliders)
	if m.height > 0 {
		if fit := (m.height - 8) / 2; fit > 3 && fit < visible {
			visible = fit
		}
	}
	start := 0
	if m.focused >= visible {
		start = m.focused - visible + 1
	}

	lines := []string{header, ""}
	for _, s := range m.sliders[start:min(start+visible, len(m.sliders))] {
		lines = append(lines, s.Render())
	}
	if m.err != nil {
		lines = append(lines, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m *DashboardModel) renderMain() string {
	sum := m.result.Summary
	currency := m.inputs.Currency

	title := tuistyles.TitleStyle.Render(m.source)
	var sections []string
	sections = append(sections, title)

	for _, issue := range m.result.Issues {
		sections = append(sections, tuistyles.WarningBannerStyle.Render("⚠ "+issue.Message))
	}

	sections = append(sections, components.MetricGrid(m.metricCards(), 2))
	sections = append(sections, components.NewFundBar(sum, currency).WithWidth(m.mainWidth()-4).Render())

	if len(m.result.Series) > 0 {
		height := 10
		if m.height > 0 && m.height < 40 {
			height = 6
		}
		chart := components.TrajectoryChart(m.result.Series).WithSize(m.mainWidth(), height)
		sections = append(sections, chart.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) mainWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-sidebarWidth-6)
}

func (m *DashboardModel) metricCards() []*components.MetricCard {
	sum := m.result.Summary
	currency := m.inputs.Currency

	years := components.NewMetricCard("Years to retire", fmt.Sprintf("%d", sum.YearsNeeded))
	age := components.NewMetricCard("Retirement age", fmt.Sprintf("%d", sum.RetirementAge))
	if !sum.ReachedTarget {
		years = components.NewMetricCard("Years to retire", "not reached").
			WithDescription(fmt.Sprintf("within %d years", sum.YearsNeeded))
		age = components.NewMetricCard("Retirement age", "-")
	} else if m.previous != nil && m.previous.ReachedTarget && m.previous.YearsNeeded != sum.YearsNeeded {
		diff := sum.YearsNeeded - m.previous.YearsNeeded
		if diff < 0 {
			years.WithTrend(true, fmt.Sprintf("%d sooner", -diff))
		} else {
			years.WithTrend(false, fmt.Sprintf("%d later", diff))
		}
	}
	years.WithHighlight(true)

	fund := components.NewMetricCard("Fund needed", tuistyles.FormatAmount(sum.RetirementFundTarget, currency))
	if sum.TargetFrozen {
		fund.WithDescription("target frozen")
	}
	balance := components.NewMetricCard("Final balance", tuistyles.FormatAmount(sum.TotalBalance(), currency))
	if m.inputs.Mode == domain.ModeSplit {
		balance.WithDescription("debt left " + tuistyles.FormatAmount(sum.DebtRemaining, ""))
	}

	return []*components.MetricCard{years, age, fund, balance}
}
