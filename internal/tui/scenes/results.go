package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

const resultsRowFormat = "%5s %4s %14s %14s %14s %14s %14s"

// ResultsModel shows the year-by-year table of the dashboard projection.
type ResultsModel struct {
	name     string
	result   *domain.SimulationResult
	viewport viewport.Model
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{viewport: viewport.New(80, 15)}
}

// SetResults updates the results to display
func (m *ResultsModel) SetResults(name string, result *domain.SimulationResult) {
	m.name = name
	m.result = result
	m.viewport.SetContent(m.renderRows())
	m.viewport.GotoTop()
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(40, width-4)
	m.viewport.Height = max(5, height-12)
}

// Update scrolls the table.
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No results yet. Adjust inputs on the dashboard first.")
	}

	sum := m.result.Summary
	currency := m.result.Inputs.Currency
	outcome := fmt.Sprintf("Retire at %d after %d years with a fund of %s",
		sum.RetirementAge, sum.YearsNeeded, tuistyles.FormatAmount(sum.RetirementFundTarget, currency))
	if !sum.ReachedTarget {
		outcome = fmt.Sprintf("Target not reached within %d years: %s short",
			sum.YearsNeeded, tuistyles.FormatAmount(sum.Shortfall(), currency))
	}

	header := fmt.Sprintf(resultsRowFormat, "Year", "Age", "Contribution", "Growth", "Debt", "Balance", "Target")
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Year by year: "+m.name),
		tuistyles.SubtitleStyle.Render(outcome),
		"",
		tuistyles.TableHeaderStyle.Render(header),
		m.viewport.View(),
		tuistyles.HelpDescStyle.Render(fmt.Sprintf("%3.0f%% • ↑/↓ pgup/pgdn to scroll", m.viewport.ScrollPercent()*100)),
	)
}

func (m *ResultsModel) renderRows() string {
	if m.result == nil {
		return ""
	}
	if len(m.result.Series) == 0 {
		return "The target is already met; no years were simulated."
	}

	rows := make([]string, 0, len(m.result.Series))
	for _, row := range m.result.Series {
		line := fmt.Sprintf(resultsRowFormat,
			fmt.Sprintf("%d", row.Year),
			fmt.Sprintf("%d", row.Age),
			tuistyles.FormatAmount(row.SavingsContribution, ""),
			tuistyles.FormatAmount(row.InvestmentGrowth, ""),
			tuistyles.FormatAmount(row.DebtRemaining, ""),
			tuistyles.FormatAmount(row.TotalBalance, ""),
			tuistyles.FormatAmount(row.RetirementFundTarget, ""))
		if row.TotalBalance.GreaterThanOrEqual(row.RetirementFundTarget) {
			line = tuistyles.TableHighlightStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
