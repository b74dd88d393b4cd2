package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// CompareModel runs what-if templates against the dashboard inputs.
type CompareModel struct {
	templates   []transform.Template
	selected    map[string]bool
	cursorIndex int
	results     *compare.ComparisonSet
	comparing   bool
	err         error
	width       int
	height      int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{
		templates: transform.CreateBuiltInTemplates().Templates(),
		selected:  make(map[string]bool),
	}
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet, err error) {
	m.results = set
	m.err = err
	m.comparing = false
}

// Comparing reports whether a comparison is running.
func (m *CompareModel) Comparing() bool { return m.comparing }

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.comparing {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		name := m.templates[m.cursorIndex].Name
		m.selected[name] = !m.selected[name]
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		names := m.SelectedTemplates()
		if len(names) == 0 {
			return m, nil
		}
		m.comparing = true
		m.err = nil
		return m, func() tea.Msg { return tuimsg.ComparisonStartedMsg{Templates: names} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("c"))):
		m.selected = make(map[string]bool)
		m.results = nil
		m.err = nil
	}
	return m, nil
}

// SelectedTemplates returns the ticked template names in list order.
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for _, t := range m.templates {
		if m.selected[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

// View renders the compare scene
func (m *CompareModel) View() string {
	list := m.renderSelection()
	var right string
	switch {
	case m.comparing:
		right = tuistyles.InfoStyle.Render("Comparing...")
	case m.err != nil:
		right = tuistyles.ErrorStyle.Render("Comparison failed: " + m.err.Error())
	case m.results != nil:
		right = m.renderComparison()
	default:
		right = tuistyles.InfoStyle.Render("Tick templates with space, then press enter.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", right)
}

func (m *CompareModel) renderSelection() string {
	lines := []string{tuistyles.TitleStyle.Render("What-if templates")}
	lastCategory := ""
	for i, t := range m.templates {
		if t.Category != lastCategory {
			lines = append(lines, tuistyles.SubtitleStyle.Render(t.Category))
			lastCategory = t.Category
		}
		box := "[ ]"
		if m.selected[t.Name] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %-22s %s", box, t.Name, t.Description)
		if i == m.cursorIndex {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("› "+line))
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *CompareModel) renderComparison() string {
	set := m.results
	header := fmt.Sprintf("%-34s %6s %5s %7s %16s %16s", "Scenario", "Years", "Age", "Δ yrs", "Fund target", "Final balance")
	lines := []string{
		tuistyles.TitleStyle.Render("Comparison against " + set.BaseScenarioName),
		tuistyles.TableHeaderStyle.Render(header),
	}

	lines = append(lines, tuistyles.TableHighlightStyle.Render(m.formatRow(set.BaseResult, set.Currency, true)))
	for i := range set.AlternativeResults {
		lines = append(lines, tuistyles.TableCellStyle.Render(m.formatRow(&set.AlternativeResults[i], set.Currency, false)))
	}

	if len(set.Recommendations) > 0 {
		lines = append(lines, "")
		for _, rec := range set.Recommendations {
			lines = append(lines, tuistyles.InfoStyle.Render("• "+rec))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *CompareModel) formatRow(r *compare.ComparisonResult, currency string, isBase bool) string {
	years, age := fmt.Sprintf("%d", r.YearsNeeded), fmt.Sprintf("%d", r.RetirementAge)
	if !r.ReachedTarget {
		years, age = "never", "-"
	}
	delta := ""
	if !isBase {
		delta = fmt.Sprintf("%+d", r.YearsDiffFromBase)
	}
	return fmt.Sprintf("%-34s %6s %5s %7s %16s %16s",
		truncate(r.ScenarioName, 34), years, age, delta,
		tuistyles.FormatAmount(r.RetirementFundTarget, ""),
		tuistyles.FormatAmount(r.FinalBalance, ""))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
