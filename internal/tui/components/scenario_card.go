package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// ScenarioCard summarises one plan scenario in the scenario list.
type ScenarioCard struct {
	Name       string
	Mode       domain.AllocationMode
	Allocation string
	Result     *domain.SimulationResult
	Currency   string
	Selected   bool
	Width      int
}

// NewScenarioCard describes s; result may be nil while projections run.
func NewScenarioCard(s domain.Scenario, result *domain.SimulationResult, currency string) *ScenarioCard {
	return &ScenarioCard{
		Name:       s.Name,
		Mode:       s.Mode,
		Allocation: describeAllocation(s),
		Result:     result,
		Currency:   currency,
		Width:      60,
	}
}

func describeAllocation(s domain.Scenario) string {
	switch {
	case s.Mode == domain.ModeSplit && s.Split != nil:
		return fmt.Sprintf("debt %s%% · invest %s%% · living %s%% · savings %s%%",
			s.Split.DebtPct, s.Split.InvestmentPct, s.Split.CostOfLivingPct, s.Split.SavingsPct)
	case s.Rate != nil:
		return fmt.Sprintf("save %s%% · tax %s%% · invest %s%% of savings",
			s.Rate.SavingsRate, s.Rate.TaxRate, s.Rate.InvestmentPercentage)
	}
	return "no allocation set"
}

// WithSelected marks the card as the cursor position.
func (c *ScenarioCard) WithSelected(selected bool) *ScenarioCard {
	c.Selected = selected
	return c
}

// WithWidth sets the card width
func (c *ScenarioCard) WithWidth(width int) *ScenarioCard {
	c.Width = width
	return c
}

// Render returns the bordered card.
func (c *ScenarioCard) Render() string {
	title := tuistyles.TitleStyle.Render(c.Name) + "  " + tuistyles.SubtitleStyle.Render(string(c.Mode)+" mode")
	lines := []string{title, c.Allocation}

	if c.Result != nil {
		sum := c.Result.Summary
		outcome := fmt.Sprintf("Retire at %d in %d years · fund %s",
			sum.RetirementAge, sum.YearsNeeded, tuistyles.FormatAmount(sum.RetirementFundTarget, c.Currency))
		if !sum.ReachedTarget {
			outcome = tuistyles.MetricNegativeStyle.Render(
				fmt.Sprintf("Target not reached within %d years", sum.YearsNeeded))
		}
		lines = append(lines, outcome)
		if sum.Advisory {
			lines = append(lines, tuistyles.WarningBannerStyle.Render("advisory: allocation does not add up to 100%"))
		}
	}

	border := tuistyles.BorderStyle
	if c.Selected {
		border = tuistyles.ActiveBorderStyle
	}
	return border.Width(c.Width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
