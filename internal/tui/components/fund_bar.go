package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// FundBar shows how the final balance covers the retirement fund target:
// savings, investments and whatever is still missing.
type FundBar struct {
	Savings     decimal.Decimal
	Investments decimal.Decimal
	Target      decimal.Decimal
	Currency    string
	Width       int
}

// NewFundBar builds the bar from a run summary.
func NewFundBar(s domain.ResultSummary, currency string) *FundBar {
	return &FundBar{
		Savings:     s.NetSavings,
		Investments: s.NetInvestments,
		Target:      s.RetirementFundTarget,
		Currency:    currency,
		Width:       40,
	}
}

// WithWidth sets the bar width
func (f *FundBar) WithWidth(width int) *FundBar {
	f.Width = width
	return f
}

// Segments returns the cell counts for savings, investments and the gap.
// Negative balances count as zero.
func (f *FundBar) Segments() (savings, investments, gap int) {
	s := decimal.Max(f.Savings, decimal.Zero)
	i := decimal.Max(f.Investments, decimal.Zero)
	whole := decimal.Max(f.Target, s.Add(i))
	if !whole.IsPositive() || f.Width <= 0 {
		return 0, 0, f.Width
	}

	cells := decimal.NewFromInt(int64(f.Width))
	savings = int(s.Div(whole).Mul(cells).Round(0).IntPart())
	investments = int(s.Add(i).Div(whole).Mul(cells).Round(0).IntPart()) - savings
	gap = f.Width - savings - investments
	return savings, investments, gap
}

// Render returns the bar with a caption below it.
func (f *FundBar) Render() string {
	s, i, g := f.Segments()
	bar := lipgloss.NewStyle().Foreground(tuistyles.ColorChartSavings).Render(strings.Repeat("█", s)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorChartInvestments).Render(strings.Repeat("█", i)) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.Repeat("░", g))

	shortfall := f.Target.Sub(f.Savings.Add(f.Investments))
	caption := "Target covered"
	style := tuistyles.MetricPositiveStyle
	if shortfall.IsPositive() {
		caption = "Still needed: " + tuistyles.FormatAmount(shortfall, f.Currency)
		style = tuistyles.MetricNegativeStyle
	}
	return bar + "\n" + style.Render(caption)
}
