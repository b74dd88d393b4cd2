package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// TableFormatter renders a comparison as a bordered console table followed by
// the per-alternative deltas.
type TableFormatter struct{}

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

var tableHeaders = []string{"Scenario", "Mode", "Years", "Δ Years", "Retire at", "Fund target", "Final balance", "Surplus"}

func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Scenario comparison against %q", compSet.BaseScenarioName)
	if compSet.Currency != "" {
		fmt.Fprintf(&sb, " (amounts in %s)", compSet.Currency)
	}
	sb.WriteString("\n")
	if compSet.ConfigPath != "" {
		fmt.Fprintf(&sb, "Plan: %s\n", compSet.ConfigPath)
	}
	sb.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row != table.HeaderRow && col >= 2 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	if compSet.BaseResult != nil {
		t.Row(tf.row(compSet.BaseResult, true)...)
	}
	for i := range compSet.AlternativeResults {
		t.Row(tf.row(&compSet.AlternativeResults[i], false)...)
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")

	for _, alt := range compSet.AlternativeResults {
		fmt.Fprintf(&sb, "\n%s\n", alt.ScenarioName)
		if alt.Description != "" {
			fmt.Fprintf(&sb, "  %s\n", alt.Description)
		}
		fmt.Fprintf(&sb, "  Retirement:    %s\n", yearsChange(alt.YearsDiffFromBase))
		fmt.Fprintf(&sb, "  Final balance: %s (%s%%)\n",
			tf.signed(alt.BalanceDiffFromBase), alt.BalancePctFromBase.StringFixed(1))
		if !alt.TargetDiffFromBase.IsZero() {
			fmt.Fprintf(&sb, "  Fund target:   %s\n", tf.signed(alt.TargetDiffFromBase))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRecommendations\n")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "  • %s\n", rec)
		}
	}

	return sb.String()
}

func (tf *TableFormatter) row(r *ComparisonResult, isBase bool) []string {
	name := r.ScenarioName
	delta := fmt.Sprintf("%+d", r.YearsDiffFromBase)
	if isBase {
		name += " (base)"
		delta = "–"
	}

	years := fmt.Sprint(r.YearsNeeded)
	if !r.ReachedTarget {
		years += "+"
	}

	return []string{
		tf.truncate(name, 32),
		string(r.Mode),
		years,
		delta,
		fmt.Sprint(r.RetirementAge),
		tf.formatDecimal(r.RetirementFundTarget),
		tf.formatDecimal(r.FinalBalance),
		tf.formatDecimal(r.Surplus),
	}
}

func yearsChange(diff int) string {
	switch {
	case diff < 0:
		return fmt.Sprintf("%d years sooner", -diff)
	case diff > 0:
		return fmt.Sprintf("%d years later", diff)
	default:
		return "no change"
	}
}

// formatDecimal shortens an amount to thousands or millions.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	switch a := d.Abs(); {
	case a.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case a.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	default:
		return d.StringFixed(0)
	}
}

func (tf *TableFormatter) signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tf.formatDecimal(d)
	}
	return tf.formatDecimal(d)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

// FormatCompact puts the whole comparison on one line.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.AlternativeResults)+1)
	parts = append(parts, "Base: "+compSet.BaseScenarioName)
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if alt.YearsDiffFromBase != 0 {
			change = fmt.Sprintf("%+dy", alt.YearsDiffFromBase)
		}
		parts = append(parts, alt.ScenarioName+": "+change)
	}
	return strings.Join(parts, " | ")
}
