package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ConsoleFormatter renders each scenario's summary followed by its year-by-year table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(projection *domain.PlanProjection) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "RETIREMENT PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))

	for i := range projection.Results {
		fmt.Fprintln(&buf)
		writeResult(&buf, &projection.Results[i], projection.Currency)
	}

	if len(projection.Results) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "SCENARIO SUMMARY")
		fmt.Fprintln(&buf, strings.Repeat("-", 81))
		fmt.Fprintf(&buf, "%-28s %-6s %6s %5s %19s %19s\n", "Scenario", "Mode", "Years", "Age", "Fund Target", "Final Balance")
		for _, r := range projection.Results {
			years := itoa(r.Summary.YearsNeeded)
			if !r.Summary.ReachedTarget {
				years += "+"
			}
			fmt.Fprintf(&buf, "%-28s %-6s %6s %5d %19s %19s\n",
				truncate(r.Name, 28), r.Summary.Mode, years, r.Summary.RetirementAge,
				FormatAmount(r.Summary.RetirementFundTarget), FormatAmount(r.Summary.TotalBalance()))
		}
		if best := projection.Fastest(); best != nil {
			fmt.Fprintf(&buf, "\nFastest: %s (age %d)\n", best.Name, best.Summary.RetirementAge)
		}
	}

	return buf.Bytes(), nil
}

func writeResult(buf *bytes.Buffer, r *domain.SimulationResult, currency string) {
	p := r.Inputs
	s := r.Summary
	if currency == "" {
		currency = p.Currency
	}

	title := r.Name
	if title == "" {
		title = "Projection"
	}
	fmt.Fprintf(buf, "%s (%s allocation)\n", strings.ToUpper(title), s.Mode)
	fmt.Fprintln(buf, strings.Repeat("-", 81))

	for _, issue := range r.Issues {
		fmt.Fprintf(buf, "⚠ %s\n", issue.Message)
	}
	if s.Advisory {
		fmt.Fprintln(buf, "⚠ Results are advisory: the inputs above need attention")
	}

	fmt.Fprintf(buf, "Salary:                  %s %s\n", FormatCurrency(p.CurrentSalary, currency), p.Frequency.Label())
	fmt.Fprintf(buf, "Cost of living:          %s %s\n", FormatCurrency(p.CostOfLiving, currency), p.Frequency.Label())
	if s.Mode == domain.ModeSplit {
		fmt.Fprintf(buf, "Retirement spending:     %s %s\n", FormatCurrency(p.RetirementSpending(), currency), p.Frequency.Label())
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "Outcome:                 %s\n", Outcome(s))
	fmt.Fprintf(buf, "Years needed:            %d\n", s.YearsNeeded)
	fmt.Fprintf(buf, "Retirement age:          %d\n", s.RetirementAge)
	fmt.Fprintf(buf, "Retirement fund target:  %s\n", FormatCurrency(s.RetirementFundTarget, currency))
	fmt.Fprintf(buf, "Net savings:             %s\n", FormatCurrency(s.NetSavings, currency))
	if s.Mode == domain.ModeSplit {
		fmt.Fprintf(buf, "Net investments:         %s\n", FormatCurrency(s.NetInvestments, currency))
		fmt.Fprintf(buf, "Debt remaining:          %s\n", FormatCurrency(s.DebtRemaining, currency))
		if s.TargetFrozen {
			fmt.Fprintln(buf, "Target frozen:           yes")
		}
	}
	if gap := s.Shortfall(); gap.IsPositive() {
		fmt.Fprintf(buf, "Shortfall:               %s\n", FormatCurrency(gap, currency))
	}
	fmt.Fprintln(buf)

	if len(r.Series) == 0 {
		return
	}
	fmt.Fprintf(buf, "%5s %4s %15s %14s %14s %16s %16s\n",
		"Year", "Age", "Contribution", "Growth", "Debt", "Balance", "Target")
	for _, row := range r.Series {
		fmt.Fprintf(buf, "%5d %4d %15s %14s %14s %16s %16s\n",
			row.Year, row.Age,
			FormatAmount(row.SavingsContribution), FormatAmount(row.InvestmentGrowth),
			FormatAmount(row.DebtRemaining), FormatAmount(row.TotalBalance),
			FormatAmount(row.RetirementFundTarget))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
