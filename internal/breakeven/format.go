package breakeven

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const ruleWidth = 72

// TableFormatter renders solver output for the console.
type TableFormatter struct{}

type report struct {
	strings.Builder
}

func (r *report) title(s string) {
	r.WriteString(s + "\n" + strings.Repeat("=", ruleWidth) + "\n")
}

func (r *report) section(s string) {
	r.WriteString("\n" + s + "\n" + strings.Repeat("-", ruleWidth) + "\n")
}

func (r *report) field(label, format string, args ...any) {
	fmt.Fprintf(r, "%-18s %s\n", label+":", fmt.Sprintf(format, args...))
}

func gridTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row != table.HeaderRow && col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var r report
	req := result.Request

	r.title("RETIREMENT GOAL SOLVER")
	if req.ScenarioName != "" {
		r.field("Scenario", "%s", req.ScenarioName)
	}
	r.field("Solving for", "%s", req.Target)
	r.field("Retire by age", "%d", req.Constraints.TargetRetirementAge)
	r.field("Status", "%s", status(result.Success))
	r.field("Iterations", "%d", result.Iterations)
	if result.ConvergenceInfo != "" {
		r.field("Convergence", "%s", result.ConvergenceInfo)
	}

	r.section("SOLUTION")
	for _, v := range []struct {
		label string
		value *decimal.Decimal
	}{
		{"Savings Rate", result.OptimalSavingsRate},
		{"Investment Share", result.OptimalInvestmentShare},
		{"Withdrawal Rate", result.OptimalWithdrawalRate},
	} {
		if v.value != nil {
			r.field(v.label, "%s%%", v.value.StringFixed(2))
		}
	}
	if result.OptimalSavingsRate == nil && result.OptimalInvestmentShare == nil && result.OptimalWithdrawalRate == nil {
		r.WriteString("No setting within the constraints reaches the goal.\n")
	}

	if len(result.GridPoints) > 0 {
		r.section("WITHDRAWAL RATE GRID")
		t := gridTable().Headers("Rate", "Years", "Retire at", "Fund target", "Goal")
		for _, p := range result.GridPoints {
			years := fmt.Sprint(p.YearsNeeded)
			if !p.ReachedTarget {
				years += "+"
			}
			mark := ""
			if p.MeetsGoal {
				mark = "✓"
			}
			t.Row(p.WithdrawalRate.StringFixed(2)+"%", years, fmt.Sprint(p.RetirementAge), shortAmount(p.RetirementFundTarget), mark)
		}
		r.WriteString(t.String() + "\n")
	}

	if s := result.Summary; s != nil {
		r.section("PROJECTED RESULTS")
		r.field("Years to retire", "%d", s.YearsNeeded)
		r.field("Retirement age", "%d", s.RetirementAge)
		r.field("Fund target", "%s", s.RetirementFundTarget.StringFixed(2))
		r.field("Final balance", "%s", s.TotalBalance().StringFixed(2))

		if b := result.BaseSummary; b != nil {
			r.section("COMPARISON TO BASE SCENARIO")
			r.field("Base retires at", "%d", b.RetirementAge)
			r.field("Change", "%s", yearsShift(result.YearsDiffFromBase))
		}
	}

	return r.String()
}

// FormatMultiDimensional lists one row per solved target.
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var r report
	r.title("RETIREMENT GOAL SOLVER (ALL TARGETS)")

	t := gridTable().Headers("Target", "Value", "Reached", "Years", "Retire at")
	for _, res := range result.Results {
		value := "–"
		for _, v := range []*decimal.Decimal{res.OptimalSavingsRate, res.OptimalInvestmentShare, res.OptimalWithdrawalRate} {
			if v != nil {
				value = v.StringFixed(2) + "%"
				break
			}
		}
		years, age := "–", "–"
		if res.Summary != nil {
			years = fmt.Sprint(res.Summary.YearsNeeded)
			age = fmt.Sprint(res.Summary.RetirementAge)
		}
		reached := "yes"
		if !res.Success {
			reached = "no"
		}
		t.Row(string(res.Request.Target), value, reached, years, age)
	}
	r.WriteString(t.String() + "\n")

	if len(result.Recommendations) > 0 {
		r.section("RECOMMENDATIONS")
		for _, rec := range result.Recommendations {
			r.WriteString("• " + rec + "\n")
		}
	}
	return r.String()
}

// JSONFormatter emits solver results as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) encode(v any) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding solver result: %w", err)
	}
	return string(data), nil
}

func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.encode(result)
}

func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.encode(result)
}

func status(ok bool) string {
	if ok {
		return "✓ Converged"
	}
	return "⚠ Not reached"
}

func yearsShift(diff int) string {
	switch {
	case diff < 0:
		return fmt.Sprintf("%d years sooner", -diff)
	case diff > 0:
		return fmt.Sprintf("%d years later", diff)
	}
	return "none"
}

var (
	oneMillion  = decimal.NewFromInt(1_000_000)
	oneThousand = decimal.NewFromInt(1_000)
)

func shortAmount(d decimal.Decimal) string {
	switch a := d.Abs(); {
	case a.GreaterThanOrEqual(oneMillion):
		return d.Div(oneMillion).StringFixed(2) + "M"
	case a.GreaterThanOrEqual(oneThousand):
		return d.Div(oneThousand).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
