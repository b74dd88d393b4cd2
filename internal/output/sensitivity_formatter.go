package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatSingleAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func paramValue(p domain.SensitivityParameter, v decimal.Decimal) string {
	switch p.Unit {
	case "percent":
		return v.StringFixed(1) + "%"
	case "amount":
		return FormatShort(v)
	default:
		return v.String()
	}
}

func paramTitle(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

func ageCell(s domain.ResultSummary) string {
	if !s.ReachedTarget {
		return "never"
	}
	return itoa(s.RetirementAge)
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", analysis.BaseScenarioName)
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	fmt.Fprintf(buf, "Base case: retire in %d years at age %s\n",
		analysis.Base.YearsNeeded, ageCell(analysis.Base))
	fmt.Fprintln(buf)

	for _, param := range analysis.Parameters {
		fmt.Fprintf(buf, "%s (base %s, %s to %s)\n", paramTitle(param.Name),
			paramValue(param, param.BaseValue), paramValue(param, param.MinValue), paramValue(param, param.MaxValue))
		if param.Description != "" {
			fmt.Fprintf(buf, "%s\n", param.Description)
		}
		fmt.Fprintf(buf, "%-14s %-8s %-8s %-8s %-16s\n", "Value", "Years", "Age", "Change", "Fund Target")
		fmt.Fprintln(buf, strings.Repeat("-", 58))

		for _, result := range analysis.Results {
			v, ok := result.ParameterValues[param.Name]
			if !ok {
				continue
			}
			label := paramValue(param, v)
			if v.Equal(param.BaseValue) {
				label += " *"
			}
			fmt.Fprintf(buf, "%-14s %-8d %-8s %+-8d %-16s\n",
				label,
				result.Summary.YearsNeeded,
				ageCell(result.Summary),
				result.YearsChange,
				FormatShort(result.Summary.RetirementFundTarget))
		}
		fmt.Fprintln(buf)
	}

	if len(analysis.Summary.SensitivityScores) > 0 {
		fmt.Fprintln(buf, "SENSITIVITY SCORES (elasticity of years needed):")
		for _, param := range analysis.Parameters {
			if score, ok := analysis.Summary.SensitivityScores[param.Name]; ok {
				fmt.Fprintf(buf, "  %-26s %s\n", param.Name, score.StringFixed(2))
			}
		}
		if analysis.Summary.MostSensitiveParameter != "" {
			fmt.Fprintf(buf, "Most sensitive: %s\n", analysis.Summary.MostSensitiveParameter)
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "Retirement age range: %d to %d\n",
		analysis.Summary.FastestRetirementAge, analysis.Summary.SlowestRetirementAge)
	fmt.Fprintf(buf, "RISK LEVEL: %s\n", analysis.Summary.RiskLevel)
	fmt.Fprintln(buf)

	if len(analysis.Summary.Recommendations) > 0 {
		fmt.Fprintln(buf, "RECOMMENDATIONS:")
		for _, rec := range analysis.Summary.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", rec)
		}
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 || len(matrix.MatrixResults[0]) == 0 {
		return "", fmt.Errorf("empty sensitivity matrix")
	}
	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintf(buf, "SENSITIVITY MATRIX: %s\n", matrix.BaseScenarioName)
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	fmt.Fprintf(buf, "Rows:    %s (%s to %s)\n", p1.Name, paramValue(p1, p1.MinValue), paramValue(p1, p1.MaxValue))
	fmt.Fprintf(buf, "Columns: %s (%s to %s)\n", p2.Name, paramValue(p2, p2.MinValue), paramValue(p2, p2.MaxValue))
	fmt.Fprintln(buf, "Cells:   retirement age")
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-12s", "")
	for _, cell := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, " %8s", paramValue(p2, cell.ParameterValues[p2.Name]))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 12+9*len(matrix.MatrixResults[0])))

	for _, row := range matrix.MatrixResults {
		fmt.Fprintf(buf, "%-12s", paramValue(p1, row[0].ParameterValues[p1.Name]))
		for _, cell := range row {
			fmt.Fprintf(buf, " %8s", ageCell(cell.Summary))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "MOST SENSITIVE COMBINATION: %s\n", matrix.Summary.MostSensitiveCombination)
	fmt.Fprintf(buf, "INTERACTION EFFECT: %s years\n", matrix.Summary.InteractionEffect.StringFixed(2))
	fmt.Fprintf(buf, "RISK LEVEL: %s\n", matrix.Summary.RiskLevel)

	if len(matrix.Summary.Recommendations) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "RECOMMENDATIONS:")
		for _, rec := range matrix.Summary.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", rec)
		}
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		_ = w.Write([]string{"parameter", "value", "years_needed", "retirement_age", "reached_target", "years_change", "retirement_fund_target"})
		for _, param := range a.Parameters {
			for _, result := range a.Results {
				v, ok := result.ParameterValues[param.Name]
				if !ok {
					continue
				}
				_ = w.Write([]string{param.Name, v.String(), itoa(result.Summary.YearsNeeded),
					itoa(result.Summary.RetirementAge), fmt.Sprint(result.Summary.ReachedTarget),
					itoa(result.YearsChange), result.Summary.RetirementFundTarget.StringFixed(2)})
			}
		}
	case *domain.SensitivityMatrix:
		_ = w.Write([]string{a.Parameter1.Name, a.Parameter2.Name, "years_needed", "retirement_age", "reached_target", "years_change"})
		for _, row := range a.MatrixResults {
			for _, cell := range row {
				_ = w.Write([]string{cell.ParameterValues[a.Parameter1.Name].String(),
					cell.ParameterValues[a.Parameter2.Name].String(), itoa(cell.Summary.YearsNeeded),
					itoa(cell.Summary.RetirementAge), fmt.Sprint(cell.Summary.ReachedTarget), itoa(cell.YearsChange)})
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv", "detailed-csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
