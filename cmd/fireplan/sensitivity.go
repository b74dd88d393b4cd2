package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [plan-file]",
	Short: "Show how years to retirement respond to parameter changes",
	Long: `Sweep one or more parameters of a scenario and report how the years to
retirement and the final fund change.

Examples:
  # Single parameter sweep
  fireplan sensitivity plan.yaml --parameter inflation_rate --range 1-4 --steps 7

  # Multiple parameter sweep
  fireplan sensitivity plan.yaml --parameter inflation_rate:1-4:7 --parameter investment_return_rate:3-8:6

  # Matrix analysis
  fireplan sensitivity plan.yaml --parameter inflation_rate:1-4:4 --parameter investment_return_rate:3-8:6 --analysis-type matrix

  # Predefined parameter sets
  fireplan sensitivity plan.yaml --parameter-set common --base-scenario "Savings rate"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityParameter    []string
	sensitivityRange        string
	sensitivitySteps        int
	sensitivityBaseScenario string
	sensitivityOutputFormat string
	sensitivityParameterSet string
	sensitivityAnalysisType string
)

func init() {
	sensitivityCmd.Flags().StringSliceVar(&sensitivityParameter, "parameter", nil, "Parameter to analyze (name, name:min-max or name:min-max:steps)")
	sensitivityCmd.Flags().StringVar(&sensitivityRange, "range", "", "Range for a single parameter (min-max)")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", 5, "Number of steps for parameters without their own")
	sensitivityCmd.Flags().StringVar(&sensitivityBaseScenario, "base-scenario", "", "Scenario to analyze (default: the first scenario)")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "table", "Output format (table, csv, json)")
	sensitivityCmd.Flags().StringVar(&sensitivityParameterSet, "parameter-set", "", "Predefined parameter set (common, critical)")
	sensitivityCmd.Flags().StringVar(&sensitivityAnalysisType, "analysis-type", "", "Analysis type (single, multi, matrix); inferred when empty")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args)
	if err != nil {
		return err
	}

	scenario := &plan.Scenarios[0]
	if sensitivityBaseScenario != "" {
		if scenario, err = plan.FindScenario(sensitivityBaseScenario); err != nil {
			return err
		}
	}
	base := plan.InputsFor(scenario)

	var parameters []domain.SensitivityParameter
	switch {
	case sensitivityParameterSet != "":
		parameters, err = predefinedParameterSet(sensitivityParameterSet, base.Mode)
	case len(sensitivityParameter) > 0:
		parameters, err = parseParameters(sensitivityParameter, sensitivityRange, sensitivitySteps, cmd.Flags().Changed("steps"))
	default:
		err = fmt.Errorf("specify --parameter or --parameter-set")
	}
	if err != nil {
		return err
	}

	analysisType := sensitivityAnalysisType
	if analysisType == "" {
		analysisType = "multi"
		if len(parameters) == 1 {
			analysisType = "single"
		}
	}

	analyzer := calculation.NewSensitivityAnalyzerWithEngine(engine)
	logger.Debug().Str("scenario", scenario.Name).Str("type", analysisType).Int("parameters", len(parameters)).Msg("sensitivity analysis")

	var analysis any
	switch analysisType {
	case "single":
		if len(parameters) != 1 {
			return fmt.Errorf("single analysis takes one parameter, got %d", len(parameters))
		}
		analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), scenario.Name, base, parameters[0])
	case "matrix":
		if len(parameters) != 2 {
			return fmt.Errorf("matrix analysis takes two parameters, got %d", len(parameters))
		}
		analysis, err = analyzer.AnalyzeParameterMatrix(cmd.Context(), scenario.Name, base, parameters[0], parameters[1])
	case "multi":
		analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), scenario.Name, base, parameters)
	default:
		return fmt.Errorf("unknown analysis type %q (single, multi, matrix)", analysisType)
	}
	if err != nil {
		return fmt.Errorf("sensitivity analysis: %w", err)
	}

	formatter := output.NewSensitivityFormatter(sensitivityOutputFormat)
	rendered, err := formatter.FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// predefinedParameterSet returns a named set, leaving out parameters the
// allocation mode ignores.
func predefinedParameterSet(setName string, mode domain.AllocationMode) ([]domain.SensitivityParameter, error) {
	var set []domain.SensitivityParameter
	switch setName {
	case "common":
		set = domain.GetCommonParameters()
	case "critical":
		set = []domain.SensitivityParameter{
			domain.InvestmentReturnParam,
			domain.InflationRateParam,
			domain.WithdrawalRateParam,
		}
	default:
		return nil, fmt.Errorf("unknown parameter set %q (common, critical)", setName)
	}

	out := set[:0:0]
	for _, p := range set {
		if mode == domain.ModeSplit && p.Name == "savings_rate" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func parseParameters(specs []string, rangeStr string, steps int, stepsSet bool) ([]domain.SensitivityParameter, error) {
	if rangeStr != "" && len(specs) != 1 {
		return nil, fmt.Errorf("--range applies to a single --parameter")
	}

	parameters := make([]domain.SensitivityParameter, 0, len(specs))
	for _, spec := range specs {
		if rangeStr != "" && !strings.Contains(spec, ":") {
			spec += ":" + rangeStr
		}
		param, err := parseParameterString(spec, steps, stepsSet)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", spec, err)
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

// parseParameterString reads name, name:min-max or name:min-max:steps.
// Parameters without a default sweep need a range.
func parseParameterString(spec string, defaultSteps int, stepsSet bool) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("expected name:min-max:steps")
	}

	name := strings.TrimSpace(parts[0])
	if _, err := domain.DefaultInputParameters().Parameter(name); err != nil {
		return domain.SensitivityParameter{}, err
	}

	param, commonErr := domain.CommonParameter(name)
	if commonErr != nil {
		param = domain.SensitivityParameter{Name: name, Unit: unitFor(name), Description: "Custom parameter"}
	}
	if stepsSet || commonErr != nil {
		param.Steps = defaultSteps
	}

	if len(parts) == 1 {
		if commonErr != nil {
			return domain.SensitivityParameter{}, fmt.Errorf("%w; give a range as %s:min-max", commonErr, name)
		}
		return param, nil
	}

	minValue, maxValue, err := parseRange(parts[1])
	if err != nil {
		return domain.SensitivityParameter{}, err
	}
	param.MinValue = minValue
	param.MaxValue = maxValue

	if len(parts) == 3 {
		steps, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %w", err)
		}
		param.Steps = steps
	}
	if param.Steps < 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("steps must be at least 2, got %d", param.Steps)
	}
	return param, nil
}

// parseRange splits "min-max" on the first dash after a leading sign.
func parseRange(rangeStr string) (decimal.Decimal, decimal.Decimal, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	i := -1
	if len(rangeStr) > 1 {
		if j := strings.Index(rangeStr[1:], "-"); j >= 0 {
			i = j + 1
		}
	}
	if i < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range format: %s (expected min-max)", rangeStr)
	}

	minValue, err := config.ParseDecimal(rangeStr[:i])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := config.ParseDecimal(rangeStr[i+1:])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid max value: %w", err)
	}
	if maxValue.LessThan(minValue) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("range %s runs backwards", rangeStr)
	}
	return minValue, maxValue, nil
}

func unitFor(name string) string {
	switch {
	case name == "current_age":
		return "years"
	case strings.HasSuffix(name, "_rate"), strings.HasSuffix(name, "_pct"), name == "investment_percentage":
		return "percent"
	default:
		return "amount"
	}
}
