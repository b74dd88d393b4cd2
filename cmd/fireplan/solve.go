package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [plan-file]",
	Short: "Find the allocation that retires you by a target age",
	Long: `Search for the smallest savings rate (rate mode) or investment share (split
mode) that reaches the retirement fund by the target age, and the withdrawal
rates that allow it.

Targets: savings_rate, investment_share, withdrawal_rate, all

Examples:
  fireplan solve plan.yaml --target-age 55
  fireplan solve plan.yaml --target-age 50 --scenario "Salary split" --target investment_share`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().Int("target-age", 0, "Retire no later than this age (required)")
	solveCmd.Flags().String("target", "all", "What to solve for (savings_rate, investment_share, withdrawal_rate, all)")
	solveCmd.Flags().StringP("scenario", "s", "", "Scenario to solve (default: the first scenario)")
	solveCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	solveCmd.Flags().Int("max-iterations", 0, "Bisection step limit (default: solver default)")
	solveCmd.Flags().String("tolerance", "", "Stop when the bracket is narrower than this many points")
	_ = solveCmd.MarkFlagRequired("target-age")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args)
	if err != nil {
		return err
	}

	targetAge, _ := cmd.Flags().GetInt("target-age")
	targetStr, _ := cmd.Flags().GetString("target")
	scenarioName, _ := cmd.Flags().GetString("scenario")
	format, _ := cmd.Flags().GetString("format")
	maxIterations, _ := cmd.Flags().GetInt("max-iterations")
	toleranceStr, _ := cmd.Flags().GetString("tolerance")

	target, err := breakeven.ParseTarget(targetStr)
	if err != nil {
		return err
	}

	scenario := &plan.Scenarios[0]
	if scenarioName != "" {
		if scenario, err = plan.FindScenario(scenarioName); err != nil {
			return err
		}
	}
	inputs := plan.InputsFor(scenario)

	solver := breakeven.NewDefaultSolver(engine)
	if maxIterations > 0 {
		solver.Options.MaxIterations = maxIterations
	}
	if toleranceStr != "" {
		tolerance, err := config.ParseDecimal(toleranceStr)
		if err != nil {
			return fmt.Errorf("--tolerance: %w", err)
		}
		if !tolerance.GreaterThan(decimal.Zero) {
			return fmt.Errorf("--tolerance must be positive")
		}
		solver.Options.Tolerance = tolerance
	}
	constraints := breakeven.DefaultConstraints(targetAge)

	logger.Debug().Str("scenario", scenario.Name).Str("target", string(target)).Int("target_age", targetAge).Msg("solving")

	var rendered string
	if target == breakeven.OptimizeAll {
		result, err := solver.OptimizeAllTargets(cmd.Context(), scenario.Name, inputs, constraints)
		if err != nil {
			return err
		}
		rendered, err = renderSolve(format,
			func(tf *breakeven.TableFormatter) string { return tf.FormatMultiDimensional(result) },
			func(jf *breakeven.JSONFormatter) (string, error) { return jf.FormatMultiDimensional(result) })
		if err != nil {
			return err
		}
	} else {
		result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
			ScenarioName:  scenario.Name,
			Inputs:        inputs,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: solver.Options.MaxIterations,
			Tolerance:     solver.Options.Tolerance,
		})
		if err != nil {
			return err
		}
		rendered, err = renderSolve(format,
			func(tf *breakeven.TableFormatter) string { return tf.Format(result) },
			func(jf *breakeven.JSONFormatter) (string, error) { return jf.Format(result) })
		if err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func renderSolve(
	format string,
	table func(*breakeven.TableFormatter) string,
	jsonOut func(*breakeven.JSONFormatter) (string, error),
) (string, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return table(&breakeven.TableFormatter{}), nil
	case "json":
		return jsonOut(&breakeven.JSONFormatter{Pretty: true})
	default:
		return "", fmt.Errorf("unsupported solve format %q (table, json)", format)
	}
}
