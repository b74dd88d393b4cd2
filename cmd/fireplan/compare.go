package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/spf13/cobra"
)

const customTemplateName = "custom"

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare scenarios or what-if templates against a base scenario",
	Long: `Compare a base scenario against what-if templates, ad-hoc transforms or the
other scenarios of the plan.

Examples:
  # Every other scenario against the first one
  fireplan compare plan.yaml

  # Built-in templates applied to a named scenario
  fireplan compare plan.yaml --base "Salary split" --with save_more_5,stress_test

  # An ad-hoc what-if
  fireplan compare plan.yaml --transform adjust:parameter=savings_rate,delta=5

  # List templates and transforms
  fireplan compare --list-templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("base", "", "Base scenario name (default: the first scenario)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform, e.g. adjust:parameter=savings_rate,delta=5 (repeatable)")
	compareCmd.Flags().StringSlice("scenarios", nil, "Scenarios to compare against the base (default: all others)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available templates and transforms")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	compareEngine := compare.NewCompareEngine(engine)

	if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
		fmt.Fprint(out, transform.GetTemplateHelp(compareEngine.TemplateRegistry))
		fmt.Fprintf(out, "\nTransforms for --transform: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
		return nil
	}

	plan, err := loadPlan(args)
	if err != nil {
		return err
	}

	baseName, _ := cmd.Flags().GetString("base")
	templatesStr, _ := cmd.Flags().GetString("with")
	transformSpecs, _ := cmd.Flags().GetStringArray("transform")
	scenarioNames, _ := cmd.Flags().GetStringSlice("scenarios")
	format, _ := cmd.Flags().GetString("format")

	templates := transform.ParseTemplateList(templatesStr)
	if len(transformSpecs) > 0 {
		custom, err := customTemplate(transformSpecs)
		if err != nil {
			return err
		}
		compareEngine.TemplateRegistry.Register(custom)
		templates = append(templates, customTemplateName)
	}

	var set *compare.ComparisonSet
	if len(templates) > 0 {
		logger.Debug().Strs("templates", templates).Str("base", baseName).Msg("comparing templates")
		set, err = compareEngine.Compare(cmd.Context(), plan, compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templates,
		})
	} else {
		logger.Debug().Strs("scenarios", scenarioNames).Str("base", baseName).Msg("comparing scenarios")
		set, err = compareEngine.CompareScenarios(cmd.Context(), plan, baseName, scenarioNames)
	}
	if err != nil {
		return err
	}
	if len(args) > 0 {
		set.ConfigPath = args[0]
	}

	var rendered string
	switch strings.ToLower(format) {
	case "table", "":
		rendered = (&compare.TableFormatter{}).Format(set)
	case "compact":
		rendered = (&compare.TableFormatter{}).FormatCompact(set)
	case "csv":
		rendered, err = (&compare.CSVFormatter{}).Format(set)
	case "json":
		rendered, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	default:
		return fmt.Errorf("unsupported compare format %q (table, compact, csv, json)", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}

// customTemplate builds a one-off template from --transform specs.
func customTemplate(specs []string) (transform.Template, error) {
	registry := transform.NewTransformRegistry()
	transforms := make([]transform.ParameterTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return transform.Template{}, fmt.Errorf("--transform %q: %w", spec, err)
		}
		transforms = append(transforms, t)
	}
	return transform.Template{
		Name:        customTemplateName,
		Category:    "Custom",
		Description: strings.Join(transform.Describe(transforms), "; "),
		Transforms:  transforms,
	}, nil
}
