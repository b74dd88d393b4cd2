package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/logging"
	"github.com/rgehrsitz/fireplan/internal/output"
	"github.com/rgehrsitz/fireplan/internal/server"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Set up by the root command before any subcommand runs.
var (
	settings = config.DefaultSettings()
	logger   = zerolog.Nop()
	engine   = calculation.NewCalculationEngine()
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fireplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "fireplan",
	Short: "Retirement projection calculator",
	Long: `Project how many years of saving and investing it takes until the retirement
fund covers retirement spending, for one or more ways of allocating salary.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads settings and wires the logger into the shared engine.
func setup(cmd *cobra.Command, args []string) error {
	settingsPath, _ := cmd.Flags().GetString("settings")
	loaded, info, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}
	settings = loaded

	level := settings.Logging.Level
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	debugMode, _ := cmd.Flags().GetBool("debug")
	if debugMode {
		level = "debug"
	}

	logger, err = logging.New(cmd.ErrOrStderr(), level, false)
	if err != nil {
		return err
	}
	if info.Found {
		logger.Debug().Str("path", info.Path).Msg("settings loaded")
	}

	engine = calculation.NewCalculationEngine()
	engine.Debug = debugMode
	engine.SetLogger(logging.EngineLogger{L: logger})
	return nil
}

// loadPlan reads the plan at args[0], or builds the built-in plan in the
// display currency and frequency from settings.
func loadPlan(args []string) (*domain.Configuration, error) {
	if len(args) > 0 {
		return config.NewInputParser().LoadFromFile(args[0])
	}

	plan := config.DefaultConfiguration()
	if settings.Display.Currency != "" {
		plan.Currency = settings.Display.Currency
	}
	if settings.Display.Frequency != "" {
		freq, err := domain.ParseFrequency(settings.Display.Frequency)
		if err != nil {
			return nil, fmt.Errorf("settings display.frequency: %w", err)
		}
		convertPlanFrequency(plan, freq)
	}
	logger.Debug().Str("currency", plan.Currency).Str("frequency", plan.Frequency.String()).Msg("using built-in plan")
	return plan, nil
}

func convertPlanFrequency(plan *domain.Configuration, freq domain.Frequency) {
	inputs := plan.InputsFor(&plan.Scenarios[0])
	converted, err := (&transform.SwitchFrequency{Frequency: freq}).Apply(inputs)
	if err != nil {
		return
	}
	plan.Frequency = converted.Frequency
	plan.Profile.CurrentSalary = converted.CurrentSalary
	plan.Profile.CostOfLiving = converted.CostOfLiving
	plan.Profile.RetirementCostOfLiving = converted.RetirementCostOfLiving
}

// selectScenarios narrows the plan to one scenario when name is set.
func selectScenarios(plan *domain.Configuration, name string) error {
	if name == "" {
		return nil
	}
	s, err := plan.FindScenario(name)
	if err != nil {
		return err
	}
	plan.Scenarios = []domain.Scenario{*s}
	return nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Project every scenario of a plan",
	Long: `Project every scenario of a plan and print the results.
Without a plan file the built-in example plan is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args)
		if err != nil {
			return err
		}
		scenarioName, _ := cmd.Flags().GetString("scenario")
		if err := selectScenarios(plan, scenarioName); err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") && settings.Output.Format != "" {
			format = settings.Output.Format
		}
		if output.IsBinary(format) {
			return fmt.Errorf("%s output is binary; use 'fireplan export --format %s'", format, output.NormalizeFormatName(format))
		}

		projection, err := engine.RunScenarios(cmd.Context(), plan)
		if err != nil {
			return err
		}
		logger.Debug().Int("scenarios", len(projection.Results)).Str("format", format).Msg("projection complete")
		return output.GenerateReport(cmd.OutOrStdout(), projection, format)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Check a plan file",
	Long: `Check a plan file for range errors, then report the warnings each scenario
would produce, such as split shares that do not add up to 100%.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s is valid (%d scenarios, %s, %s)\n",
			args[0], len(plan.Scenarios), plan.Currency, plan.Frequency)
		for i := range plan.Scenarios {
			s := &plan.Scenarios[i]
			issues := plan.InputsFor(s).Validate()
			if len(issues) == 0 {
				fmt.Fprintf(out, "  ✓ %s (%s)\n", s.Name, s.Mode)
				continue
			}
			fmt.Fprintf(out, "  ⚠ %s (%s)\n", s.Name, s.Mode)
			for _, issue := range issues {
				fmt.Fprintf(out, "      %s\n", issue.Message)
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [plan-file]",
	Short: "Write a plan's projection to report files",
	Long: `Write the projection of every scenario to one file per format.

Formats: ` + strings.Join(output.AvailableFormatterNames(), ", ") + `
Aliases: ` + strings.Join(output.AvailableFormatAliases(), ", "),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formats, _ := cmd.Flags().GetStringSlice("format")
		if !cmd.Flags().Changed("format") && settings.Output.Format != "" {
			formats = []string{settings.Output.Format}
		}
		dir, _ := cmd.Flags().GetString("output-dir")
		if !cmd.Flags().Changed("output-dir") && settings.Output.Directory != "" {
			dir = settings.Output.Directory
		}

		formatters := make([]output.Formatter, 0, len(formats))
		for _, name := range formats {
			f := output.GetFormatterByName(name)
			if f == nil {
				return output.UnknownFormatError{Format: name}
			}
			formatters = append(formatters, f)
		}

		plan, err := loadPlan(args)
		if err != nil {
			return err
		}
		scenarioName, _ := cmd.Flags().GetString("scenario")
		if err := selectScenarios(plan, scenarioName); err != nil {
			return err
		}
		projection, err := engine.RunScenarios(cmd.Context(), plan)
		if err != nil {
			return err
		}

		for _, f := range formatters {
			path, err := output.WriteFormatted(f, projection, dir)
			if err != nil {
				return fmt.Errorf("%s export: %w", f.Name(), err)
			}
			logger.Info().Str("format", f.Name()).Str("path", path).Msg("report written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection API over HTTP",
	Long: `Serve the projection API. Routes:
  POST /v1/simulate   project one set of inputs
  POST /v1/validate   range-check a set of inputs
  GET  /v1/templates  list what-if templates
  GET  /healthz       liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := settings.Server
		if cmd.Flags().Changed("host") {
			addr.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			addr.Port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(engine, logger).ListenAndServe(ctx, addr.Addr())
	},
}

func init() {
	rootCmd.PersistentFlags().String("settings", "", "Path to a settings file (default: ./"+config.SettingsFileName+" or the user config directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every simulated year")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	calculateCmd.Flags().StringP("scenario", "s", "", "Only project the named scenario")

	exportCmd.Flags().StringSliceP("format", "f", []string{"html"}, "Formats to write, comma separated")
	exportCmd.Flags().StringP("output-dir", "o", ".", "Directory for report files")
	exportCmd.Flags().StringP("scenario", "s", "", "Only export the named scenario")

	serveCmd.Flags().String("host", "", "Listen host (overrides settings)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides settings)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
