package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePlan = `currency: THB
frequency: yearly
profile:
  current_age: 30
  current_salary: 50000
  current_savings: 100000
  total_debt: 50000
  cost_of_living: 20000
  retirement_cost_of_living: 20000
assumptions:
  salary_growth_rate: 3
  inflation_rate: 2
  investment_return_rate: 5
  withdrawal_rate: 4
scenarios:
  - name: Savings rate
    mode: rate
    rate_allocation:
      savings_rate: 20
      tax_rate: 10
      investment_percentage: 50
  - name: Salary split
    mode: split
    split_allocation:
      debt_pct: 20
      investment_pct: 30
      cost_of_living_pct: 40
      savings_pct: 10
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores flag defaults between runs. A slice flag that was set
// before appends to its default on the next set, so slice flags with a
// non-empty default are set at most once per test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var def []string
			if trimmed := strings.Trim(f.DefValue, "[]"); trimmed != "" {
				def = strings.Split(trimmed, ",")
			}
			_ = sv.Replace(def)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with an empty settings file so local settings cannot
// leak into the test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	settingsPath := writeFile(t, "fireplan.toml", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--settings", settingsPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "fireplan", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestCommandSubcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"calculate", "validate", "compare", "sensitivity", "solve", "export", "serve", "version"} {
		assert.True(t, registered[name], "expected %s to be registered", name)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fireplan dev")
}

func TestCalculate_Console(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)

	out, err := execute(t, "calculate", plan)
	require.NoError(t, err)

	assert.Contains(t, out, "SAVINGS RATE (rate allocation)")
	assert.Contains(t, out, "SALARY SPLIT (split allocation)")
	assert.Contains(t, out, "Fastest: Salary split (age 47)")
}

func TestCalculate_JSONSingleScenario(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)

	out, err := execute(t, "calculate", plan, "--format", "json", "--scenario", "savings rate")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, "Savings rate")
	assert.NotContains(t, out, "Salary split")
}

func TestCalculate_BuiltInPlan(t *testing.T) {
	out, err := execute(t, "calculate")
	require.NoError(t, err)
	assert.Contains(t, out, "Fastest: Salary split")
}

func TestCalculate_Errors(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)

	_, err := execute(t, "calculate", plan, "--format", "bogus")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "calculate", plan, "--format", "pdf")
	assert.ErrorContains(t, err, "fireplan export")

	_, err = execute(t, "calculate", plan, "--scenario", "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "calculate", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	out, err := execute(t, "validate", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 scenarios")
	assert.Contains(t, out, "✓ Savings rate (rate)")
	assert.Contains(t, out, "✓ Salary split (split)")
}

func TestValidate_ReportsSplitMismatch(t *testing.T) {
	plan := writeFile(t, "plan.yaml", strings.Replace(examplePlan, "savings_pct: 10", "savings_pct: 5", 1))
	out, err := execute(t, "validate", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "⚠ Salary split (split)")
	assert.Contains(t, out, "95%")
}

func TestValidate_RangeError(t *testing.T) {
	plan := writeFile(t, "plan.yaml", strings.Replace(examplePlan, "tax_rate: 10", "tax_rate: 150", 1))
	_, err := execute(t, "validate", plan)
	assert.ErrorContains(t, err, "tax_rate")
}

func TestCompare_Templates(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	out, err := execute(t, "compare", plan, "--with", "save_more_5,high_inflation")
	require.NoError(t, err)
	assert.Contains(t, out, `Scenario comparison against "Savings rate"`)
	assert.Contains(t, out, "Savings rate + save_more_5")
	assert.Contains(t, out, "Savings rate + high_inflation")
}

func TestCompare_ScenariosAndTransforms(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)

	out, err := execute(t, "compare", plan, "--format", "json")
	require.NoError(t, err)
	var set struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenarioName"`
		} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "Savings rate", set.BaseScenarioName)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "Salary split", set.AlternativeResults[0].ScenarioName)

	out, err = execute(t, "compare", plan, "--transform", "adjust:parameter=savings_rate,delta=5", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Savings rate + custom")

	_, err = execute(t, "compare", plan, "--with", "nope")
	assert.ErrorContains(t, err, "template nope not found")
}

func TestCompare_RepeatedTransformsKeepTheirCommas(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)

	out, err := execute(t, "compare", plan,
		"--transform", "adjust:parameter=savings_rate,delta=10",
		"--transform", "set:parameter=withdrawal_rate,value=5",
		"--format", "json")
	require.NoError(t, err)

	var set struct {
		AlternativeResults []struct {
			ScenarioName      string `json:"scenarioName"`
			Description       string `json:"description"`
			YearsDiffFromBase int    `json:"yearsDiffFromBase"`
		} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	require.Len(t, set.AlternativeResults, 1)
	alt := set.AlternativeResults[0]
	assert.Equal(t, "Savings rate + custom", alt.ScenarioName)
	assert.Equal(t, "Adjust savings_rate by +10; Set withdrawal_rate to 5", alt.Description)
	assert.Negative(t, alt.YearsDiffFromBase)
}

func TestCompare_ListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "stress_test")
	assert.Contains(t, out, "shift_split")
}

func TestSolve(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	out, err := execute(t, "solve", plan, "--target-age", "60", "--target", "savings_rate")
	require.NoError(t, err)
	assert.Contains(t, out, "RETIREMENT GOAL SOLVER")
	assert.Contains(t, out, "Savings Rate:")

	_, err = execute(t, "solve", plan, "--target-age", "25")
	assert.ErrorContains(t, err, "must be after the current age")

	_, err = execute(t, "solve", plan, "--target-age", "60", "--target", "everything")
	assert.ErrorContains(t, err, "unknown target")
}

func TestSensitivity(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	out, err := execute(t, "sensitivity", plan, "--parameter", "inflation_rate:1-3:3", "--output", "json")
	require.NoError(t, err)

	var analysis struct {
		AnalysisType string `json:"analysisType"`
		Results      []any  `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, "single", analysis.AnalysisType)
	assert.Len(t, analysis.Results, 3)
}

func TestSensitivity_ParameterSet(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	out, err := execute(t, "sensitivity", plan, "--parameter-set", "critical", "--base-scenario", "Salary split")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: Salary split")

	_, err = execute(t, "sensitivity", plan)
	assert.ErrorContains(t, err, "--parameter")
}

func TestExport(t *testing.T) {
	plan := writeFile(t, "plan.yaml", examplePlan)
	dir := t.TempDir()

	out, err := execute(t, "export", plan, "--format", "csv,detailed-csv,xlsx", "--output-dir", dir)
	require.NoError(t, err)

	paths := strings.Fields(out)
	require.Len(t, paths, 3)
	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, ".xlsx", filepath.Ext(paths[2]))
}

func TestLoadPlan_BuiltInUsesDisplaySettings(t *testing.T) {
	saved := settings
	t.Cleanup(func() { settings = saved })
	settings = &config.Settings{Display: config.DisplaySettings{Currency: "GBP", Frequency: "monthly"}}

	plan, err := loadPlan(nil)
	require.NoError(t, err)
	assert.Equal(t, "GBP", plan.Currency)
	assert.Equal(t, domain.Monthly, plan.Frequency)
	assert.Equal(t, "4166.67", plan.Profile.CurrentSalary.StringFixed(2))
	assert.Len(t, plan.Scenarios, 2)
}

func TestParseParameterString(t *testing.T) {
	tests := []struct {
		spec      string
		wantMin   string
		wantMax   string
		wantSteps int
		wantErr   string
	}{
		{spec: "inflation_rate:1-4:7", wantMin: "1", wantMax: "4", wantSteps: 7},
		{spec: "inflation_rate:1-4", wantMin: "1", wantMax: "4", wantSteps: 5},
		{spec: "inflation_rate", wantMin: "1", wantMax: "5", wantSteps: 5},
		{spec: "salary_growth_rate:-2-3:6", wantMin: "-2", wantMax: "3", wantSteps: 6},
		{spec: "current_savings:0-200000:3", wantMin: "0", wantMax: "200000", wantSteps: 3},
		{spec: "current_savings", wantErr: "give a range"},
		{spec: "nope:1-2:3", wantErr: "nope"},
		{spec: "inflation_rate:4-1:3", wantErr: "backwards"},
		{spec: "inflation_rate:1-4:1", wantErr: "at least 2"},
		{spec: "inflation_rate:14:3", wantErr: "expected min-max"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			param, err := parseParameterString(tt.spec, 5, false)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, param.MinValue.String())
			assert.Equal(t, tt.wantMax, param.MaxValue.String())
			assert.Equal(t, tt.wantSteps, param.Steps)
		})
	}
}

func TestPredefinedParameterSet_SkipsSavingsRateInSplitMode(t *testing.T) {
	params, err := predefinedParameterSet("common", domain.ModeSplit)
	require.NoError(t, err)
	for _, p := range params {
		assert.NotEqual(t, "savings_rate", p.Name)
	}

	params, err = predefinedParameterSet("common", domain.ModeRate)
	require.NoError(t, err)
	assert.Len(t, params, len(domain.GetCommonParameters()))

	_, err = predefinedParameterSet("everything", domain.ModeRate)
	assert.Error(t, err)
}
