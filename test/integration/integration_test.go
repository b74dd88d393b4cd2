package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	examplePlanPath = "../testdata/example_plan.yaml"
	settingsPath    = "../testdata/fireplan.toml"
)

func loadExamplePlan(t *testing.T) *domain.Configuration {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(examplePlanPath)
	require.NoError(t, err)
	return plan
}

func TestIntegrationSuite(t *testing.T) {
	t.Run("Baselines", testBaselines)
	t.Run("Output_Formats", testOutputFormats)
	t.Run("Compare", testCompare)
	t.Run("Solve", testSolve)
	t.Run("Sensitivity", testSensitivity)
	t.Run("Plan_Round_Trip", testPlanRoundTrip)
	t.Run("Data_Consistency", testDataConsistency)
}

func testBaselines(t *testing.T) {
	plan := loadExamplePlan(t)
	projection, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, projection.Results, 2)

	rate := projection.Results[0].Summary
	assert.Equal(t, 38, rate.YearsNeeded)
	assert.Equal(t, 68, rate.RetirementAge)
	assert.Equal(t, "1061149.40", rate.RetirementFundTarget.StringFixed(2))

	split := projection.Results[1].Summary
	assert.Equal(t, 17, split.YearsNeeded)
	assert.Equal(t, 47, split.RetirementAge)
	assert.True(t, split.DebtRemaining.IsZero())

	assert.Equal(t, "Salary split", projection.Fastest().Name)
}

func testOutputFormats(t *testing.T) {
	plan := loadExamplePlan(t)
	projection, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), plan)
	require.NoError(t, err)

	for _, format := range output.AvailableFormatterNames() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			start := time.Now()
			require.NoError(t, output.GenerateReport(&buf, projection, format))
			assert.Less(t, time.Since(start), 5*time.Second)
			assert.NotZero(t, buf.Len())
		})
	}

	dir := t.TempDir()
	path, err := output.WriteFormatted(output.GetFormatterByName("excel"), projection, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func testCompare(t *testing.T) {
	plan := loadExamplePlan(t)
	engine := compare.NewCompareEngine(nil)

	set, err := engine.Compare(context.Background(), plan, compare.CompareOptions{
		BaseScenarioName: "Savings rate",
		Templates:        []string{"save_more_10", "conservative_returns"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	saveMore := set.AlternativeResults[0]
	assert.Negative(t, saveMore.YearsDiffFromBase, "saving more should retire sooner")
	worseReturns := set.AlternativeResults[1]
	assert.Positive(t, worseReturns.YearsDiffFromBase, "lower returns should retire later")
	assert.NotEmpty(t, set.Recommendations)
}

func testSolve(t *testing.T) {
	plan := loadExamplePlan(t)
	calc := calculation.NewCalculationEngine()
	solver := breakeven.NewDefaultSolver(calc)

	inputs := plan.InputsFor(&plan.Scenarios[0])
	result, err := solver.Optimize(context.Background(), breakeven.OptimizationRequest{
		Inputs:      inputs,
		Target:      breakeven.OptimizeSavingsRate,
		Constraints: breakeven.DefaultConstraints(55),
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.OptimalSavingsRate)

	// The solved rate retires by the target age when fed back through the engine.
	inputs.Rate.SavingsRate = *result.OptimalSavingsRate
	summary := calc.Run(inputs).Summary
	assert.True(t, summary.ReachedTarget)
	assert.LessOrEqual(t, summary.RetirementAge, 55)
}

func testSensitivity(t *testing.T) {
	plan := loadExamplePlan(t)
	analyzer := calculation.NewSensitivityAnalyzer()

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), "Savings rate",
		plan.InputsFor(&plan.Scenarios[0]), domain.InvestmentReturnParam)
	require.NoError(t, err)
	require.Len(t, analysis.Results, domain.InvestmentReturnParam.Steps)

	// Higher returns never take longer.
	for i := 1; i < len(analysis.Results); i++ {
		assert.LessOrEqual(t, analysis.Results[i].Summary.YearsNeeded, analysis.Results[i-1].Summary.YearsNeeded)
	}
}

func testPlanRoundTrip(t *testing.T) {
	plan := loadExamplePlan(t)
	parser := config.NewInputParser()

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, parser.SaveToFile(plan, path))
	reloaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	before, err := engine.RunScenarios(context.Background(), plan)
	require.NoError(t, err)
	after, err := engine.RunScenarios(context.Background(), reloaded)
	require.NoError(t, err)

	for i := range before.Results {
		assert.Equal(t, before.Results[i].Summary.YearsNeeded, after.Results[i].Summary.YearsNeeded)
		assert.True(t, before.Results[i].Summary.RetirementFundTarget.Equal(after.Results[i].Summary.RetirementFundTarget))
	}
}

func testDataConsistency(t *testing.T) {
	plan := loadExamplePlan(t)
	projection, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), plan)
	require.NoError(t, err)

	for _, r := range projection.Results {
		t.Run(r.Name, func(t *testing.T) {
			require.Len(t, r.Series, r.Summary.YearsNeeded)
			assert.Equal(t, r.Inputs.CurrentAge+r.Summary.YearsNeeded, r.Summary.RetirementAge)

			prevDebt := r.Inputs.TotalDebt
			for _, row := range r.Series {
				assert.Equal(t, r.Inputs.CurrentAge+row.Year, row.Age)
				if r.Summary.Mode == domain.ModeSplit {
					assert.False(t, row.DebtRemaining.IsNegative())
					assert.True(t, row.DebtRemaining.LessThanOrEqual(prevDebt))
					prevDebt = row.DebtRemaining
				}
			}
		})
	}
}

func TestIntegrationSettings(t *testing.T) {
	settings, info, err := config.LoadSettings(settingsPath)
	require.NoError(t, err)
	assert.True(t, info.Found)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, "0.0.0.0:9090", settings.Server.Addr())
	assert.Equal(t, "json", settings.Output.Format)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "GBP", settings.Display.Currency)
}

func TestIntegrationCancellation(t *testing.T) {
	plan := loadExamplePlan(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calculation.NewCalculationEngine().RunScenarios(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = breakeven.NewDefaultSolver(nil).Optimize(ctx, breakeven.OptimizationRequest{
		Inputs:      plan.InputsFor(&plan.Scenarios[0]),
		Target:      breakeven.OptimizeSavingsRate,
		Constraints: breakeven.DefaultConstraints(55),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIntegrationMonthlyMatchesYearly(t *testing.T) {
	plan := loadExamplePlan(t)
	yearly := plan.InputsFor(&plan.Scenarios[0])

	monthly := yearly
	monthly.Frequency = domain.Monthly
	twelve := decimal.NewFromInt(12)
	monthly.CurrentSalary = yearly.CurrentSalary.Div(twelve)
	monthly.CostOfLiving = yearly.CostOfLiving.Div(twelve)
	monthly.RetirementCostOfLiving = yearly.RetirementCostOfLiving.Div(twelve)

	a := calculation.Simulate(yearly).Summary
	b := calculation.Simulate(monthly).Summary
	assert.Equal(t, a.YearsNeeded, b.YearsNeeded)
}
