package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := &domain.SimulationResult{
		Name: "Test Scenario",
		Summary: domain.ResultSummary{
			Mode:                 domain.ModeSplit,
			YearsNeeded:          17,
			RetirementAge:        47,
			RetirementFundTarget: decimal.NewFromInt(600000),
			NetSavings:           decimal.NewFromInt(200000),
			NetInvestments:       decimal.NewFromInt(450000),
			ReachedTarget:        true,
		},
	}

	m := calc.CalculateMetrics(result)
	assert.Equal(t, "Test Scenario", m.ScenarioName)
	assert.Equal(t, 17, m.YearsNeeded)
	assert.Equal(t, 47, m.RetirementAge)
	assert.True(t, m.FinalBalance.Equal(decimal.NewFromInt(650000)))
	assert.True(t, m.Surplus.Equal(decimal.NewFromInt(50000)))
	assert.Same(t, result, m.Result)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		YearsNeeded:          20,
		FinalBalance:         decimal.NewFromInt(1000000),
		RetirementFundTarget: decimal.NewFromInt(900000),
	}
	alt := ComparisonResult{
		YearsNeeded:          17,
		FinalBalance:         decimal.NewFromInt(1100000),
		RetirementFundTarget: decimal.NewFromInt(900000),
	}

	out := calc.CalculateComparison(alt, base)
	assert.Equal(t, -3, out.YearsDiffFromBase)
	assert.True(t, out.BalanceDiffFromBase.Equal(decimal.NewFromInt(100000)))
	assert.True(t, out.BalancePctFromBase.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.TargetDiffFromBase.IsZero())

	zeroBase := calc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, zeroBase.BalancePctFromBase.IsZero())
}

func TestGenerateRecommendations(t *testing.T) {
	compSet := &ComparisonSet{
		Currency: "THB",
		BaseResult: &ComparisonResult{
			ScenarioName: "Base", YearsNeeded: 30, RetirementAge: 60, ReachedTarget: true,
			Surplus: decimal.NewFromInt(1000),
		},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "Faster", YearsNeeded: 25, RetirementAge: 55, ReachedTarget: true, Surplus: decimal.NewFromInt(500)},
			{ScenarioName: "Richer", YearsNeeded: 28, RetirementAge: 58, ReachedTarget: true, Surplus: decimal.NewFromInt(9000)},
			{ScenarioName: "Never", YearsNeeded: 100, RetirementAge: 130, ReachedTarget: false, Surplus: decimal.NewFromInt(-5)},
		},
	}

	recs := GenerateRecommendations(compSet)
	require.Len(t, recs, 3)
	assert.Equal(t, "Fastest Retirement: Faster retires 5 years sooner, at age 55", recs[0])
	assert.Equal(t, "Largest Surplus: Richer ends 9000 THB above its target", recs[1])
	assert.Contains(t, recs[2], "Never does not reach")

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: compSet.BaseResult}))
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(nil)
	cfg := config.DefaultConfiguration()

	compSet, err := engine.CompareScenarios(context.Background(), cfg, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Savings rate", compSet.BaseScenarioName)
	assert.Equal(t, 38, compSet.BaseResult.YearsNeeded)
	require.Len(t, compSet.AlternativeResults, 1)

	split := compSet.AlternativeResults[0]
	assert.Equal(t, "Salary split", split.ScenarioName)
	assert.Equal(t, 17, split.YearsNeeded)
	assert.Equal(t, 47, split.RetirementAge)
	assert.Equal(t, -21, split.YearsDiffFromBase)
	assert.Equal(t, "25762.00", split.Surplus.StringFixed(2))

	require.NotEmpty(t, compSet.Recommendations)
	assert.Equal(t, "Fastest Retirement: Salary split retires 21 years sooner, at age 47", compSet.Recommendations[0])

	_, err = engine.CompareScenarios(context.Background(), cfg, "Savings rate", []string{"missing"})
	assert.Error(t, err)
}

func TestCompareEngine_CompareTemplates(t *testing.T) {
	engine := NewCompareEngine(nil)
	cfg := config.DefaultConfiguration()

	compSet, err := engine.Compare(context.Background(), cfg, CompareOptions{
		BaseScenarioName: "savings RATE",
		Templates:        []string{"save_more_5", "safe_withdrawal_3"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 2)

	saveMore := compSet.AlternativeResults[0]
	assert.True(t, strings.HasSuffix(saveMore.ScenarioName, "save_more_5"))
	assert.NotEmpty(t, saveMore.Description)
	assert.Less(t, saveMore.YearsDiffFromBase, 0)

	safer := compSet.AlternativeResults[1]
	assert.Greater(t, safer.YearsDiffFromBase, 0)
	assert.True(t, safer.TargetDiffFromBase.IsPositive())

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{BaseScenarioName: "missing"})
	assert.Error(t, err)
}

func TestCompareEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompareEngine(nil).Compare(ctx, config.DefaultConfiguration(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
