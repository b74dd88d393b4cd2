package breakeven

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraints_Validate(t *testing.T) {
	c := DefaultConstraints(60)
	assert.NoError(t, c.Validate())

	bad := DefaultConstraints(0)
	assert.ErrorContains(t, bad.Validate(), "target retirement age")

	bad = DefaultConstraints(60)
	lo, hi := decimal.NewFromInt(50), decimal.NewFromInt(40)
	bad.MinSavingsRate, bad.MaxSavingsRate = &lo, &hi
	assert.ErrorContains(t, bad.Validate(), "savings rate")

	bad = DefaultConstraints(60)
	zero := decimal.Zero
	bad.MinWithdrawalRate = &zero
	assert.ErrorContains(t, bad.Validate(), "withdrawal rate bounds")

	bad = DefaultConstraints(60)
	bad.WithdrawalRateStep = &zero
	assert.ErrorContains(t, bad.Validate(), "step")
}

func TestParseTarget(t *testing.T) {
	target, err := ParseTarget("investment_share")
	require.NoError(t, err)
	assert.Equal(t, OptimizeInvestmentShare, target)

	target, err = ParseTarget("")
	require.NoError(t, err)
	assert.Equal(t, OptimizeAll, target)

	_, err = ParseTarget("bond_rate")
	assert.Error(t, err)
}

func TestTargetsFor(t *testing.T) {
	assert.Equal(t, []OptimizationTarget{OptimizeSavingsRate, OptimizeWithdrawalRate}, TargetsFor(domain.ModeRate))
	assert.Equal(t, []OptimizationTarget{OptimizeInvestmentShare, OptimizeWithdrawalRate}, TargetsFor(domain.ModeSplit))
}

func TestOptimizeAllTargets(t *testing.T) {
	solver := NewDefaultSolver(nil)

	md, err := solver.OptimizeAllTargets(context.Background(), "Savings rate",
		domain.DefaultInputParameters(), DefaultConstraints(60))
	require.NoError(t, err)
	require.Len(t, md.Results, 2)
	assert.Equal(t, OptimizeSavingsRate, md.Results[0].Request.Target)
	assert.Equal(t, "Savings rate", md.Results[0].Request.ScenarioName)
	assert.True(t, md.Results[1].OptimalWithdrawalRate.Equal(decimal.NewFromFloat(5.5)))

	require.Len(t, md.Recommendations, 2)
	assert.Contains(t, md.Recommendations[0], "Save at least")
	assert.Contains(t, md.Recommendations[1], "5.50% withdrawal rate")

	md, err = solver.OptimizeAllTargets(context.Background(), "", domain.DefaultInputParameters(), DefaultConstraints(31))
	require.NoError(t, err)
	require.Len(t, md.Recommendations, 1)
	assert.Contains(t, md.Recommendations[0], "out of reach")

	_, err = solver.OptimizeAllTargets(context.Background(), "", domain.DefaultInputParameters(), Constraints{})
	assert.Error(t, err)
}

func TestFormatters(t *testing.T) {
	solver := NewDefaultSolver(nil)
	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		ScenarioName: "Base",
		Inputs:       domain.DefaultInputParameters(),
		Target:       OptimizeWithdrawalRate,
		Constraints:  DefaultConstraints(68),
	})
	require.NoError(t, err)

	table := (&TableFormatter{}).Format(result)
	for _, want := range []string{"RETIREMENT GOAL SOLVER", "Scenario:          Base", "Withdrawal Rate:   4.00%", "WITHDRAWAL RATE GRID", "✓ Converged"} {
		assert.Contains(t, table, want)
	}
	for _, p := range result.GridPoints {
		assert.Contains(t, table, p.WithdrawalRate.StringFixed(2)+"%")
	}
	assert.Len(t, result.GridPoints, 7)

	out, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Len(t, decoded["grid_points"], 7)

	md, err := solver.OptimizeAllTargets(context.Background(), "", domain.DefaultInputParameters(), DefaultConstraints(60))
	require.NoError(t, err)
	multi := (&TableFormatter{}).FormatMultiDimensional(md)
	assert.Contains(t, multi, "savings_rate")
	assert.Contains(t, multi, "RECOMMENDATIONS")

	_, err = (&JSONFormatter{}).FormatMultiDimensional(md)
	assert.NoError(t, err)
}
