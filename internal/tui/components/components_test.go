package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParameterSlider_Stepping(t *testing.T) {
	s := NewParameterSlider("savings_rate", "Savings rate", d("99"), d("0"), d("100"), d("0.5")).WithUnit("%").WithPlaces(1)

	assert.True(t, s.Increment())
	assert.True(t, s.Increment())
	assert.Equal(t, "100.0%", s.FormattedValue())
	assert.False(t, s.Increment(), "already at max")

	for i := 0; i < 3; i++ {
		s.Decrement()
	}
	assert.True(t, s.Value.Equal(d("98.5")))
}

func TestParameterSlider_RangeWidensToValue(t *testing.T) {
	s := NewParameterSlider("current_salary", "Salary", d("2500000"), d("0"), d("1000000"), d("1000"))
	assert.True(t, s.Max.Equal(d("2500000")))
	assert.InDelta(t, 1.0, s.Percentage(), 1e-9)
	assert.Equal(t, "2,500,000", s.FormattedValue())
}

func TestParameterSlider_SetValueClamps(t *testing.T) {
	s := NewParameterSlider("tax_rate", "Tax", d("10"), d("0"), d("100"), d("1"))
	assert.True(t, s.SetValue(d("140")))
	assert.True(t, s.Value.Equal(d("100")))
	assert.True(t, s.SetValue(d("-5")))
	assert.True(t, s.Value.IsZero())
	assert.False(t, s.SetValue(d("0")))
}

func TestParameterSlider_RenderShowsDescriptionWhenFocused(t *testing.T) {
	s := NewParameterSlider("tax_rate", "Tax", d("10"), d("0"), d("100"), d("1")).
		WithUnit("%").WithDescription("Share of salary paid as tax")
	assert.NotContains(t, s.Render(), "Share of salary")
	s.SetFocused(true)
	out := s.Render()
	assert.Contains(t, out, "Share of salary")
	assert.Contains(t, out, "10%")
}

func TestFundBar_Segments(t *testing.T) {
	tests := []struct {
		name                 string
		savings, inv, target string
		want                 [3]int
	}{
		{"partial", "100", "300", "1000", [3]int{4, 12, 24}},
		{"covered", "600", "600", "1000", [3]int{20, 20, 0}},
		{"negative savings", "-500", "500", "1000", [3]int{0, 20, 20}},
		{"zero target", "0", "0", "0", [3]int{0, 0, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := &FundBar{Savings: d(tt.savings), Investments: d(tt.inv), Target: d(tt.target), Width: 40}
			s, i, g := bar.Segments()
			assert.Equal(t, tt.want, [3]int{s, i, g})
		})
	}
}

func TestFundBar_Caption(t *testing.T) {
	bar := NewFundBar(domain.ResultSummary{
		NetSavings:           d("100"),
		NetInvestments:       d("300"),
		RetirementFundTarget: d("1000"),
	}, "THB")
	assert.Contains(t, bar.Render(), "Still needed: 600 THB")

	bar.Savings = d("1000")
	assert.Contains(t, bar.Render(), "Target covered")
}

func TestTrajectoryChart(t *testing.T) {
	rows := []domain.TimeSeriesRow{
		{Age: 31, NetSavings: d("1000"), NetInvestments: d("0"), TotalBalance: d("1000"), RetirementFundTarget: d("50000")},
		{Age: 32, NetSavings: d("2000"), NetInvestments: d("500"), TotalBalance: d("2500"), RetirementFundTarget: d("51000")},
		{Age: 33, NetSavings: d("3000"), NetInvestments: d("1500"), TotalBalance: d("4500"), RetirementFundTarget: d("52000")},
	}
	chart := TrajectoryChart(rows).WithSize(50, 8)
	require.Len(t, chart.Series, 4)
	assert.Equal(t, []string{"31", "32", "33"}, chart.Labels)

	out := chart.Render()
	assert.Contains(t, out, "Balance by age")
	assert.Contains(t, out, "Investments")
	assert.Contains(t, out, "33")
}

func TestTrajectoryChart_Empty(t *testing.T) {
	assert.Contains(t, TrajectoryChart(nil).Render(), "already met")
}

func TestASCIIChart_SinglePoint(t *testing.T) {
	chart := NewASCIIChart("").AddSeries("only", []float64{5}, "#FFFFFF").WithSize(30, 4)
	out := chart.Render()
	assert.Equal(t, 5, strings.Count(out, "\n"), "four grid rows plus the axis")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "1.5M", formatChartValue(1500000))
	assert.Equal(t, "25K", formatChartValue(25000))
	assert.Equal(t, "999", formatChartValue(999))
	assert.Equal(t, "-2K", formatChartValue(-2000))
}

func TestScenarioCard(t *testing.T) {
	s := domain.Scenario{
		Name: "Salary split",
		Mode: domain.ModeSplit,
		Split: &domain.SplitAllocation{
			DebtPct: d("20"), InvestmentPct: d("30"), CostOfLivingPct: d("40"), SavingsPct: d("10"),
		},
	}
	result := &domain.SimulationResult{Summary: domain.ResultSummary{
		YearsNeeded: 17, RetirementAge: 47, ReachedTarget: true, RetirementFundTarget: d("700000"),
	}}

	out := NewScenarioCard(s, result, "THB").WithSelected(true).Render()
	assert.Contains(t, out, "Salary split")
	assert.Contains(t, out, "debt 20% · invest 30%")
	assert.Contains(t, out, "Retire at 47 in 17 years")

	result.Summary.ReachedTarget = false
	result.Summary.YearsNeeded = 100
	assert.Contains(t, NewScenarioCard(s, result, "THB").Render(), "not reached within 100 years")
}

func TestMetricGrid(t *testing.T) {
	cards := []*MetricCard{
		NewMetricCard("Years", "38"),
		NewMetricCard("Age", "68").WithTrend(true, "2 sooner"),
		NewMetricCard("Fund", "1,061,149"),
	}
	out := MetricGrid(cards, 2)
	assert.Contains(t, out, "Years")
	assert.Contains(t, out, "▲ 2 sooner")
	assert.Empty(t, MetricGrid(nil, 2))
}
