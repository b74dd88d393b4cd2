package compare

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description,omitempty"`
	Result       *domain.SimulationResult `json:"-"`

	// Key Metrics
	Mode                 domain.AllocationMode `json:"mode"`
	YearsNeeded          int                   `json:"yearsNeeded"`
	RetirementAge        int                   `json:"retirementAge"`
	ReachedTarget        bool                  `json:"reachedTarget"`
	RetirementFundTarget decimal.Decimal       `json:"retirementFundTarget"`
	FinalBalance         decimal.Decimal       `json:"finalBalance"`
	Surplus              decimal.Decimal       `json:"surplus"` // final balance minus target, may be negative
	Advisory             bool                  `json:"advisory,omitempty"`

	// Comparison to Base
	YearsDiffFromBase   int             `json:"yearsDiffFromBase"`
	BalanceDiffFromBase decimal.Decimal `json:"balanceDiffFromBase"`
	BalancePctFromBase  decimal.Decimal `json:"balancePctFromBase"`
	TargetDiffFromBase  decimal.Decimal `json:"targetDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	Currency           string             `json:"currency"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for one result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.SimulationResult) ComparisonResult {
	s := result.Summary
	balance := s.TotalBalance()
	return ComparisonResult{
		ScenarioName:         result.Name,
		Result:               result,
		Mode:                 s.Mode,
		YearsNeeded:          s.YearsNeeded,
		RetirementAge:        s.RetirementAge,
		ReachedTarget:        s.ReachedTarget,
		RetirementFundTarget: s.RetirementFundTarget,
		FinalBalance:         balance,
		Surplus:              balance.Sub(s.RetirementFundTarget),
		Advisory:             s.Advisory,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.YearsDiffFromBase = scenario.YearsNeeded - base.YearsNeeded
	scenario.BalanceDiffFromBase = scenario.FinalBalance.Sub(base.FinalBalance)
	scenario.TargetDiffFromBase = scenario.RetirementFundTarget.Sub(base.RetirementFundTarget)

	if !base.FinalBalance.IsZero() {
		scenario.BalancePctFromBase = scenario.BalanceDiffFromBase.
			Div(base.FinalBalance).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Fastest retirement among the runs that reach their target
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.ReachedTarget {
			continue
		}
		if !fastest.ReachedTarget || alt.YearsNeeded < fastest.YearsNeeded {
			fastest = alt
		}
	}

	if fastest != base && fastest.ReachedTarget {
		if base.ReachedTarget {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest Retirement: %s retires %d years sooner, at age %d",
					fastest.ScenarioName, base.YearsNeeded-fastest.YearsNeeded, fastest.RetirementAge))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest Retirement: %s reaches the target at age %d; the base never does",
					fastest.ScenarioName, fastest.RetirementAge))
		}
	}

	// Largest surplus over the fund target
	largest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Surplus.GreaterThan(largest.Surplus) {
			largest = alt
		}
	}

	if largest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest Surplus: %s ends %s %s above its target",
				largest.ScenarioName, largest.Surplus.StringFixed(0), compSet.Currency))
	}

	// Warn about alternatives that never get there
	for _, alt := range compSet.AlternativeResults {
		if !alt.ReachedTarget {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s does not reach its target within the simulation horizon", alt.ScenarioName))
		}
	}

	return recommendations
}
