package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// TargetsFor lists the optimization targets that apply to a plan's allocation mode.
func TargetsFor(mode domain.AllocationMode) []OptimizationTarget {
	if mode == domain.ModeSplit {
		return []OptimizationTarget{OptimizeInvestmentShare, OptimizeWithdrawalRate}
	}
	return []OptimizationTarget{OptimizeSavingsRate, OptimizeWithdrawalRate}
}

// OptimizeAllTargets runs every applicable target for inputs and compares the results
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	scenarioName string,
	inputs domain.InputParameters,
	constraints Constraints,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	var results []OptimizationResult
	for _, target := range TargetsFor(inputs.Mode) {
		req := OptimizationRequest{
			ScenarioName:  scenarioName,
			Inputs:        inputs,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	md := &MultiDimensionalResult{Results: results}
	md.Recommendations = generateRecommendations(md, constraints.TargetRetirementAge)
	return md, nil
}

func generateRecommendations(result *MultiDimensionalResult, targetAge int) []string {
	var recommendations []string

	anySuccess := false
	for _, r := range result.Results {
		if !r.Success {
			continue
		}
		anySuccess = true

		switch {
		case r.OptimalSavingsRate != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Save at least %s%% of taxed salary to retire by %d",
					r.OptimalSavingsRate.StringFixed(2), targetAge))
		case r.OptimalInvestmentShare != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("Invest at least %s%% of salary (keeping the rest of the savings pool in cash) to retire by %d",
					r.OptimalInvestmentShare.StringFixed(2), targetAge))
		case r.OptimalWithdrawalRate != nil:
			recommendations = append(recommendations,
				fmt.Sprintf("A %s%% withdrawal rate is the most conservative that still retires by %d",
					r.OptimalWithdrawalRate.StringFixed(2), targetAge))
		}
	}

	if !anySuccess {
		recommendations = append(recommendations,
			fmt.Sprintf("Retiring by %d is out of reach within these bounds; consider a later target age or lower spending", targetAge))
	}

	return recommendations
}
