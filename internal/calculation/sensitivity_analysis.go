package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{calculationEngine: NewCalculationEngine()}
}

// NewSensitivityAnalyzerWithEngine shares an existing engine (and its logger).
func NewSensitivityAnalyzerWithEngine(ce *CalculationEngine) *SensitivityAnalyzer {
	if ce == nil {
		ce = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: ce}
}

// AnalyzeSingleParameter sweeps one parameter over its range.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	scenarioName string,
	base domain.InputParameters,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	parameter, err := withBaseValue(base, parameter)
	if err != nil {
		return nil, err
	}

	baseline := sa.calculationEngine.Run(base).Summary
	results, err := sa.sweep(ctx, scenarioName, base, baseline, parameter)
	if err != nil {
		return nil, err
	}

	analysis := &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: scenarioName,
		Base:             baseline,
		Parameters:       []domain.SensitivityParameter{parameter},
		Results:          results,
		Summary:          sa.calculateSensitivitySummary(baseline, results, []domain.SensitivityParameter{parameter}),
		AnalysisType:     "single",
	}
	return analysis, nil
}

// AnalyzeMultipleParameters sweeps each parameter independently and ranks them.
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	scenarioName string,
	base domain.InputParameters,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	baseline := sa.calculationEngine.Run(base).Summary

	var allResults []domain.SensitivityResult
	allParameters := make([]domain.SensitivityParameter, 0, len(parameters))
	for _, param := range parameters {
		param, err := withBaseValue(base, param)
		if err != nil {
			return nil, err
		}
		results, err := sa.sweep(ctx, scenarioName, base, baseline, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		allResults = append(allResults, results...)
		allParameters = append(allParameters, param)
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: scenarioName,
		Base:             baseline,
		Parameters:       allParameters,
		Results:          allResults,
		Summary:          sa.calculateSensitivitySummary(baseline, allResults, allParameters),
		AnalysisType:     "multi",
	}, nil
}

// AnalyzeParameterMatrix performs a 2D parameter matrix analysis
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	scenarioName string,
	base domain.InputParameters,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	param1, err := withBaseValue(base, param1)
	if err != nil {
		return nil, err
	}
	param2, err = withBaseValue(base, param2)
	if err != nil {
		return nil, err
	}

	baseline := sa.calculationEngine.Run(base).Summary
	values1 := param1.Values()
	values2 := param2.Values()
	matrixResults := make([][]domain.SensitivityResult, len(values1))

	for i, value1 := range values1 {
		matrixResults[i] = make([]domain.SensitivityResult, len(values2))
		for j, value2 := range values2 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			modified, err := base.WithParameter(param1.Name, value1)
			if err != nil {
				return nil, err
			}
			modified, err = modified.WithParameter(param2.Name, value2)
			if err != nil {
				return nil, err
			}

			summary := sa.calculationEngine.Run(modified).Summary
			matrixResults[i][j] = domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{param1.Name: value1, param2.Name: value2},
				ScenarioName: fmt.Sprintf("%s_%s_%s_%s_%s", scenarioName,
					param1.Name, value1.StringFixed(2), param2.Name, value2.StringFixed(2)),
				Summary:     summary,
				YearsChange: summary.YearsNeeded - baseline.YearsNeeded,
			}
		}
	}

	return &domain.SensitivityMatrix{
		BaseScenarioName: scenarioName,
		Parameter1:       param1,
		Parameter2:       param2,
		MatrixResults:    matrixResults,
		Summary:          sa.calculateMatrixSummary(baseline, matrixResults, param1, param2),
	}, nil
}

func (sa *SensitivityAnalyzer) sweep(
	ctx context.Context,
	scenarioName string,
	base domain.InputParameters,
	baseline domain.ResultSummary,
	param domain.SensitivityParameter,
) ([]domain.SensitivityResult, error) {
	values := param.Values()
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modified, err := base.WithParameter(param.Name, value)
		if err != nil {
			return nil, err
		}
		summary := sa.calculationEngine.Run(modified).Summary
		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{param.Name: value},
			ScenarioName:    fmt.Sprintf("%s_%s_%s", scenarioName, param.Name, value.StringFixed(2)),
			Summary:         summary,
			YearsChange:     summary.YearsNeeded - baseline.YearsNeeded,
		})
	}
	return results, nil
}

func withBaseValue(base domain.InputParameters, param domain.SensitivityParameter) (domain.SensitivityParameter, error) {
	current, err := base.Parameter(param.Name)
	if err != nil {
		return param, err
	}
	param.BaseValue = current
	return param, nil
}

// relativeChange is (v-base)/base, or the plain difference when base is zero.
func relativeChange(v, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return v.Sub(base)
	}
	return v.Sub(base).Div(base)
}

// elasticity is |relative change in years| / |relative change in the parameter|.
func elasticity(years, baseYears int, value, baseValue decimal.Decimal) (decimal.Decimal, bool) {
	paramChange := relativeChange(value, baseValue).Abs()
	if paramChange.IsZero() {
		return decimal.Zero, false
	}
	yearsChange := relativeChange(decimal.NewFromInt(int64(years)), decimal.NewFromInt(int64(baseYears))).Abs()
	return yearsChange.Div(paramChange), true
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(
	baseline domain.ResultSummary,
	results []domain.SensitivityResult,
	parameters []domain.SensitivityParameter,
) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{
		SensitivityScores:    make(map[string]decimal.Decimal),
		FastestRetirementAge: baseline.RetirementAge,
		SlowestRetirementAge: baseline.RetirementAge,
	}
	if len(results) == 0 {
		return summary
	}

	baseValues := make(map[string]decimal.Decimal, len(parameters))
	for _, p := range parameters {
		baseValues[p.Name] = p.BaseValue
	}

	maxScore := decimal.Zero
	for _, result := range results {
		if result.Summary.RetirementAge < summary.FastestRetirementAge {
			summary.FastestRetirementAge = result.Summary.RetirementAge
		}
		if result.Summary.RetirementAge > summary.SlowestRetirementAge {
			summary.SlowestRetirementAge = result.Summary.RetirementAge
		}

		for name, value := range result.ParameterValues {
			score, ok := elasticity(result.Summary.YearsNeeded, baseline.YearsNeeded, value, baseValues[name])
			if !ok {
				continue
			}
			if score.GreaterThan(summary.SensitivityScores[name]) {
				summary.SensitivityScores[name] = score
			}
			if summary.MostSensitiveParameter == "" || score.GreaterThan(maxScore) {
				maxScore = score
				summary.MostSensitiveParameter = name
			}
		}
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}

func (sa *SensitivityAnalyzer) calculateMatrixSummary(
	baseline domain.ResultSummary,
	matrixResults [][]domain.SensitivityResult,
	param1, param2 domain.SensitivityParameter,
) domain.SensitivityMatrixSummary {
	interactionEffect := decimal.Zero
	maxSensitivity := decimal.Zero
	mostSensitiveCombination := ""
	baseYears := decimal.NewFromInt(int64(baseline.YearsNeeded))

	for i := range matrixResults {
		for j := range matrixResults[i] {
			result := matrixResults[i][j]
			change1 := relativeChange(result.ParameterValues[param1.Name], param1.BaseValue)
			change2 := relativeChange(result.ParameterValues[param2.Name], param2.BaseValue)
			combined := change1.Abs().Add(change2.Abs())
			if combined.IsZero() {
				continue
			}

			yearsChange := relativeChange(decimal.NewFromInt(int64(result.Summary.YearsNeeded)), baseYears)

			// Interaction is the part of the combined effect that the two
			// one-dimensional edges of the matrix do not explain.
			edge1 := relativeChange(decimal.NewFromInt(int64(matrixResults[i][0].Summary.YearsNeeded)), baseYears)
			edge2 := relativeChange(decimal.NewFromInt(int64(matrixResults[0][j].Summary.YearsNeeded)), baseYears)
			corner := relativeChange(decimal.NewFromInt(int64(matrixResults[0][0].Summary.YearsNeeded)), baseYears)
			interaction := yearsChange.Sub(edge1).Sub(edge2).Add(corner)
			if interaction.Abs().GreaterThan(interactionEffect.Abs()) {
				interactionEffect = interaction
			}

			score := yearsChange.Abs().Div(combined)
			if score.GreaterThan(maxSensitivity) {
				maxSensitivity = score
				mostSensitiveCombination = fmt.Sprintf("%s=%s, %s=%s",
					param1.Name, result.ParameterValues[param1.Name].StringFixed(2),
					param2.Name, result.ParameterValues[param2.Name].StringFixed(2))
			}
		}
	}

	var recommendations []string
	riskLevel := "MEDIUM"
	switch {
	case maxSensitivity.GreaterThanOrEqual(decimal.NewFromInt(1)):
		riskLevel = "HIGH"
		recommendations = append(recommendations, "⚠️ High sensitivity to parameter combinations")
		recommendations = append(recommendations, "Use conservative values for both parameters")
	case maxSensitivity.LessThan(decimal.NewFromFloat(0.25)):
		riskLevel = "LOW"
		recommendations = append(recommendations, "Low sensitivity to parameter combinations")
	default:
		recommendations = append(recommendations, "Moderate sensitivity to parameter combinations")
	}
	if interactionEffect.Abs().GreaterThan(decimal.NewFromFloat(0.1)) {
		recommendations = append(recommendations, "⚠️ Significant interaction effects detected")
	}

	return domain.SensitivityMatrixSummary{
		MostSensitiveCombination: mostSensitiveCombination,
		InteractionEffect:        interactionEffect,
		Recommendations:          recommendations,
		RiskLevel:                riskLevel,
	}
}
