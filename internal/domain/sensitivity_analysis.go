package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "amount", "years"
	Description string          `yaml:"description" json:"description"`
}

// Values returns Steps evenly spaced values from MinValue to MaxValue.
func (sp SensitivityParameter) Values() []decimal.Decimal {
	if sp.Steps <= 1 {
		return []decimal.Decimal{sp.BaseValue}
	}
	values := make([]decimal.Decimal, 0, sp.Steps)
	step := sp.MaxValue.Sub(sp.MinValue).Div(decimal.NewFromInt(int64(sp.Steps - 1)))
	for i := 0; i < sp.Steps; i++ {
		values = append(values, sp.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// ParameterSensitivityAnalysis represents a complete parameter sensitivity analysis
type ParameterSensitivityAnalysis struct {
	BaseScenarioName string                 `json:"baseScenarioName"`
	Base             ResultSummary          `json:"base"`
	Parameters       []SensitivityParameter `json:"parameters"`
	Results          []SensitivityResult    `json:"results"`
	Summary          SensitivitySummary     `json:"summary"`
	AnalysisType     string                 `json:"analysisType"` // "single", "multi", "matrix"
}

// SensitivityResult is one point of a sweep.
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	ScenarioName    string                     `json:"scenarioName"`
	Summary         ResultSummary              `json:"summary"`
	// YearsChange is relative to the unmodified inputs.
	YearsChange int `json:"yearsChange"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	FastestRetirementAge   int                        `json:"fastestRetirementAge"`
	SlowestRetirementAge   int                        `json:"slowestRetirementAge"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	BaseScenarioName string                   `json:"baseScenarioName"`
	Parameter1       SensitivityParameter     `json:"parameter1"`
	Parameter2       SensitivityParameter     `json:"parameter2"`
	MatrixResults    [][]SensitivityResult    `json:"matrixResults"`
	Summary          SensitivityMatrixSummary `json:"summary"`
}

// SensitivityMatrixSummary provides matrix analysis summary
type SensitivityMatrixSummary struct {
	MostSensitiveCombination string          `json:"mostSensitiveCombination"`
	InteractionEffect        decimal.Decimal `json:"interactionEffect"`
	Recommendations          []string        `json:"recommendations"`
	RiskLevel                string          `json:"riskLevel"`
}

// Common sensitivity parameters, in percent.
var (
	InvestmentReturnParam = SensitivityParameter{
		Name:        "investment_return_rate",
		MinValue:    decimal.NewFromInt(2),
		MaxValue:    decimal.NewFromInt(8),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(5),
		Unit:        "percent",
		Description: "Annual return on invested balance",
	}

	InflationRateParam = SensitivityParameter{
		Name:        "inflation_rate",
		MinValue:    decimal.NewFromInt(1),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(2),
		Unit:        "percent",
		Description: "Growth of cost of living and of the retirement target",
	}

	SalaryGrowthParam = SensitivityParameter{
		Name:        "salary_growth_rate",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(6),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(3),
		Unit:        "percent",
		Description: "Annual salary increase",
	}

	SavingsRateParam = SensitivityParameter{
		Name:        "savings_rate",
		MinValue:    decimal.NewFromInt(10),
		MaxValue:    decimal.NewFromInt(40),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(20),
		Unit:        "percent",
		Description: "Share of after-tax salary saved",
	}

	WithdrawalRateParam = SensitivityParameter{
		Name:        "withdrawal_rate",
		MinValue:    decimal.NewFromInt(3),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(4),
		Unit:        "percent",
		Description: "Share of the fund spent per retirement year",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		InvestmentReturnParam,
		InflationRateParam,
		SalaryGrowthParam,
		SavingsRateParam,
		WithdrawalRateParam,
	}
}

// CommonParameter looks a common parameter up by name.
func CommonParameter(name string) (SensitivityParameter, error) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, nil
		}
	}
	return SensitivityParameter{}, fmt.Errorf("no default sweep for parameter %q", name)
}

// DetermineRiskLevel grades the largest elasticity of years-to-retire.
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	switch {
	case maxScore.LessThan(decimal.NewFromFloat(0.25)):
		return "LOW"
	case maxScore.LessThan(decimal.NewFromFloat(0.5)):
		return "MEDIUM"
	case maxScore.LessThan(decimal.NewFromInt(1)):
		return "HIGH"
	default:
		return "CRITICAL"
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	var recommendations []string

	switch ss.DetermineRiskLevel() {
	case "LOW":
		recommendations = append(recommendations, "Retirement date is robust to these assumptions")
	case "MEDIUM":
		recommendations = append(recommendations, "Revisit assumptions yearly")
	case "HIGH":
		recommendations = append(recommendations, "Retirement date moves noticeably with these assumptions")
		recommendations = append(recommendations, "Plan against the pessimistic end of the range")
	case "CRITICAL":
		recommendations = append(recommendations, "⚠️ Retirement date is highly sensitive to these assumptions")
		recommendations = append(recommendations, "Build a buffer into the target or lower the withdrawal rate")
	}

	switch ss.MostSensitiveParameter {
	case "inflation_rate":
		recommendations = append(recommendations, "Consider inflation-protected assets")
	case "investment_return_rate", "investment_percentage", "investment_pct":
		recommendations = append(recommendations, "Returns dominate the outcome; review asset allocation")
	case "savings_rate", "savings_pct":
		recommendations = append(recommendations, "Saving more is the strongest lever available")
	case "withdrawal_rate":
		recommendations = append(recommendations, "The withdrawal assumption drives the target size")
	case "salary_growth_rate":
		recommendations = append(recommendations, "Career income growth matters most")
	}

	return recommendations
}
