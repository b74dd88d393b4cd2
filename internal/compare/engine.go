package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario; empty means the first one
	Templates        []string // List of template names to apply to the base
}

func baseScenario(config *domain.Configuration, name string) (*domain.Scenario, error) {
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("configuration has no scenarios")
	}
	if name == "" {
		return &config.Scenarios[0], nil
	}
	s, err := config.FindScenario(name)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}
	return s, nil
}

// alternative is one run to set against the base.
type alternative struct {
	name        string
	description string
	run         func() (*domain.SimulationResult, error)
}

// Compare runs the base scenario and one alternative per template.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	base, err := baseScenario(config, options.BaseScenarioName)
	if err != nil {
		return nil, err
	}
	baseInputs := config.InputsFor(base)

	alts := make([]alternative, 0, len(options.Templates))
	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alts = append(alts, alternative{
			name:        base.Name + " + " + template.Name,
			description: template.Description,
			run: func() (*domain.SimulationResult, error) {
				inputs, err := transform.ApplyTemplate(baseInputs, template)
				if err != nil {
					return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
				}
				run := ce.CalcEngine.Run(inputs)
				return &run, nil
			},
		})
	}

	return ce.compare(ctx, config, base, alts)
}

// CompareScenarios compares named scenarios of the plan against a base.
// With no alternative names every other scenario is compared.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	base, err := baseScenario(config, baseScenarioName)
	if err != nil {
		return nil, err
	}

	names := alternativeScenarioNames
	if len(names) == 0 {
		for _, s := range config.Scenarios {
			if s.Name != base.Name {
				names = append(names, s.Name)
			}
		}
	}

	alts := make([]alternative, 0, len(names))
	for _, name := range names {
		scenario, err := config.FindScenario(name)
		if err != nil {
			return nil, fmt.Errorf("alternative %w", err)
		}
		alts = append(alts, alternative{
			name: scenario.Name,
			run: func() (*domain.SimulationResult, error) {
				run, err := ce.CalcEngine.RunScenario(ctx, config, scenario)
				if err != nil {
					return nil, fmt.Errorf("failed to calculate scenario %s: %w", scenario.Name, err)
				}
				return run, nil
			},
		})
	}

	return ce.compare(ctx, config, base, alts)
}

func (ce *CompareEngine) compare(
	ctx context.Context,
	config *domain.Configuration,
	base *domain.Scenario,
	alts []alternative,
) (*ComparisonSet, error) {
	baseRun, err := ce.CalcEngine.RunScenario(ctx, config, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseRun)

	set := &ComparisonSet{
		BaseScenarioName:   base.Name,
		Currency:           config.Currency,
		BaseResult:         &baseResult,
		AlternativeResults: make([]ComparisonResult, 0, len(alts)),
	}
	for _, alt := range alts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run, err := alt.run()
		if err != nil {
			return nil, err
		}
		run.Name = alt.name

		result := ce.MetricsCalculator.CalculateMetrics(run)
		result.Description = alt.description
		set.AlternativeResults = append(set.AlternativeResults,
			ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}
	set.Recommendations = GenerateRecommendations(set)

	return set, nil
}
