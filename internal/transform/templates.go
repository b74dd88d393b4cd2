package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Category    string
	Description string
	Transforms  []ParameterTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns every template ordered by name.
func (tr *TemplateRegistry) Templates() []Template {
	out := make([]Template, 0, len(tr.templates))
	for _, name := range tr.List() {
		out = append(out, tr.templates[name])
	}
	return out
}

func pts(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Saving
	registry.Register(Template{
		Name:        "save_more_5",
		Category:    "Saving",
		Description: "Save 5 more points of salary (taken from living costs in split mode)",
		Transforms: []ParameterTransform{
			&AdjustParameter{Parameter: "savings_rate", Delta: pts(5)},
			&ShiftSplit{From: "cost_of_living_pct", To: "savings_pct", Points: pts(5)},
		},
	})

	registry.Register(Template{
		Name:        "save_more_10",
		Category:    "Saving",
		Description: "Save 10 more points of salary (taken from living costs in split mode)",
		Transforms: []ParameterTransform{
			&AdjustParameter{Parameter: "savings_rate", Delta: pts(10)},
			&ShiftSplit{From: "cost_of_living_pct", To: "savings_pct", Points: pts(10)},
		},
	})

	registry.Register(Template{
		Name:        "debt_focus",
		Category:    "Saving",
		Description: "Move 10 points of salary from investments to debt repayment (split mode)",
		Transforms: []ParameterTransform{
			&ShiftSplit{From: "investment_pct", To: "debt_pct", Points: pts(10)},
		},
	})

	registry.Register(Template{
		Name:        "invest_savings",
		Category:    "Saving",
		Description: "Invest the savings share instead of holding cash",
		Transforms: []ParameterTransform{
			&SetParameter{Parameter: "investment_percentage", Value: pts(100)},
			&ShiftSplit{From: "savings_pct", To: "investment_pct", Points: pts(5)},
		},
	})

	// Spending
	registry.Register(Template{
		Name:        "frugal_retirement",
		Category:    "Spending",
		Description: "Plan to live on 80% of the current cost of living",
		Transforms: []ParameterTransform{
			&ScaleParameter{Parameter: "cost_of_living", Factor: decimal.NewFromFloat(0.8)},
			&ScaleParameter{Parameter: "retirement_cost_of_living", Factor: decimal.NewFromFloat(0.8)},
		},
	})

	registry.Register(Template{
		Name:        "safe_withdrawal_3",
		Category:    "Spending",
		Description: "Size the fund for a 3% withdrawal rate",
		Transforms: []ParameterTransform{
			&SetParameter{Parameter: "withdrawal_rate", Value: pts(3)},
		},
	})

	// Economy
	registry.Register(Template{
		Name:        "high_inflation",
		Category:    "Economy",
		Description: "Inflation runs at 4%",
		Transforms: []ParameterTransform{
			&SetParameter{Parameter: "inflation_rate", Value: pts(4)},
		},
	})

	registry.Register(Template{
		Name:        "conservative_returns",
		Category:    "Economy",
		Description: "Investments return 2 points less",
		Transforms: []ParameterTransform{
			&AdjustParameter{Parameter: "investment_return_rate", Delta: pts(-2)},
		},
	})

	registry.Register(Template{
		Name:        "aggressive_returns",
		Category:    "Economy",
		Description: "Investments return 2 points more",
		Transforms: []ParameterTransform{
			&AdjustParameter{Parameter: "investment_return_rate", Delta: pts(2)},
		},
	})

	registry.Register(Template{
		Name:        "flat_salary",
		Category:    "Economy",
		Description: "No salary growth",
		Transforms: []ParameterTransform{
			&SetParameter{Parameter: "salary_growth_rate", Value: decimal.Zero},
		},
	})

	// Combinations
	registry.Register(Template{
		Name:        "stress_test",
		Category:    "Combination",
		Description: "High inflation, conservative returns and a 3% withdrawal rate",
		Transforms: []ParameterTransform{
			&SetParameter{Parameter: "inflation_rate", Value: pts(4)},
			&AdjustParameter{Parameter: "investment_return_rate", Delta: pts(-2)},
			&SetParameter{Parameter: "withdrawal_rate", Value: pts(3)},
		},
	})

	registry.Register(Template{
		Name:        "lean_fire",
		Category:    "Combination",
		Description: "Save 10 more points and retire on 80% of current spending",
		Transforms: []ParameterTransform{
			&AdjustParameter{Parameter: "savings_rate", Delta: pts(10)},
			&ShiftSplit{From: "cost_of_living_pct", To: "savings_pct", Points: pts(10)},
			&ScaleParameter{Parameter: "cost_of_living", Factor: decimal.NewFromFloat(0.8)},
			&ScaleParameter{Parameter: "retirement_cost_of_living", Factor: decimal.NewFromFloat(0.8)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base
func ApplyTemplate(base domain.InputParameters, template Template) (domain.InputParameters, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := []string{"Saving", "Spending", "Economy", "Combination"}
	byCategory := make(map[string][]Template)
	for _, t := range registry.Templates() {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for _, category := range categories {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fireplan compare plan.yaml --with save_more_5,frugal_retirement\n")
	sb.WriteString("  fireplan compare plan.yaml --with stress_test --scenario \"Salary split\"\n")

	return sb.String()
}
