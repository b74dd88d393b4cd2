package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	config, err := ip.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// LoadFromBytes parses and validates a plan. JSON input is accepted as YAML.
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func (ip *InputParser) applyDefaults(config *domain.Configuration) {
	if config.Frequency == 0 {
		config.Frequency = domain.Yearly
	}
	for i := range config.Scenarios {
		if config.Scenarios[i].Mode == "" {
			if config.Scenarios[i].Split != nil && config.Scenarios[i].Rate == nil {
				config.Scenarios[i].Mode = domain.ModeSplit
			} else {
				config.Scenarios[i].Mode = domain.ModeRate
			}
		}
	}
}

// ValidateConfiguration range-checks the plan and every scenario.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Profile.CostOfLiving.IsZero() && config.Profile.RetirementCostOfLiving.IsZero() {
		return fmt.Errorf("profile: cost_of_living is required")
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(config, scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		key := strings.ToLower(scenario.Name)
		if seen[key] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[key] = true
	}

	return nil
}

func (ip *InputParser) validateScenario(config *domain.Configuration, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	switch scenario.Mode {
	case domain.ModeRate:
		if scenario.Rate == nil {
			return fmt.Errorf("rate_allocation is required in rate mode")
		}
	case domain.ModeSplit:
		if scenario.Split == nil {
			return fmt.Errorf("split_allocation is required in split mode")
		}
	default:
		return fmt.Errorf("unknown mode %q", scenario.Mode)
	}

	return ValidateInputs(config.InputsFor(scenario))
}

// SaveToFile writes a plan back out as YAML.
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ConfigurationFromInputs wraps a single parameter set in a one-scenario plan.
func ConfigurationFromInputs(name string, p domain.InputParameters) *domain.Configuration {
	rate := p.Rate
	split := p.Split
	scenario := domain.Scenario{Name: name, Mode: p.Mode}
	if p.Mode == domain.ModeSplit {
		scenario.Split = &split
	} else {
		scenario.Rate = &rate
	}

	return &domain.Configuration{
		Currency:  p.Currency,
		Frequency: p.Frequency,
		Profile: domain.Profile{
			CurrentAge:             p.CurrentAge,
			CurrentSalary:          p.CurrentSalary,
			CurrentSavings:         p.CurrentSavings,
			TotalDebt:              p.TotalDebt,
			CostOfLiving:           p.CostOfLiving,
			RetirementCostOfLiving: p.RetirementCostOfLiving,
		},
		Assumptions: domain.Assumptions{
			SalaryGrowthRate:     p.SalaryGrowthRate,
			InflationRate:        p.InflationRate,
			InvestmentReturnRate: p.InvestmentReturnRate,
			WithdrawalRate:       p.WithdrawalRate,
		},
		Scenarios: []domain.Scenario{scenario},
	}
}

// DefaultConfiguration is the built-in example plan with one scenario per mode.
func DefaultConfiguration() *domain.Configuration {
	p := domain.DefaultInputParameters()
	config := ConfigurationFromInputs("Savings rate", p)

	split := p.Split
	config.Scenarios = append(config.Scenarios, domain.Scenario{
		Name:  "Salary split",
		Mode:  domain.ModeSplit,
		Split: &split,
	})
	return config
}

// ParseDecimal parses a command-line value such as "4.5" or "4.5%".
func ParseDecimal(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}
