package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Profile describes the person's current financial position.
type Profile struct {
	Name                   string          `yaml:"name,omitempty" json:"name,omitempty"`
	CurrentAge             int             `yaml:"current_age" json:"currentAge"`
	CurrentSalary          decimal.Decimal `yaml:"current_salary" json:"currentSalary"`
	CurrentSavings         decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	TotalDebt              decimal.Decimal `yaml:"total_debt" json:"totalDebt"`
	CostOfLiving           decimal.Decimal `yaml:"cost_of_living" json:"costOfLiving"`
	RetirementCostOfLiving decimal.Decimal `yaml:"retirement_cost_of_living,omitempty" json:"retirementCostOfLiving,omitempty"`
}

// Assumptions are the economic rates shared by every scenario, in percent.
type Assumptions struct {
	SalaryGrowthRate     decimal.Decimal `yaml:"salary_growth_rate" json:"salaryGrowthRate"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	InvestmentReturnRate decimal.Decimal `yaml:"investment_return_rate" json:"investmentReturnRate"`
	WithdrawalRate       decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
}

// Scenario is a named way of allocating salary. Assumption overrides replace the
// plan-level value when set.
type Scenario struct {
	Name  string           `yaml:"name" json:"name"`
	Mode  AllocationMode   `yaml:"mode" json:"mode"`
	Rate  *RateAllocation  `yaml:"rate_allocation,omitempty" json:"rateAllocation,omitempty"`
	Split *SplitAllocation `yaml:"split_allocation,omitempty" json:"splitAllocation,omitempty"`

	InflationRate        *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflationRate,omitempty"`
	InvestmentReturnRate *decimal.Decimal `yaml:"investment_return_rate,omitempty" json:"investmentReturnRate,omitempty"`
	WithdrawalRate       *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawalRate,omitempty"`
}

// Configuration is a plan file: one profile, shared assumptions and one or more
// scenarios to project.
type Configuration struct {
	Currency    string      `yaml:"currency" json:"currency"`
	Frequency   Frequency   `yaml:"frequency" json:"frequency"`
	Profile     Profile     `yaml:"profile" json:"profile"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
	Scenarios   []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// FindScenario looks a scenario up by name, case-insensitively.
func (c *Configuration) FindScenario(name string) (*Scenario, error) {
	for i := range c.Scenarios {
		if strings.EqualFold(c.Scenarios[i].Name, name) {
			return &c.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}

// ScenarioNames lists scenario names in plan order.
func (c *Configuration) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

// InputsFor flattens the plan and one scenario into simulation inputs.
func (c *Configuration) InputsFor(s *Scenario) InputParameters {
	p := InputParameters{
		CurrentAge:             c.Profile.CurrentAge,
		Frequency:              c.Frequency,
		Mode:                   s.Mode,
		Currency:               c.Currency,
		CurrentSalary:          c.Profile.CurrentSalary,
		CurrentSavings:         c.Profile.CurrentSavings,
		TotalDebt:              c.Profile.TotalDebt,
		CostOfLiving:           c.Profile.CostOfLiving,
		RetirementCostOfLiving: c.Profile.RetirementCostOfLiving,
		SalaryGrowthRate:       c.Assumptions.SalaryGrowthRate,
		InflationRate:          c.Assumptions.InflationRate,
		InvestmentReturnRate:   c.Assumptions.InvestmentReturnRate,
		WithdrawalRate:         c.Assumptions.WithdrawalRate,
	}
	if p.Frequency == 0 {
		p.Frequency = Yearly
	}
	if p.Mode == "" {
		p.Mode = ModeRate
	}
	if s.Rate != nil {
		p.Rate = *s.Rate
	}
	if s.Split != nil {
		p.Split = *s.Split
	}
	if s.InflationRate != nil {
		p.InflationRate = *s.InflationRate
	}
	if s.InvestmentReturnRate != nil {
		p.InvestmentReturnRate = *s.InvestmentReturnRate
	}
	if s.WithdrawalRate != nil {
		p.WithdrawalRate = *s.WithdrawalRate
	}
	return p
}

// DeepCopy returns a copy that shares no pointers with s.
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	out := *s
	if s.Rate != nil {
		rate := *s.Rate
		out.Rate = &rate
	}
	if s.Split != nil {
		split := *s.Split
		out.Split = &split
	}
	out.InflationRate = copyDecimal(s.InflationRate)
	out.InvestmentReturnRate = copyDecimal(s.InvestmentReturnRate)
	out.WithdrawalRate = copyDecimal(s.WithdrawalRate)
	return &out
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
