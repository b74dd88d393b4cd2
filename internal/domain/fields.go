package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// parameterField binds a parameter name to the InputParameters field it edits.
type parameterField struct {
	get func(p *InputParameters) decimal.Decimal
	set func(p *InputParameters, v decimal.Decimal)
}

var parameterFields = map[string]parameterField{
	"current_age": {
		get: func(p *InputParameters) decimal.Decimal { return decimal.NewFromInt(int64(p.CurrentAge)) },
		set: func(p *InputParameters, v decimal.Decimal) { p.CurrentAge = int(v.IntPart()) },
	},
	"current_salary": {
		get: func(p *InputParameters) decimal.Decimal { return p.CurrentSalary },
		set: func(p *InputParameters, v decimal.Decimal) { p.CurrentSalary = v },
	},
	"current_savings": {
		get: func(p *InputParameters) decimal.Decimal { return p.CurrentSavings },
		set: func(p *InputParameters, v decimal.Decimal) { p.CurrentSavings = v },
	},
	"total_debt": {
		get: func(p *InputParameters) decimal.Decimal { return p.TotalDebt },
		set: func(p *InputParameters, v decimal.Decimal) { p.TotalDebt = v },
	},
	"cost_of_living": {
		get: func(p *InputParameters) decimal.Decimal { return p.CostOfLiving },
		set: func(p *InputParameters, v decimal.Decimal) { p.CostOfLiving = v },
	},
	"retirement_cost_of_living": {
		get: func(p *InputParameters) decimal.Decimal { return p.RetirementSpending() },
		set: func(p *InputParameters, v decimal.Decimal) { p.RetirementCostOfLiving = v },
	},
	"salary_growth_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.SalaryGrowthRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.SalaryGrowthRate = v },
	},
	"inflation_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.InflationRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.InflationRate = v },
	},
	"investment_return_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.InvestmentReturnRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.InvestmentReturnRate = v },
	},
	"withdrawal_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.WithdrawalRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.WithdrawalRate = v },
	},
	"savings_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.Rate.SavingsRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.Rate.SavingsRate = v },
	},
	"tax_rate": {
		get: func(p *InputParameters) decimal.Decimal { return p.Rate.TaxRate },
		set: func(p *InputParameters, v decimal.Decimal) { p.Rate.TaxRate = v },
	},
	"investment_percentage": {
		get: func(p *InputParameters) decimal.Decimal { return p.Rate.InvestmentPercentage },
		set: func(p *InputParameters, v decimal.Decimal) { p.Rate.InvestmentPercentage = v },
	},
	"debt_pct": {
		get: func(p *InputParameters) decimal.Decimal { return p.Split.DebtPct },
		set: func(p *InputParameters, v decimal.Decimal) { p.Split.DebtPct = v },
	},
	"investment_pct": {
		get: func(p *InputParameters) decimal.Decimal { return p.Split.InvestmentPct },
		set: func(p *InputParameters, v decimal.Decimal) { p.Split.InvestmentPct = v },
	},
	"cost_of_living_pct": {
		get: func(p *InputParameters) decimal.Decimal { return p.Split.CostOfLivingPct },
		set: func(p *InputParameters, v decimal.Decimal) { p.Split.CostOfLivingPct = v },
	},
	"savings_pct": {
		get: func(p *InputParameters) decimal.Decimal { return p.Split.SavingsPct },
		set: func(p *InputParameters, v decimal.Decimal) { p.Split.SavingsPct = v },
	},
}

func lookupField(name string) (parameterField, error) {
	f, ok := parameterFields[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return parameterField{}, fmt.Errorf("unknown parameter %q (available: %s)",
			name, strings.Join(ParameterNames(), ", "))
	}
	return f, nil
}

// Parameter returns the current value of the named numeric input.
func (p InputParameters) Parameter(name string) (decimal.Decimal, error) {
	f, err := lookupField(name)
	if err != nil {
		return decimal.Zero, err
	}
	return f.get(&p), nil
}

// WithParameter returns a copy of p with the named numeric input replaced.
func (p InputParameters) WithParameter(name string, v decimal.Decimal) (InputParameters, error) {
	f, err := lookupField(name)
	if err != nil {
		return p, err
	}
	f.set(&p, v)
	return p, nil
}

// ParameterNames lists every adjustable parameter, sorted.
func ParameterNames() []string {
	names := make([]string, 0, len(parameterFields))
	for name := range parameterFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
