package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Rates are the percent inputs converted to decimal fractions. They are derived
// once per run so the simulation loop never divides.
type Rates struct {
	SalaryGrowth     decimal.Decimal
	Inflation        decimal.Decimal
	InvestmentReturn decimal.Decimal
	Withdrawal       decimal.Decimal

	// TargetMultiple is 100/withdrawalRate, the inverse of the withdrawal rule.
	TargetMultiple decimal.Decimal

	Savings    decimal.Decimal
	Tax        decimal.Decimal
	Investment decimal.Decimal

	SplitDebt         decimal.Decimal
	SplitInvestment   decimal.Decimal
	SplitCostOfLiving decimal.Decimal
	SplitSavings      decimal.Decimal
}

// NewRates normalizes every percentage in p. A non-positive withdrawal rate
// yields a zero TargetMultiple; callers are expected to range-check first.
func NewRates(p InputParameters) Rates {
	r := Rates{
		SalaryGrowth:      pct(p.SalaryGrowthRate),
		Inflation:         pct(p.InflationRate),
		InvestmentReturn:  pct(p.InvestmentReturnRate),
		Withdrawal:        pct(p.WithdrawalRate),
		Savings:           pct(p.Rate.SavingsRate),
		Tax:               pct(p.Rate.TaxRate),
		Investment:        pct(p.Rate.InvestmentPercentage),
		SplitDebt:         pct(p.Split.DebtPct),
		SplitInvestment:   pct(p.Split.InvestmentPct),
		SplitCostOfLiving: pct(p.Split.CostOfLivingPct),
		SplitSavings:      pct(p.Split.SavingsPct),
	}
	if p.WithdrawalRate.IsPositive() {
		r.TargetMultiple = hundred.Div(p.WithdrawalRate)
	}
	return r
}

func pct(v decimal.Decimal) decimal.Decimal {
	return v.Div(hundred)
}
