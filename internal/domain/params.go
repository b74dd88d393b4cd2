package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the number of sub-periods per year that salary and cost of
// living are expressed in.
type Frequency int

const (
	Yearly  Frequency = 1
	Monthly Frequency = 12
)

// Periods returns the annualization multiplier.
func (f Frequency) Periods() decimal.Decimal {
	return decimal.NewFromInt(int64(f))
}

// Label returns the presentation suffix ("per month" / "per year").
func (f Frequency) Label() string {
	if f == Monthly {
		return "per month"
	}
	return "per year"
}

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("frequency(%d)", int(f))
	}
}

// MarshalText encodes the frequency as "monthly" or "yearly".
func (f Frequency) MarshalText() ([]byte, error) {
	if f != Monthly && f != Yearly {
		return nil, fmt.Errorf("invalid frequency %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts monthly/yearly (any case) as well as 12 and 1.
func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFrequency converts a user supplied label into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "m", "12":
		return Monthly, nil
	case "yearly", "annual", "annually", "year", "y", "1":
		return Yearly, nil
	}
	return 0, fmt.Errorf("unknown frequency %q (expected monthly or yearly)", s)
}

// AllocationMode selects how salary is divided each year.
type AllocationMode string

const (
	// ModeRate is the savings-rate model: tax, savings and investment shares are
	// independent rates and debt is netted against savings up front.
	ModeRate AllocationMode = "rate"
	// ModeSplit is the salary-allocation model: salary is split across debt,
	// investments, cost of living and savings, with debt tracked separately.
	ModeSplit AllocationMode = "split"
)

// ParseAllocationMode converts a user supplied label into an AllocationMode.
func ParseAllocationMode(s string) (AllocationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rate", "a", "savings-rate", "savings_rate":
		return ModeRate, nil
	case "split", "b", "salary-split", "allocation":
		return ModeSplit, nil
	}
	return "", fmt.Errorf("unknown allocation mode %q (expected rate or split)", s)
}

// UnmarshalText normalizes mode aliases.
func (m *AllocationMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAllocationMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RateAllocation holds the rate-based percentages (0-100 each).
type RateAllocation struct {
	SavingsRate          decimal.Decimal `yaml:"savings_rate" json:"savingsRate"`
	TaxRate              decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
	InvestmentPercentage decimal.Decimal `yaml:"investment_percentage" json:"investmentPercentage"`
}

// SplitAllocation holds the salary split percentages. They should add up to 100.
type SplitAllocation struct {
	DebtPct         decimal.Decimal `yaml:"debt_pct" json:"debtPct"`
	InvestmentPct   decimal.Decimal `yaml:"investment_pct" json:"investmentPct"`
	CostOfLivingPct decimal.Decimal `yaml:"cost_of_living_pct" json:"costOfLivingPct"`
	SavingsPct      decimal.Decimal `yaml:"savings_pct" json:"savingsPct"`
}

// Total returns the sum of the four shares.
func (s SplitAllocation) Total() decimal.Decimal {
	return s.DebtPct.Add(s.InvestmentPct).Add(s.CostOfLivingPct).Add(s.SavingsPct)
}

// InputParameters is the full set of values a single simulation run needs.
// Rates are percent values (5 means 5%); NewRates converts them to fractions.
type InputParameters struct {
	CurrentAge int            `yaml:"current_age" json:"currentAge"`
	Frequency  Frequency      `yaml:"frequency" json:"frequency"`
	Mode       AllocationMode `yaml:"mode" json:"mode"`
	Currency   string         `yaml:"currency,omitempty" json:"currency,omitempty"`

	CurrentSalary          decimal.Decimal `yaml:"current_salary" json:"currentSalary"`
	CurrentSavings         decimal.Decimal `yaml:"current_savings" json:"currentSavings"`
	TotalDebt              decimal.Decimal `yaml:"total_debt" json:"totalDebt"`
	CostOfLiving           decimal.Decimal `yaml:"cost_of_living" json:"costOfLiving"`
	RetirementCostOfLiving decimal.Decimal `yaml:"retirement_cost_of_living" json:"retirementCostOfLiving"`

	SalaryGrowthRate     decimal.Decimal `yaml:"salary_growth_rate" json:"salaryGrowthRate"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	InvestmentReturnRate decimal.Decimal `yaml:"investment_return_rate" json:"investmentReturnRate"`
	WithdrawalRate       decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`

	Rate  RateAllocation  `yaml:"rate_allocation" json:"rateAllocation"`
	Split SplitAllocation `yaml:"split_allocation" json:"splitAllocation"`
}

// DefaultInputParameters returns the calculator's starting values.
func DefaultInputParameters() InputParameters {
	return InputParameters{
		CurrentAge:             30,
		Frequency:              Yearly,
		Mode:                   ModeRate,
		Currency:               "THB",
		CurrentSalary:          decimal.NewFromInt(50000),
		CurrentSavings:         decimal.NewFromInt(100000),
		TotalDebt:              decimal.NewFromInt(50000),
		CostOfLiving:           decimal.NewFromInt(20000),
		RetirementCostOfLiving: decimal.NewFromInt(20000),
		SalaryGrowthRate:       decimal.NewFromInt(3),
		InflationRate:          decimal.NewFromInt(2),
		InvestmentReturnRate:   decimal.NewFromInt(5),
		WithdrawalRate:         decimal.NewFromInt(4),
		Rate: RateAllocation{
			SavingsRate:          decimal.NewFromInt(20),
			TaxRate:              decimal.NewFromInt(10),
			InvestmentPercentage: decimal.NewFromInt(50),
		},
		Split: SplitAllocation{
			DebtPct:         decimal.NewFromInt(20),
			InvestmentPct:   decimal.NewFromInt(30),
			CostOfLivingPct: decimal.NewFromInt(40),
			SavingsPct:      decimal.NewFromInt(10),
		},
	}
}

// RetirementSpending returns the per-period cost of living the retirement fund
// must sustain in split mode. It falls back to CostOfLiving when unset.
func (p InputParameters) RetirementSpending() decimal.Decimal {
	if p.RetirementCostOfLiving.IsZero() {
		return p.CostOfLiving
	}
	return p.RetirementCostOfLiving
}
