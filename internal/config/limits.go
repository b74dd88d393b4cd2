package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Range is the accepted interval for one input. A nil Max means unbounded.
type Range struct {
	Field string
	Min   decimal.Decimal
	Max   *decimal.Decimal
	Unit  string
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v decimal.Decimal) bool {
	if v.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || v.LessThanOrEqual(*r.Max)
}

// Clamp moves v into the range.
func (r Range) Clamp(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(r.Min) {
		return r.Min
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return *r.Max
	}
	return v
}

func (r Range) String() string {
	if r.Max == nil {
		return fmt.Sprintf(">= %s", r.Min)
	}
	return fmt.Sprintf("%s..%s", r.Min, *r.Max)
}

func bounded(field string, lo, hi int64, unit string) Range {
	upper := decimal.NewFromInt(hi)
	return Range{Field: field, Min: decimal.NewFromInt(lo), Max: &upper, Unit: unit}
}

func nonNegative(field string) Range {
	return Range{Field: field, Min: decimal.Zero, Unit: "amount"}
}

// InputLimits are the accepted ranges for every numeric input.
var InputLimits = []Range{
	bounded("current_age", 0, 100, "years"),
	nonNegative("current_salary"),
	nonNegative("current_savings"),
	nonNegative("total_debt"),
	nonNegative("cost_of_living"),
	nonNegative("retirement_cost_of_living"),
	bounded("salary_growth_rate", 0, 50, "percent"),
	bounded("inflation_rate", 0, 10, "percent"),
	bounded("investment_return_rate", 0, 20, "percent"),
	bounded("withdrawal_rate", 1, 10, "percent"),
	bounded("savings_rate", 0, 100, "percent"),
	bounded("tax_rate", 0, 100, "percent"),
	bounded("investment_percentage", 0, 100, "percent"),
	bounded("debt_pct", 0, 100, "percent"),
	bounded("investment_pct", 0, 100, "percent"),
	bounded("cost_of_living_pct", 0, 100, "percent"),
	bounded("savings_pct", 0, 100, "percent"),
}

// LimitFor returns the range registered for field.
func LimitFor(field string) (Range, bool) {
	for _, r := range InputLimits {
		if r.Field == field {
			return r, true
		}
	}
	return Range{}, false
}

// RangeError reports one input outside its accepted range.
type RangeError struct {
	Field string
	Value decimal.Decimal
	Range Range
}

func (e RangeError) Error() string {
	return fmt.Sprintf("%s = %s is out of range (%s)", e.Field, e.Value, e.Range)
}

// RangeErrors collects every out-of-range input of a parameter set.
type RangeErrors []RangeError

func (e RangeErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ValidateInputs range-checks p. The error, when not nil, is a RangeErrors
// unless the frequency or mode itself is invalid.
func ValidateInputs(p domain.InputParameters) error {
	if p.Frequency != domain.Monthly && p.Frequency != domain.Yearly {
		return fmt.Errorf("frequency must be monthly or yearly")
	}
	if p.Mode != domain.ModeRate && p.Mode != domain.ModeSplit {
		return fmt.Errorf("mode must be %q or %q, got %q", domain.ModeRate, domain.ModeSplit, p.Mode)
	}

	var errs RangeErrors
	for _, r := range InputLimits {
		v, err := p.Parameter(r.Field)
		if err != nil {
			return err
		}
		if r.Field == "retirement_cost_of_living" {
			v = p.RetirementCostOfLiving
		}
		if !r.Contains(v) {
			errs = append(errs, RangeError{Field: r.Field, Value: v, Range: r})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClampInputs returns p with every numeric input moved into its range.
func ClampInputs(p domain.InputParameters) domain.InputParameters {
	for _, r := range InputLimits {
		v, err := p.Parameter(r.Field)
		if err != nil {
			continue
		}
		if r.Field == "retirement_cost_of_living" {
			v = p.RetirementCostOfLiving
		}
		clamped := r.Clamp(v)
		if clamped.Equal(v) {
			continue
		}
		if next, err := p.WithParameter(r.Field, clamped); err == nil {
			p = next
		}
	}
	return p
}
