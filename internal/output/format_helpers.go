package output

import (
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a decimal with two places and thousands separators.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder
	if amount.IsNegative() {
		sb.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('.')
	sb.WriteString(frac)
	return sb.String()
}

// FormatCurrency formats an amount followed by its currency code.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return FormatAmount(amount)
	}
	return FormatAmount(amount) + " " + currency
}

// FormatPercentage formats a decimal already in percent with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatShort abbreviates large amounts as K or M.
func FormatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// Outcome is a one-line description of when and whether the target is met.
func Outcome(s domain.ResultSummary) string {
	if !s.ReachedTarget {
		return "target not reached within the simulation horizon"
	}
	if s.YearsNeeded == 0 {
		return "target already met"
	}
	return "retire at age " + itoa(s.RetirementAge) + " after " + itoa(s.YearsNeeded) + " years"
}

func itoa(i int) string { return decimal.NewFromInt(int64(i)).String() }
