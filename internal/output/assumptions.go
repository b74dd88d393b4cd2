package output

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// Assumptions lists the modeling assumptions behind one run, for detailed outputs.
func Assumptions(p domain.InputParameters) []string {
	out := []string{
		fmt.Sprintf("Amounts are %s, in %s", p.Frequency.Label(), p.Currency),
		fmt.Sprintf("Salary growth: %s annually", FormatPercentage(p.SalaryGrowthRate)),
		fmt.Sprintf("Inflation: %s annually", FormatPercentage(p.InflationRate)),
		fmt.Sprintf("Investment return: %s annually", FormatPercentage(p.InvestmentReturnRate)),
		fmt.Sprintf("Withdrawal rate: %s of the fund per retirement year", FormatPercentage(p.WithdrawalRate)),
	}

	if p.Mode == domain.ModeSplit {
		out = append(out,
			fmt.Sprintf("Salary split: %s debt, %s investments, %s living, %s savings",
				FormatPercentage(p.Split.DebtPct), FormatPercentage(p.Split.InvestmentPct),
				FormatPercentage(p.Split.CostOfLivingPct), FormatPercentage(p.Split.SavingsPct)),
			"The retirement target stops growing once the balance first meets it",
		)
	} else {
		out = append(out,
			fmt.Sprintf("Savings rate: %s of salary after %s tax; %s of the balance invested",
				FormatPercentage(p.Rate.SavingsRate), FormatPercentage(p.Rate.TaxRate),
				FormatPercentage(p.Rate.InvestmentPercentage)),
			"Debt is netted against current savings at the start",
		)
	}
	return out
}
