package domain

import "github.com/shopspring/decimal"

// TimeSeriesRow captures the state at the end of one simulated year.
// Year is 1-based: row k describes the k-th completed year.
type TimeSeriesRow struct {
	Year                int             `json:"year" yaml:"year"`
	Age                 int             `json:"age" yaml:"age"`
	SavingsContribution decimal.Decimal `json:"savingsContribution" yaml:"savings_contribution"`
	InvestmentGrowth    decimal.Decimal `json:"investmentGrowth" yaml:"investment_growth"`
	DebtRemaining       decimal.Decimal `json:"debtRemaining" yaml:"debt_remaining"`
	TotalBalance        decimal.Decimal `json:"totalBalance" yaml:"total_balance"`
	Salary              decimal.Decimal `json:"salary" yaml:"salary"`

	NetSavings           decimal.Decimal `json:"netSavings" yaml:"net_savings"`
	NetInvestments       decimal.Decimal `json:"netInvestments" yaml:"net_investments"`
	RetirementFundTarget decimal.Decimal `json:"retirementFundTarget" yaml:"retirement_fund_target"`
}

// ResultSummary holds the scalar outcome of a run.
type ResultSummary struct {
	Mode                 AllocationMode  `json:"mode" yaml:"mode"`
	CurrentAge           int             `json:"currentAge" yaml:"current_age"`
	YearsNeeded          int             `json:"yearsNeeded" yaml:"years_needed"`
	RetirementAge        int             `json:"retirementAge" yaml:"retirement_age"`
	RetirementFundTarget decimal.Decimal `json:"retirementFundTarget" yaml:"retirement_fund_target"`
	NetSavings           decimal.Decimal `json:"netSavings" yaml:"net_savings"`
	NetInvestments       decimal.Decimal `json:"netInvestments" yaml:"net_investments"`
	DebtRemaining        decimal.Decimal `json:"debtRemaining" yaml:"debt_remaining"`
	// TargetFrozen is set once the balance has met the target in split mode.
	TargetFrozen bool `json:"targetFrozen" yaml:"target_frozen"`
	// ReachedTarget is false when the run stopped at the simulation horizon.
	ReachedTarget bool `json:"reachedTarget" yaml:"reached_target"`
	// Advisory marks results computed from inputs with validation warnings.
	Advisory bool `json:"advisory" yaml:"advisory"`
}

// TotalBalance is savings plus investments.
func (s ResultSummary) TotalBalance() decimal.Decimal {
	return s.NetSavings.Add(s.NetInvestments)
}

// Shortfall is how far the final balance is below the target, never negative.
func (s ResultSummary) Shortfall() decimal.Decimal {
	gap := s.RetirementFundTarget.Sub(s.TotalBalance())
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// SimulationResult is the complete output of one run.
type SimulationResult struct {
	Name    string            `json:"name,omitempty" yaml:"name,omitempty"`
	Inputs  InputParameters   `json:"inputs" yaml:"inputs"`
	Issues  []ValidationIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
	Summary ResultSummary     `json:"summary" yaml:"summary"`
	Series  []TimeSeriesRow   `json:"series" yaml:"series"`
}

// PlanProjection collects the results of every scenario in a plan.
type PlanProjection struct {
	Currency  string             `json:"currency" yaml:"currency"`
	Frequency Frequency          `json:"frequency" yaml:"frequency"`
	Results   []SimulationResult `json:"results" yaml:"results"`
}

// Fastest returns the result with the fewest years to retirement among those
// that reached their target, or nil when none did.
func (pp *PlanProjection) Fastest() *SimulationResult {
	var best *SimulationResult
	for i := range pp.Results {
		r := &pp.Results[i]
		if !r.Summary.ReachedTarget {
			continue
		}
		if best == nil || r.Summary.YearsNeeded < best.Summary.YearsNeeded {
			best = r
		}
	}
	return best
}
