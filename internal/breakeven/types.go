package breakeven

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to optimize
type OptimizationTarget string

const (
	OptimizeSavingsRate     OptimizationTarget = "savings_rate"     // rate mode: share of taxed salary saved
	OptimizeInvestmentShare OptimizationTarget = "investment_share" // split mode: investment_pct taken from savings_pct
	OptimizeWithdrawalRate  OptimizationTarget = "withdrawal_rate"  // grid over withdrawal rates
	OptimizeAll             OptimizationTarget = "all"
)

// ParseTarget accepts the target names used on the command line.
func ParseTarget(s string) (OptimizationTarget, error) {
	switch OptimizationTarget(s) {
	case OptimizeSavingsRate, OptimizeInvestmentShare, OptimizeWithdrawalRate, OptimizeAll:
		return OptimizationTarget(s), nil
	case "":
		return OptimizeAll, nil
	}
	return "", &BreakEvenError{Operation: "parse_target", Message: "unknown target " + s}
}

// Constraints define the goal and bounds for optimization parameters.
// Rates and shares are in percent.
type Constraints struct {
	// Retire no later than this age (required)
	TargetRetirementAge int `json:"target_retirement_age"`

	MinSavingsRate *decimal.Decimal `json:"min_savings_rate,omitempty"`
	MaxSavingsRate *decimal.Decimal `json:"max_savings_rate,omitempty"`

	MinWithdrawalRate  *decimal.Decimal `json:"min_withdrawal_rate,omitempty"`
	MaxWithdrawalRate  *decimal.Decimal `json:"max_withdrawal_rate,omitempty"`
	WithdrawalRateStep *decimal.Decimal `json:"withdrawal_rate_step,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints(targetAge int) Constraints {
	minRate := decimal.Zero
	maxRate := decimal.NewFromInt(100)
	minWithdrawal := decimal.NewFromInt(3)
	maxWithdrawal := decimal.NewFromInt(6)
	step := decimal.NewFromFloat(0.5)

	return Constraints{
		TargetRetirementAge: targetAge,
		MinSavingsRate:      &minRate,
		MaxSavingsRate:      &maxRate,
		MinWithdrawalRate:   &minWithdrawal,
		MaxWithdrawalRate:   &maxWithdrawal,
		WithdrawalRateStep:  &step,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	ScenarioName  string                 `json:"scenario_name,omitempty"`
	Inputs        domain.InputParameters `json:"-"`
	Target        OptimizationTarget     `json:"target"`
	Constraints   Constraints            `json:"constraints"`
	MaxIterations int                    `json:"max_iterations"`
	Tolerance     decimal.Decimal        `json:"tolerance"` // width of the final bisection bracket, in points
}

// GridPoint is one evaluated withdrawal rate.
type GridPoint struct {
	WithdrawalRate       decimal.Decimal `json:"withdrawal_rate"`
	YearsNeeded          int             `json:"years_needed"`
	RetirementAge        int             `json:"retirement_age"`
	ReachedTarget        bool            `json:"reached_target"`
	RetirementFundTarget decimal.Decimal `json:"retirement_fund_target"`
	MeetsGoal            bool            `json:"meets_goal"`
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Optimized parameters
	OptimalSavingsRate     *decimal.Decimal `json:"optimal_savings_rate,omitempty"`
	OptimalInvestmentShare *decimal.Decimal `json:"optimal_investment_share,omitempty"`
	OptimalWithdrawalRate  *decimal.Decimal `json:"optimal_withdrawal_rate,omitempty"`
	GridPoints             []GridPoint      `json:"grid_points,omitempty"`

	// Results at optimal parameters
	Inputs  *domain.InputParameters `json:"inputs,omitempty"`
	Summary *domain.ResultSummary   `json:"summary,omitempty"`

	// Comparison to base
	BaseSummary       *domain.ResultSummary `json:"base_summary,omitempty"`
	YearsDiffFromBase int                   `json:"years_diff_from_base"`
}

// MultiDimensionalResult contains results when optimizing multiple parameters
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance, in percentage points
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 50,
	}
}

func bounds(lo, hi *decimal.Decimal, defLo, defHi decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if lo != nil {
		defLo = *lo
	}
	if hi != nil {
		defHi = *hi
	}
	return defLo, defHi
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.TargetRetirementAge <= 0 {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target retirement age is required",
		}
	}

	lo, hi := bounds(c.MinSavingsRate, c.MaxSavingsRate, decimal.Zero, decimal.NewFromInt(100))
	if lo.IsNegative() || hi.GreaterThan(decimal.NewFromInt(100)) || lo.GreaterThan(hi) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "savings rate bounds must satisfy 0 <= min <= max <= 100",
		}
	}

	lo, hi = bounds(c.MinWithdrawalRate, c.MaxWithdrawalRate, decimal.NewFromInt(3), decimal.NewFromInt(6))
	if !lo.IsPositive() || lo.GreaterThan(hi) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "withdrawal rate bounds must satisfy 0 < min <= max",
		}
	}

	if c.WithdrawalRateStep != nil && !c.WithdrawalRateStep.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "withdrawal rate step must be positive",
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
