package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Solver finds the input values that let a plan retire by a target age
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

func (s *Solver) run(p domain.InputParameters) domain.SimulationResult {
	if s.CalcEngine == nil {
		return calculation.Simulate(p)
	}
	return s.CalcEngine.Run(p)
}

func meetsGoal(summary domain.ResultSummary, targetAge int) bool {
	return summary.ReachedTarget && summary.RetirementAge <= targetAge
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Constraints.TargetRetirementAge <= req.Inputs.CurrentAge {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message: fmt.Sprintf("target retirement age %d must be after the current age %d",
				req.Constraints.TargetRetirementAge, req.Inputs.CurrentAge),
		}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeSavingsRate:
		return s.optimizeSavingsRate(ctx, req)
	case OptimizeInvestmentShare:
		return s.optimizeInvestmentShare(ctx, req)
	case OptimizeWithdrawalRate:
		return s.optimizeWithdrawalRate(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeSavingsRate finds the smallest savings rate that retires by the target age
func (s *Solver) optimizeSavingsRate(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Inputs.Mode == domain.ModeSplit {
		return nil, &BreakEvenError{
			Operation: "optimize_savings_rate",
			Message:   "savings rate only applies to rate allocation; use investment_share for split plans",
		}
	}

	lo, hi := bounds(req.Constraints.MinSavingsRate, req.Constraints.MaxSavingsRate, decimal.Zero, hundred)
	apply := func(p domain.InputParameters, v decimal.Decimal) domain.InputParameters {
		p.Rate.SavingsRate = v
		return p
	}

	result, optimal, err := s.bisect(ctx, req, "optimize_savings_rate", lo, hi, apply)
	if err != nil {
		return nil, err
	}
	if optimal != nil {
		result.OptimalSavingsRate = optimal
	}
	return result, nil
}

// optimizeInvestmentShare finds the smallest investment share, with the rest of
// the investment+savings pool left in savings, that retires by the target age.
func (s *Solver) optimizeInvestmentShare(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Inputs.Mode != domain.ModeSplit {
		return nil, &BreakEvenError{
			Operation: "optimize_investment_share",
			Message:   "investment share only applies to split allocation; use savings_rate for rate plans",
		}
	}

	pool := req.Inputs.Split.InvestmentPct.Add(req.Inputs.Split.SavingsPct)
	apply := func(p domain.InputParameters, v decimal.Decimal) domain.InputParameters {
		p.Split.InvestmentPct = v
		p.Split.SavingsPct = pool.Sub(v)
		return p
	}

	result, optimal, err := s.bisect(ctx, req, "optimize_investment_share", decimal.Zero, pool, apply)
	if err != nil {
		return nil, err
	}
	if optimal != nil {
		result.OptimalInvestmentShare = optimal
	}
	return result, nil
}

// bisect searches [lo, hi] for the smallest value whose projection meets the
// goal. Years to retire never increase as the value grows.
func (s *Solver) bisect(
	ctx context.Context,
	req OptimizationRequest,
	operation string,
	lo, hi decimal.Decimal,
	apply func(domain.InputParameters, decimal.Decimal) domain.InputParameters,
) (*OptimizationResult, *decimal.Decimal, error) {
	target := req.Constraints.TargetRetirementAge
	limit := hi
	base := s.run(req.Inputs)

	result := &OptimizationResult{
		Request:     req,
		BaseSummary: &base.Summary,
	}

	finish := func(v decimal.Decimal, run domain.SimulationResult) *decimal.Decimal {
		inputs := run.Inputs
		result.Inputs = &inputs
		result.Summary = &run.Summary
		result.YearsDiffFromBase = run.Summary.YearsNeeded - base.Summary.YearsNeeded
		return &v
	}

	highRun := s.run(apply(req.Inputs, hi))
	result.Iterations++
	if !meetsGoal(highRun.Summary, target) {
		result.ConvergenceInfo = fmt.Sprintf("Not reachable: even %s%% retires at age %d",
			hi.StringFixed(2), highRun.Summary.RetirementAge)
		finish(hi, highRun)
		return result, nil, nil
	}

	lowRun := s.run(apply(req.Inputs, lo))
	result.Iterations++
	if meetsGoal(lowRun.Summary, target) {
		result.Success = true
		result.ConvergenceInfo = "Lower bound already meets the target age"
		return result, finish(lo, lowRun), nil
	}

	converged := false
	for result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, nil, &BreakEvenError{Operation: operation, Message: "cancelled", Cause: ctx.Err()}
		default:
		}

		if hi.Sub(lo).LessThan(req.Tolerance) {
			converged = true
			break
		}

		mid := lo.Add(hi).Div(two)
		run := s.run(apply(req.Inputs, mid))
		result.Iterations++

		if meetsGoal(run.Summary, target) {
			hi = mid
		} else {
			lo = mid
		}
	}
	if !converged && hi.Sub(lo).LessThan(req.Tolerance) {
		converged = true
	}

	// Report a value at two decimals that still meets the goal.
	rounded := decimal.Min(hi.Mul(hundred).Ceil().Div(hundred), limit)
	final := s.run(apply(req.Inputs, rounded))
	if meetsGoal(final.Summary, target) {
		hi = rounded
	} else {
		final = s.run(apply(req.Inputs, hi))
	}

	result.Success = converged
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Binary search converged within %s points", req.Tolerance)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, finish(hi, final), nil
}

// optimizeWithdrawalRate evaluates a grid of withdrawal rates and reports the
// lowest one that still retires by the target age.
func (s *Solver) optimizeWithdrawalRate(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	c := req.Constraints
	lo, hi := bounds(c.MinWithdrawalRate, c.MaxWithdrawalRate, decimal.NewFromInt(3), decimal.NewFromInt(6))
	step := decimal.NewFromFloat(0.5)
	if c.WithdrawalRateStep != nil {
		step = *c.WithdrawalRateStep
	}

	base := s.run(req.Inputs)
	result := &OptimizationResult{
		Request:     req,
		BaseSummary: &base.Summary,
	}

	var best *domain.SimulationResult
	for rate := lo; rate.LessThanOrEqual(hi); rate = rate.Add(step) {
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "optimize_withdrawal_rate", Message: "cancelled", Cause: ctx.Err()}
		default:
		}

		p := req.Inputs
		p.WithdrawalRate = rate
		run := s.run(p)
		result.Iterations++

		point := GridPoint{
			WithdrawalRate:       rate,
			YearsNeeded:          run.Summary.YearsNeeded,
			RetirementAge:        run.Summary.RetirementAge,
			ReachedTarget:        run.Summary.ReachedTarget,
			RetirementFundTarget: run.Summary.RetirementFundTarget,
			MeetsGoal:            meetsGoal(run.Summary, c.TargetRetirementAge),
		}
		result.GridPoints = append(result.GridPoints, point)

		if point.MeetsGoal && best == nil {
			r := run
			best = &r
			optimal := rate
			result.OptimalWithdrawalRate = &optimal
		}
	}

	if best == nil {
		result.ConvergenceInfo = fmt.Sprintf("No withdrawal rate between %s%% and %s%% retires by age %d",
			lo, hi, c.TargetRetirementAge)
		return result, nil
	}

	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Grid search over %d withdrawal rates", len(result.GridPoints))
	inputs := best.Inputs
	result.Inputs = &inputs
	result.Summary = &best.Summary
	result.YearsDiffFromBase = best.Summary.YearsNeeded - base.Summary.YearsNeeded
	return result, nil
}
