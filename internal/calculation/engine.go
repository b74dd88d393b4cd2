package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// MaxYears is the simulation horizon. Runs that have not reached their target
// by then stop and report MaxYears.
const MaxYears = 100

// CalculationEngine runs retirement projections.
type CalculationEngine struct {
	Debug  bool // log every simulated year
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce == nil || ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Simulate runs a single projection without logging.
func Simulate(p domain.InputParameters) domain.SimulationResult {
	return simulate(p, NopLogger{}, false)
}

// Run simulates p, logging validation warnings and, in debug mode, each year.
func (ce *CalculationEngine) Run(p domain.InputParameters) domain.SimulationResult {
	debug := ce != nil && ce.Debug
	return simulate(p, ce.logger(), debug)
}

func simulate(p domain.InputParameters, log Logger, debug bool) domain.SimulationResult {
	if p.Frequency == 0 {
		p.Frequency = domain.Yearly
	}
	if p.Mode == "" {
		p.Mode = domain.ModeRate
	}

	issues := p.Validate()
	for _, issue := range issues {
		log.Warnf("%s", issue.Message)
	}

	strategy := strategyFor(p, domain.NewRates(p))
	state := strategy.start()
	series := make([]domain.TimeSeriesRow, 0, 16)

	for !strategy.reached(&state) && state.year < MaxYears {
		row := strategy.advance(&state)
		state.year++

		row.Year = state.year
		row.Age = p.CurrentAge + state.year
		row.Salary = state.salary
		row.NetSavings = state.netSavings
		row.NetInvestments = state.netInvestments
		row.TotalBalance = state.balance()
		row.RetirementFundTarget = state.target
		series = append(series, row)

		if debug {
			log.Debugf("year %d (age %d): balance=%s target=%s debt=%s",
				row.Year, row.Age, row.TotalBalance.StringFixed(2),
				row.RetirementFundTarget.StringFixed(2), row.DebtRemaining.StringFixed(2))
		}
	}

	summary := domain.ResultSummary{
		Mode:                 p.Mode,
		CurrentAge:           p.CurrentAge,
		YearsNeeded:          state.year,
		RetirementAge:        p.CurrentAge + state.year,
		RetirementFundTarget: state.target,
		NetSavings:           state.netSavings,
		NetInvestments:       state.netInvestments,
		DebtRemaining:        state.debtRemaining,
		TargetFrozen:         state.frozen,
		ReachedTarget:        strategy.reached(&state),
		Advisory:             len(issues) > 0,
	}
	if !summary.ReachedTarget {
		log.Infof("target not reached within %d years (balance %s of %s)",
			MaxYears, summary.TotalBalance().StringFixed(2), summary.RetirementFundTarget.StringFixed(2))
	}

	return domain.SimulationResult{
		Inputs:  p,
		Issues:  issues,
		Summary: summary,
		Series:  series,
	}
}

// RunScenario projects one scenario of a plan.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scenario == nil {
		return nil, fmt.Errorf("scenario is required")
	}

	inputs := config.InputsFor(scenario)
	if !inputs.WithdrawalRate.IsPositive() {
		return nil, fmt.Errorf("scenario %q: withdrawal rate must be positive", scenario.Name)
	}

	ce.logger().Debugf("running scenario %q (%s mode)", scenario.Name, inputs.Mode)
	result := ce.Run(inputs)
	result.Name = scenario.Name
	return &result, nil
}

// RunScenarios projects every scenario in the plan, in order.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.PlanProjection, error) {
	projection := &domain.PlanProjection{
		Currency:  config.Currency,
		Frequency: config.Frequency,
		Results:   make([]domain.SimulationResult, 0, len(config.Scenarios)),
	}
	if projection.Frequency == 0 {
		projection.Frequency = domain.Yearly
	}

	for i := range config.Scenarios {
		result, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		projection.Results = append(projection.Results, *result)
	}

	return projection, nil
}
