package calculation

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// simulationState is the mutable state of a single run.
type simulationState struct {
	year           int
	salary         decimal.Decimal
	costOfLiving   decimal.Decimal
	netSavings     decimal.Decimal
	netInvestments decimal.Decimal
	debtRemaining  decimal.Decimal
	target         decimal.Decimal
	frozen         bool
}

func (s *simulationState) balance() decimal.Decimal {
	return s.netSavings.Add(s.netInvestments)
}

// allocationStrategy is the part of the yearly loop that differs between
// allocation modes.
type allocationStrategy interface {
	start() simulationState
	// reached reports whether the retirement condition holds.
	reached(s *simulationState) bool
	// advance applies one year to s and returns the flows for that year.
	advance(s *simulationState) domain.TimeSeriesRow
}

func strategyFor(p domain.InputParameters, r domain.Rates) allocationStrategy {
	growth := annualGrowth{
		periods:   p.Frequency.Periods(),
		salary:    one.Add(r.SalaryGrowth),
		inflation: one.Add(r.Inflation),
		multiple:  r.TargetMultiple,
	}
	if p.Mode == domain.ModeSplit {
		return &splitAllocation{p: p, r: r, g: growth}
	}
	return &rateAllocation{p: p, r: r, g: growth}
}

type annualGrowth struct {
	periods   decimal.Decimal
	salary    decimal.Decimal
	inflation decimal.Decimal
	multiple  decimal.Decimal
}

func (g annualGrowth) target(costOfLiving decimal.Decimal) decimal.Decimal {
	return costOfLiving.Mul(g.periods).Mul(g.multiple)
}

// rateAllocation nets debt against savings and grows the invested share of
// the whole balance.
type rateAllocation struct {
	p domain.InputParameters
	r domain.Rates
	g annualGrowth
}

func (a *rateAllocation) start() simulationState {
	return simulationState{
		salary:       a.p.CurrentSalary,
		costOfLiving: a.p.CostOfLiving,
		netSavings:   a.p.CurrentSavings.Sub(a.p.TotalDebt),
		target:       a.g.target(a.p.CostOfLiving),
	}
}

func (a *rateAllocation) reached(s *simulationState) bool {
	return s.netSavings.GreaterThanOrEqual(s.target)
}

func (a *rateAllocation) advance(s *simulationState) domain.TimeSeriesRow {
	taxed := s.salary.Mul(a.g.periods).Mul(one.Sub(a.r.Tax))
	contribution := taxed.Mul(a.r.Savings)
	growth := s.netSavings.Mul(a.r.Investment).Mul(a.r.InvestmentReturn)
	s.netSavings = s.netSavings.Add(growth).Add(contribution)

	s.costOfLiving = s.costOfLiving.Mul(a.g.inflation)
	s.target = a.g.target(s.costOfLiving)
	s.salary = s.salary.Mul(a.g.salary)

	return domain.TimeSeriesRow{
		SavingsContribution: contribution,
		InvestmentGrowth:    growth,
		DebtRemaining:       decimal.Zero,
	}
}

// splitAllocation divides salary across debt, investments and savings and
// tracks each pot separately. The target stops inflating once met.
type splitAllocation struct {
	p domain.InputParameters
	r domain.Rates
	g annualGrowth
}

func (a *splitAllocation) start() simulationState {
	return simulationState{
		salary:        a.p.CurrentSalary,
		costOfLiving:  a.p.RetirementSpending(),
		netSavings:    a.p.CurrentSavings,
		debtRemaining: a.p.TotalDebt,
		target:        a.g.target(a.p.RetirementSpending()),
	}
}

func (a *splitAllocation) reached(s *simulationState) bool {
	return !s.debtRemaining.IsPositive() && s.balance().GreaterThanOrEqual(s.target)
}

func (a *splitAllocation) advance(s *simulationState) domain.TimeSeriesRow {
	annual := s.salary.Mul(a.g.periods)
	debtPayment := annual.Mul(a.r.SplitDebt)
	investment := annual.Mul(a.r.SplitInvestment)
	savings := annual.Mul(a.r.SplitSavings)

	if s.debtRemaining.IsPositive() {
		s.debtRemaining = decimal.Max(decimal.Zero, s.debtRemaining.Sub(debtPayment))
	}

	s.netSavings = s.netSavings.Add(savings)
	s.netInvestments = s.netInvestments.Add(investment)
	growth := s.netInvestments.Mul(a.r.InvestmentReturn)
	s.netInvestments = s.netInvestments.Add(growth)

	s.salary = s.salary.Mul(a.g.salary)

	// Re-checked every year; balances never shrink so a met target stays frozen.
	if s.balance().LessThan(s.target) {
		s.target = s.target.Mul(a.g.inflation)
	} else {
		s.frozen = true
	}

	return domain.TimeSeriesRow{
		SavingsContribution: savings,
		InvestmentGrowth:    growth,
		DebtRemaining:       s.debtRemaining,
	}
}
