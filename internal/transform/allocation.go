package transform

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

var splitFields = map[string]bool{
	"debt_pct":           true,
	"investment_pct":     true,
	"cost_of_living_pct": true,
	"savings_pct":        true,
}

// SetSplit switches to split mode with the given shares. The shares must add up to 100.
type SetSplit struct {
	Split domain.SplitAllocation
}

func (ss *SetSplit) Name() string {
	return "set_split"
}

func (ss *SetSplit) Description() string {
	return fmt.Sprintf("Split salary %s/%s/%s/%s (debt/investments/living/savings)",
		ss.Split.DebtPct, ss.Split.InvestmentPct, ss.Split.CostOfLivingPct, ss.Split.SavingsPct)
}

func (ss *SetSplit) Validate(base domain.InputParameters) error {
	for _, v := range []decimal.Decimal{ss.Split.DebtPct, ss.Split.InvestmentPct, ss.Split.CostOfLivingPct, ss.Split.SavingsPct} {
		if v.IsNegative() {
			return NewTransformError(ss.Name(), "validate", "shares must be non-negative", nil)
		}
	}
	if total := ss.Split.Total(); !total.Equal(decimal.NewFromInt(100)) {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("shares add up to %s, expected 100", total), nil)
	}
	return nil
}

func (ss *SetSplit) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	base.Mode = domain.ModeSplit
	base.Split = ss.Split
	return base, nil
}

// ShiftSplit moves Points from one split share to another, keeping the total.
// It does nothing to inputs in rate mode.
type ShiftSplit struct {
	From   string
	To     string
	Points decimal.Decimal
}

func (sh *ShiftSplit) Name() string {
	return "shift_split"
}

func (sh *ShiftSplit) Description() string {
	return fmt.Sprintf("Move %s points of salary from %s to %s", sh.Points, sh.From, sh.To)
}

func (sh *ShiftSplit) Validate(base domain.InputParameters) error {
	if !splitFields[sh.From] || !splitFields[sh.To] {
		return NewTransformError(sh.Name(), "validate",
			fmt.Sprintf("from/to must be split shares, got %q and %q", sh.From, sh.To), nil)
	}
	if sh.From == sh.To {
		return NewTransformError(sh.Name(), "validate", "from and to must differ", nil)
	}
	if !sh.Points.IsPositive() {
		return NewTransformError(sh.Name(), "validate", "points must be positive", nil)
	}
	if base.Mode != domain.ModeSplit {
		return nil
	}
	from, _ := base.Parameter(sh.From)
	if from.LessThan(sh.Points) {
		return NewTransformError(sh.Name(), "validate",
			fmt.Sprintf("%s is only %s", sh.From, from), nil)
	}
	return nil
}

func (sh *ShiftSplit) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	if base.Mode != domain.ModeSplit {
		return base, nil
	}
	from, _ := base.Parameter(sh.From)
	to, _ := base.Parameter(sh.To)
	out, err := base.WithParameter(sh.From, from.Sub(sh.Points))
	if err != nil {
		return base, err
	}
	return out.WithParameter(sh.To, to.Add(sh.Points))
}

// SwitchMode changes the allocation mode without touching any shares.
type SwitchMode struct {
	Mode domain.AllocationMode
}

func (sm *SwitchMode) Name() string {
	return "switch_mode"
}

func (sm *SwitchMode) Description() string {
	return fmt.Sprintf("Use %s allocation", sm.Mode)
}

func (sm *SwitchMode) Validate(base domain.InputParameters) error {
	if sm.Mode != domain.ModeRate && sm.Mode != domain.ModeSplit {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown mode %q", sm.Mode), nil)
	}
	return nil
}

func (sm *SwitchMode) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	base.Mode = sm.Mode
	return base, nil
}

// SwitchFrequency re-expresses per-period amounts (salary and cost of
// living) in another frequency, so the plan describes the same money.
type SwitchFrequency struct {
	Frequency domain.Frequency
}

func (sf *SwitchFrequency) Name() string {
	return "switch_frequency"
}

func (sf *SwitchFrequency) Description() string {
	return fmt.Sprintf("Express amounts %s", sf.Frequency.Label())
}

func (sf *SwitchFrequency) Validate(base domain.InputParameters) error {
	if sf.Frequency != domain.Monthly && sf.Frequency != domain.Yearly {
		return NewTransformError(sf.Name(), "validate", "frequency must be monthly or yearly", nil)
	}
	return nil
}

func (sf *SwitchFrequency) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	from := base.Frequency
	if from == 0 {
		from = domain.Yearly
	}
	if from == sf.Frequency {
		return base, nil
	}

	// amount per new period = amount per old period * old periods / new periods
	convert := func(v decimal.Decimal) decimal.Decimal {
		return v.Mul(from.Periods()).Div(sf.Frequency.Periods())
	}
	base.CurrentSalary = convert(base.CurrentSalary)
	base.CostOfLiving = convert(base.CostOfLiving)
	base.RetirementCostOfLiving = convert(base.RetirementCostOfLiving)
	base.Frequency = sf.Frequency
	return base, nil
}
