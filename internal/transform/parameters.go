package transform

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// checkRange validates a prospective value for parameter against the input limits.
func checkRange(transformName, parameter string, v decimal.Decimal) error {
	r, ok := config.LimitFor(parameter)
	if !ok {
		return nil
	}
	if !r.Contains(v) {
		return NewTransformError(transformName, "validate",
			fmt.Sprintf("%s would become %s, outside %s", parameter, v, r), nil)
	}
	return nil
}

// SetParameter replaces one input with an absolute value.
type SetParameter struct {
	Parameter string
	Value     decimal.Decimal
}

func (sp *SetParameter) Name() string {
	return "set"
}

func (sp *SetParameter) Description() string {
	return fmt.Sprintf("Set %s to %s", sp.Parameter, sp.Value)
}

func (sp *SetParameter) Validate(base domain.InputParameters) error {
	if _, err := base.Parameter(sp.Parameter); err != nil {
		return NewTransformError(sp.Name(), "validate", "unknown parameter", err)
	}
	return checkRange(sp.Name(), sp.Parameter, sp.Value)
}

func (sp *SetParameter) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	return base.WithParameter(sp.Parameter, sp.Value)
}

// AdjustParameter adds Delta (percentage points or an amount) to one input.
type AdjustParameter struct {
	Parameter string
	Delta     decimal.Decimal
}

func (ap *AdjustParameter) Name() string {
	return "adjust"
}

func (ap *AdjustParameter) Description() string {
	sign := "+"
	if ap.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("Adjust %s by %s%s", ap.Parameter, sign, ap.Delta)
}

func (ap *AdjustParameter) Validate(base domain.InputParameters) error {
	current, err := base.Parameter(ap.Parameter)
	if err != nil {
		return NewTransformError(ap.Name(), "validate", "unknown parameter", err)
	}
	return checkRange(ap.Name(), ap.Parameter, current.Add(ap.Delta))
}

func (ap *AdjustParameter) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	current, err := base.Parameter(ap.Parameter)
	if err != nil {
		return base, err
	}
	return base.WithParameter(ap.Parameter, current.Add(ap.Delta))
}

// ScaleParameter multiplies one input by Factor.
type ScaleParameter struct {
	Parameter string
	Factor    decimal.Decimal
}

func (sc *ScaleParameter) Name() string {
	return "scale"
}

func (sc *ScaleParameter) Description() string {
	return fmt.Sprintf("Scale %s by %s", sc.Parameter, sc.Factor)
}

func (sc *ScaleParameter) Validate(base domain.InputParameters) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "factor must be non-negative", nil)
	}
	current, err := base.Parameter(sc.Parameter)
	if err != nil {
		return NewTransformError(sc.Name(), "validate", "unknown parameter", err)
	}
	return checkRange(sc.Name(), sc.Parameter, current.Mul(sc.Factor))
}

func (sc *ScaleParameter) Apply(base domain.InputParameters) (domain.InputParameters, error) {
	current, err := base.Parameter(sc.Parameter)
	if err != nil {
		return base, err
	}
	return base.WithParameter(sc.Parameter, current.Mul(sc.Factor))
}
