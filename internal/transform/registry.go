package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ParameterTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set", createSetParameter)
	registry.Register("adjust", createAdjustParameter)
	registry.Register("scale", createScaleParameter)
	registry.Register("set_split", createSetSplit)
	registry.Register("shift_split", createShiftSplit)
	registry.Register("switch_mode", createSwitchMode)
	registry.Register("switch_frequency", createSwitchFrequency)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ParameterTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust:parameter=savings_rate,delta=5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ParameterTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParams(params map[string]string, transform string, keys ...string) error {
	for _, key := range keys {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("%s requires '%s' parameter", transform, key)
		}
	}
	return nil
}

func decimalParam(params map[string]string, key string) (decimal.Decimal, error) {
	v, err := config.ParseDecimal(params[key])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetParameter(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "set", "parameter", "value"); err != nil {
		return nil, err
	}
	value, err := decimalParam(params, "value")
	if err != nil {
		return nil, err
	}
	return &SetParameter{Parameter: params["parameter"], Value: value}, nil
}

func createAdjustParameter(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "adjust", "parameter", "delta"); err != nil {
		return nil, err
	}
	delta, err := decimalParam(params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustParameter{Parameter: params["parameter"], Delta: delta}, nil
}

func createScaleParameter(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "scale", "parameter", "factor"); err != nil {
		return nil, err
	}
	factor, err := decimalParam(params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleParameter{Parameter: params["parameter"], Factor: factor}, nil
}

func createSetSplit(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "set_split", "debt", "investment", "living", "savings"); err != nil {
		return nil, err
	}
	var split domain.SplitAllocation
	for key, dst := range map[string]*decimal.Decimal{
		"debt":       &split.DebtPct,
		"investment": &split.InvestmentPct,
		"living":     &split.CostOfLivingPct,
		"savings":    &split.SavingsPct,
	} {
		v, err := decimalParam(params, key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	return &SetSplit{Split: split}, nil
}

func createShiftSplit(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "shift_split", "from", "to", "points"); err != nil {
		return nil, err
	}
	points, err := decimalParam(params, "points")
	if err != nil {
		return nil, err
	}
	return &ShiftSplit{From: params["from"], To: params["to"], Points: points}, nil
}

func createSwitchMode(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "switch_mode", "mode"); err != nil {
		return nil, err
	}
	mode, err := domain.ParseAllocationMode(params["mode"])
	if err != nil {
		return nil, err
	}
	return &SwitchMode{Mode: mode}, nil
}

func createSwitchFrequency(params map[string]string) (ParameterTransform, error) {
	if err := requireParams(params, "switch_frequency", "frequency"); err != nil {
		return nil, err
	}
	freq, err := domain.ParseFrequency(params["frequency"])
	if err != nil {
		return nil, err
	}
	return &SwitchFrequency{Frequency: freq}, nil
}
