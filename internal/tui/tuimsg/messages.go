// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ConfigLoadedMsg carries a freshly parsed plan.
type ConfigLoadedMsg struct {
	Config *domain.Configuration
	Path   string // empty for the built-in plan
}

// ErrorMsg replaces the current scene until the next key press.
type ErrorMsg struct {
	Err error
}

// ProjectionsCompleteMsg carries the outcome of every plan scenario.
type ProjectionsCompleteMsg struct {
	Projection *domain.PlanProjection
	Err        error
}

// ScenarioSelectedMsg asks the dashboard to load a scenario's inputs.
type ScenarioSelectedMsg struct {
	ScenarioName string
	Inputs       domain.InputParameters
}

// ApplyInputsMsg replaces the dashboard inputs, e.g. with an optimized plan.
type ApplyInputsMsg struct {
	Source string
	Inputs domain.InputParameters
}

// ComparisonStartedMsg marks the compare scene busy.
type ComparisonStartedMsg struct {
	Templates []string
}

type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

type OptimizationStartedMsg struct {
	TargetAge int
}

// OptimizationCompleteMsg holds the solver output for every target.
type OptimizationCompleteMsg struct {
	TargetAge int
	Result    *breakeven.MultiDimensionalResult
	Err       error
}
