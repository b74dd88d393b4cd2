package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/scenes"
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration

	engine        *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	solver        *breakeven.Solver

	keys keyMap
	help help.Model

	dashboardModel *scenes.DashboardModel
	scenariosModel *scenes.ScenariosModel
	compareModel   *scenes.CompareModel
	optimizeModel  *scenes.OptimizeModel
	resultsModel   *scenes.ResultsModel

	// Error state
	err    error
	status string
}

// NewModel creates the application model. An empty configPath starts from
// the built-in plan; a nil engine gets a silent one.
func NewModel(configPath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		currentScene:   SceneDashboard,
		previousScene:  SceneDashboard,
		configPath:     configPath,
		engine:         engine,
		compareEngine:  compare.NewCompareEngine(engine),
		solver:         breakeven.NewDefaultSolver(engine),
		keys:           defaultKeyMap(),
		help:           h,
		dashboardModel: scenes.NewDashboardModel(engine),
		scenariosModel: scenes.NewScenariosModel(),
		compareModel:   scenes.NewCompareModel(),
		optimizeModel:  scenes.NewOptimizeModel(),
		resultsModel:   scenes.NewResultsModel(),
		width:          100,
		height:         32,
	}
}

// Init loads the plan (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the plan file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return tuimsg.ConfigLoadedMsg{Config: config.DefaultConfiguration()}
		}
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ConfigLoadedMsg{Config: cfg, Path: path}
	}
}

// runProjectionsCmd projects every scenario of the plan for the scenario list.
func runProjectionsCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		projection, err := engine.RunScenarios(context.Background(), cfg)
		return tuimsg.ProjectionsCompleteMsg{Projection: projection, Err: err}
	}
}

// compareCmd runs templates against the dashboard inputs.
func compareCmd(ce *compare.CompareEngine, name string, inputs domain.InputParameters, templates []string) tea.Cmd {
	return func() tea.Msg {
		cfg := config.ConfigurationFromInputs(name, inputs)
		set, err := ce.Compare(context.Background(), cfg, compare.CompareOptions{Templates: templates})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// optimizeCmd solves every target applicable to the dashboard inputs.
func optimizeCmd(solver *breakeven.Solver, name string, inputs domain.InputParameters, targetAge int) tea.Cmd {
	return func() tea.Msg {
		result, err := solver.OptimizeAllTargets(context.Background(), name, inputs, breakeven.DefaultConstraints(targetAge))
		return tuimsg.OptimizationCompleteMsg{TargetAge: targetAge, Result: result, Err: err}
	}
}
