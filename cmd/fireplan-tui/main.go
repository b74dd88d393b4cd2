package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/logging"
	"github.com/rgehrsitz/fireplan/internal/tui"
)

func main() {
	// optional plan file; the built-in plan is used without one
	configPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: fireplan-tui [plan.yaml]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: plan file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	engine := calculation.NewCalculationEngine()

	// the screen belongs to the TUI, so engine logs only go to a file
	if path := os.Getenv("FIREPLAN_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		logger, err := logging.New(f, os.Getenv("FIREPLAN_LOG_LEVEL"), true)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logging.EngineLogger{L: logger})
	}

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
