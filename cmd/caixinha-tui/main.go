package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caixinha/caixinha/internal/calculation"
	"github.com/caixinha/caixinha/internal/config"
	"github.com/caixinha/caixinha/internal/logging"
	"github.com/caixinha/caixinha/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: caixinha-tui <config-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Config file not found: %s\n", configPath)
		os.Exit(1)
	}

	env := config.LoadEnv()

	// The screen belongs to the TUI; logs go to a file only when asked for
	var logOut io.Writer = io.Discard
	if path := os.Getenv("CAIXINHA_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "caixinha")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, logging.ParseLevel(env.LogLevel))
	slog.SetDefault(logger)

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logging.NewEngineLogger(logger))

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
