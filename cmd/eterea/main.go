package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"eterea/internal/adapters/browser"
	"eterea/internal/adapters/sqlite"
	"eterea/internal/adapters/tui"
	"eterea/internal/config"
	"eterea/internal/logger"
)

func main() {
	dbFlag := flag.String("db", "", "path to the bookmark database (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.DatabasePath = config.ExpandHome(*dbFlag)
	}

	// The alternate screen owns the terminal; only warnings reach stderr
	log := logger.New("warn", false)

	// Initialize adapters
	store, err := sqlite.Open(cfg.DatabasePath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Create and run TUI app
	app := tui.NewApp(store, browser.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
