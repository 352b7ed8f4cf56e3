package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/executor"
	"github.com/qlsh/quick-launcher/internal/stats"
	"github.com/qlsh/quick-launcher/internal/store"
	"github.com/qlsh/quick-launcher/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	DataDir        string
	Width          int
	Height         int
	ShowFooter     bool
	Preview        bool
	Verbose        bool
	DryRun         bool
	DangerPatterns []string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if _, err := st.SeedDefaults(); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}
	entries, warnings := st.LoadAll()
	usage := stats.Load(cfg.DataDir)
	exec := executor.New(executor.NewShellLauncher(), cfg.DangerPatterns)
	model := ui.NewModel(st, entries, usage, exec, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Preview:    cfg.Preview,
		Verbose:    cfg.Verbose,
		Warnings:   warnings,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
