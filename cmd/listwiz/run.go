package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/config"
	"github.com/mark3labs/listwiz/internal/hooks"
	"github.com/mark3labs/listwiz/internal/journal"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/state"
	"github.com/mark3labs/listwiz/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the listing wizard in the terminal",
	Long: `Open the listing wizard as a full-screen terminal UI.

Configuration is loaded from multiple sources with the following precedence:
  CLI flags > Environment variables > Project config > Global config > Defaults

Project config: ./listwiz.yml
Global config: ~/.config/listwiz/listwiz.yml`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	d, err := newDispatcher(cfg)
	if err != nil {
		return err
	}

	j, err := openJournal(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer closeJournal(j)
		detach := j.Attach(d.Controller().Store())
		defer detach()
	}

	runner, err := startHooks(cmd.Context())
	if err != nil {
		return err
	}
	defer runner.Wait()
	detachHooks := runner.Attach(d.Controller().Store())
	defer detachHooks()

	app := tui.New(d)
	defer app.Close()
	app.SetUIState(state.Load(cfg.DataDir))

	_, runErr := tea.NewProgram(app).Run()
	if err := state.Save(cfg.DataDir, app.UIState()); err != nil {
		logger.Warn("saving UI state: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("tui failed: %w", runErr)
	}
	return nil
}

// startHooks loads .listwiz.hooks.yml from the working directory. Without
// the file the returned runner does nothing.
func startHooks(ctx context.Context) (*hooks.Runner, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return nil, err
	}
	return hooks.NewRunner(ctx, cfg, workDir), nil
}

// openJournal starts the embedded journal when enabled. It returns nil
// without error when the journal is off.
func openJournal(ctx context.Context, cfg *config.Config) (*journal.Journal, error) {
	if !cfg.Journal {
		return nil, nil
	}
	j, err := journal.Start(ctx, filepath.Join(cfg.DataDir, "journal"))
	if err != nil {
		return nil, fmt.Errorf("failed to start journal: %w", err)
	}
	return j, nil
}

func closeJournal(j *journal.Journal) {
	if err := j.Close(); err != nil {
		logger.Warn("journal shutdown: %v", err)
	}
}
