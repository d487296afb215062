package main

import (
	"context"
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/catalog"
	"github.com/mark3labs/listwiz/internal/command"
	"github.com/mark3labs/listwiz/internal/config"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/tui/theme"
	"github.com/mark3labs/listwiz/internal/wizard"
)

const logoText = "█  █ █▀▀ ▀█▀ █ █ █ █ ▀▀█\n█▄▄ █ ▄██  █  ▀▄▀▄▀ █ █▄▄"

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	strict  bool
	journal bool
	dataDir string
}

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "listwiz",
	Short: "Step-by-step property listing wizard",
}

func renderLogo() string {
	t := theme.Current()
	return lipgloss.NewStyle().Foreground(theme.HexToColor(t.Primary)).Bold(true).Render(logoText)
}

func init() {
	rootCmd.Long = renderLogo() + `

listwiz walks a property listing draft through six steps: listing type,
location, unit details, price, gallery and preview. Each step validates
before the wizard moves on, unless validation bypass is enabled.

The same command vocabulary drives the terminal UI, scripted runs and
the MCP tool server.`

	rootCmd.PersistentFlags().BoolVar(&rootFlags.strict, "strict", false, "Start sessions with validation enforced")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.journal, "journal", false, "Record session events to the embedded journal")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Scratch directory for the embedded journal (default: .listwiz)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
}

// loadConfig loads layered config, applies explicit flags on top and
// configures the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.StrictValidation = rootFlags.strict
	}
	if flags.Changed("journal") {
		cfg.Journal = rootFlags.journal
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = rootFlags.dataDir
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

// loadCatalog returns the built-in catalog after checking its taxonomy.
func loadCatalog() (*catalog.Catalog, error) {
	cat := catalog.Default()
	if err := cat.Taxonomy.Check(); err != nil {
		return nil, fmt.Errorf("invalid property taxonomy: %w", err)
	}
	return cat, nil
}

// newDispatcher builds a fresh session with its controller and dispatcher.
func newDispatcher(cfg *config.Config) (*command.Dispatcher, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	store := session.New(session.Options{
		StrictValidation: cfg.StrictValidation,
		Catalog:          cat,
	})
	return command.NewDispatcher(wizard.New(store), cfg.SampleBatch), nil
}
