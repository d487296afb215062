package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create listwiz configuration file",
	Long: `Create a listwiz configuration file with sensible defaults.

By default, creates a global config at ~/.config/listwiz/listwiz.yml.
Use --project to create a project-local config in the current directory.
The --strict, --journal and --data-dir flags are written into the file.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := &config.Config{
		StrictValidation: rootFlags.strict,
		LogLevel:         "info",
		LogFile:          "",
		SampleBatch:      config.DefaultSampleBatch,
		Journal:          rootFlags.journal,
		DataDir:          ".listwiz",
	}
	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'listwiz run' to get started.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
