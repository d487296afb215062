package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/listwiz/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rootFlags.strict, rootFlags.journal, rootFlags.dataDir = false, false, ""
	setupFlags.project, setupFlags.force = false, false
	scriptFlags.json, scriptFlags.watch = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return ansi.Strip(out.String()), err
}

func TestStepsCommand(t *testing.T) {
	out, err := execute(t, "steps")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Listing Type (listingType)")
	assert.Contains(t, out, "5. Gallery (gallery)")
}

func TestLocationsCommand(t *testing.T) {
	out, err := execute(t, "locations", "emerald")
	require.NoError(t, err)
	assert.Contains(t, out, "Emerald Hills")

	out, err = execute(t, "locations", "nowhere-at-all")
	require.NoError(t, err)
	assert.Contains(t, out, `No developments match "nowhere-at-all".`)
}

func TestSetupCommand(t *testing.T) {
	out, err := execute(t, "setup", "--project", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written to: listwiz.yml")

	data, err := os.ReadFile(config.ProjectPath())
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.True(t, cfg.StrictValidation)
	assert.Equal(t, config.DefaultSampleBatch, cfg.SampleBatch)

	// a second run refuses to overwrite
	_, err = rootCmd.ExecuteC()
	assert.ErrorContains(t, err, "already exists")
}

func TestScriptCommand(t *testing.T) {
	script := filepath.Join(t.TempDir(), "walk.yml")
	require.NoError(t, os.WriteFile(script, []byte(`name: walk
steps:
  - next
  - next
expect:
  step: unitDetails
`), 0o644))

	out, err := execute(t, "script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "walk")
	assert.Contains(t, out, "Final step: Unit Details")

	_, err = execute(t, "script", "--strict", script)
	assert.ErrorContains(t, err, "scenario failed")
}
