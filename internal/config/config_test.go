package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the test into a fresh working directory with its own XDG home
// and clears every LISTWIZ_ variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		name := "LISTWIZ_" + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		assert.Equal(t, "/custom/config/listwiz/listwiz.yml", GlobalPath())
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		assert.Equal(t, "listwiz.yml", filepath.Base(got))
	})
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "listwiz.yml", ProjectPath())
}

func TestExists(t *testing.T) {
	isolate(t)

	assert.False(t, Exists(), "no config files yet")

	require.NoError(t, WriteGlobal(&Config{LogLevel: "info"}))
	assert.True(t, Exists())

	require.NoError(t, os.Remove(GlobalPath()))
	require.NoError(t, WriteProject(&Config{LogLevel: "info"}))
	assert.True(t, Exists())
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		StrictValidation: true,
		LogLevel:         "debug",
		LogFile:          "/tmp/listwiz.log",
		SampleBatch:      8,
		Journal:          true,
		DataDir:          ".test",
	}
	require.NoError(t, WriteGlobal(cfg))

	data, err := os.ReadFile(GlobalPath())
	require.NoError(t, err)

	content := string(data)
	for _, field := range []string{
		"strict_validation: true",
		"log_level: debug",
		"log_file: /tmp/listwiz.log",
		"sample_batch: 8",
		"journal: true",
		"data_dir: .test",
	} {
		assert.Contains(t, content, field)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.StrictValidation)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, DefaultSampleBatch, cfg.SampleBatch)
	assert.False(t, cfg.Journal)
	assert.Equal(t, ".listwiz", cfg.DataDir)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{LogLevel: "warn", SampleBatch: 3, DataDir: ".global"}))
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("sample_batch: 6\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel, "global value survives when project omits it")
	assert.Equal(t, 6, cfg.SampleBatch, "project overrides global")
	assert.Equal(t, ".global", cfg.DataDir)

	t.Setenv("LISTWIZ_SAMPLE_BATCH", "9")
	t.Setenv("LISTWIZ_STRICT_VALIDATION", "true")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.SampleBatch, "env overrides project")
	assert.True(t, cfg.StrictValidation)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(DotEnvPath(), []byte("LISTWIZ_STRICT_VALIDATION=true\nLISTWIZ_JOURNAL=true\n"), 0644))
	// A real environment value wins over the .env file.
	t.Setenv("LISTWIZ_JOURNAL", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.StrictValidation)
	assert.False(t, cfg.Journal)
}

func TestLoad_InvalidSampleBatchFallsBack(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(ProjectPath(), []byte("sample_batch: 0\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleBatch, cfg.SampleBatch)
}
