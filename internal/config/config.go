// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultSampleBatch is the number of library photos added by one "add samples" action.
const DefaultSampleBatch = 5

// Config holds all configuration values for listwiz.
type Config struct {
	// StrictValidation disables the validation bypass at session start.
	StrictValidation bool   `mapstructure:"strict_validation" yaml:"strict_validation"`
	LogLevel         string `mapstructure:"log_level" yaml:"log_level"`
	LogFile          string `mapstructure:"log_file" yaml:"log_file"`
	SampleBatch      int    `mapstructure:"sample_batch" yaml:"sample_batch"`
	Journal          bool   `mapstructure:"journal" yaml:"journal"`
	DataDir          string `mapstructure:"data_dir" yaml:"data_dir"`
}

var envKeys = []string{
	"strict_validation",
	"log_level",
	"log_file",
	"sample_batch",
	"journal",
	"data_dir",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars (.env included) > project config > XDG global config > defaults
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvPath()); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("listwiz")

	v.SetDefault("strict_validation", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("sample_batch", DefaultSampleBatch)
	v.SetDefault("journal", false)
	v.SetDefault("data_dir", ".listwiz")

	v.SetEnvPrefix("LISTWIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so bool/int values from the environment parse reliably.
	for _, key := range envKeys {
		if err := v.BindEnv(key, "LISTWIZ_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.SampleBatch <= 0 {
		cfg.SampleBatch = DefaultSampleBatch
	}

	return &cfg, nil
}

// loadDotEnv exports variables from a .env file without overriding ones
// already present in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/listwiz/listwiz.yml or $XDG_CONFIG_HOME/listwiz/listwiz.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listwiz", "listwiz.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "listwiz", "listwiz.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "listwiz.yml"
}

// DotEnvPath returns the path of the optional .env file.
func DotEnvPath() string {
	return ".env"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
