package hooks

// Config is the top-level configuration for hooks loaded from .listwiz.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig lists the commands run for each session milestone.
type HooksConfig struct {
	StepComplete []*HookConfig `yaml:"step_complete"`
	StepBlocked  []*HookConfig `yaml:"step_blocked"`
	SessionClose []*HookConfig `yaml:"session_close"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
