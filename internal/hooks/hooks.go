// Package hooks runs user-configured shell commands when a listing session
// reaches a milestone: a step completes, a step is blocked, the session ends.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/logger"
	"github.com/mark3labs/listwiz/internal/session"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".listwiz.hooks.yml"

// LoadConfig loads the hooks configuration from the working directory.
// Returns nil if the config file doesn't exist (hooks are optional).
// Returns an error only if the file exists but cannot be parsed.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables holds template variables that can be expanded in hook commands.
type Variables struct {
	Session string
	Step    listing.Step
	Status  string
}

// Execute runs a hook command and returns its output.
// Template variables in the command ({{session}}, {{step}}, {{title}},
// {{status}}) are expanded before execution.
// On failure the output describes the error and the returned error is nil.
// Only context cancellation is returned as an error.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"LISTWIZ_SESSION="+vars.Session,
		"LISTWIZ_STEP="+string(vars.Step),
		"LISTWIZ_STATUS="+vars.Status,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		output := stdout.String()
		if stderr.Len() > 0 {
			output += "\n[stderr]\n" + stderr.String()
		}
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		logger.Debug("Hook stderr: %s", stderr.String())
		output += "\n[stderr]\n" + stderr.String()
	}
	return output, nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	title := ""
	if vars.Step.Known() {
		title = vars.Step.Meta().Title
	}
	return strings.NewReplacer(
		"{{session}}", vars.Session,
		"{{step}}", string(vars.Step),
		"{{title}}", title,
		"{{status}}", vars.Status,
	).Replace(command)
}

// Result is the outcome of one hook run.
type Result struct {
	Hook   string
	Vars   Variables
	Output string
}

// Runner fires configured hooks for session events. Hooks run in the
// background so the wizard never waits on them; Wait blocks until every
// started hook has finished.
type Runner struct {
	cfg     *Config
	workDir string
	ctx     context.Context

	// OnResult, when set, receives every finished hook.
	OnResult func(Result)

	wg sync.WaitGroup
}

// NewRunner creates a runner. A nil cfg yields a runner that does nothing.
func NewRunner(ctx context.Context, cfg *Config, workDir string) *Runner {
	return &Runner{cfg: cfg, workDir: workDir, ctx: ctx}
}

// Attach subscribes the runner to store and returns the detach function.
func (r *Runner) Attach(store *session.Store) (detach func()) {
	return store.Subscribe(r.Handle)
}

// Handle starts the hooks matching ev.
func (r *Runner) Handle(ev session.Event) {
	if r.cfg == nil {
		return
	}
	name, list := r.hooksFor(ev)
	if len(list) == 0 {
		return
	}
	vars := Variables{Session: ev.Session, Step: ev.Step, Status: ev.Action}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for _, h := range list {
			out, err := Execute(r.ctx, h, r.workDir, vars)
			if err != nil {
				logger.Debug("hook %s cancelled: %v", name, err)
				return
			}
			if out = strings.TrimSpace(out); out != "" {
				logger.Info("hook %s (%s): %s", name, vars.Step, out)
			}
			if r.OnResult != nil {
				r.OnResult(Result{Hook: name, Vars: vars, Output: out})
			}
		}
	}()
}

func (r *Runner) hooksFor(ev session.Event) (string, []*HookConfig) {
	h := r.cfg.Hooks
	switch {
	case ev.Kind == session.KindStatus && ev.Action == string(listing.StatusComplete):
		return "step_complete", h.StepComplete
	case ev.Kind == session.KindStatus && ev.Action == string(listing.StatusBlocked):
		return "step_blocked", h.StepBlocked
	case ev.Kind == session.KindSession && ev.Action == "close":
		return "session_close", h.SessionClose
	}
	return "", nil
}

// Wait blocks until every started hook has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
