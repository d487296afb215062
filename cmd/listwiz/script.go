package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/scenario"
	"github.com/mark3labs/listwiz/internal/session"
	"github.com/mark3labs/listwiz/internal/tui/theme"
)

var scriptFlags struct {
	json  bool
	watch bool
}

var scriptCmd = &cobra.Command{
	Use:   "script <file.yml>",
	Short: "Run a scripted wizard session",
	Long: `Run the commands of a YAML scenario against a fresh session and print
the transcript. The run stops at the first command error. Expectations in
the scenario are checked against the final state.

Example scenario:

  name: price check
  strict: true
  steps:
    - listing-type propertyCategory=residential listingPurpose=sale
    - next
  expect:
    step: location`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().BoolVar(&scriptFlags.json, "json", false, "Print the full report as JSON")
	scriptCmd.Flags().BoolVarP(&scriptFlags.watch, "watch", "w", false, "Run again whenever the scenario file changes")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := loadCatalog(); err != nil {
		return err
	}

	j, err := openJournal(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer closeJournal(j)
	}

	runner, err := startHooks(cmd.Context())
	if err != nil {
		return err
	}

	var sessionID string
	opts := scenario.Options{
		StrictValidation: cfg.StrictValidation,
		SampleBatch:      cfg.SampleBatch,
		Observe: func(ev session.Event) {
			sessionID = ev.Session
			if j != nil {
				j.Record(ev)
			}
			runner.Handle(ev)
		},
	}

	out := cmd.OutOrStdout()
	if scriptFlags.watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return scenario.Watch(ctx, args[0], opts, func(report *scenario.Report, err error) {
			runner.Wait()
			if report != nil {
				_ = printReport(out, report)
			}
			if err != nil {
				fmt.Fprintf(out, "\n%s\n", theme.Current().S().FieldError.Render("scenario failed: "+err.Error()))
			}
			fmt.Fprintln(out, theme.Current().S().Muted.Render("\nwaiting for changes..."))
		})
	}

	report, runErr := scenario.Run(cmd.Context(), args[0], opts)
	runner.Wait()
	if report != nil {
		if err := printReport(out, report); err != nil {
			return err
		}
	}

	if j != nil && sessionID != "" && !scriptFlags.json {
		events, err := j.History(cmd.Context(), sessionID)
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		fmt.Fprintf(out, "\nJournal: %d events\n", len(events))
		for _, ev := range events {
			fmt.Fprintf(out, "  %s %s:%s %s\n", ev.ID, ev.Kind, ev.Action, ev.Step)
		}
	}

	if runErr != nil {
		return fmt.Errorf("scenario failed: %w", runErr)
	}
	return nil
}

func printReport(w io.Writer, r *scenario.Report) error {
	if !scriptFlags.json {
		printTranscript(w, r)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func printTranscript(w io.Writer, r *scenario.Report) {
	s := theme.Current().S()
	if r.Name != "" {
		fmt.Fprintln(w, s.HeaderTitle.Render(r.Name))
	}
	for i, e := range r.Transcript {
		fmt.Fprintf(w, "%s %s\n", s.Muted.Render(fmt.Sprintf("%2d.", i+1)), s.HintKey.Render(e.Command))
		for _, line := range strings.Split(e.Message, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if e.Banner != "" {
			fmt.Fprintf(w, "    %s\n", s.FieldError.Render(e.Banner))
		}
	}
	step := r.View.Step
	fmt.Fprintf(w, "\n%s %s (%s)\n",
		lipgloss.NewStyle().Bold(true).Render("Final step:"),
		step.Meta().Title,
		r.State.Status(step))
}
