package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/listing"
	"github.com/mark3labs/listwiz/internal/tui/theme"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := theme.Current().S()
		out := cmd.OutOrStdout()
		for i, step := range listing.Order() {
			meta := step.Meta()
			fmt.Fprintf(out, "%d. %s %s\n   %s\n",
				i+1,
				s.HeaderTitle.Render(meta.Title),
				s.Muted.Render("("+string(step)+")"),
				meta.Description)
		}
		return nil
	},
}
