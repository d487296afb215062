package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/tui/theme"
)

var locationsCmd = &cobra.Command{
	Use:   "locations [term]",
	Short: "Search the development catalog",
	Long: `Search known developments by name or address. Without a term every
development is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		term := strings.Join(args, " ")
		found := cat.SearchLocations(term)

		out := cmd.OutOrStdout()
		if len(found) == 0 {
			fmt.Fprintf(out, "No developments match %q.\n", term)
			return nil
		}
		s := theme.Current().S()
		for _, loc := range found {
			fmt.Fprintf(out, "%s\n  %s\n  %s\n",
				s.HeaderTitle.Render(loc.DevelopmentName),
				loc.Address,
				s.Muted.Render(fmt.Sprintf("%s / %s / %s, %s", loc.PropertyType, loc.PropertySubType, loc.PropertyUnitType, loc.Tenure)))
		}
		return nil
	},
}
