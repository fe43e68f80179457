package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/cv-site/internal/theme"
	"github.com/spf13/cobra"
)

var themesJSON bool

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the registered themes",
	Long:  "Print every registered theme in picker order with its mode, primary color and logo.",
	Args:  cobra.NoArgs,
	RunE:  runThemes,
}

func init() {
	themesCmd.Flags().BoolVar(&themesJSON, "json", false, "Print the resolved themes as JSON")
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, _ []string) error {
	themes := theme.All()

	if themesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tMODE\tPRIMARY\tLOGO")
	for _, th := range themes {
		logo := th.LogoImagePath
		if logo == "" {
			logo = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", th.Key, th.DisplayName, th.Palette.Mode, th.Palette.Primary, logo)
	}
	return tw.Flush()
}
