package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"reviewharvest/lib/scrapers/reviews"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Lists the review sites reviewharvest can collect from.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Source", "Name", "Base URL"})
		for _, source := range reviews.Sources() {
			profile := source.Profile()
			t.AppendRow(table.Row{string(source), source.Display(), profile.BaseUrl})
		}
		t.Render()
	},
}
