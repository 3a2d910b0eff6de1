package cmd

import (
	"fmt"
	"time"

	"swnations/api/mapi"
	"swnations/utils"

	"github.com/spf13/cobra"
)

func newScrapeCmd(a *app) *cobra.Command {
	var url, dir string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape territories from the live map and export the dataset",
		Long: `Fetches the Lands markers from the live map, aggregates them into territories and nations,
then writes the nations dataset alongside CSV exports and a summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = a.cfg.MarkersURL
			}
			if dir == "" {
				dir = a.cfg.ExportDir
			}

			res, err := mapi.Scrape(cmd.Context(), url)
			if err != nil {
				return err
			}

			completed := time.Now()
			if err := mapi.Export(dir, res, completed); err != nil {
				return err
			}

			s := res.Summary(completed)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "FINAL STATISTICS:")
			fmt.Fprintln(out, utils.HumanizedSprintf("  • %d coordinate points", s.TotalCoordinates))
			fmt.Fprintln(out, utils.HumanizedSprintf("  • %d nations", s.TotalNations))
			fmt.Fprintln(out, utils.HumanizedSprintf("  • %d territories/cities", s.TotalTerritories))
			fmt.Fprintln(out, utils.HumanizedSprintf("  • $%.2f total server economy", s.TotalBalanceServer))
			fmt.Fprintln(out, utils.HumanizedSprintf("  • %d total claimed chunks", s.TotalChunksServer))
			fmt.Fprintln(out, utils.HumanizedSprintf("  • %d total players", s.TotalPlayersServer))

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "markers.json URL (defaults to MARKERS_URL)")
	cmd.Flags().StringVar(&dir, "out", "", "Output directory (defaults to EXPORT_DIR)")
	return cmd
}
