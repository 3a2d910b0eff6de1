package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"swnations/api/mapi"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	MARKERS_REPORT_FILE = "markers.txt"
	CHUNKS_REPORT_FILE  = "chunks.txt"
	BALANCE_REPORT_FILE = "balance.txt"
)

func newReportCmd(a *app) *cobra.Command {
	var url, dir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Dump every map marker as text, with per-nation chunk and balance totals",
		Long: fmt.Sprintf(`Fetches every marker set from the live map and writes:

  %s  label, position and detail text of each marker
  %s   total chunks per nation
  %s  total balance per nation`, MARKERS_REPORT_FILE, CHUNKS_REPORT_FILE, BALANCE_REPORT_FILE),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = a.cfg.MarkersURL
			}
			if dir == "" {
				dir = a.cfg.ExportDir
			}

			res, err := mapi.FetchMarkers(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("error fetching markers from %s: %w", url, err)
			}

			markers := res.AllMarkers()
			if len(markers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no valid markers found.")
				return nil
			}

			n, err := writeReports(dir, markers)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "process complete! %d markers saved in %s.\n", n, filepath.Join(dir, MARKERS_REPORT_FILE))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "markers.json URL (defaults to MARKERS_URL)")
	cmd.Flags().StringVar(&dir, "out", "", "Output directory (defaults to EXPORT_DIR)")
	return cmd
}

func writeReports(dir string, markers []mapi.Marker) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	var report bytes.Buffer
	n, err := mapi.WriteReport(&report, markers)
	if err != nil {
		return 0, err
	}

	var chunks, balances strings.Builder
	for _, t := range mapi.NationTotals(markers) {
		chunks.WriteString(t.ChunksLine() + "\n")
		balances.WriteString(t.BalanceLine() + "\n")
	}

	errs := errors.Join(
		os.WriteFile(filepath.Join(dir, MARKERS_REPORT_FILE), report.Bytes(), 0o644),
		os.WriteFile(filepath.Join(dir, CHUNKS_REPORT_FILE), []byte(chunks.String()), 0o644),
		os.WriteFile(filepath.Join(dir, BALANCE_REPORT_FILE), []byte(balances.String()), 0o644),
	)
	if errs != nil {
		return n, errs
	}

	log.WithField("dir", dir).Infof("Wrote reports for %d markers", n)
	return n, nil
}
