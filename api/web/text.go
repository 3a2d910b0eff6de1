package web

import (
	"fmt"
	"io"
	"text/tabwriter"

	"swnations/nations"
)

// Writes the records as an aligned plain text table, used by the CLI.
func WriteTable(w io.Writer, view nations.View, records []nations.DisplayRecord) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", view.Title(), len(records)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNATION\tLEVEL\tSTATS\t"+primaryHeader(view))
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Rank, r.Name, r.LevelOrPlaceholder(), r.StatLine(), r.Primary)
	}

	return tw.Flush()
}

func primaryHeader(view nations.View) string {
	switch view.Metric() {
	case nations.MetricSize:
		return "CHUNKS"
	case nations.MetricPopulation:
		return "PLAYERS"
	default:
		return "BALANCE"
	}
}
