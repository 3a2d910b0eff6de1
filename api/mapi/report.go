package mapi

import (
	"context"
	"fmt"
	"io"
	"strings"

	"swnations/utils"

	log "github.com/sirupsen/logrus"
)

const reportSeparator = "----------------------------------------"

// Fetches the live markers and aggregates the Lands territories from them.
func Scrape(ctx context.Context, url string) (Result, error) {
	res, err := FetchMarkers(ctx, url)
	if err != nil {
		return Result{}, fmt.Errorf("error fetching markers from %s: %w", url, err)
	}

	markers, err := res.LandsMarkers()
	if err != nil {
		return Result{}, err
	}

	log.WithField("markers", len(markers)).Info("found potential territories")

	result := Aggregate(markers)
	log.WithFields(log.Fields{
		"territories": len(result.Territories),
		"nations":     len(result.Nations),
		"coordinates": len(result.Coordinates),
	}).Info("aggregated markers")

	return result, nil
}

// Writes a plain text dump of every marker: its label, position and the detail text with markup removed.
// Returns how many markers were written.
func WriteReport(w io.Writer, markers []Marker) (int, error) {
	blocks := make([]string, 0, len(markers))
	for _, m := range markers {
		p := m.Position
		blocks = append(blocks, strings.Join([]string{
			fmt.Sprintf("=== %s ===", m.Label),
			fmt.Sprintf("Position: X=%s, Y=%s, Z=%s", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)),
			"Details:\n" + DetailText(m.Detail),
			"\n" + reportSeparator + "\n",
		}, "\n"))
	}

	if len(blocks) == 0 {
		return 0, nil
	}

	_, err := io.WriteString(w, strings.Join(blocks, "\n"))
	return len(blocks), err
}

type NationTotal struct {
	Name    string
	Chunks  int
	Balance float64
}

// Sums chunks and balance of every marker that names a nation, in the order nations are first seen.
// Unlike [Aggregate], duplicate markers are not collapsed, so this reflects the raw map output.
func NationTotals(markers []Marker) []NationTotal {
	var totals []NationTotal
	idx := make(map[string]int)

	for _, m := range markers {
		t, ok := ParseMarker(m)
		if !ok || t.NationName == nil {
			continue
		}

		i, seen := idx[*t.NationName]
		if !seen {
			i = len(totals)
			idx[*t.NationName] = i
			totals = append(totals, NationTotal{Name: *t.NationName})
		}

		totals[i].Chunks += t.Chunks
		totals[i].Balance += t.Balance
	}

	return totals
}

func (t NationTotal) ChunksLine() string {
	return fmt.Sprintf("%s: %d chunks", t.Name, t.Chunks)
}

func (t NationTotal) BalanceLine() string {
	return t.Name + ": " + utils.HumanizedSprintf("$%.2f", t.Balance)
}
