package mapi

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	NATIONS_FILE     = "nations_comprehensive.json"
	TERRITORIES_FILE = "territories_data.json"
	COORDINATES_FILE = "coordinates.csv"
	BALANCES_FILE    = "balances.csv"
	POPULATION_FILE  = "population_detailed.csv"
	CHUNKS_FILE      = "chunks_data.csv"
	SUMMARY_FILE     = "scraping_summary.json"
)

// Every file written by [Export], in the order they are listed in the summary.
func ExportFiles() []string {
	return []string{
		COORDINATES_FILE, NATIONS_FILE, TERRITORIES_FILE,
		BALANCES_FILE, POPULATION_FILE, CHUNKS_FILE, SUMMARY_FILE,
	}
}

// Writes the scrape result into dir as JSON and CSV files.
// A failure writing one file does not stop the others, all errors are joined and returned.
func Export(dir string, res Result, completed time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating export directory %s: %w", dir, err)
	}

	summary := res.Summary(completed)
	writers := map[string]func() ([]byte, error){
		COORDINATES_FILE: func() ([]byte, error) { return coordinatesCSV(res.Coordinates) },
		NATIONS_FILE:     func() ([]byte, error) { return json.MarshalIndent(res.Nations, "", "  ") },
		TERRITORIES_FILE: func() ([]byte, error) { return json.MarshalIndent(res.Territories, "", "  ") },
		BALANCES_FILE:    func() ([]byte, error) { return balancesCSV(res.Territories) },
		POPULATION_FILE:  func() ([]byte, error) { return populationCSV(res.Territories) },
		CHUNKS_FILE:      func() ([]byte, error) { return chunksCSV(res.Territories) },
		SUMMARY_FILE:     func() ([]byte, error) { return json.MarshalIndent(summary, "", "  ") },
	}

	var errs []error
	for _, name := range ExportFiles() {
		data, err := writers[name]()
		if err == nil {
			err = writeFile(filepath.Join(dir, name), data)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("error exporting %s: %w", name, err))
			continue
		}

		log.WithField("file", name).Debug("exported scrape data")
	}

	log.WithFields(log.Fields{
		"dir":         dir,
		"nations":     summary.TotalNations,
		"territories": summary.TotalTerritories,
		"coordinates": summary.TotalCoordinates,
	}).Info("finished exporting scrape data")

	return errors.Join(errs...)
}

// Writes to a temp file first, then replaces the real file once it is fully written.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	w.Write(header)
	w.WriteAll(rows) // flushes

	return buf.Bytes(), w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func coordinatesCSV(coords []Coordinate) ([]byte, error) {
	rows := make([][]string, len(coords))
	for i, c := range coords {
		rows[i] = []string{formatFloat(c.X), formatFloat(c.Y), formatFloat(c.Z)}
	}

	return writeCSV([]string{"X", "Y", "Z"}, rows)
}

func balancesCSV(territories []Territory) ([]byte, error) {
	rows := make([][]string, len(territories))
	for i, t := range territories {
		rows[i] = []string{
			t.Name, deref(t.NationName), formatFloat(t.Balance),
			deref(t.Level), strconv.Itoa(t.Chunks),
		}
	}

	return writeCSV([]string{"Territory", "Nation", "Balance", "Level", "Chunks"}, rows)
}

func populationCSV(territories []Territory) ([]byte, error) {
	rows := make([][]string, len(territories))
	for i, t := range territories {
		rows[i] = []string{
			t.Name, deref(t.NationName),
			strconv.Itoa(t.PlayerCount), strings.Join(t.Players, "; "),
		}
	}

	return writeCSV([]string{"Territory", "Nation", "Player_Count", "Players"}, rows)
}

func chunksCSV(territories []Territory) ([]byte, error) {
	rows := make([][]string, len(territories))
	for i, t := range territories {
		rows[i] = []string{
			t.Name, deref(t.NationName), strconv.Itoa(t.Chunks),
			strconv.Itoa(t.TerritoryArea), strconv.Itoa(t.CoordinateCount),
		}
	}

	return writeCSV([]string{"Territory", "Nation", "Chunks", "Territory_Area", "Coordinates_Count"}, rows)
}
