// Reads the nations dataset, either from disk or over HTTP.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"swnations/nations"
	"swnations/utils"
	"swnations/utils/requests"

	log "github.com/sirupsen/logrus"
)

// Well-known relative path of the dataset, as written by the markers scraper.
const DEFAULT_SOURCE = "nations_comprehensive.json"

var ErrMalformedRecord = errors.New("malformed nation record")

// Mirrors [nations.RawNation] with pointers so we can tell a missing field from a zero one.
type record struct {
	Name         *string   `json:"name"`
	Level        *string   `json:"level"`
	Capital      *string   `json:"capital"`
	Territories  *[]string `json:"territories"`
	TotalChunks  *int      `json:"total_chunks"`
	TotalBalance *float64  `json:"total_balance"`
	AllPlayers   *[]string `json:"all_players"`
}

func (r record) missing() []string {
	var fields []string
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		fields = append(fields, "name")
	}
	if r.Territories == nil {
		fields = append(fields, "territories")
	}
	if r.TotalChunks == nil {
		fields = append(fields, "total_chunks")
	}
	if r.TotalBalance == nil {
		fields = append(fields, "total_balance")
	}
	if r.AllPlayers == nil {
		fields = append(fields, "all_players")
	}

	return fields
}

func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func read(ctx context.Context, source string) ([]byte, error) {
	if IsRemote(source) {
		return requests.Get(ctx, source)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(source)
}

// Decodes a JSON array of nation records. The document as a whole must be an array,
// but individual records that are missing required fields (or have the wrong types) are skipped.
// Every skipped record is reported in the second return value wrapping [ErrMalformedRecord].
func Decode(data []byte) ([]nations.RawNation, []error, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, fmt.Errorf("dataset is not a JSON array of nations: %w", err)
	}

	out := make([]nations.RawNation, 0, len(items))

	var skipped []error
	for i, item := range items {
		var r record
		if err := json.Unmarshal(item, &r); err != nil {
			skipped = append(skipped, fmt.Errorf("%w at index %d: %v", ErrMalformedRecord, i, err))
			continue
		}

		if missing := r.missing(); len(missing) > 0 {
			skipped = append(skipped, fmt.Errorf("%w at index %d: missing %s", ErrMalformedRecord, i, strings.Join(missing, ", ")))
			continue
		}

		out = append(out, nations.RawNation{
			Name:         *r.Name,
			Level:        r.Level,
			Capital:      r.Capital,
			Territories:  *r.Territories,
			TotalChunks:  *r.TotalChunks,
			TotalBalance: *r.TotalBalance,
			AllPlayers:   *r.AllPlayers,
		})
	}

	return out, skipped, nil
}

// Reads and decodes the dataset at source, which is either a local path or an http(s) URL.
// Skipped records are logged as warnings.
func Load(ctx context.Context, source string) ([]nations.RawNation, error) {
	data, err := read(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("error loading nation data from %s: %w", source, err)
	}

	records, skipped, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error loading nation data from %s: %w", source, err)
	}

	for _, e := range skipped {
		log.WithField("source", source).Warn(e)
	}

	if len(records) > 0 {
		log.Debugf("First nation:\n%s", utils.Prettify(records[0]))
	}

	log.WithField("source", source).Infof("Loaded %d nations", len(records))
	return records, nil
}

// Like [Load], but any failure is logged and degrades to an empty (non-nil) list.
func LoadOrEmpty(ctx context.Context, source string) []nations.RawNation {
	records, err := Load(ctx, source)
	if err != nil {
		log.Errorf("Error loading nation data: %v", err)
		return []nations.RawNation{}
	}

	return records
}
