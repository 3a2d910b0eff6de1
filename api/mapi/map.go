package mapi

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"swnations/utils/requests"

	"github.com/samber/lo"
)

const MAP_DOMAIN = "https://map.stoneworks.gg/abex1"
const MARKERS_URL = MAP_DOMAIN + "/maps/abexilas/live/markers.json"

// The marker set that the Lands plugin publishes territory claims under.
const LANDS_MARKER_SET = "me.angeschossen.lands"

// Height used for shape points that do not carry their own Y value.
const DEFAULT_SHAPE_Y = 62.0

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type ShapePoint struct {
	X float64  `json:"x"`
	Y *float64 `json:"y,omitempty"`
	Z float64  `json:"z"`
}

func (p ShapePoint) Coordinate() Coordinate {
	y := DEFAULT_SHAPE_Y
	if p.Y != nil {
		y = *p.Y
	}

	return Coordinate{X: p.X, Y: y, Z: p.Z}
}

type Coordinate struct {
	X, Y, Z float64
}

type Marker struct {
	Type     string       `json:"type"`
	Label    string       `json:"label"`
	Detail   string       `json:"detail"`
	Position Position     `json:"position"`
	Shape    []ShapePoint `json:"shape"`
}

type MarkerSet struct {
	Label   string            `json:"label"`
	Markers map[string]Marker `json:"markers"`
}

// Markers sorted by their ID so that anything derived from them is stable between runs.
func (s MarkerSet) Sorted() []Marker {
	ids := lo.Keys(s.Markers)
	slices.Sort(ids)

	return lo.Map(ids, func(id string, _ int) Marker {
		return s.Markers[id]
	})
}

// Raw BlueMap markers file. Values are decoded lazily since not every entry is guaranteed to be a marker set.
type MarkersResponse map[string]json.RawMessage

func FetchMarkers(ctx context.Context, url string) (MarkersResponse, error) {
	return requests.JsonGet[MarkersResponse](ctx, url)
}

func (r MarkersResponse) MarkerSet(id string) (MarkerSet, error) {
	var set MarkerSet

	raw, ok := r[id]
	if !ok {
		return set, fmt.Errorf("marker set %q not found", id)
	}

	if err := json.Unmarshal(raw, &set); err != nil {
		return set, fmt.Errorf("marker set %q is malformed: %w", id, err)
	}

	return set, nil
}

// The territory markers published by the Lands plugin.
func (r MarkersResponse) LandsMarkers() ([]Marker, error) {
	set, err := r.MarkerSet(LANDS_MARKER_SET)
	if err != nil {
		return nil, err
	}

	return set.Sorted(), nil
}

// Every marker from every set that decodes, ordered by set ID then marker ID.
func (r MarkersResponse) AllMarkers() []Marker {
	ids := lo.Keys(r)
	slices.Sort(ids)

	var out []Marker
	for _, id := range ids {
		set, err := r.MarkerSet(id)
		if err != nil {
			continue
		}

		out = append(out, set.Sorted()...)
	}

	return out
}
