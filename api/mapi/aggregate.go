package mapi

import (
	"time"

	"swnations/utils/sets"

	"github.com/samber/lo"
	lop "github.com/samber/lo/parallel"
)

const DATA_SOURCE = "BlueMap Live Markers API"

// A nation built from the territories that claim to belong to it. Serializes to
// the same shape the rankings dataset expects, plus the scraper's own totals.
type NationRecord struct {
	Name          string                `json:"name"`
	Level         *string               `json:"level"`
	Capital       *string               `json:"capital"`
	Territories   *sets.Ordered[string] `json:"territories"`
	TotalChunks   int                   `json:"total_chunks"`
	TotalBalance  float64               `json:"total_balance"`
	TotalPlayers  int                   `json:"total_players"`
	AllPlayers    *sets.Ordered[string] `json:"all_players"`
	UniquePlayers int                   `json:"unique_players"`
}

type Result struct {
	Territories []Territory    `json:"territories"`
	Nations     []NationRecord `json:"nations"`
	Coordinates []Coordinate   `json:"coordinates"`
}

// Builds territories and nations from a list of Lands markers.
//
// Markers sharing a label are folded into the first territory with that name: chunks and balance
// are summed, players are unioned and the player count recomputed from the union.
// A nation only counts a territory the first time it sees that territory's name, so duplicate
// markers never inflate nation totals. Every shape point of every marker is kept as a coordinate.
func Aggregate(markers []Marker) Result {
	res := Result{
		Territories: []Territory{},
		Nations:     []NationRecord{},
		Coordinates: []Coordinate{},
	}

	territoryIdx := make(map[string]int)
	territoryPlayers := make(map[string]*sets.Ordered[string])
	nationIdx := make(map[string]int)

	type parsed struct {
		territory Territory
		ok        bool
	}

	// Parsing is independent per marker, folding below must stay in marker order.
	results := lop.Map(markers, func(m Marker, _ int) parsed {
		t, ok := ParseMarker(m)
		return parsed{t, ok}
	})

	for i, m := range markers {
		t, ok := results[i].territory, results[i].ok
		if !ok {
			continue
		}

		if idx, seen := territoryIdx[t.Name]; seen {
			existing := &res.Territories[idx]
			existing.Chunks += t.Chunks
			existing.Balance += t.Balance

			players := territoryPlayers[t.Name]
			players.AppendSlice(t.Players)
			existing.Players = players.Keys()
			existing.PlayerCount = players.Len()
		} else {
			territoryIdx[t.Name] = len(res.Territories)
			territoryPlayers[t.Name] = sets.OrderedFromSlice(t.Players)
			res.Territories = append(res.Territories, t)
		}

		if t.NationName != nil {
			idx, seen := nationIdx[*t.NationName]
			if !seen {
				idx = len(res.Nations)
				nationIdx[*t.NationName] = idx
				res.Nations = append(res.Nations, NationRecord{
					Name:        *t.NationName,
					Level:       t.NationLevel,
					Capital:     t.NationCapital,
					Territories: sets.NewOrdered[string](0),
					AllPlayers:  sets.NewOrdered[string](0),
				})
			}

			nation := &res.Nations[idx]
			if nation.Territories.Append(t.Name) {
				nation.TotalChunks += t.Chunks
				nation.TotalBalance += t.Balance
				nation.TotalPlayers += t.PlayerCount
				nation.AllPlayers.AppendSlice(t.Players)
			}
		}

		for _, p := range m.Shape {
			res.Coordinates = append(res.Coordinates, p.Coordinate())
		}
	}

	for i := range res.Nations {
		res.Nations[i].UniquePlayers = res.Nations[i].AllPlayers.Len()
	}

	return res
}

// Totals for a scrape, written out as scraping_summary.json.
type Summary struct {
	ScrapingCompleted    string   `json:"scraping_completed"`
	DataSource           string   `json:"data_source"`
	TotalCoordinates     int      `json:"total_coordinates"`
	TotalNations         int      `json:"total_nations"`
	TotalTerritories     int      `json:"total_territories"`
	TotalBalanceServer   float64  `json:"total_balance_server"`
	TotalChunksServer    int      `json:"total_chunks_server"`
	TotalPlayersServer   int      `json:"total_players_server"`
	UniquePlayersServer  int      `json:"unique_players_server"`
	CoordinateValidation bool     `json:"coordinate_validation"`
	FilesCreated         []string `json:"files_created"`
}

// Summarizes the result. The coordinate validation flag is set when the per-territory
// coordinate counts add up to the number of collected coordinates.
func (r Result) Summary(completed time.Time) Summary {
	unique := sets.NewOrdered[string](0)
	for _, t := range r.Territories {
		unique.AppendSlice(t.Players)
	}

	coordCount := lo.SumBy(r.Territories, func(t Territory) int { return t.CoordinateCount })

	return Summary{
		ScrapingCompleted:    completed.Format(time.DateTime),
		DataSource:           DATA_SOURCE,
		TotalCoordinates:     len(r.Coordinates),
		TotalNations:         len(r.Nations),
		TotalTerritories:     len(r.Territories),
		TotalBalanceServer:   lo.SumBy(r.Territories, func(t Territory) float64 { return t.Balance }),
		TotalChunksServer:    lo.SumBy(r.Territories, func(t Territory) int { return t.Chunks }),
		TotalPlayersServer:   lo.SumBy(r.Territories, func(t Territory) int { return t.PlayerCount }),
		UniquePlayersServer:  unique.Len(),
		CoordinateValidation: coordCount == len(r.Coordinates),
		FilesCreated:         ExportFiles(),
	}
}
