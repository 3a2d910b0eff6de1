package nations

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"swnations/utils"

	"github.com/samber/lo"
)

type Metric int

const (
	MetricWealth Metric = iota
	MetricSize
	MetricPopulation
)

func (m Metric) String() string {
	switch m {
	case MetricWealth:
		return "wealth"
	case MetricSize:
		return "size"
	case MetricPopulation:
		return "population"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Separator placed between stats when they are shown on one line.
const StatSeparator = " • "

// A ranked row ready for presentation.
type DisplayRecord struct {
	Rank    int       `json:"rank"`
	Name    string    `json:"name"`
	Level   *string   `json:"level"`
	Primary string    `json:"primary"`
	Stats   [3]string `json:"stats"`
	Value   float64   `json:"value"` // The raw sort key the record was ranked by.
}

func (r DisplayRecord) LevelOrPlaceholder() string {
	return levelOrPlaceholder(r.Level)
}

func (r DisplayRecord) StatLine() string {
	return strings.Join(r.Stats[:], StatSeparator)
}

type ranking struct {
	key     func(n Nation) float64
	primary func(n Nation) string
	stats   func(n Nation) [3]string
}

func cities(n Nation) string {
	return fmt.Sprintf("%d cities", n.NumTerritories())
}

func chunks(n Nation) string {
	return utils.GroupDigits(n.TotalChunks) + " chunks"
}

func players(n Nation) string {
	return fmt.Sprintf("%d players", n.UniquePlayers)
}

func balance(n Nation) string {
	return utils.FormatCurrency(n.TotalBalance)
}

var rankings = map[Metric]ranking{
	MetricWealth: {
		key:     func(n Nation) float64 { return n.TotalBalance },
		primary: balance,
		stats: func(n Nation) [3]string {
			return [3]string{cities(n), chunks(n), players(n)}
		},
	},
	MetricSize: {
		key: func(n Nation) float64 { return float64(n.TotalChunks) },
		primary: func(n Nation) string {
			return utils.GroupDigits(n.TotalChunks)
		},
		stats: func(n Nation) [3]string {
			return [3]string{cities(n), balance(n), players(n)}
		},
	},
	MetricPopulation: {
		key: func(n Nation) float64 { return float64(n.UniquePlayers) },
		primary: func(n Nation) string {
			return utils.GroupDigits(n.UniquePlayers)
		},
		stats: func(n Nation) [3]string {
			return [3]string{cities(n), chunks(n), balance(n)}
		},
	},
}

// Ranks nations by the given metric. Nations whose metric is not positive are left out entirely,
// the rest are sorted descending and numbered from 1. Ties keep their input order.
//
// The input slice is not modified. An unknown metric ranks nothing.
func Rank(list []Nation, m Metric) []DisplayRecord {
	r, ok := rankings[m]
	if !ok {
		return []DisplayRecord{}
	}

	ranked := lo.Filter(list, func(n Nation, _ int) bool {
		return r.key(n) > 0
	})

	slices.SortStableFunc(ranked, func(a, b Nation) int {
		return cmp.Compare(r.key(b), r.key(a))
	})

	return lo.Map(ranked, func(n Nation, i int) DisplayRecord {
		return DisplayRecord{
			Rank:    i + 1,
			Name:    n.Name,
			Level:   clonePtr(n.Level),
			Primary: r.primary(n),
			Stats:   r.stats(n),
			Value:   r.key(n),
		}
	})
}
