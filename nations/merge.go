package nations

import (
	"swnations/utils/sets"

	"github.com/samber/lo"
)

type accumulator struct {
	nation      Nation
	territories *sets.Ordered[string]
	players     *sets.Ordered[string]
}

func newAggregate(label string) *accumulator {
	return &accumulator{
		nation: Nation{
			Name:  label,
			Level: strPtr(AggregateLevel),
		},
		territories: sets.NewOrdered[string](0),
		players:     sets.NewOrdered[string](0),
	}
}

func newPassthrough(r RawNation) *accumulator {
	return &accumulator{
		nation: Nation{
			Name:         r.Name,
			Level:        clonePtr(r.Level),
			Capital:      clonePtr(r.Capital),
			TotalChunks:  r.TotalChunks,
			TotalBalance: r.TotalBalance,
		},
		territories: sets.OrderedFromSlice(r.Territories),
		players:     sets.OrderedFromSlice(r.AllPlayers),
	}
}

func (acc *accumulator) fold(r RawNation) {
	acc.nation.TotalChunks += r.TotalChunks
	acc.nation.TotalBalance += r.TotalBalance
	acc.nation.Members = append(acc.nation.Members, r.Name)
	acc.territories.AppendSlice(r.Territories)
	acc.players.AppendSlice(r.AllPlayers)
}

func (acc *accumulator) materialize() Nation {
	n := acc.nation
	n.Territories = acc.territories.Keys()
	n.AllPlayers = acc.players.Keys()
	n.UniquePlayers = acc.players.Len()

	return n
}

// Folds every raw nation listed in groups into a synthetic nation named after its group
// and passes everything else through unchanged (apart from deduplicating territories and players).
//
// Aggregates are only created once a member is actually present, and take the position of their first member.
// Chunks and balances are summed, territories and players are unioned so shared entries count once.
// If a non-member name shows up more than once, the first record wins and later ones are ignored.
//
// The input is never modified.
func Merge(raw []RawNation, groups Groups) []Nation {
	lookup := groups.Lookup()

	ordered := make([]*accumulator, 0, len(raw))
	aggregates := make(map[string]*accumulator, len(groups))
	passed := sets.New[string]()

	for _, r := range raw {
		if label, ok := lookup[r.Name]; ok {
			acc, exists := aggregates[label]
			if !exists {
				acc = newAggregate(label)
				aggregates[label] = acc
				ordered = append(ordered, acc)
			}

			acc.fold(r)
			continue
		}

		if passed.Has(r.Name) {
			continue
		}

		passed.Append(r.Name)
		ordered = append(ordered, newPassthrough(r))
	}

	return lo.Map(ordered, func(acc *accumulator, _ int) Nation {
		return acc.materialize()
	})
}
