package nations

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(name string, chunks int, bal float64, territories, players []string) RawNation {
	return RawNation{
		Name:         name,
		Territories:  territories,
		TotalChunks:  chunks,
		TotalBalance: bal,
		AllPlayers:   players,
	}
}

var testGroups = Groups{
	{Label: "Northern Pact", Members: []string{"Alpha", "Beta", "Ghost"}},
	{Label: "Southern League", Members: []string{"Gamma", "Delta"}},
}

func sampleRaw() []RawNation {
	return []RawNation{
		raw("Alpha", 10, 100, []string{"a1", "shared"}, []string{"p1", "p2"}),
		raw("Solo", 5, -20, []string{"s1", "s1"}, []string{"p9", "p9"}),
		raw("Beta", 7, 50.5, []string{"b1", "shared"}, []string{"p2", "p3"}),
		raw("Gamma", 3, 0, []string{"g1"}, []string{}),
		raw("Lonely", 0, 0, nil, nil),
	}
}

func byName(list []Nation) map[string]Nation {
	return lo.KeyBy(list, func(n Nation) string { return n.Name })
}

func TestMergeEndToEndScenario(t *testing.T) {
	input := []RawNation{
		raw("Bardonia", 100, 5000, []string{"a", "b"}, []string{"p1", "p2"}),
		raw("Varaxis-Imperium", 50, 3000, []string{"b", "c"}, []string{"p2", "p3"}),
	}

	merged := Merge(input, DefaultGroups())
	require.Len(t, merged, 1)

	empire := merged[0]
	assert.Equal(t, "Eternal Empire of Bardonia", empire.Name)
	assert.Equal(t, AggregateLevel, *empire.Level)
	assert.Equal(t, 150, empire.TotalChunks)
	assert.Equal(t, 8000.0, empire.TotalBalance)
	assert.Equal(t, []string{"a", "b", "c"}, empire.Territories)
	assert.Equal(t, 3, empire.UniquePlayers)
	assert.Equal(t, []string{"Bardonia", "Varaxis-Imperium"}, empire.Members)
}

func TestMergeOutputShape(t *testing.T) {
	merged := Merge(sampleRaw(), testGroups)

	// Solo, Lonely + two groups with present members.
	names := lo.Map(merged, func(n Nation, _ int) string { return n.Name })
	assert.Equal(t, []string{"Northern Pact", "Solo", "Southern League", "Lonely"}, names)

	nations := byName(merged)

	north := nations["Northern Pact"]
	assert.Equal(t, 17, north.TotalChunks)
	assert.Equal(t, 150.5, north.TotalBalance)
	assert.Equal(t, []string{"a1", "shared", "b1"}, north.Territories)
	assert.Equal(t, 3, north.UniquePlayers, "p2 is shared and must count once")
	assert.Equal(t, []string{"Alpha", "Beta"}, north.Members, "Ghost never appeared")

	solo := nations["Solo"]
	assert.Nil(t, solo.Level)
	assert.Equal(t, []string{"s1"}, solo.Territories)
	assert.Equal(t, 1, solo.UniquePlayers)
	assert.Empty(t, solo.Members)

	lonely := nations["Lonely"]
	assert.NotNil(t, lonely.Territories)
	assert.Empty(t, lonely.Territories)
	assert.Zero(t, lonely.UniquePlayers)
}

func TestMergePreservesTotals(t *testing.T) {
	input := sampleRaw()
	merged := Merge(input, testGroups)

	rawChunks := lo.SumBy(input, func(r RawNation) int { return r.TotalChunks })
	rawBal := lo.SumBy(input, func(r RawNation) float64 { return r.TotalBalance })

	assert.Equal(t, rawChunks, lo.SumBy(merged, func(n Nation) int { return n.TotalChunks }))
	assert.InDelta(t, rawBal, lo.SumBy(merged, func(n Nation) float64 { return n.TotalBalance }), 1e-9)
}

func TestMergeIsOrderIndependent(t *testing.T) {
	input := sampleRaw()
	expected := byName(Merge(input, testGroups))

	rng := rand.New(rand.NewSource(42))
	for range 20 {
		shuffled := make([]RawNation, len(input))
		copy(shuffled, input)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		actual := byName(Merge(shuffled, testGroups))
		require.Len(t, actual, len(expected))

		for name, want := range expected {
			got, ok := actual[name]
			require.True(t, ok, "missing %s", name)

			assert.Equal(t, want.TotalChunks, got.TotalChunks, name)
			assert.InDelta(t, want.TotalBalance, got.TotalBalance, 1e-9, name)
			assert.ElementsMatch(t, want.Territories, got.Territories, name)
			assert.Equal(t, want.UniquePlayers, got.UniquePlayers, name)
		}
	}
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge(nil, DefaultGroups()))
	assert.Empty(t, Merge([]RawNation{}, nil))
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	level := "Kingdom"
	input := []RawNation{
		{Name: "Alpha", Level: &level, Territories: []string{"x", "x"}, AllPlayers: []string{"p"}},
	}

	merged := Merge(input, nil)
	*merged[0].Level = "Changed"
	merged[0].Territories[0] = "changed"

	assert.Equal(t, "Kingdom", level)
	assert.Equal(t, []string{"x", "x"}, input[0].Territories)
}

func TestMergeDuplicatePassthroughFirstWins(t *testing.T) {
	input := []RawNation{
		raw("Solo", 1, 10, nil, nil),
		raw("Solo", 99, 990, nil, nil),
	}

	merged := Merge(input, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, 1, merged[0].TotalChunks)
}

func TestMergeFirstGroupWinsForUnvalidatedTable(t *testing.T) {
	groups := Groups{
		{Label: "First", Members: []string{"Alpha"}},
		{Label: "Second", Members: []string{"Alpha", "Beta"}},
	}

	merged := byName(Merge([]RawNation{raw("Alpha", 1, 1, nil, nil), raw("Beta", 2, 2, nil, nil)}, groups))
	assert.Equal(t, 1, merged["First"].TotalChunks)
	assert.Equal(t, 2, merged["Second"].TotalChunks)
}

func TestMergeRecordNamedAfterLabelJoinsGroup(t *testing.T) {
	groups := Groups{{Label: "Pact", Members: []string{"Alpha"}}}
	input := []RawNation{
		raw("Pact", 5, 50, []string{"old"}, []string{"p1"}),
		raw("Alpha", 1, 10, []string{"a1"}, []string{"p2"}),
	}

	merged := Merge(input, groups)
	require.Len(t, merged, 1)

	pact := merged[0]
	assert.Equal(t, "Pact", pact.Name)
	assert.Equal(t, AggregateLevel, *pact.Level)
	assert.Equal(t, 6, pact.TotalChunks)
	assert.Equal(t, 60.0, pact.TotalBalance)
	assert.Equal(t, []string{"old", "a1"}, pact.Territories)
	assert.Equal(t, []string{"Pact", "Alpha"}, pact.Members)
}
