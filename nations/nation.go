package nations

// The level given to every synthetic nation produced by merging a group.
const AggregateLevel = "Empire"

// Placeholder shown in place of a missing level.
const LevelPlaceholder = "—"

// A single nation record as it appears in the dataset.
type RawNation struct {
	Name         string   `json:"name"`
	Level        *string  `json:"level"`
	Capital      *string  `json:"capital,omitempty"`
	Territories  []string `json:"territories"`
	TotalChunks  int      `json:"total_chunks"`
	TotalBalance float64  `json:"total_balance"`
	AllPlayers   []string `json:"all_players"`
}

// A nation after merging. Territories and AllPlayers are deduplicated (first-seen order)
// and UniquePlayers is always the size of AllPlayers.
//
// Members is only set for aggregates and lists the raw nations folded into it.
type Nation struct {
	Name          string   `json:"name"`
	Level         *string  `json:"level"`
	Capital       *string  `json:"capital,omitempty"`
	Territories   []string `json:"territories"`
	TotalChunks   int      `json:"total_chunks"`
	TotalBalance  float64  `json:"total_balance"`
	AllPlayers    []string `json:"all_players"`
	UniquePlayers int      `json:"unique_players"`
	Members       []string `json:"members,omitempty"`
}

func (n Nation) NumTerritories() int {
	return len(n.Territories)
}

// Returns the level, or [LevelPlaceholder] when there is none.
func levelOrPlaceholder(level *string) string {
	if level == nil || *level == "" {
		return LevelPlaceholder
	}

	return *level
}

func strPtr(s string) *string {
	return &s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}

	return strPtr(*s)
}
