package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"swnations/nations"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Fetches the raw nations from source. Implementations must not fail: anything that goes wrong
// should degrade to an empty list, see [dataset.LoadOrEmpty].
type Loader func(ctx context.Context, source string) []nations.RawNation

// The consolidated nations produced by a single load. Never mutated once published.
type Snapshot struct {
	ID       uuid.UUID        `json:"id"`
	Source   string           `json:"source"`
	LoadedAt time.Time        `json:"loadedAt"`
	Nations  []nations.Nation `json:"nations"`
}

func (s *Snapshot) Count() int {
	return len(s.Nations)
}

// Holds the snapshot the rankings are computed from. Requests read it concurrently
// while a reload builds a replacement and swaps it in, so readers never see a partial load.
type Database struct {
	source   string
	groups   nations.Groups
	load     Loader
	current  *Snapshot
	mu       sync.RWMutex // Guards access to `current`.
	reloadMu sync.Mutex   // Ensures multiple reloads cannot happen simultaneously.
}

// Creates a [Database] with an empty snapshot. Call [Database.Reload] to populate it.
//
// The merge table is validated here so a misconfigured group never reaches a running server.
func New(source string, groups nations.Groups, load Loader) (*Database, error) {
	if err := groups.Validate(); err != nil {
		return nil, fmt.Errorf("invalid merge groups: %w", err)
	}

	return &Database{
		source: source,
		groups: groups,
		load:   load,
		current: &Snapshot{
			ID:      uuid.Nil,
			Source:  source,
			Nations: []nations.Nation{},
		},
	}, nil
}

func (db *Database) Source() string {
	return db.source
}

// Loads the dataset again, merges it and publishes the result as the current snapshot.
func (db *Database) Reload(ctx context.Context) *Snapshot {
	db.reloadMu.Lock()
	defer db.reloadMu.Unlock()

	start := time.Now()
	raw := db.load(ctx, db.source)

	snap := &Snapshot{
		ID:       uuid.New(),
		Source:   db.source,
		LoadedAt: time.Now().UTC(),
		Nations:  nations.Merge(raw, db.groups),
	}

	db.mu.Lock()
	db.current = snap
	db.mu.Unlock()

	log.WithFields(log.Fields{
		"snapshot": snap.ID,
		"raw":      len(raw),
		"nations":  snap.Count(),
	}).Infof("Published nation snapshot. Took: %s", time.Since(start))

	return snap
}

// The current snapshot. Callers must treat it as read-only.
func (db *Database) Snapshot() *Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.current
}

// Ranks the current snapshot for the given view.
func (db *Database) Rank(view nations.View) (*Snapshot, []nations.DisplayRecord) {
	snap := db.Snapshot()
	return snap, nations.RankView(snap.Nations, view)
}
