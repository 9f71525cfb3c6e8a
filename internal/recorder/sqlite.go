package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists resolved races to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and ensures the schema.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so audit reads don't block resolution writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS weighted_races (
			id            TEXT PRIMARY KEY,
			race_id       TEXT NOT NULL UNIQUE,
			race_type     TEXT NOT NULL,
			seed_material TEXT NOT NULL,
			entrants      TEXT NOT NULL,
			results       TEXT NOT NULL,
			deltas        TEXT NOT NULL,
			total_pool    REAL NOT NULL,
			recorded_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weighted_recorded ON weighted_races(recorded_at)`,

		`CREATE TABLE IF NOT EXISTS segment_races (
			id             TEXT PRIMARY KEY,
			race_id        TEXT NOT NULL UNIQUE,
			server_seed    TEXT NOT NULL,
			published_hash TEXT NOT NULL,
			entry_fee      INTEGER NOT NULL,
			entrants       TEXT NOT NULL,
			segments       TEXT NOT NULL,
			results        TEXT NOT NULL,
			total_pot      INTEGER NOT NULL,
			recorded_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_segment_recorded ON segment_races(recorded_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordWeightedRace(rec *WeightedRaceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entrants, err := json.Marshal(rec.Entrants)
	if err != nil {
		return fmt.Errorf("marshal entrants: %w", err)
	}
	results, err := json.Marshal(rec.Result.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	deltas, err := json.Marshal(rec.Deltas)
	if err != nil {
		return fmt.Errorf("marshal deltas: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO weighted_races
		(id, race_id, race_type, seed_material, entrants, results, deltas, total_pool, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), rec.RaceID, rec.RaceType, rec.SeedMaterial,
		string(entrants), string(results), string(deltas),
		rec.Result.TotalPool, time.Now().Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordSegmentRace(rec *SegmentRaceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entrants, err := json.Marshal(rec.Entrants)
	if err != nil {
		return fmt.Errorf("marshal entrants: %w", err)
	}
	segments, err := json.Marshal(rec.Simulation.Segments)
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	results, err := json.Marshal(rec.Simulation.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO segment_races
		(id, race_id, server_seed, published_hash, entry_fee, entrants, segments, results, total_pot, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), rec.RaceID, rec.ServerSeed, rec.PublishedHash, rec.EntryFee,
		string(entrants), string(segments), string(results),
		rec.Simulation.TotalPot, time.Now().Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
