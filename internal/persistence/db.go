// Package persistence provides SQLite-based storage for the append-only
// event log and run metadata.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/gridlands/internal/world"
)

// DB wraps a SQLite connection acting as the event sink.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		pos_x INTEGER NOT NULL,
		pos_y INTEGER NOT NULL,
		payload_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// eventRow is the flat database shape of a world event.
type eventRow struct {
	Tick        uint64 `db:"tick"`
	Kind        string `db:"kind"`
	PosX        int    `db:"pos_x"`
	PosY        int    `db:"pos_y"`
	PayloadJSON string `db:"payload_json"`
}

// SaveLog appends every event in the log to the sink in one transaction.
func (db *DB) SaveLog(log *world.EventLog) error {
	if log.Len() == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT INTO events (tick, kind, pos_x, pos_y, payload_json) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	saved := 0
	for e := range log.All() {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode payload for %s at tick %d: %w", e.Kind, e.Tick, err)
		}
		if _, err := stmt.Exec(e.Tick, string(e.Kind), e.Position.X, e.Position.Y, string(payload)); err != nil {
			return fmt.Errorf("insert event %s at tick %d: %w", e.Kind, e.Tick, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("event log saved", "events", saved)
	return nil
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// LoadEvents returns every stored event in insertion order, rebuilding the
// payloads from their JSON encoding.
func (db *DB) LoadEvents() ([]world.Event, error) {
	var rows []eventRow
	if err := db.conn.Select(&rows, "SELECT tick, kind, pos_x, pos_y, payload_json FROM events ORDER BY id"); err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]world.Event, error) {
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT tick, kind, pos_x, pos_y, payload_json FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

func decodeRows(rows []eventRow) ([]world.Event, error) {
	events := make([]world.Event, 0, len(rows))
	for _, r := range rows {
		var payload map[string]any
		if err := json.Unmarshal([]byte(r.PayloadJSON), &payload); err != nil {
			return nil, fmt.Errorf("decode payload for %s at tick %d: %w", r.Kind, r.Tick, err)
		}
		events = append(events, world.Event{
			Kind:     world.EventKind(r.Kind),
			Position: world.Position{X: r.PosX, Y: r.PosY},
			Tick:     r.Tick,
			Payload:  payload,
		})
	}
	return events, nil
}
