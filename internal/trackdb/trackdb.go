// Package trackdb persists tracking runs to sqlite: one session row per
// replayed source, per-frame point observations and identity lifecycle
// events. The schema lives in migrations/ and is managed with
// golang-migrate.
package trackdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle used by the track archive.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the archive database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open track db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping track db: %w", err)
	}
	return &DB{db}, nil
}

// Session is one recorded tracking run.
type Session struct {
	SessionID        string
	Source           string
	StartedUnixNanos int64
}

// Observation is one tracked point at one frame.
type Observation struct {
	SessionID string
	Frame     int
	PointID   int
	X, Y      float64
	Freshness int
}

// IDEvent records an identity being born or retired at a frame.
type IDEvent struct {
	SessionID string
	Frame     int
	PointID   int
	Event     string // "born" or "retired"
}

// Identity lifecycle event names.
const (
	EventBorn    = "born"
	EventRetired = "retired"
)

// CreateSession inserts a new session row and returns its id.
func (db *DB) CreateSession(source string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		"INSERT INTO track_sessions (session_id, source, started_unix_nanos) VALUES (?, ?, ?)",
		id, source, time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// InsertObservations writes one frame's observations in a single
// transaction.
func (db *DB) InsertObservations(obs []Observation) error {
	if len(obs) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin observations tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO track_observations (session_id, frame, point_id, x, y, freshness)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare observation insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.Exec(o.SessionID, o.Frame, o.PointID, o.X, o.Y, o.Freshness); err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit observations: %w", err)
	}
	return nil
}

// InsertIDEvents writes identity lifecycle events in a single transaction.
func (db *DB) InsertIDEvents(events []IDEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin events tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO track_id_events (session_id, frame, point_id, event)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(e.SessionID, e.Frame, e.PointID, e.Event); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events: %w", err)
	}
	return nil
}

// GetSession returns one session row.
func (db *DB) GetSession(sessionID string) (*Session, error) {
	row := db.QueryRow(
		"SELECT session_id, source, started_unix_nanos FROM track_sessions WHERE session_id = ?",
		sessionID,
	)
	var s Session
	if err := row.Scan(&s.SessionID, &s.Source, &s.StartedUnixNanos); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// GetObservations returns a session's observations for frames in
// [startFrame, endFrame], ordered by frame then point id. A limit of 0
// means no limit.
func (db *DB) GetObservations(sessionID string, startFrame, endFrame, limit int) ([]Observation, error) {
	query := `
		SELECT session_id, frame, point_id, x, y, freshness
		FROM track_observations
		WHERE session_id = ? AND frame >= ? AND frame <= ?
		ORDER BY frame, point_id
	`
	args := []any{sessionID, startFrame, endFrame}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var obs []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.SessionID, &o.Frame, &o.PointID, &o.X, &o.Y, &o.Freshness); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return obs, nil
}

// GetIDEvents returns a session's identity events ordered by frame.
func (db *DB) GetIDEvents(sessionID string) ([]IDEvent, error) {
	rows, err := db.Query(`
		SELECT session_id, frame, point_id, event
		FROM track_id_events
		WHERE session_id = ?
		ORDER BY frame, point_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query id events: %w", err)
	}
	defer rows.Close()

	var events []IDEvent
	for rows.Next() {
		var e IDEvent
		if err := rows.Scan(&e.SessionID, &e.Frame, &e.PointID, &e.Event); err != nil {
			return nil, fmt.Errorf("scan id event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate id events: %w", err)
	}
	return events, nil
}

// TrackLifetime summarises one identity within a session.
type TrackLifetime struct {
	PointID      int
	FirstFrame   int
	LastFrame    int
	Observations int
}

// GetTrackLifetimes aggregates per-identity first/last frames and
// observation counts for a session, ordered by point id.
func (db *DB) GetTrackLifetimes(sessionID string) ([]TrackLifetime, error) {
	rows, err := db.Query(`
		SELECT point_id, MIN(frame), MAX(frame), COUNT(*)
		FROM track_observations
		WHERE session_id = ?
		GROUP BY point_id
		ORDER BY point_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query track lifetimes: %w", err)
	}
	defer rows.Close()

	var lifetimes []TrackLifetime
	for rows.Next() {
		var lt TrackLifetime
		if err := rows.Scan(&lt.PointID, &lt.FirstFrame, &lt.LastFrame, &lt.Observations); err != nil {
			return nil, fmt.Errorf("scan track lifetime: %w", err)
		}
		lifetimes = append(lifetimes, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate track lifetimes: %w", err)
	}
	return lifetimes, nil
}
