package project

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"captionexport/internal/timeline"
)

// SQLiteSchema creates the tables a relational project file carries. Rows are
// ordered by their ord column within each parent.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS project (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tracks (
    id   INTEGER PRIMARY KEY,
    ord  INTEGER NOT NULL,
    kind TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS media (
    id             INTEGER PRIMARY KEY,
    path           TEXT NOT NULL DEFAULT '',
    generator_name TEXT
);
CREATE TABLE IF NOT EXISTS events (
    id          INTEGER PRIMARY KEY,
    track_id    INTEGER NOT NULL REFERENCES tracks(id),
    ord         INTEGER NOT NULL,
    kind        TEXT NOT NULL DEFAULT '',
    start_frame INTEGER NOT NULL,
    length      INTEGER NOT NULL DEFAULT 0,
    active_take INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS takes (
    id       INTEGER PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id),
    ord      INTEGER NOT NULL,
    name     TEXT NOT NULL DEFAULT '',
    media_id INTEGER REFERENCES media(id)
);
CREATE TABLE IF NOT EXISTS parameters (
    media_id INTEGER NOT NULL REFERENCES media(id),
    ord      INTEGER NOT NULL,
    name     TEXT NOT NULL,
    type     TEXT NOT NULL DEFAULT 'string',
    value    TEXT NOT NULL DEFAULT ''
);
`

func loadSQLite(ctx context.Context, path string) (*Project, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	// sql.Open would silently create a missing database.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()
	// query_only is per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("apply pragma query_only: %w", err)
	}

	r := &sqliteReader{db: db}
	return r.read(ctx)
}

type sqliteReader struct {
	db *sql.DB
}

func (r *sqliteReader) read(ctx context.Context) (*Project, error) {
	meta, err := r.projectMeta(ctx)
	if err != nil {
		return nil, err
	}
	p := New(meta["name"]).SetFilePath(meta["file_path"])
	if value := strings.TrimSpace(meta["frame_rate"]); value != "" {
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate < 0 {
			return nil, fmt.Errorf("project.frame_rate: invalid value %q", value)
		}
		p.SetFrameRate(rate)
	}

	media, err := r.media(ctx)
	if err != nil {
		return nil, err
	}
	tracks, err := r.tracks(ctx, p)
	if err != nil {
		return nil, err
	}
	events, err := r.events(ctx, tracks)
	if err != nil {
		return nil, err
	}
	if err := r.takes(ctx, events, media); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *sqliteReader) projectMeta(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM project`)
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (r *sqliteReader) media(ctx context.Context) (map[int64]*Media, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, path, generator_name FROM media`)
	if err != nil {
		return nil, fmt.Errorf("query media: %w", err)
	}
	defer rows.Close()

	media := make(map[int64]*Media)
	generators := make(map[int64]*Generator)
	for rows.Next() {
		var (
			id        int64
			path      string
			generator sql.NullString
		)
		if err := rows.Scan(&id, &path, &generator); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		m := NewMedia(path, nil)
		if generator.Valid {
			m.generator = NewGenerator(generator.String)
			generators[id] = m.generator
		}
		media[id] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	params, err := r.db.QueryContext(ctx, `SELECT media_id, name, type, value FROM parameters ORDER BY media_id, ord`)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer params.Close()
	for params.Next() {
		var (
			mediaID          int64
			name, typ, value string
		)
		if err := params.Scan(&mediaID, &name, &typ, &value); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}
		gen, ok := generators[mediaID]
		if !ok {
			continue
		}
		kind, err := timeline.ParseParameterKind(typ)
		if err != nil {
			return nil, fmt.Errorf("media %d parameter %q: %w", mediaID, name, err)
		}
		gen.params = append(gen.params, timeline.Parameter{Name: name, Kind: kind, Value: value})
	}
	return media, params.Err()
}

func (r *sqliteReader) tracks(ctx context.Context, p *Project) (map[int64]*Track, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind FROM tracks ORDER BY ord, id`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	tracks := make(map[int64]*Track)
	for rows.Next() {
		var (
			id   int64
			kind string
		)
		if err := rows.Scan(&id, &kind); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		parsed, err := ParseKind(kind, KindVideo)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", id, err)
		}
		tracks[id] = p.AddTrack(parsed)
	}
	return tracks, rows.Err()
}

func (r *sqliteReader) events(ctx context.Context, tracks map[int64]*Track) (map[int64]*Event, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, track_id, kind, start_frame, length, active_take
        FROM events
        ORDER BY track_id, ord, id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make(map[int64]*Event)
	for rows.Next() {
		var (
			id, trackID, start, length int64
			kind                       string
			active                     int
		)
		if err := rows.Scan(&id, &trackID, &kind, &start, &length, &active); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		track, ok := tracks[trackID]
		if !ok {
			return nil, fmt.Errorf("event %d references missing track %d", id, trackID)
		}
		if start < 0 {
			return nil, fmt.Errorf("event %d: %w", id, errNegativeStart)
		}
		parsed, err := ParseKind(kind, track.kind)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", id, err)
		}
		events[id] = track.AddEvent(start, length).SetKind(parsed).SetActiveTake(active)
	}
	return events, rows.Err()
}

func (r *sqliteReader) takes(ctx context.Context, events map[int64]*Event, media map[int64]*Media) error {
	rows, err := r.db.QueryContext(ctx, `SELECT event_id, name, media_id FROM takes ORDER BY event_id, ord, id`)
	if err != nil {
		return fmt.Errorf("query takes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID int64
			name    string
			mediaID sql.NullInt64
		)
		if err := rows.Scan(&eventID, &name, &mediaID); err != nil {
			return fmt.Errorf("scan take: %w", err)
		}
		event, ok := events[eventID]
		if !ok {
			return fmt.Errorf("take references missing event %d", eventID)
		}
		var m *Media
		if mediaID.Valid {
			m = media[mediaID.Int64]
		}
		event.AddTake(name, m)
	}
	return rows.Err()
}
