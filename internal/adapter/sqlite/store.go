// Package sqlite implements the activity store and the idempotency ledger on
// a single file-backed sqlite database. WAL is enabled so the collector, the
// tab ingest server and a batch run can share the file; this package adds no
// coordination beyond what sqlite itself provides.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/migrate"
)

// Store implements ports.ActivitySource and ports.Ledger.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the database at path, enables WAL and
// foreign keys, and applies pending migrations.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating db directory: %w", err)
	}

	dsn := "file:" + url.PathEscape(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// A single writer; sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping %s: %w", path, err)
	}

	if err := migrate.Run(ctx, db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate %s: %w", path, err)
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// FetchSamples returns samples with from <= ts <= to, ascending.
func (s *Store) FetchSamples(ctx context.Context, from, to time.Time) ([]domain.ActivitySample, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, ts_utc, idle_ms, focus_title, focus_wm_class, focus_pid
        FROM samples
        WHERE ts_utc >= ? AND ts_utc <= ?
        ORDER BY ts_utc ASC`,
		domain.TSUTC(from), domain.TSUTC(to))
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetching samples: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivitySample
	for rows.Next() {
		var (
			sm      domain.ActivitySample
			ts      string
			idle    sql.NullInt64
			title   sql.NullString
			wmClass sql.NullString
			pid     sql.NullInt64
		)
		if err := rows.Scan(&sm.ID, &ts, &idle, &title, &wmClass, &pid); err != nil {
			return nil, fmt.Errorf("sqlite: scanning sample: %w", err)
		}
		if sm.TS, err = parseTS(ts); err != nil {
			return nil, fmt.Errorf("sqlite: sample %d: %w", sm.ID, err)
		}
		sm.IdleMS = nullInt(idle)
		sm.FocusTitle = nullStr(title)
		sm.FocusWMClass = nullStr(wmClass)
		sm.FocusPID = nullInt(pid)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// FetchTabEvents returns tab events with from <= ts <= to, ascending.
func (s *Store) FetchTabEvents(ctx context.Context, from, to time.Time) ([]domain.TabEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, ts_utc, sample_id, allowed, url, title, url_redacted, title_redacted
        FROM tab_events
        WHERE ts_utc >= ? AND ts_utc <= ?
        ORDER BY ts_utc ASC`,
		domain.TSUTC(from), domain.TSUTC(to))
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetching tab events: %w", err)
	}
	defer rows.Close()

	var out []domain.TabEvent
	for rows.Next() {
		var (
			te       domain.TabEvent
			ts       string
			sampleID sql.NullInt64
			rawURL   sql.NullString
			title    sql.NullString
			redURL   sql.NullString
			redTitle sql.NullString
		)
		if err := rows.Scan(&te.ID, &ts, &sampleID, &te.Allowed, &rawURL, &title, &redURL, &redTitle); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tab event: %w", err)
		}
		if te.TS, err = parseTS(ts); err != nil {
			return nil, fmt.Errorf("sqlite: tab event %d: %w", te.ID, err)
		}
		te.SampleID = nullInt(sampleID)
		te.URL = nullStr(rawURL)
		te.Title = nullStr(title)
		te.URLRedacted = nullStr(redURL)
		te.TitleRedacted = nullStr(redTitle)
		out = append(out, te)
	}
	return out, rows.Err()
}

// InsertSample stores one collector observation. rawJSON keeps the original
// payload for later debugging; it is never read by the pipeline.
func (s *Store) InsertSample(ctx context.Context, sample domain.ActivitySample, rawJSON string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO samples(ts_utc, idle_ms, focus_title, focus_wm_class, focus_pid, raw_json)
        VALUES (?, ?, ?, ?, ?, ?)`,
		domain.TSUTC(sample.TS), ptrVal(sample.IdleMS), ptrVal(sample.FocusTitle),
		ptrVal(sample.FocusWMClass), ptrVal(sample.FocusPID), rawJSON)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting sample: %w", err)
	}
	return res.LastInsertId()
}

// InsertTabEvent stores one redaction-processed tab event.
func (s *Store) InsertTabEvent(ctx context.Context, ev domain.TabEvent, rawJSON string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO tab_events(ts_utc, sample_id, url, title, url_redacted, title_redacted, allowed, raw_json)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		domain.TSUTC(ev.TS), ptrVal(ev.SampleID), ptrVal(ev.URL), ptrVal(ev.Title),
		ptrVal(ev.URLRedacted), ptrVal(ev.TitleRedacted), boolInt(ev.Allowed), rawJSON)
	if err != nil {
		return 0, fmt.Errorf("sqlite: inserting tab event: %w", err)
	}
	return res.LastInsertId()
}

// NearestSampleID returns the id of the sample closest in time to ts, if the
// distance is within maxAge; otherwise nil.
func (s *Store) NearestSampleID(ctx context.Context, ts time.Time, maxAge time.Duration) (*int64, error) {
	tsStr := domain.TSUTC(ts)
	row := s.db.QueryRowContext(ctx, `
        SELECT id
        FROM samples
        WHERE ABS(strftime('%s', ts_utc) - strftime('%s', ?)) <= ?
        ORDER BY ABS(strftime('%s', ts_utc) - strftime('%s', ?)) ASC
        LIMIT 1`,
		tsStr, int64(maxAge.Seconds()), tsStr)
	var id int64
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: nearest sample: %w", err)
	}
	return &id, nil
}

func parseTS(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad ts_utc %q: %w", ts, err)
	}
	return t, nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// ptrVal converts an optional field to a driver value (nil for absent).
func ptrVal[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
