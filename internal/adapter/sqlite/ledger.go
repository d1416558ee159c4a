package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"toggl-sherpa/internal/domain"
)

// AlreadyApplied reports whether a ledger row with the fingerprint exists.
func (s *Store) AlreadyApplied(ctx context.Context, fingerprint string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM applied_entries WHERE fingerprint = ? LIMIT 1", fingerprint)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: ledger lookup: %w", err)
	}
	return true, nil
}

// RecordApplied appends one ledger row. INSERT OR IGNORE makes the write
// conflict-tolerant: first write wins, a duplicate fingerprint is a no-op.
// That, not any in-process lock, is what guards concurrent runs against
// double-creating remote entries.
func (s *Store) RecordApplied(ctx context.Context, e domain.LedgerEntry) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO applied_entries(
            ts_utc, fingerprint, start_ts_utc, end_ts_utc, description, toggl_time_entry_id
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		domain.TSUTC(e.TS), e.Fingerprint, domain.TSUTC(e.Start), domain.TSUTC(e.Stop),
		e.Description, ptrVal(e.TimeEntryID))
	if err != nil {
		return fmt.Errorf("sqlite: recording applied entry: %w", err)
	}
	return nil
}

// ListApplied returns ledger rows newest first, optionally bounded below by
// since (inclusive). A non-positive limit returns nothing.
func (s *Store) ListApplied(ctx context.Context, since *time.Time, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	q := `
        SELECT ts_utc, fingerprint, start_ts_utc, end_ts_utc, description, toggl_time_entry_id
        FROM applied_entries`
	args := []any{}
	if since != nil {
		q += " WHERE ts_utc >= ?"
		args = append(args, domain.TSUTC(*since))
	}
	q += " ORDER BY ts_utc DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing ledger: %w", err)
	}
	defer rows.Close()

	var out []domain.LedgerEntry
	for rows.Next() {
		var (
			e            domain.LedgerEntry
			ts, from, to string
			entryID      sql.NullInt64
		)
		if err := rows.Scan(&ts, &e.Fingerprint, &from, &to, &e.Description, &entryID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning ledger row: %w", err)
		}
		if e.TS, err = parseTS(ts); err != nil {
			return nil, err
		}
		if e.Start, err = parseTS(from); err != nil {
			return nil, err
		}
		if e.Stop, err = parseTS(to); err != nil {
			return nil, err
		}
		e.TimeEntryID = nullInt(entryID)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LedgerStats is an aggregate view over the ledger for diagnostics.
type LedgerStats struct {
	Count              int64
	MinTS              *time.Time
	MaxTS              *time.Time
	UniqueTimeEntryIDs int64
}

// Stats summarises the ledger, optionally bounded below by since.
func (s *Store) Stats(ctx context.Context, since *time.Time) (LedgerStats, error) {
	q := `
        SELECT COUNT(*), MIN(ts_utc), MAX(ts_utc), COUNT(DISTINCT toggl_time_entry_id)
        FROM applied_entries`
	args := []any{}
	if since != nil {
		q += " WHERE ts_utc >= ?"
		args = append(args, domain.TSUTC(*since))
	}

	var (
		st       LedgerStats
		min, max sql.NullString
	)
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&st.Count, &min, &max, &st.UniqueTimeEntryIDs); err != nil {
		return LedgerStats{}, fmt.Errorf("sqlite: ledger stats: %w", err)
	}
	if min.Valid {
		t, err := parseTS(min.String)
		if err != nil {
			return LedgerStats{}, err
		}
		st.MinTS = &t
	}
	if max.Valid {
		t, err := parseTS(max.String)
		if err != nil {
			return LedgerStats{}, err
		}
		st.MaxTS = &t
	}
	return st, nil
}
