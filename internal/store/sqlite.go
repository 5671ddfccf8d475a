package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/atempo/attendance-tracker/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Snapshot returns the full cached state. Read failures degrade to an
// empty snapshot so the caller can always render something.
func (s *SQLiteStore) Snapshot(ctx context.Context) Snapshot {
	snap := EmptySnapshot()

	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, business_id, date, check_in, check_out, note FROM shifts ORDER BY date, business_id",
	)
	if err != nil {
		log.Warn("reading cached shifts, falling back to empty", "err", err)
		return EmptySnapshot()
	}
	for rows.Next() {
		var sh model.Shift
		if err := rows.Scan(&sh.ID, &sh.BusinessID, &sh.Date, &sh.CheckIn, &sh.CheckOut, &sh.Note); err != nil {
			rows.Close()
			log.Warn("scanning cached shift, falling back to empty", "err", err)
			return EmptySnapshot()
		}
		snap.Shifts.Add(sh)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Warn("iterating cached shifts, falling back to empty", "err", err)
		return EmptySnapshot()
	}

	rows, err = s.db.QueryxContext(ctx,
		"SELECT id, date, text, priority, created_at FROM daily_notes ORDER BY date, created_at",
	)
	if err != nil {
		log.Warn("reading cached notes, falling back to empty", "err", err)
		return EmptySnapshot()
	}
	defer rows.Close()
	for rows.Next() {
		var n model.DailyNote
		if err := rows.Scan(&n.ID, &n.Date, &n.Text, &n.Priority, &n.CreatedAt); err != nil {
			log.Warn("scanning cached note, falling back to empty", "err", err)
			return EmptySnapshot()
		}
		snap.Notes.Add(n)
	}
	if err := rows.Err(); err != nil {
		log.Warn("iterating cached notes, falling back to empty", "err", err)
		return EmptySnapshot()
	}

	return snap
}

// PutShift inserts or replaces a cached shift.
func (s *SQLiteStore) PutShift(ctx context.Context, sh model.Shift) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO shifts (id, business_id, date, check_in, check_out, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.BusinessID, sh.Date, sh.CheckIn, sh.CheckOut, sh.Note, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching shift %s: %w", sh.ID, err)
	}
	return nil
}

// DeleteShift removes a cached shift by id.
func (s *SQLiteStore) DeleteShift(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting cached shift %s: %w", id, err)
	}
	return nil
}

// PutNote inserts or replaces a cached note.
func (s *SQLiteStore) PutNote(ctx context.Context, n model.DailyNote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_notes (id, date, text, priority, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Date, n.Text, string(n.Priority), n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching note %s: %w", n.ID, err)
	}
	return nil
}

// DeleteNote removes a cached note by id.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM daily_notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting cached note %s: %w", id, err)
	}
	return nil
}

// ReplaceMonthShifts swaps all cached shifts whose date falls in the given
// ISO month ("2026-08") with the provided authoritative set.
func (s *SQLiteStore) ReplaceMonthShifts(ctx context.Context, month string, shifts []model.Shift) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM shifts WHERE date LIKE ?", month+"%"); err != nil {
		return fmt.Errorf("clearing month %s: %w", month, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR REPLACE INTO shifts (id, business_id, date, check_in, check_out, note, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing shift insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, sh := range shifts {
		if !strings.HasPrefix(sh.Date, month) {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			sh.ID, sh.BusinessID, sh.Date, sh.CheckIn, sh.CheckOut, sh.Note, now,
		); err != nil {
			return fmt.Errorf("caching shift %s: %w", sh.ID, err)
		}
	}

	return tx.Commit()
}

// ReplaceMonthNotes swaps all cached notes for the given ISO month with the
// provided authoritative set.
func (s *SQLiteStore) ReplaceMonthNotes(ctx context.Context, month string, notes []model.DailyNote) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM daily_notes WHERE date LIKE ?", month+"%"); err != nil {
		return fmt.Errorf("clearing month %s: %w", month, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR REPLACE INTO daily_notes (id, date, text, priority, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing note insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notes {
		if !strings.HasPrefix(n.Date, month) {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			n.ID, n.Date, n.Text, string(n.Priority), n.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("caching note %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

// AppendChange queues a pending change, superseding any queued change for
// the same (entity type, entity id) so the ledger holds at most one
// outstanding intent per entity.
func (s *SQLiteStore) AppendChange(ctx context.Context, c model.PendingChange) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM pending_changes WHERE entity_type = ? AND entity_id = ?",
		c.EntityType, c.EntityID,
	); err != nil {
		return fmt.Errorf("superseding change for %s %s: %w", c.EntityType, c.EntityID, err)
	}

	payload := c.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pending_changes (entity_id, entity_type, action, payload, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		c.EntityID, c.EntityType, c.Action, string(payload), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("queueing change for %s %s: %w", c.EntityType, c.EntityID, err)
	}

	return tx.Commit()
}

// PendingChanges returns all queued changes in insertion order.
func (s *SQLiteStore) PendingChanges(ctx context.Context) ([]model.PendingChange, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT entity_id, entity_type, action, payload, timestamp FROM pending_changes ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("querying pending changes: %w", err)
	}
	defer rows.Close()

	var changes []model.PendingChange
	for rows.Next() {
		var (
			c       model.PendingChange
			payload string
		)
		if err := rows.Scan(&c.EntityID, &c.EntityType, &c.Action, &payload, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning pending change: %w", err)
		}
		c.Payload = []byte(payload)
		changes = append(changes, c)
	}

	return changes, rows.Err()
}

// RemoveChange deletes the queued change for an entity id.
func (s *SQLiteStore) RemoveChange(ctx context.Context, entityID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pending_changes WHERE entity_id = ?", entityID)
	if err != nil {
		return fmt.Errorf("removing change for %s: %w", entityID, err)
	}
	return nil
}

// ClearChanges empties the ledger.
func (s *SQLiteStore) ClearChanges(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pending_changes")
	if err != nil {
		return fmt.Errorf("clearing pending changes: %w", err)
	}
	return nil
}

// LastSync returns the time of the last successful full drain, or the zero
// time if none has happened.
func (s *SQLiteStore) LastSync(ctx context.Context) time.Time {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM sync_meta WHERE key = 'last_sync'")
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SetLastSync records the time of the last successful full drain.
func (s *SQLiteStore) SetLastSync(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sync_meta (key, value) VALUES ('last_sync', ?)`,
		t.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording last sync: %w", err)
	}
	return nil
}
