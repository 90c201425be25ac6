/*
Package sqlite provides a SQLite-backed implementation of roster.Store.

PURPOSE:
  Persists the Turno catalog and the working-hours settings. Schedules are
  never stored here; they arrive with each request. In production the same patterns apply to PostgreSQL with only
  minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  roster.TemplateStore: Turno catalog
  roster.ConfigStore:   Working-hours settings

KEY TABLES:
  turnos:   Shift templates (versioned on every update)
  settings: Key/value JSON documents (working_hours)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  templates, err := store.Templates(ctx)

SEE ALSO:
  - roster/store.go: Interface definitions
  - store/memory: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/roster"
)

// Store implements roster.Store using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.TurnoFactory
}

var _ roster.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, factory: factory.NewTurnoFactory()}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turnos (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		start_time2 TEXT NOT NULL DEFAULT '',
		end_time2 TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TURNOS
// =============================================================================

// SaveTurno inserts or replaces a template, bumping its version on update.
func (s *Store) SaveTurno(ctx context.Context, t roster.Turno) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO turnos (id, name, color, start_time, end_time, start_time2, end_time2, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			start_time2 = excluded.start_time2,
			end_time2 = excluded.end_time2,
			version = turnos.version + 1,
			updated_at = excluded.updated_at
	`

	tj := s.factory.ToJSON(t)
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, query,
		tj.ID, tj.Name, tj.Color, tj.StartTime, tj.EndTime, tj.StartTime2, tj.EndTime2,
		now, now,
	)
	return err
}

// GetTurno retrieves a template by ID.
func (s *Store) GetTurno(ctx context.Context, id roster.ShiftID) (roster.Turno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, color, start_time, end_time, start_time2, end_time2 FROM turnos WHERE id = ?",
		string(id),
	)
	t, err := s.scanTurno(row)
	if errors.Is(err, sql.ErrNoRows) {
		return roster.Turno{}, fmt.Errorf("%w: %s", roster.ErrTurnoNotFound, id)
	}
	return t, err
}

// ListTurnos retrieves every template ordered by ID.
func (s *Store) ListTurnos(ctx context.Context) ([]roster.Turno, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, start_time, end_time, start_time2, end_time2 FROM turnos ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turnos []roster.Turno
	for rows.Next() {
		t, err := s.scanTurno(rows)
		if err != nil {
			return nil, err
		}
		turnos = append(turnos, t)
	}
	return turnos, rows.Err()
}

// DeleteTurno removes a template. Schedules that still reference it are
// reported as skipped by the calculators.
func (s *Store) DeleteTurno(ctx context.Context, id roster.ShiftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM turnos WHERE id = ?", string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", roster.ErrTurnoNotFound, id)
	}
	return nil
}

// Templates returns a snapshot of the whole catalog.
func (s *Store) Templates(ctx context.Context) (roster.Templates, error) {
	turnos, err := s.ListTurnos(ctx)
	if err != nil {
		return nil, err
	}
	return roster.NewTemplates(turnos...), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanTurno(row scanner) (roster.Turno, error) {
	var tj factory.TurnoJSON
	if err := row.Scan(&tj.ID, &tj.Name, &tj.Color, &tj.StartTime, &tj.EndTime, &tj.StartTime2, &tj.EndTime2); err != nil {
		return roster.Turno{}, err
	}
	t, err := s.factory.FromJSON(tj)
	if err != nil {
		return roster.Turno{}, fmt.Errorf("stored turno %s is corrupt: %w", tj.ID, err)
	}
	return t, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

const workingHoursKey = "working_hours"

// WorkingHours returns the stored settings, or the defaults when none exist.
func (s *Store) WorkingHours(ctx context.Context) (roster.WorkingHoursConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT value_json FROM settings WHERE key = ?", workingHoursKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return roster.DefaultWorkingHoursConfig(), nil
	}
	if err != nil {
		return roster.WorkingHoursConfig{}, err
	}

	var cfg roster.WorkingHoursConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return roster.WorkingHoursConfig{}, fmt.Errorf("failed to decode %s: %w", workingHoursKey, err)
	}
	return cfg, nil
}

// SaveWorkingHours replaces the stored settings.
func (s *Store) SaveWorkingHours(ctx context.Context, cfg roster.WorkingHoursConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at
	`, workingHoursKey, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset clears all data (for demo purposes).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"turnos", "settings"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedCatalog stores every template of a catalog that does not exist yet, and
// its working hours when none have been saved.
func (s *Store) SeedCatalog(ctx context.Context, cat factory.Catalog) (int, error) {
	existing, err := s.Templates(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, t := range cat.Turnos {
		if _, ok := existing[t.ID]; ok {
			continue
		}
		if err := s.SaveTurno(ctx, t); err != nil {
			return added, fmt.Errorf("seed turno %s: %w", t.ID, err)
		}
		added++
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings WHERE key = ?", workingHoursKey).Scan(&n); err != nil {
		return added, err
	}
	if n == 0 {
		if err := s.SaveWorkingHours(ctx, cat.WorkingHours); err != nil {
			return added, err
		}
	}
	return added, nil
}
