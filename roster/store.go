/*
store.go - Persistence interfaces for templates and settings

PURPOSE:
  The engine itself is pure. Servers and tools still need somewhere to keep
  the Turno catalog and the working-hours settings. These interfaces sit
  between the engine and the database so the same handlers run against
  SQLite in production and memory in tests.

  Schedules are not stored here: cells and weeks always arrive as plain data
  from the caller.

KEY INTERFACES:
  TemplateStore: Turno catalog (CRUD + Templates snapshot)
  ConfigStore:   The WorkingHoursConfig in effect
  Store:         Both

IMPLEMENTATIONS:
  - store/sqlite: SQLite
  - store/memory: In-memory for tests and the CLI
*/
package roster

import "context"

// TemplateStore persists the Turno catalog.
type TemplateStore interface {
	// SaveTurno inserts or replaces a template. The template is validated first.
	SaveTurno(ctx context.Context, t Turno) error

	// GetTurno returns ErrTurnoNotFound for unknown IDs.
	GetTurno(ctx context.Context, id ShiftID) (Turno, error)

	// ListTurnos returns every template ordered by ID.
	ListTurnos(ctx context.Context) ([]Turno, error)

	// DeleteTurno returns ErrTurnoNotFound for unknown IDs.
	DeleteTurno(ctx context.Context, id ShiftID) error

	// Templates returns a snapshot of the catalog for the calculators.
	Templates(ctx context.Context) (Templates, error)
}

// ConfigStore persists the working-hours settings.
type ConfigStore interface {
	// WorkingHours returns the stored config, or the default when none was saved.
	WorkingHours(ctx context.Context) (WorkingHoursConfig, error)
	SaveWorkingHours(ctx context.Context, cfg WorkingHoursConfig) error
}

// Store is the full persistence surface used by the API.
type Store interface {
	TemplateStore
	ConfigStore
}

// Validate checks the settings for values no calculator can use.
func (c WorkingHoursConfig) Validate() error {
	if c.BreakMinutes < 0 || c.MinHoursForBreak < 0 || c.MaxRegularHoursPerDay < 0 {
		return ErrInvalidConfig
	}
	return nil
}
