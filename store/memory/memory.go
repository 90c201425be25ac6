// Package memory provides an in-memory roster.Store for tests and tools.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	turnos       map[roster.ShiftID]roster.Turno
	workingHours *roster.WorkingHoursConfig
}

var _ roster.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		turnos: make(map[roster.ShiftID]roster.Turno),
	}
}

// NewMemoryWith returns a store preloaded with templates and settings.
func NewMemoryWith(cfg roster.WorkingHoursConfig, turnos ...roster.Turno) *Memory {
	m := NewMemory()
	for _, t := range turnos {
		m.turnos[t.ID] = t
	}
	m.workingHours = &cfg
	return m
}

func (m *Memory) SaveTurno(_ context.Context, t roster.Turno) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turnos[t.ID] = t
	return nil
}

func (m *Memory) GetTurno(_ context.Context, id roster.ShiftID) (roster.Turno, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.turnos[id]
	if !ok {
		return roster.Turno{}, fmt.Errorf("%w: %s", roster.ErrTurnoNotFound, id)
	}
	return t, nil
}

func (m *Memory) ListTurnos(_ context.Context) ([]roster.Turno, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]roster.Turno, 0, len(m.turnos))
	for _, t := range m.turnos {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) DeleteTurno(_ context.Context, id roster.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.turnos[id]; !ok {
		return fmt.Errorf("%w: %s", roster.ErrTurnoNotFound, id)
	}
	delete(m.turnos, id)
	return nil
}

func (m *Memory) Templates(ctx context.Context) (roster.Templates, error) {
	turnos, _ := m.ListTurnos(ctx)
	return roster.NewTemplates(turnos...), nil
}

func (m *Memory) WorkingHours(_ context.Context) (roster.WorkingHoursConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.workingHours == nil {
		return roster.DefaultWorkingHoursConfig(), nil
	}
	return *m.workingHours, nil
}

func (m *Memory) SaveWorkingHours(_ context.Context, cfg roster.WorkingHoursConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workingHours = &cfg
	return nil
}
