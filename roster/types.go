/*
Package roster is the shift assignment and time-accounting engine.

PURPOSE:
  Pure computations over one employee-day of work: overlap detection, worked
  and extra hours with break deduction, leave splitting, and validation of a
  day-cell before it is stored. The package knows nothing about storage,
  HTTP or UI; callers hand it plain values and get plain values back.

KEY CONCEPTS IN THIS FILE (types.go):
  - Span: one or two disjoint working periods (a split shift has two)
  - Turno: a named shift template, the *plan*
  - WorkingHoursConfig: break rules, passed explicitly into every call
  - Templates: lookup of Turno by ShiftID
  - Hours: decimal hour values, never float

CONCURRENCY:
  No package-level mutable state. Every function is safe to call from many
  goroutines at once as long as callers do not mutate the slices they pass.

SEE ALSO:
  - assignment.go: The ShiftAssignment sum type (the *reality*)
  - hours.go: Break-deduction policy
*/
package roster

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ShiftID string
type EmployeeID string

// =============================================================================
// SPAN - One or two working periods
// =============================================================================

// Span is the time shape shared by templates and logged shifts.
// Second is set only for split shifts.
type Span struct {
	First  Segment
	Second *Segment
}

// IsSplit returns true if the span has two working periods.
func (s Span) IsSplit() bool { return s.Second != nil }

// Intervals returns the normalized intervals of the span.
func (s Span) Intervals() []Interval { return SplitIntoIntervals(s) }

func (s Span) String() string {
	if s.Second == nil {
		return s.First.String()
	}
	return s.First.String() + " / " + s.Second.String()
}

// =============================================================================
// TURNO - Shift template
// =============================================================================

// Turno is a reusable named shift definition assignable to employees.
type Turno struct {
	ID    ShiftID
	Name  string
	Color string
	Span  Span
}

// Validate checks the template invariant: a second segment must not overlap
// the first one.
func (t Turno) Validate() error {
	if t.ID == "" {
		return &TemplateError{ID: t.ID, Reason: "id is required"}
	}
	if t.Span.First.Minutes() == 0 {
		return &TemplateError{ID: t.ID, Reason: "primary segment has zero length"}
	}
	if t.Span.Second != nil {
		if t.Span.Second.Minutes() == 0 {
			return &TemplateError{ID: t.ID, Reason: "second segment has zero length"}
		}
		if t.Span.First.Interval().Overlaps(t.Span.Second.Interval()) {
			return &TemplateError{ID: t.ID, Reason: "second segment overlaps the first"}
		}
	}
	return nil
}

// Templates maps ShiftID to its template.
type Templates map[ShiftID]Turno

// NewTemplates indexes a slice of templates by ID.
func NewTemplates(turnos ...Turno) Templates {
	ts := make(Templates, len(turnos))
	for _, t := range turnos {
		ts[t.ID] = t
	}
	return ts
}

func (ts Templates) Lookup(id ShiftID) (Turno, bool) {
	t, ok := ts[id]
	return t, ok
}

// =============================================================================
// WORKING HOURS CONFIG
// =============================================================================

// WorkingHoursConfig holds the break rules. It is read-only for the engine;
// callers pass one consistent snapshot across a batch (a week, a month).
type WorkingHoursConfig struct {
	// BreakMinutes is deducted from continuous shifts (minutosDescanso).
	BreakMinutes int `json:"minutosDescanso" toml:"minutos_descanso"`

	// MinHoursForBreak is the shift length from which the break applies
	// (horasMinimasParaDescanso).
	MinHoursForBreak int `json:"horasMinimasParaDescanso" toml:"horas_minimas_para_descanso"`

	// MaxRegularHoursPerDay flags days in monthly stats. Zero disables it.
	MaxRegularHoursPerDay int `json:"maxRegularHoursPerDay" toml:"max_regular_hours_per_day"`
}

// DefaultWorkingHoursConfig is 30 minutes of break from 6 hours on, 8 regular hours a day.
func DefaultWorkingHoursConfig() WorkingHoursConfig {
	return WorkingHoursConfig{BreakMinutes: 30, MinHoursForBreak: 6, MaxRegularHoursPerDay: 8}
}

// =============================================================================
// HOURS
// =============================================================================

var minutesPerHourDec = decimal.NewFromInt(MinutesPerHour)

// HoursFromMinutes converts a minute count into decimal hours.
func HoursFromMinutes(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(minutesPerHourDec)
}
