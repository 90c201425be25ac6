/*
assignment.go - The ShiftAssignment sum type

PURPOSE:
  One employee-day is a list of Assignments. Each Assignment is exactly one of:

    Shift        logged time for a scheduled template (reality, not plan)
    Franco       full rest day
    MedioFranco  half rest day over a concrete interval
    Licencia     leave carved out of a shift
    Nota         free-text annotation, never counted

  The interface is sealed (unexported marker method) so a type switch over
  these five cases is exhaustive.

INCOMPLETE SHIFTS:
  Shift times are optional pointers only because legacy records exist that
  never logged them. Shift.Span() is the single gate: it reports false when
  the primary times are missing, and every hour computation skips the entry.
  Nothing here ever falls back to the template's times.

SEE ALSO:
  - codec.go: JSON wire format
  - overtime.go: The one legacy fallback to template times
*/
package roster

// Kind names the assignment variant. The values match the wire "type" field.
type Kind string

const (
	KindShift       Kind = "shift"
	KindFranco      Kind = "franco"
	KindMedioFranco Kind = "medio_franco"
	KindLicencia    Kind = "licencia"
	KindNota        Kind = "nota"
)

// Assignment is one entry of a day-cell.
type Assignment interface {
	Kind() Kind
	isAssignment()
}

// =============================================================================
// SHIFT
// =============================================================================

// Shift is the actually worked time for a scheduled template.
type Shift struct {
	ShiftID ShiftID
	Start   *TimeOfDay
	End     *TimeOfDay
	Start2  *TimeOfDay
	End2    *TimeOfDay
}

// NewShift builds a complete shift from a span.
func NewShift(id ShiftID, span Span) Shift {
	s := Shift{ShiftID: id, Start: TimePtr(span.First.Start), End: TimePtr(span.First.End)}
	if span.Second != nil {
		s.Start2 = TimePtr(span.Second.Start)
		s.End2 = TimePtr(span.Second.End)
	}
	return s
}

func (Shift) Kind() Kind    { return KindShift }
func (Shift) isAssignment() {}

// Span returns the explicit logged span. ok is false when the primary times
// are missing (an incomplete assignment). A second segment is included only
// when both of its times are present.
func (s Shift) Span() (span Span, ok bool) {
	if s.Start == nil || s.End == nil {
		return Span{}, false
	}
	span.First = Segment{Start: *s.Start, End: *s.End}
	if s.Start2 != nil && s.End2 != nil {
		span.Second = &Segment{Start: *s.Start2, End: *s.End2}
	}
	return span, true
}

// IsComplete reports whether the shift carries its own primary times.
func (s Shift) IsComplete() bool {
	_, ok := s.Span()
	return ok
}

// Intervals returns the normalized intervals, none for incomplete shifts.
func (s Shift) Intervals() []Interval {
	span, ok := s.Span()
	if !ok {
		return nil
	}
	return SplitIntoIntervals(span)
}

// =============================================================================
// REST DAYS, LEAVE, NOTES
// =============================================================================

type Franco struct{}

func (Franco) Kind() Kind    { return KindFranco }
func (Franco) isAssignment() {}

type MedioFranco struct {
	Segment Segment
}

func (MedioFranco) Kind() Kind    { return KindMedioFranco }
func (MedioFranco) isAssignment() {}

// LicenciaType classifies leave (e.g. "embarazo", "medica").
type LicenciaType string

type Licencia struct {
	Type    LicenciaType
	Segment Segment
}

func (Licencia) Kind() Kind    { return KindLicencia }
func (Licencia) isAssignment() {}

type Nota struct {
	Text string
}

func (Nota) Kind() Kind    { return KindNota }
func (Nota) isAssignment() {}

// =============================================================================
// HELPERS
// =============================================================================

// IntervalsOf returns the normalized intervals occupied by an assignment.
// Franco and Nota occupy none: Franco excludes the whole day by rule, not by time.
func IntervalsOf(a Assignment) []Interval {
	switch v := a.(type) {
	case Shift:
		return v.Intervals()
	case MedioFranco:
		return []Interval{v.Segment.Interval()}
	case Licencia:
		return []Interval{v.Segment.Interval()}
	default:
		return nil
	}
}

// IsTimeBearing is true for Shift, MedioFranco and Licencia.
func IsTimeBearing(a Assignment) bool {
	switch a.(type) {
	case Shift, MedioFranco, Licencia:
		return true
	default:
		return false
	}
}

// Describe renders an assignment for messages: "shift M (08:00-12:00)".
func Describe(a Assignment) string {
	switch v := a.(type) {
	case Shift:
		span, ok := v.Span()
		if !ok {
			return "shift " + string(v.ShiftID)
		}
		return "shift " + string(v.ShiftID) + " (" + span.String() + ")"
	case MedioFranco:
		return "medio franco (" + v.Segment.String() + ")"
	case Licencia:
		return "licencia (" + v.Segment.String() + ")"
	case Franco:
		return "franco"
	case Nota:
		return "nota"
	default:
		return "unknown"
	}
}
