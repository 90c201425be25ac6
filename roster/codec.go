/*
codec.go - Wire format for assignments

PURPOSE:
  Stored schedules and API payloads carry assignments as flat JSON objects
  with a "type" discriminator. This file converts between that loose record
  and the closed Assignment sum type, so the rest of the engine never sees
  a field that does not belong to its variant.

WIRE FORMAT:
  {"type": "shift", "shiftId": "M", "startTime": "08:00", "endTime": "16:00",
   "startTime2": "", "endTime2": ""}
  {"type": "franco"}
  {"type": "medio_franco", "startTime": "08:00", "endTime": "12:00"}
  {"type": "licencia", "licenciaType": "embarazo", "startTime": "12:00", "endTime": "16:00"}
  {"type": "nota", "texto": "..."}

  A record with no "type" but a "shiftId" is a legacy shift entry.
  Times that are present must be valid HH:MM; empty strings mean "absent".
*/
package roster

import (
	"encoding/json"
	"fmt"
)

// AssignmentRecord is the flat JSON shape of one assignment.
type AssignmentRecord struct {
	Type         Kind   `json:"type,omitempty"`
	ShiftID      string `json:"shiftId,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	StartTime2   string `json:"startTime2,omitempty"`
	EndTime2     string `json:"endTime2,omitempty"`
	LicenciaType string `json:"licenciaType,omitempty"`
	Texto        string `json:"texto,omitempty"`
}

// DecodeAssignment converts a record into its variant.
func DecodeAssignment(r AssignmentRecord) (Assignment, error) {
	kind := r.Type
	if kind == "" && r.ShiftID != "" {
		kind = KindShift
	}

	switch kind {
	case KindShift:
		s := Shift{ShiftID: ShiftID(r.ShiftID)}
		var err error
		for _, f := range []struct {
			dst **TimeOfDay
			src string
		}{
			{&s.Start, r.StartTime},
			{&s.End, r.EndTime},
			{&s.Start2, r.StartTime2},
			{&s.End2, r.EndTime2},
		} {
			if *f.dst, err = optionalTime(f.src); err != nil {
				return nil, err
			}
		}
		return s, nil
	case KindFranco:
		return Franco{}, nil
	case KindMedioFranco:
		seg, err := NewSegment(r.StartTime, r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("medio_franco: %w", err)
		}
		return MedioFranco{Segment: seg}, nil
	case KindLicencia:
		seg, err := NewSegment(r.StartTime, r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("licencia: %w", err)
		}
		return Licencia{Type: LicenciaType(r.LicenciaType), Segment: seg}, nil
	case KindNota:
		return Nota{Text: r.Texto}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssignmentType, r.Type)
	}
}

func optionalTime(s string) (*TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptional(t *TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// EncodeAssignment converts a variant into its record.
func EncodeAssignment(a Assignment) AssignmentRecord {
	switch v := a.(type) {
	case Shift:
		return AssignmentRecord{
			Type:       KindShift,
			ShiftID:    string(v.ShiftID),
			StartTime:  formatOptional(v.Start),
			EndTime:    formatOptional(v.End),
			StartTime2: formatOptional(v.Start2),
			EndTime2:   formatOptional(v.End2),
		}
	case Franco:
		return AssignmentRecord{Type: KindFranco}
	case MedioFranco:
		return AssignmentRecord{
			Type:      KindMedioFranco,
			StartTime: v.Segment.Start.String(),
			EndTime:   v.Segment.End.String(),
		}
	case Licencia:
		return AssignmentRecord{
			Type:         KindLicencia,
			LicenciaType: string(v.Type),
			StartTime:    v.Segment.Start.String(),
			EndTime:      v.Segment.End.String(),
		}
	case Nota:
		return AssignmentRecord{Type: KindNota, Texto: v.Text}
	default:
		return AssignmentRecord{}
	}
}

// DecodeAssignments decodes a whole cell, failing on the first bad record.
func DecodeAssignments(records []AssignmentRecord) ([]Assignment, error) {
	out := make([]Assignment, 0, len(records))
	for i, r := range records {
		a, err := DecodeAssignment(r)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// EncodeAssignments encodes a whole cell.
func EncodeAssignments(assignments []Assignment) []AssignmentRecord {
	out := make([]AssignmentRecord, len(assignments))
	for i, a := range assignments {
		out[i] = EncodeAssignment(a)
	}
	return out
}

// =============================================================================
// WEEK FILE
// =============================================================================

// WeekRecord is the stored week: assignments[date][employeeId].
type WeekRecord struct {
	Assignments map[string]map[string][]AssignmentRecord `json:"assignments"`
	DayStatus   map[string]map[string]DayStatus          `json:"dayStatus,omitempty"`
}

// DecodeWeek converts a stored week into a Week.
func DecodeWeek(r WeekRecord) (Week, error) {
	w := NewWeek()
	for date, cells := range r.Assignments {
		d, err := ParseDate(date)
		if err != nil {
			return Week{}, fmt.Errorf("date %q: %w", date, err)
		}
		for emp, records := range cells {
			assignments, err := DecodeAssignments(records)
			if err != nil {
				return Week{}, fmt.Errorf("%s/%s: %w", date, emp, err)
			}
			w.Set(d, EmployeeID(emp), assignments)
		}
	}
	return w, nil
}

// EncodeWeek converts a Week into its stored form, with dayStatus recomputed.
func EncodeWeek(w Week) WeekRecord {
	r := WeekRecord{
		Assignments: make(map[string]map[string][]AssignmentRecord, len(w.Assignments)),
		DayStatus:   make(map[string]map[string]DayStatus, len(w.Assignments)),
	}
	for date, statuses := range w.DayStatus() {
		r.DayStatus[string(date)] = make(map[string]DayStatus, len(statuses))
		for emp, st := range statuses {
			r.DayStatus[string(date)][string(emp)] = st
		}
	}
	for date, cells := range w.Assignments {
		r.Assignments[string(date)] = make(map[string][]AssignmentRecord, len(cells))
		for emp, assignments := range cells {
			r.Assignments[string(date)][string(emp)] = EncodeAssignments(assignments)
		}
	}
	return r
}

// ParseWeekJSON decodes a stored week from JSON bytes.
func ParseWeekJSON(data []byte) (Week, error) {
	var r WeekRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return Week{}, fmt.Errorf("decode week: %w", err)
	}
	return DecodeWeek(r)
}
