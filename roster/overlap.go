package roster

import (
	"fmt"
	"sort"
)

// SplitIntoIntervals decomposes a span into 0, 1 or 2 normalized intervals.
// Zero-length segments are dropped.
func SplitIntoIntervals(s Span) []Interval {
	var out []Interval
	if iv := s.First.Interval(); !iv.IsEmpty() {
		out = append(out, iv)
	}
	if s.Second != nil {
		if iv := s.Second.Interval(); !iv.IsEmpty() {
			out = append(out, iv)
		}
	}
	return out
}

// ShiftsOverlap is true iff any interval of a overlaps any interval of b.
func ShiftsOverlap(a, b Span) bool {
	return intervalsOverlap(SplitIntoIntervals(a), SplitIntoIntervals(b))
}

// TurnosOverlap reports whether two templates have clashing hours, i.e. they
// cannot both be assigned to one employee on the same day.
func TurnosOverlap(a, b Turno) bool {
	return ShiftsOverlap(a.Span, b.Span)
}

// AssignmentsOverlap compares any two time-bearing assignments.
func AssignmentsOverlap(a, b Assignment) bool {
	return intervalsOverlap(IntervalsOf(a), IntervalsOf(b))
}

func intervalsOverlap(as, bs []Interval) bool {
	for _, a := range as {
		for _, b := range bs {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// WEEK SCAN - Advisory schedule-quality report
// =============================================================================

// Overlap is one clashing pair of shift entries found in a stored week.
type Overlap struct {
	Date       Date
	EmployeeID EmployeeID
	ShiftA     ShiftID
	ShiftB     ShiftID
	Message    string
}

// ValidateScheduleAssignments scans every (date, employee) cell of a week and
// reports each pair of Shift entries whose logged times overlap. Incomplete
// shifts are skipped. The report never blocks a save; results are ordered by
// date, employee, then position within the cell.
func ValidateScheduleAssignments(w Week) []Overlap {
	var overlaps []Overlap
	for _, date := range w.Dates() {
		cells := w.Assignments[date]
		employees := make([]EmployeeID, 0, len(cells))
		for id := range cells {
			employees = append(employees, id)
		}
		sort.Slice(employees, func(i, j int) bool { return employees[i] < employees[j] })

		for _, emp := range employees {
			overlaps = append(overlaps, cellShiftOverlaps(date, emp, cells[emp])...)
		}
	}
	return overlaps
}

func cellShiftOverlaps(date Date, emp EmployeeID, day []Assignment) []Overlap {
	var shifts []Shift
	for _, a := range day {
		if s, ok := a.(Shift); ok && s.IsComplete() {
			shifts = append(shifts, s)
		}
	}

	var out []Overlap
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			if !intervalsOverlap(shifts[i].Intervals(), shifts[j].Intervals()) {
				continue
			}
			out = append(out, Overlap{
				Date:       date,
				EmployeeID: emp,
				ShiftA:     shifts[i].ShiftID,
				ShiftB:     shifts[j].ShiftID,
				Message: fmt.Sprintf("%s: employee %s has overlapping shifts %s and %s",
					date, emp, Describe(shifts[i]), Describe(shifts[j])),
			})
		}
	}
	return out
}
