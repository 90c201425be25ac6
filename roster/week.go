package roster

import (
	"fmt"
	"sort"
	"time"
)

// Date is a calendar day in YYYY-MM-DD form, the key of a stored schedule.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// DayStatus is the derived per-cell filter used by list views.
type DayStatus string

const (
	DayNormal      DayStatus = "normal"
	DayFranco      DayStatus = "franco"
	DayMedioFranco DayStatus = "medio_franco"
)

// DayStatusOf derives a cell's status. A Franco wins over a MedioFranco.
func DayStatusOf(assignments []Assignment) DayStatus {
	status := DayNormal
	for _, a := range assignments {
		switch a.(type) {
		case Franco:
			return DayFranco
		case MedioFranco:
			status = DayMedioFranco
		}
	}
	return status
}

// Week holds one week of stored cells: assignments[date][employee].
type Week struct {
	Assignments map[Date]map[EmployeeID][]Assignment
}

// NewWeek returns an empty week.
func NewWeek() Week {
	return Week{Assignments: make(map[Date]map[EmployeeID][]Assignment)}
}

// Set replaces one cell.
func (w Week) Set(date Date, emp EmployeeID, assignments []Assignment) {
	cells, ok := w.Assignments[date]
	if !ok {
		cells = make(map[EmployeeID][]Assignment)
		w.Assignments[date] = cells
	}
	cells[emp] = assignments
}

// Cell returns one cell, nil if absent.
func (w Week) Cell(date Date, emp EmployeeID) []Assignment {
	return w.Assignments[date][emp]
}

// Dates returns the week's dates in ascending order.
func (w Week) Dates() []Date {
	dates := make([]Date, 0, len(w.Assignments))
	for d := range w.Assignments {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// Employees returns every employee with at least one cell, sorted.
func (w Week) Employees() []EmployeeID {
	seen := make(map[EmployeeID]bool)
	var out []EmployeeID
	for _, cells := range w.Assignments {
		for emp := range cells {
			if !seen[emp] {
				seen[emp] = true
				out = append(out, emp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DayStatus recomputes the dayStatus[date][employee] map for the whole week.
func (w Week) DayStatus() map[Date]map[EmployeeID]DayStatus {
	out := make(map[Date]map[EmployeeID]DayStatus, len(w.Assignments))
	for date, cells := range w.Assignments {
		statuses := make(map[EmployeeID]DayStatus, len(cells))
		for emp, assignments := range cells {
			statuses[emp] = DayStatusOf(assignments)
		}
		out[date] = statuses
	}
	return out
}

// DaysOf returns one employee's cells in date order, as input to Summarize.
func (w Week) DaysOf(emp EmployeeID) []DayRecord {
	var days []DayRecord
	for _, date := range w.Dates() {
		if cell, ok := w.Assignments[date][emp]; ok {
			days = append(days, DayRecord{Date: date, Assignments: cell})
		}
	}
	return days
}
