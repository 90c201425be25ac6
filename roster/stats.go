/*
stats.go - Employee statistics over a run of days

PURPOSE:
  The reporting layer iterates a month of day-cells and wants one line per
  employee: rest days, worked/leave/half-day-off hours, extra hours. This file
  folds Breakdown and TotalExtraHours over those days.

BAD ENTRIES:
  A bad historical entry degrades only itself. Incomplete shifts are counted,
  missing templates are listed, and the rest of the month still adds up.

EXAMPLE:
  stats := roster.Summarize(week.DaysOf("emp-7"), templates, cfg)
  fmt.Println(stats.Hours.Trabajo, stats.ExtraHours, stats.Hours.RestDays)
*/
package roster

import "github.com/shopspring/decimal"

// DayRecord is one stored cell for one employee.
type DayRecord struct {
	Date        Date
	Assignments []Assignment
}

// EmployeeStats is the aggregate for one employee over a period.
type EmployeeStats struct {
	Days          int
	Hours         HoursBreakdown
	ExtraHours    decimal.Decimal
	SkippedShifts []ShiftID // entries with no matching template
	OverMaxDays   []Date    // days whose worked hours exceed MaxRegularHoursPerDay
}

// Summarize folds every day into one EmployeeStats. The same cfg snapshot is
// used for all days so the totals stay internally consistent.
func Summarize(days []DayRecord, templates Templates, cfg WorkingHoursConfig) EmployeeStats {
	stats := EmployeeStats{
		Hours:      Breakdown(nil, cfg),
		ExtraHours: decimal.Zero,
	}
	maxRegular := decimal.NewFromInt(int64(cfg.MaxRegularHoursPerDay))

	for _, day := range days {
		stats.Days++

		b := Breakdown(day.Assignments, cfg)
		stats.Hours = stats.Hours.Add(b)

		extra := TotalExtraHours(day.Assignments, templates, cfg)
		stats.ExtraHours = stats.ExtraHours.Add(extra.Extra)
		stats.SkippedShifts = append(stats.SkippedShifts, extra.Skipped...)

		if cfg.MaxRegularHoursPerDay > 0 && b.Trabajo.GreaterThan(maxRegular) {
			stats.OverMaxDays = append(stats.OverMaxDays, day.Date)
		}
	}
	return stats
}
