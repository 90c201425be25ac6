/*
hours.go - Worked hours for a single shift, with break deduction

BREAK-DEDUCTION POLICY:
  - Split shift (two segments): never deducted. The gap between the two
    segments is the break.

  - Continuous shift: if the total is at least MinHoursForBreak hours,
    BreakMinutes are deducted, floored at zero.

  - Otherwise the total is returned untouched.

    This asymmetry is payroll-relevant and must not change silently:
    08:00-16:00             -> 7.5h  (8h - 30m)
    08:00-13:00             -> 5.0h  (below threshold)
    08:00-12:00 + 16:00-20:00 -> 8.0h  (split, no deduction)
*/
package roster

import "github.com/shopspring/decimal"

// SpanMinutes sums the durations of every interval in the span.
func SpanMinutes(s Span) int {
	total := 0
	for _, iv := range SplitIntoIntervals(s) {
		total += iv.Duration()
	}
	return total
}

// ShiftMinutes applies the break policy and returns worked minutes.
func ShiftMinutes(s Span, cfg WorkingHoursConfig) int {
	total := SpanMinutes(s)
	if total == 0 {
		return 0
	}
	if s.IsSplit() {
		return total
	}
	if total >= cfg.MinHoursForBreak*MinutesPerHour {
		return max(0, total-cfg.BreakMinutes)
	}
	return total
}

// ShiftHours is ShiftMinutes in decimal hours.
func ShiftHours(s Span, cfg WorkingHoursConfig) decimal.Decimal {
	return HoursFromMinutes(ShiftMinutes(s, cfg))
}

// Hours returns the worked hours of a logged shift from its own explicit
// times. Incomplete shifts are worth zero.
func (s Shift) Hours(cfg WorkingHoursConfig) decimal.Decimal {
	span, ok := s.Span()
	if !ok {
		return decimal.Zero
	}
	return ShiftHours(span, cfg)
}

// Hours returns the template's theoretical hours.
func (t Turno) Hours(cfg WorkingHoursConfig) decimal.Decimal {
	return ShiftHours(t.Span, cfg)
}
