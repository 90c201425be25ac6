/*
time.go - Wall-clock arithmetic for shift segments

PURPOSE:
  Every time in a roster is a naive local "HH:MM" with no date and no zone.
  This file turns those strings into minutes-since-midnight and resolves
  midnight crossing in exactly one place (Normalize). Everything downstream
  (overlap, hours, leave splitting) works on normalized Intervals only.

KEY CONCEPTS:
  TimeOfDay: minutes since midnight, 0..1439
  Interval:  {Start, End} in minutes where End may exceed 1440
             22:00-06:00 -> {1320, 1800}
  Segment:   a clock range as entered by an editor (start, end)

ZERO-LENGTH RANGES:
  A range whose start equals its end is a marker, not a full day.
  RangeDuration("08:00", "08:00") == 0, never 1440.

SEE ALSO:
  - overlap.go: Uses Normalize to compare shift intervals
  - hours.go: Uses RangeDuration for worked time
*/
package roster

import (
	"fmt"
	"strconv"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// =============================================================================
// TIME OF DAY
// =============================================================================

// TimeOfDay is a naive wall-clock time stored as minutes since midnight.
type TimeOfDay int

// ParseTime converts "HH:MM" into a TimeOfDay.
// Hours must be 00-23 and minutes 00-59; anything else is ErrInvalidTimeFormat.
func ParseTime(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, &TimeFormatError{Value: s}
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || !isDigits(s[:2]) {
		return 0, &TimeFormatError{Value: s}
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || !isDigits(s[3:]) {
		return 0, &TimeFormatError{Value: s}
	}
	if h > 23 || m > 59 {
		return 0, &TimeFormatError{Value: s}
	}
	return TimeOfDay(h*MinutesPerHour + m), nil
}

// MustParseTime is ParseTime for values already known to be valid.
// It panics on malformed input.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ToMinutes parses "HH:MM" and returns minutes since midnight.
func ToMinutes(s string) (int, error) {
	t, err := ParseTime(s)
	return int(t), err
}

// Minutes returns the value as a plain int.
func (t TimeOfDay) Minutes() int { return int(t) }

// Add returns the time d minutes later (or earlier), wrapped onto the clock.
func (t TimeOfDay) Add(d int) TimeOfDay {
	return TimeOfDay(wrap(int(t) + d))
}

func (t TimeOfDay) String() string {
	m := wrap(int(t))
	return fmt.Sprintf("%02d:%02d", m/MinutesPerHour, m%MinutesPerHour)
}

// wrap folds any minute count onto [0, 1440).
func wrap(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// TimePtr is a helper for building optional times in literals.
func TimePtr(t TimeOfDay) *TimeOfDay { return &t }

// =============================================================================
// INTERVAL - Normalized range, End may run past midnight
// =============================================================================

type Interval struct {
	Start int
	End   int
}

// Normalize resolves midnight crossing: if end <= start the range is taken to
// finish on the next day. start == end stays zero-length.
func Normalize(start, end TimeOfDay) Interval {
	s, e := int(start), int(end)
	if e < s {
		e += MinutesPerDay
	}
	return Interval{Start: s, End: e}
}

func (i Interval) Duration() int { return i.End - i.Start }

func (i Interval) IsEmpty() bool { return i.End <= i.Start }

// Shift moves the interval by d minutes.
func (i Interval) Shift(d int) Interval { return Interval{Start: i.Start + d, End: i.End + d} }

// Overlaps is the half-open test on normalized values. Intervals that only
// touch at an endpoint do not overlap. Both intervals are read on the cell's
// own date, so 01:00-05:00 (early morning) does not overlap 22:00-02:00
// (late evening into the next day).
func (i Interval) Overlaps(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether o lies fully inside i (after aligning o onto the
// same day as i when o starts past midnight).
func (i Interval) Contains(o Interval) bool {
	if o.Start < i.Start {
		o = o.Shift(MinutesPerDay)
	}
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) String() string {
	return TimeOfDay(i.Start).String() + "-" + TimeOfDay(i.End).String()
}

// =============================================================================
// RANGE HELPERS - String-level operations used at the editor boundary
// =============================================================================

// RangeDuration returns the minutes between start and end, crossing midnight
// when end <= start. Equal times yield 0.
func RangeDuration(start, end TimeOfDay) int {
	if start == end {
		return 0
	}
	return Normalize(start, end).Duration()
}

// RangesOverlap reports whether [s1,e1) and [s2,e2) overlap once both are
// normalized. It is symmetric.
func RangesOverlap(s1, e1, s2, e2 TimeOfDay) bool {
	return Normalize(s1, e1).Overlaps(Normalize(s2, e2))
}

// =============================================================================
// SEGMENT
// =============================================================================

// Segment is one working period as entered: start and end clock times.
type Segment struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewSegment(start, end string) (Segment, error) {
	s, err := ParseTime(start)
	if err != nil {
		return Segment{}, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return Segment{}, err
	}
	return Segment{Start: s, End: e}, nil
}

// MustSegment panics on malformed input.
func MustSegment(start, end string) Segment {
	seg, err := NewSegment(start, end)
	if err != nil {
		panic(err)
	}
	return seg
}

func (s Segment) Interval() Interval { return Normalize(s.Start, s.End) }

func (s Segment) Minutes() int { return RangeDuration(s.Start, s.End) }

func (s Segment) String() string { return s.Start.String() + "-" + s.End.String() }
