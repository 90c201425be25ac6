/*
leave.go - Carving a leave interval out of a shift

PURPOSE:
  An editor marks part of a shift as leave (licencia). This file computes the
  assignment list that replaces the day-cell: the work left before and after
  the leave, the leave itself, and everything else in the cell untouched.

ALGORITHM (SplitSpan):
  1. The leave must be non-empty and fit entirely inside ONE interval of the
     shift. It may not straddle the gap of a split shift.
  2. If the leave covers that interval exactly, no residual work is left
     for it.
  3. Otherwise the residuals are [intervalStart, leaveStart) and
     [leaveEnd, intervalEnd), each emitted only when non-empty.
  4. The other interval of a split shift is kept as it was.

REPLACEMENT (SplitLeave):
  The selected entry, and any entry of the same type (same ShiftID, or any
  MedioFranco) overlapping it, are replaced by the new set. Residual work is
  re-emitted with the type of the original: Shift pieces keep the ShiftID,
  MedioFranco pieces stay MedioFranco. Every other entry of the cell is kept.

SPLIT SHIFTS:
  A split shift stays a split shift. The kept interval keeps its slot and a
  residual takes the slot of the interval it came from, so the entry still
  gets no break deduction. When the leave sits in the middle of an interval,
  the longer residual shares the entry with the kept interval and the shorter
  one becomes its own Shift. When the leave covers a whole interval only the
  kept interval is left, and it is counted as a continuous shift.

ORDERING:
  Time-bearing entries come first in chronological order, with the clock
  read from the end of the cell's longest idle stretch (so night shifts
  order correctly across midnight); on equal start, work sorts before
  leave. Non-time-bearing entries (notes) follow in their original order.
  Rendering relies on this order.

EXAMPLE:
  08:00-20:00, leave 12:00-16:00 ->
    Shift 08:00-12:00, Licencia 12:00-16:00, Shift 16:00-20:00

SEE ALSO:
  - split_session.go: Editor state machine and quick presets
*/
package roster

import (
	"slices"
	"sort"
)

// =============================================================================
// SPAN SPLIT - Pure interval math
// =============================================================================

// SpanSplit is the outcome of carving a leave out of a span.
type SpanSplit struct {
	Residual []Segment // what is left of the leave's segment, never zero-length
	Kept     *Segment  // the untouched other segment of a split span
	Leave    Segment
	Slot     int // 0 if the leave sits in the first segment, 1 if in the second
}

// Work returns every remaining work segment in interval order.
func (s SpanSplit) Work() []Segment {
	if s.Kept == nil {
		return s.Residual
	}
	if s.Slot == 0 {
		return append(append([]Segment(nil), s.Residual...), *s.Kept)
	}
	return append([]Segment{*s.Kept}, s.Residual...)
}

// SplitSpan carves leave out of span. It returns a *LeaveOutOfRangeError when
// the leave is empty or not contained in a single interval of span.
func SplitSpan(span Span, leave Segment) (SpanSplit, error) {
	reject := func(reason string) (SpanSplit, error) {
		return SpanSplit{}, &LeaveOutOfRangeError{Leave: leave, Target: span, Reason: reason}
	}

	leaveIv := leave.Interval()
	if leaveIv.IsEmpty() {
		return reject("leave has zero length")
	}

	segments := []Segment{span.First}
	if span.Second != nil {
		segments = append(segments, *span.Second)
	}

	slot := -1
	for i, seg := range segments {
		iv := seg.Interval()
		if !iv.IsEmpty() && iv.Contains(leaveIv) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return reject("leave must lie inside a single segment of the shift")
	}

	target := segments[slot].Interval()
	if leaveIv.Start < target.Start {
		leaveIv = leaveIv.Shift(MinutesPerDay)
	}

	split := SpanSplit{Leave: leave, Slot: slot}
	if leaveIv.Start != target.Start {
		split.Residual = append(split.Residual, segmentOf(Interval{Start: target.Start, End: leaveIv.Start}))
	}
	if leaveIv.End != target.End {
		split.Residual = append(split.Residual, segmentOf(Interval{Start: leaveIv.End, End: target.End}))
	}
	if len(segments) == 2 {
		kept := segments[1-slot]
		split.Kept = &kept
	}
	return split, nil
}

func segmentOf(iv Interval) Segment {
	return Segment{Start: TimeOfDay(wrap(iv.Start)), End: TimeOfDay(wrap(iv.End))}
}

// =============================================================================
// DAY SPLIT - Replace the selected entry in a day-cell
// =============================================================================

// LeaveRequest is the leave to carve out.
type LeaveRequest struct {
	Type    LicenciaType
	Segment Segment
}

// SplitLeave carves leave out of day[index], which must be a complete Shift or
// a MedioFranco, and returns the new day-cell. On error the input is untouched
// and no partial list is returned.
func SplitLeave(day []Assignment, index int, leave LeaveRequest) ([]Assignment, error) {
	if index < 0 || index >= len(day) {
		return nil, ErrSplitTargetNotFound
	}
	selected := day[index]
	span, ok := splittableSpan(selected)
	if !ok {
		return nil, ErrSplitTargetNotFound
	}

	split, err := SplitSpan(span, leave.Segment)
	if err != nil {
		return nil, err
	}

	out := workEntries(selected, split)
	out = append(out, Licencia{Type: leave.Type, Segment: leave.Segment})

	for i, a := range day {
		if i == index || replacedBy(selected, a) {
			continue
		}
		out = append(out, a)
	}

	orderCell(out)
	return out, nil
}

// FindSplitTarget returns the index of the first complete entry matching the
// ShiftID, or of the first MedioFranco when id is empty.
func FindSplitTarget(day []Assignment, id ShiftID) (int, bool) {
	for i, a := range day {
		switch v := a.(type) {
		case Shift:
			if id != "" && v.ShiftID == id && v.IsComplete() {
				return i, true
			}
		case MedioFranco:
			if id == "" {
				return i, true
			}
		}
	}
	return -1, false
}

func splittableSpan(a Assignment) (Span, bool) {
	switch v := a.(type) {
	case Shift:
		return v.Span()
	case MedioFranco:
		return Span{First: v.Segment}, true
	default:
		return Span{}, false
	}
}

// workEntries re-emits the remaining work of the selected entry. A split
// shift with a residual keeps two slots; everything else is one entry per
// segment.
func workEntries(selected Assignment, split SpanSplit) []Assignment {
	s, ok := selected.(Shift)
	if !ok || split.Kept == nil || len(split.Residual) == 0 {
		var out []Assignment
		for _, seg := range split.Work() {
			out = append(out, retag(selected, seg))
		}
		return out
	}

	paired := 0
	if len(split.Residual) == 2 && split.Residual[1].Minutes() > split.Residual[0].Minutes() {
		paired = 1
	}
	residual := split.Residual[paired]
	kept := *split.Kept

	span := Span{First: residual, Second: &kept}
	if split.Slot == 1 {
		span = Span{First: kept, Second: &residual}
	}
	out := []Assignment{NewShift(s.ShiftID, span)}
	for i, seg := range split.Residual {
		if i != paired {
			out = append(out, NewShift(s.ShiftID, Span{First: seg}))
		}
	}
	return out
}

func retag(original Assignment, seg Segment) Assignment {
	if s, ok := original.(Shift); ok {
		return NewShift(s.ShiftID, Span{First: seg})
	}
	return MedioFranco{Segment: seg}
}

// replacedBy reports whether a is type-equivalent to the selected entry and
// overlaps it, i.e. it describes the same shift and must not survive the split.
func replacedBy(selected, a Assignment) bool {
	switch s := selected.(type) {
	case Shift:
		other, ok := a.(Shift)
		if !ok || other.ShiftID != s.ShiftID {
			return false
		}
		return !other.IsComplete() || AssignmentsOverlap(s, other)
	case MedioFranco:
		if _, ok := a.(MedioFranco); !ok {
			return false
		}
		return AssignmentsOverlap(s, a)
	}
	return false
}

// orderCell sorts time-bearing entries chronologically, work before leave on
// ties, and keeps non-time-bearing entries last in their original order.
func orderCell(cell []Assignment) {
	anchor := cellAnchor(cell)
	rank := func(a Assignment) (group, start, kind int) {
		ivs := IntervalsOf(a)
		if len(ivs) == 0 {
			return 1, 0, 0
		}
		start = wrap(ivs[0].Start - anchor)
		if _, ok := a.(Licencia); ok {
			kind = 1
		}
		return 0, start, kind
	}
	sort.SliceStable(cell, func(i, j int) bool {
		gi, si, ki := rank(cell[i])
		gj, sj, kj := rank(cell[j])
		if gi != gj {
			return gi < gj
		}
		if gi == 1 {
			return false
		}
		if si != sj {
			return si < sj
		}
		return ki < kj
	})
}

// cellAnchor picks where the cell's day "begins": the first start after the
// widest idle stretch of the 24h clock. A day cell anchors at its morning
// start, a night cell at its evening start.
func cellAnchor(cell []Assignment) int {
	var starts []int
	for _, a := range cell {
		for _, iv := range IntervalsOf(a) {
			starts = append(starts, wrap(iv.Start))
		}
	}
	if len(starts) == 0 {
		return 0
	}
	sort.Ints(starts)

	anchor, widest := starts[0], starts[0]+MinutesPerDay-starts[len(starts)-1]
	for i := 1; i < len(starts); i++ {
		if gap := starts[i] - starts[i-1]; gap > widest {
			anchor, widest = starts[i], gap
		}
	}
	return anchor
}

// =============================================================================
// QUICK PRESETS
// =============================================================================

// DefaultPresetWorkMinutes is the continuous work kept by the quick presets.
const DefaultPresetWorkMinutes = 4 * MinutesPerHour

type PresetKind string

const (
	PresetWorkFirst  PresetKind = "work_first"  // work the first 4h, leave the rest
	PresetLeaveFirst PresetKind = "leave_first" // leave first, work the last 4h
)

// LeavePreset is a ready-made split of one segment.
type LeavePreset struct {
	Kind    PresetKind
	Segment int // 0 = first segment, 1 = second
	Work    Segment
	Leave   Segment
}

// LeavePresets offers the two canonical splits for every segment longer than
// workMinutes. Only interval math runs here; nothing is split until the
// editor commits one of them.
func LeavePresets(span Span, workMinutes int) []LeavePreset {
	segments := []Segment{span.First}
	if span.Second != nil {
		segments = append(segments, *span.Second)
	}

	var presets []LeavePreset
	for i, seg := range segments {
		if workMinutes <= 0 || seg.Minutes() <= workMinutes {
			continue
		}
		pivot := seg.Start.Add(workMinutes)
		presets = append(presets, LeavePreset{
			Kind:    PresetWorkFirst,
			Segment: i,
			Work:    Segment{Start: seg.Start, End: pivot},
			Leave:   Segment{Start: pivot, End: seg.End},
		})

		pivot = seg.End.Add(-workMinutes)
		presets = append(presets, LeavePreset{
			Kind:    PresetLeaveFirst,
			Segment: i,
			Work:    Segment{Start: pivot, End: seg.End},
			Leave:   Segment{Start: seg.Start, End: pivot},
		})
	}
	return presets
}

// FindPreset picks one preset by kind and segment.
func FindPreset(presets []LeavePreset, kind PresetKind, segment int) (LeavePreset, bool) {
	i := slices.IndexFunc(presets, func(p LeavePreset) bool {
		return p.Kind == kind && p.Segment == segment
	})
	if i < 0 {
		return LeavePreset{}, false
	}
	return presets[i], true
}
