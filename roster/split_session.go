package roster

import "fmt"

// SplitState is the lifecycle of one leave split in an editor.
//
//	Unsplit -> Selected -> Ranged -> Validated -> Committed
//	                                  \-> Rejected
//
// Committed and Rejected are terminal. Nothing is returned to the caller
// before Commit, so no half-applied cell can be persisted.
type SplitState string

const (
	SplitUnsplit   SplitState = "unsplit"
	SplitSelected  SplitState = "selected"
	SplitRanged    SplitState = "ranged"
	SplitValidated SplitState = "validated"
	SplitCommitted SplitState = "committed"
	SplitRejected  SplitState = "rejected"
)

// SplitSession drives one leave split over a snapshot of a day-cell.
type SplitSession struct {
	day       []Assignment
	index     int
	span      Span
	leave     LeaveRequest
	leaveType LicenciaType
	state     SplitState
	err       error
}

// NewSplitSession copies the cell so later edits by the caller cannot leak in.
func NewSplitSession(day []Assignment, leaveType LicenciaType) *SplitSession {
	snapshot := make([]Assignment, len(day))
	copy(snapshot, day)
	return &SplitSession{day: snapshot, index: -1, leaveType: leaveType, state: SplitUnsplit}
}

func (s *SplitSession) State() SplitState { return s.state }

// Err returns the rejection reason once the session is Rejected.
func (s *SplitSession) Err() error { return s.err }

func (s *SplitSession) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidSplitState, op, s.state)
}

func (s *SplitSession) terminal() bool {
	return s.state == SplitCommitted || s.state == SplitRejected
}

// Select picks the entry to split. It may be called again to change the
// selection until the session is validated.
func (s *SplitSession) Select(index int) error {
	if s.terminal() || s.state == SplitValidated {
		return s.transitionError("select")
	}
	if index < 0 || index >= len(s.day) {
		return ErrSplitTargetNotFound
	}
	span, ok := splittableSpan(s.day[index])
	if !ok {
		return ErrSplitTargetNotFound
	}
	s.index, s.span, s.state = index, span, SplitSelected
	return nil
}

// Presets lists the quick splits for the selected entry.
func (s *SplitSession) Presets() []LeavePreset {
	return s.PresetsFor(DefaultPresetWorkMinutes)
}

// PresetsFor lists the quick splits keeping workMinutes of work.
func (s *SplitSession) PresetsFor(workMinutes int) []LeavePreset {
	if s.state == SplitUnsplit {
		return nil
	}
	return LeavePresets(s.span, workMinutes)
}

// UsePreset fills the leave range from a quick preset.
func (s *SplitSession) UsePreset(kind PresetKind, segment int) error {
	p, ok := FindPreset(s.Presets(), kind, segment)
	if !ok {
		return fmt.Errorf("%w: preset %s for segment %d not available", ErrLeaveOutOfRange, kind, segment)
	}
	return s.SetRange(p.Leave)
}

// SetRange sets a manual leave range.
func (s *SplitSession) SetRange(leave Segment) error {
	if s.state != SplitSelected && s.state != SplitRanged {
		return s.transitionError("set range")
	}
	s.leave = LeaveRequest{Type: s.leaveType, Segment: leave}
	s.state = SplitRanged
	return nil
}

// Validate checks the range against the selected entry. A failed check moves
// the session to Rejected and returns the *LeaveOutOfRangeError.
func (s *SplitSession) Validate() error {
	if s.state != SplitRanged {
		return s.transitionError("validate")
	}
	if _, err := SplitSpan(s.span, s.leave.Segment); err != nil {
		s.state, s.err = SplitRejected, err
		return err
	}
	s.state = SplitValidated
	return nil
}

// Commit produces the replacement cell.
func (s *SplitSession) Commit() ([]Assignment, error) {
	if s.state != SplitValidated {
		return nil, s.transitionError("commit")
	}
	out, err := SplitLeave(s.day, s.index, s.leave)
	if err != nil {
		s.state, s.err = SplitRejected, err
		return nil, err
	}
	s.state = SplitCommitted
	return out, nil
}
