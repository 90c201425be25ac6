/*
errors.go - Error types for the roster engine

PURPOSE:
  All error types in one place. Callers match with errors.Is / errors.As.

ERROR CATEGORIES:
  1. Malformed input - a time string that is not HH:MM. Raised at the
     boundary (ParseTime, codec) before any computation runs.
  2. Validation outcomes - leave out of range, overlapping entries. These are
     expected, user-facing results. Overlaps are returned as values
     (CellValidation, []Overlap); a rejected leave split is a returned error.
  3. Degraded entries - incomplete shifts and missing templates. Aggregates
     never fail on these; the entry contributes zero and is reported.

SEE ALSO:
  - validate.go: Produces Violation values
  - leave.go: Returns LeaveOutOfRangeError
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned when a time is not a well-formed HH:MM.
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

	// ErrLeaveOutOfRange is returned when a leave interval is empty or not
	// contained in a single interval of the target shift.
	ErrLeaveOutOfRange = errors.New("leave interval out of range")

	// ErrIncompleteAssignment marks a shift entry without explicit times.
	ErrIncompleteAssignment = errors.New("shift assignment has no explicit times")

	// ErrNoMatchingShiftTemplate marks a shift entry whose template is unknown.
	ErrNoMatchingShiftTemplate = errors.New("no matching shift template")

	// ErrOverlapViolation is the sentinel behind overlap Violations.
	ErrOverlapViolation = errors.New("assignments overlap")

	// ErrInvalidTemplate is returned when a Turno breaks its own invariants.
	ErrInvalidTemplate = errors.New("invalid shift template")

	// ErrSplitTargetNotFound is returned when the day holds nothing to split.
	ErrSplitTargetNotFound = errors.New("split target not found in day")

	// ErrInvalidSplitState is returned when a SplitSession step is called out of order.
	ErrInvalidSplitState = errors.New("invalid split session state")

	// ErrUnknownAssignmentType is returned by the codec for unknown "type" values.
	ErrUnknownAssignmentType = errors.New("unknown assignment type")

	// ErrTurnoNotFound is returned by stores for an unknown ShiftID.
	ErrTurnoNotFound = errors.New("turno not found")

	// ErrInvalidConfig is returned for negative working-hours settings.
	ErrInvalidConfig = errors.New("working hours settings must not be negative")

	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TimeFormatError names the offending value.
type TimeFormatError struct {
	Value string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time %q: must be HH:MM (00:00-23:59)", e.Value)
}

func (e *TimeFormatError) Unwrap() error { return ErrInvalidTimeFormat }

// LeaveOutOfRangeError describes a rejected leave split.
type LeaveOutOfRangeError struct {
	Leave  Segment
	Target Span
	Reason string
}

func (e *LeaveOutOfRangeError) Error() string {
	return fmt.Sprintf("leave %s out of range for shift %s: %s", e.Leave, e.Target, e.Reason)
}

func (e *LeaveOutOfRangeError) Unwrap() error { return ErrLeaveOutOfRange }

// TemplateError describes an invalid Turno.
type TemplateError struct {
	ID     ShiftID
	Reason string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("turno %s: %s", e.ID, e.Reason)
}

func (e *TemplateError) Unwrap() error { return ErrInvalidTemplate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrLeaveOutOfRange) ||
		errors.Is(err, ErrInvalidTemplate) ||
		errors.Is(err, ErrSplitTargetNotFound) ||
		errors.Is(err, ErrInvalidSplitState) ||
		errors.Is(err, ErrUnknownAssignmentType) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidConfig)
}
