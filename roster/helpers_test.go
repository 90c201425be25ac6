package roster_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var cfg = roster.WorkingHoursConfig{BreakMinutes: 30, MinHoursForBreak: 6, MaxRegularHoursPerDay: 8}

func tm(s string) roster.TimeOfDay { return roster.MustParseTime(s) }

func seg(start, end string) roster.Segment { return roster.MustSegment(start, end) }

func span(start, end string) roster.Span { return roster.Span{First: seg(start, end)} }

func splitSpan(s1, e1, s2, e2 string) roster.Span {
	second := seg(s2, e2)
	return roster.Span{First: seg(s1, e1), Second: &second}
}

func shift(id, start, end string) roster.Shift {
	return roster.NewShift(roster.ShiftID(id), span(start, end))
}

func splitShift(id, s1, e1, s2, e2 string) roster.Shift {
	return roster.NewShift(roster.ShiftID(id), splitSpan(s1, e1, s2, e2))
}

func turno(id, start, end string) roster.Turno {
	return roster.Turno{ID: roster.ShiftID(id), Name: id, Span: span(start, end)}
}

func licencia(start, end string) roster.Licencia {
	return roster.Licencia{Type: "embarazo", Segment: seg(start, end)}
}

func assertHours(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		append([]any{"expected %s hours, got %s", want, got.String()}, msgAndArgs...)...)
}
