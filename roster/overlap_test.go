package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/roster"
)

func TestSplitIntoIntervals(t *testing.T) {
	assert.Len(t, roster.SplitIntoIntervals(span("08:00", "16:00")), 1)
	assert.Len(t, roster.SplitIntoIntervals(splitSpan("08:00", "12:00", "16:00", "20:00")), 2)
	assert.Empty(t, roster.SplitIntoIntervals(span("08:00", "08:00")))
	assert.Empty(t, roster.Shift{ShiftID: "M"}.Intervals(), "incomplete shift has no intervals")

	night := roster.SplitIntoIntervals(span("22:00", "06:00"))
	require.Len(t, night, 1)
	assert.Equal(t, 1800, night[0].End)
}

func TestShiftsOverlap(t *testing.T) {
	morningEvening := splitSpan("08:00", "12:00", "16:00", "20:00")

	assert.False(t, roster.ShiftsOverlap(morningEvening, span("12:00", "16:00")), "fits in the gap")
	assert.True(t, roster.ShiftsOverlap(morningEvening, span("19:00", "21:00")), "hits second segment")
	assert.True(t, roster.ShiftsOverlap(span("11:00", "13:00"), morningEvening), "hits first segment")
	assert.False(t, roster.ShiftsOverlap(morningEvening, roster.Span{}), "empty span")
}

func TestTurnosOverlap(t *testing.T) {
	assert.True(t, roster.TurnosOverlap(turno("N", "22:00", "06:00"), turno("T", "15:00", "23:00")))
	assert.False(t, roster.TurnosOverlap(turno("N", "22:00", "06:00"), turno("T", "14:00", "22:00")))
	// Both read on the same date: the morning template ends before the night one starts.
	assert.False(t, roster.TurnosOverlap(turno("N", "22:00", "06:00"), turno("M", "05:00", "13:00")))
}

func TestTurno_Validate(t *testing.T) {
	second := seg("11:00", "15:00")
	bad := roster.Turno{ID: "P", Span: roster.Span{First: seg("08:00", "12:00"), Second: &second}}

	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrInvalidTemplate)

	assert.NoError(t, turno("M", "08:00", "16:00").Validate())
	assert.Error(t, roster.Turno{ID: "Z", Span: span("08:00", "08:00")}.Validate())
	assert.Error(t, roster.Turno{Span: span("08:00", "12:00")}.Validate())
}

func TestValidateScheduleAssignments(t *testing.T) {
	// GIVEN: a week where Ana has a clash on Monday and Beto is clean
	week := roster.NewWeek()
	week.Set("2025-03-10", "ana", []roster.Assignment{
		shift("M", "08:00", "12:00"),
		shift("T", "11:00", "15:00"),
		roster.Shift{ShiftID: "N"}, // incomplete, ignored
	})
	week.Set("2025-03-10", "beto", []roster.Assignment{
		shift("M", "08:00", "12:00"),
		shift("T", "12:00", "16:00"),
	})
	week.Set("2025-03-11", "ana", []roster.Assignment{roster.Franco{}})

	overlaps := roster.ValidateScheduleAssignments(week)

	require.Len(t, overlaps, 1)
	o := overlaps[0]
	assert.Equal(t, roster.Date("2025-03-10"), o.Date)
	assert.Equal(t, roster.EmployeeID("ana"), o.EmployeeID)
	assert.Equal(t, roster.ShiftID("M"), o.ShiftA)
	assert.Equal(t, roster.ShiftID("T"), o.ShiftB)
	assert.Contains(t, o.Message, "ana")
}

func TestValidateScheduleAssignments_Ordered(t *testing.T) {
	week := roster.NewWeek()
	clash := []roster.Assignment{shift("A", "08:00", "12:00"), shift("B", "10:00", "14:00")}
	week.Set("2025-03-12", "zoe", clash)
	week.Set("2025-03-10", "zoe", clash)
	week.Set("2025-03-10", "ana", clash)

	overlaps := roster.ValidateScheduleAssignments(week)

	require.Len(t, overlaps, 3)
	assert.Equal(t, roster.EmployeeID("ana"), overlaps[0].EmployeeID)
	assert.Equal(t, roster.EmployeeID("zoe"), overlaps[1].EmployeeID)
	assert.Equal(t, roster.Date("2025-03-12"), overlaps[2].Date)
}

func TestDayStatus(t *testing.T) {
	week := roster.NewWeek()
	week.Set("2025-03-10", "ana", []roster.Assignment{roster.Franco{}})
	week.Set("2025-03-10", "beto", []roster.Assignment{
		roster.MedioFranco{Segment: seg("08:00", "12:00")},
		shift("T", "12:00", "16:00"),
	})
	week.Set("2025-03-10", "caro", []roster.Assignment{shift("M", "08:00", "16:00")})

	status := week.DayStatus()["2025-03-10"]

	assert.Equal(t, roster.DayFranco, status["ana"])
	assert.Equal(t, roster.DayMedioFranco, status["beto"])
	assert.Equal(t, roster.DayNormal, status["caro"])
}
