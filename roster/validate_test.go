package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/roster"
)

func TestValidateCell_Clean(t *testing.T) {
	res := roster.ValidateCell([]roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		shift("M", "16:00", "20:00"),
		roster.Nota{Text: "ok"},
	})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Violations)
}

func TestValidateCell_FrancoExcludesShift(t *testing.T) {
	// GIVEN: [Franco, Shift 08:00-16:00]
	// THEN: exactly one error
	res := roster.ValidateCell([]roster.Assignment{roster.Franco{}, shift("M", "08:00", "16:00")})

	assert.False(t, res.Valid)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, roster.ViolationFrancoExclusive, res.Violations[0].Code)
	assert.Equal(t, []int{0, 1}, res.Violations[0].Indices)
}

func TestValidateCell_OverlapNamesBothShifts(t *testing.T) {
	// GIVEN: Shift A 08:00-12:00, Shift B 11:00-15:00
	// THEN: exactly one overlap error naming A and B
	res := roster.ValidateCell([]roster.Assignment{
		shift("A", "08:00", "12:00"),
		shift("B", "11:00", "15:00"),
	})

	require.Len(t, res.Errors(), 1)
	v := res.Violations[0]
	assert.Equal(t, roster.ViolationOverlap, v.Code)
	assert.Contains(t, v.Message, "shift A")
	assert.Contains(t, v.Message, "shift B")
	assert.Equal(t, []int{0, 1}, v.Indices)
}

func TestValidateCell_AccumulatesAllViolations(t *testing.T) {
	// GIVEN: two francos, a shift, and an overlapping medio franco
	// THEN: duplicate franco + franco exclusive + one overlap, all at once
	res := roster.ValidateCell([]roster.Assignment{
		roster.Franco{},
		roster.Franco{},
		shift("M", "08:00", "16:00"),
		roster.MedioFranco{Segment: seg("12:00", "18:00")},
	})

	require.Len(t, res.Violations, 3)
	assert.Equal(t, roster.ViolationDuplicateFranco, res.Violations[0].Code)
	assert.Equal(t, roster.ViolationFrancoExclusive, res.Violations[1].Code)
	assert.Equal(t, roster.ViolationOverlap, res.Violations[2].Code)
}

func TestValidateCell_SingleFrancoAlone(t *testing.T) {
	res := roster.ValidateCell([]roster.Assignment{roster.Franco{}, roster.Nota{Text: "vacaciones"}})
	assert.True(t, res.Valid)
}

func TestValidateCell_IncompleteShiftCannotOverlap(t *testing.T) {
	res := roster.ValidateCell([]roster.Assignment{roster.Shift{ShiftID: "M"}, shift("M", "08:00", "12:00")})
	assert.True(t, res.Valid)
}

func TestValidateCell_EarlyMorningAndNightShiftDoNotClash(t *testing.T) {
	// GIVEN: 01:00-05:00 starts the cell's date, 22:00-02:00 ends it
	// THEN: the two do not overlap on the same date
	res := roster.ValidateCell([]roster.Assignment{
		shift("A", "01:00", "05:00"),
		shift("N", "22:00", "02:00"),
	})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Violations)
}

func TestValidateCell_NightShiftAgainstLateEvening(t *testing.T) {
	res := roster.ValidateCell([]roster.Assignment{
		shift("N", "22:00", "06:00"),
		roster.MedioFranco{Segment: seg("20:00", "23:00")},
	})
	assert.False(t, res.Valid)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, roster.ViolationOverlap, res.Violations[0].Code)
}
