package roster_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/roster"
)

func leaveReq(start, end string) roster.LeaveRequest {
	return roster.LeaveRequest{Type: "embarazo", Segment: seg(start, end)}
}

func TestSplitLeave_MiddleOfContinuousShift(t *testing.T) {
	// GIVEN: Shift 08:00-20:00
	// WHEN: leave 12:00-16:00
	// THEN: Shift 08:00-12:00, Licencia 12:00-16:00, Shift 16:00-20:00, in that order
	day := []roster.Assignment{shift("M", "08:00", "20:00")}

	out, err := roster.SplitLeave(day, 0, leaveReq("12:00", "16:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		shift("M", "16:00", "20:00"),
	}, out)
}

func TestSplitLeave_AtStartLeavesOnlyPostSegment(t *testing.T) {
	out, err := roster.SplitLeave([]roster.Assignment{shift("M", "08:00", "16:00")}, 0, leaveReq("08:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, []roster.Assignment{
		licencia("08:00", "10:00"),
		shift("M", "10:00", "16:00"),
	}, out)
}

func TestSplitLeave_WholeSecondSegmentOfSplitShift(t *testing.T) {
	// GIVEN: split shift 08:00-12:00 / 16:00-20:00
	// WHEN: leave covers exactly 16:00-20:00
	// THEN: first segment unchanged + one Licencia, no zero-length residue
	day := []roster.Assignment{splitShift("P", "08:00", "12:00", "16:00", "20:00")}

	out, err := roster.SplitLeave(day, 0, leaveReq("16:00", "20:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		shift("P", "08:00", "12:00"),
		licencia("16:00", "20:00"),
	}, out)
}

func TestSplitLeave_InsideFirstSegmentOfSplitShift(t *testing.T) {
	// GIVEN: split shift 08:00-12:00 / 16:00-20:00, leave 09:00-10:00
	// THEN: the longer residual stays paired with the second segment
	day := []roster.Assignment{splitShift("P", "08:00", "12:00", "16:00", "20:00")}

	out, err := roster.SplitLeave(day, 0, leaveReq("09:00", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		shift("P", "08:00", "09:00"),
		licencia("09:00", "10:00"),
		splitShift("P", "10:00", "12:00", "16:00", "20:00"),
	}, out)
}

func TestSplitLeave_ResidualKeepsItsSlot(t *testing.T) {
	// GIVEN: split shift 06:00-13:00 / 17:00-21:00
	// WHEN: leave 17:00-19:00 at the start of the second segment
	// THEN: one split shift 06:00-13:00 / 19:00-21:00, the residual in the
	//       second slot, plus the leave
	day := []roster.Assignment{splitShift("M", "06:00", "13:00", "17:00", "21:00")}

	out, err := roster.SplitLeave(day, 0, leaveReq("17:00", "19:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		splitShift("M", "06:00", "13:00", "19:00", "21:00"),
		licencia("17:00", "19:00"),
	}, out)
}

func TestSplitLeave_NightShiftAcrossMidnight(t *testing.T) {
	// GIVEN: 22:00-06:00, leave 02:00-04:00
	// THEN: ordering follows the shift, not the clock
	out, err := roster.SplitLeave([]roster.Assignment{shift("N", "22:00", "06:00")}, 0, leaveReq("02:00", "04:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		shift("N", "22:00", "02:00"),
		licencia("02:00", "04:00"),
		shift("N", "04:00", "06:00"),
	}, out)
}

func TestSplitLeave_MedioFrancoStaysMedioFranco(t *testing.T) {
	day := []roster.Assignment{
		roster.MedioFranco{Segment: seg("08:00", "14:00")},
		shift("T", "14:00", "18:00"),
	}

	out, err := roster.SplitLeave(day, 0, leaveReq("10:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		roster.MedioFranco{Segment: seg("08:00", "10:00")},
		licencia("10:00", "12:00"),
		roster.MedioFranco{Segment: seg("12:00", "14:00")},
		shift("T", "14:00", "18:00"),
	}, out)
}

func TestSplitLeave_PreservesUnrelatedEntries(t *testing.T) {
	// GIVEN: the split shift, another shift, a duplicate of the selected shift
	//        and a note
	// THEN: the duplicate is replaced, the other shift and the note survive,
	//       notes go last
	day := []roster.Assignment{
		roster.Nota{Text: "cambio de turno"},
		shift("T", "20:00", "22:00"),
		shift("M", "08:00", "16:00"),
		shift("M", "08:00", "16:00"),
	}

	out, err := roster.SplitLeave(day, 2, leaveReq("12:00", "16:00"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		shift("T", "20:00", "22:00"),
		roster.Nota{Text: "cambio de turno"},
	}, out)
}

func TestSplitLeave_SecondSplitKeepsEarlierPieces(t *testing.T) {
	// GIVEN: a cell already split once
	day := []roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		shift("M", "16:00", "20:00"),
	}

	// WHEN: carving another leave out of the afternoon piece
	out, err := roster.SplitLeave(day, 2, leaveReq("18:00", "20:00"))
	require.NoError(t, err)

	// THEN: the morning piece and the first leave survive
	assert.Equal(t, []roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		shift("M", "16:00", "18:00"),
		licencia("18:00", "20:00"),
	}, out)
}

func TestSplitLeave_Rejections(t *testing.T) {
	day := []roster.Assignment{splitShift("P", "08:00", "12:00", "16:00", "20:00")}

	tests := []struct {
		name       string
		start, end string
	}{
		{"before shift", "06:00", "09:00"},
		{"after shift", "19:00", "21:00"},
		{"spans both segments", "11:00", "17:00"},
		{"in the gap", "13:00", "14:00"},
		{"zero length", "09:00", "09:00"},
		{"reversed wraps past shift", "10:00", "09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := roster.SplitLeave(day, 0, leaveReq(tt.start, tt.end))
			assert.Nil(t, out)
			require.Error(t, err)
			assert.ErrorIs(t, err, roster.ErrLeaveOutOfRange)

			var lerr *roster.LeaveOutOfRangeError
			assert.ErrorAs(t, err, &lerr)
			assert.True(t, roster.IsClientError(err))
		})
	}

	// Input untouched
	assert.Equal(t, []roster.Assignment{splitShift("P", "08:00", "12:00", "16:00", "20:00")}, day)
}

func TestSplitLeave_BadTarget(t *testing.T) {
	day := []roster.Assignment{roster.Franco{}, roster.Shift{ShiftID: "M"}}

	_, err := roster.SplitLeave(day, 0, leaveReq("08:00", "10:00"))
	assert.ErrorIs(t, err, roster.ErrSplitTargetNotFound)

	_, err = roster.SplitLeave(day, 1, leaveReq("08:00", "10:00"))
	assert.ErrorIs(t, err, roster.ErrSplitTargetNotFound, "incomplete shift has no span to split")

	_, err = roster.SplitLeave(day, 5, leaveReq("08:00", "10:00"))
	assert.ErrorIs(t, err, roster.ErrSplitTargetNotFound)
}

func TestFindSplitTarget(t *testing.T) {
	day := []roster.Assignment{
		roster.Shift{ShiftID: "M"},
		shift("M", "08:00", "12:00"),
		roster.MedioFranco{Segment: seg("14:00", "18:00")},
	}
	i, ok := roster.FindSplitTarget(day, "M")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = roster.FindSplitTarget(day, "")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = roster.FindSplitTarget(day, "X")
	assert.False(t, ok)
}

// =============================================================================
// TOTAL COVERED TIME IS CONSERVED
// =============================================================================

func TestSplitLeave_BreakdownConservesTime(t *testing.T) {
	// GIVEN: 08:00-20:00 (12h continuous, 11.5h after break)
	// WHEN: split around 12:00-16:00
	// THEN: trabajo + licencia == 12h: the two 4h residual pieces fall below
	//       the break threshold, so the 30m deduction of the original is gone.
	original := span("08:00", "20:00")
	out, err := roster.SplitLeave([]roster.Assignment{roster.NewShift("M", original)}, 0, leaveReq("12:00", "16:00"))
	require.NoError(t, err)

	b := roster.Breakdown(out, cfg)
	breakRecovered := roster.HoursFromMinutes(cfg.BreakMinutes)

	assertHours(t, "11.5", roster.ShiftHours(original, cfg))
	assert.True(t, roster.ShiftHours(original, cfg).Add(breakRecovered).Equal(b.Trabajo.Add(b.Licencia)))
}

func TestSplitLeave_BreakdownConservesTime_SplitShift(t *testing.T) {
	// Split shifts have no break, so the total is conserved exactly.
	original := splitSpan("08:00", "12:00", "16:00", "20:00")
	out, err := roster.SplitLeave([]roster.Assignment{roster.NewShift("P", original)}, 0, leaveReq("09:00", "11:00"))
	require.NoError(t, err)

	b := roster.Breakdown(out, cfg)
	assert.True(t, roster.ShiftHours(original, cfg).Equal(b.Trabajo.Add(b.Licencia)),
		"expected %s, got %s", roster.ShiftHours(original, cfg), b.Trabajo.Add(b.Licencia))
	assertHours(t, "2", b.Licencia)
	assert.True(t, decimal.NewFromInt(6).Equal(b.Trabajo))
}

func TestSplitLeave_LongSplitShiftKeepsNoBreak(t *testing.T) {
	// GIVEN: split shift 06:00-13:00 / 17:00-21:00 = 11h, no break because
	//        the gap between the segments is the break
	original := splitSpan("06:00", "13:00", "17:00", "21:00")
	assertHours(t, "11", roster.ShiftHours(original, cfg))

	tests := []struct {
		name       string
		start, end string
		trabajo    string
	}{
		// residual 19:00-21:00 shares the entry with 06:00-13:00: 7 + 2
		{"start of second segment", "17:00", "19:00", "9"},
		// 09:00-13:00 / 17:00-21:00 stays split (8h) and 06:00-08:00 is
		// a short continuous shift below the threshold (2h)
		{"middle of first segment", "08:00", "09:00", "10"},
		// 06:00-11:00 / 17:00-21:00 stays split: 5 + 4
		{"end of first segment", "11:00", "13:00", "9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := roster.SplitLeave([]roster.Assignment{roster.NewShift("M", original)}, 0, leaveReq(tt.start, tt.end))
			require.NoError(t, err)

			// THEN: trabajo + licencia == 11h, nothing lost to a break
			b := roster.Breakdown(out, cfg)
			assertHours(t, tt.trabajo, b.Trabajo)
			assertHours(t, "11", b.Trabajo.Add(b.Licencia))
		})
	}
}

func TestSplitLeave_WholeSegmentLeavesAContinuousShift(t *testing.T) {
	// GIVEN: split shift 06:00-13:00 / 17:00-21:00
	// WHEN: the leave covers the whole second segment
	out, err := roster.SplitLeave([]roster.Assignment{splitShift("M", "06:00", "13:00", "17:00", "21:00")}, 0, leaveReq("17:00", "21:00"))
	require.NoError(t, err)

	// THEN: only 06:00-13:00 is left to work, a single 7h segment. A single
	//       segment over the 6h threshold loses the 30m break: 6.5 + 4.
	assert.Equal(t, []roster.Assignment{
		shift("M", "06:00", "13:00"),
		licencia("17:00", "21:00"),
	}, out)
	b := roster.Breakdown(out, cfg)
	assertHours(t, "6.5", b.Trabajo)
	assertHours(t, "4", b.Licencia)
}

func TestSplitLeave_MedioFrancoIsStillHalfARestDay(t *testing.T) {
	// GIVEN: MedioFranco 08:00-14:00 (6h, half a rest day)
	day := []roster.Assignment{roster.MedioFranco{Segment: seg("08:00", "14:00")}}
	before := roster.Breakdown(day, cfg)
	assertHours(t, "0.5", before.RestDays)

	// WHEN: leave 10:00-12:00 leaves two MedioFranco pieces
	out, err := roster.SplitLeave(day, 0, leaveReq("10:00", "12:00"))
	require.NoError(t, err)

	// THEN: still half a rest day, and the 6h are conserved
	after := roster.Breakdown(out, cfg)
	assertHours(t, "0.5", after.RestDays)
	assertHours(t, "4", after.MedioFranco)
	assertHours(t, "2", after.Licencia)
	assert.Equal(t, roster.DayMedioFranco, roster.DayStatusOf(out))
}

func TestSplitSpan_KeptAndResidual(t *testing.T) {
	split, err := roster.SplitSpan(splitSpan("08:00", "12:00", "16:00", "20:00"), seg("17:00", "18:00"))
	require.NoError(t, err)

	assert.Equal(t, 1, split.Slot)
	require.NotNil(t, split.Kept)
	assert.Equal(t, seg("08:00", "12:00"), *split.Kept)
	assert.Equal(t, []roster.Segment{seg("16:00", "17:00"), seg("18:00", "20:00")}, split.Residual)
	assert.Equal(t, []roster.Segment{seg("08:00", "12:00"), seg("16:00", "17:00"), seg("18:00", "20:00")}, split.Work())
}

// =============================================================================
// PRESETS
// =============================================================================

func TestLeavePresets(t *testing.T) {
	presets := roster.LeavePresets(span("08:00", "16:00"), roster.DefaultPresetWorkMinutes)
	require.Len(t, presets, 2)

	workFirst, ok := roster.FindPreset(presets, roster.PresetWorkFirst, 0)
	require.True(t, ok)
	assert.Equal(t, seg("08:00", "12:00"), workFirst.Work)
	assert.Equal(t, seg("12:00", "16:00"), workFirst.Leave)

	leaveFirst, ok := roster.FindPreset(presets, roster.PresetLeaveFirst, 0)
	require.True(t, ok)
	assert.Equal(t, seg("08:00", "12:00"), leaveFirst.Leave)
	assert.Equal(t, seg("12:00", "16:00"), leaveFirst.Work)
}

func TestLeavePresets_NightShiftWrapsMidnight(t *testing.T) {
	presets := roster.LeavePresets(span("20:00", "06:00"), roster.DefaultPresetWorkMinutes)

	workFirst, _ := roster.FindPreset(presets, roster.PresetWorkFirst, 0)
	assert.Equal(t, seg("20:00", "00:00"), workFirst.Work)
	assert.Equal(t, seg("00:00", "06:00"), workFirst.Leave)

	leaveFirst, _ := roster.FindPreset(presets, roster.PresetLeaveFirst, 0)
	assert.Equal(t, seg("02:00", "06:00"), leaveFirst.Work)
	assert.Equal(t, seg("20:00", "02:00"), leaveFirst.Leave)
}

func TestLeavePresets_ShortShiftHasNone(t *testing.T) {
	assert.Empty(t, roster.LeavePresets(span("08:00", "12:00"), roster.DefaultPresetWorkMinutes))
	assert.Empty(t, roster.LeavePresets(splitSpan("08:00", "12:00", "16:00", "19:00"), roster.DefaultPresetWorkMinutes))
}

func TestLeavePresets_AreValidSplits(t *testing.T) {
	s := span("07:00", "19:00")
	for _, p := range roster.LeavePresets(s, roster.DefaultPresetWorkMinutes) {
		split, err := roster.SplitSpan(s, p.Leave)
		require.NoError(t, err, p.Kind)
		assert.Equal(t, []roster.Segment{p.Work}, split.Work(), p.Kind)
	}
}
