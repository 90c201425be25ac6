package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/roster"
)

func TestSplitSession_HappyPath(t *testing.T) {
	// GIVEN: a cell with one 08:00-20:00 shift
	day := []roster.Assignment{shift("M", "08:00", "20:00")}
	s := roster.NewSplitSession(day, "enfermedad")
	assert.Equal(t, roster.SplitUnsplit, s.State())

	// WHEN: the editor selects, ranges, validates and commits
	require.NoError(t, s.Select(0))
	assert.Equal(t, roster.SplitSelected, s.State())
	require.NoError(t, s.SetRange(seg("12:00", "16:00")))
	assert.Equal(t, roster.SplitRanged, s.State())
	require.NoError(t, s.Validate())
	assert.Equal(t, roster.SplitValidated, s.State())

	out, err := s.Commit()

	// THEN: the replacement cell is produced and the session is terminal
	require.NoError(t, err)
	assert.Equal(t, roster.SplitCommitted, s.State())
	require.Len(t, out, 3)
	assert.Equal(t, roster.Licencia{Type: "enfermedad", Segment: seg("12:00", "16:00")}, out[1])
}

func TestSplitSession_SnapshotIsolatedFromCaller(t *testing.T) {
	day := []roster.Assignment{shift("M", "08:00", "20:00")}
	s := roster.NewSplitSession(day, "enfermedad")
	day[0] = roster.Franco{}

	require.NoError(t, s.Select(0))
}

func TestSplitSession_UsePreset(t *testing.T) {
	s := roster.NewSplitSession([]roster.Assignment{shift("M", "08:00", "16:00")}, "embarazo")
	require.NoError(t, s.Select(0))
	require.Len(t, s.Presets(), 2)

	require.NoError(t, s.UsePreset(roster.PresetLeaveFirst, 0))
	require.NoError(t, s.Validate())
	out, err := s.Commit()
	require.NoError(t, err)

	assert.Equal(t, []roster.Assignment{
		licencia("08:00", "12:00"),
		shift("M", "12:00", "16:00"),
	}, out)
}

func TestSplitSession_UnavailablePreset(t *testing.T) {
	s := roster.NewSplitSession([]roster.Assignment{shift("M", "08:00", "11:00")}, "embarazo")
	require.NoError(t, s.Select(0))
	assert.Empty(t, s.Presets())

	err := s.UsePreset(roster.PresetWorkFirst, 0)
	assert.ErrorIs(t, err, roster.ErrLeaveOutOfRange)
	assert.Equal(t, roster.SplitSelected, s.State())
}

func TestSplitSession_InvalidRangeIsRejected(t *testing.T) {
	// GIVEN: a split shift
	s := roster.NewSplitSession([]roster.Assignment{splitShift("P", "08:00", "12:00", "16:00", "20:00")}, "embarazo")
	require.NoError(t, s.Select(0))

	// WHEN: the range straddles the gap
	require.NoError(t, s.SetRange(seg("11:00", "17:00")))
	err := s.Validate()

	// THEN: the session is rejected and nothing can be committed
	assert.ErrorIs(t, err, roster.ErrLeaveOutOfRange)
	assert.Equal(t, roster.SplitRejected, s.State())
	assert.ErrorIs(t, s.Err(), roster.ErrLeaveOutOfRange)

	out, err := s.Commit()
	assert.Nil(t, out)
	assert.ErrorIs(t, err, roster.ErrInvalidSplitState)
}

func TestSplitSession_RangeCanBeChangedBeforeValidate(t *testing.T) {
	s := roster.NewSplitSession([]roster.Assignment{shift("M", "08:00", "20:00")}, "embarazo")
	require.NoError(t, s.Select(0))
	require.NoError(t, s.SetRange(seg("06:00", "09:00")))
	require.NoError(t, s.SetRange(seg("18:00", "20:00")))
	require.NoError(t, s.Validate())
}

func TestSplitSession_OutOfOrderTransitions(t *testing.T) {
	s := roster.NewSplitSession([]roster.Assignment{shift("M", "08:00", "20:00"), roster.Nota{Text: "x"}}, "embarazo")

	assert.ErrorIs(t, s.SetRange(seg("12:00", "16:00")), roster.ErrInvalidSplitState, "range before select")
	assert.ErrorIs(t, s.Validate(), roster.ErrInvalidSplitState, "validate before range")
	_, err := s.Commit()
	assert.ErrorIs(t, err, roster.ErrInvalidSplitState, "commit before validate")

	assert.ErrorIs(t, s.Select(1), roster.ErrSplitTargetNotFound, "a note cannot be split")
	assert.ErrorIs(t, s.Select(7), roster.ErrSplitTargetNotFound)
	assert.Equal(t, roster.SplitUnsplit, s.State())

	require.NoError(t, s.Select(0))
	require.NoError(t, s.SetRange(seg("12:00", "16:00")))
	require.NoError(t, s.Validate())
	assert.ErrorIs(t, s.Select(0), roster.ErrInvalidSplitState, "selection is frozen once validated")

	_, err = s.Commit()
	require.NoError(t, err)
	_, err = s.Commit()
	assert.ErrorIs(t, err, roster.ErrInvalidSplitState, "commit is one-shot")
}
