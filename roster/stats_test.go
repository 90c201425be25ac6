package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/shift-engine/roster"
)

func TestSummarize(t *testing.T) {
	// GIVEN: a week for Ana with a long day, a rest day, a half day, a leave,
	//        an incomplete legacy entry and a shift with no template
	templates := roster.NewTemplates(turno("M", "08:00", "16:00"))

	week := roster.NewWeek()
	// 9.5h worked, 2h over the 7.5h template
	week.Set("2025-03-10", "ana", []roster.Assignment{shift("M", "08:00", "18:00")})
	week.Set("2025-03-11", "ana", []roster.Assignment{roster.Franco{}})
	week.Set("2025-03-12", "ana", []roster.Assignment{
		roster.MedioFranco{Segment: seg("08:00", "12:00")},
		shift("M", "12:00", "16:00"),
	})
	week.Set("2025-03-13", "ana", []roster.Assignment{
		shift("M", "08:00", "12:00"),
		licencia("12:00", "16:00"),
		roster.Shift{ShiftID: "M"},
	})
	week.Set("2025-03-14", "ana", []roster.Assignment{shift("X", "08:00", "10:00")})
	week.Set("2025-03-14", "beto", []roster.Assignment{roster.Franco{}})

	// WHEN
	stats := roster.Summarize(week.DaysOf("ana"), templates, cfg)

	// THEN
	assert.Equal(t, 5, stats.Days)
	assertHours(t, "19.5", stats.Hours.Trabajo) // 9.5 + 4 + 4 + 2
	assertHours(t, "4", stats.Hours.Licencia)
	assertHours(t, "4", stats.Hours.MedioFranco)
	assertHours(t, "1.5", stats.Hours.RestDays)
	assert.Equal(t, 1, stats.Hours.Incomplete)
	assertHours(t, "2", stats.ExtraHours)
	assert.Equal(t, []roster.ShiftID{"X"}, stats.SkippedShifts)
	assert.Equal(t, []roster.Date{"2025-03-10"}, stats.OverMaxDays)
}

func TestSummarize_Empty(t *testing.T) {
	stats := roster.Summarize(nil, nil, cfg)
	assert.Zero(t, stats.Days)
	assertHours(t, "0", stats.Hours.Total())
	assertHours(t, "0", stats.ExtraHours)
}

func TestSummarize_NoDailyCap(t *testing.T) {
	uncapped := cfg
	uncapped.MaxRegularHoursPerDay = 0

	stats := roster.Summarize([]roster.DayRecord{
		{Date: "2025-03-10", Assignments: []roster.Assignment{shift("M", "06:00", "20:00")}},
	}, nil, uncapped)

	assert.Empty(t, stats.OverMaxDays)
	assert.Equal(t, []roster.ShiftID{"M"}, stats.SkippedShifts)
}
