package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/diegomolina2/appreset/internal/state"
)

// Thursday.
var now = time.Date(2026, time.August, 27, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return state.FormatDate(now.AddDate(0, 0, offset))
}

func TestComputeCountsPeriodsAndStreaks(t *testing.T) {
	d := state.DefaultUserData()
	d.Weights = []state.WeightLog{
		{Date: day(-40), Weight: 86},
		{Date: day(-2), Weight: 83.5},
		{Date: day(-1), Weight: 83},
	}
	d.Moods = []state.MoodLog{{Date: day(0), Mood: 4}}

	s := Compute(d, now)

	assert.True(t, s.TodayActive)
	assert.Equal(t, 4, s.TotalActiveDays)
	assert.Equal(t, 3, s.DaysThisWeek) // Thu minus 2, minus 1, today
	assert.Equal(t, 3, s.DaysThisMonth)
	assert.Equal(t, 4, s.DaysThisYear)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.InDelta(t, -3.0, s.WeightChange, 0.001)
}

func TestComputeCountsCompletedChallengesAndBadges(t *testing.T) {
	d := state.DefaultUserData()
	d.Challenges["7-day-challenge"] = &state.Challenge{
		ID:            "7-day-challenge",
		Days:          7,
		CompletedDays: []int{1, 2, 3, 4, 5, 6, 7},
	}
	d.Challenges["14-day-challenge"] = &state.Challenge{
		ID:            "14-day-challenge",
		Days:          14,
		CompletedDays: []int{1},
	}
	d.Badges = []state.Badge{{ID: "first_step"}, {ID: "week_warrior"}}

	s := Compute(d, now)
	assert.Equal(t, 1, s.ChallengesCompleted)
	assert.Equal(t, 2, s.BadgesUnlocked)
}

func TestPeriodsWindows(t *testing.T) {
	d := state.DefaultUserData()
	d.WaterLog = []state.WaterLog{{ID: "w1", Date: day(0), Liters: 2}}

	periods := Periods(d, now)
	byName := map[string]DaysStat{}
	for _, p := range periods {
		byName[p.Period] = p
	}

	assert.Equal(t, 4, byName["week"].TotalDays) // Mon..Thu
	assert.Equal(t, 27, byName["month"].TotalDays)
	assert.Equal(t, now.YearDay(), byName["year"].TotalDays)
	assert.Equal(t, 1, byName["all_time"].ActiveDays)
}

func TestEmptyDocument(t *testing.T) {
	s := Compute(state.DefaultUserData(), now)
	assert.False(t, s.TodayActive)
	assert.Zero(t, s.CurrentStreak)
	assert.Zero(t, s.WeightChange)
}
