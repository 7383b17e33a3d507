package stats

import (
	"time"

	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/internal/streak"
)

type DaysStat struct {
	Period     string `json:"period"` // "week", "month", "year", "all_time"
	ActiveDays int    `json:"active_days"`
	TotalDays  int    `json:"total_days"`
}

type UserStats struct {
	TodayActive         bool    `json:"today_active"`
	DaysThisWeek        int     `json:"days_this_week"`
	DaysThisMonth       int     `json:"days_this_month"`
	DaysThisYear        int     `json:"days_this_year"`
	TotalActiveDays     int     `json:"total_active_days"`
	CurrentStreak       int     `json:"current_streak"`
	LongestStreak       int     `json:"longest_streak"`
	BadgesUnlocked      int     `json:"badges_unlocked"`
	ChallengesCompleted int     `json:"challenges_completed"`
	WeightChange        float64 `json:"weight_change"`
}

// Compute aggregates the headline numbers shown on the progress screen.
func Compute(d *state.UserData, now time.Time) UserStats {
	active := d.ActivityDates()
	summary := streak.Summarize(d, now)

	completed := 0
	for _, c := range d.Challenges {
		if c.IsCompleted() {
			completed++
		}
	}

	s := UserStats{
		TodayActive:         active[state.FormatDate(now)],
		TotalActiveDays:     len(active),
		CurrentStreak:       summary.CurrentStreak,
		LongestStreak:       summary.LongestStreak,
		BadgesUnlocked:      len(d.Badges),
		ChallengesCompleted: completed,
		WeightChange:        weightChange(d.Weights),
	}

	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	for date := range active {
		day, err := time.ParseInLocation(state.DateLayout, date, now.Location())
		if err != nil || day.After(now) {
			continue
		}
		if !day.Before(weekStart) {
			s.DaysThisWeek++
		}
		if !day.Before(monthStart) {
			s.DaysThisMonth++
		}
		if !day.Before(yearStart) {
			s.DaysThisYear++
		}
	}

	return s
}

// Periods breaks activity down per reporting window.
func Periods(d *state.UserData, now time.Time) []DaysStat {
	s := Compute(d, now)

	monthDays := now.Day()
	yearDays := now.YearDay()
	weekDays := int(now.Sub(startOfWeek(now)).Hours()/24) + 1

	return []DaysStat{
		{Period: "week", ActiveDays: s.DaysThisWeek, TotalDays: weekDays},
		{Period: "month", ActiveDays: s.DaysThisMonth, TotalDays: monthDays},
		{Period: "year", ActiveDays: s.DaysThisYear, TotalDays: yearDays},
		{Period: "all_time", ActiveDays: s.TotalActiveDays, TotalDays: s.TotalActiveDays},
	}
}

// weightChange is current weight minus the first recorded one. Entries are
// kept in insertion order, so first and latest bracket the journey.
func weightChange(logs []state.WeightLog) float64 {
	if len(logs) < 2 {
		return 0
	}
	return logs[len(logs)-1].Weight - logs[0].Weight
}

// startOfWeek returns Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
