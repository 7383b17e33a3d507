package calendar

import (
	"time"

	"github.com/diegomolina2/appreset/internal/state"
)

type Day struct {
	Date        string `json:"date"`
	Active      bool   `json:"active"`
	HasWeight   bool   `json:"has_weight"`
	HasMood     bool   `json:"has_mood"`
	HasWater    bool   `json:"has_water"`
	HasExercise bool   `json:"has_exercise"`
	IsToday     bool   `json:"is_today"`
}

type Month struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Days  []*Day `json:"days"`
}

// MonthOf renders one calendar month of activity from the user document.
func MonthOf(d *state.UserData, year int, month time.Month, now time.Time) *Month {
	weights := datesOf(len(d.Weights), func(i int) string { return d.Weights[i].Date })
	moods := datesOf(len(d.Moods), func(i int) string { return d.Moods[i].Date })
	water := datesOf(len(d.WaterLog), func(i int) string { return d.WaterLog[i].Date })
	exercises := datesOf(len(d.ExerciseHistory), func(i int) string { return d.ExerciseHistory[i].Date })

	today := state.FormatDate(now)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	out := &Month{Year: year, Month: int(month)}
	for cur := first; cur.Month() == month; cur = cur.AddDate(0, 0, 1) {
		date := state.FormatDate(cur)
		day := &Day{
			Date:        date,
			HasWeight:   weights[date],
			HasMood:     moods[date],
			HasWater:    water[date],
			HasExercise: exercises[date],
			IsToday:     date == today,
		}
		day.Active = day.HasWeight || day.HasMood || day.HasWater || day.HasExercise
		out.Days = append(out.Days, day)
	}
	return out
}

func datesOf(n int, date func(i int) string) map[string]bool {
	out := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if d := date(i); len(d) >= 10 {
			out[d[:10]] = true
		}
	}
	return out
}
