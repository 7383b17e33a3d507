package streak

import (
	"sort"
	"time"

	"github.com/diegomolina2/appreset/internal/state"
)

// DefaultLookback bounds the backward scan for the current streak. Callers
// needing longer history must page over their own date lists.
const DefaultLookback = 30

// Summary is the streak view returned to clients.
type Summary struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}

// Current counts the consecutive run of calendar days ending today in which
// at least one activity of any kind (weight, mood, water, exercise) was
// logged. A day with no activity, including today, ends the run.
func Current(data *state.UserData, today time.Time) int {
	return ConsecutiveDays(data.ActivityDates(), today, DefaultLookback)
}

// ConsecutiveDays walks backward from today over a set of "2006-01-02" dates
// and counts until the first gap, scanning at most lookback days.
func ConsecutiveDays(dates map[string]bool, today time.Time, lookback int) int {
	count := 0
	for offset := 0; offset < lookback; offset++ {
		day := state.FormatDate(today.AddDate(0, 0, -offset))
		if !dates[day] {
			break
		}
		count++
	}
	return count
}

// Summarize derives the full streak view from a user document.
func Summarize(data *state.UserData, today time.Time) Summary {
	dates := data.ActivityDates()
	s := Summary{
		CurrentStreak: ConsecutiveDays(dates, today, DefaultLookback),
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	if len(sorted) > 0 {
		s.LastActivityDate = sorted[len(sorted)-1]
	}

	// Longest run over all recorded history, not bounded by the lookback.
	longest, run := 0, 0
	var prev time.Time
	for i, d := range sorted {
		day, err := time.Parse(state.DateLayout, d)
		if err != nil {
			continue
		}
		if i == 0 || day.Sub(prev) != 24*time.Hour {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
		prev = day
	}
	s.LongestStreak = longest

	return s
}

// FromDates is the narrower variant over an explicit date list (for example
// a challenge's completed days converted to dates): sort descending and
// count entries whose day difference from the previous one is exactly 1.
// Duplicate dates are skipped; the first gap stops the count.
func FromDates(dates []string) int {
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if len(d) > len(state.DateLayout) {
			d = d[:len(state.DateLayout)]
		}
		day, err := time.Parse(state.DateLayout, d)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	count := 1
	for i := 1; i < len(days); i++ {
		diff := int(days[i-1].Sub(days[i]).Hours() / 24)
		if diff == 1 {
			count++
		} else if diff > 1 {
			break
		}
	}
	return count
}
