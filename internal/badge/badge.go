package badge

import (
	"time"

	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/internal/streak"
)

// WaterDailyGoalLiters is the daily intake a day must reach to count toward
// the hydration badges.
const WaterDailyGoalLiters = 2.0

type Category string

const (
	CategoryMilestone   Category = "milestone"
	CategoryConsistency Category = "consistency"
	CategoryChallenge   Category = "challenge"
	CategoryActivity    Category = "activity"
	CategoryNutrition   Category = "nutrition"
)

// Rule pairs a badge with its unlock predicate. Predicates are pure reads
// over the user document; the evaluator owns all side effects.
type Rule struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement string   `json:"requirement"`
	Predicate   func(d *state.UserData, now time.Time) bool `json:"-"`
}

// Status is a catalog badge joined with its unlock state, for display.
type Status struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement string   `json:"requirement"`
	Unlocked    bool     `json:"unlocked"`
	UnlockedAt  string   `json:"unlocked_at,omitempty"`
}

// Catalog is the static badge rule table.
func Catalog() []Rule {
	return []Rule{
		{
			ID:          "first_step",
			Name:        "First Step",
			Description: "Completed your first day of any challenge",
			Icon:        "🏃",
			Category:    CategoryMilestone,
			Requirement: "Complete day 1 of any challenge",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				for _, c := range d.Challenges {
					if len(c.CompletedDays) >= 1 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "hydrated",
			Name:        "Hydrated",
			Description: "Hit water goal for 7 consecutive days",
			Icon:        "💧",
			Category:    CategoryConsistency,
			Requirement: "Log water intake for 7 days in a row",
			Predicate: func(d *state.UserData, now time.Time) bool {
				return waterGoalStreak(d, now) >= 7
			},
		},
		{
			ID:          "consistent",
			Name:        "Consistent",
			Description: "Maintained a 7-day activity streak",
			Icon:        "⚡",
			Category:    CategoryConsistency,
			Requirement: "Complete any activity for 7 days straight",
			Predicate: func(d *state.UserData, now time.Time) bool {
				return streak.Current(d, now) >= 7
			},
		},
		{
			ID:          "no_sugar_hero",
			Name:        "No Sugar Hero",
			Description: "Completed the 30-day no sugar challenge",
			Icon:        "🍎",
			Category:    CategoryChallenge,
			Requirement: "Complete the 30-Day No Sugar challenge",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				c, ok := d.Challenges["30-day-no-sugar"]
				return ok && c.IsCompleted()
			},
		},
		{
			ID:          "halfway",
			Name:        "Halfway",
			Description: "Reached 50% completion of any challenge",
			Icon:        "🎯",
			Category:    CategoryMilestone,
			Requirement: "Complete 50% of any challenge",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				for _, c := range d.Challenges {
					if c.Days > 0 && len(c.CompletedDays)*2 >= c.Days {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "week_warrior",
			Name:        "Week Warrior",
			Description: "Completed a full week challenge",
			Icon:        "🏆",
			Category:    CategoryChallenge,
			Requirement: "Complete any 7-day challenge",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				for _, c := range d.Challenges {
					if len(c.CompletedDays) >= 7 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "month_master",
			Name:        "Month Master",
			Description: "Completed a month-long challenge",
			Icon:        "👑",
			Category:    CategoryChallenge,
			Requirement: "Complete any 30-day challenge",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				for _, c := range d.Challenges {
					if len(c.CompletedDays) >= 30 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:          "exercise_enthusiast",
			Name:        "Exercise Enthusiast",
			Description: "Completed 20 different exercises",
			Icon:        "💪",
			Category:    CategoryActivity,
			Requirement: "Try 20 different exercises",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				distinct := make(map[string]bool)
				for _, e := range d.ExerciseHistory {
					distinct[e.ExerciseID] = true
				}
				return len(distinct) >= 20
			},
		},
		{
			ID:          "healthy_eater",
			Name:        "Healthy Eater",
			Description: "Logged meals for 14 consecutive days",
			Icon:        "🥗",
			Category:    CategoryNutrition,
			Requirement: "Log meals for 14 days in a row",
			Predicate: func(d *state.UserData, now time.Time) bool {
				dates := make(map[string]bool)
				for _, m := range d.MealHistory {
					dates[m.Date] = true
				}
				return streak.ConsecutiveDays(dates, now, streak.DefaultLookback) >= 14
			},
		},
		{
			ID:          "water_champion",
			Name:        "Water Champion",
			Description: "Hit daily water goal for 30 days",
			Icon:        "🌊",
			Category:    CategoryConsistency,
			Requirement: "Meet water intake goal for 30 days",
			Predicate: func(d *state.UserData, _ time.Time) bool {
				count := 0
				for _, liters := range waterByDay(d) {
					if liters >= WaterDailyGoalLiters {
						count++
					}
				}
				return count >= 30
			},
		},
	}
}

// ChallengeRule is the dynamic per-challenge completion badge.
func ChallengeRule(c *state.Challenge, lang string) Rule {
	id := c.ID
	name := c.Name.Resolve(lang, i18n.DefaultLanguage)
	return Rule{
		ID:          "challenge-" + id,
		Name:        name + " Master",
		Description: "Completed all days of " + name,
		Icon:        "🏅",
		Category:    CategoryChallenge,
		Requirement: "Complete every day of " + name,
		Predicate: func(d *state.UserData, _ time.Time) bool {
			instance, ok := d.Challenges[id]
			return ok && instance.IsActive && instance.IsCompleted()
		},
	}
}

// waterByDay folds the water log into per-day totals. With the overwrite
// semantics there is one entry per day; for legacy documents that carried
// several, the latest entry wins.
func waterByDay(d *state.UserData) map[string]float64 {
	byDay := make(map[string]float64)
	for _, w := range d.WaterLog {
		byDay[w.Date] = w.Liters
	}
	return byDay
}

// waterGoalStreak counts consecutive days ending today whose water entry
// meets the daily goal.
func waterGoalStreak(d *state.UserData, now time.Time) int {
	byDay := waterByDay(d)
	count := 0
	for offset := 0; offset < streak.DefaultLookback; offset++ {
		day := state.FormatDate(now.AddDate(0, 0, -offset))
		if byDay[day] < WaterDailyGoalLiters {
			break
		}
		count++
	}
	return count
}
