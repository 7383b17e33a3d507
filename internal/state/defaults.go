package state

import "github.com/diegomolina2/appreset/internal/i18n"

// DefaultUserData is the document every user starts from, and the fallback
// when a stored document cannot be parsed.
func DefaultUserData() *UserData {
	return &UserData{
		UserProfile: UserProfile{
			Gender:        GenderOther,
			ExerciseLevel: LevelSedentary,
			Diet:          []string{},
			Language:      i18n.DefaultLanguage,
		},
		Challenges:      map[string]*Challenge{},
		Weights:         []WeightLog{},
		Moods:           []MoodLog{},
		WaterLog:        []WaterLog{},
		CaloriesLog:     []CaloriesLog{},
		ExerciseHistory: []ExerciseLog{},
		MealHistory:     []MealLog{},
		Measurements:    []Measurement{},
		CourseProgress:  []CourseProgress{},
		Badges:          []Badge{},
		Favorites: Favorites{
			Exercises: []string{},
			Meals:     []string{},
			Quotes:    []string{},
		},
	}
}

func DefaultAppState() AppState {
	data := DefaultUserData()
	return AppState{
		UserData:        data,
		CurrentLanguage: i18n.DefaultLanguage,
	}
}

// Clone deep-copies the document so the reducer can derive a new state
// without touching its input.
func (d *UserData) Clone() *UserData {
	if d == nil {
		return nil
	}
	out := *d

	out.UserProfile.Diet = append([]string(nil), d.UserProfile.Diet...)

	out.Challenges = make(map[string]*Challenge, len(d.Challenges))
	for id, c := range d.Challenges {
		out.Challenges[id] = c.clone()
	}

	out.Weights = append([]WeightLog(nil), d.Weights...)
	out.Moods = append([]MoodLog(nil), d.Moods...)
	out.WaterLog = append([]WaterLog(nil), d.WaterLog...)
	out.CaloriesLog = append([]CaloriesLog(nil), d.CaloriesLog...)
	out.ExerciseHistory = append([]ExerciseLog(nil), d.ExerciseHistory...)
	out.MealHistory = append([]MealLog(nil), d.MealHistory...)
	out.Measurements = append([]Measurement(nil), d.Measurements...)
	out.CourseProgress = make([]CourseProgress, len(d.CourseProgress))
	for i, p := range d.CourseProgress {
		p.CompletedLessons = append([]string(nil), p.CompletedLessons...)
		out.CourseProgress[i] = p
	}
	out.Badges = append([]Badge(nil), d.Badges...)

	out.Favorites = Favorites{
		Exercises: append([]string(nil), d.Favorites.Exercises...),
		Meals:     append([]string(nil), d.Favorites.Meals...),
		Quotes:    append([]string(nil), d.Favorites.Quotes...),
	}

	return &out
}

func (c *Challenge) clone() *Challenge {
	if c == nil {
		return nil
	}
	out := *c
	out.CompletedDays = append([]int(nil), c.CompletedDays...)
	out.DailyTasks = make([]DailyTask, len(c.DailyTasks))
	for i, d := range c.DailyTasks {
		tasks := make(map[string][]string, len(d.Tasks))
		for lang, list := range d.Tasks {
			tasks[lang] = append([]string(nil), list...)
		}
		out.DailyTasks[i] = DailyTask{
			Day:       d.Day,
			Tasks:     tasks,
			Completed: append([]bool(nil), d.Completed...),
		}
	}
	return &out
}
