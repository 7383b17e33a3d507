package state

import (
	"strings"
	"time"

	"github.com/diegomolina2/appreset/internal/i18n"
)

// DateLayout is the day-granularity format used by every dated log entry.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type ExerciseLevel string

const (
	LevelSedentary  ExerciseLevel = "sedentary"
	LevelLight      ExerciseLevel = "light"
	LevelModerate   ExerciseLevel = "moderate"
	LevelActive     ExerciseLevel = "active"
	LevelVeryActive ExerciseLevel = "very_active"
)

type UserProfile struct {
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Height        float64       `json:"height"`
	Weight        float64       `json:"weight"`
	TargetWeight  float64       `json:"targetWeight"`
	Gender        Gender        `json:"gender"`
	ExerciseLevel ExerciseLevel `json:"exerciseLevel"`
	Diet          []string      `json:"diet"`
	Language      string        `json:"language"`
}

// DailyTask is one day of a challenge. Tasks are stored per language so the
// completion flags stay index-aligned with the task list the user saw.
type DailyTask struct {
	Day       int                 `json:"day"`
	Tasks     map[string][]string `json:"tasks"`
	Completed []bool              `json:"completed"`
}

// TasksFor reads the task list through a language snapshot, falling back to
// the default language the same way instantiation did.
func (d DailyTask) TasksFor(lang string) []string {
	if tasks, ok := d.Tasks[lang]; ok {
		return tasks
	}
	return d.Tasks[i18n.DefaultLanguage]
}

// Challenge is a user's run of a challenge template.
type Challenge struct {
	ID            string    `json:"id"`
	Name          i18n.Text `json:"name"`
	Description   i18n.Text `json:"description"`
	Days          int       `json:"days"`
	DailyTasks    []DailyTask `json:"dailyTasks"`
	CurrentDay    int       `json:"currentDay"`
	CompletedDays []int     `json:"completedDays"`
	IsActive      bool      `json:"isActive"`
	StartDate     string    `json:"startDate,omitempty"`
	// Language is the locale active when the instance was created. Task text
	// must resolve through it, not the live UI language.
	Language string `json:"language"`
}

func (c *Challenge) DayTask(day int) *DailyTask {
	for i := range c.DailyTasks {
		if c.DailyTasks[i].Day == day {
			return &c.DailyTasks[i]
		}
	}
	return nil
}

func (c *Challenge) IsDayCompleted(day int) bool {
	for _, d := range c.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

func (c *Challenge) IsCompleted() bool {
	return len(c.CompletedDays) == c.Days
}

type WeightLog struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type MoodLog struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
}

type WaterLog struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Liters float64 `json:"liters"`
}

type CaloriesLog struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

type ExerciseLog struct {
	ExerciseID string `json:"exerciseId"`
	Date       string `json:"date"`
	Duration   int    `json:"duration"`
	Completed  bool   `json:"completed"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

type MealLog struct {
	MealID   string   `json:"mealId"`
	Date     string   `json:"date"`
	MealType MealType `json:"mealType"`
}

type Measurement struct {
	Date   string   `json:"date"`
	Waist  *float64 `json:"waist,omitempty"`
	Hips   *float64 `json:"hips,omitempty"`
	Chest  *float64 `json:"chest,omitempty"`
	Arms   *float64 `json:"arms,omitempty"`
	Thighs *float64 `json:"thighs,omitempty"`
}

// CourseProgress tracks one course: the lessons finished so far and the
// position to resume from. Lesson ids are unique within a course.
type CourseProgress struct {
	CourseID         string   `json:"courseId"`
	CompletedLessons []string `json:"completedLessons"`
	CurrentModule    string   `json:"currentModule"`
	CurrentLesson    string   `json:"currentLesson"`
	StartedAt        string   `json:"startedAt"`
	LastAccessedAt   string   `json:"lastAccessedAt"`
}

func (p *CourseProgress) IsLessonCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsUnlocked  bool   `json:"isUnlocked"`
	UnlockedAt  string `json:"unlockedAt,omitempty"`
}

type FavoriteKind string

const (
	FavoriteExercises FavoriteKind = "exercises"
	FavoriteMeals     FavoriteKind = "meals"
	FavoriteQuotes    FavoriteKind = "quotes"
)

type Favorites struct {
	Exercises []string `json:"exercises"`
	Meals     []string `json:"meals"`
	Quotes    []string `json:"quotes"`
}

// UserData is the persisted document: the whole of one user's tracked state.
type UserData struct {
	UserProfile     UserProfile           `json:"userProfile"`
	Challenges      map[string]*Challenge `json:"challenges"`
	Weights         []WeightLog           `json:"weights"`
	Moods           []MoodLog             `json:"moods"`
	WaterLog        []WaterLog            `json:"waterLog"`
	CaloriesLog     []CaloriesLog         `json:"caloriesLog"`
	ExerciseHistory []ExerciseLog         `json:"exerciseHistory"`
	MealHistory     []MealLog             `json:"mealHistory"`
	Measurements    []Measurement         `json:"measurements"`
	CourseProgress  []CourseProgress      `json:"courseProgress"`
	Badges          []Badge               `json:"badges"`
	Favorites       Favorites             `json:"favorites"`
}

// CourseProgressFor returns the progress record for a course, nil when the
// course was never started.
func (d *UserData) CourseProgressFor(courseID string) *CourseProgress {
	for i := range d.CourseProgress {
		if d.CourseProgress[i].CourseID == courseID {
			return &d.CourseProgress[i]
		}
	}
	return nil
}

func (d *UserData) HasBadge(id string) bool {
	for _, b := range d.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// ActivityDates collects every calendar day that has at least one logged
// entry of any kind. Used by the streak calculator and the stats views.
func (d *UserData) ActivityDates() map[string]bool {
	dates := make(map[string]bool)
	for _, w := range d.Weights {
		dates[w.Date] = true
	}
	for _, m := range d.Moods {
		dates[m.Date] = true
	}
	for _, w := range d.WaterLog {
		dates[w.Date] = true
	}
	for _, e := range d.ExerciseHistory {
		dates[e.Date] = true
	}
	return dates
}

// AppState is the in-memory session state around the persisted document.
type AppState struct {
	UserData         *UserData `json:"userData"`
	CurrentLanguage  string    `json:"currentLanguage"`
	IsDarkMode       bool      `json:"isDarkMode"`
	IsOnboarded      bool      `json:"isOnboarded"`
	CurrentChallenge string    `json:"currentChallenge,omitempty"`
}

// HasCompletedOnboarding mirrors the profile-name rule: a user counts as
// onboarded once the profile carries a non-blank name.
func (d *UserData) HasCompletedOnboarding() bool {
	return strings.TrimSpace(d.UserProfile.Name) != ""
}

// FormatDate renders a timestamp at day granularity.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
