package state

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/diegomolina2/appreset/internal/i18n"
)

// TemplateDay is one day of a challenge template, tasks keyed by language.
type TemplateDay struct {
	Day   int                 `json:"day"`
	Tasks map[string][]string `json:"tasks"`
}

// ChallengeTemplate is the static definition a challenge instance is stamped
// from.
type ChallengeTemplate struct {
	ID          string        `json:"id"`
	Name        i18n.Text     `json:"name"`
	Description i18n.Text     `json:"description"`
	Days        int           `json:"days"`
	DailyTasks  []TemplateDay `json:"dailyTasks"`
}

// TemplateSource resolves challenge templates by id.
type TemplateSource interface {
	ChallengeTemplate(id string) (*ChallengeTemplate, bool)
}

// CourseLesson is one lesson of a course module.
type CourseLesson struct {
	ID       string    `json:"id"`
	Title    i18n.Text `json:"title"`
	Duration string    `json:"duration,omitempty"`
	Kind     string    `json:"kind,omitempty"` // "video" or "text"
}

type CourseModule struct {
	ID      string         `json:"id"`
	Title   i18n.Text      `json:"title"`
	Lessons []CourseLesson `json:"lessons"`
}

// CourseTemplate is a static course: an ordered list of modules, each with
// ordered lessons.
type CourseTemplate struct {
	ID          string         `json:"id"`
	Title       i18n.Text      `json:"title"`
	Description i18n.Text      `json:"description"`
	Image       string         `json:"image,omitempty"`
	Modules     []CourseModule `json:"modules"`
}

// TotalLessons counts lessons across every module.
func (c *CourseTemplate) TotalLessons() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

// HasLesson reports whether the module holds the lesson.
func (c *CourseTemplate) HasLesson(moduleID, lessonID string) bool {
	for _, m := range c.Modules {
		if m.ID != moduleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return true
			}
		}
	}
	return false
}

// NextLesson returns the lesson following the given one in course order,
// crossing module boundaries. The last lesson returns itself.
func (c *CourseTemplate) NextLesson(moduleID, lessonID string) (string, string) {
	found := false
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if found {
				return m.ID, l.ID
			}
			if m.ID == moduleID && l.ID == lessonID {
				found = true
			}
		}
	}
	return moduleID, lessonID
}

// CourseSource resolves course templates by id.
type CourseSource interface {
	Course(id string) (*CourseTemplate, bool)
}

// Reducer maps (state, action) to a new state. It is the only mutation path;
// everything else reads. Lookup failures (unknown challenge, day or task
// index) return the state unchanged rather than erroring.
type Reducer struct {
	Templates TemplateSource
	Courses   CourseSource
	Now       func() time.Time
}

func NewReducer(templates TemplateSource) *Reducer {
	return &Reducer{
		Templates: templates,
		Now:       time.Now,
	}
}

func (r *Reducer) today() string {
	return FormatDate(r.Now())
}

func (r *Reducer) dateOrToday(date string) string {
	if date == "" {
		return r.today()
	}
	return date
}

// Reduce never mutates its input; callers always receive a state whose
// document is either the original pointer (no-op) or a fresh clone.
func (r *Reducer) Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case SetUserData:
		if a.Data == nil {
			return s
		}
		s.UserData = a.Data
		s.IsOnboarded = a.Data.HasCompletedOnboarding()
		if a.Data.UserProfile.Language != "" {
			s.CurrentLanguage = a.Data.UserProfile.Language
		}
		return s

	case UpdateProfile:
		return r.reduceUpdateProfile(s, a)

	case SetLanguage:
		s.CurrentLanguage = a.Language
		return s

	case SetDarkMode:
		s.IsDarkMode = a.Enabled
		return s

	case SetOnboarded:
		s.IsOnboarded = a.Onboarded
		return s

	case StartChallenge:
		return r.reduceStartChallenge(s, a.ChallengeID)

	case RestartChallenge:
		// Restart is a destructive re-initialization from the template,
		// regardless of prior progress.
		return r.reduceStartChallenge(s, a.ChallengeID)

	case CompleteTask:
		return r.reduceCompleteTask(s, a)

	case UncompleteTask:
		return r.reduceUncompleteTask(s, a)

	case StartCourse:
		return r.reduceStartCourse(s, a.CourseID)

	case CompleteLesson:
		return r.reduceCompleteLesson(s, a)

	case UncompleteLesson:
		return r.reduceUncompleteLesson(s, a)

	case ToggleFavorite:
		return r.reduceToggleFavorite(s, a)

	case LogWeight:
		data := s.UserData.Clone()
		date := r.dateOrToday(a.Date)
		data.Weights = removeWeightFor(data.Weights, date)
		data.Weights = append(data.Weights, WeightLog{Date: date, Weight: a.Weight})
		s.UserData = data
		return s

	case LogMood:
		data := s.UserData.Clone()
		date := r.dateOrToday(a.Date)
		data.Moods = removeMoodFor(data.Moods, date)
		data.Moods = append(data.Moods, MoodLog{Date: date, Mood: a.Mood})
		s.UserData = data
		return s

	case LogWater:
		// Same-day water logs overwrite, like every other metric. See the
		// water-semantics note in DESIGN.md.
		data := s.UserData.Clone()
		date := r.dateOrToday(a.Date)
		data.WaterLog = removeWaterFor(data.WaterLog, date)
		data.WaterLog = append(data.WaterLog, WaterLog{
			ID:     uuid.NewString(),
			Date:   date,
			Liters: a.Liters,
		})
		s.UserData = data
		return s

	case LogCalories:
		data := s.UserData.Clone()
		date := r.dateOrToday(a.Date)
		data.CaloriesLog = removeCaloriesFor(data.CaloriesLog, date)
		data.CaloriesLog = append(data.CaloriesLog, CaloriesLog{Date: date, Calories: a.Calories})
		s.UserData = data
		return s

	case LogExercise:
		if a.ExerciseID == "" {
			return s
		}
		data := s.UserData.Clone()
		data.ExerciseHistory = append(data.ExerciseHistory, ExerciseLog{
			ExerciseID: a.ExerciseID,
			Date:       r.dateOrToday(a.Date),
			Duration:   a.Duration,
			Completed:  a.Completed,
		})
		s.UserData = data
		return s

	case LogMeal:
		if a.MealID == "" {
			return s
		}
		data := s.UserData.Clone()
		data.MealHistory = append(data.MealHistory, MealLog{
			MealID:   a.MealID,
			Date:     r.dateOrToday(a.Date),
			MealType: a.MealType,
		})
		s.UserData = data
		return s

	case LogMeasurements:
		data := s.UserData.Clone()
		m := a.Measurement
		m.Date = r.dateOrToday(m.Date)
		data.Measurements = removeMeasurementFor(data.Measurements, m.Date)
		data.Measurements = append(data.Measurements, m)
		s.UserData = data
		return s

	case UnlockBadge:
		if s.UserData.HasBadge(a.BadgeID) {
			return s
		}
		data := s.UserData.Clone()
		data.Badges = append(data.Badges, Badge{
			ID:          a.BadgeID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			IsUnlocked:  true,
			UnlockedAt:  r.Now().UTC().Format(time.RFC3339),
		})
		s.UserData = data
		return s

	case ResetData:
		return DefaultAppState()

	default:
		return s
	}
}

func (r *Reducer) reduceUpdateProfile(s AppState, a UpdateProfile) AppState {
	data := s.UserData.Clone()
	p := &data.UserProfile

	if a.Patch.Name != nil {
		p.Name = *a.Patch.Name
	}
	if a.Patch.Age != nil {
		p.Age = *a.Patch.Age
	}
	if a.Patch.Height != nil {
		p.Height = *a.Patch.Height
	}
	if a.Patch.Weight != nil {
		p.Weight = *a.Patch.Weight
	}
	if a.Patch.TargetWeight != nil {
		p.TargetWeight = *a.Patch.TargetWeight
	}
	if a.Patch.Gender != nil {
		p.Gender = *a.Patch.Gender
	}
	if a.Patch.ExerciseLevel != nil {
		p.ExerciseLevel = *a.Patch.ExerciseLevel
	}
	if a.Patch.Diet != nil {
		p.Diet = append([]string(nil), a.Patch.Diet...)
	}
	if a.Patch.Language != nil {
		p.Language = *a.Patch.Language
	}

	s.UserData = data
	s.IsOnboarded = data.HasCompletedOnboarding()
	return s
}

func (r *Reducer) reduceStartChallenge(s AppState, challengeID string) AppState {
	if r.Templates == nil {
		return s
	}
	template, ok := r.Templates.ChallengeTemplate(challengeID)
	if !ok {
		return s
	}

	lang := s.CurrentLanguage
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	instance := &Challenge{
		ID:            template.ID,
		Name:          template.Name,
		Description:   template.Description,
		Days:          template.Days,
		CurrentDay:    1,
		CompletedDays: []int{},
		IsActive:      true,
		StartDate:     r.today(),
		Language:      lang,
	}

	instance.DailyTasks = make([]DailyTask, len(template.DailyTasks))
	for i, day := range template.DailyTasks {
		tasks := make(map[string][]string, len(day.Tasks))
		for l, list := range day.Tasks {
			tasks[l] = append([]string(nil), list...)
		}
		// Completion flags are sized to the task list in the snapshot
		// language so indexes stay aligned on read-back.
		languageTasks := day.Tasks[lang]
		if languageTasks == nil {
			languageTasks = day.Tasks[i18n.DefaultLanguage]
		}
		instance.DailyTasks[i] = DailyTask{
			Day:       day.Day,
			Tasks:     tasks,
			Completed: make([]bool, len(languageTasks)),
		}
	}

	data := s.UserData.Clone()
	data.Challenges[challengeID] = instance
	s.UserData = data
	s.CurrentChallenge = challengeID
	return s
}

func (r *Reducer) reduceCompleteTask(s AppState, a CompleteTask) AppState {
	challenge, ok := s.UserData.Challenges[a.ChallengeID]
	if !ok {
		return s
	}
	dayTask := challenge.DayTask(a.Day)
	if dayTask == nil || a.TaskIndex < 0 || a.TaskIndex >= len(dayTask.Completed) {
		return s
	}

	data := s.UserData.Clone()
	challenge = data.Challenges[a.ChallengeID]
	dayTask = challenge.DayTask(a.Day)
	dayTask.Completed[a.TaskIndex] = true

	allCompleted := true
	for _, done := range dayTask.Completed {
		if !done {
			allCompleted = false
			break
		}
	}
	if allCompleted && !challenge.IsDayCompleted(a.Day) {
		challenge.CompletedDays = insertDay(challenge.CompletedDays, a.Day)
		if next := a.Day + 1; next < challenge.Days {
			challenge.CurrentDay = next
		} else {
			challenge.CurrentDay = challenge.Days
		}
	}

	s.UserData = data
	return s
}

func (r *Reducer) reduceUncompleteTask(s AppState, a UncompleteTask) AppState {
	challenge, ok := s.UserData.Challenges[a.ChallengeID]
	if !ok {
		return s
	}
	dayTask := challenge.DayTask(a.Day)
	if dayTask == nil || a.TaskIndex < 0 || a.TaskIndex >= len(dayTask.Completed) {
		return s
	}

	data := s.UserData.Clone()
	challenge = data.Challenges[a.ChallengeID]
	dayTask = challenge.DayTask(a.Day)
	dayTask.Completed[a.TaskIndex] = false

	// The day drops out of completedDays; currentDay is not rewound.
	if challenge.IsDayCompleted(a.Day) {
		kept := challenge.CompletedDays[:0]
		for _, d := range challenge.CompletedDays {
			if d != a.Day {
				kept = append(kept, d)
			}
		}
		challenge.CompletedDays = kept
	}

	s.UserData = data
	return s
}

// reduceStartCourse creates the progress record pointing at the first
// lesson. Starting an already started course is a no-op; progress is never
// discarded.
func (r *Reducer) reduceStartCourse(s AppState, courseID string) AppState {
	if r.Courses == nil {
		return s
	}
	course, ok := r.Courses.Course(courseID)
	if !ok || len(course.Modules) == 0 || len(course.Modules[0].Lessons) == 0 {
		return s
	}
	if s.UserData.CourseProgressFor(courseID) != nil {
		return s
	}

	now := r.Now().UTC().Format(time.RFC3339)
	data := s.UserData.Clone()
	data.CourseProgress = append(data.CourseProgress, CourseProgress{
		CourseID:         courseID,
		CompletedLessons: []string{},
		CurrentModule:    course.Modules[0].ID,
		CurrentLesson:    course.Modules[0].Lessons[0].ID,
		StartedAt:        now,
		LastAccessedAt:   now,
	})
	s.UserData = data
	return s
}

func (r *Reducer) reduceCompleteLesson(s AppState, a CompleteLesson) AppState {
	if r.Courses == nil {
		return s
	}
	course, ok := r.Courses.Course(a.CourseID)
	if !ok || !course.HasLesson(a.ModuleID, a.LessonID) {
		return s
	}
	if s.UserData.CourseProgressFor(a.CourseID) == nil {
		return s
	}

	data := s.UserData.Clone()
	progress := data.CourseProgressFor(a.CourseID)
	if !progress.IsLessonCompleted(a.LessonID) {
		progress.CompletedLessons = append(progress.CompletedLessons, a.LessonID)
	}
	// The resume pointer moves to the lesson after the one just finished.
	progress.CurrentModule, progress.CurrentLesson = course.NextLesson(a.ModuleID, a.LessonID)
	progress.LastAccessedAt = r.Now().UTC().Format(time.RFC3339)

	s.UserData = data
	return s
}

func (r *Reducer) reduceUncompleteLesson(s AppState, a UncompleteLesson) AppState {
	if s.UserData.CourseProgressFor(a.CourseID) == nil {
		return s
	}

	data := s.UserData.Clone()
	progress := data.CourseProgressFor(a.CourseID)

	// The lesson drops out of the completed set; the resume pointer is not
	// rewound, mirroring task un-completion.
	kept := progress.CompletedLessons[:0]
	for _, id := range progress.CompletedLessons {
		if id != a.LessonID {
			kept = append(kept, id)
		}
	}
	progress.CompletedLessons = kept

	s.UserData = data
	return s
}

func (r *Reducer) reduceToggleFavorite(s AppState, a ToggleFavorite) AppState {
	data := s.UserData.Clone()

	var set *[]string
	switch a.Kind {
	case FavoriteExercises:
		set = &data.Favorites.Exercises
	case FavoriteMeals:
		set = &data.Favorites.Meals
	case FavoriteQuotes:
		set = &data.Favorites.Quotes
	default:
		return s
	}

	for i, id := range *set {
		if id == a.ID {
			*set = append((*set)[:i], (*set)[i+1:]...)
			s.UserData = data
			return s
		}
	}
	*set = append(*set, a.ID)
	s.UserData = data
	return s
}

// insertDay keeps completedDays a strictly increasing set.
func insertDay(days []int, day int) []int {
	idx := sort.SearchInts(days, day)
	if idx < len(days) && days[idx] == day {
		return days
	}
	days = append(days, 0)
	copy(days[idx+1:], days[idx:])
	days[idx] = day
	return days
}

func removeWeightFor(logs []WeightLog, date string) []WeightLog {
	kept := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			kept = append(kept, l)
		}
	}
	return kept
}

func removeMoodFor(logs []MoodLog, date string) []MoodLog {
	kept := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			kept = append(kept, l)
		}
	}
	return kept
}

func removeWaterFor(logs []WaterLog, date string) []WaterLog {
	kept := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			kept = append(kept, l)
		}
	}
	return kept
}

func removeCaloriesFor(logs []CaloriesLog, date string) []CaloriesLog {
	kept := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			kept = append(kept, l)
		}
	}
	return kept
}

func removeMeasurementFor(logs []Measurement, date string) []Measurement {
	kept := logs[:0]
	for _, l := range logs {
		if l.Date != date {
			kept = append(kept, l)
		}
	}
	return kept
}
