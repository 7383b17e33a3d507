package state

// Action is one state transition request. The reducer is the only consumer;
// anything it does not recognize leaves the state unchanged.
type Action interface {
	actionName() string
}

type SetUserData struct {
	Data *UserData
}

// ProfilePatch is a partial profile update. Nil fields are left as-is.
type ProfilePatch struct {
	Name          *string        `json:"name,omitempty"`
	Age           *int           `json:"age,omitempty"`
	Height        *float64       `json:"height,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	TargetWeight  *float64       `json:"targetWeight,omitempty"`
	Gender        *Gender        `json:"gender,omitempty"`
	ExerciseLevel *ExerciseLevel `json:"exerciseLevel,omitempty"`
	Diet          []string       `json:"diet,omitempty"`
	Language      *string        `json:"language,omitempty"`
}

type UpdateProfile struct {
	Patch ProfilePatch
}

type SetLanguage struct {
	Language string
}

type SetDarkMode struct {
	Enabled bool
}

type SetOnboarded struct {
	Onboarded bool
}

type StartChallenge struct {
	ChallengeID string
}

type RestartChallenge struct {
	ChallengeID string
}

type CompleteTask struct {
	ChallengeID string
	Day         int
	TaskIndex   int
}

type UncompleteTask struct {
	ChallengeID string
	Day         int
	TaskIndex   int
}

type StartCourse struct {
	CourseID string
}

type CompleteLesson struct {
	CourseID string
	ModuleID string
	LessonID string
}

type UncompleteLesson struct {
	CourseID string
	LessonID string
}

type ToggleFavorite struct {
	Kind FavoriteKind
	ID   string
}

// Log actions carry an optional Date ("2006-01-02"); empty means today.

type LogWeight struct {
	Weight float64
	Date   string
}

type LogMood struct {
	Mood int
	Date string
}

type LogWater struct {
	Liters float64
	Date   string
}

type LogCalories struct {
	Calories int
	Date     string
}

type LogExercise struct {
	ExerciseID string
	Duration   int
	Completed  bool
	Date       string
}

type LogMeal struct {
	MealID   string
	MealType MealType
	Date     string
}

type LogMeasurements struct {
	Measurement Measurement
}

type UnlockBadge struct {
	BadgeID     string
	Name        string
	Description string
	Icon        string
}

type ResetData struct{}

func (SetUserData) actionName() string      { return "SET_USER_DATA" }
func (UpdateProfile) actionName() string    { return "UPDATE_USER_PROFILE" }
func (SetLanguage) actionName() string      { return "SET_LANGUAGE" }
func (SetDarkMode) actionName() string      { return "SET_DARK_MODE" }
func (SetOnboarded) actionName() string     { return "SET_ONBOARDED" }
func (StartChallenge) actionName() string   { return "START_CHALLENGE" }
func (RestartChallenge) actionName() string { return "RESTART_CHALLENGE" }
func (CompleteTask) actionName() string     { return "COMPLETE_TASK" }
func (UncompleteTask) actionName() string   { return "UNCOMPLETE_TASK" }
func (StartCourse) actionName() string      { return "START_COURSE" }
func (CompleteLesson) actionName() string   { return "COMPLETE_LESSON" }
func (UncompleteLesson) actionName() string { return "UNCOMPLETE_LESSON" }
func (ToggleFavorite) actionName() string   { return "TOGGLE_FAVORITE" }
func (LogWeight) actionName() string        { return "LOG_WEIGHT" }
func (LogMood) actionName() string          { return "LOG_MOOD" }
func (LogWater) actionName() string         { return "LOG_WATER" }
func (LogCalories) actionName() string      { return "LOG_CALORIES" }
func (LogExercise) actionName() string      { return "LOG_EXERCISE" }
func (LogMeal) actionName() string          { return "LOG_MEAL" }
func (LogMeasurements) actionName() string  { return "LOG_MEASUREMENTS" }
func (UnlockBadge) actionName() string      { return "UNLOCK_BADGE" }
func (ResetData) actionName() string        { return "RESET_DATA" }
