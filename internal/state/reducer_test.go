package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegomolina2/appreset/internal/i18n"
)

type fakeTemplates map[string]*ChallengeTemplate

func (f fakeTemplates) ChallengeTemplate(id string) (*ChallengeTemplate, bool) {
	t, ok := f[id]
	return t, ok
}

func sevenDayTemplate() *ChallengeTemplate {
	days := make([]TemplateDay, 7)
	for i := range days {
		days[i] = TemplateDay{
			Day: i + 1,
			Tasks: map[string][]string{
				"en-US": {"Drink water", "Walk 20 minutes", "Stretch"},
				"fr-FR": {"Boire de l'eau", "Marcher 20 minutes", "S'etirer"},
			},
		}
	}
	return &ChallengeTemplate{
		ID:   "7-day-challenge",
		Name: i18n.Localized(map[string]string{"en-US": "7-Day Reset"}),
		Days: 7,
		DailyTasks: days,
	}
}

func testReducer() *Reducer {
	r := NewReducer(fakeTemplates{"7-day-challenge": sevenDayTemplate()})
	r.Now = func() time.Time {
		return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	}
	return r
}

func TestUnknownActionReturnsStateUnchanged(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	type unknownAction struct{ Action }
	got := r.Reduce(s, unknownAction{})
	assert.Same(t, s.UserData, got.UserData)
}

func TestStartChallengeInitializesInstance(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s.CurrentLanguage = "fr-FR"

	got := r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})

	challenge := got.UserData.Challenges["7-day-challenge"]
	require.NotNil(t, challenge)
	assert.Equal(t, 1, challenge.CurrentDay)
	assert.Empty(t, challenge.CompletedDays)
	assert.True(t, challenge.IsActive)
	assert.Equal(t, "2026-08-27", challenge.StartDate)
	assert.Equal(t, "fr-FR", challenge.Language)
	assert.Equal(t, "7-day-challenge", got.CurrentChallenge)

	// Completion flags sized to the snapshot language's task list.
	require.Len(t, challenge.DailyTasks, 7)
	for _, day := range challenge.DailyTasks {
		assert.Equal(t, []bool{false, false, false}, day.Completed)
	}

	// Input state untouched.
	assert.Empty(t, s.UserData.Challenges)
}

func TestStartChallengeUnknownTemplateIsNoop(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	got := r.Reduce(s, StartChallenge{ChallengeID: "missing"})
	assert.Same(t, s.UserData, got.UserData)
}

func TestRestartChallengeResetsProgress(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})
	for i := 0; i < 3; i++ {
		s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: i})
	}
	require.Equal(t, []int{1}, s.UserData.Challenges["7-day-challenge"].CompletedDays)

	s = r.Reduce(s, RestartChallenge{ChallengeID: "7-day-challenge"})
	challenge := s.UserData.Challenges["7-day-challenge"]
	assert.Empty(t, challenge.CompletedDays)
	assert.Equal(t, 1, challenge.CurrentDay)
	assert.Equal(t, []bool{false, false, false}, challenge.DailyTasks[0].Completed)
}

func TestCompleteTaskAdvancesDayWhenAllTasksDone(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})

	s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 0})
	s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 1})

	challenge := s.UserData.Challenges["7-day-challenge"]
	assert.Empty(t, challenge.CompletedDays, "day not complete until every task is")
	assert.Equal(t, 1, challenge.CurrentDay)

	s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 2})
	challenge = s.UserData.Challenges["7-day-challenge"]
	assert.Equal(t, []int{1}, challenge.CompletedDays)
	assert.Equal(t, 2, challenge.CurrentDay)

	// Re-completing an already satisfied day is a no-op on completedDays.
	s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 2})
	challenge = s.UserData.Challenges["7-day-challenge"]
	assert.Equal(t, []int{1}, challenge.CompletedDays)
	assert.Equal(t, 2, challenge.CurrentDay)
}

func TestCompleteTaskLastDayCapsCurrentDay(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})

	for day := 1; day <= 7; day++ {
		for i := 0; i < 3; i++ {
			s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: day, TaskIndex: i})
		}
	}

	challenge := s.UserData.Challenges["7-day-challenge"]
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, challenge.CompletedDays)
	assert.Equal(t, 7, challenge.CurrentDay)
	assert.True(t, challenge.IsCompleted())
}

func TestCompleteTaskOutOfBoundsIsNoop(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})

	before := s.UserData
	assert.Same(t, before, r.Reduce(s, CompleteTask{ChallengeID: "missing", Day: 1, TaskIndex: 0}).UserData)
	assert.Same(t, before, r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 99, TaskIndex: 0}).UserData)
	assert.Same(t, before, r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 3}).UserData)
	assert.Same(t, before, r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: -1}).UserData)
}

func TestUncompleteTaskRemovesDayKeepsCurrentDay(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})
	for i := 0; i < 3; i++ {
		s = r.Reduce(s, CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: i})
	}
	require.Equal(t, 2, s.UserData.Challenges["7-day-challenge"].CurrentDay)

	s = r.Reduce(s, UncompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 1})

	challenge := s.UserData.Challenges["7-day-challenge"]
	assert.Empty(t, challenge.CompletedDays)
	assert.Equal(t, 2, challenge.CurrentDay, "currentDay is not rewound")
	assert.Equal(t, []bool{true, false, true}, challenge.DailyTasks[0].Completed)
}

type fakeCourses map[string]*CourseTemplate

func (f fakeCourses) Course(id string) (*CourseTemplate, bool) {
	c, ok := f[id]
	return c, ok
}

func basicsCourse() *CourseTemplate {
	return &CourseTemplate{
		ID:    "basics",
		Title: i18n.Localized(map[string]string{"en-US": "Basics"}),
		Modules: []CourseModule{
			{
				ID: "m1",
				Lessons: []CourseLesson{
					{ID: "l1"},
					{ID: "l2"},
				},
			},
			{
				ID: "m2",
				Lessons: []CourseLesson{
					{ID: "l3"},
				},
			},
		},
	}
}

func testCourseReducer() *Reducer {
	r := testReducer()
	r.Courses = fakeCourses{"basics": basicsCourse()}
	return r
}

func TestStartCourseInitializesProgress(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()

	got := r.Reduce(s, StartCourse{CourseID: "basics"})

	progress := got.UserData.CourseProgressFor("basics")
	require.NotNil(t, progress)
	assert.Empty(t, progress.CompletedLessons)
	assert.Equal(t, "m1", progress.CurrentModule)
	assert.Equal(t, "l1", progress.CurrentLesson)
	assert.Equal(t, "2026-08-27T10:00:00Z", progress.StartedAt)
	assert.Equal(t, progress.StartedAt, progress.LastAccessedAt)

	// Input state untouched.
	assert.Empty(t, s.UserData.CourseProgress)
}

func TestStartCourseTwiceKeepsProgress(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartCourse{CourseID: "basics"})
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l1"})

	got := r.Reduce(s, StartCourse{CourseID: "basics"})
	assert.Same(t, s.UserData, got.UserData)
	assert.Equal(t, []string{"l1"}, got.UserData.CourseProgressFor("basics").CompletedLessons)
}

func TestStartCourseUnknownIsNoop(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()

	assert.Same(t, s.UserData, r.Reduce(s, StartCourse{CourseID: "missing"}).UserData)

	// A reducer without a course source ignores course actions entirely.
	bare := testReducer()
	assert.Same(t, s.UserData, bare.Reduce(s, StartCourse{CourseID: "basics"}).UserData)
}

func TestCompleteLessonAdvancesResumePointer(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartCourse{CourseID: "basics"})

	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l1"})
	progress := s.UserData.CourseProgressFor("basics")
	assert.Equal(t, []string{"l1"}, progress.CompletedLessons)
	assert.Equal(t, "m1", progress.CurrentModule)
	assert.Equal(t, "l2", progress.CurrentLesson)

	// Finishing the module's last lesson crosses into the next module.
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l2"})
	progress = s.UserData.CourseProgressFor("basics")
	assert.Equal(t, "m2", progress.CurrentModule)
	assert.Equal(t, "l3", progress.CurrentLesson)

	// The final lesson pins the pointer in place.
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m2", LessonID: "l3"})
	progress = s.UserData.CourseProgressFor("basics")
	assert.Equal(t, []string{"l1", "l2", "l3"}, progress.CompletedLessons)
	assert.Equal(t, "m2", progress.CurrentModule)
	assert.Equal(t, "l3", progress.CurrentLesson)

	// Re-completing does not duplicate the entry.
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m2", LessonID: "l3"})
	assert.Equal(t, []string{"l1", "l2", "l3"}, s.UserData.CourseProgressFor("basics").CompletedLessons)
}

func TestCompleteLessonInvalidIsNoop(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()

	// Not started yet.
	assert.Same(t, s.UserData, r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l1"}).UserData)

	s = r.Reduce(s, StartCourse{CourseID: "basics"})
	before := s.UserData
	assert.Same(t, before, r.Reduce(s, CompleteLesson{CourseID: "missing", ModuleID: "m1", LessonID: "l1"}).UserData)
	assert.Same(t, before, r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l3"}).UserData)
	assert.Same(t, before, r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m9", LessonID: "l1"}).UserData)
}

func TestUncompleteLessonKeepsResumePointer(t *testing.T) {
	r := testCourseReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartCourse{CourseID: "basics"})
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l1"})
	s = r.Reduce(s, CompleteLesson{CourseID: "basics", ModuleID: "m1", LessonID: "l2"})
	require.Equal(t, "m2", s.UserData.CourseProgressFor("basics").CurrentModule)

	s = r.Reduce(s, UncompleteLesson{CourseID: "basics", LessonID: "l1"})

	progress := s.UserData.CourseProgressFor("basics")
	assert.Equal(t, []string{"l2"}, progress.CompletedLessons)
	assert.Equal(t, "m2", progress.CurrentModule, "resume pointer is not rewound")
	assert.Equal(t, "l3", progress.CurrentLesson)

	// Unstarted courses are a no-op.
	assert.Same(t, s.UserData, r.Reduce(s, UncompleteLesson{CourseID: "missing", LessonID: "l1"}).UserData)
}

func TestToggleFavoriteIsInvolution(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	s1 := r.Reduce(s, ToggleFavorite{Kind: FavoriteExercises, ID: "ex-12"})
	assert.Equal(t, []string{"ex-12"}, s1.UserData.Favorites.Exercises)

	s2 := r.Reduce(s1, ToggleFavorite{Kind: FavoriteExercises, ID: "ex-12"})
	assert.Empty(t, s2.UserData.Favorites.Exercises)
}

func TestLogMetricOverwritesSameDay(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	s = r.Reduce(s, LogWeight{Weight: 82.5})
	s = r.Reduce(s, LogWeight{Weight: 82.1})
	require.Len(t, s.UserData.Weights, 1)
	assert.Equal(t, 82.1, s.UserData.Weights[0].Weight)
	assert.Equal(t, "2026-08-27", s.UserData.Weights[0].Date)

	s = r.Reduce(s, LogWater{Liters: 1.5})
	s = r.Reduce(s, LogWater{Liters: 2.5})
	require.Len(t, s.UserData.WaterLog, 1)
	assert.Equal(t, 2.5, s.UserData.WaterLog[0].Liters)
	assert.NotEmpty(t, s.UserData.WaterLog[0].ID)

	// Entries for other days are untouched.
	s = r.Reduce(s, LogWater{Liters: 2.0, Date: "2026-08-26"})
	assert.Len(t, s.UserData.WaterLog, 2)
}

func TestLogExerciseAndMealAppend(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	s = r.Reduce(s, LogExercise{ExerciseID: "ex-1", Duration: 15, Completed: true})
	s = r.Reduce(s, LogExercise{ExerciseID: "ex-2", Duration: 10, Completed: true, Date: "2026-08-26"})
	assert.Len(t, s.UserData.ExerciseHistory, 2)

	s = r.Reduce(s, LogMeal{MealID: "meal-1", MealType: MealLunch})
	require.Len(t, s.UserData.MealHistory, 1)
	assert.Equal(t, "2026-08-27", s.UserData.MealHistory[0].Date)

	// Blank ids are lookup failures, not entries.
	assert.Same(t, s.UserData, r.Reduce(s, LogExercise{}).UserData)
	assert.Same(t, s.UserData, r.Reduce(s, LogMeal{}).UserData)
}

func TestUnlockBadgeIsIdempotent(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()

	s = r.Reduce(s, UnlockBadge{BadgeID: "first_step", Name: "First Step"})
	require.Len(t, s.UserData.Badges, 1)
	first := s.UserData.Badges[0]
	assert.True(t, first.IsUnlocked)
	assert.NotEmpty(t, first.UnlockedAt)

	s = r.Reduce(s, UnlockBadge{BadgeID: "first_step", Name: "First Step"})
	require.Len(t, s.UserData.Badges, 1)
	assert.Equal(t, first.UnlockedAt, s.UserData.Badges[0].UnlockedAt)
}

func TestUpdateProfileRecomputesOnboarding(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	assert.False(t, s.IsOnboarded)

	name := "Ada"
	age := 31
	s = r.Reduce(s, UpdateProfile{Patch: ProfilePatch{Name: &name, Age: &age}})
	assert.True(t, s.IsOnboarded)
	assert.Equal(t, "Ada", s.UserData.UserProfile.Name)
	assert.Equal(t, 31, s.UserData.UserProfile.Age)

	blank := "   "
	s = r.Reduce(s, UpdateProfile{Patch: ProfilePatch{Name: &blank}})
	assert.False(t, s.IsOnboarded)
}

func TestResetDataReturnsDefaults(t *testing.T) {
	r := testReducer()
	s := DefaultAppState()
	s = r.Reduce(s, StartChallenge{ChallengeID: "7-day-challenge"})
	s = r.Reduce(s, LogWeight{Weight: 80})

	s = r.Reduce(s, ResetData{})
	assert.Empty(t, s.UserData.Challenges)
	assert.Empty(t, s.UserData.Weights)
	assert.Empty(t, s.CurrentChallenge)
}
