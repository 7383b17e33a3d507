package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/internal/store"
)

var testNow = time.Date(2026, time.August, 27, 12, 0, 0, 0, time.UTC)

type stubTemplates map[string]*state.ChallengeTemplate

func (s stubTemplates) ChallengeTemplate(id string) (*state.ChallengeTemplate, bool) {
	t, ok := s[id]
	return t, ok
}

func testTemplates() stubTemplates {
	days := make([]state.TemplateDay, 7)
	for i := range days {
		days[i] = state.TemplateDay{
			Day: i + 1,
			Tasks: map[string][]string{
				"en-US": {"Drink water", "Walk"},
			},
		}
	}
	return stubTemplates{
		"7-day-challenge": {
			ID:   "7-day-challenge",
			Name: i18n.Plain("7-Day Challenge"),
			Days: 7,

			DailyTasks: days,
		},
	}
}

func newTestTracker() *TrackerService {
	s := NewTrackerService(store.New(store.NewMemory()), testTemplates())
	s.now = func() time.Time { return testNow }
	s.reducer.Now = s.now
	return s
}

func TestDispatchPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	name := "Ada"
	svc.Dispatch(ctx, "device-1", state.UpdateProfile{Patch: state.ProfilePatch{Name: &name}})

	app := svc.State(ctx, "device-1")
	assert.Equal(t, "Ada", app.UserData.UserProfile.Name)
	assert.True(t, app.IsOnboarded)
}

func TestDispatchUnlocksBadges(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	svc.Dispatch(ctx, "device-1", state.StartChallenge{ChallengeID: "7-day-challenge"})
	svc.Dispatch(ctx, "device-1", state.CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 0})

	// Finishing the last task of day 1 completes the day and satisfies the
	// first-step rule in the same dispatch.
	app, unlocked := svc.Dispatch(ctx, "device-1", state.CompleteTask{ChallengeID: "7-day-challenge", Day: 1, TaskIndex: 1})

	require.NotEmpty(t, unlocked)
	ids := make([]string, 0, len(unlocked))
	for _, rule := range unlocked {
		ids = append(ids, rule.ID)
	}
	assert.Contains(t, ids, "first_step")
	assert.True(t, app.UserData.HasBadge("first_step"))

	// Re-dispatching does not unlock it twice.
	_, again := svc.Dispatch(ctx, "device-1", state.LogWeight{Weight: 81})
	for _, rule := range again {
		assert.NotEqual(t, "first_step", rule.ID)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	svc.Dispatch(ctx, "device-1", state.SetLanguage{Language: "fr-FR"})
	svc.Dispatch(ctx, "device-1", state.SetDarkMode{Enabled: true})

	app := svc.State(ctx, "device-1")
	assert.Equal(t, "fr-FR", app.CurrentLanguage)
	assert.True(t, app.IsDarkMode)
}

func TestStreakAndStatsReadSameDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	svc.Dispatch(ctx, "device-1", state.LogWater{Liters: 2})
	svc.Dispatch(ctx, "device-1", state.LogMood{Mood: 4, Date: state.FormatDate(testNow.AddDate(0, 0, -1))})

	summary := svc.Streak(ctx, "device-1")
	assert.Equal(t, 2, summary.CurrentStreak)

	stats := svc.Stats(ctx, "device-1")
	assert.Equal(t, 2, stats.TotalActiveDays)
	assert.True(t, stats.TodayActive)
}

func TestWellnessScoreGrowsWithActivity(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	before := svc.WellnessScore(ctx, "device-1")
	svc.Dispatch(ctx, "device-1", state.LogWeight{Weight: 80})
	after := svc.WellnessScore(ctx, "device-1")

	assert.Greater(t, after, before)
}

func TestResetClearsDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestTracker()

	svc.Dispatch(ctx, "device-1", state.LogWeight{Weight: 80})
	svc.Dispatch(ctx, "device-1", state.ResetData{})

	app := svc.State(ctx, "device-1")
	assert.Empty(t, app.UserData.Weights)
	assert.Empty(t, app.UserData.Badges)
}
