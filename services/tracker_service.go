package services

import (
	"context"
	"time"

	"github.com/diegomolina2/appreset/internal/badge"
	"github.com/diegomolina2/appreset/internal/calendar"
	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/internal/stats"
	"github.com/diegomolina2/appreset/internal/store"
	"github.com/diegomolina2/appreset/internal/streak"
	"github.com/diegomolina2/appreset/utils"
)

// Settings is the per-device session record persisted next to the user
// document: everything in AppState that is not the document itself.
type Settings struct {
	CurrentLanguage  string `json:"currentLanguage"`
	IsDarkMode       bool   `json:"isDarkMode"`
	IsOnboarded      bool   `json:"isOnboarded"`
	CurrentChallenge string `json:"currentChallenge,omitempty"`
}

// TrackerService owns the dispatch loop: load state, reduce, sweep badges,
// persist. Every write path in the API funnels through Dispatch.
type TrackerService struct {
	store     *store.Store
	reducer   *state.Reducer
	evaluator *badge.Evaluator
	now       func() time.Time
}

func NewTrackerService(st *store.Store, templates state.TemplateSource) *TrackerService {
	reducer := state.NewReducer(templates)
	// The catalog serves courses too; a bare template source (tests) just
	// leaves course actions as no-ops.
	if courses, ok := templates.(state.CourseSource); ok {
		reducer.Courses = courses
	}
	return &TrackerService{
		store:     st,
		reducer:   reducer,
		evaluator: badge.NewEvaluator(),
		now:       time.Now,
	}
}

// State loads the device's full app state.
func (s *TrackerService) State(ctx context.Context, deviceID string) state.AppState {
	data := s.store.LoadUserData(ctx, deviceID)

	app := state.DefaultAppState()
	app.UserData = data
	app.IsOnboarded = data.HasCompletedOnboarding()
	if data.UserProfile.Language != "" {
		app.CurrentLanguage = data.UserProfile.Language
	}

	var settings Settings
	if s.store.LoadRecord(ctx, deviceID, store.SettingsKey, &settings) {
		if settings.CurrentLanguage != "" {
			app.CurrentLanguage = settings.CurrentLanguage
		}
		app.IsDarkMode = settings.IsDarkMode
		app.IsOnboarded = settings.IsOnboarded || app.IsOnboarded
		app.CurrentChallenge = settings.CurrentChallenge
	}

	return app
}

// Dispatch runs one action through the reducer, then evaluates badge rules
// against the result and unlocks whatever became satisfied. Returns the new
// state and the badges unlocked by this dispatch.
func (s *TrackerService) Dispatch(ctx context.Context, deviceID string, action state.Action) (state.AppState, []badge.Rule) {
	app := s.State(ctx, deviceID)
	app = s.reducer.Reduce(app, action)

	unlocked := s.evaluator.Evaluate(app.UserData, s.now())
	for _, rule := range unlocked {
		app = s.reducer.Reduce(app, state.UnlockBadge{
			BadgeID:     rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
		})
	}

	s.save(ctx, deviceID, app)
	return app, unlocked
}

func (s *TrackerService) save(ctx context.Context, deviceID string, app state.AppState) {
	s.store.SaveUserData(ctx, deviceID, app.UserData)
	s.store.SaveRecord(ctx, deviceID, store.SettingsKey, Settings{
		CurrentLanguage:  app.CurrentLanguage,
		IsDarkMode:       app.IsDarkMode,
		IsOnboarded:      app.IsOnboarded,
		CurrentChallenge: app.CurrentChallenge,
	})
}

// Streak summarizes activity streaks across every tracked metric.
func (s *TrackerService) Streak(ctx context.Context, deviceID string) streak.Summary {
	data := s.store.LoadUserData(ctx, deviceID)
	return streak.Summarize(data, s.now())
}

// Stats returns the headline progress numbers.
func (s *TrackerService) Stats(ctx context.Context, deviceID string) stats.UserStats {
	data := s.store.LoadUserData(ctx, deviceID)
	return stats.Compute(data, s.now())
}

// PeriodStats breaks active days down per reporting window.
func (s *TrackerService) PeriodStats(ctx context.Context, deviceID string) []stats.DaysStat {
	data := s.store.LoadUserData(ctx, deviceID)
	return stats.Periods(data, s.now())
}

// Calendar renders one month of logged activity.
func (s *TrackerService) Calendar(ctx context.Context, deviceID string, year int, month time.Month) *calendar.Month {
	data := s.store.LoadUserData(ctx, deviceID)
	return calendar.MonthOf(data, year, month, s.now())
}

// Badges joins the rule table with the device's unlock records.
func (s *TrackerService) Badges(ctx context.Context, deviceID string) []badge.Status {
	data := s.store.LoadUserData(ctx, deviceID)
	return s.evaluator.Statuses(data)
}

// WellnessScore folds streak, activity volume and badges into one number.
func (s *TrackerService) WellnessScore(ctx context.Context, deviceID string) float64 {
	data := s.store.LoadUserData(ctx, deviceID)
	summary := streak.Summarize(data, s.now())
	return utils.CalculateWellnessScore(summary.CurrentStreak, len(data.ActivityDates()), len(data.Badges))
}
