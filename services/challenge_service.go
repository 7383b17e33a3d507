package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/diegomolina2/appreset/internal/badge"
	"github.com/diegomolina2/appreset/internal/state"
)

var (
	ErrUnknownChallenge  = errors.New("unknown challenge")
	ErrChallengeLocked   = errors.New("challenge not included in current plan")
	ErrChallengeNotFound = errors.New("challenge not started")
)

// ChallengeService wraps the challenge lifecycle: plan-gated start/restart
// and per-task completion, all dispatched through the tracker.
type ChallengeService struct {
	tracker *TrackerService
	plans   *PlanService
	catalog state.TemplateSource
}

func NewChallengeService(tracker *TrackerService, plans *PlanService, catalog state.TemplateSource) *ChallengeService {
	return &ChallengeService{tracker: tracker, plans: plans, catalog: catalog}
}

// Start stamps a new challenge instance from its template. The challenge
// must exist and be covered by the device's plan.
func (s *ChallengeService) Start(ctx context.Context, deviceID, challengeID string) (state.AppState, error) {
	return s.start(ctx, deviceID, challengeID, state.StartChallenge{ChallengeID: challengeID})
}

// Restart re-initializes an existing challenge from scratch. All progress on
// it is discarded.
func (s *ChallengeService) Restart(ctx context.Context, deviceID, challengeID string) (state.AppState, error) {
	return s.start(ctx, deviceID, challengeID, state.RestartChallenge{ChallengeID: challengeID})
}

func (s *ChallengeService) start(ctx context.Context, deviceID, challengeID string, action state.Action) (state.AppState, error) {
	if _, ok := s.catalog.ChallengeTemplate(challengeID); !ok {
		return state.AppState{}, ErrUnknownChallenge
	}
	if !s.plans.HasAccessToChallenge(ctx, deviceID, challengeID) {
		log.Printf("ChallengeService: %s blocked from starting %s by plan gating", deviceID, challengeID)
		return state.AppState{}, ErrChallengeLocked
	}

	app, _ := s.tracker.Dispatch(ctx, deviceID, action)
	return app, nil
}

// CompleteTask marks one task of one day done. Completing the last open task
// of a day records the day and advances the challenge.
func (s *ChallengeService) CompleteTask(ctx context.Context, deviceID, challengeID string, day, taskIndex int) (state.AppState, []badge.Rule, error) {
	app := s.tracker.State(ctx, deviceID)
	if _, ok := app.UserData.Challenges[challengeID]; !ok {
		return state.AppState{}, nil, ErrChallengeNotFound
	}

	app, unlocked := s.tracker.Dispatch(ctx, deviceID, state.CompleteTask{
		ChallengeID: challengeID,
		Day:         day,
		TaskIndex:   taskIndex,
	})
	return app, unlocked, nil
}

// UncompleteTask reverts one task. The day drops out of the completed set;
// the current day is not rewound.
func (s *ChallengeService) UncompleteTask(ctx context.Context, deviceID, challengeID string, day, taskIndex int) (state.AppState, error) {
	app := s.tracker.State(ctx, deviceID)
	if _, ok := app.UserData.Challenges[challengeID]; !ok {
		return state.AppState{}, ErrChallengeNotFound
	}

	app, _ = s.tracker.Dispatch(ctx, deviceID, state.UncompleteTask{
		ChallengeID: challengeID,
		Day:         day,
		TaskIndex:   taskIndex,
	})
	return app, nil
}

// Get returns one started challenge instance.
func (s *ChallengeService) Get(ctx context.Context, deviceID, challengeID string) (*state.Challenge, error) {
	app := s.tracker.State(ctx, deviceID)
	c, ok := app.UserData.Challenges[challengeID]
	if !ok {
		return nil, fmt.Errorf("challenge %s: %w", challengeID, ErrChallengeNotFound)
	}
	return c, nil
}
