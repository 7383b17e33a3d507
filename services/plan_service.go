package services

import (
	"context"
	"log"
	"time"

	"github.com/diegomolina2/appreset/internal/plan"
	"github.com/diegomolina2/appreset/internal/store"
)

// PlanService manages content-access activations. The activation record is
// stored per device next to the user document.
type PlanService struct {
	store *store.Store
	now   func() time.Time
}

func NewPlanService(st *store.Store) *PlanService {
	return &PlanService{store: st, now: time.Now}
}

// Activate validates the access code and persists the activation.
func (s *PlanService) Activate(ctx context.Context, deviceID string, planID int, code string) (*plan.Record, error) {
	record, err := plan.Activate(planID, code, s.now())
	if err != nil {
		log.Printf("PlanService: activation of plan %d rejected for %s: %v", planID, deviceID, err)
		return nil, err
	}

	s.store.SaveRecord(ctx, deviceID, store.PlanKey, record)
	return record, nil
}

// Current returns the device's activation and its plan definition. A missing
// or expired record reports ErrNoActivePlan.
func (s *PlanService) Current(ctx context.Context, deviceID string) (*plan.Record, *plan.Plan, error) {
	var record plan.Record
	if !s.store.LoadRecord(ctx, deviceID, store.PlanKey, &record) {
		return nil, nil, plan.ErrNoActivePlan
	}
	if record.Expired(s.now()) {
		return nil, nil, plan.ErrAccessExpired
	}

	p, ok := plan.Find(record.PlanID)
	if !ok {
		return nil, nil, plan.ErrUnknownPlan
	}
	return &record, p, nil
}

// HasAccessToChallenge reports whether the device may start a challenge.
// Without any activation only the entry-level challenge is open.
func (s *PlanService) HasAccessToChallenge(ctx context.Context, deviceID, challengeID string) bool {
	var record plan.Record
	if !s.store.LoadRecord(ctx, deviceID, store.PlanKey, &record) {
		return challengeID == plan.FreeChallengeID
	}
	return record.HasAccessToChallenge(challengeID, s.now())
}

// Deactivate drops the activation record.
func (s *PlanService) Deactivate(ctx context.Context, deviceID string) {
	s.store.DeleteRecord(ctx, deviceID, store.PlanKey)
}
