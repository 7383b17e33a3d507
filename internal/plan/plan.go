package plan

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"time"
)

// Unlimited marks a plan without an expiration.
const Unlimited = -1

// FreeChallengeID is open to devices without any plan activation.
const FreeChallengeID = "7-day-challenge"

var (
	ErrUnknownPlan   = errors.New("unknown plan")
	ErrInvalidCode   = errors.New("invalid access code")
	ErrNoActivePlan  = errors.New("no active plan")
	ErrAccessExpired = errors.New("plan access expired")
)

// Plan is a content-access tier. Activation requires the plan's access code.
type Plan struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	DurationDays int      `json:"durationDays"`
	Challenges   []string `json:"challenges"`
	Features     []string `json:"features"`

	defaultCode string
}

// Record is the persisted activation, stored under its own key next to the
// user document.
type Record struct {
	PlanID         int       `json:"planId"`
	StartDate      time.Time `json:"startDate"`
	ExpirationDate time.Time `json:"expirationDate"`
	IsActive       bool      `json:"isActive"`
}

var plans = []Plan{
	{
		ID:           1,
		Name:         "Basic",
		DurationDays: 15,
		Challenges:   []string{"7-day-challenge"},
		Features:     []string{"7-day challenge"},
		defaultCode:  "basic-2026",
	},
	{
		ID:           2,
		Name:         "Intermediate",
		DurationDays: 45,
		Challenges:   []string{"7-day-challenge", "14-day-challenge", "28-day-challenge"},
		Features:     []string{"7-day challenge", "14-day challenge", "28-day challenge"},
		defaultCode:  "intermediate-2026",
	},
	{
		ID:           3,
		Name:         "Advanced",
		DurationDays: 120,
		Challenges:   []string{"7-day-challenge", "14-day-challenge", "28-day-challenge", "30-day-no-sugar"},
		Features:     []string{"All challenges", "Premium features", "Advanced reports"},
		defaultCode:  "advanced-2026",
	},
	{
		ID:           4,
		Name:         "Unlimited",
		DurationDays: Unlimited,
		Challenges:   []string{"7-day-challenge", "14-day-challenge", "28-day-challenge", "30-day-no-sugar"},
		Features:     []string{"Unlimited access", "All features", "Premium support"},
		defaultCode:  "unlimited-2026",
	},
}

// Plans lists every tier.
func Plans() []Plan {
	return plans
}

// Find returns the plan with the given id.
func Find(id int) (*Plan, bool) {
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i], true
		}
	}
	return nil, false
}

// accessCode reads the plan's code, overridable via PLAN<ID>_ACCESS_CODE.
func (p *Plan) accessCode() string {
	if code := os.Getenv(fmt.Sprintf("PLAN%d_ACCESS_CODE", p.ID)); code != "" {
		return code
	}
	return p.defaultCode
}

// Activate validates the access code and builds the activation record.
func Activate(planID int, code string, now time.Time) (*Record, error) {
	p, ok := Find(planID)
	if !ok {
		return nil, ErrUnknownPlan
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(p.accessCode())) != 1 {
		return nil, ErrInvalidCode
	}

	expiration := time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
	if p.DurationDays != Unlimited {
		expiration = now.AddDate(0, 0, p.DurationDays)
	}

	return &Record{
		PlanID:         planID,
		StartDate:      now,
		ExpirationDate: expiration,
		IsActive:       true,
	}, nil
}

// Expired reports whether the activation no longer grants access.
func (r *Record) Expired(now time.Time) bool {
	if r == nil || !r.IsActive {
		return true
	}
	return now.After(r.ExpirationDate)
}

// RemainingDays returns the days of access left, Unlimited for unlimited
// plans and 0 once expired.
func (r *Record) RemainingDays(now time.Time) int {
	if r == nil || !r.IsActive {
		return 0
	}
	p, ok := Find(r.PlanID)
	if !ok {
		return 0
	}
	if p.DurationDays == Unlimited {
		return Unlimited
	}

	remaining := r.ExpirationDate.Sub(now)
	days := int(remaining.Hours() / 24)
	if remaining > 0 && remaining%(24*time.Hour) != 0 {
		days++
	}
	if days < 0 {
		return 0
	}
	return days
}

// HasAccessToChallenge reports whether the activation covers a challenge.
func (r *Record) HasAccessToChallenge(challengeID string, now time.Time) bool {
	if r.Expired(now) {
		return false
	}
	p, ok := Find(r.PlanID)
	if !ok {
		return false
	}
	for _, id := range p.Challenges {
		if id == challengeID {
			return true
		}
	}
	return false
}
