package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diegomolina2/appreset/internal/catalog"
	"github.com/diegomolina2/appreset/internal/store"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

// Env is the full service stack wired on in-memory storage, as main.go
// builds it minus the HTTP server.
type Env struct {
	Store      *store.Store
	Catalog    *catalog.Catalog
	Tracker    *services.TrackerService
	Plans      *services.PlanService
	Challenges *services.ChallengeService
	Courses    *services.CourseService
	Content    *services.ContentService
}

// SetupEnv builds the stack on the embedded catalog and a fresh memory KV.
func SetupEnv(t *testing.T) *Env {
	t.Helper()

	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	st := store.New(store.NewMemory())
	tracker := services.NewTrackerService(st, c)
	plans := services.NewPlanService(st)

	return &Env{
		Store:      st,
		Catalog:    c,
		Tracker:    tracker,
		Plans:      plans,
		Challenges: services.NewChallengeService(tracker, plans, c),
		Courses:    services.NewCourseService(tracker, c),
		Content:    services.NewContentService(c, tracker),
	}
}

// AuthedRequest builds a request carrying the device identity the way the
// auth middleware would have injected it.
func AuthedRequest(method, target, deviceID string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", deviceID)

	ctx := context.WithValue(req.Context(), middleware.DeviceIDKey, deviceID)
	return req.WithContext(ctx)
}

// DecodeJSON unmarshals a recorder body, failing the test on bad JSON.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}
