package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type TrackerHandler struct {
	tracker *services.TrackerService
}

func NewTrackerHandler(tracker *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		tracker: tracker,
	}
}

func (h *TrackerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.tracker.State(ctx, deviceID))
}

func (h *TrackerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var patch state.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, _ := h.tracker.Dispatch(ctx, deviceID, state.UpdateProfile{Patch: patch})
	respondWithJSON(w, http.StatusOK, app.UserData.UserProfile)
}

type settingsRequest struct {
	Language  *string `json:"language,omitempty"`
	DarkMode  *bool   `json:"darkMode,omitempty"`
	Onboarded *bool   `json:"onboarded,omitempty"`
}

// UpdateSettings applies language, theme and onboarding changes in one call.
func (h *TrackerHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app := h.tracker.State(ctx, deviceID)
	if req.Language != nil {
		app, _ = h.tracker.Dispatch(ctx, deviceID, state.SetLanguage{Language: *req.Language})
	}
	if req.DarkMode != nil {
		app, _ = h.tracker.Dispatch(ctx, deviceID, state.SetDarkMode{Enabled: *req.DarkMode})
	}
	if req.Onboarded != nil {
		app, _ = h.tracker.Dispatch(ctx, deviceID, state.SetOnboarded{Onboarded: *req.Onboarded})
	}

	respondWithJSON(w, http.StatusOK, services.Settings{
		CurrentLanguage:  app.CurrentLanguage,
		IsDarkMode:       app.IsDarkMode,
		IsOnboarded:      app.IsOnboarded,
		CurrentChallenge: app.CurrentChallenge,
	})
}

type logRequest struct {
	Date     string          `json:"date,omitempty"`
	Weight   *float64        `json:"weight,omitempty"`
	Mood     *int            `json:"mood,omitempty"`
	Liters   *float64        `json:"liters,omitempty"`
	Calories *int            `json:"calories,omitempty"`
}

func (h *TrackerHandler) LogWeight(w http.ResponseWriter, r *http.Request) {
	h.log(w, r, func(req logRequest) (state.Action, bool) {
		if req.Weight == nil {
			return nil, false
		}
		return state.LogWeight{Weight: *req.Weight, Date: req.Date}, true
	})
}

func (h *TrackerHandler) LogMood(w http.ResponseWriter, r *http.Request) {
	h.log(w, r, func(req logRequest) (state.Action, bool) {
		if req.Mood == nil {
			return nil, false
		}
		return state.LogMood{Mood: *req.Mood, Date: req.Date}, true
	})
}

func (h *TrackerHandler) LogWater(w http.ResponseWriter, r *http.Request) {
	h.log(w, r, func(req logRequest) (state.Action, bool) {
		if req.Liters == nil {
			return nil, false
		}
		return state.LogWater{Liters: *req.Liters, Date: req.Date}, true
	})
}

func (h *TrackerHandler) LogCalories(w http.ResponseWriter, r *http.Request) {
	h.log(w, r, func(req logRequest) (state.Action, bool) {
		if req.Calories == nil {
			return nil, false
		}
		return state.LogCalories{Calories: *req.Calories, Date: req.Date}, true
	})
}

// log is the shared body for the scalar metric endpoints: decode, build the
// action, dispatch, return the document plus any badges it unlocked.
func (h *TrackerHandler) log(w http.ResponseWriter, r *http.Request, build func(logRequest) (state.Action, bool)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, ok := build(req)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Missing metric value")
		return
	}

	app, unlocked := h.tracker.Dispatch(ctx, deviceID, action)
	respondWithJSON(w, http.StatusOK, map[string]any{
		"userData":       app.UserData,
		"unlockedBadges": unlocked,
	})
}

type exerciseLogRequest struct {
	ExerciseID string `json:"exerciseId"`
	Duration   int    `json:"duration"`
	Completed  bool   `json:"completed"`
	Date       string `json:"date,omitempty"`
}

func (h *TrackerHandler) LogExercise(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req exerciseLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ExerciseID == "" {
		respondWithError(w, http.StatusBadRequest, "exerciseId is required")
		return
	}

	app, unlocked := h.tracker.Dispatch(ctx, deviceID, state.LogExercise{
		ExerciseID: req.ExerciseID,
		Duration:   req.Duration,
		Completed:  req.Completed,
		Date:       req.Date,
	})
	respondWithJSON(w, http.StatusOK, map[string]any{
		"exerciseHistory": app.UserData.ExerciseHistory,
		"unlockedBadges":  unlocked,
	})
}

type mealLogRequest struct {
	MealID   string         `json:"mealId"`
	MealType state.MealType `json:"mealType"`
	Date     string         `json:"date,omitempty"`
}

func (h *TrackerHandler) LogMeal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req mealLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MealID == "" {
		respondWithError(w, http.StatusBadRequest, "mealId is required")
		return
	}

	app, unlocked := h.tracker.Dispatch(ctx, deviceID, state.LogMeal{
		MealID:   req.MealID,
		MealType: req.MealType,
		Date:     req.Date,
	})
	respondWithJSON(w, http.StatusOK, map[string]any{
		"mealHistory":    app.UserData.MealHistory,
		"unlockedBadges": unlocked,
	})
}

func (h *TrackerHandler) LogMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var m state.Measurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, _ := h.tracker.Dispatch(ctx, deviceID, state.LogMeasurements{Measurement: m})
	respondWithJSON(w, http.StatusOK, app.UserData.Measurements)
}

func (h *TrackerHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.tracker.Streak(ctx, deviceID))
}

func (h *TrackerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.tracker.Stats(ctx, deviceID))
}

func (h *TrackerHandler) GetPeriodStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.tracker.PeriodStats(ctx, deviceID))
}

func (h *TrackerHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			respondWithError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		month = time.Month(parsed)
	}

	respondWithJSON(w, http.StatusOK, h.tracker.Calendar(ctx, deviceID, year, month))
}

func (h *TrackerHandler) GetWellnessScore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{
		"wellnessScore": h.tracker.WellnessScore(ctx, deviceID),
	})
}

func (h *TrackerHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	h.tracker.Dispatch(ctx, deviceID, state.ResetData{})
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "All data reset"})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
