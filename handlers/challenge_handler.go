package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type ChallengeHandler struct {
	challenges *services.ChallengeService
	content    *services.ContentService
}

func NewChallengeHandler(challenges *services.ChallengeService, content *services.ContentService) *ChallengeHandler {
	return &ChallengeHandler{
		challenges: challenges,
		content:    content,
	}
}

// ListChallenges returns the catalog annotated with the caller's progress.
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.Challenges(ctx, deviceID))
}

func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	challengeID := mux.Vars(r)["id"]
	challenge, err := h.challenges.Get(ctx, deviceID, challengeID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Challenge not started")
		return
	}

	respondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	h.startOrRestart(w, r, h.challenges.Start)
}

func (h *ChallengeHandler) RestartChallenge(w http.ResponseWriter, r *http.Request) {
	h.startOrRestart(w, r, h.challenges.Restart)
}

func (h *ChallengeHandler) startOrRestart(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (state.AppState, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	challengeID := mux.Vars(r)["id"]
	app, err := op(ctx, deviceID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownChallenge):
			respondWithError(w, http.StatusNotFound, "Unknown challenge")
		case errors.Is(err, services.ErrChallengeLocked):
			respondWithError(w, http.StatusForbidden, "Challenge not included in current plan")
		default:
			log.Printf("ChallengeHandler: failed to start %s for %s: %v", challengeID, deviceID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to start challenge")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, app.UserData.Challenges[challengeID])
}

type taskRequest struct {
	Day       int `json:"day"`
	TaskIndex int `json:"taskIndex"`
}

func (h *ChallengeHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	challengeID := mux.Vars(r)["id"]
	app, unlocked, err := h.challenges.CompleteTask(ctx, deviceID, challengeID, req.Day, req.TaskIndex)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Challenge not started")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"challenge":      app.UserData.Challenges[challengeID],
		"unlockedBadges": unlocked,
	})
}

func (h *ChallengeHandler) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	challengeID := mux.Vars(r)["id"]
	app, err := h.challenges.UncompleteTask(ctx, deviceID, challengeID, req.Day, req.TaskIndex)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Challenge not started")
		return
	}

	respondWithJSON(w, http.StatusOK, app.UserData.Challenges[challengeID])
}
