package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/diegomolina2/appreset/internal/plan"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type PlanHandler struct {
	plans *services.PlanService
}

func NewPlanHandler(plans *services.PlanService) *PlanHandler {
	return &PlanHandler{
		plans: plans,
	}
}

// ListPlans returns the plan catalog. Access codes never leave the server.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, plan.Plans())
}

type activateRequest struct {
	PlanID     int    `json:"planId"`
	AccessCode string `json:"accessCode"`
}

func (h *PlanHandler) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.plans.Activate(ctx, deviceID, req.PlanID, req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrUnknownPlan):
			respondWithError(w, http.StatusNotFound, "Unknown plan")
		case errors.Is(err, plan.ErrInvalidCode):
			respondWithError(w, http.StatusForbidden, "Invalid access code")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to activate plan")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

func (h *PlanHandler) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	record, p, err := h.plans.Current(ctx, deviceID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "No active plan")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"plan":          p,
		"activation":    record,
		"remainingDays": record.RemainingDays(time.Now()),
	})
}

func (h *PlanHandler) DeactivatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	h.plans.Deactivate(ctx, deviceID)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Plan deactivated"})
}
