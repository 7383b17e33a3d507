package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type BadgeHandler struct {
	tracker *services.TrackerService
}

func NewBadgeHandler(tracker *services.TrackerService) *BadgeHandler {
	return &BadgeHandler{
		tracker: tracker,
	}
}

// GetBadges returns the whole badge table with the caller's unlock state.
func (h *BadgeHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.tracker.Badges(ctx, deviceID))
}
