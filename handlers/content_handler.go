package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type ContentHandler struct {
	content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{
		content: content,
	}
}

func (h *ContentHandler) GetExercises(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.Exercises(ctx, deviceID))
}

func (h *ContentHandler) GetMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.Meals(ctx, deviceID))
}

func (h *ContentHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.Quotes(ctx, deviceID))
}

func (h *ContentHandler) GetQuoteOfTheDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	quote, ok := h.content.QuoteOfTheDay(ctx, deviceID, time.Now())
	if !ok {
		respondWithError(w, http.StatusNotFound, "No quotes available")
		return
	}
	respondWithJSON(w, http.StatusOK, quote)
}

type favoriteRequest struct {
	Kind state.FavoriteKind `json:"kind"`
	ID   string             `json:"id"`
}

func (h *ContentHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch req.Kind {
	case state.FavoriteExercises, state.FavoriteMeals, state.FavoriteQuotes:
	default:
		respondWithError(w, http.StatusBadRequest, "Unknown favorite kind")
		return
	}
	if req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.ToggleFavorite(ctx, deviceID, req.Kind, req.ID))
}
