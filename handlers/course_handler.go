package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/diegomolina2/appreset/middleware"
	"github.com/diegomolina2/appreset/services"
)

type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// ListCourses returns the course catalog annotated with the caller's progress.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	respondWithJSON(w, http.StatusOK, h.courses.List(ctx, deviceID))
}

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	courseID := mux.Vars(r)["id"]
	detail, err := h.courses.Get(ctx, deviceID, courseID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Unknown course")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

func (h *CourseHandler) StartCourse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	courseID := mux.Vars(r)["id"]
	progress, err := h.courses.Start(ctx, deviceID, courseID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Unknown course")
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}

type lessonRequest struct {
	ModuleID string `json:"moduleId"`
	LessonID string `json:"lessonId"`
}

func (h *CourseHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	courseID := mux.Vars(r)["id"]
	progress, err := h.courses.CompleteLesson(ctx, deviceID, courseID, req.ModuleID, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownCourse), errors.Is(err, services.ErrUnknownLesson):
			respondWithError(w, http.StatusNotFound, "Unknown course or lesson")
		default:
			respondWithError(w, http.StatusConflict, "Course not started")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}

func (h *CourseHandler) UncompleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deviceID, ok := middleware.GetDeviceID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Device not identified")
		return
	}

	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	courseID := mux.Vars(r)["id"]
	progress, err := h.courses.UncompleteLesson(ctx, deviceID, courseID, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownCourse):
			respondWithError(w, http.StatusNotFound, "Unknown course")
		default:
			respondWithError(w, http.StatusConflict, "Course not started")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}
