package services

import (
	"context"
	"errors"
	"math"

	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
)

var (
	ErrUnknownCourse  = errors.New("unknown course")
	ErrUnknownLesson  = errors.New("unknown lesson")
	ErrCourseNotFound = errors.New("course not started")
)

// CourseLister is the catalog slice the course service reads from.
type CourseLister interface {
	state.CourseSource
	Courses() []*state.CourseTemplate
}

// CourseService wraps the course lifecycle: start, lesson completion and the
// percent-complete derivations shown on the course list.
type CourseService struct {
	tracker *TrackerService
	catalog CourseLister
}

func NewCourseService(tracker *TrackerService, catalog CourseLister) *CourseService {
	return &CourseService{tracker: tracker, catalog: catalog}
}

// CourseSummary is the catalog view of one course with the caller's
// progress folded in.
type CourseSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Image           string `json:"image,omitempty"`
	TotalLessons    int    `json:"totalLessons"`
	Started         bool   `json:"started"`
	PercentComplete int    `json:"percentComplete"`
}

// CourseDetail is one course with per-module progress.
type CourseDetail struct {
	Course          *state.CourseTemplate `json:"course"`
	Progress        *state.CourseProgress `json:"progress,omitempty"`
	PercentComplete int                   `json:"percentComplete"`
	ModuleProgress  map[string]int        `json:"moduleProgress"`
}

// List returns every course, localized and annotated with progress.
func (s *CourseService) List(ctx context.Context, deviceID string) []CourseSummary {
	app := s.tracker.State(ctx, deviceID)
	lang := app.CurrentLanguage

	var out []CourseSummary
	for _, course := range s.catalog.Courses() {
		summary := CourseSummary{
			ID:           course.ID,
			Title:        course.Title.Resolve(lang, i18n.DefaultLanguage),
			Description:  course.Description.Resolve(lang, i18n.DefaultLanguage),
			Image:        course.Image,
			TotalLessons: course.TotalLessons(),
		}
		if progress := app.UserData.CourseProgressFor(course.ID); progress != nil {
			summary.Started = true
			summary.PercentComplete = percentComplete(course, progress)
		}
		out = append(out, summary)
	}
	return out
}

// Get returns one course with the caller's progress.
func (s *CourseService) Get(ctx context.Context, deviceID, courseID string) (*CourseDetail, error) {
	course, ok := s.catalog.Course(courseID)
	if !ok {
		return nil, ErrUnknownCourse
	}

	app := s.tracker.State(ctx, deviceID)
	progress := app.UserData.CourseProgressFor(courseID)

	detail := &CourseDetail{
		Course:         course,
		Progress:       progress,
		ModuleProgress: make(map[string]int, len(course.Modules)),
	}
	if progress != nil {
		detail.PercentComplete = percentComplete(course, progress)
	}
	for _, m := range course.Modules {
		completed := 0
		if progress != nil {
			for _, l := range m.Lessons {
				if progress.IsLessonCompleted(l.ID) {
					completed++
				}
			}
		}
		detail.ModuleProgress[m.ID] = percentOf(completed, len(m.Lessons))
	}
	return detail, nil
}

// Start creates the progress record. Starting twice keeps existing progress.
func (s *CourseService) Start(ctx context.Context, deviceID, courseID string) (*state.CourseProgress, error) {
	if _, ok := s.catalog.Course(courseID); !ok {
		return nil, ErrUnknownCourse
	}

	app, _ := s.tracker.Dispatch(ctx, deviceID, state.StartCourse{CourseID: courseID})
	return app.UserData.CourseProgressFor(courseID), nil
}

// CompleteLesson records one finished lesson and advances the resume
// pointer. The course must be started and the lesson must exist.
func (s *CourseService) CompleteLesson(ctx context.Context, deviceID, courseID, moduleID, lessonID string) (*state.CourseProgress, error) {
	course, ok := s.catalog.Course(courseID)
	if !ok {
		return nil, ErrUnknownCourse
	}
	if !course.HasLesson(moduleID, lessonID) {
		return nil, ErrUnknownLesson
	}

	app := s.tracker.State(ctx, deviceID)
	if app.UserData.CourseProgressFor(courseID) == nil {
		return nil, ErrCourseNotFound
	}

	app, _ = s.tracker.Dispatch(ctx, deviceID, state.CompleteLesson{
		CourseID: courseID,
		ModuleID: moduleID,
		LessonID: lessonID,
	})
	return app.UserData.CourseProgressFor(courseID), nil
}

// UncompleteLesson reverts one lesson without rewinding the resume pointer.
func (s *CourseService) UncompleteLesson(ctx context.Context, deviceID, courseID, lessonID string) (*state.CourseProgress, error) {
	if _, ok := s.catalog.Course(courseID); !ok {
		return nil, ErrUnknownCourse
	}

	app := s.tracker.State(ctx, deviceID)
	if app.UserData.CourseProgressFor(courseID) == nil {
		return nil, ErrCourseNotFound
	}

	app, _ = s.tracker.Dispatch(ctx, deviceID, state.UncompleteLesson{
		CourseID: courseID,
		LessonID: lessonID,
	})
	return app.UserData.CourseProgressFor(courseID), nil
}

func percentComplete(course *state.CourseTemplate, progress *state.CourseProgress) int {
	return percentOf(len(progress.CompletedLessons), course.TotalLessons())
}

func percentOf(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
