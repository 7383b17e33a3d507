package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
	"github.com/diegomolina2/appreset/internal/store"
)

// stubCatalog serves templates and courses, so NewTrackerService wires the
// reducer's course source the same way the embedded catalog does.
type stubCatalog struct {
	stubTemplates
	courses []*state.CourseTemplate
}

func (s *stubCatalog) Course(id string) (*state.CourseTemplate, bool) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (s *stubCatalog) Courses() []*state.CourseTemplate {
	return s.courses
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		stubTemplates: testTemplates(),
		courses: []*state.CourseTemplate{
			{
				ID:          "basics",
				Title:       i18n.Localized(map[string]string{"en-US": "Basics", "fr-FR": "Les bases"}),
				Description: i18n.Plain("A short course"),
				Modules: []state.CourseModule{
					{
						ID: "m1",
						Lessons: []state.CourseLesson{
							{ID: "l1"},
							{ID: "l2"},
						},
					},
					{
						ID: "m2",
						Lessons: []state.CourseLesson{
							{ID: "l3"},
							{ID: "l4"},
						},
					},
				},
			},
		},
	}
}

func newTestCourses() *CourseService {
	cat := testCatalog()
	tracker := NewTrackerService(store.New(store.NewMemory()), cat)
	tracker.now = func() time.Time { return testNow }
	tracker.reducer.Now = tracker.now
	return NewCourseService(tracker, cat)
}

func TestCourseListTracksPercentComplete(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourses()

	list := svc.List(ctx, "device-1")
	require.Len(t, list, 1)
	assert.False(t, list[0].Started)
	assert.Equal(t, 0, list[0].PercentComplete)
	assert.Equal(t, 4, list[0].TotalLessons)

	_, err := svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)
	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l1")
	require.NoError(t, err)

	list = svc.List(ctx, "device-1")
	assert.True(t, list[0].Started)
	assert.Equal(t, 25, list[0].PercentComplete)
}

func TestCourseGetReportsModuleProgress(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourses()

	_, err := svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)
	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l1")
	require.NoError(t, err)
	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l2")
	require.NoError(t, err)

	detail, err := svc.Get(ctx, "device-1", "basics")
	require.NoError(t, err)
	assert.Equal(t, 50, detail.PercentComplete)
	assert.Equal(t, 100, detail.ModuleProgress["m1"])
	assert.Equal(t, 0, detail.ModuleProgress["m2"])
	require.NotNil(t, detail.Progress)
	assert.Equal(t, "m2", detail.Progress.CurrentModule)
	assert.Equal(t, "l3", detail.Progress.CurrentLesson)

	_, err = svc.Get(ctx, "device-1", "missing")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestCourseStartIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourses()

	first, err := svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l1")
	require.NoError(t, err)

	again, err := svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, again.CompletedLessons)

	_, err = svc.Start(ctx, "device-1", "missing")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestCourseLessonValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourses()

	_, err := svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l1")
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)

	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l3")
	assert.ErrorIs(t, err, ErrUnknownLesson)
	_, err = svc.CompleteLesson(ctx, "device-1", "missing", "m1", "l1")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestCourseUncompleteLessonPersists(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourses()

	_, err := svc.Start(ctx, "device-1", "basics")
	require.NoError(t, err)
	_, err = svc.CompleteLesson(ctx, "device-1", "basics", "m1", "l1")
	require.NoError(t, err)

	progress, err := svc.UncompleteLesson(ctx, "device-1", "basics", "l1")
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLessons)
	assert.Equal(t, "l2", progress.CurrentLesson, "resume pointer is not rewound")

	detail, err := svc.Get(ctx, "device-1", "basics")
	require.NoError(t, err)
	assert.Equal(t, 0, detail.PercentComplete)
}
