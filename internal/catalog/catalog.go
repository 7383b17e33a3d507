package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
)

//go:embed data/*.json
var dataFS embed.FS

type ExerciseCategory string

const (
	ExerciseLight    ExerciseCategory = "Light"
	ExerciseModerate ExerciseCategory = "Moderate"
	ExerciseAdvanced ExerciseCategory = "Advanced"
)

type Exercise struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    ExerciseCategory `json:"category"`
	Duration    string           `json:"duration,omitempty"`
	Reps        string           `json:"reps,omitempty"`
	Rest        string           `json:"rest"`
	Description string           `json:"description,omitempty"`
}

type Meal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Calories    int      `json:"calories"`
	Category    string   `json:"category,omitempty"`
}

type Quote struct {
	ID     string    `json:"id"`
	Text   i18n.Text `json:"text"`
	Author string    `json:"author,omitempty"`
}

// Catalog is the static, read-only content the app ships with: challenge
// templates plus the exercise, meal and quote libraries.
type Catalog struct {
	templates  map[string]*state.ChallengeTemplate
	ordered    []*state.ChallengeTemplate
	courses    map[string]*state.CourseTemplate
	courseList []*state.CourseTemplate
	exercises  []Exercise
	meals      []Meal
	quotes     []Quote
}

// Load parses the embedded catalog data. Called once at startup.
func Load() (*Catalog, error) {
	c := &Catalog{templates: make(map[string]*state.ChallengeTemplate)}

	var templates []*state.ChallengeTemplate
	if err := loadFile("data/challenges.json", &templates); err != nil {
		return nil, err
	}
	for _, t := range templates {
		if t.Days != len(t.DailyTasks) {
			return nil, fmt.Errorf("challenge %s declares %d days but has %d task sets", t.ID, t.Days, len(t.DailyTasks))
		}
		c.templates[t.ID] = t
	}
	c.ordered = templates

	var courses []*state.CourseTemplate
	if err := loadFile("data/courses.json", &courses); err != nil {
		return nil, err
	}
	c.courses = make(map[string]*state.CourseTemplate, len(courses))
	for _, course := range courses {
		if len(course.Modules) == 0 {
			return nil, fmt.Errorf("course %s has no modules", course.ID)
		}
		for _, m := range course.Modules {
			if len(m.Lessons) == 0 {
				return nil, fmt.Errorf("course %s module %s has no lessons", course.ID, m.ID)
			}
		}
		c.courses[course.ID] = course
	}
	c.courseList = courses

	if err := loadFile("data/exercises.json", &c.exercises); err != nil {
		return nil, err
	}
	if err := loadFile("data/meals.json", &c.meals); err != nil {
		return nil, err
	}
	if err := loadFile("data/quotes.json", &c.quotes); err != nil {
		return nil, err
	}

	return c, nil
}

func loadFile(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", name, err)
	}
	return nil
}

// ChallengeTemplate implements state.TemplateSource.
func (c *Catalog) ChallengeTemplate(id string) (*state.ChallengeTemplate, bool) {
	t, ok := c.templates[id]
	return t, ok
}

func (c *Catalog) Challenges() []*state.ChallengeTemplate {
	return c.ordered
}

// Course implements state.CourseSource.
func (c *Catalog) Course(id string) (*state.CourseTemplate, bool) {
	course, ok := c.courses[id]
	return course, ok
}

func (c *Catalog) Courses() []*state.CourseTemplate {
	return c.courseList
}

func (c *Catalog) Exercises() []Exercise {
	return c.exercises
}

func (c *Catalog) Exercise(id string) (Exercise, bool) {
	for _, e := range c.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

func (c *Catalog) Meals() []Meal {
	return c.meals
}

func (c *Catalog) Meal(id string) (Meal, bool) {
	for _, m := range c.meals {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}

func (c *Catalog) Quotes() []Quote {
	return c.quotes
}
