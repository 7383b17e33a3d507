package services

import (
	"context"
	"time"

	"github.com/diegomolina2/appreset/internal/catalog"
	"github.com/diegomolina2/appreset/internal/i18n"
	"github.com/diegomolina2/appreset/internal/state"
)

// ContentService serves the static catalog enriched with the caller's
// favorites.
type ContentService struct {
	catalog *catalog.Catalog
	tracker *TrackerService
}

func NewContentService(c *catalog.Catalog, tracker *TrackerService) *ContentService {
	return &ContentService{catalog: c, tracker: tracker}
}

type FavoriteItem[T any] struct {
	Item       T    `json:"item"`
	IsFavorite bool `json:"isFavorite"`
}

// ChallengeSummary is the catalog view of a template: localized strings plus
// whether the device already has an instance of it.
type ChallengeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Days        int    `json:"days"`
	Started     bool   `json:"started"`
	Completed   bool   `json:"completed"`
}

// Challenges lists every template, localized and annotated with progress.
func (s *ContentService) Challenges(ctx context.Context, deviceID string) []ChallengeSummary {
	app := s.tracker.State(ctx, deviceID)
	lang := app.CurrentLanguage

	var out []ChallengeSummary
	for _, t := range s.catalog.Challenges() {
		summary := ChallengeSummary{
			ID:          t.ID,
			Name:        t.Name.Resolve(lang, i18n.DefaultLanguage),
			Description: t.Description.Resolve(lang, i18n.DefaultLanguage),
			Days:        t.Days,
		}
		if c, ok := app.UserData.Challenges[t.ID]; ok {
			summary.Started = true
			summary.Completed = c.IsCompleted()
		}
		out = append(out, summary)
	}
	return out
}

// Exercises lists the exercise library with favorite flags.
func (s *ContentService) Exercises(ctx context.Context, deviceID string) []FavoriteItem[catalog.Exercise] {
	app := s.tracker.State(ctx, deviceID)
	favorites := toSet(app.UserData.Favorites.Exercises)

	var out []FavoriteItem[catalog.Exercise]
	for _, e := range s.catalog.Exercises() {
		out = append(out, FavoriteItem[catalog.Exercise]{Item: e, IsFavorite: favorites[e.ID]})
	}
	return out
}

// Meals lists the meal library with favorite flags.
func (s *ContentService) Meals(ctx context.Context, deviceID string) []FavoriteItem[catalog.Meal] {
	app := s.tracker.State(ctx, deviceID)
	favorites := toSet(app.UserData.Favorites.Meals)

	var out []FavoriteItem[catalog.Meal]
	for _, m := range s.catalog.Meals() {
		out = append(out, FavoriteItem[catalog.Meal]{Item: m, IsFavorite: favorites[m.ID]})
	}
	return out
}

// LocalizedQuote is a quote resolved to one language.
type LocalizedQuote struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author,omitempty"`
	IsFavorite bool   `json:"isFavorite"`
}

// Quotes lists every quote in the caller's language.
func (s *ContentService) Quotes(ctx context.Context, deviceID string) []LocalizedQuote {
	app := s.tracker.State(ctx, deviceID)
	favorites := toSet(app.UserData.Favorites.Quotes)

	var out []LocalizedQuote
	for _, q := range s.catalog.Quotes() {
		out = append(out, LocalizedQuote{
			ID:         q.ID,
			Text:       q.Text.Resolve(app.CurrentLanguage, i18n.DefaultLanguage),
			Author:     q.Author,
			IsFavorite: favorites[q.ID],
		})
	}
	return out
}

// QuoteOfTheDay rotates through the quote library by calendar day, so every
// device sees the same quote on the same date.
func (s *ContentService) QuoteOfTheDay(ctx context.Context, deviceID string, now time.Time) (LocalizedQuote, bool) {
	quotes := s.Quotes(ctx, deviceID)
	if len(quotes) == 0 {
		return LocalizedQuote{}, false
	}
	return quotes[now.YearDay()%len(quotes)], true
}

// ToggleFavorite flips one favorite and returns the updated favorites.
func (s *ContentService) ToggleFavorite(ctx context.Context, deviceID string, kind state.FavoriteKind, id string) state.Favorites {
	app, _ := s.tracker.Dispatch(ctx, deviceID, state.ToggleFavorite{Kind: kind, ID: id})
	return app.UserData.Favorites
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
