package badge

import (
	"sort"
	"time"

	"github.com/diegomolina2/appreset/internal/state"
)

// Evaluator scans a user document against the badge rule table and reports
// which badges are newly satisfied. It never mutates the document; callers
// dispatch the unlock actions.
type Evaluator struct {
	rules []Rule
}

func NewEvaluator() *Evaluator {
	return &Evaluator{rules: Catalog()}
}

// rulesFor is the static table plus one dynamic completion rule per
// challenge instance, in deterministic order.
func (e *Evaluator) rulesFor(d *state.UserData) []Rule {
	rules := make([]Rule, len(e.rules))
	copy(rules, e.rules)

	ids := make([]string, 0, len(d.Challenges))
	for id := range d.Challenges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c := d.Challenges[id]
		rules = append(rules, ChallengeRule(c, c.Language))
	}
	return rules
}

// Evaluate returns the rules whose predicate holds and whose badge is not
// yet unlocked. Re-running with no intervening state change returns nothing
// new, so evaluation after every dispatch is safe.
func (e *Evaluator) Evaluate(d *state.UserData, now time.Time) []Rule {
	var unlocked []Rule
	for _, rule := range e.rulesFor(d) {
		if d.HasBadge(rule.ID) {
			continue
		}
		if rule.Predicate(d, now) {
			unlocked = append(unlocked, rule)
		}
	}
	return unlocked
}

// Statuses joins the full rule table with the document's unlock records.
func (e *Evaluator) Statuses(d *state.UserData) []Status {
	statuses := make([]Status, 0, len(e.rules))
	for _, rule := range e.rulesFor(d) {
		s := Status{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
			Category:    rule.Category,
			Requirement: rule.Requirement,
		}
		for _, b := range d.Badges {
			if b.ID == rule.ID {
				s.Unlocked = true
				s.UnlockedAt = b.UnlockedAt
				break
			}
		}
		statuses = append(statuses, s)
	}
	return statuses
}
