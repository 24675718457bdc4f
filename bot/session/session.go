// Package session keeps per-user conversation state with a TTL.
// A session exists only while a multi-turn flow is active; its absence
// means the user is at the root menu.
package session

import "github.com/m3rciful/namebot/bot/query"

// Step identifies the conversation's current expected-input mode.
type Step string

const (
	// StepFilter collects filter toggles for the parametric search.
	StepFilter Step = "waiting_for_filter"
	// StepLists awaits a category choice, then serves pages of it.
	StepLists Step = "waiting_for_name_lists"
	// StepMeaning awaits a name to explain.
	StepMeaning Step = "waiting_for_name_meaning"
	// StepFavorites awaits a name entry or an add/delete action.
	StepFavorites Step = "waiting_for_favorite_name"
	// StepRandom serves random names awaiting accept/favorite actions.
	StepRandom Step = "waiting_for_random_name"
)

// Draft is a name staged in the session awaiting a follow-up action.
// ID is zero when the name was typed by the user rather than drawn
// from the directory.
type Draft struct {
	ID   int64
	Name string
}

// Session is one user's conversation state. The step determines which
// of the remaining fields are meaningful.
type Session struct {
	Step Step
	// Filters holds selected filter keys in insertion order.
	Filters []string
	// Draft is the staged name, if any.
	Draft *Draft
	// Page is the last fetched page number; zero before the first fetch.
	Page int
	// Query caches the resolved predicate across "load more" requests.
	Query *query.Predicate
}

// New returns a fresh session for the given step with no carried-over state.
func New(step Step) *Session {
	return &Session{Step: step}
}

// ToggleFilter flips membership of a filter key and reports whether the
// key is selected after the call.
func (s *Session) ToggleFilter(key string) bool {
	for i, existing := range s.Filters {
		if existing == key {
			s.Filters = append(s.Filters[:i], s.Filters[i+1:]...)
			return false
		}
	}
	s.Filters = append(s.Filters, key)
	return true
}

// clone returns an independent copy so callers can mutate fetched
// sessions without aliasing the stored one.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	if s.Filters != nil {
		out.Filters = append([]string(nil), s.Filters...)
	}
	if s.Draft != nil {
		draft := *s.Draft
		out.Draft = &draft
	}
	if s.Query != nil {
		q := *s.Query
		out.Query = &q
	}
	return &out
}
