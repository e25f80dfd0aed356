package engine

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
)

// RecordDecisionInput contains parameters for recording an architecture
// decision
type RecordDecisionInput struct {
	Title               string
	Context             string
	OptionsConsidered   []string
	ChosenOption        string
	Rationale           string
	Consequences        string
	PackageDependencies []string
	SessionID           model.SessionID // empty targets the current session
}

// RecordDecision stores a caller-supplied architecture decision record on
// a session. The engine keeps the record verbatim; it performs no
// analysis on it.
func (x *Engine) RecordDecision(ctx context.Context, input RecordDecisionInput) (model.DecisionID, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = x.CurrentSession()
		if sessionID == "" {
			return "", goerr.Wrap(model.ErrNoActiveSession, "no session specified and no active session")
		}
	}

	decision := &model.Decision{
		ID:                  model.NewDecisionID(),
		Title:               input.Title,
		Context:             input.Context,
		OptionsConsidered:   input.OptionsConsidered,
		ChosenOption:        input.ChosenOption,
		Rationale:           input.Rationale,
		Consequences:        input.Consequences,
		PackageDependencies: input.PackageDependencies,
		SessionID:           sessionID,
		Timestamp:           time.Now(),
		Status:              "active",
	}
	if err := decision.Validate(); err != nil {
		return "", err
	}

	err := x.store.With(sessionID, func(s *model.Session) error {
		s.Decisions[decision.ID] = decision
		s.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return "", err
	}

	logging.From(ctx).Debug("recorded architecture decision",
		"decision_id", decision.ID,
		"title", input.Title,
	)

	return decision.ID, nil
}

// QueryDecisions returns the current session's decisions whose title,
// context, chosen option or rationale contains the joined non-empty
// search terms, case-insensitively. An empty query matches nothing.
func (x *Engine) QueryDecisions(terms ...string) []model.Decision {
	var searchTerms []string
	for _, term := range terms {
		if term != "" {
			searchTerms = append(searchTerms, term)
		}
	}
	searchText := strings.ToLower(strings.Join(searchTerms, " "))
	if searchText == "" {
		return nil
	}

	var matched []model.Decision
	_ = x.withCurrent(func(s *model.Session) error {
		for _, d := range s.Decisions {
			text := strings.ToLower(d.Title + " " + d.Context + " " + d.ChosenOption + " " + d.Rationale)
			if strings.Contains(text, searchText) {
				matched = append(matched, *d)
			}
		}
		return nil
	})

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})

	return matched
}
