package engine

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
)

// StartSession creates a new session and makes it current.
func (x *Engine) StartSession(ctx context.Context, problem, criteria string, constraints []string) (model.SessionID, error) {
	id, err := x.store.Create(problem, criteria, constraints)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create session")
	}

	x.currentMu.Lock()
	x.current = id
	x.currentMu.Unlock()

	logging.From(ctx).Info("started thinking session",
		"session_id", id,
		"problem", problem,
	)

	return id, nil
}

// CleanupSession removes the session from the store. If it was current,
// the current-session pointer is cleared.
func (x *Engine) CleanupSession(ctx context.Context, id model.SessionID) {
	x.store.Cleanup(id)

	x.currentMu.Lock()
	if x.current == id {
		x.current = ""
	}
	x.currentMu.Unlock()

	logging.From(ctx).Info("cleaned up session", "session_id", id)
}

// withCurrent runs fn against the current session under its lock.
func (x *Engine) withCurrent(fn func(*model.Session) error) error {
	current := x.CurrentSession()
	if current == "" {
		return goerr.Wrap(model.ErrNoActiveSession, "start a session first")
	}
	return x.store.With(current, fn)
}
