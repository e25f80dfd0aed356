// Package session owns the set of active thinking sessions and enforces
// per-session resource ceilings. All mutating and reading access to a
// session goes through its per-session lock, so operations against one
// session are serialized while different sessions proceed in parallel.
package session

import (
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/model"
)

type entry struct {
	mu      sync.Mutex
	session *model.Session
}

// Store holds active sessions addressable by id. Sessions persist until
// explicit cleanup; there is no automatic eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[model.SessionID]*entry
	config  model.SessionConfig
}

// Option is a functional option for Store
type Option func(*Store)

// WithConfig sets the resource limits applied to new sessions.
func WithConfig(cfg model.SessionConfig) Option {
	return func(s *Store) {
		s.config = cfg
	}
}

// New creates a new session Store instance
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[model.SessionID]*entry),
		config:  model.DefaultSessionConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the inputs, initializes a session with the store's
// resource configuration and returns its id.
func (x *Store) Create(problem, criteria string, constraints []string) (model.SessionID, error) {
	now := time.Now()
	session := &model.Session{
		ID:               model.NewSessionID(),
		ProblemStatement: problem,
		SuccessCriteria:  criteria,
		Constraints:      constraints,
		MainThread:       []model.ThoughtID{},
		Branches:         make(map[model.BranchID]*model.Branch),
		Patterns:         make(map[string]int),
		Started:          now,
		LastUpdated:      now,
		Config:           x.config,
		Decisions:        make(map[model.DecisionID]*model.Decision),
	}

	if err := session.Validate(); err != nil {
		return "", err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[session.ID] = &entry{session: session}

	return session.ID, nil
}

// With runs fn with the session locked. Every caller that touches session
// state, reads included, goes through here so that a reader always sees a
// consistent snapshot relative to concurrent mutation.
func (x *Store) With(id model.SessionID, fn func(*model.Session) error) error {
	x.mu.RLock()
	e, ok := x.entries[id]
	x.mu.RUnlock()
	if !ok {
		return goerr.Wrap(model.ErrSessionNotFound, "unknown session", goerr.V("session_id", id))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Exists reports whether the session is present.
func (x *Store) Exists(id model.SessionID) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.entries[id]
	return ok
}

// Cleanup removes the session. Missing ids are a no-op.
func (x *Store) Cleanup(id model.SessionID) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.entries, id)
}

// CheckMemoryLimits reports whether the session can accept another
// thought: false once the count of reachable thought ids (main thread
// plus all branch lists, merged or not) exceeds the configured maximum,
// or when the session does not exist.
func (x *Store) CheckMemoryLimits(id model.SessionID) bool {
	ok := false
	if err := x.With(id, func(s *model.Session) error {
		ok = s.ThoughtCount() <= s.Config.MaxThoughts
		return nil
	}); err != nil {
		return false
	}
	return ok
}
