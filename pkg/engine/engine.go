// Package engine implements the sequential thinking engine: session
// lifecycle, the thought/branch graph and its mutation rules, the
// contradiction pass and the pattern classification pipeline.
package engine

import (
	"sync"

	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/pattern"
	"github.com/m-mizutani/noctua/pkg/session"
)

// Engine orchestrates sessions, the global thought table and the
// analysis passes. The thought table owns every Thought for its
// lifetime; sessions and branches only reference thought ids.
type Engine struct {
	mu       sync.RWMutex
	thoughts map[model.ThoughtID]*model.Thought

	store    *session.Store
	registry *pattern.Registry

	currentMu sync.RWMutex
	current   model.SessionID
}

// Option is a functional option for Engine
type Option func(*Engine)

// WithStore sets the session store.
func WithStore(store *session.Store) Option {
	return func(x *Engine) {
		x.store = store
	}
}

// WithRegistry replaces the default pattern detector registry.
func WithRegistry(registry *pattern.Registry) Option {
	return func(x *Engine) {
		x.registry = registry
	}
}

// WithCodingPatterns registers the coding pattern detector in addition
// to the default detectors.
func WithCodingPatterns() Option {
	return func(x *Engine) {
		x.registry.Register(pattern.NewCodingDetector())
	}
}

// New creates a new Engine instance. By default it uses a fresh session
// store and a registry holding the keyword and fallback detectors.
func New(opts ...Option) *Engine {
	x := &Engine{
		thoughts: make(map[model.ThoughtID]*model.Thought),
		store:    session.New(),
		registry: pattern.NewRegistry(pattern.NewKeywordDetector(), pattern.NewFallbackDetector()),
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// Store returns the engine's session store.
func (x *Engine) Store() *session.Store {
	return x.store
}

// CurrentSession returns the id of the current session, empty if none.
func (x *Engine) CurrentSession() model.SessionID {
	x.currentMu.RLock()
	defer x.currentMu.RUnlock()
	return x.current
}

// lookupThought returns a copy of the thought, or false if unknown.
func (x *Engine) lookupThought(id model.ThoughtID) (model.Thought, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	t, ok := x.thoughts[id]
	if !ok {
		return model.Thought{}, false
	}
	return *t, true
}

// GetThought returns a copy of the thought by id, or false if unknown.
func (x *Engine) GetThought(id model.ThoughtID) (model.Thought, bool) {
	return x.lookupThought(id)
}
