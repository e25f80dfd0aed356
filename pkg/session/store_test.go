package session_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/session"
)

func TestCreate(t *testing.T) {
	store := session.New()

	id, err := store.Create("optimize the query planner", "p95 under 100ms", []string{"no schema changes"})
	gt.NoError(t, err)
	gt.NotEqual(t, id, model.SessionID(""))
	gt.True(t, store.Exists(id))

	gt.NoError(t, store.With(id, func(s *model.Session) error {
		gt.Equal(t, s.ProblemStatement, "optimize the query planner")
		gt.Equal(t, s.SuccessCriteria, "p95 under 100ms")
		gt.A(t, s.Constraints).Length(1)
		gt.Equal(t, s.Config, model.DefaultSessionConfig())
		gt.A(t, s.MainThread).Length(0)
		return nil
	}))
}

func TestCreateValidation(t *testing.T) {
	store := session.New()

	_, err := store.Create("", "criteria", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidArgument))

	_, err = store.Create("problem", "   ", nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidArgument))
}

func TestWithUnknownSession(t *testing.T) {
	store := session.New()

	err := store.With("deadbeef", func(s *model.Session) error { return nil })
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrSessionNotFound))
}

func TestCleanup(t *testing.T) {
	store := session.New()

	id, err := store.Create("problem", "criteria", nil)
	gt.NoError(t, err)
	gt.True(t, store.Exists(id))

	store.Cleanup(id)
	gt.False(t, store.Exists(id))

	// cleanup of a missing session is a no-op
	store.Cleanup(id)
}

func TestCheckMemoryLimits(t *testing.T) {
	cfg := model.DefaultSessionConfig()
	cfg.MaxThoughts = 3
	store := session.New(session.WithConfig(cfg))

	id, err := store.Create("problem", "criteria", nil)
	gt.NoError(t, err)
	gt.True(t, store.CheckMemoryLimits(id))

	// Branch thought lists count toward the limit, merged or not
	gt.NoError(t, store.With(id, func(s *model.Session) error {
		s.MainThread = append(s.MainThread, "t1", "t2")
		s.Branches["b1"] = &model.Branch{
			ID:       "b1",
			Name:     "alt",
			Thoughts: []model.ThoughtID{"t3"},
			Merged:   true,
		}
		return nil
	}))
	gt.True(t, store.CheckMemoryLimits(id))

	gt.NoError(t, store.With(id, func(s *model.Session) error {
		s.MainThread = append(s.MainThread, "t4")
		return nil
	}))
	gt.False(t, store.CheckMemoryLimits(id))
}

func TestCheckMemoryLimitsUnknownSession(t *testing.T) {
	store := session.New()
	gt.False(t, store.CheckMemoryLimits("deadbeef"))
}
