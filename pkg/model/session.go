package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// SessionConfig holds per-session resource limits
type SessionConfig struct {
	MaxThoughts                int     `yaml:"max_thoughts"`
	MaxBranches                int     `yaml:"max_branches"`
	MemoryLimitMB              int     `yaml:"memory_limit_mb"`
	PatternConfidenceThreshold float64 `yaml:"pattern_confidence_threshold"`
}

// DefaultSessionConfig returns the default resource limits
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxThoughts:                1000,
		MaxBranches:                50,
		MemoryLimitMB:              100,
		PatternConfidenceThreshold: 0.6,
	}
}

// Validate checks if the session config is valid
func (c *SessionConfig) Validate() error {
	if c.MaxThoughts < 1 {
		return goerr.Wrap(ErrInvalidArgument, "max thoughts must be positive",
			goerr.V("max_thoughts", c.MaxThoughts))
	}
	if c.MaxBranches < 1 {
		return goerr.Wrap(ErrInvalidArgument, "max branches must be positive",
			goerr.V("max_branches", c.MaxBranches))
	}
	if c.PatternConfidenceThreshold < 0 || c.PatternConfidenceThreshold > 1 {
		return goerr.Wrap(ErrInvalidArgument, "pattern confidence threshold must be between 0 and 1",
			goerr.V("threshold", c.PatternConfidenceThreshold))
	}
	return nil
}

// Session is a bounded problem-solving context holding one main thread of
// thought ids and zero or more branches. Thought objects themselves live
// in the engine's thought table; the session only references them.
type Session struct {
	ID               SessionID
	ProblemStatement string
	SuccessCriteria  string
	Constraints      []string
	MainThread       []ThoughtID
	Branches         map[BranchID]*Branch
	Patterns         map[string]int
	Started          time.Time
	LastUpdated      time.Time
	Config           SessionConfig
	MemoryUsage      int
	Decisions        map[DecisionID]*Decision
}

// Validate checks if the session is valid
func (s *Session) Validate() error {
	if strings.TrimSpace(s.ProblemStatement) == "" {
		return goerr.Wrap(ErrInvalidArgument, "problem statement is empty")
	}
	if strings.TrimSpace(s.SuccessCriteria) == "" {
		return goerr.Wrap(ErrInvalidArgument, "success criteria is empty")
	}
	return nil
}

// ThoughtCount returns the number of thought ids reachable from the
// session: the main thread plus every branch list, merged or not.
// Merged branches retain their id lists for audit, so they still count.
func (s *Session) ThoughtCount() int {
	count := len(s.MainThread)
	for _, branch := range s.Branches {
		count += len(branch.Thoughts)
	}
	return count
}
