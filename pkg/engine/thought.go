package engine

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
)

// AddThoughtInput contains parameters for adding a thought
type AddThoughtInput struct {
	Content      string
	Dependencies []model.ThoughtID
	Confidence   float64
	BranchID     model.BranchID // empty targets the main thread
}

// AddThought records a reasoning step in the current session. The thought
// goes to the main thread, or to the given branch if BranchID is set and
// the branch is still open. The call fails fast and atomically: every
// check precedes the first mutation.
func (x *Engine) AddThought(ctx context.Context, input AddThoughtInput) (model.Thought, error) {
	thought := model.Thought{
		ID:           model.NewThoughtID(),
		Content:      input.Content,
		Timestamp:    time.Now(),
		Dependencies: input.Dependencies,
		Confidence:   input.Confidence,
		BranchID:     input.BranchID,
	}
	err := x.withCurrent(func(s *model.Session) error {
		if err := thought.Validate(); err != nil {
			return err
		}

		target := &s.MainThread
		if input.BranchID != "" {
			branch, ok := s.Branches[input.BranchID]
			if !ok || branch.Merged {
				return goerr.Wrap(model.ErrBranchNotFound, "branch does not exist or is merged",
					goerr.V("branch_id", input.BranchID))
			}
			target = &branch.Thoughts
		}

		if s.ThoughtCount() > s.Config.MaxThoughts {
			return goerr.Wrap(model.ErrMemoryLimitExceeded, "session thought limit reached",
				goerr.V("session_id", s.ID),
				goerr.V("max_thoughts", s.Config.MaxThoughts))
		}

		// Sequence number is taken at the moment of insertion; the
		// session lock keeps this window closed to concurrent writers.
		thought.Number = len(*target) + 1
		thought.TotalEstimated = estimateTotal(thought.Number)
		thought.Contradictions = x.detectContradictions(input.Content, input.Dependencies)
		thought.PatternResults = x.registry.Detect(input.Content)

		x.storeThought(&thought)
		*target = append(*target, thought.ID)
		s.LastUpdated = time.Now()
		s.MemoryUsage += len(input.Content)
		tallyPatterns(s, thought.PatternResults)

		return nil
	})
	if err != nil {
		return model.Thought{}, err
	}

	logging.From(ctx).Debug("added thought",
		"thought_id", thought.ID,
		"number", thought.Number,
		"branch_id", thought.BranchID,
		"contradictions", len(thought.Contradictions),
	)

	return thought, nil
}

// ReviseThought supersedes an existing thought with new content. The
// revision keeps the original's number, total estimate, dependencies and
// branch membership, and takes the original's position in its thread.
// The original stays in the thought table for historical traceability.
func (x *Engine) ReviseThought(ctx context.Context, originalID model.ThoughtID, newContent string, confidence float64) (model.Thought, error) {
	original, ok := x.lookupThought(originalID)
	if !ok {
		return model.Thought{}, goerr.Wrap(model.ErrInvalidThoughtID, "original thought not found",
			goerr.V("thought_id", originalID))
	}

	revised := model.Thought{
		ID:             model.NewThoughtID(),
		Content:        newContent,
		Number:         original.Number,
		TotalEstimated: original.TotalEstimated,
		Timestamp:      time.Now(),
		Dependencies:   original.Dependencies,
		Confidence:     confidence,
		BranchID:       original.BranchID,
		RevisionOf:     originalID,
	}
	if err := revised.Validate(); err != nil {
		return model.Thought{}, err
	}

	err := x.withCurrent(func(s *model.Session) error {
		target := s.MainThread
		if original.BranchID != "" {
			branch, ok := s.Branches[original.BranchID]
			if !ok {
				return goerr.Wrap(model.ErrBranchNotFound, "branch of original thought not found",
					goerr.V("branch_id", original.BranchID))
			}
			target = branch.Thoughts
		}

		idx := indexOf(target, originalID)
		if idx < 0 {
			return goerr.Wrap(model.ErrInvalidThoughtID, "thought is not part of an active thread",
				goerr.V("thought_id", originalID))
		}

		revised.Contradictions = x.detectContradictions(newContent, revised.Dependencies)
		revised.PatternResults = x.registry.Detect(newContent)

		x.storeThought(&revised)
		target[idx] = revised.ID
		s.LastUpdated = time.Now()
		s.MemoryUsage += len(newContent)
		tallyPatterns(s, revised.PatternResults)

		return nil
	})
	if err != nil {
		return model.Thought{}, err
	}

	logging.From(ctx).Debug("revised thought",
		"original_id", originalID,
		"revised_id", revised.ID,
	)

	return revised, nil
}

func (x *Engine) storeThought(t *model.Thought) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.thoughts[t.ID] = t
}

// estimateTotal is a heuristic progress estimate communicated back to the
// caller, not a hard cap.
func estimateTotal(number int) int {
	if number+2 < 5 {
		return 5
	}
	return number + 2
}

func tallyPatterns(s *model.Session, results []model.PatternResult) {
	for _, r := range results {
		if r.Confidence >= s.Config.PatternConfidenceThreshold {
			s.Patterns[r.Pattern]++
		}
	}
}

func indexOf(ids []model.ThoughtID, id model.ThoughtID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
