package engine

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/utils/logging"
)

// CreateBranch opens an alternative line of reasoning in the current
// session. fromThought is stored for provenance only and is not checked
// against the session's threads.
func (x *Engine) CreateBranch(ctx context.Context, name string, fromThought model.ThoughtID, purpose string) (model.BranchID, error) {
	branch := &model.Branch{
		ID:          model.NewBranchID(),
		Name:        name,
		CreatedFrom: fromThought,
		Purpose:     purpose,
		Thoughts:    []model.ThoughtID{},
	}
	if err := branch.Validate(); err != nil {
		return "", err
	}

	err := x.withCurrent(func(s *model.Session) error {
		if len(s.Branches) >= s.Config.MaxBranches {
			return goerr.Wrap(model.ErrMaxBranchesExceeded, "session branch limit reached",
				goerr.V("session_id", s.ID),
				goerr.V("max_branches", s.Config.MaxBranches))
		}

		s.Branches[branch.ID] = branch
		s.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return "", err
	}

	logging.From(ctx).Debug("created branch",
		"branch_id", branch.ID,
		"name", name,
		"from_thought", fromThought,
	)

	return branch.ID, nil
}

// MergeBranch moves the branch's thoughts to the end of the main thread
// in their original order, clears their branch reference and marks the
// branch merged. Merged is terminal: a second merge of the same branch is
// rejected the same way as a missing branch. The branch keeps its thought
// id list for audit.
func (x *Engine) MergeBranch(ctx context.Context, branchID model.BranchID, target model.ThoughtID) ([]model.ThoughtID, error) {
	var merged []model.ThoughtID

	err := x.withCurrent(func(s *model.Session) error {
		branch, ok := s.Branches[branchID]
		if !ok || branch.Merged {
			return goerr.Wrap(model.ErrBranchNotFound, "branch does not exist or is already merged",
				goerr.V("branch_id", branchID))
		}

		x.mu.Lock()
		for _, thoughtID := range branch.Thoughts {
			if t, ok := x.thoughts[thoughtID]; ok {
				t.BranchID = ""
			}
		}
		x.mu.Unlock()

		merged = append([]model.ThoughtID{}, branch.Thoughts...)
		s.MainThread = append(s.MainThread, branch.Thoughts...)
		branch.Merged = true
		branch.MergeTarget = target
		s.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("merged branch",
		"branch_id", branchID,
		"merged_thoughts", len(merged),
	)

	return merged, nil
}
