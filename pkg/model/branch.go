package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Branch is an alternative line of reasoning forked from a point in the
// main thread. A branch starts open and transitions once, irreversibly,
// to merged. The thought id list is retained after merge for audit.
type Branch struct {
	ID          BranchID
	Name        string
	CreatedFrom ThoughtID
	Purpose     string
	Thoughts    []ThoughtID
	Merged      bool
	MergeTarget ThoughtID
}

// Validate checks if the branch is valid
func (b *Branch) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return goerr.Wrap(ErrInvalidArgument, "branch name is empty")
	}
	return nil
}
