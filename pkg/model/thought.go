package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// PatternResult is one classifier's labeled, confidence-scored finding
// for a piece of thought content.
type PatternResult struct {
	Pattern      string  `json:"pattern"`
	Confidence   float64 `json:"confidence"`
	FallbackUsed bool    `json:"fallback_used"`
	Strategy     string  `json:"strategy"`
}

// Validate checks if the pattern result is valid
func (p *PatternResult) Validate() error {
	if p.Pattern == "" {
		return goerr.Wrap(ErrInvalidArgument, "pattern name is empty")
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return goerr.Wrap(ErrInvalidArgument, "pattern confidence must be between 0 and 1",
			goerr.V("confidence", p.Confidence))
	}
	return nil
}

// Thought is one atomic reasoning step. A thought is immutable once
// superseded by a revision; the revision keeps the original's number and
// position while the original stays in the thought table for traceability.
type Thought struct {
	ID             ThoughtID
	Content        string
	Number         int
	TotalEstimated int
	Timestamp      time.Time
	Dependencies   []ThoughtID
	Contradictions []ThoughtID
	Confidence     float64
	BranchID       BranchID // empty means main thread
	RevisionOf     ThoughtID
	PatternResults []PatternResult
}

// Validate checks if the thought is valid
func (t *Thought) Validate() error {
	if strings.TrimSpace(t.Content) == "" {
		return goerr.Wrap(ErrInvalidArgument, "thought content is empty")
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return goerr.Wrap(ErrInvalidArgument, "confidence must be between 0 and 1",
			goerr.V("confidence", t.Confidence))
	}
	return nil
}
