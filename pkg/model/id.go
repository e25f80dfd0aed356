package model

import (
	"encoding/hex"

	"github.com/google/uuid"
)

type (
	SessionID  string
	ThoughtID  string
	BranchID   string
	DecisionID string
)

// newShortID returns an 8-character lowercase hex identifier derived from
// a random UUID. Collisions are treated as negligible; the engine stores
// entries by id and never overwrites an existing one silently.
func newShortID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

// NewSessionID generates a new unique SessionID
func NewSessionID() SessionID {
	return SessionID(newShortID())
}

// NewThoughtID generates a new unique ThoughtID
func NewThoughtID() ThoughtID {
	return ThoughtID(newShortID())
}

// NewBranchID generates a new unique BranchID
func NewBranchID() BranchID {
	return BranchID(newShortID())
}

// NewDecisionID generates a new unique DecisionID
func NewDecisionID() DecisionID {
	return DecisionID(newShortID())
}
