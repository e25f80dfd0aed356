package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Decision is a caller-supplied architecture decision record attached to
// a session. The engine stores and returns these records verbatim; it
// performs no analysis on them.
type Decision struct {
	ID                  DecisionID `json:"id"`
	Title               string     `json:"title"`
	Context             string     `json:"context"`
	OptionsConsidered   []string   `json:"options_considered"`
	ChosenOption        string     `json:"chosen_option"`
	Rationale           string     `json:"rationale"`
	Consequences        string     `json:"consequences"`
	PackageDependencies []string   `json:"package_dependencies"`
	SessionID           SessionID  `json:"session_id"`
	Timestamp           time.Time  `json:"timestamp"`
	Status              string     `json:"status"`
}

// Validate checks if the decision is valid
func (d *Decision) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return goerr.Wrap(ErrInvalidArgument, "decision title is empty")
	}
	return nil
}
