package engine

import (
	"strings"

	"github.com/m-mizutani/noctua/pkg/model"
)

// Indicator vocabularies for the contradiction heuristic. A dependency is
// flagged when the new content carries a negative indicator while the
// dependency's content carries a positive one. This is a documented
// coarse heuristic with false positives/negatives, not logical
// entailment; do not tighten it without revisiting the contract.
var (
	negativeIndicators = []string{"not", "false", "incorrect", "wrong", "impossible"}
	positiveIndicators = []string{"true", "correct", "right", "possible", "valid"}
)

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// detectContradictions returns the subset of dependencies whose content
// the new content appears to negate. Unknown dependency ids are skipped.
func (x *Engine) detectContradictions(content string, dependencies []model.ThoughtID) []model.ThoughtID {
	contentLower := strings.ToLower(content)
	contentNegative := containsAny(contentLower, negativeIndicators)

	var contradictions []model.ThoughtID
	for _, depID := range dependencies {
		dep, ok := x.lookupThought(depID)
		if !ok {
			continue
		}

		if contentNegative && containsAny(strings.ToLower(dep.Content), positiveIndicators) {
			contradictions = append(contradictions, depID)
		}
	}

	return contradictions
}
