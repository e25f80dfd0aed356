// Package pattern classifies thought content with a set of independent,
// pluggable detectors. Detection is a coarse keyword heuristic, not NLP;
// results carry pass-through confidences that the engine aggregates.
package pattern

import (
	"github.com/m-mizutani/noctua/pkg/model"
)

// Detector classifies a piece of content into zero or more pattern results.
type Detector interface {
	DetectPatterns(content string) ([]model.PatternResult, error)
}

// Registry holds an ordered set of detectors and fans content out to all
// of them. A failing detector contributes no results but never aborts the
// others; this is an isolation boundary, not general error suppression.
type Registry struct {
	detectors []Detector
}

// NewRegistry creates a registry with the given detectors in order.
func NewRegistry(detectors ...Detector) *Registry {
	return &Registry{detectors: detectors}
}

// Register appends a detector to the registry.
func (r *Registry) Register(d Detector) {
	r.detectors = append(r.detectors, d)
}

// Detect runs every registered detector over content and concatenates
// their results in registration order.
func (r *Registry) Detect(content string) []model.PatternResult {
	var results []model.PatternResult
	for _, d := range r.detectors {
		found, err := d.DetectPatterns(content)
		if err != nil {
			continue
		}
		results = append(results, found...)
	}
	return results
}
