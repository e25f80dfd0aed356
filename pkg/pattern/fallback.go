package pattern

import (
	"github.com/m-mizutani/noctua/pkg/model"
)

const fallbackMinLength = 50

// FallbackDetector labels any sufficiently long content as detailed
// analysis so that every substantial thought gets at least one
// classification even when no keyword matches.
type FallbackDetector struct{}

// NewFallbackDetector creates a fallback detector.
func NewFallbackDetector() *FallbackDetector {
	return &FallbackDetector{}
}

func (d *FallbackDetector) DetectPatterns(content string) ([]model.PatternResult, error) {
	if len(content) <= fallbackMinLength {
		return nil, nil
	}

	return []model.PatternResult{
		{
			Pattern:      "detailed_analysis",
			Confidence:   0.5,
			FallbackUsed: true,
			Strategy:     "fallback",
		},
	}, nil
}
