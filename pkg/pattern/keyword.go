package pattern

import (
	"strings"

	"github.com/m-mizutani/noctua/pkg/model"
)

const keywordConfidence = 0.8

// KeywordDetector matches a fixed table of named reasoning patterns by
// case-insensitive substring triggers.
type KeywordDetector struct {
	patterns map[string][]string
}

// NewKeywordDetector creates a keyword detector with the built-in
// pattern table.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{
		patterns: map[string][]string{
			"first principles": {"first principles", "breaking down", "fundamental"},
			"assumption":       {"assumption", "assume", "given that"},
			"contradiction":    {"contradiction", "however", "but", "alternatively"},
			"conclusion":       {"therefore", "thus", "it follows", "consequently"},
		},
	}
}

// DetectPatterns reports each pattern whose trigger list has at least one
// substring hit in content, with a fixed confidence.
func (d *KeywordDetector) DetectPatterns(content string) ([]model.PatternResult, error) {
	lower := strings.ToLower(content)

	var results []model.PatternResult
	for name, keywords := range d.patterns {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				results = append(results, model.PatternResult{
					Pattern:    name,
					Confidence: keywordConfidence,
					Strategy:   "keyword",
				})
				break
			}
		}
	}

	return results, nil
}
