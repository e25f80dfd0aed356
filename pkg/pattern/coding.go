package pattern

import (
	"strings"

	"github.com/m-mizutani/noctua/pkg/model"
)

// CodingDetector matches software-engineering reasoning patterns. It is
// not part of the default registry; engines working on coding problems
// register it explicitly.
type CodingDetector struct {
	patterns map[string][]string
}

// NewCodingDetector creates a coding pattern detector with the built-in
// pattern table.
func NewCodingDetector() *CodingDetector {
	return &CodingDetector{
		patterns: map[string][]string{
			"package_needed":        {"import", "install", "dependency", "library", "framework"},
			"api_exploration":       {"api", "method", "function", "endpoint", "interface"},
			"code_reinvention":      {"implement", "write", "create", "build", "develop"},
			"integration_planning":  {"integrate", "connect", "combine", "merge", "link"},
			"architecture_decision": {"choose", "select", "decide", "architecture", "design"},
		},
	}
}

// DetectPatterns reports each matched pattern with a base confidence of
// 0.7 plus 0.1 per matched keyword.
func (d *CodingDetector) DetectPatterns(content string) ([]model.PatternResult, error) {
	lower := strings.ToLower(content)

	var results []model.PatternResult
	for name, keywords := range d.patterns {
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		confidence := 0.7 + 0.1*float64(matched)
		if confidence > 1.0 {
			confidence = 1.0
		}

		results = append(results, model.PatternResult{
			Pattern:    name,
			Confidence: confidence,
			Strategy:   "coding_keyword",
		})
	}

	return results, nil
}
