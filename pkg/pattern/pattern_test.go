package pattern_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/m-mizutani/noctua/pkg/pattern"
)

func TestKeywordDetector(t *testing.T) {
	d := pattern.NewKeywordDetector()

	results, err := d.DetectPatterns("Therefore the cache must be invalidated")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "conclusion")
	gt.Equal(t, results[0].Confidence, 0.8)
	gt.Equal(t, results[0].Strategy, "keyword")
	gt.False(t, results[0].FallbackUsed)
}

func TestKeywordDetectorCaseInsensitive(t *testing.T) {
	d := pattern.NewKeywordDetector()

	results, err := d.DetectPatterns("ASSUME the input is sorted")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "assumption")
}

func TestKeywordDetectorMultiplePatterns(t *testing.T) {
	d := pattern.NewKeywordDetector()

	results, err := d.DetectPatterns("Assume X holds; therefore Y follows")
	gt.NoError(t, err)
	gt.A(t, results).Length(2)

	found := map[string]bool{}
	for _, r := range results {
		found[r.Pattern] = true
	}
	gt.True(t, found["assumption"])
	gt.True(t, found["conclusion"])
}

func TestKeywordDetectorNoMatch(t *testing.T) {
	d := pattern.NewKeywordDetector()

	results, err := d.DetectPatterns("plain note")
	gt.NoError(t, err)
	gt.A(t, results).Length(0)
}

func TestKeywordDetectorSingleResultPerPattern(t *testing.T) {
	d := pattern.NewKeywordDetector()

	// Two triggers of the same pattern yield one result
	results, err := d.DetectPatterns("therefore and thus")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "conclusion")
}

func TestFallbackDetector(t *testing.T) {
	d := pattern.NewFallbackDetector()

	long := "This is a detailed analysis with more than fifty characters in it for sure"
	results, err := d.DetectPatterns(long)
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "detailed_analysis")
	gt.Equal(t, results[0].Confidence, 0.5)
	gt.True(t, results[0].FallbackUsed)
	gt.Equal(t, results[0].Strategy, "fallback")
}

func TestFallbackDetectorShortContent(t *testing.T) {
	d := pattern.NewFallbackDetector()

	results, err := d.DetectPatterns("short")
	gt.NoError(t, err)
	gt.A(t, results).Length(0)
}

func TestFallbackDetectorBoundary(t *testing.T) {
	d := pattern.NewFallbackDetector()

	exactly50 := make([]byte, 50)
	for i := range exactly50 {
		exactly50[i] = 'x'
	}
	results, err := d.DetectPatterns(string(exactly50))
	gt.NoError(t, err)
	gt.A(t, results).Length(0)

	results, err = d.DetectPatterns(string(exactly50) + "x")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
}

func TestCodingDetector(t *testing.T) {
	d := pattern.NewCodingDetector()

	results, err := d.DetectPatterns("implement the parser")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "code_reinvention")
	gt.Equal(t, results[0].Strategy, "coding_keyword")
	// base 0.7 plus 0.1 for one matched keyword
	gt.Equal(t, results[0].Confidence, 0.8)
}

func TestCodingDetectorConfidenceClamped(t *testing.T) {
	d := pattern.NewCodingDetector()

	results, err := d.DetectPatterns("implement write create build develop")
	gt.NoError(t, err)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Confidence, 1.0)
}

type failingDetector struct{}

func (d *failingDetector) DetectPatterns(content string) ([]model.PatternResult, error) {
	return nil, goerr.New("detector broke")
}

func TestRegistryIsolatesFailingDetector(t *testing.T) {
	registry := pattern.NewRegistry(
		&failingDetector{},
		pattern.NewKeywordDetector(),
	)

	results := registry.Detect("therefore it works")
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "conclusion")
}

func TestRegistryConcatenatesInOrder(t *testing.T) {
	registry := pattern.NewRegistry(
		pattern.NewKeywordDetector(),
		pattern.NewFallbackDetector(),
	)

	results := registry.Detect("Assume the data is clean; this note is long enough to exceed the fallback threshold")
	gt.A(t, results).Length(2)
	gt.Equal(t, results[0].Strategy, "keyword")
	gt.Equal(t, results[1].Strategy, "fallback")
}

func TestDefaultRegistryFallbackOnlyScenario(t *testing.T) {
	registry := pattern.NewRegistry(
		pattern.NewKeywordDetector(),
		pattern.NewFallbackDetector(),
	)

	content := "This is a detailed analysis with more than fifty characters in it for sure"
	results := registry.Detect(content)
	gt.A(t, results).Length(1)
	gt.Equal(t, results[0].Pattern, "detailed_analysis")
	gt.True(t, results[0].FallbackUsed)
}
