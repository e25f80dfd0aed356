package model

// ThoughtNode is the read-side projection of one thought in a tree snapshot.
type ThoughtNode struct {
	ID                ThoughtID       `json:"id"`
	Content           string          `json:"content"`
	Number            int             `json:"number"`
	Confidence        float64         `json:"confidence"`
	HasContradictions bool            `json:"has_contradictions"`
	RevisionOf        ThoughtID       `json:"revision_of,omitempty"`
	Dependencies      []ThoughtID     `json:"dependencies"`
	PatternResults    []PatternResult `json:"pattern_results"`
}

// BranchNode is the read-side projection of one branch in a tree snapshot.
type BranchNode struct {
	Name     string        `json:"name"`
	Purpose  string        `json:"purpose"`
	Thoughts []ThoughtNode `json:"thoughts"`
	Merged   bool          `json:"merged"`
}

// ThoughtTree is a JSON-serializable snapshot of the current session's
// main thread and branches.
type ThoughtTree struct {
	Problem    string                  `json:"problem"`
	MainThread []ThoughtNode           `json:"main_thread"`
	Branches   map[BranchID]BranchNode `json:"branches"`
}

// ThinkingQuality labels the structural maturity of a session's trace.
type ThinkingQuality string

const (
	ThinkingQualityUnknown      ThinkingQuality = "unknown"
	ThinkingQualityInsufficient ThinkingQuality = "insufficient"
	ThinkingQualityBasic        ThinkingQuality = "basic"
	ThinkingQualityGood         ThinkingQuality = "good"
	ThinkingQualityAdvanced     ThinkingQuality = "advanced"
)

// PatternQuality aggregates classifier output across all thoughts
// reachable from a session.
type PatternQuality struct {
	Quality       string  `json:"quality"`
	ConfidenceAvg float64 `json:"confidence_avg"`
	FallbackRatio float64 `json:"fallback_ratio"`
	PatternCount  int     `json:"pattern_count"`
}

// Analysis is a JSON-serializable snapshot of aggregate quality metrics
// for the current session.
type Analysis struct {
	TotalThoughts       int             `json:"total_thoughts"`
	ContradictionsFound int             `json:"contradictions_found"`
	AverageConfidence   float64         `json:"average_confidence"`
	RevisionsMade       int             `json:"revisions_made"`
	BranchesCreated     int             `json:"branches_created"`
	PatternsDetected    map[string]int  `json:"patterns_detected"`
	ThinkingQuality     ThinkingQuality `json:"thinking_quality"`
	PatternQuality      PatternQuality  `json:"pattern_quality"`
}
