package engine

import (
	"math"

	"github.com/m-mizutani/noctua/pkg/model"
)

// GetThoughtTree returns a snapshot of the current session's main thread
// and branches. It returns an empty tree when no session is current and
// never fails.
func (x *Engine) GetThoughtTree() model.ThoughtTree {
	tree := model.ThoughtTree{
		MainThread: []model.ThoughtNode{},
		Branches:   map[model.BranchID]model.BranchNode{},
	}

	_ = x.withCurrent(func(s *model.Session) error {
		tree.Problem = s.ProblemStatement
		tree.MainThread = x.buildNodes(s.MainThread)
		for id, branch := range s.Branches {
			tree.Branches[id] = model.BranchNode{
				Name:     branch.Name,
				Purpose:  branch.Purpose,
				Thoughts: x.buildNodes(branch.Thoughts),
				Merged:   branch.Merged,
			}
		}
		return nil
	})

	return tree
}

// GetAnalysis folds over all thoughts reachable from the current session
// and returns aggregate quality metrics. It returns a neutral structure
// when no session is current and never fails.
func (x *Engine) GetAnalysis() model.Analysis {
	analysis := model.Analysis{
		PatternsDetected: map[string]int{},
		ThinkingQuality:  model.ThinkingQualityUnknown,
		PatternQuality:   model.PatternQuality{Quality: "unknown"},
	}

	_ = x.withCurrent(func(s *model.Session) error {
		var all []model.Thought
		for _, id := range s.MainThread {
			if t, ok := x.lookupThought(id); ok {
				all = append(all, t)
			}
		}
		for _, branch := range s.Branches {
			for _, id := range branch.Thoughts {
				if t, ok := x.lookupThought(id); ok {
					all = append(all, t)
				}
			}
		}

		var confidenceSum float64
		for _, t := range all {
			confidenceSum += t.Confidence
			if len(t.Contradictions) > 0 {
				analysis.ContradictionsFound++
			}
			if t.RevisionOf != "" {
				analysis.RevisionsMade++
			}
		}

		analysis.TotalThoughts = len(all)
		if len(all) > 0 {
			analysis.AverageConfidence = round2(confidenceSum / float64(len(all)))
		}
		analysis.BranchesCreated = len(s.Branches)
		for name, count := range s.Patterns {
			analysis.PatternsDetected[name] = count
		}
		analysis.ThinkingQuality = assessQuality(s)
		analysis.PatternQuality = assessPatternQuality(all)

		return nil
	})

	return analysis
}

func (x *Engine) buildNodes(ids []model.ThoughtID) []model.ThoughtNode {
	nodes := make([]model.ThoughtNode, 0, len(ids))
	for _, id := range ids {
		t, ok := x.lookupThought(id)
		if !ok {
			continue
		}
		nodes = append(nodes, model.ThoughtNode{
			ID:                t.ID,
			Content:           t.Content,
			Number:            t.Number,
			Confidence:        t.Confidence,
			HasContradictions: len(t.Contradictions) > 0,
			RevisionOf:        t.RevisionOf,
			Dependencies:      t.Dependencies,
			PatternResults:    t.PatternResults,
		})
	}
	return nodes
}

func assessQuality(s *model.Session) model.ThinkingQuality {
	switch total := len(s.MainThread); {
	case total < 3:
		return model.ThinkingQualityInsufficient
	case total < 7:
		return model.ThinkingQualityBasic
	case len(s.Branches) > 0:
		return model.ThinkingQualityAdvanced
	default:
		return model.ThinkingQualityGood
	}
}

func assessPatternQuality(thoughts []model.Thought) model.PatternQuality {
	if len(thoughts) == 0 {
		return model.PatternQuality{Quality: "unknown"}
	}

	var confidenceSum float64
	var patternCount, fallbackCount int
	for _, t := range thoughts {
		for _, r := range t.PatternResults {
			confidenceSum += r.Confidence
			patternCount++
			if r.FallbackUsed {
				fallbackCount++
			}
		}
	}

	var avg, fallbackRatio float64
	if patternCount > 0 {
		avg = confidenceSum / float64(patternCount)
		fallbackRatio = float64(fallbackCount) / float64(patternCount)
	}

	quality := "low"
	if avg > 0.8 {
		quality = "high"
	} else if avg > 0.6 {
		quality = "medium"
	}

	return model.PatternQuality{
		Quality:       quality,
		ConfidenceAvg: round2(avg),
		FallbackRatio: round2(fallbackRatio),
		PatternCount:  patternCount,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
