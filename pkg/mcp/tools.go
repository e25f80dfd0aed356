package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/noctua/pkg/engine"
	"github.com/m-mizutani/noctua/pkg/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultConfidence = 0.8

type startSessionParams struct {
	Problem         string   `json:"problem" jsonschema:"The problem statement to reason about"`
	SuccessCriteria string   `json:"success_criteria" jsonschema:"What a successful outcome looks like"`
	Constraints     []string `json:"constraints,omitempty" jsonschema:"Constraints the solution must respect"`
}

type addThoughtParams struct {
	Content      string   `json:"content"`
	Dependencies []string `json:"dependencies,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
	BranchID     string   `json:"branch_id,omitempty"`
}

type reviseThoughtParams struct {
	ThoughtID  string   `json:"thought_id" jsonschema:"The id of the thought to revise"`
	NewContent string   `json:"new_content" jsonschema:"The replacement content"`
	Confidence *float64 `json:"confidence,omitempty" jsonschema:"Confidence in the revised thought (0.0 to 1.0)"`
}

type createBranchParams struct {
	Name        string `json:"name" jsonschema:"Name of the alternative reasoning line"`
	FromThought string `json:"from_thought" jsonschema:"The thought id the branch conceptually forks from"`
	Purpose     string `json:"purpose" jsonschema:"What the branch is meant to explore"`
}

type mergeBranchParams struct {
	BranchID      string `json:"branch_id" jsonschema:"The id of the branch to merge"`
	TargetThought string `json:"target_thought,omitempty" jsonschema:"Optional merge target thought id"`
}

type analyzeParams struct{}

type recordDecisionParams struct {
	Title               string   `json:"title" jsonschema:"Short title of the decision"`
	Context             string   `json:"context" jsonschema:"The situation that forced the decision"`
	OptionsConsidered   []string `json:"options_considered" jsonschema:"The alternatives that were weighed"`
	ChosenOption        string   `json:"chosen_option" jsonschema:"The option that was picked"`
	Rationale           string   `json:"rationale" jsonschema:"Why the option was picked"`
	Consequences        string   `json:"consequences" jsonschema:"Expected consequences of the decision"`
	PackageDependencies []string `json:"package_dependencies,omitempty" jsonschema:"Packages the decision depends on"`
	SessionID           string   `json:"session_id,omitempty" jsonschema:"Session to attach to; defaults to the current one"`
}

type queryDecisionsParams struct {
	Technology string `json:"technology,omitempty" jsonschema:"Technology to search for"`
	Pattern    string `json:"pattern,omitempty" jsonschema:"Design pattern to search for"`
	Package    string `json:"package,omitempty" jsonschema:"Package name to search for"`
}

type cleanupSessionParams struct {
	SessionID string `json:"session_id" jsonschema:"The id of the session to remove"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "start_thinking_session",
		Description: "Start a new sequential thinking session and make it current",
	}, s.startSession)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_thought",
		Description: "Record a reasoning step in the current session, optionally into a branch",
		InputSchema: addThoughtSchema(),
	}, s.addThought)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "revise_thought",
		Description: "Supersede an earlier thought with new content, keeping its position",
	}, s.reviseThought)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_branch",
		Description: "Open an alternative line of reasoning forked from a thought",
	}, s.createBranch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merge_branch",
		Description: "Merge a branch's thoughts back into the main thread",
	}, s.mergeBranch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_thinking",
		Description: "Return aggregate quality metrics for the current session",
	}, s.analyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "record_architecture_decision",
		Description: "Attach an architecture decision record to a session",
	}, s.recordDecision)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_architecture_decisions",
		Description: "Search recorded architecture decisions of the current session",
	}, s.queryDecisions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cleanup_session",
		Description: "Remove a session from the store",
	}, s.cleanupSession)
}

// addThoughtSchema declares the add_thought input explicitly so that the
// confidence bounds are visible to clients instead of relying on schema
// inference from the params struct.
func addThoughtSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"content": {
				Type:        "string",
				Description: "The reasoning step to record",
			},
			"dependencies": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Ids of earlier thoughts this step builds on",
			},
			"confidence": {
				Type:        "number",
				Minimum:     f64(0),
				Maximum:     f64(1),
				Description: "Confidence in the thought (defaults to 0.8)",
			},
			"branch_id": {
				Type:        "string",
				Description: "Open branch to add the thought to; omit for the main thread",
			},
		},
		Required: []string{"content"},
	}
}

func f64(v float64) *float64 {
	return &v
}

func (s *Server) startSession(ctx context.Context, req *mcp.CallToolRequest, params *startSessionParams) (*mcp.CallToolResult, any, error) {
	id, err := s.engine.StartSession(ctx, params.Problem, params.SuccessCriteria, params.Constraints)
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Started thinking session %s for: %s", id, params.Problem)), nil, nil
}

func (s *Server) addThought(ctx context.Context, req *mcp.CallToolRequest, params *addThoughtParams) (*mcp.CallToolResult, any, error) {
	thought, err := s.engine.AddThought(ctx, engine.AddThoughtInput{
		Content:      params.Content,
		Dependencies: toThoughtIDs(params.Dependencies),
		Confidence:   confidenceOrDefault(params.Confidence),
		BranchID:     model.BranchID(params.BranchID),
	})
	if err != nil {
		return nil, nil, err
	}

	result := fmt.Sprintf("Added thought %s: %s", thought.ID, truncate(thought.Content, 50))
	if len(thought.Contradictions) > 0 {
		result += fmt.Sprintf(" WARNING: Contradicts: %s", joinThoughtIDs(thought.Contradictions))
	}
	if patterns := highConfidencePatterns(thought.PatternResults); len(patterns) > 0 {
		result += fmt.Sprintf(" Patterns: %s", strings.Join(patterns, ", "))
	}

	return textResult(result), nil, nil
}

func (s *Server) reviseThought(ctx context.Context, req *mcp.CallToolRequest, params *reviseThoughtParams) (*mcp.CallToolResult, any, error) {
	revised, err := s.engine.ReviseThought(ctx, model.ThoughtID(params.ThoughtID), params.NewContent, confidenceOrDefault(params.Confidence))
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Revised %s -> %s: %s", params.ThoughtID, revised.ID, truncate(revised.Content, 50))), nil, nil
}

func (s *Server) createBranch(ctx context.Context, req *mcp.CallToolRequest, params *createBranchParams) (*mcp.CallToolResult, any, error) {
	id, err := s.engine.CreateBranch(ctx, params.Name, model.ThoughtID(params.FromThought), params.Purpose)
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Created branch %s '%s' from %s: %s", id, params.Name, params.FromThought, params.Purpose)), nil, nil
}

func (s *Server) mergeBranch(ctx context.Context, req *mcp.CallToolRequest, params *mergeBranchParams) (*mcp.CallToolResult, any, error) {
	merged, err := s.engine.MergeBranch(ctx, model.BranchID(params.BranchID), model.ThoughtID(params.TargetThought))
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Merged branch %s: %d thoughts integrated", params.BranchID, len(merged))), nil, nil
}

func (s *Server) analyze(ctx context.Context, req *mcp.CallToolRequest, params *analyzeParams) (*mcp.CallToolResult, any, error) {
	analysis := s.engine.GetAnalysis()

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to marshal analysis")
	}

	return textResult(string(data)), analysis, nil
}

func (s *Server) recordDecision(ctx context.Context, req *mcp.CallToolRequest, params *recordDecisionParams) (*mcp.CallToolResult, any, error) {
	id, err := s.engine.RecordDecision(ctx, engine.RecordDecisionInput{
		Title:               params.Title,
		Context:             params.Context,
		OptionsConsidered:   params.OptionsConsidered,
		ChosenOption:        params.ChosenOption,
		Rationale:           params.Rationale,
		Consequences:        params.Consequences,
		PackageDependencies: params.PackageDependencies,
		SessionID:           model.SessionID(params.SessionID),
	})
	if err != nil {
		return nil, nil, err
	}

	return textResult(fmt.Sprintf("Recorded architecture decision ADR-%s: %s", id, params.Title)), nil, nil
}

func (s *Server) queryDecisions(ctx context.Context, req *mcp.CallToolRequest, params *queryDecisionsParams) (*mcp.CallToolResult, any, error) {
	decisions := s.engine.QueryDecisions(params.Technology, params.Pattern, params.Package)
	if len(decisions) == 0 {
		return textResult("No similar architecture decisions found."), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d similar architecture decisions:\n\n", len(decisions))
	for i, d := range decisions {
		fmt.Fprintf(&sb, "%d. ADR-%s: %s\n", i+1, d.ID, d.Title)
		fmt.Fprintf(&sb, "   Context: %s\n", truncate(d.Context, 100))
		fmt.Fprintf(&sb, "   Chosen: %s\n", d.ChosenOption)
		fmt.Fprintf(&sb, "   Packages: %s\n", strings.Join(d.PackageDependencies, ", "))
		fmt.Fprintf(&sb, "   Date: %s\n\n", d.Timestamp.Format("2006-01-02 15:04:05"))
	}

	return textResult(sb.String()), decisions, nil
}

func (s *Server) cleanupSession(ctx context.Context, req *mcp.CallToolRequest, params *cleanupSessionParams) (*mcp.CallToolResult, any, error) {
	id := model.SessionID(params.SessionID)
	if !s.engine.Store().Exists(id) {
		return nil, nil, goerr.Wrap(model.ErrSessionNotFound, "unknown session", goerr.V("session_id", id))
	}

	s.engine.CleanupSession(ctx, id)
	return textResult(fmt.Sprintf("Cleaned up session %s", id)), nil, nil
}

func confidenceOrDefault(v *float64) float64 {
	if v == nil {
		return defaultConfidence
	}
	return *v
}

func toThoughtIDs(ids []string) []model.ThoughtID {
	out := make([]model.ThoughtID, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, model.ThoughtID(id))
		}
	}
	return out
}

func joinThoughtIDs(ids []model.ThoughtID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

func highConfidencePatterns(results []model.PatternResult) []string {
	var names []string
	for _, r := range results {
		if r.Confidence > 0.8 {
			names = append(names, r.Pattern)
		}
	}
	return names
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
