package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const thinkingGuide = `Sequential Thinking Process:

1. start_thinking_session(problem, success_criteria, constraints)
2. add_thought(content, dependencies, confidence, branch_id)
3. revise_thought(thought_id, new_content, confidence)
4. create_branch(name, from_thought, purpose)
5. merge_branch(branch_id, target_thought)
6. analyze_thinking()

Resources:
- thinking://tree - Complete thought structure
- thinking://analysis - Quality metrics
- thinking://patterns - Pattern occurrence tally

Best Practices:
- Start with problem decomposition
- Build logical dependencies
- Create branches for alternatives
- Revise when new insights emerge
- Analyze before concluding`

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "thinking_guide",
		Description: "How to drive a sequential thinking session",
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: thinkingGuide},
				},
			},
		}, nil
	})
}
