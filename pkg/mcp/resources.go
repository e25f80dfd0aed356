package mcp

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         "thinking://tree",
		Name:        "thought_tree",
		Description: "Complete thought structure of the current session",
		MIMEType:    "application/json",
	}, s.readJSON(func() any { return s.engine.GetThoughtTree() }))

	s.server.AddResource(&mcp.Resource{
		URI:         "thinking://analysis",
		Name:        "thinking_analysis",
		Description: "Aggregate quality metrics of the current session",
		MIMEType:    "application/json",
	}, s.readJSON(func() any { return s.engine.GetAnalysis() }))

	s.server.AddResource(&mcp.Resource{
		URI:         "thinking://patterns",
		Name:        "detected_patterns",
		Description: "Pattern occurrence tally of the current session",
		MIMEType:    "application/json",
	}, s.readJSON(func() any { return s.engine.GetAnalysis().PatternsDetected }))
}

func (s *Server) readJSON(snapshot func() any) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := json.MarshalIndent(snapshot(), "", "  ")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal resource",
				goerr.V("uri", req.Params.URI))
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      req.Params.URI,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
