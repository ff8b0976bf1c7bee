package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apppathway "github.com/jplfaria/gem-flux-mcp/internal/app/pathway"
	domainpathway "github.com/jplfaria/gem-flux-mcp/internal/domain/pathway"
)

var metadataTracePathway = &mcp.Tool{
	Name: "trace_pathway",
	Description: "Find the shortest chain of reactions connecting two compounds in the " +
		"biochemistry reaction network, bounded by a maximum number of reaction hops. " +
		"Backed by an in-memory graph by default, or a Neo4j mirror when configured.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"from_compound", "to_compound"},
		"properties": map[string]interface{}{
			"from_compound": map[string]interface{}{"type": "string", "description": "Starting compound id (cpdNNNNN)."},
			"to_compound":   map[string]interface{}{"type": "string", "description": "Target compound id (cpdNNNNN)."},
			"max_hops":      map[string]interface{}{"type": "integer", "description": "Maximum number of reaction hops to search. Defaults to 10, capped at 25."},
		},
	},
}

// InputTracePathway is the tool input for trace_pathway.
type InputTracePathway struct {
	FromCompound string `json:"from_compound"`
	ToCompound   string `json:"to_compound"`
	MaxHops      int    `json:"max_hops,omitempty"`
}

// OutputTracePathway is the tool output for trace_pathway.
type OutputTracePathway struct {
	Found   bool                `json:"found"`
	Path    []domainpathway.Hop `json:"path"`
	MaxHops int                 `json:"max_hops"`
}

func (s *Services) handleTracePathway(ctx context.Context, _ *mcp.CallToolRequest, in InputTracePathway) (*mcp.CallToolResult, OutputTracePathway, error) {
	out, err := s.Pathway.Trace(ctx, apppathway.Input{
		FromCompound: in.FromCompound,
		ToCompound:   in.ToCompound,
		MaxHops:      in.MaxHops,
	})
	if err != nil {
		return nil, OutputTracePathway{}, err
	}
	return nil, OutputTracePathway{Found: out.Found, Path: out.Path, MaxHops: out.MaxHops}, nil
}
