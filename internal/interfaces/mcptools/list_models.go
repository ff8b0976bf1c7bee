package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var metadataListModels = &mcp.Tool{
	Name:        "list_models",
	Description: "Enumerate every model stored in the current session, with its template, draft/gapfilled status, and creation time.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}

// InputListModels is the tool input for list_models (no parameters).
type InputListModels struct{}

// OutputListModels is the tool output for list_models.
type OutputListModels struct {
	Models []ModelSummary `json:"models"`
}

// ModelSummary is the per-model entry returned by list_models.
type ModelSummary struct {
	ModelID     string    `json:"model_id"`
	Template    string    `json:"template"`
	IsDraft     bool      `json:"is_draft"`
	IsGapfilled bool      `json:"is_gapfilled"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Services) handleListModels(ctx context.Context, _ *mcp.CallToolRequest, _ InputListModels) (*mcp.CallToolResult, OutputListModels, error) {
	stored := s.Store.ListModels()
	out := make([]ModelSummary, len(stored))
	for i, sm := range stored {
		out[i] = ModelSummary{
			ModelID:     sm.ID,
			Template:    sm.Metadata.Template,
			IsDraft:     sm.Metadata.IsDraft,
			IsGapfilled: sm.Metadata.IsGapfilled,
			CreatedAt:   sm.Metadata.CreatedAt,
		}
	}
	return nil, OutputListModels{Models: out}, nil
}
