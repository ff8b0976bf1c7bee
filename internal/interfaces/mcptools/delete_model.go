package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var metadataDeleteModel = &mcp.Tool{
	Name:        "delete_model",
	Description: "Remove a stored model from the current session. Does not affect media or any other stored model.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"required":   []string{"model_id"},
		"properties": map[string]interface{}{"model_id": map[string]interface{}{"type": "string"}},
	},
}

// InputDeleteModel is the tool input for delete_model.
type InputDeleteModel struct {
	ModelID string `json:"model_id"`
}

// OutputDeleteModel is the tool output for delete_model.
type OutputDeleteModel struct {
	Deleted bool   `json:"deleted"`
	ModelID string `json:"model_id"`
}

func (s *Services) handleDeleteModel(ctx context.Context, _ *mcp.CallToolRequest, in InputDeleteModel) (*mcp.CallToolResult, OutputDeleteModel, error) {
	if err := s.Store.DeleteModel(in.ModelID); err != nil {
		return nil, OutputDeleteModel{}, err
	}
	return nil, OutputDeleteModel{Deleted: true, ModelID: in.ModelID}, nil
}
