package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var metadataListMedia = &mcp.Tool{
	Name:        "list_media",
	Description: "Enumerate every medium stored in the current session, including the startup-loaded predefined set.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}

// InputListMedia is the tool input for list_media (no parameters).
type InputListMedia struct{}

// OutputListMedia is the tool output for list_media.
type OutputListMedia struct {
	Media []MediaSummary `json:"media"`
}

// MediaSummary is the per-medium entry returned by list_media.
type MediaSummary struct {
	MediaID       string `json:"media_id"`
	Compartment   string `json:"compartment"`
	CompoundCount int    `json:"compound_count"`
	Predefined    bool   `json:"predefined"`
}

func (s *Services) handleListMedia(ctx context.Context, _ *mcp.CallToolRequest, _ InputListMedia) (*mcp.CallToolResult, OutputListMedia, error) {
	stored := s.Store.ListMedia()
	out := make([]MediaSummary, len(stored))
	for i, sm := range stored {
		out[i] = MediaSummary{
			MediaID:       sm.ID,
			Compartment:   sm.Media.Compartment,
			CompoundCount: len(sm.Media.Compounds),
			Predefined:    sm.Predefined,
		}
	}
	return nil, OutputListMedia{Media: out}, nil
}
