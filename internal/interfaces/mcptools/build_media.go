package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

var metadataBuildMedia = &mcp.Tool{
	Name: "build_media",
	Description: "Define a named growth medium as a mapping from compound id to " +
		"(lower_bound, upper_bound) uptake/secretion bounds. Stores the medium under " +
		"a media id for later use with gapfill_model and run_fba.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"media_basename", "compartment", "compounds"},
		"properties": map[string]interface{}{
			"media_basename": map[string]interface{}{
				"type":        "string",
				"description": "Basename to register this medium under.",
			},
			"compartment": map[string]interface{}{
				"type":        "string",
				"description": "Compartment code the bounds apply to, e.g. \"e0\".",
			},
			"default_uptake": map[string]interface{}{
				"type":        "number",
				"description": "Default uptake magnitude applied to compounds without explicit bounds.",
			},
			"compounds": map[string]interface{}{
				"type":                 "object",
				"description":          "Mapping from compound id to a [lower_bound, upper_bound] pair.",
				"additionalProperties": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}, "minItems": 2, "maxItems": 2},
			},
		},
	},
}

// InputBuildMedia is the tool input for build_media.
type InputBuildMedia struct {
	MediaBasename string               `json:"media_basename"`
	Compartment   string               `json:"compartment"`
	DefaultUptake float64              `json:"default_uptake"`
	Compounds     map[string][2]float64 `json:"compounds"`
}

// OutputBuildMedia is the tool output for build_media.
type OutputBuildMedia struct {
	MediaID        string `json:"media_id"`
	CompoundCount  int    `json:"compound_count"`
}

func (s *Services) handleBuildMedia(ctx context.Context, _ *mcp.CallToolRequest, in InputBuildMedia) (*mcp.CallToolResult, OutputBuildMedia, error) {
	if in.Compartment == "" {
		return nil, OutputBuildMedia{}, apperrors.New(apperrors.CodeInvalidParam, "compartment is required")
	}
	m := media.New(in.MediaBasename, in.Compartment, in.DefaultUptake)
	for id, bounds := range in.Compounds {
		if err := m.Set(id, bounds[0], bounds[1]); err != nil {
			return nil, OutputBuildMedia{}, err
		}
	}

	id, err := s.Store.MintAutoID(in.MediaBasename, s.Store.MediaExists)
	if err != nil {
		return nil, OutputBuildMedia{}, err
	}
	if err := s.Store.StoreMedia(&session.StoredMedia{ID: id, Media: m}); err != nil {
		return nil, OutputBuildMedia{}, err
	}

	return nil, OutputBuildMedia{MediaID: id, CompoundCount: len(m.Compounds)}, nil
}
