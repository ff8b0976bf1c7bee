package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appfba "github.com/jplfaria/gem-flux-mcp/internal/app/fba"
	domainfba "github.com/jplfaria/gem-flux-mcp/internal/domain/fba"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/eventbus"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

var metadataRunFBA = &mcp.Tool{
	Name: "run_fba",
	Description: "Run flux balance analysis on a stored model under a stored medium, " +
		"never mutating the stored model. Returns the objective value, thresholded " +
		"flux vector, uptake/secretion classification, and a deterministic growth " +
		"interpretation.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"model_id", "media_id"},
		"properties": map[string]interface{}{
			"model_id":           map[string]interface{}{"type": "string"},
			"media_id":           map[string]interface{}{"type": "string"},
			"objective":          map[string]interface{}{"type": "string", "description": "Reaction id to optimize. Defaults to the biomass reaction."},
			"maximize":           map[string]interface{}{"type": "boolean", "description": "Optimization direction. Defaults to true."},
			"flux_threshold":     map[string]interface{}{"type": "number", "description": "Minimum |flux| to report. Defaults to ~1e-6."},
			"top_n":              map[string]interface{}{"type": "integer", "description": "Number of largest-magnitude fluxes to summarize. Defaults to 10."},
		},
	},
}

// InputRunFBA is the tool input for run_fba.
type InputRunFBA struct {
	ModelID       string   `json:"model_id"`
	MediaID       string   `json:"media_id"`
	Objective     string   `json:"objective,omitempty"`
	Maximize      *bool    `json:"maximize,omitempty"`
	FluxThreshold float64  `json:"flux_threshold,omitempty"`
	TopN          int      `json:"top_n,omitempty"`
}

// OutputRunFBA is the tool output for run_fba.
type OutputRunFBA struct {
	Result         domainfba.Result         `json:"result"`
	Interpretation domainfba.Interpretation `json:"interpretation"`
	SkippedMedia   []string                 `json:"skipped_media,omitempty"`
}

func (s *Services) handleRunFBA(ctx context.Context, _ *mcp.CallToolRequest, in InputRunFBA) (*mcp.CallToolResult, OutputRunFBA, error) {
	start := time.Now()
	out, err := s.FBA.Run(ctx, appfba.RunInput{
		ModelID:           in.ModelID,
		MediaID:           in.MediaID,
		ObjectiveOverride: in.Objective,
		MaximizeOverride:  in.Maximize,
		FluxThreshold:     in.FluxThreshold,
		TopN:              in.TopN,
	})
	if s.Metrics != nil {
		s.Metrics.ObserveFBADuration(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, OutputRunFBA{}, err
	}
	if pubErr := s.events().Publish(ctx, eventbus.EventFBACompleted, in.ModelID, out.Result); pubErr != nil {
		s.log().Warn("failed to publish fba.completed event", logging.Err(pubErr))
	}
	return nil, OutputRunFBA{Result: out.Result, Interpretation: out.Interpretation, SkippedMedia: out.SkippedMedia}, nil
}
