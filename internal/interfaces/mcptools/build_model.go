package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appconstruction "github.com/jplfaria/gem-flux-mcp/internal/app/construction"
	domainconstruction "github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/eventbus"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

var metadataBuildModel = &mcp.Tool{
	Name: "build_model",
	Description: "Construct a draft genome-scale metabolic model from a genome (FASTA " +
		"path or inline protein sequences) against a named reconstruction template. " +
		"Optionally runs functional annotation first. Returns a new model id ending " +
		"in \".draft\".",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"template_name", "model_basename"},
		"properties": map[string]interface{}{
			"fasta_path":      map[string]interface{}{"type": "string", "description": "Path to a FASTA file of protein sequences. Mutually exclusive with protein_sequences."},
			"protein_sequences": map[string]interface{}{
				"type":                 "object",
				"description":          "Inline mapping from protein id to amino-acid sequence. Mutually exclusive with fasta_path.",
				"additionalProperties":  map[string]interface{}{"type": "string"},
			},
			"template_name":  map[string]interface{}{"type": "string", "description": "Name of the loaded reconstruction template to build against."},
			"model_basename": map[string]interface{}{"type": "string", "description": "Basename to register the resulting model under."},
			"annotate":       map[string]interface{}{"type": "boolean", "description": "Whether to run functional annotation before construction."},
		},
	},
}

// InputBuildModel is the tool input for build_model.
type InputBuildModel struct {
	FASTAPath       string            `json:"fasta_path"`
	ProteinSequences map[string]string `json:"protein_sequences"`
	TemplateName    string            `json:"template_name"`
	ModelBasename   string            `json:"model_basename"`
	Annotate        bool              `json:"annotate"`
}

// OutputBuildModel is the tool output for build_model.
type OutputBuildModel struct {
	ModelID        string                           `json:"model_id"`
	Stats          model.Stats                      `json:"stats"`
	Interpretation domainconstruction.Interpretation `json:"interpretation"`
	NextSteps      []string                         `json:"next_steps"`
}

func (s *Services) handleBuildModel(ctx context.Context, _ *mcp.CallToolRequest, in InputBuildModel) (*mcp.CallToolResult, OutputBuildModel, error) {
	out, err := s.Construction.BuildModel(ctx, appconstruction.BuildModelInput{
		FASTAPath:     in.FASTAPath,
		ProteinSeqs:   in.ProteinSequences,
		TemplateName:  in.TemplateName,
		ModelBasename: in.ModelBasename,
		Annotate:      in.Annotate,
	})
	if err != nil {
		return nil, OutputBuildModel{}, err
	}
	if pubErr := s.events().Publish(ctx, eventbus.EventModelConstructed, out.ModelID, out); pubErr != nil {
		s.log().Warn("failed to publish model.constructed event", logging.Err(pubErr))
	}
	return nil, OutputBuildModel{
		ModelID:        out.ModelID,
		Stats:          out.Stats,
		Interpretation: out.Interpretation,
		NextSteps:      out.NextSteps,
	}, nil
}
