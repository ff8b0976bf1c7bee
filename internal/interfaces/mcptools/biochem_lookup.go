package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var metadataGetCompoundName = &mcp.Tool{
	Name:        "get_compound_name",
	Description: "Look up a ModelSEED compound id (cpdNNNNN) in the biochemistry index and return its name, formula, and identifiers.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"required":   []string{"compound_id"},
		"properties": map[string]interface{}{"compound_id": map[string]interface{}{"type": "string"}},
	},
}

var metadataGetReactionName = &mcp.Tool{
	Name:        "get_reaction_name",
	Description: "Look up a ModelSEED reaction id (rxnNNNNN) in the biochemistry index and return its name, human-readable equation, and pathway annotations.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"required":   []string{"reaction_id"},
		"properties": map[string]interface{}{"reaction_id": map[string]interface{}{"type": "string"}},
	},
}

var metadataSearchCompounds = &mcp.Tool{
	Name:        "search_compounds",
	Description: "Search the biochemistry index for compounds by id, name, abbreviation, formula, or alias, ranked by match specificity.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"query"},
		"properties": map[string]interface{}{
			"query": map[string]interface{}{"type": "string"},
			"limit": map[string]interface{}{"type": "integer", "description": "Maximum results to return. Defaults to 20."},
		},
	},
}

var metadataSearchReactions = &mcp.Tool{
	Name:        "search_reactions",
	Description: "Search the biochemistry index for reactions by id, name, abbreviation, EC number, pathway, or alias, ranked by match specificity.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"query"},
		"properties": map[string]interface{}{
			"query": map[string]interface{}{"type": "string"},
			"limit": map[string]interface{}{"type": "integer", "description": "Maximum results to return. Defaults to 20."},
		},
	},
}

// InputGetCompoundName is the tool input for get_compound_name.
type InputGetCompoundName struct {
	CompoundID string `json:"compound_id"`
}

// OutputGetCompoundName is the tool output for get_compound_name.
type OutputGetCompoundName struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Abbreviation string              `json:"abbreviation"`
	Formula      string              `json:"formula"`
	Aliases      map[string][]string `json:"aliases,omitempty"`
}

func (s *Services) handleGetCompoundName(ctx context.Context, _ *mcp.CallToolRequest, in InputGetCompoundName) (*mcp.CallToolResult, OutputGetCompoundName, error) {
	rec, err := s.Biochem.GetCompound(in.CompoundID)
	if err != nil {
		return nil, OutputGetCompoundName{}, err
	}
	return nil, OutputGetCompoundName{ID: rec.ID, Name: rec.Name, Abbreviation: rec.Abbreviation, Formula: rec.Formula, Aliases: rec.Aliases}, nil
}

// InputGetReactionName is the tool input for get_reaction_name.
type InputGetReactionName struct {
	ReactionID string `json:"reaction_id"`
}

// OutputGetReactionName is the tool output for get_reaction_name.
type OutputGetReactionName struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	EquationWithNames  string   `json:"equation_with_names"`
	Pathways           []string `json:"pathways,omitempty"`
	ECNumbers          []string `json:"ec_numbers,omitempty"`
}

func (s *Services) handleGetReactionName(ctx context.Context, _ *mcp.CallToolRequest, in InputGetReactionName) (*mcp.CallToolResult, OutputGetReactionName, error) {
	rec, err := s.Biochem.GetReaction(in.ReactionID)
	if err != nil {
		return nil, OutputGetReactionName{}, err
	}
	return nil, OutputGetReactionName{
		ID: rec.ID, Name: rec.Name, EquationWithNames: rec.EquationWithNames,
		Pathways: rec.Pathways, ECNumbers: rec.ECNumbers,
	}, nil
}

// InputSearchCompounds is the tool input for search_compounds.
type InputSearchCompounds struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// OutputSearchCompounds is the tool output for search_compounds.
type OutputSearchCompounds struct {
	Results     []compoundHit `json:"results"`
	Truncated   bool          `json:"truncated"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

type compoundHit struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MatchField string `json:"match_field"`
	MatchType  string `json:"match_type"`
}

func (s *Services) handleSearchCompounds(ctx context.Context, _ *mcp.CallToolRequest, in InputSearchCompounds) (*mcp.CallToolResult, OutputSearchCompounds, error) {
	results, truncated, suggestions := s.Biochem.SearchCompounds(ctx, in.Query, in.Limit)
	hits := make([]compoundHit, len(results))
	for i, r := range results {
		hits[i] = compoundHit{ID: r.ID, Name: r.Name, MatchField: r.MatchField, MatchType: r.MatchType}
	}
	return nil, OutputSearchCompounds{Results: hits, Truncated: truncated, Suggestions: suggestions}, nil
}

// InputSearchReactions is the tool input for search_reactions.
type InputSearchReactions struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// OutputSearchReactions is the tool output for search_reactions.
type OutputSearchReactions struct {
	Results     []compoundHit `json:"results"`
	Truncated   bool          `json:"truncated"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

func (s *Services) handleSearchReactions(ctx context.Context, _ *mcp.CallToolRequest, in InputSearchReactions) (*mcp.CallToolResult, OutputSearchReactions, error) {
	results, truncated, suggestions := s.Biochem.SearchReactions(ctx, in.Query, in.Limit)
	hits := make([]compoundHit, len(results))
	for i, r := range results {
		hits[i] = compoundHit{ID: r.ID, Name: r.Name, MatchField: r.MatchField, MatchType: r.MatchType}
	}
	return nil, OutputSearchReactions{Results: hits, Truncated: truncated, Suggestions: suggestions}, nil
}
