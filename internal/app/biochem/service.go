// Package biochem implements the tool-facing lookup and search use cases
// (get_compound_name, get_reaction_name, search_compounds,
// search_reactions) as a thin wrapper around the immutable biochemistry
// index. It adds nothing beyond argument defaulting and the optional
// OpenSearch/Milvus suggestion-fallback tiers (§8.6/§8.7); the index itself
// owns every lookup/search algorithm.
package biochem

import (
	"context"

	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// DefaultSearchLimit bounds result-set size when a caller passes limit <= 0.
const DefaultSearchLimit = 20

// SuggestionSource produces alternate-query suggestions for an empty
// search result, for kind "compound" or "reaction". Satisfied by
// infrastructure/search/opensearch.Suggester and
// infrastructure/search/vectorsuggest.Suggester; a Suggest failure is
// always soft — the caller falls through to the next tier, never to an
// error response.
type SuggestionSource interface {
	Suggest(ctx context.Context, kind, query string, limit int) ([]string, error)
}

// Service is a thin facade over the index, plus two optional suggestion
// tiers consulted only when the index's own search returns no hits.
type Service struct {
	index      *domainbiochem.Index
	openSearch SuggestionSource
	milvus     SuggestionSource
	logger     logging.Logger
}

// New constructs a Service over a loaded index. openSearch and milvus may
// both be nil, in which case search falls back to the index's built-in
// heuristic suggestions unconditionally (as if neither §8.6 nor §8.7 were
// configured).
func New(index *domainbiochem.Index, openSearch, milvus SuggestionSource, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{index: index, openSearch: openSearch, milvus: milvus, logger: logger}
}

// GetCompound returns the compound record for id, or a not_found_error.
func (s *Service) GetCompound(id string) (*domainbiochem.CompoundRecord, error) {
	return s.index.GetCompound(id)
}

// GetReaction returns the reaction record for id, or a not_found_error.
func (s *Service) GetReaction(id string) (*domainbiochem.ReactionRecord, error) {
	return s.index.GetReaction(id)
}

// SearchCompounds delegates to the index, applying DefaultSearchLimit when
// limit is non-positive. When the index returns no hits, OpenSearch and
// then Milvus are tried in turn to replace the index's own heuristic
// suggestions with a higher-quality fuzzy/near-miss list; the heuristic
// list is kept only when both tiers are absent, erroring, or empty.
func (s *Service) SearchCompounds(ctx context.Context, query string, limit int) ([]domainbiochem.SearchResult, bool, []string) {
	results, truncated, suggestions := s.index.SearchCompounds(query, effectiveLimit(limit))
	if len(results) == 0 {
		if external := s.externalSuggestions(ctx, "compound", query); external != nil {
			suggestions = external
		}
	}
	return results, truncated, suggestions
}

// SearchReactions mirrors SearchCompounds for reaction queries.
func (s *Service) SearchReactions(ctx context.Context, query string, limit int) ([]domainbiochem.SearchResult, bool, []string) {
	results, truncated, suggestions := s.index.SearchReactions(query, effectiveLimit(limit))
	if len(results) == 0 {
		if external := s.externalSuggestions(ctx, "reaction", query); external != nil {
			suggestions = external
		}
	}
	return results, truncated, suggestions
}

// externalSuggestions tries OpenSearch, then Milvus, returning the first
// non-empty, error-free suggestion list. Returns nil (not an empty slice)
// when neither tier produced anything, so callers can tell "no override"
// apart from "override with zero suggestions".
func (s *Service) externalSuggestions(ctx context.Context, kind, query string) []string {
	if s.openSearch != nil {
		sug, err := s.openSearch.Suggest(ctx, kind, query, DefaultSearchLimit)
		if err != nil {
			s.logger.Warn("opensearch suggestion lookup failed", logging.String("kind", kind), logging.Err(err))
		} else if len(sug) > 0 {
			return sug
		}
	}
	if s.milvus != nil {
		sug, err := s.milvus.Suggest(ctx, kind, query, DefaultSearchLimit)
		if err != nil {
			s.logger.Warn("milvus suggestion lookup failed", logging.String("kind", kind), logging.Err(err))
		} else if len(sug) > 0 {
			return sug
		}
	}
	return nil
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return limit
}
