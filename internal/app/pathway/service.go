// Package pathway implements the trace_pathway tool use case: shortest-path
// reachability between two compounds over the reaction network, answered
// either from the in-memory graph or (when configured) a Neo4j mirror (§8.3).
package pathway

import (
	"context"

	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	domainpathway "github.com/jplfaria/gem-flux-mcp/internal/domain/pathway"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// DefaultMaxHops bounds the search when a caller passes maxHops <= 0.
const DefaultMaxHops = 10

// MaxAllowedHops is the hard ceiling regardless of caller input, keeping a
// pathological request from triggering an unbounded Cypher/BFS traversal.
const MaxAllowedHops = 25

// Querier answers shortest-path queries; satisfied by both
// infrastructure/graph.InMemory and infrastructure/graph.Neo4jStore.
type Querier interface {
	ShortestPath(ctx context.Context, from, to string, maxHops int) ([]domainpathway.Hop, bool, error)
}

// Service is the trace_pathway use case.
type Service struct {
	querier Querier
	index   *domainbiochem.Index
}

// New constructs a Service over querier (the graph backend) and index (used
// to validate the input compound ids exist before querying).
func New(querier Querier, index *domainbiochem.Index) *Service {
	return &Service{querier: querier, index: index}
}

// Input is the trace_pathway request.
type Input struct {
	FromCompound string
	ToCompound   string
	MaxHops      int
}

// Output is the trace_pathway result.
type Output struct {
	Found   bool                `json:"found"`
	Path    []domainpathway.Hop `json:"path"`
	MaxHops int                 `json:"max_hops"`
}

// Trace validates both compound ids exist in the biochemistry index, then
// delegates the shortest-path search to the configured Querier.
func (s *Service) Trace(ctx context.Context, in Input) (Output, error) {
	if _, err := s.index.GetCompound(in.FromCompound); err != nil {
		return Output{}, err
	}
	if _, err := s.index.GetCompound(in.ToCompound); err != nil {
		return Output{}, err
	}

	maxHops := in.MaxHops
	switch {
	case maxHops <= 0:
		maxHops = DefaultMaxHops
	case maxHops > MaxAllowedHops:
		maxHops = MaxAllowedHops
	}

	path, found, err := s.querier.ShortestPath(ctx, in.FromCompound, in.ToCompound, maxHops)
	if err != nil {
		return Output{}, apperrors.Wrap(err, apperrors.CodeGraphError, "pathway trace failed")
	}
	return Output{Found: found, Path: path, MaxHops: maxHops}, nil
}
