// Package vectorsuggest implements the Milvus-backed near-miss suggestion
// fallback tier (§8.7) for search_compounds/search_reactions' empty-result
// case: app/biochem consults it when the index search has no hits and the
// OpenSearch fuzzy tier is absent, fails, or returns nothing. A fixed-width
// hash of the query name is searched against a pre-built Milvus collection
// of name embeddings for nearest matches.
// Grounded on the teacher's internal/infrastructure/search/milvus/client.go
// (config validation, eager connectivity check) and searcher.go (the raw
// client.Client.Search call shape); condensed down to the single
// approximate-match query this fallback tier issues — collection creation
// and embedding ingestion are out-of-band operational concerns, same as
// the OpenSearch index in the sibling package.
package vectorsuggest

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// embeddingDim is the width of the stand-in name embedding below. It has
// no relationship to any real embedding model's output dimension — this
// package never trains or loads one.
const embeddingDim = 16

// defaultConnectTimeout bounds the connectivity check performed at
// construction.
const defaultConnectTimeout = 10 * time.Second

// nameVectorField and namePayloadField are the field names the pre-built
// collections are expected to use.
const (
	nameVectorField  = "embedding"
	namePayloadField = "name"
)

// Suggester implements app/biochem.SuggestionSource against Milvus.
type Suggester struct {
	client           client.Client
	collectionPrefix string
	logger           logging.Logger
}

// NewSuggester connects to cfg.Addr and verifies the connection with
// ListCollections before returning.
func NewSuggester(cfg config.MilvusConfig, logger logging.Logger) (*Suggester, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if cfg.Addr == "" {
		return nil, apperrors.New(apperrors.CodeSearchIndexError, "milvus: addr is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	c, err := client.NewClient(ctx, client.Config{Address: cfg.Addr})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "milvus: failed to connect")
	}
	if _, err := c.ListCollections(ctx); err != nil {
		_ = c.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "milvus: cluster unreachable")
	}

	prefix := cfg.CollectionPrefix
	if prefix == "" {
		prefix = "gemfluxmcp"
	}
	return &Suggester{client: c, collectionPrefix: prefix, logger: logger}, nil
}

// Close releases the underlying Milvus connection.
func (s *Suggester) Close() error {
	return s.client.Close()
}

// collectionName returns the per-kind collection a Suggest call reads
// from, e.g. "gemfluxmcp_compounds" / "gemfluxmcp_reactions".
func (s *Suggester) collectionName(kind string) string {
	return fmt.Sprintf("%s_%ss", s.collectionPrefix, kind)
}

// nameEmbedding hashes name into a deterministic embeddingDim-wide vector.
// This is a stand-in, not a trained embedding: each component is an FNV-1a
// hash of the whole name salted with the component index, so only an
// identical name maps to an identical vector; names that share substrings
// are not placed closer together than unrelated names.
func nameEmbedding(name string) []float32 {
	out := make([]float32, embeddingDim)
	for i := range out {
		h := fnv.New32a()
		_, _ = h.Write([]byte{byte(i)})
		_, _ = h.Write([]byte(name))
		out[i] = float32(h.Sum32()%1000) / 1000.0
	}
	return out
}

// Suggest searches kind's collection for the nearest embeddings to
// query's hash and returns up to limit candidate names.
func (s *Suggester) Suggest(ctx context.Context, kind, query string, limit int) ([]string, error) {
	sp, err := entity.NewIndexFlatSearchParam()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "milvus: failed to build search params")
	}

	vec := nameEmbedding(query)
	results, err := s.client.Search(ctx, s.collectionName(kind), nil, "", []string{namePayloadField},
		[]entity.Vector{entity.FloatVector(vec)}, nameVectorField, entity.L2, limit, sp)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "milvus: search failed")
	}

	var out []string
	for _, res := range results {
		col := res.Fields.GetColumn(namePayloadField)
		if col == nil {
			continue
		}
		for i := 0; i < col.Len(); i++ {
			v, err := col.GetAsString(i)
			if err != nil || v == "" {
				continue
			}
			out = append(out, v)
		}
	}
	return out, nil
}
