// Package opensearch implements the OpenSearch-backed search-suggestion
// fallback tier (§8.6): when search_compounds/search_reactions' in-memory
// heuristic would otherwise answer an empty result set, a fuzzy
// (edit-distance) match query against a pre-built names/aliases index
// supplies a higher-quality alternate-query list instead. Grounded on the
// teacher's internal/infrastructure/search/opensearch/client.go (eager
// connectivity check, config validation, structured logging); condensed
// from its bulk-indexing/complex-DSL machinery (indexer.go, searcher.go)
// down to the single read query this fallback tier actually issues —
// building and maintaining the index is an out-of-band operational
// concern, not something gem-flux-mcp's own process does.
package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v3"
	"github.com/opensearch-project/opensearch-go/v3/opensearchapi"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// defaultPingTimeout bounds the connectivity check performed at construction.
const defaultPingTimeout = 10 * time.Second

// Suggester implements app/biochem.SuggestionSource against an OpenSearch
// cluster.
type Suggester struct {
	client      *opensearchapi.Client
	indexPrefix string
	logger      logging.Logger
}

// NewSuggester constructs a Suggester and verifies cluster connectivity
// before returning, matching the teacher's eager-ping client constructor —
// a suggestion tier that silently can't reach its backend is worse than
// one that fails fast at startup.
func NewSuggester(cfg config.OpenSearchConfig, logger logging.Logger) (*Suggester, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if len(cfg.Addresses) == 0 {
		return nil, apperrors.New(apperrors.CodeSearchIndexError, "opensearch: at least one address is required")
	}

	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.User,
			Password:  cfg.Password,
		},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "opensearch: failed to construct client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if _, err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "opensearch: cluster unreachable")
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = "gemfluxmcp"
	}
	return &Suggester{client: client, indexPrefix: prefix, logger: logger}, nil
}

// indexName returns the per-kind index a Suggest call reads from, e.g.
// "gemfluxmcp_compounds" / "gemfluxmcp_reactions".
func (s *Suggester) indexName(kind string) string {
	return fmt.Sprintf("%s_%ss", s.indexPrefix, kind)
}

type fuzzySearchBody struct {
	Query fuzzyQuery `json:"query"`
	Size  int        `json:"size"`
}

type fuzzyQuery struct {
	Fuzzy map[string]fuzzyField `json:"fuzzy"`
}

type fuzzyField struct {
	Value     string `json:"value"`
	Fuzziness string `json:"fuzziness"`
}

type suggestionSource struct {
	Name string `json:"name"`
}

// Suggest runs a fuzzy match query against kind's index "name" field and
// returns up to limit candidate names. Any transport/query error is
// wrapped as a SearchIndexError; app/biochem treats it as a soft failure
// and falls through to the next suggestion tier.
func (s *Suggester) Suggest(ctx context.Context, kind, query string, limit int) ([]string, error) {
	body := fuzzySearchBody{Size: limit}
	body.Query.Fuzzy = map[string]fuzzyField{"name": {Value: query, Fuzziness: "AUTO"}}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "opensearch: failed to encode query")
	}

	resp, err := s.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{s.indexName(kind)},
		Body:    strings.NewReader(string(payload)),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeSearchIndexError, "opensearch: query failed")
	}

	out := make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var src suggestionSource
		if err := json.Unmarshal(hit.Source, &src); err != nil {
			s.logger.Warn("opensearch: failed to decode hit source", logging.Err(err))
			continue
		}
		if src.Name != "" {
			out = append(out, src.Name)
		}
	}
	return out, nil
}
