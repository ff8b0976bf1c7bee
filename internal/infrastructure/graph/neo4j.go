// Package graph provides the optional Neo4j-backed mirror of the pathway
// graph, plus the Querier abstraction internal/app/pathway consumes so its
// service doesn't care whether shortest paths are answered in-memory or by
// Cypher (§8.3).
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	domainpathway "github.com/jplfaria/gem-flux-mcp/internal/domain/pathway"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// Querier answers pathway shortest-path queries. Both the in-memory
// domain/pathway.Graph and Neo4jStore below implement it, so
// internal/app/pathway.Service can be handed either.
type Querier interface {
	ShortestPath(ctx context.Context, from, to string, maxHops int) ([]domainpathway.Hop, bool, error)
}

// InMemory adapts domain/pathway.Graph (whose ShortestPath is synchronous
// and infallible) to the Querier interface.
type InMemory struct {
	graph *domainpathway.Graph
}

// NewInMemory wraps g as a Querier.
func NewInMemory(g *domainpathway.Graph) *InMemory { return &InMemory{graph: g} }

func (m *InMemory) ShortestPath(_ context.Context, from, to string, maxHops int) ([]domainpathway.Hop, bool, error) {
	path, found := m.graph.ShortestPath(from, to, maxHops)
	return path, found, nil
}

// Neo4jStore mirrors the reaction network into Neo4j as
// (:Compound)-[:REACTION {id}]->(:Compound) edges and answers shortest-path
// queries with Cypher's shortestPath() instead of an in-process BFS.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
	cfg    config.Neo4jConfig
	logger logging.Logger
}

// NewNeo4jStore connects to cfg.URI and verifies connectivity before
// returning, so a misconfigured deployment fails at startup.
func NewNeo4jStore(cfg config.Neo4jConfig, logger logging.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
		})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeGraphError, "failed to construct neo4j driver")
	}

	timeout := cfg.ConnectionTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeGraphError, "failed to connect to neo4j")
	}

	return &Neo4jStore{driver: driver, cfg: cfg, logger: logger}, nil
}

func (s *Neo4jStore) database() string {
	if s.cfg.Database == "" {
		return "neo4j"
	}
	return s.cfg.Database
}

// MirrorEdges writes every edge in g into Neo4j as MERGEd nodes/relationships,
// so repeated calls (e.g. after a biochem index reload) are idempotent.
func (s *Neo4jStore) MirrorEdges(ctx context.Context, g *domainpathway.Graph) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database(), AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, edge := range g.Edges() {
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx,
				`MERGE (a:Compound {id: $from})
				 MERGE (b:Compound {id: $to})
				 MERGE (a)-[:REACTION {id: $reaction}]->(b)`,
				map[string]any{"from": edge.From, "to": edge.To, "reaction": edge.Reaction})
		})
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeGraphError, "failed to mirror pathway edge").WithDetail(edge.Reaction)
		}
	}
	s.logger.Info("mirrored pathway graph into neo4j", logging.Int("edges", len(g.Edges())))
	return nil
}

// ShortestPath runs a bounded Cypher shortestPath() query between from and to.
func (s *Neo4jStore) ShortestPath(ctx context.Context, from, to string, maxHops int) ([]domainpathway.Hop, bool, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database(), AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	cypher := fmt.Sprintf(
		`MATCH p = shortestPath((a:Compound {id: $from})-[:REACTION*1..%d]->(b:Compound {id: $to}))
		 RETURN [r IN relationships(p) | r.id] AS reactions, [n IN nodes(p) | n.id] AS compounds`,
		maxHops)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, map[string]any{"from": from, "to": to})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, res.Err()
		}
		return res.Record(), nil
	})
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.CodeGraphError, "pathway query failed")
	}
	record, ok := result.(*neo4j.Record)
	if !ok || record == nil {
		return nil, false, nil
	}

	reactions, _ := record.Get("reactions")
	compounds, _ := record.Get("compounds")
	reactionList, _ := reactions.([]any)
	compoundList, _ := compounds.([]any)
	if len(compoundList) == 0 {
		return nil, false, nil
	}

	hops := make([]domainpathway.Hop, 0, len(reactionList))
	for i, r := range reactionList {
		compound, _ := compoundList[i+1].(string)
		reaction, _ := r.(string)
		hops = append(hops, domainpathway.Hop{Reaction: reaction, Compound: compound})
	}
	return hops, true, nil
}

// Close releases the underlying driver's connections.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
