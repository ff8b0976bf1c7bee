package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appbiochem "github.com/jplfaria/gem-flux-mcp/internal/app/biochem"
	appconstruction "github.com/jplfaria/gem-flux-mcp/internal/app/construction"
	appfba "github.com/jplfaria/gem-flux-mcp/internal/app/fba"
	appgapfill "github.com/jplfaria/gem-flux-mcp/internal/app/gapfill"
	apppathway "github.com/jplfaria/gem-flux-mcp/internal/app/pathway"
	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	"github.com/jplfaria/gem-flux-mcp/internal/config"
	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	domainconstruction "github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	domainpathway "github.com/jplfaria/gem-flux-mcp/internal/domain/pathway"
	domaintemplate "github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/admin"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/cache"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/eventbus"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/graph"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/metrics"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/objectstore"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/search/opensearch"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/search/vectorsuggest"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/seed"
	"github.com/jplfaria/gem-flux-mcp/internal/interfaces/mcptools"
)

// serverVersion is surfaced in the MCP initialize handshake and admin
// health responses. It tracks Version, the ldflags-injected build version.
func serverVersion() string { return Version }

// newServeCmd builds the `serve` subcommand: it loads configuration, wires
// every infrastructure and application-layer collaborator, registers the
// MCP tool surface, and serves stdio JSON-RPC alongside the optional admin
// gRPC introspection facade until signalled to shut down.
func newServeCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("config initialization failed: %w", err)
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("logger initialization failed: %w", err)
			}
			return runServe(cfg, logger)
		},
	}
}

func runServe(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildSessionStore(cfg, logger)
	if err != nil {
		return err
	}

	biochemSource, templateSource, err := buildSources(cfg, logger)
	if err != nil {
		return err
	}

	index, stats, err := domainbiochem.Load(ctx, biochemSource)
	if err != nil {
		return fmt.Errorf("failed to load biochemistry index: %w", err)
	}
	logger.Info("biochemistry index loaded",
		logging.Int("compounds", stats.CompoundCount),
		logging.Int("reactions", stats.ReactionCount),
	)

	templates, warnings, err := domaintemplate.Load(ctx, templateSource, domaintemplate.DefaultSpecs(), domaintemplate.DefaultATPTestMedia())
	if err != nil {
		return fmt.Errorf("failed to load template registry: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("template load warning", logging.String("detail", w))
	}
	logger.Info("template registry loaded", logging.String("templates", fmt.Sprint(templates.Names())))

	pathQuerier, closePathway, err := buildPathwayQuerier(ctx, cfg, index, logger)
	if err != nil {
		return err
	}
	defer closePathway()

	builder, annotator, gapfiller := buildSeedCollaborators(cfg, logger)

	events := buildEventBus(cfg, logger)
	rec := buildMetrics(cfg)

	openSearchSuggester, milvusSuggester := buildSuggesters(cfg, logger)

	construction := appconstruction.New(store, templates, builder, annotator, logger)
	gapfill := appgapfill.New(store, templates, gapfiller, gapfiller, index, logger)
	fba := appfba.New(store, index, logger)
	biochem := appbiochem.New(index, openSearchSuggester, milvusSuggester, logger)
	pathway := apppathway.New(pathQuerier, index)

	svc := &mcptools.Services{
		Store:        store,
		Construction: construction,
		Gapfill:      gapfill,
		FBA:          fba,
		Biochem:      biochem,
		Pathway:      pathway,
		Metrics:      rec,
		Events:       events,
		Logger:       logger,
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "gem-flux-mcp", Version: serverVersion()}, nil)
	mcptools.Register(server, svc)

	var adminServer *admin.Server
	if cfg.GRPC.Enabled {
		adminServer, err = admin.NewServer(cfg.GRPC, store, logger)
		if err != nil {
			return fmt.Errorf("failed to construct admin server: %w", err)
		}
		go func() {
			logger.Info("admin grpc server listening", logging.String("addr", adminServer.Addr()))
			if serveErr := adminServer.Start(); serveErr != nil {
				logger.Error("admin grpc server error", logging.Err(serveErr))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gem-flux-mcp serving over stdio")
		errCh <- server.Run(ctx, &mcp.StdioTransport{})
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("mcp transport error", logging.Err(err))
		}
	}

	if adminServer != nil {
		adminServer.Stop(cfg.Server.ShutdownTimeout)
	}
	return nil
}

// buildSessionStore constructs the session catalog and seeds it with the
// fixed, reserved-id predefined media library (§4.C3).
func buildSessionStore(cfg *config.Config, logger logging.Logger) (*session.Store, error) {
	store := session.New(logger, session.Limits{MaxModels: cfg.Session.MaxModels, MaxMedia: cfg.Session.MaxMedia})
	for id, m := range media.DefaultPredefinedMedia() {
		if err := store.StoreMedia(&session.StoredMedia{ID: id, Media: m, Predefined: true}); err != nil {
			return nil, fmt.Errorf("failed to seed predefined medium %q: %w", id, err)
		}
	}
	return store, nil
}

// buildSources constructs the biochem and template Source implementations
// per cfg.Biochem.Source/cfg.Template.Source, optionally wrapping the
// biochemistry source in a Redis cache.
func buildSources(cfg *config.Config, logger logging.Logger) (domainbiochem.Source, domaintemplate.Source, error) {
	if cfg.Biochem.Source == "minio" || cfg.Template.Source == "minio" {
		minioSrc, err := objectstore.NewMinIOSource(cfg.MinIO, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to construct minio source: %w", err)
		}
		return wrapBiochemCache(cfg, minioSrc, logger), minioSrc, nil
	}

	localSrc := objectstore.NewLocalSource(cfg.Biochem.Dir, cfg.Template.Dir)
	return wrapBiochemCache(cfg, localSrc, logger), localSrc, nil
}

func wrapBiochemCache(cfg *config.Config, inner domainbiochem.Source, logger logging.Logger) domainbiochem.Source {
	if cfg.Biochem.CacheMode != "redis" {
		return inner
	}
	cached, err := cache.NewCachingSource(cfg.Redis, inner, logger)
	if err != nil {
		logger.Warn("redis biochem cache unavailable, reading source directly", logging.Err(err))
		return inner
	}
	return cached
}

// buildPathwayQuerier builds the in-memory reaction network and, when
// Neo4j is configured, mirrors it and answers queries from there instead.
// The returned close func releases the Neo4j driver if one was opened.
func buildPathwayQuerier(ctx context.Context, cfg *config.Config, index *domainbiochem.Index, logger logging.Logger) (apppathway.Querier, func(), error) {
	g := domainpathway.BuildFromIndex(index)
	noop := func() {}

	if !cfg.Neo4j.Enabled {
		return graph.NewInMemory(g), noop, nil
	}

	store, err := graph.NewNeo4jStore(cfg.Neo4j, logger)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to construct neo4j pathway store: %w", err)
	}
	if err := store.MirrorEdges(ctx, g); err != nil {
		_ = store.Close(ctx)
		return nil, noop, fmt.Errorf("failed to mirror pathway graph into neo4j: %w", err)
	}
	return store, func() { _ = store.Close(context.Background()) }, nil
}

// buildSeedCollaborators constructs the default construction/gapfill
// collaborators and, if configured, the HTTP functional-annotation client.
// annotator is returned as a nil domainconstruction.Annotator interface
// (not a typed nil pointer) when disabled, so construction.Service's
// `annotator == nil` check behaves correctly.
func buildSeedCollaborators(cfg *config.Config, logger logging.Logger) (*seed.Builder, domainconstruction.Annotator, *seed.Gapfiller) {
	builder := seed.NewBuilder(logger)
	gapfiller := seed.NewGapfiller(logger)

	var annotator domainconstruction.Annotator
	if cfg.Annotator.Enabled {
		annotator = seed.NewAnnotatorClient(seed.AnnotatorClientConfig{
			BaseURL:            cfg.Annotator.BaseURL,
			Timeout:            cfg.Annotator.Timeout,
			MaxRetries:         cfg.Annotator.MaxRetries,
			BreakerMaxRequests: cfg.Annotator.BreakerMaxRequests,
			BreakerInterval:    cfg.Annotator.BreakerInterval,
			BreakerTimeout:     cfg.Annotator.BreakerTimeout,
		}, logger)
	}
	return builder, annotator, gapfiller
}

func buildEventBus(cfg *config.Config, logger logging.Logger) *eventbus.Publisher {
	if !cfg.Kafka.Enabled {
		return eventbus.NewNop()
	}
	return eventbus.New(cfg.Kafka, logger)
}

func buildMetrics(cfg *config.Config) *metrics.Recorder {
	if !cfg.Metrics.Enabled {
		return metrics.NewNop()
	}
	return metrics.New()
}

// buildSuggesters constructs the optional OpenSearch/Milvus search-suggestion
// fallback tiers. Either returns nil when its config section is disabled or
// fails to connect — both tiers are soft dependencies of app/biochem.
func buildSuggesters(cfg *config.Config, logger logging.Logger) (appbiochem.SuggestionSource, appbiochem.SuggestionSource) {
	var openSearchSuggester appbiochem.SuggestionSource
	if cfg.OpenSearch.Enabled {
		s, err := opensearch.NewSuggester(cfg.OpenSearch, logger)
		if err != nil {
			logger.Warn("opensearch suggestion tier unavailable", logging.Err(err))
		} else {
			openSearchSuggester = s
		}
	}

	var milvusSuggester appbiochem.SuggestionSource
	if cfg.Milvus.Enabled {
		s, err := vectorsuggest.NewSuggester(cfg.Milvus, logger)
		if err != nil {
			logger.Warn("milvus suggestion tier unavailable", logging.Err(err))
		} else {
			milvusSuggester = s
		}
	}

	return openSearchSuggester, milvusSuggester
}
