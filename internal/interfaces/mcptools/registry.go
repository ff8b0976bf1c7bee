// Package mcptools registers every gem-flux-mcp tool (C7) against an MCP
// server instance. Each tool handler closes over the process-scoped
// service locator (Services) rather than receiving its dependencies
// through a JSON-serializable parameter, since the biochemistry index,
// template registry, and session store are not meaningfully expressible
// as tool input.
package mcptools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	appbiochem "github.com/jplfaria/gem-flux-mcp/internal/app/biochem"
	appconstruction "github.com/jplfaria/gem-flux-mcp/internal/app/construction"
	appfba "github.com/jplfaria/gem-flux-mcp/internal/app/fba"
	appgapfill "github.com/jplfaria/gem-flux-mcp/internal/app/gapfill"
	apppathway "github.com/jplfaria/gem-flux-mcp/internal/app/pathway"
	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/eventbus"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/metrics"
)

// Services is the process-scoped service locator every tool handler closes
// over. It is assembled once at startup (cmd/gemfluxmcp) and never
// mutated afterward; only the Store field's contents change during a
// session. Metrics and Events default to no-ops when unset so callers that
// don't care about instrumentation or the event bus can leave them nil.
type Services struct {
	Store        *session.Store
	Construction *appconstruction.Service
	Gapfill      *appgapfill.Service
	FBA          *appfba.Service
	Biochem      *appbiochem.Service
	Pathway      *apppathway.Service
	Metrics      *metrics.Recorder
	Events       *eventbus.Publisher
	Logger       logging.Logger
}

// events returns svc.Events, or a no-op Publisher when unset.
func (svc *Services) events() *eventbus.Publisher {
	if svc.Events == nil {
		return eventbus.NewNop()
	}
	return svc.Events
}

// log returns svc.Logger, or a no-op Logger when unset.
func (svc *Services) log() logging.Logger {
	if svc.Logger == nil {
		return logging.NewNopLogger()
	}
	return svc.Logger
}

// Register adds every gem-flux-mcp tool to server, wiring each handler
// against svc. Registration order follows §4.C7's tool list. Every handler
// is wrapped with instrument so tool_invocations_total/tool_duration_seconds
// are recorded uniformly without each handler needing to know about metrics.
func Register(server *mcp.Server, svc *Services) {
	rec := svc.Metrics
	if rec == nil {
		rec = metrics.NewNop()
	}

	mcp.AddTool(server, metadataBuildMedia, instrument(rec, "build_media", svc.handleBuildMedia))
	mcp.AddTool(server, metadataBuildModel, instrument(rec, "build_model", svc.handleBuildModel))
	mcp.AddTool(server, metadataGapfillModel, instrument(rec, "gapfill_model", svc.handleGapfillModel))
	mcp.AddTool(server, metadataRunFBA, instrument(rec, "run_fba", svc.handleRunFBA))
	mcp.AddTool(server, metadataGetCompoundName, instrument(rec, "get_compound_name", svc.handleGetCompoundName))
	mcp.AddTool(server, metadataGetReactionName, instrument(rec, "get_reaction_name", svc.handleGetReactionName))
	mcp.AddTool(server, metadataSearchCompounds, instrument(rec, "search_compounds", svc.handleSearchCompounds))
	mcp.AddTool(server, metadataSearchReactions, instrument(rec, "search_reactions", svc.handleSearchReactions))
	mcp.AddTool(server, metadataListModels, instrument(rec, "list_models", svc.handleListModels))
	mcp.AddTool(server, metadataListMedia, instrument(rec, "list_media", svc.handleListMedia))
	mcp.AddTool(server, metadataDeleteModel, instrument(rec, "delete_model", svc.handleDeleteModel))
	mcp.AddTool(server, metadataTracePathway, instrument(rec, "trace_pathway", svc.handleTracePathway))
}

// instrument wraps a tool handler so every call records its outcome
// ("success"/"error", keyed off the returned error) and latency against rec.
func instrument[In, Out any](rec *metrics.Recorder, tool string, h func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		result, out, err := h(ctx, req, in)
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		rec.ObserveToolInvocation(tool, outcome, time.Since(start).Seconds())
		return result, out, err
	}
}
