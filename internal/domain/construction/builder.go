package construction

import (
	"context"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
)

// Builder is the external construction collaborator's contract: given a
// genome and a template, produce a draft model handle and attach an
// ATP-maintenance reaction if the template's build step didn't already.
// The default in-process implementation lives in
// internal/infrastructure/seed; it stands in for ModelSEEDpy's
// MSGenomeBuilder/MSBuilder pipeline.
type Builder interface {
	Build(ctx context.Context, genome *Genome, tmpl *template.Template) (model.Handle, error)
	EnsureATPMaintenance(h model.Handle)
}

// Annotator is the external functional-annotation collaborator's contract
// (an HTTP client to a RAST-like service in the default implementation).
// Annotator failure must surface as a library_error — callers must never
// silently fall back to offline assignment on error.
type Annotator interface {
	Annotate(ctx context.Context, genome *Genome) error
}
