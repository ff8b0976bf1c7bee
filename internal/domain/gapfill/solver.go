package gapfill

import (
	"context"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
)

// Solver is the external genome-scale gapfilling collaborator's contract:
// given a working model, the full template, a target medium, and a target
// growth rate, return a Solution or report infeasibility. The default
// in-process implementation (internal/infrastructure/seed) stands in for
// ModelSEEDpy's MSGapfill.
type Solver interface {
	Gapfill(ctx context.Context, h model.Handle, tmpl *template.Template, targetMedium *media.Media, targetGrowthRate float64) (Solution, error)
}

// ATPTestResult records one ATP test medium's pass/fail outcome.
type ATPTestResult struct {
	MediumID string
	Passed   bool
}

// ATPCorrectionResult summarizes one ATP-correction stage run.
type ATPCorrectionResult struct {
	Tests            []ATPTestResult
	ReactionsAdded   []string
	NumPassed        int
	NumFailed        int
	FailedMediaIDs   []string
}

// ATPCorrector is the external ATP-correction collaborator's contract: probe
// growth across a bundle of test media with the ATP-maintenance objective,
// then add reactions that rescue failing media, and expand the model to
// genome scale using the full template.
type ATPCorrector interface {
	Correct(ctx context.Context, h model.Handle, tmpl *template.Template, testMedia []media.Media) (ATPCorrectionResult, error)
}
