package seed

import (
	"context"
	"sort"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/fba"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/gapfill"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

// minGrowthEpsilon is the smallest objective value treated as "growing"
// when probing whether a candidate reaction set rescues a medium.
const minGrowthEpsilon = 1e-6

// Gapfiller is the default gapfill.Solver and gapfill.ATPCorrector
// implementation. It stands in for ModelSEEDpy's MSGapfill: rather than a
// true mixed-integer minimal-reaction-set search, it greedily adds template
// reactions not already in the model, probing growth after each addition,
// until the target objective is met or the template is exhausted.
type Gapfiller struct {
	logger logging.Logger
}

// NewGapfiller constructs a Gapfiller.
func NewGapfiller(logger logging.Logger) *Gapfiller {
	return &Gapfiller{logger: logger}
}

// Gapfill greedily adds template reactions absent from h, probing after
// each addition, until targetGrowthRate is reached or no candidate remains.
// A working copy is optimized against — h itself is never mutated; the
// returned Solution describes what the caller should integrate.
func (g *Gapfiller) Gapfill(ctx context.Context, h model.Handle, tmpl *template.Template, targetMedium *media.Media, targetGrowthRate float64) (gapfill.Solution, error) {
	work := h.DeepCopy()
	fba.ApplyMedia(work, targetMedium)

	sol := gapfill.Solution{}
	candidates := sortedTemplateReactionIDs(tmpl)

	for _, templateID := range candidates {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		modelID := templateID + "0"
		if _, exists := work.Reaction(modelID); exists {
			continue
		}

		trxn := tmpl.Reactions[templateID]
		stoich, err := parseEquationStoichiometry(trxn.Equation)
		if err != nil {
			continue
		}
		direction := gapfill.DirReversible
		if !equationReversible(trxn.Equation) {
			direction = gapfill.DirForward
		}
		lower, upper := direction.Bounds()

		concrete, ok := work.(*Handle)
		if !ok {
			return nil, apperrors.New(apperrors.CodeSolverFailure, "gapfill solver requires the seed package's concrete Handle")
		}
		concrete.AddReactionWithStoichiometry(model.Reaction{
			ID: modelID, Name: trxn.Name, Equation: trxn.Equation,
			LowerBound: lower, UpperBound: upper, Reversible: direction == gapfill.DirReversible,
		}, stoich, compartmentOfMetabolite)
		sol[modelID] = direction

		result, err := work.Optimize(ctx)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeSolverFailure, "gapfill probe optimization failed")
		}
		if result.Status == model.StatusOptimal && result.ObjectiveValue >= targetGrowthRate-minGrowthEpsilon {
			return sol, nil
		}
	}

	return nil, apperrors.New(apperrors.CodeGapfillExhausted, "no combination of template reactions reached the target growth rate").
		WithDetail("exhausted full template candidate set")
}

// Correct implements ATPCorrector: for each test medium, apply it, probe
// ATP-maintenance growth, and for every failing medium add the full set of
// template reactions the model is missing at once (unlike Gapfill, which
// adds candidates one at a time) before re-probing once more.
func (g *Gapfiller) Correct(ctx context.Context, h model.Handle, tmpl *template.Template, testMedia []media.Media) (gapfill.ATPCorrectionResult, error) {
	result := gapfill.ATPCorrectionResult{}
	concrete, ok := h.(*Handle)
	if !ok {
		return result, apperrors.New(apperrors.CodeSolverFailure, "ATP correction requires the seed package's concrete Handle")
	}

	if err := h.SetObjective(model.ATPMaintenanceReactionID, true); err != nil {
		return result, apperrors.Wrap(err, apperrors.CodeATPCorrectionFail, "model has no ATP maintenance reaction to correct against")
	}

	var added []string
	for i := range testMedia {
		m := &testMedia[i]
		fba.ApplyMedia(h, m)
		optResult, err := h.Optimize(ctx)
		if err != nil {
			return result, apperrors.Wrap(err, apperrors.CodeATPCorrectionFail, "ATP test optimization failed")
		}
		passed := optResult.Status == model.StatusOptimal && optResult.ObjectiveValue >= minGrowthEpsilon
		if !passed {
			for _, templateID := range sortedTemplateReactionIDs(tmpl) {
				modelID := templateID + "0"
				if _, exists := concrete.Reaction(modelID); exists {
					continue
				}
				trxn := tmpl.Reactions[templateID]
				stoich, err := parseEquationStoichiometry(trxn.Equation)
				if err != nil {
					continue
				}
				direction := gapfill.DirReversible
				lower, upper := direction.Bounds()
				concrete.AddReactionWithStoichiometry(model.Reaction{
					ID: modelID, Name: trxn.Name, Equation: trxn.Equation,
					LowerBound: lower, UpperBound: upper, Reversible: true,
				}, stoich, compartmentOfMetabolite)
				added = append(added, modelID)
			}
			optResult, err = h.Optimize(ctx)
			if err != nil {
				return result, apperrors.Wrap(err, apperrors.CodeATPCorrectionFail, "ATP re-test optimization failed")
			}
			passed = optResult.Status == model.StatusOptimal && optResult.ObjectiveValue >= minGrowthEpsilon
		}

		result.Tests = append(result.Tests, gapfill.ATPTestResult{MediumID: m.Name, Passed: passed})
		if passed {
			result.NumPassed++
		} else {
			result.NumFailed++
			result.FailedMediaIDs = append(result.FailedMediaIDs, m.Name)
		}
	}

	result.ReactionsAdded = added
	if result.NumFailed == len(testMedia) && len(testMedia) > 0 {
		return result, apperrors.New(apperrors.CodeATPCorrectionFail, "model failed to produce ATP under every test medium")
	}
	return result, nil
}

func sortedTemplateReactionIDs(tmpl *template.Template) []string {
	ids := make([]string, 0, len(tmpl.Reactions))
	for id := range tmpl.Reactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
