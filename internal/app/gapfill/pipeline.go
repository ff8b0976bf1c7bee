// Package gapfill implements the two-stage gapfilling pipeline (C5): ATP
// correction across a fixed test-media bundle, then genome-scale
// gapfilling against a target medium, with solution integration, growth
// verification, and result enrichment from the biochemistry index.
package gapfill

import (
	"context"
	"fmt"
	"sort"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	domainfba "github.com/jplfaria/gem-flux-mcp/internal/domain/fba"
	domaingapfill "github.com/jplfaria/gem-flux-mcp/internal/domain/gapfill"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/modelstate"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// Mode selects which stages of the pipeline run.
type Mode string

const (
	ModeFull             Mode = "full"
	ModeATPOnly          Mode = "atp_only"
	ModeGenomescaleOnly  Mode = "genomescale_only"
)

// Service wraps the two-stage pipeline with session-store registration.
type Service struct {
	store        *session.Store
	templates    *template.Registry
	solver       domaingapfill.Solver
	atpCorrector domaingapfill.ATPCorrector
	index        *domainbiochem.Index
	logger       logging.Logger
}

// New constructs a Service.
func New(store *session.Store, templates *template.Registry, solver domaingapfill.Solver, atpCorrector domaingapfill.ATPCorrector, index *domainbiochem.Index, logger logging.Logger) *Service {
	return &Service{store: store, templates: templates, solver: solver, atpCorrector: atpCorrector, index: index, logger: logger}
}

// Input is the tool-facing request shape for gapfill_model.
type Input struct {
	ModelID          string
	MediaID          string
	TargetGrowthRate float64
	Mode             Mode
	TemplateName     string
}

// ATPStats summarizes the ATP-correction stage for the tool-facing
// response only; session.GapfillMetadata keeps no ATP-correction fields,
// so these numbers are not stored with the gapfilled model.
type ATPStats struct {
	NumTestConditions int
	NumPassed         int
	NumFailed         int
	ReactionsAdded    []string
	FailedMediaIDs    []string
}

// Output is the tool-facing response shape for gapfill_model.
type Output struct {
	ModelID           string
	GrowthRateBefore  float64
	GrowthRateAfter   float64
	TargetGrowthRate  float64
	GapfillSuccessful bool
	ReactionsAdded    []string
	ATPStats          ATPStats
	Enrichment        []ReactionEnrichment
	PathwayCoverage   PathwayCoverage
}

// ReactionEnrichment is one added reaction enriched with its biochemistry
// record for the response.
type ReactionEnrichment struct {
	ReactionID  string
	Name        string
	Equation    string
	Pathways    []string
}

// PathwayCoverage summarizes how many added reactions carry pathway
// annotations.
type PathwayCoverage struct {
	TotalAdded      int
	WithPathway     int
	WithoutPathway  int
	Pathways        []string
}

// Run executes the pipeline per §4.C5: snapshot, baseline, early exit,
// ATP correction, genome-scale gapfill with solution integration,
// verification, mint-and-persist, enrichment.
func (s *Service) Run(ctx context.Context, in Input) (Output, error) {
	if in.Mode == "" {
		in.Mode = ModeFull
	}
	if in.TargetGrowthRate <= 0 {
		return Output{}, apperrors.New(apperrors.CodeInvalidParam, "target_growth_rate must be > 0")
	}

	sm, err := s.store.RetrieveModel(in.ModelID)
	if err != nil {
		return Output{}, err
	}
	storedMedia, err := s.store.RetrieveMedia(in.MediaID)
	if err != nil {
		return Output{}, err
	}

	if in.Mode != ModeATPOnly {
		if stats := model.Summarize(sm.Handle); stats.BiomassReaction == "" {
			return Output{}, apperrors.New(apperrors.CodeInvalidParam, "model has no biomass reaction; genome-scale gapfill requires one")
		}
	}

	tmpl, err := s.resolveTemplate(in.TemplateName)
	if err != nil {
		return Output{}, err
	}

	h := sm.Handle.DeepCopy()

	growthBefore := s.baseline(ctx, h, storedMedia.Media)

	if growthBefore >= in.TargetGrowthRate {
		return s.persist(h, sm, in, growthBefore, growthBefore, nil, ATPStats{}, true)
	}

	var atpStats ATPStats
	if in.Mode != ModeGenomescaleOnly && s.atpCorrector != nil {
		result, err := s.atpCorrector.Correct(ctx, h, tmpl, atpTestMediaToMedia(s.templates.ATPTestMedia()))
		if err != nil {
			s.logger.Warn("ATP correction failed; continuing with partial stats", logging.Err(err))
		} else {
			atpStats = ATPStats{
				NumTestConditions: len(result.Tests),
				NumPassed:         result.NumPassed,
				NumFailed:         result.NumFailed,
				ReactionsAdded:    append([]string(nil), result.ReactionsAdded...),
				FailedMediaIDs:    append([]string(nil), result.FailedMediaIDs...),
			}
		}
	}

	var reactionsAdded []string
	if in.Mode != ModeATPOnly {
		if s.solver == nil {
			return Output{}, apperrors.New(apperrors.CodeSolverFailure, "no gapfill solver configured")
		}
		solution, err := s.solver.Gapfill(ctx, h, tmpl, storedMedia.Media, in.TargetGrowthRate)
		if err != nil {
			return Output{}, apperrors.Wrap(err, apperrors.CodeInfeasible, "genome-scale gapfilling found no solution").
				WithDetail(fmt.Sprintf("baseline=%.6g target=%.6g; consider a richer medium", growthBefore, in.TargetGrowthRate))
		}
		reactionsAdded = s.integrateSolution(h, tmpl, solution)
	}

	growthAfter := s.verify(ctx, h, storedMedia.Media)
	success := growthAfter >= in.TargetGrowthRate

	return s.persist(h, sm, in, growthBefore, growthAfter, reactionsAdded, atpStats, success)
}

func (s *Service) resolveTemplate(name string) (*template.Template, error) {
	if name != "" {
		return s.templates.Get(name)
	}
	names := s.templates.Names()
	if len(names) == 0 {
		return nil, apperrors.New(apperrors.CodeTemplateNotFound, "no templates loaded")
	}
	return s.templates.Get(names[0])
}

func (s *Service) baseline(ctx context.Context, h model.Handle, m *media.Media) float64 {
	domainfba.ApplyMedia(h, m)
	if err := h.SetObjective(biomassReactionID(h), true); err != nil {
		return 0
	}
	result, err := h.Optimize(ctx)
	if err != nil || result.Status != model.StatusOptimal {
		return 0
	}
	return result.ObjectiveValue
}

func (s *Service) verify(ctx context.Context, h model.Handle, m *media.Media) float64 {
	return s.baseline(ctx, h, m)
}

func biomassReactionID(h model.Handle) string {
	return model.Summarize(h).BiomassReaction
}

// atpTestMediaToMedia converts the registry's fixed ATP test-media bundle
// into the media.Media shape the ATPCorrector collaborator consumes.
func atpTestMediaToMedia(bundle []template.ATPTestMedium) []media.Media {
	out := make([]media.Media, 0, len(bundle))
	for _, tm := range bundle {
		m := media.Media{Name: tm.ID, Compartment: "e0", Compounds: map[string]media.Bounds{}}
		for id, bounds := range tm.Bounds {
			m.Compounds[id] = media.Bounds{Lower: bounds[0], Upper: bounds[1]}
		}
		out = append(out, m)
	}
	return out
}

// integrateSolution applies §4.C5 step 6's solution-integration algorithm:
// skip EX_ entries, strip the compartment digit, materialize template
// reactions against h, set bounds from the direction token, and call
// AddExchangesToModel exactly once after the loop.
func (s *Service) integrateSolution(h model.Handle, tmpl *template.Template, solution domaingapfill.Solution) []string {
	var added []string
	for modelReactionID, dir := range solution.TemplateEntries() {
		tr, ok := tmpl.Lookup(modelReactionID)
		if !ok {
			s.logger.Warn("gapfill solution reaction not found in template; skipped",
				logging.String("reaction_id", modelReactionID),
				logging.String("template_key", template.StripCompartmentIndex(modelReactionID)),
			)
			continue
		}
		lower, upper := dir.Bounds()
		h.AddReaction(model.Reaction{
			ID:         modelReactionID,
			Name:       tr.Name,
			Equation:   tr.Equation,
			LowerBound: lower,
			UpperBound: upper,
			Reversible: lower < 0 && upper > 0,
		})
		added = append(added, modelReactionID)
	}
	h.AddExchangesToModel()
	sort.Strings(added)
	return added
}

func (s *Service) persist(h model.Handle, original *session.StoredModel, in Input, growthBefore, growthAfter float64, reactionsAdded []string, atpStats ATPStats, success bool) (Output, error) {
	parsed, err := modelstate.Parse(original.ID)
	if err != nil {
		return Output{}, apperrors.New(apperrors.CodeInvalidModelID, "stored model id is malformed").WithCause(err)
	}
	newID, err := s.store.MintUserID(parsed.Basename, func(base modelstate.ID) modelstate.ID {
		return modelstate.ID{Basename: base.Basename, Chain: append(append([]modelstate.Token(nil), parsed.Chain...), modelstate.TokenGF)}
	}, s.store.ModelExists)
	if err != nil {
		return Output{}, err
	}

	newStored := &session.StoredModel{
		ID:     newID,
		Handle: h,
		Metadata: session.ModelMetadata{
			Template:    original.Metadata.Template,
			IsGapfilled: true,
			GapfillStats: &session.GapfillMetadata{
				ReactionsAdded:    reactionsAdded,
				GrowthRateBefore:  growthBefore,
				GrowthRateAfter:   growthAfter,
				GapfillingSuccess: success,
				TargetGrowthRate:  in.TargetGrowthRate,
			},
		},
	}
	if err := s.store.StoreModel(newStored); err != nil {
		return Output{}, err
	}

	enrichment, coverage := s.enrich(reactionsAdded)

	return Output{
		ModelID:           newID,
		GrowthRateBefore:  growthBefore,
		GrowthRateAfter:   growthAfter,
		TargetGrowthRate:  in.TargetGrowthRate,
		GapfillSuccessful: success,
		ReactionsAdded:    reactionsAdded,
		ATPStats:          atpStats,
		Enrichment:        enrichment,
		PathwayCoverage:   coverage,
	}, nil
}

func (s *Service) enrich(reactionIDs []string) ([]ReactionEnrichment, PathwayCoverage) {
	coverage := PathwayCoverage{TotalAdded: len(reactionIDs)}
	if s.index == nil {
		return nil, coverage
	}
	pathwaySeen := map[string]struct{}{}
	enrichment := make([]ReactionEnrichment, 0, len(reactionIDs))
	for _, id := range reactionIDs {
		rec, err := s.index.GetReaction(id)
		if err != nil {
			coverage.WithoutPathway++
			continue
		}
		if len(rec.Pathways) == 0 {
			coverage.WithoutPathway++
		} else {
			coverage.WithPathway++
			for _, p := range rec.Pathways {
				pathwaySeen[p] = struct{}{}
			}
		}
		enrichment = append(enrichment, ReactionEnrichment{
			ReactionID: id,
			Name:       rec.Name,
			Equation:   rec.EquationWithNames,
			Pathways:   rec.Pathways,
		})
	}
	for p := range pathwaySeen {
		coverage.Pathways = append(coverage.Pathways, p)
	}
	sort.Strings(coverage.Pathways)
	return enrichment, coverage
}
