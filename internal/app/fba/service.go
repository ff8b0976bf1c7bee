// Package fba implements the run_fba use case (C6): apply a stored media's
// bounds to a deep copy of a stored model, optionally override the
// objective, solve, classify and enrich the flux vector, and attach the
// deterministic interpretation.
package fba

import (
	"context"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	domainfba "github.com/jplfaria/gem-flux-mcp/internal/domain/fba"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// Service wraps domain/fba with session lookups and biochemistry-index
// name enrichment. It never mutates a stored model's Handle in place: every
// solve operates on a DeepCopy.
type Service struct {
	store  *session.Store
	index  *domainbiochem.Index
	logger logging.Logger
}

// New constructs a Service.
func New(store *session.Store, index *domainbiochem.Index, logger logging.Logger) *Service {
	return &Service{store: store, index: index, logger: logger}
}

// RunInput is the tool-facing request shape for run_fba.
type RunInput struct {
	ModelID          string
	MediaID          string
	ObjectiveOverride string
	MaximizeOverride  *bool
	FluxThreshold     float64
	TopN              int
}

// RunOutput is the tool-facing response shape.
type RunOutput struct {
	Result         domainfba.Result
	Interpretation domainfba.Interpretation
	SkippedMedia   []string
}

// Run executes one FBA solve against a stored model and stored media,
// never mutating the session-stored original.
func (s *Service) Run(ctx context.Context, in RunInput) (RunOutput, error) {
	sm, err := s.store.RetrieveModel(in.ModelID)
	if err != nil {
		return RunOutput{}, err
	}
	stored, err := s.store.RetrieveMedia(in.MediaID)
	if err != nil {
		return RunOutput{}, err
	}

	h := sm.Handle.DeepCopy()

	applied, skipped := domainfba.ApplyMedia(h, stored.Media)
	if len(skipped) > 0 {
		s.logger.Warn("media compounds skipped: no matching exchange reaction",
			logging.String("model_id", in.ModelID),
			logging.String("media_id", in.MediaID),
			logging.Int("skipped_count", len(skipped)),
		)
	}
	_ = applied

	if in.ObjectiveOverride != "" {
		maximize := true
		if in.MaximizeOverride != nil {
			maximize = *in.MaximizeOverride
		}
		if err := h.SetObjective(in.ObjectiveOverride, maximize); err != nil {
			return RunOutput{}, apperrors.Wrap(err, apperrors.CodeInvalidParam, "objective override reaction not found in model")
		}
	}

	optResult, err := h.Optimize(ctx)
	if err != nil {
		return RunOutput{}, apperrors.Wrap(err, apperrors.CodeSolverFailure, "FBA solve failed")
	}

	threshold := in.FluxThreshold
	if threshold <= 0 {
		threshold = domainfba.DefaultFluxThreshold
	}
	topN := in.TopN
	if topN <= 0 {
		topN = 10
	}

	active, uptake, secretion := domainfba.Classify(h, optResult.Fluxes, threshold, s.nameOf)
	top := domainfba.TopN(optResult.Fluxes, threshold, topN, s.nameOf)

	result := domainfba.Result{
		Status:          optResult.Status,
		ObjectiveValue:  optResult.ObjectiveValue,
		Fluxes:          optResult.Fluxes,
		ActiveReactions: active,
		UptakeFluxes:    uptake,
		SecretionFluxes: secretion,
		TopFluxes:       top,
	}

	interp := domainfba.Interpret(result, s.isCarbonContaining)

	return RunOutput{Result: result, Interpretation: interp, SkippedMedia: skipped}, nil
}

func (s *Service) nameOf(reactionID string) string {
	if s.index == nil {
		return ""
	}
	rec, err := s.index.GetReaction(reactionID)
	if err != nil {
		return ""
	}
	return rec.Name
}

// isCarbonContaining reports whether an exchange reaction's compound is
// known to contain carbon, based on its formula in the biochemistry index.
func (s *Service) isCarbonContaining(exchangeReactionID string) bool {
	if s.index == nil {
		return false
	}
	compoundID := exchangeReactionID
	const prefix = "EX_"
	if len(compoundID) > len(prefix) && compoundID[:len(prefix)] == prefix {
		compoundID = compoundID[len(prefix):]
	}
	rec, err := s.index.GetCompound(stripCompartmentSuffix(compoundID))
	if err != nil {
		return false
	}
	return containsCarbon(rec.Formula)
}

func stripCompartmentSuffix(id string) string {
	for i := len(id) - 1; i > 0; i-- {
		if id[i] == '_' {
			return id[:i]
		}
	}
	return id
}

func containsCarbon(formula string) bool {
	for i := 0; i < len(formula); i++ {
		if formula[i] == 'C' {
			if i+1 < len(formula) && formula[i+1] == 'l' {
				continue // Cl (chlorine), not carbon
			}
			return true
		}
	}
	return false
}
