// Package seed provides the default in-process implementations of the
// construction/gapfill collaborator interfaces: an in-memory model.Handle
// backed by a dense stoichiometric matrix and a Big-M simplex solve
// (internal/infrastructure/seed/simplex.go), a template-driven Builder, a
// template-driven gapfill Solver/ATPCorrector, and an HTTP Annotator client.
// It stands in for the ModelSEEDpy/COBRApy toolchain the source system
// calls out to.
package seed

import (
	"context"
	"regexp"
	"sort"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
)

// extracellularSuffix matches the ModelSEED extracellular-compartment tag
// (e.g. "_e0") a metabolite id must carry to get an exchange reaction.
var extracellularSuffix = regexp.MustCompile(`_e\d*$`)

// infBound is the finite sentinel used in place of true infinity for flux
// bounds, matching the convention already established by
// internal/domain/gapfill's Direction.Bounds.
const infBound = 1000.0

// Handle is the default model.Handle implementation: a reaction table plus
// a sparse stoichiometric matrix (metabolite id -> coefficient) per
// reaction, solved via solveLP on Optimize.
type Handle struct {
	reactions    map[string]model.Reaction
	stoich       map[string]map[string]float64 // reaction id -> metabolite id -> coefficient
	metabolites  map[string]struct{}
	genes        map[string]struct{}
	compartments map[string]struct{}
	objective    string
	maximize     bool
}

// NewHandle returns an empty Handle ready to be populated by a Builder.
func NewHandle() *Handle {
	return &Handle{
		reactions:    map[string]model.Reaction{},
		stoich:       map[string]map[string]float64{},
		metabolites:  map[string]struct{}{},
		genes:        map[string]struct{}{},
		compartments: map[string]struct{}{},
		maximize:     true,
	}
}

// AddReactionWithStoichiometry is the Builder-facing variant of
// AddReaction: it also records the metabolite coefficients the LP solve
// needs, and registers every metabolite/compartment it touches.
func (h *Handle) AddReactionWithStoichiometry(r model.Reaction, stoich map[string]float64, compartmentOf func(metaboliteID string) string) {
	h.reactions[r.ID] = r
	h.stoich[r.ID] = stoich
	for metID := range stoich {
		h.metabolites[metID] = struct{}{}
		if compartmentOf != nil {
			if c := compartmentOf(metID); c != "" {
				h.compartments[c] = struct{}{}
			}
		}
	}
}

// AddGene registers a gene id against the handle's gene set; construction
// builders call this once per translated protein.
func (h *Handle) AddGene(id string) { h.genes[id] = struct{}{} }

func (h *Handle) ReactionIDs() []string {
	ids := make([]string, 0, len(h.reactions))
	for id := range h.reactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Handle) Reaction(id string) (model.Reaction, bool) {
	r, ok := h.reactions[id]
	return r, ok
}

func (h *Handle) AddReaction(r model.Reaction) {
	h.reactions[r.ID] = r
	if _, ok := h.stoich[r.ID]; !ok {
		h.stoich[r.ID] = map[string]float64{}
	}
}

func (h *Handle) MetaboliteIDs() []string {
	ids := make([]string, 0, len(h.metabolites))
	for id := range h.metabolites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Handle) GeneIDs() []string {
	ids := make([]string, 0, len(h.genes))
	for id := range h.genes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Handle) Compartments() []string {
	ids := make([]string, 0, len(h.compartments))
	for id := range h.compartments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Handle) Medium() map[string][2]float64 {
	out := map[string][2]float64{}
	for id, r := range h.reactions {
		if r.IsExchange {
			out[id] = [2]float64{r.LowerBound, r.UpperBound}
		}
	}
	return out
}

// SetMedium implements the close-all-then-open contract: every exchange
// reaction is first reset to closed (0, infBound secretion-only default),
// then the entries supplied in medium are applied. Callers must never set
// individual exchange bounds incrementally as a substitute for this method.
func (h *Handle) SetMedium(medium map[string][2]float64) {
	for id, r := range h.reactions {
		if !r.IsExchange {
			continue
		}
		r.LowerBound = 0
		r.UpperBound = infBound
		h.reactions[id] = r
	}
	for id, bounds := range medium {
		r, ok := h.reactions[id]
		if !ok {
			continue
		}
		r.LowerBound = bounds[0]
		r.UpperBound = bounds[1]
		h.reactions[id] = r
	}
}

func (h *Handle) Objective() string        { return h.objective }
func (h *Handle) ObjectiveMaximize() bool   { return h.maximize }

func (h *Handle) SetObjective(reactionID string, maximize bool) error {
	if _, ok := h.reactions[reactionID]; !ok {
		return errReactionNotInModel(reactionID)
	}
	h.objective = reactionID
	h.maximize = maximize
	return nil
}

// DeepCopy returns an independent Handle sharing no mutable state with h,
// required by the gapfill pipeline's snapshot/verify/restore sequence.
func (h *Handle) DeepCopy() model.Handle {
	out := NewHandle()
	for id, r := range h.reactions {
		out.reactions[id] = r
	}
	for id, row := range h.stoich {
		cp := make(map[string]float64, len(row))
		for met, coeff := range row {
			cp[met] = coeff
		}
		out.stoich[id] = cp
	}
	for id := range h.metabolites {
		out.metabolites[id] = struct{}{}
	}
	for id := range h.genes {
		out.genes[id] = struct{}{}
	}
	for id := range h.compartments {
		out.compartments[id] = struct{}{}
	}
	out.objective = h.objective
	out.maximize = h.maximize
	return out
}

// Optimize builds the dense LP from the current reaction table and solves
// it with the package's Big-M simplex. A handle with no objective set
// returns StatusOther rather than guessing one.
func (h *Handle) Optimize(ctx context.Context) (model.OptimizeResult, error) {
	if h.objective == "" {
		return model.OptimizeResult{Status: model.StatusOther}, nil
	}
	if err := ctx.Err(); err != nil {
		return model.OptimizeResult{}, err
	}

	ids := h.ReactionIDs()
	metIDs := h.MetaboliteIDs()
	metRow := make(map[string]int, len(metIDs))
	for i, id := range metIDs {
		metRow[id] = i
	}

	lower := make([]float64, len(ids))
	upper := make([]float64, len(ids))
	objective := make([]float64, len(ids))
	stoich := make([][]float64, len(metIDs))
	for i := range stoich {
		stoich[i] = make([]float64, len(ids))
	}

	for j, id := range ids {
		r := h.reactions[id]
		lower[j] = r.LowerBound
		upper[j] = r.UpperBound
		if id == h.objective {
			objective[j] = 1
		}
		for met, coeff := range h.stoich[id] {
			stoich[metRow[met]][j] = coeff
		}
	}

	result := solveLP(lpProblem{
		varIDs:    ids,
		lower:     lower,
		upper:     upper,
		stoich:    stoich,
		objective: objective,
		maximize:  h.maximize,
	})

	return model.OptimizeResult{
		Status:         result.status,
		ObjectiveValue: result.objective,
		Fluxes:         result.fluxes,
	}, nil
}

// AddExchangesToModel adds a boundary exchange reaction for every
// extracellular metabolite that doesn't already have one, closed by
// default (0, 0) until a medium is applied. This mirrors the gapfill
// pipeline's single post-loop call contract: callers must invoke this
// exactly once after integrating a solution, never per reaction.
func (h *Handle) AddExchangesToModel() {
	for metID := range h.metabolites {
		if !extracellularSuffix.MatchString(metID) {
			continue
		}
		exID := model.ExchangeReactionID(metID)
		if _, ok := h.reactions[exID]; ok {
			continue
		}
		h.reactions[exID] = model.Reaction{
			ID:         exID,
			Name:       "Exchange for " + metID,
			LowerBound: 0,
			UpperBound: 0,
			IsExchange: true,
		}
		h.stoich[exID] = map[string]float64{metID: -1}
	}
}
