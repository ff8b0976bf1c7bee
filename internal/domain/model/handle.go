// Package model defines the Handle contract a constructed or gapfilled
// metabolic model must satisfy. The core treats a model as an opaque object
// produced by the construction/optimization collaborator; it only requires
// these capabilities, never the collaborator's internal representation.
package model

import "context"

// Reaction is the minimal reaction shape the core needs: bounds for medium
// application and gapfill integration, and enough metadata for statistics
// and enrichment.
type Reaction struct {
	ID            string
	Name          string
	LowerBound    float64
	UpperBound    float64
	Equation      string
	IsExchange    bool // true iff ID has the "EX_" prefix
	IsTransport   bool
	Reversible    bool
}

// Metabolite is the minimal metabolite shape the core needs.
type Metabolite struct {
	ID          string
	Compartment string
}

// OptimizeStatus classifies the solver's terminal state for one optimize
// call.
type OptimizeStatus string

const (
	StatusOptimal    OptimizeStatus = "optimal"
	StatusInfeasible OptimizeStatus = "infeasible"
	StatusUnbounded  OptimizeStatus = "unbounded"
	StatusOther      OptimizeStatus = "other"
)

// OptimizeResult is the outcome of one Handle.Optimize call.
type OptimizeResult struct {
	Status         OptimizeStatus
	ObjectiveValue float64
	Fluxes         map[string]float64
}

// Handle is the capability set the core requires of a stored model,
// regardless of which construction/optimization collaborator produced it.
// Side-channel metadata (template name, creation time, gapfill stats) is
// stored alongside a Handle by the session store, never inside it.
type Handle interface {
	// ReactionIDs enumerates every reaction id in the model.
	ReactionIDs() []string
	// Reaction returns the reaction with the given id.
	Reaction(id string) (Reaction, bool)
	// AddReaction inserts or replaces a reaction.
	AddReaction(r Reaction)

	// MetaboliteIDs enumerates every metabolite id.
	MetaboliteIDs() []string
	// GeneIDs enumerates every gene id.
	GeneIDs() []string
	// Compartments enumerates every compartment code (e.g. "c0", "e0").
	Compartments() []string

	// Medium returns the current exchange-reaction medium mapping:
	// exchange reaction id -> (lower_bound, upper_bound).
	Medium() map[string][2]float64
	// SetMedium replaces the medium in one shot: every exchange reaction is
	// first closed to uptake (lower bound 0) and then only the reactions present in
	// medium are reopened with the given bounds. Implementations MUST NOT
	// mutate exchange bounds one at a time; partial mutation would violate
	// the close-all-then-open contract relied on by FBA and gapfill baseline
	// checks (see internal/domain/fba).
	SetMedium(medium map[string][2]float64)

	// Objective returns the current objective reaction id.
	Objective() string
	// ObjectiveMaximize reports the current optimization direction.
	ObjectiveMaximize() bool
	// SetObjective sets the objective reaction and direction. Returns an
	// error if reactionID is not present in the model.
	SetObjective(reactionID string, maximize bool) error

	// DeepCopy returns an independent copy; mutating the copy must never
	// affect the receiver. Every gapfill and FBA mutation path operates on a
	// DeepCopy so the session-stored original is never observed partially
	// mutated.
	DeepCopy() Handle

	// Optimize runs the LP solve and returns the classified result.
	Optimize(ctx context.Context) (OptimizeResult, error)

	// AddExchangesToModel auto-generates boundary (EX_*) reactions required
	// by the current medium or a just-integrated gapfill solution. This is
	// the only sanctioned way to introduce exchange reactions; manually
	// synthesizing EX_* reactions desynchronizes bookkeeping the
	// collaborator maintains internally (stoichiometry, compartment
	// indexing) and is forbidden everywhere else in this codebase.
	AddExchangesToModel()
}

// Stats summarizes a Handle's shape for construction/gapfill responses.
type Stats struct {
	ReactionCount   int      `json:"reaction_count"`
	MetaboliteCount int      `json:"metabolite_count"`
	GeneCount       int      `json:"gene_count"`
	Compartments    []string `json:"compartments"`
	ExchangeCount   int      `json:"exchange_count"`
	ReversibleCount int      `json:"reversible_count"`
	TransportCount  int      `json:"transport_count"`
	BiomassReaction string   `json:"biomass_reaction,omitempty"` // "" if none found
}

// Summarize computes Stats from a Handle in a single pass.
func Summarize(h Handle) Stats {
	stats := Stats{Compartments: h.Compartments()}
	for _, id := range h.ReactionIDs() {
		r, ok := h.Reaction(id)
		if !ok {
			continue
		}
		stats.ReactionCount++
		if r.IsExchange {
			stats.ExchangeCount++
		}
		if r.Reversible {
			stats.ReversibleCount++
		}
		if r.IsTransport {
			stats.TransportCount++
		}
		if stats.BiomassReaction == "" && IsBiomassReactionID(id) {
			stats.BiomassReaction = id
		}
	}
	stats.MetaboliteCount = len(h.MetaboliteIDs())
	stats.GeneCount = len(h.GeneIDs())
	return stats
}

// IsBiomassReactionID applies the conventional ModelSEED biomass naming
// rule: the canonical whole-cell biomass reaction is "bio1", with "bio2"
// reserved for alternates; any id beginning with "bio" followed by digits
// is treated as a biomass reaction for statistics purposes.
func IsBiomassReactionID(id string) bool {
	if len(id) < 4 || id[:3] != "bio" {
		return false
	}
	for _, c := range id[3:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ATPMaintenanceReactionID is the conventional ModelSEED ATP-maintenance
// pseudo-reaction id, used both as the default ATP-correction objective and
// to check whether construction already attached one.
const ATPMaintenanceReactionID = "rxn00062_c0"

// ExchangeReactionID derives the exchange-reaction id for a compound id,
// the single translation point between construction semantics (compound
// ids) and optimization semantics (exchange-reaction ids). Both FBA medium
// application and gapfill baseline checks must call this helper rather than
// reimplementing the "EX_" + id convention inline.
func ExchangeReactionID(compoundID string) string {
	return "EX_" + compoundID
}
