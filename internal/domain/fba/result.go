// Package fba defines the FBAResult shape, the canonical media-application
// contract (the compound-id/exchange-id translation point), and the
// deterministic interpretation rules applied to a completed solve.
package fba

import (
	"sort"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
)

// DefaultFluxThreshold is applied when a caller doesn't specify one.
const DefaultFluxThreshold = 1e-6

// Result is the full FBA outcome: status, objective value, the thresholded
// flux vector, its uptake/secretion classification, and a top-N summary.
type Result struct {
	Status          model.OptimizeStatus      `json:"status"`
	ObjectiveValue  float64                   `json:"objective_value"`
	Fluxes          map[string]float64        `json:"fluxes"`
	ActiveReactions int                       `json:"active_reactions"`
	UptakeFluxes    []EnrichedFlux            `json:"uptake_fluxes"`
	SecretionFluxes []EnrichedFlux            `json:"secretion_fluxes"`
	TopFluxes       []EnrichedFlux            `json:"top_fluxes"`
}

// EnrichedFlux pairs a reaction id and flux value with its human-readable
// name, resolved from the biochemistry index where possible.
type EnrichedFlux struct {
	ReactionID string  `json:"reaction_id"`
	Name       string  `json:"name,omitempty"`
	Flux       float64 `json:"flux"`
}

// ApplyMedia is the single canonical translation point between construction
// semantics (compound id, signed bounds) and optimization semantics
// (exchange-reaction id, positive uptake magnitude). It is used by both FBA
// and the gapfill pipeline's baseline/verification checks so the
// cpd_xxx_e0 -> EX_cpd_xxx_e0 translation lives in exactly one place.
//
// For each compound in m's compartment, the corresponding exchange reaction
// id is derived via model.ExchangeReactionID; if present in h, its positive
// uptake magnitude |lower_bound| is recorded. Compounds with no matching
// exchange reaction are skipped (logged by the caller, not here). The
// resulting map is assigned to h in one SetMedium call so the collaborator's
// close-all-then-open semantics apply atomically; no caller may set
// individual exchange bounds as a substitute.
func ApplyMedia(h model.Handle, m *media.Media) (applied map[string]float64, skipped []string) {
	applied = map[string]float64{}
	medium := map[string][2]float64{}
	for compoundID, bounds := range m.CompartmentBounds() {
		exID := model.ExchangeReactionID(compoundID)
		if _, ok := h.Reaction(exID); !ok {
			skipped = append(skipped, compoundID)
			continue
		}
		uptake := bounds[0]
		if uptake > 0 {
			uptake = -uptake
		}
		medium[exID] = [2]float64{uptake, bounds[1]}
		applied[exID] = -uptake
	}
	h.SetMedium(medium)
	sort.Strings(skipped)
	return applied, skipped
}

// Classify splits a thresholded flux vector into uptake/secretion entries
// for every exchange reaction, dropping |flux| < threshold, and enriches
// each entry with a display name via nameOf.
func Classify(h model.Handle, fluxes map[string]float64, threshold float64, nameOf func(reactionID string) string) (active int, uptake, secretion []EnrichedFlux) {
	for id, flux := range fluxes {
		if abs(flux) < threshold {
			continue
		}
		active++
		r, ok := h.Reaction(id)
		if !ok || !r.IsExchange {
			continue
		}
		ef := EnrichedFlux{ReactionID: id, Flux: flux, Name: nameOf(id)}
		if flux < 0 {
			uptake = append(uptake, ef)
		} else {
			secretion = append(secretion, ef)
		}
	}
	sort.Slice(uptake, func(i, j int) bool { return uptake[i].ReactionID < uptake[j].ReactionID })
	sort.Slice(secretion, func(i, j int) bool { return secretion[i].ReactionID < secretion[j].ReactionID })
	return active, uptake, secretion
}

// TopN returns the n entries of fluxes with the largest absolute magnitude,
// enriched with reaction names via nameOf.
func TopN(fluxes map[string]float64, threshold float64, n int, nameOf func(reactionID string) string) []EnrichedFlux {
	type entry struct {
		id   string
		flux float64
	}
	var entries []entry
	for id, flux := range fluxes {
		if abs(flux) >= threshold {
			entries = append(entries, entry{id, flux})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return abs(entries[i].flux) > abs(entries[j].flux) })
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]EnrichedFlux, len(entries))
	for i, e := range entries {
		out[i] = EnrichedFlux{ReactionID: e.id, Flux: e.flux, Name: nameOf(e.id)}
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
