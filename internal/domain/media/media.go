// Package media defines StoredMedia: a mapping from compound id to a signed
// flux-bound pair, with a default uptake magnitude and per-compound
// overrides. Media are construction-semantics objects; translating them
// into the optimization library's exchange-id medium is the job of
// internal/domain/fba's media-application contract.
package media

import apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"

// Bounds is a (lower_bound, upper_bound) flux pair, using the construction
// convention of signed bounds on the compound's uptake/secretion rate.
type Bounds struct {
	Lower float64
	Upper float64
}

// Media is a mapping from compound id to Bounds, scoped to a single
// compartment (extracellular, by construction). DefaultUptake is applied
// when a compound is listed without explicit bounds.
type Media struct {
	Name          string
	Compartment   string
	DefaultUptake float64
	Compounds     map[string]Bounds
}

// New builds a Media with the given default uptake magnitude. The value is
// stored as given; SetDefaultUptake negates it to form the lower bound.
func New(name, compartment string, defaultUptake float64) *Media {
	return &Media{Name: name, Compartment: compartment, DefaultUptake: defaultUptake, Compounds: map[string]Bounds{}}
}

// Set assigns explicit bounds for a compound, validating that lower <= upper.
func (m *Media) Set(compoundID string, lower, upper float64) error {
	if lower > upper {
		return apperrors.New(apperrors.CodeInvalidMediaSet, "lower bound must not exceed upper bound").
			WithDetail(compoundID)
	}
	m.Compounds[compoundID] = Bounds{Lower: lower, Upper: upper}
	return nil
}

// SetDefaultUptake adds a compound at the media's default uptake bounds:
// (-DefaultUptake, +1000), representing unconstrained secretion and capped
// uptake.
func (m *Media) SetDefaultUptake(compoundID string) {
	m.Compounds[compoundID] = Bounds{Lower: -m.DefaultUptake, Upper: 1000}
}

// CompartmentBounds returns the compound_id -> (lb, ub) mapping for this
// media's compartment, the contract StoredMedia must expose to the
// optimization collaborator.
func (m *Media) CompartmentBounds() map[string][2]float64 {
	out := make(map[string][2]float64, len(m.Compounds))
	for id, b := range m.Compounds {
		out[id] = [2]float64{b.Lower, b.Upper}
	}
	return out
}
