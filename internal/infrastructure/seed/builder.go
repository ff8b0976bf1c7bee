package seed

import (
	"context"

	domainconstruction "github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// atpStoichiometry is the fixed ATP-hydrolysis reaction
// (atp + h2o => adp + pi + h) materialized whenever a draft model is
// missing the maintenance reaction, expressed in core-compartment
// ModelSEED compound ids.
var atpStoichiometry = map[string]float64{
	"cpd00002_c0": -1, // ATP
	"cpd00001_c0": -1, // H2O
	"cpd00008_c0": 1,  // ADP
	"cpd00009_c0": 1,  // Pi
	"cpd00067_c0": 1,  // H+
}

// Builder is the default construction.Builder implementation: it
// materializes every template reaction into a model-space Handle. It
// stands in for ModelSEEDpy's MSBuilder, simplified to treat genome
// evidence as "this organism's proteome is present" rather than resolving
// individual gene-protein-reaction associations — a reconstruction tool
// with a real annotation pipeline would instead gate each template
// reaction on the genes it draws evidence from.
type Builder struct {
	logger logging.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(logger logging.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build instantiates every template reaction into the returned Handle and
// registers every protein in genome as a gene. A template reaction whose
// equation the parser can't decode is skipped whole, with a warning log,
// rather than failing the whole build.
func (b *Builder) Build(ctx context.Context, genome *domainconstruction.Genome, tmpl *template.Template) (model.Handle, error) {
	h := NewHandle()
	for proteinID := range genome.Proteins {
		h.AddGene(proteinID)
	}

	for _, trxn := range tmpl.Reactions {
		stoich, err := parseEquationStoichiometry(trxn.Equation)
		if err != nil {
			b.logger.Warn("skipped template reaction with unparsable equation",
				logging.String("template_id", trxn.TemplateID),
				logging.String("reason", err.Error()),
			)
			continue
		}

		lower, upper := -infBound, infBound
		if !equationReversible(trxn.Equation) {
			lower = 0
		}

		modelID := trxn.TemplateID + "0"
		h.AddReactionWithStoichiometry(model.Reaction{
			ID:         modelID,
			Name:       trxn.Name,
			Equation:   trxn.Equation,
			LowerBound: lower,
			UpperBound: upper,
			Reversible: equationReversible(trxn.Equation),
		}, stoich, compartmentOfMetabolite)
	}

	return h, nil
}

// EnsureATPMaintenance adds the fixed ATP-maintenance reaction when the
// handle doesn't already carry one. It type-asserts to the package's
// concrete Handle to attach stoichiometry; a foreign model.Handle
// implementation still gets a bounds-only reaction via the interface.
func (b *Builder) EnsureATPMaintenance(h model.Handle) {
	if _, ok := h.Reaction(model.ATPMaintenanceReactionID); ok {
		return
	}
	rxn := model.Reaction{
		ID:         model.ATPMaintenanceReactionID,
		Name:       "ATP maintenance",
		LowerBound: 0,
		UpperBound: infBound,
	}
	if concrete, ok := h.(*Handle); ok {
		concrete.AddReactionWithStoichiometry(rxn, atpStoichiometry, compartmentOfMetabolite)
		return
	}
	h.AddReaction(rxn)
}
