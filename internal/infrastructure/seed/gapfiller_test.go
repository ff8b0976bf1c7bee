package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/gapfill"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/media"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/model"
	"github.com/jplfaria/gem-flux-mcp/internal/domain/template"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func emptyTemplate() *template.Template {
	return &template.Template{
		Reactions:    map[string]template.TemplateReaction{},
		Metabolites:  map[string]struct{}{},
		Compartments: map[string]struct{}{},
	}
}

func TestGapfiller_Gapfill_AddsMissingTemplateReactionToReachTarget(t *testing.T) {
	h := NewHandle()
	h.AddReactionWithStoichiometry(model.Reaction{ID: "bio1", LowerBound: 0, UpperBound: 1000},
		map[string]float64{"cpd00002_c0": -1}, compartmentOfMetabolite)
	h.AddReactionWithStoichiometry(exchangeReaction("EX_cpd00027_e0", 0, 0),
		map[string]float64{"cpd00027_e0": -1}, compartmentOfMetabolite)
	require.NoError(t, h.SetObjective("bio1", true))

	tmpl := &template.Template{
		Reactions: map[string]template.TemplateReaction{
			"rxn00001_c": {TemplateID: "rxn00001_c", Name: "import and convert", Equation: "(1) cpd00027_e0 => (1) cpd00002_c0"},
		},
		Metabolites:  map[string]struct{}{"cpd00027_e0": {}, "cpd00002_c0": {}},
		Compartments: map[string]struct{}{"e0": {}, "c0": {}},
	}

	targetMedium := media.New("glucose_minimal", "e0", 10)
	require.NoError(t, targetMedium.Set("cpd00027_e0", -10, 1000))

	g := NewGapfiller(logging.NewNopLogger())
	sol, err := g.Gapfill(context.Background(), h, tmpl, targetMedium, 0.5)
	require.NoError(t, err)
	assert.Equal(t, gapfill.DirForward, sol["rxn00001_c0"])
}

func TestGapfiller_Gapfill_ReturnsExhaustedWhenTargetUnreachable(t *testing.T) {
	h := NewHandle()
	h.AddReaction(model.Reaction{ID: "bio1", LowerBound: 0, UpperBound: 0})
	require.NoError(t, h.SetObjective("bio1", true))

	g := NewGapfiller(logging.NewNopLogger())
	_, err := g.Gapfill(context.Background(), h, emptyTemplate(), media.New("empty", "e0", 10), 0.5)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeGapfillExhausted, apperrors.GetCode(err))
}

func TestGapfiller_Gapfill_SkipsReactionsAlreadyInModel(t *testing.T) {
	h := NewHandle()
	h.AddReaction(model.Reaction{ID: "bio1", LowerBound: 0, UpperBound: 1000})
	h.AddReaction(model.Reaction{ID: "rxn00001_c0"})
	require.NoError(t, h.SetObjective("bio1", true))

	tmpl := &template.Template{
		Reactions: map[string]template.TemplateReaction{
			"rxn00001_c": {TemplateID: "rxn00001_c", Equation: "(1) cpd00001_c0 => (1) cpd00002_c0"},
		},
		Metabolites:  map[string]struct{}{"cpd00001_c0": {}, "cpd00002_c0": {}},
		Compartments: map[string]struct{}{"c0": {}},
	}

	g := NewGapfiller(logging.NewNopLogger())
	_, err := g.Gapfill(context.Background(), h, tmpl, media.New("m", "e0", 10), 0)
	require.Error(t, err, "rxn00001_c0 must be skipped as already present, leaving no candidate to add and probe")
	assert.Equal(t, apperrors.CodeGapfillExhausted, apperrors.GetCode(err))
}

func TestGapfiller_Correct_AllMediaPassWithoutAddingReactions(t *testing.T) {
	h := NewHandle()
	h.AddReaction(model.Reaction{ID: model.ATPMaintenanceReactionID, LowerBound: 0, UpperBound: 1000})

	g := NewGapfiller(logging.NewNopLogger())
	testMedia := []media.Media{*media.New("anymedium", "e0", 10)}

	result, err := g.Correct(context.Background(), h, emptyTemplate(), testMedia)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NumPassed)
	assert.Equal(t, 0, result.NumFailed)
	assert.Empty(t, result.ReactionsAdded)
}

func TestGapfiller_Correct_ReturnsFailureWhenEveryMediumFails(t *testing.T) {
	h := NewHandle()
	h.AddReactionWithStoichiometry(model.Reaction{ID: model.ATPMaintenanceReactionID, LowerBound: 0, UpperBound: 1000},
		atpStoichiometry, compartmentOfMetabolite)

	g := NewGapfiller(logging.NewNopLogger())
	testMedia := []media.Media{*media.New("starved", "e0", 10)}

	result, err := g.Correct(context.Background(), h, emptyTemplate(), testMedia)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeATPCorrectionFail, apperrors.GetCode(err))
	assert.Equal(t, 1, result.NumFailed)
	assert.Equal(t, []string{"starved"}, result.FailedMediaIDs)
}

func TestGapfiller_Correct_RejectsForeignHandleImplementation(t *testing.T) {
	g := NewGapfiller(logging.NewNopLogger())
	_, err := g.Correct(context.Background(), foreignHandle{}, emptyTemplate(), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSolverFailure, apperrors.GetCode(err))
}

// foreignHandle is a minimal model.Handle that isn't this package's concrete
// Handle, used to exercise the "requires the seed package's concrete Handle"
// guard.
type foreignHandle struct{}

func (foreignHandle) ReactionIDs() []string                    { return nil }
func (foreignHandle) Reaction(string) (model.Reaction, bool)   { return model.Reaction{}, false }
func (foreignHandle) AddReaction(model.Reaction)                {}
func (foreignHandle) MetaboliteIDs() []string                  { return nil }
func (foreignHandle) GeneIDs() []string                        { return nil }
func (foreignHandle) Compartments() []string                   { return nil }
func (foreignHandle) Medium() map[string][2]float64            { return nil }
func (foreignHandle) SetMedium(map[string][2]float64)          {}
func (foreignHandle) Objective() string                        { return "" }
func (foreignHandle) ObjectiveMaximize() bool                  { return false }
func (foreignHandle) SetObjective(string, bool) error           { return nil }
func (foreignHandle) DeepCopy() model.Handle                    { return foreignHandle{} }
func (foreignHandle) Optimize(context.Context) (model.OptimizeResult, error) {
	return model.OptimizeResult{}, nil
}
func (foreignHandle) AddExchangesToModel() {}
