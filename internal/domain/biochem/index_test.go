package biochem_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

const compoundsTSV = "id\tname\tabbreviation\tformula\taliases\n" +
	"cpd00001\tWater\tH2O\tH2O\tKEGG: C00001\n" +
	"cpd00027\tD-Glucose\tglc-D\tC6H12O6\tKEGG: C00031\n"

const reactionsTSV = "id\tname\tabbreviation\tequation\tec_numbers\treversibility\tpathways\taliases\n" +
	"rxn00001\tTest reaction\trxn1\t(1) cpd00001_c0 <=> (1) cpd00027_c0\t1.1.1.1\t=\tGlycolysis\tKEGG: R00001\n"

type fakeSource struct {
	compounds, reactions string
}

func (f fakeSource) OpenCompounds(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.compounds)), nil
}
func (f fakeSource) OpenReactions(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(f.reactions)), nil
}

func loadTestIndex(t *testing.T) *biochem.Index {
	t.Helper()
	idx, _, err := biochem.Load(context.Background(), fakeSource{compounds: compoundsTSV, reactions: reactionsTSV})
	require.NoError(t, err)
	return idx
}

func TestLoad_ParsesRecords(t *testing.T) {
	idx, stats, err := biochem.Load(context.Background(), fakeSource{compounds: compoundsTSV, reactions: reactionsTSV})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CompoundCount)
	assert.Equal(t, 1, stats.ReactionCount)
	assert.NotEmpty(t, stats.Warnings) // below minimum expected counts

	rec, err := idx.GetCompound("cpd00027")
	require.NoError(t, err)
	assert.Equal(t, "D-Glucose", rec.Name)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	badTSV := "id\tname\n" + "cpd00001\tWater\n"
	_, _, err := biochem.Load(context.Background(), fakeSource{compounds: badTSV, reactions: reactionsTSV})
	require.Error(t, err)
}

func TestGetCompound_InvalidIDShape(t *testing.T) {
	idx := loadTestIndex(t)
	_, err := idx.GetCompound("water")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidParam, apperrors.GetCode(err))
}

func TestGetCompound_NotFound(t *testing.T) {
	idx := loadTestIndex(t)
	_, err := idx.GetCompound("cpd99999")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCompoundNotFound, apperrors.GetCode(err))
}

func TestGetReaction_NotFound(t *testing.T) {
	idx := loadTestIndex(t)
	_, err := idx.GetReaction("rxn99999")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeReactionNotFound, apperrors.GetCode(err))
}

func TestGetReaction_Found(t *testing.T) {
	idx := loadTestIndex(t)
	rec, err := idx.GetReaction("rxn00001")
	require.NoError(t, err)
	assert.Equal(t, biochem.Reversible, rec.Reversibility)
	assert.Equal(t, []string{"1.1.1.1"}, rec.ECNumbers)
	assert.Equal(t, []string{"Glycolysis"}, rec.Pathways)
}

func TestSearchCompounds_ExactIDTakesPriority(t *testing.T) {
	idx := loadTestIndex(t)
	results, truncated, _ := idx.SearchCompounds("cpd00027", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "cpd00027", results[0].ID)
	assert.Equal(t, "exact", results[0].MatchType)
	assert.False(t, truncated)
}

func TestSearchCompounds_PartialNameMatch(t *testing.T) {
	idx := loadTestIndex(t)
	results, _, _ := idx.SearchCompounds("glucose", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "cpd00027", results[0].ID)
}

func TestSearchCompounds_NoMatchReturnsSuggestions(t *testing.T) {
	idx := loadTestIndex(t)
	results, _, _ := idx.SearchCompounds("zzznomatch", 10)
	assert.Empty(t, results)
}

func TestSearchCompounds_TruncatesToLimit(t *testing.T) {
	idx := loadTestIndex(t)
	results, truncated, _ := idx.SearchCompounds("e", 1)
	assert.Len(t, results, 1)
	assert.True(t, truncated)
}

func TestSearchReactions_ExactECMatch(t *testing.T) {
	idx := loadTestIndex(t)
	results, _, _ := idx.SearchReactions("1.1.1.1", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "rxn00001", results[0].ID)
	assert.Equal(t, "ec_numbers", results[0].MatchField)
}

func TestSearchReactions_PathwaySubstringMatch(t *testing.T) {
	idx := loadTestIndex(t)
	results, _, _ := idx.SearchReactions("glycol", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, "rxn00001", results[0].ID)
}

const reactionsTSVWithDefinition = "id\tname\tabbreviation\tequation\tdefinition\tec_numbers\treversibility\tpathways\taliases\n" +
	"rxn00001\tTest reaction\trxn1\t(1) cpd00001_c0 <=> (1) cpd00027_c0\tWater <=> D-Glucose\t1.1.1.1\t=\tGlycolysis\tKEGG: R00001\n" +
	"rxn00002\tBlank definition reaction\trxn2\t(1) cpd00001_c0 <=> (1) cpd00027_c0\t\t1.1.1.1\t=\tGlycolysis\tKEGG: R00001\n"

func TestGetReaction_EquationWithNames_PrefersDefinitionColumn(t *testing.T) {
	idx, _, err := biochem.Load(context.Background(), fakeSource{compounds: compoundsTSV, reactions: reactionsTSVWithDefinition})
	require.NoError(t, err)
	rec, err := idx.GetReaction("rxn00001")
	require.NoError(t, err)
	assert.Equal(t, "Water <=> D-Glucose", rec.EquationWithNames)
}

func TestGetReaction_EquationWithNames_FallsBackToIDSubstitution(t *testing.T) {
	idx, _, err := biochem.Load(context.Background(), fakeSource{compounds: compoundsTSV, reactions: reactionsTSVWithDefinition})
	require.NoError(t, err)
	rec, err := idx.GetReaction("rxn00002")
	require.NoError(t, err)
	assert.Equal(t, "(1) Water_c0 <=> (1) D-Glucose_c0", rec.EquationWithNames)
}
