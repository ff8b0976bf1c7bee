package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEquationStoichiometry_SimpleReversible(t *testing.T) {
	stoich, err := parseEquationStoichiometry("(1) cpd00001_c0 <=> (1) cpd00027_c0")
	require.NoError(t, err)
	assert.Equal(t, -1.0, stoich["cpd00001_c0"])
	assert.Equal(t, 1.0, stoich["cpd00027_c0"])
}

func TestParseEquationStoichiometry_DefaultsCoefficientToOne(t *testing.T) {
	stoich, err := parseEquationStoichiometry("cpd00001_c0 => cpd00027_c0")
	require.NoError(t, err)
	assert.Equal(t, -1.0, stoich["cpd00001_c0"])
	assert.Equal(t, 1.0, stoich["cpd00027_c0"])
}

func TestParseEquationStoichiometry_MultipleTermsSameSide(t *testing.T) {
	stoich, err := parseEquationStoichiometry("(1) cpd00002_c0 + (1) cpd00001_c0 => (1) cpd00008_c0 + (1) cpd00009_c0")
	require.NoError(t, err)
	assert.Equal(t, -1.0, stoich["cpd00002_c0"])
	assert.Equal(t, -1.0, stoich["cpd00001_c0"])
	assert.Equal(t, 1.0, stoich["cpd00008_c0"])
	assert.Equal(t, 1.0, stoich["cpd00009_c0"])
}

func TestParseEquationStoichiometry_AccumulatesDuplicateTerms(t *testing.T) {
	stoich, err := parseEquationStoichiometry("(1) cpd00001_c0 + (1) cpd00001_c0 => (1) cpd00027_c0")
	require.NoError(t, err)
	assert.Equal(t, -2.0, stoich["cpd00001_c0"])
}

func TestParseEquationStoichiometry_RejectsUnrecognizedTerm(t *testing.T) {
	_, err := parseEquationStoichiometry("(1) notacompound => (1) cpd00027_c0")
	assert.Error(t, err)
}

func TestParseEquationStoichiometry_RejectsMissingArrow(t *testing.T) {
	_, err := parseEquationStoichiometry("cpd00001_c0 cpd00027_c0")
	assert.Error(t, err)
}

func TestEquationReversible(t *testing.T) {
	assert.True(t, equationReversible("(1) cpd00001_c0 <=> (1) cpd00027_c0"))
	assert.False(t, equationReversible("(1) cpd00001_c0 => (1) cpd00027_c0"))
	assert.False(t, equationReversible("(1) cpd00001_c0 <= (1) cpd00027_c0"))
	assert.False(t, equationReversible("not an equation"))
}

func TestSplitEquation_PrefersReversibleArrowOverForward(t *testing.T) {
	left, right, arrow, err := splitEquation("(1) cpd00001_c0 <=> (1) cpd00027_c0")
	require.NoError(t, err)
	assert.Equal(t, reversibleArrow, arrow)
	assert.Contains(t, left, "cpd00001_c0")
	assert.Contains(t, right, "cpd00027_c0")
}

func TestCompartmentOfMetabolite(t *testing.T) {
	assert.Equal(t, "c0", compartmentOfMetabolite("cpd00001_c0"))
	assert.Equal(t, "e0", compartmentOfMetabolite("cpd00027_e0"))
	assert.Equal(t, "", compartmentOfMetabolite("cpd00001"))
	assert.Equal(t, "", compartmentOfMetabolite("trailingunderscore_"))
}
