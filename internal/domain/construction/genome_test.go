package construction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/construction"
)

func TestInput_Validate_RejectsBothSources(t *testing.T) {
	in := construction.Input{
		FASTAPath:   "genome.faa",
		ProteinSeqs: map[string]string{"p1": "ACDEFG"},
	}
	assert.Error(t, in.Validate())
}

func TestInput_Validate_RejectsNeitherSource(t *testing.T) {
	in := construction.Input{}
	assert.Error(t, in.Validate())
}

func TestInput_Validate_AcceptsInlineSequences(t *testing.T) {
	in := construction.Input{ProteinSeqs: map[string]string{"p1": "ACDEFGHIK"}}
	assert.NoError(t, in.Validate())
}

func TestInput_Validate_AcceptsFASTAPath(t *testing.T) {
	in := construction.Input{FASTAPath: "genome.faa"}
	assert.NoError(t, in.Validate())
}

func TestInput_Validate_RejectsInvalidAminoAcids(t *testing.T) {
	in := construction.Input{ProteinSeqs: map[string]string{"p1": "ACDEFX123"}}
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p1")
}

func TestInput_Validate_RejectsEmptySequence(t *testing.T) {
	in := construction.Input{ProteinSeqs: map[string]string{"p1": "   "}}
	assert.Error(t, in.Validate())
}

func TestParseFASTA_MultipleRecords(t *testing.T) {
	data := []byte(">p1 description here\nACDEFG\nHIK\n>p2\nLMNPQR\n")
	genome, err := construction.ParseFASTA(data)
	require.NoError(t, err)
	assert.Equal(t, "ACDEFGHIK", genome.Proteins["p1"])
	assert.Equal(t, "LMNPQR", genome.Proteins["p2"])
	assert.Len(t, genome.Proteins, 2)
}

func TestParseFASTA_RejectsDuplicateIDs(t *testing.T) {
	data := []byte(">p1\nACDEFG\n>p1\nHIKLMN\n")
	_, err := construction.ParseFASTA(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate protein ids")
}

func TestParseFASTA_RejectsInvalidAminoAcids(t *testing.T) {
	data := []byte(">p1\nACDEFG123\n")
	_, err := construction.ParseFASTA(data)
	assert.Error(t, err)
}

func TestParseFASTA_TrimsHeaderAtWhitespace(t *testing.T) {
	data := []byte(">p1 some description\nACDEFG\n")
	genome, err := construction.ParseFASTA(data)
	require.NoError(t, err)
	_, ok := genome.Proteins["p1"]
	assert.True(t, ok)
}
