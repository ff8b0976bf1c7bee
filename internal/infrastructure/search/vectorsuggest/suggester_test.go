package vectorsuggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/config"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

func TestNewSuggester_EmptyAddrWrapsAsSearchIndexError(t *testing.T) {
	_, err := NewSuggester(config.MilvusConfig{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSearchIndexError, apperrors.GetCode(err))
}

func TestNewSuggester_UnreachableAddrWrapsAsSearchIndexError(t *testing.T) {
	_, err := NewSuggester(config.MilvusConfig{Addr: "127.0.0.1:1"}, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSearchIndexError, apperrors.GetCode(err))
}

func TestSuggester_CollectionName_AppliesPrefixAndPluralizesKind(t *testing.T) {
	s := &Suggester{collectionPrefix: "gemfluxmcp"}
	assert.Equal(t, "gemfluxmcp_compounds", s.collectionName("compound"))
	assert.Equal(t, "gemfluxmcp_reactions", s.collectionName("reaction"))
}

func TestNameEmbedding_IsDeterministicAndDimensionStable(t *testing.T) {
	a := nameEmbedding("D-Glucose")
	b := nameEmbedding("D-Glucose")
	require.Len(t, a, embeddingDim)
	assert.Equal(t, a, b)

	c := nameEmbedding("Water")
	assert.NotEqual(t, a, c)
}
