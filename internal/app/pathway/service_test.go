package pathway

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	domainpathway "github.com/jplfaria/gem-flux-mcp/internal/domain/pathway"
	apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"
)

type fakeSource struct{}

func (fakeSource) OpenCompounds(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(
		"id\tname\tabbreviation\tformula\taliases\n" +
			"cpd00001\tWater\tH2O\tH2O\t\n" +
			"cpd00002\tATP\tATP\tC10H16N5O13P3\t\n",
	)), nil
}
func (fakeSource) OpenReactions(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(
		"id\tname\tabbreviation\tequation\tec_numbers\treversibility\tpathways\taliases\n" +
			"rxn00001\tR1\tr1\t(1) cpd00001[c0] <=> (1) cpd00002[c0]\t\t=\t\t\n",
	)), nil
}

type fakeQuerier struct {
	path  []domainpathway.Hop
	found bool
	err   error
}

func (f fakeQuerier) ShortestPath(ctx context.Context, from, to string, maxHops int) ([]domainpathway.Hop, bool, error) {
	return f.path, f.found, f.err
}

func testIndex(t *testing.T) *domainbiochem.Index {
	t.Helper()
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	return idx
}

func TestTrace_ReturnsPathWhenFound(t *testing.T) {
	svc := New(fakeQuerier{path: []domainpathway.Hop{{Reaction: "rxn00001", Compound: "cpd00002"}}, found: true}, testIndex(t))
	out, err := svc.Trace(context.Background(), Input{FromCompound: "cpd00001", ToCompound: "cpd00002"})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, DefaultMaxHops, out.MaxHops)
	require.Len(t, out.Path, 1)
}

func TestTrace_UnknownFromCompoundReturnsNotFound(t *testing.T) {
	svc := New(fakeQuerier{found: true}, testIndex(t))
	_, err := svc.Trace(context.Background(), Input{FromCompound: "cpd99999", ToCompound: "cpd00002"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCompoundNotFound, apperrors.GetCode(err))
}

func TestTrace_ClampsMaxHopsToCeiling(t *testing.T) {
	svc := New(fakeQuerier{found: false}, testIndex(t))
	out, err := svc.Trace(context.Background(), Input{FromCompound: "cpd00001", ToCompound: "cpd00002", MaxHops: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxAllowedHops, out.MaxHops)
}

func TestTrace_NotFoundWhenQuerierReportsNoPath(t *testing.T) {
	svc := New(fakeQuerier{found: false}, testIndex(t))
	out, err := svc.Trace(context.Background(), Input{FromCompound: "cpd00001", ToCompound: "cpd00002"})
	require.NoError(t, err)
	assert.False(t, out.Found)
}
