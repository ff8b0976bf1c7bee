package biochem_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbiochem "github.com/jplfaria/gem-flux-mcp/internal/app/biochem"
	domainbiochem "github.com/jplfaria/gem-flux-mcp/internal/domain/biochem"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

const compoundsTSV = "id\tname\tabbreviation\tformula\taliases\n" +
	"cpd00001\tWater\tH2O\tH2O\tKEGG: C00001\n" +
	"cpd00027\tD-Glucose\tglc-D\tC6H12O6\tKEGG: C00031\n"

const reactionsTSV = "id\tname\tabbreviation\tequation\tec_numbers\treversibility\tpathways\taliases\n" +
	"rxn00001\tTest reaction\trxn1\t(1) cpd00001_c0 <=> (1) cpd00027_c0\t1.1.1.1\t=\tGlycolysis\tKEGG: R00001\n"

type fakeSource struct{}

func (fakeSource) OpenCompounds(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(compoundsTSV)), nil
}
func (fakeSource) OpenReactions(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(reactionsTSV)), nil
}

type stubSuggester struct {
	suggestions []string
	err         error
}

func (s stubSuggester) Suggest(ctx context.Context, kind, query string, limit int) ([]string, error) {
	return s.suggestions, s.err
}

func testService(t *testing.T) *appbiochem.Service {
	t.Helper()
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	return appbiochem.New(idx, nil, nil, logging.NewNopLogger())
}

func TestService_GetCompound_Found(t *testing.T) {
	svc := testService(t)
	rec, err := svc.GetCompound("cpd00027")
	require.NoError(t, err)
	assert.Equal(t, "D-Glucose", rec.Name)
}

func TestService_GetCompound_NotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.GetCompound("cpd99999")
	require.Error(t, err)
}

func TestService_SearchCompounds_DefaultLimit(t *testing.T) {
	svc := testService(t)
	results, truncated, _ := svc.SearchCompounds(context.Background(), "glucose", 0)
	require.NotEmpty(t, results)
	assert.False(t, truncated)
	assert.Equal(t, "cpd00027", results[0].ID)
}

func TestService_GetReaction_Found(t *testing.T) {
	svc := testService(t)
	rec, err := svc.GetReaction("rxn00001")
	require.NoError(t, err)
	assert.Equal(t, "Test reaction", rec.Name)
}

func TestService_SearchCompounds_EmptyResultFallsBackToHeuristicWhenNoExternalTiersConfigured(t *testing.T) {
	svc := testService(t)
	results, _, suggestions := svc.SearchCompounds(context.Background(), "nonexistentcompound", 0)
	assert.Empty(t, results)
	assert.NotNil(t, suggestions)
}

func TestService_SearchCompounds_EmptyResultPrefersOpenSearchSuggestions(t *testing.T) {
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	svc := appbiochem.New(idx, stubSuggester{suggestions: []string{"D-Glucose-6-phosphate"}}, nil, logging.NewNopLogger())

	_, _, suggestions := svc.SearchCompounds(context.Background(), "nonexistentcompound", 0)
	assert.Equal(t, []string{"D-Glucose-6-phosphate"}, suggestions)
}

func TestService_SearchCompounds_FallsThroughToMilvusWhenOpenSearchEmpty(t *testing.T) {
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	svc := appbiochem.New(idx,
		stubSuggester{suggestions: nil},
		stubSuggester{suggestions: []string{"near-miss-compound"}},
		logging.NewNopLogger(),
	)

	_, _, suggestions := svc.SearchCompounds(context.Background(), "nonexistentcompound", 0)
	assert.Equal(t, []string{"near-miss-compound"}, suggestions)
}

func TestService_SearchCompounds_FallsBackToHeuristicWhenBothExternalTiersError(t *testing.T) {
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	svc := appbiochem.New(idx,
		stubSuggester{err: assert.AnError},
		stubSuggester{err: assert.AnError},
		logging.NewNopLogger(),
	)

	_, _, suggestions := svc.SearchCompounds(context.Background(), "nonexistentcompound", 0)
	assert.NotNil(t, suggestions)
}

func TestService_SearchReactions_PopulatedResultIgnoresExternalTiers(t *testing.T) {
	idx, _, err := domainbiochem.Load(context.Background(), fakeSource{})
	require.NoError(t, err)
	svc := appbiochem.New(idx, stubSuggester{suggestions: []string{"should-not-appear"}}, nil, logging.NewNopLogger())

	results, _, suggestions := svc.SearchReactions(context.Background(), "Test reaction", 0)
	require.NotEmpty(t, results)
	assert.Empty(t, suggestions)
}
