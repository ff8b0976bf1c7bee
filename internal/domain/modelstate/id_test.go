package modelstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jplfaria/gem-flux-mcp/internal/domain/modelstate"
)

func TestParse_RoundTrips(t *testing.T) {
	cases := []string{
		"ecoli",
		"ecoli.draft",
		"ecoli.draft.gf",
		"ecoli.draft.gf.gf",
	}
	for _, id := range cases {
		t.Run(id, func(t *testing.T) {
			parsed, err := modelstate.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, parsed.String())
		})
	}
}

func TestParse_RejectsUnknownToken(t *testing.T) {
	_, err := modelstate.Parse("ecoli.bogus")
	assert.Error(t, err)
}

func TestParse_RejectsEmptyBasename(t *testing.T) {
	_, err := modelstate.Parse(".draft")
	assert.Error(t, err)
}

func TestParse_RejectsInvalidBasenameChars(t *testing.T) {
	_, err := modelstate.Parse("eco li.draft")
	assert.Error(t, err)
}

func TestID_WithDraft(t *testing.T) {
	id := modelstate.ID{Basename: "ecoli"}.WithDraft()
	assert.Equal(t, "ecoli.draft", id.String())
	assert.Equal(t, "draft", id.State())
}

func TestID_WithGapfillAppended_NeverDeduplicates(t *testing.T) {
	id := modelstate.ID{Basename: "ecoli"}.WithDraft()
	id = id.WithGapfillAppended()
	id = id.WithGapfillAppended()
	assert.Equal(t, "ecoli.draft.gf.gf", id.String())
	assert.Equal(t, "gapfilled", id.State())
}

func TestID_State_UnknownForBareBasename(t *testing.T) {
	id := modelstate.ID{Basename: "ecoli"}
	assert.Equal(t, "unknown", id.State())
}

func TestID_State_DraftWithoutGF(t *testing.T) {
	id, err := modelstate.Parse("ecoli.draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", id.State())
}
