package biochem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegativeFilter_MaybeHasAfterAdd(t *testing.T) {
	f := newNegativeFilter(10, 10)
	f.addCompound("cpd00027")
	f.addReaction("rxn00001")

	assert.True(t, f.maybeHasCompound("cpd00027"))
	assert.True(t, f.maybeHasReaction("rxn00001"))
}

func TestNegativeFilter_ConclusiveMissForAbsentID(t *testing.T) {
	f := newNegativeFilter(10, 10)
	f.addCompound("cpd00027")

	assert.False(t, f.maybeHasCompound("cpd99999"))
	assert.False(t, f.maybeHasReaction("rxn00001"))
}

func TestMaxUint(t *testing.T) {
	assert.Equal(t, 5, maxUint(5, 3))
	assert.Equal(t, 3, maxUint(1, 3))
}
