package biochem

import (
	"github.com/bits-and-blooms/bloom/v3"
)

// negativeFilter wraps a pair of Bloom filters (one per record kind) used to
// short-circuit lookups and searches for ids that are definitely absent,
// without walking the full candidate set. A filter hit still requires the
// authoritative map lookup (false positives are expected); a filter miss is
// conclusive.
type negativeFilter struct {
	compounds *bloom.BloomFilter
	reactions *bloom.BloomFilter
}

// newNegativeFilter sizes each filter for n items at a 1% false-positive rate.
func newNegativeFilter(nCompounds, nReactions int) *negativeFilter {
	return &negativeFilter{
		compounds: bloom.NewWithEstimates(uint(maxUint(nCompounds, 1)), 0.01),
		reactions: bloom.NewWithEstimates(uint(maxUint(nReactions, 1)), 0.01),
	}
}

func (f *negativeFilter) addCompound(id string) { f.compounds.AddString(id) }
func (f *negativeFilter) addReaction(id string)  { f.reactions.AddString(id) }

// maybeHasCompound returns false only when id is guaranteed absent.
func (f *negativeFilter) maybeHasCompound(id string) bool { return f.compounds.TestString(id) }

// maybeHasReaction returns false only when id is guaranteed absent.
func (f *negativeFilter) maybeHasReaction(id string) bool { return f.reactions.TestString(id) }

func maxUint(a, b int) int {
	if a > b {
		return a
	}
	return b
}
