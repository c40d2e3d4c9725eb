package digitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvenanceFixedMultiplier(t *testing.T) {
	prov := NewProvenanceCombiner(OffsetFixedMultiplier, 1000000)

	assert.Equal(t, int64(0), prov.Offset(0, 0))
	assert.Equal(t, int64(2000000), prov.Offset(2, 0))
	// Mask is ignored under the fixed strategy
	assert.Equal(t, int64(1000000), prov.Offset(1, 555))
}

func TestProvenanceExternalMask(t *testing.T) {
	prov := NewProvenanceCombiner(OffsetExternalMask, 1000000)

	assert.Equal(t, int64(400), prov.Offset(0, 400))
	assert.Equal(t, int64(800), prov.Offset(3, 800))
}

func TestProvenanceDefaultMultiplier(t *testing.T) {
	prov := NewProvenanceCombiner(OffsetFixedMultiplier, 0)
	assert.Equal(t, DefaultOffsetMultiplier, prov.Offset(1, 0))
}

func TestProvenanceRemapLeavesInputUntouched(t *testing.T) {
	prov := NewProvenanceCombiner(OffsetFixedMultiplier, 1000000)
	primaries := []int64{1, 2, 3}

	shifted := prov.Remap(2, 0, primaries)

	assert.Equal(t, []int64{2000001, 2000002, 2000003}, shifted)
	assert.Equal(t, []int64{1, 2, 3}, primaries)
	assert.Nil(t, prov.Remap(1, 0, nil))
}

// Two sources with overlapping local id ranges must never alias after
// the remap.
func TestProvenanceNoAliasingAcrossSources(t *testing.T) {
	prov := NewProvenanceCombiner(OffsetFixedMultiplier, 1000000)
	local := []int64{1, 2, 3, 4, 5}

	seen := make(map[int64]bool)
	for source := 0; source < 4; source++ {
		for _, id := range prov.Remap(source, 0, local) {
			assert.False(t, seen[id], "global id %d assigned twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 20)
}
