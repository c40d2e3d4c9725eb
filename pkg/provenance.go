package digitizer

// DefaultOffsetMultiplier separates the primary id ranges of
// consecutive sources under the fixed-multiplier strategy. Large
// enough that no simulated event comes near it in primary count.
const DefaultOffsetMultiplier int64 = 10000000

// ProvenanceCombiner shifts per-source primary ids into a single
// global id space, so primaries from independently numbered sources
// can never alias each other once merged into one digit.
type ProvenanceCombiner struct {
	strategy   OffsetStrategy
	multiplier int64
}

func NewProvenanceCombiner(strategy OffsetStrategy, multiplier int64) *ProvenanceCombiner {
	if multiplier <= 0 {
		multiplier = DefaultOffsetMultiplier
	}
	return &ProvenanceCombiner{strategy: strategy, multiplier: multiplier}
}

// Offset returns the id shift for a source. The mask comes with the
// source itself (provider-supplied) and is only honored under the
// external-mask strategy.
func (p *ProvenanceCombiner) Offset(sourceIndex int, mask int64) int64 {
	if p.strategy == OffsetExternalMask {
		return mask
	}
	return int64(sourceIndex) * p.multiplier
}

// Remap returns the shifted copy of a contribution's primary list.
// The input slice is left untouched, streams may be re-read.
func (p *ProvenanceCombiner) Remap(sourceIndex int, mask int64, primaries []int64) []int64 {
	if len(primaries) == 0 {
		return nil
	}
	offset := p.Offset(sourceIndex, mask)
	shifted := make([]int64, len(primaries))
	for i, id := range primaries {
		shifted[i] = id + offset
	}
	return shifted
}
