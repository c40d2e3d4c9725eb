package digitizer

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseSynthesizer draws the electronics noise amplitude seeded into
// every channel before signal is folded in. Each instance owns its
// random source: workers digitizing events in parallel must use their
// own, separately seeded synthesizer to keep results reproducible.
type NoiseSynthesizer struct {
	pmt  distuv.Normal
	sipm distuv.Normal
}

func NewNoiseSynthesizer(pmtSigma float64, sipmSigma float64, seed uint64) *NoiseSynthesizer {
	src := rand.NewPCG(seed, seed)
	return &NoiseSynthesizer{
		pmt:  distuv.Normal{Mu: 0, Sigma: pmtSigma, Src: src},
		sipm: distuv.Normal{Mu: 0, Sigma: sipmSigma, Src: src},
	}
}

// Generate draws a zero-mean noise energy for a channel of the given
// plane. A pure-noise channel has no measured edge, so no time is
// produced here; the merger assigns NoEdgeTime.
func (n *NoiseSynthesizer) Generate(region SensorType) float64 {
	switch region {
	case PMT:
		return n.pmt.Rand()
	default:
		return n.sipm.Rand()
	}
}
