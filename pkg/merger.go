package digitizer

// SourceMerger builds the pre-suppression digit collection for one
// event: a single dense sweep over the channel space that seeds every
// channel with noise and folds in the matching contributions from all
// source cursors. The sweep is dense on purpose, every channel needs a
// noise draw whether or not any source touches it, so the merge cannot
// jump from one signal channel to the next.
type SourceMerger struct {
	geom  Geometry
	noise *NoiseSynthesizer
	prov  *ProvenanceCombiner
	cal   Calibrator
}

func NewSourceMerger(geom Geometry, noise *NoiseSynthesizer, prov *ProvenanceCombiner, cal Calibrator) *SourceMerger {
	return &SourceMerger{geom: geom, noise: noise, prov: prov, cal: cal}
}

// checkHead validates the contribution under a source's cursor against
// the channel space and the ascending order precondition. minChannel
// is the lowest channel the head may still legally sit at (equal to
// the channel being merged, so repeated entries there pass), previous
// the last channel consumed from that source.
func (m *SourceMerger) checkHead(sourceIndex int, minChannel int, previous int, sources []Source) error {
	contrib, ok := sources[sourceIndex].Stream.Peek()
	if !ok {
		return nil
	}
	total := m.geom.TotalChannels()
	if contrib.Channel < 1 || contrib.Channel > total {
		return &ErrChannelOutOfRange{Source: sourceIndex, Channel: contrib.Channel, Total: total}
	}
	if contrib.Channel < minChannel {
		return &ErrCorruptInputOrder{Source: sourceIndex, Channel: contrib.Channel, Previous: previous}
	}
	return nil
}

// nextSignalChannel is the minimum channel id under any active cursor,
// or total+1 once every source is exhausted.
func (m *SourceMerger) nextSignalChannel(sources []Source) int {
	next := m.geom.TotalChannels() + 1
	for i := range sources {
		if contrib, ok := sources[i].Stream.Peek(); ok && contrib.Channel < next {
			next = contrib.Channel
		}
	}
	return next
}

// Merge runs the sweep. On any fatal condition the event is aborted
// and no collection is returned. Runs in O(channels + contributions).
func (m *SourceMerger) Merge(sources []Source) (*DigitCollection, error) {
	if m.cal == nil {
		return nil, &ErrMissingCalibrator{}
	}
	total := m.geom.TotalChannels()

	// An empty stream is fine, its channels come out noise-only. A
	// head outside the channel space is a configuration error and
	// aborts before anything is produced.
	for i := range sources {
		if err := m.checkHead(i, 1, 0, sources); err != nil {
			return nil, err
		}
	}

	collection := &DigitCollection{Digits: make([]Digit, 0, total)}
	times := make([]float64, 0, len(sources))
	nextSignal := m.nextSignalChannel(sources)

	for channel := 1; channel <= total; channel++ {
		region := m.geom.RegionOf(channel)
		digit := Digit{
			Channel:   channel,
			Amplitude: m.cal.Digitize(region, m.noise.Generate(region)),
			Time:      NoEdgeTime,
			Index:     -1,
		}

		if channel == nextSignal {
			times = times[:0]
			// Ties between sources resolve by source index; one
			// source may contribute several times at the same
			// channel, all of them are folded in before moving on.
			for i := range sources {
				for {
					contrib, ok := sources[i].Stream.Peek()
					if !ok || contrib.Channel != channel {
						break
					}
					digit.Amplitude += contrib.Amplitude
					times = append(times, contrib.Time)
					digit.Primaries = append(digit.Primaries,
						m.prov.Remap(i, sources[i].Mask, contrib.Primaries)...)
					sources[i].Stream.Advance()
					if err := m.checkHead(i, channel, channel, sources); err != nil {
						return nil, err
					}
				}
			}
			digit.Time = FrontEdgeTime(times)
			nextSignal = m.nextSignalChannel(sources)
		}

		collection.Digits = append(collection.Digits, digit)
	}

	return collection, nil
}
