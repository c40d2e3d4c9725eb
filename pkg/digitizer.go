package digitizer

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Digitizer drives the whole per-event pipeline: merge (noise seeding
// plus signal folding), threshold suppression, compaction. The noise
// synthesizer is the only stateful part, so workers running events in
// parallel each get their own Digitizer with its own seed.
type Digitizer struct {
	geom   Geometry
	merger *SourceMerger
	filter *ThresholdFilter
}

func NewDigitizer(config Configuration, seed uint64) *Digitizer {
	geom := Geometry{NPmts: config.NPmts, NSipms: config.NSipms}
	cal := NewLinearCalibrator(config)
	noise := NewNoiseSynthesizer(config.PmtNoiseSigma, config.SipmNoiseSigma, seed)
	prov := NewProvenanceCombiner(config.OffsetStrategy, config.OffsetMultiplier)
	return &Digitizer{
		geom:   geom,
		merger: NewSourceMerger(geom, noise, prov, cal),
		filter: NewThresholdFilter(geom, cal, config.PmtThreshold, config.SipmThreshold),
	}
}

// Digitize processes one event's sources into the final compacted
// collection. On a fatal condition the event is aborted and nothing
// is returned; partial collections are never published.
func (d *Digitizer) Digitize(sources []Source) (*DigitCollection, error) {
	collection, err := d.merger.Merge(sources)
	if err != nil {
		return nil, err
	}
	if err := d.filter.Suppress(collection); err != nil {
		return nil, err
	}
	collection.Compact()
	return collection, nil
}

// DigitizeFrom pulls one event's sources from a provider and runs the
// pipeline on them.
func (d *Digitizer) DigitizeFrom(provider SourceProvider, eventID uint32) (*DigitCollection, error) {
	sources, err := provider.Sources(eventID)
	if err != nil {
		return nil, fmt.Errorf("error getting sources for event %d: %w", eventID, err)
	}
	return d.Digitize(sources)
}

// Snapshot captures the parameters an event was digitized with, to be
// stored next to the digits themselves. Entries come out sorted by
// name so files stay byte-comparable across runs.
func Snapshot(config Configuration, seed uint64) []Param {
	strategy := 0.
	if config.OffsetStrategy == OffsetExternalMask {
		strategy = 1.
	}
	multiplier := config.OffsetMultiplier
	if multiplier <= 0 {
		multiplier = DefaultOffsetMultiplier
	}
	values := map[string]float64{
		"n_pmts":            float64(config.NPmts),
		"n_sipms":           float64(config.NSipms),
		"pmt_noise_sigma":   config.PmtNoiseSigma,
		"sipm_noise_sigma":  config.SipmNoiseSigma,
		"pmt_threshold":     config.PmtThreshold,
		"sipm_threshold":    config.SipmThreshold,
		"pmt_pedestal":      config.PmtPedestal,
		"pmt_slope":         config.PmtSlope,
		"sipm_pedestal":     config.SipmPedestal,
		"sipm_slope":        config.SipmSlope,
		"offset_strategy":   strategy,
		"offset_multiplier": float64(multiplier),
		"random_seed":       float64(seed),
	}
	names := maps.Keys(values)
	slices.Sort(names)
	params := make([]Param, len(names))
	for i, name := range names {
		params[i] = Param{Name: name, Value: values[name]}
	}
	return params
}

// PrintDigits logs a digit table, one line per surviving digit.
func PrintDigits(collection *DigitCollection) {
	if logger == nil {
		return
	}
	logger.Info(fmt.Sprintf("%d digits after suppression", len(collection.Digits)), "digitizer")
	for _, digit := range collection.Digits {
		message := fmt.Sprintf("digit %4d channel %6d amplitude %12.4f time %12.4g primaries %v",
			digit.Index, digit.Channel, digit.Amplitude, digit.Time, digit.Primaries)
		logger.Info(message, "digitizer")
	}
}
