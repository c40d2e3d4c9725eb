package digitizer

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Configuration {
	return Configuration{
		NPmts:            4,
		NSipms:           0,
		PmtNoiseSigma:    0,
		SipmNoiseSigma:   0,
		PmtThreshold:     1.0,
		SipmThreshold:    1.0,
		PmtSlope:         1,
		SipmSlope:        1,
		OffsetStrategy:   OffsetFixedMultiplier,
		OffsetMultiplier: 1000000,
	}
}

func TestDigitizeFullPipeline(t *testing.T) {
	d := NewDigitizer(testConfig(), 42)

	sources := []Source{
		{Stream: NewSliceStream([]Contribution{
			{Channel: 2, Amplitude: 5.0, Time: 1e-9, Primaries: []int64{7}},
		})},
		{Stream: NewSliceStream([]Contribution{
			{Channel: 2, Amplitude: 3.0, Time: 2e-9, Primaries: []int64{3}},
		})},
	}

	collection, err := d.Digitize(sources)
	require.NoError(t, err)
	require.True(t, collection.Compacted)

	// Noise-only channels sit below threshold, only the signal one
	// survives compaction.
	require.Len(t, collection.Digits, 1)
	digit := collection.Digits[0]
	assert.Equal(t, 2, digit.Channel)
	assert.Equal(t, 0, digit.Index)
	assert.InDelta(t, 8.0, digit.Amplitude, 1e-12)
	assert.Equal(t, 1e-9, digit.Time)
	assert.Equal(t, []int64{7, 1000003}, digit.Primaries)
}

func TestDigitizeExternalMasks(t *testing.T) {
	config := testConfig()
	config.OffsetStrategy = OffsetExternalMask
	d := NewDigitizer(config, 42)

	sources := []Source{
		{Mask: 500, Stream: NewSliceStream([]Contribution{
			{Channel: 1, Amplitude: 5.0, Time: 1e-9, Primaries: []int64{7}},
		})},
		{Mask: 9000, Stream: NewSliceStream([]Contribution{
			{Channel: 1, Amplitude: 5.0, Time: 1e-9, Primaries: []int64{7}},
		})},
	}

	collection, err := d.Digitize(sources)
	require.NoError(t, err)
	require.Len(t, collection.Digits, 1)
	assert.Equal(t, []int64{507, 9007}, collection.Digits[0].Primaries)
}

type mapProvider map[uint32][]Source

func (m mapProvider) Sources(eventID uint32) ([]Source, error) {
	return m[eventID], nil
}

func TestDigitizeFromProvider(t *testing.T) {
	d := NewDigitizer(testConfig(), 42)
	provider := mapProvider{
		5: {{Stream: NewSliceStream([]Contribution{
			{Channel: 3, Amplitude: 2.0, Time: 1e-9, Primaries: []int64{4}},
		})}},
	}

	collection, err := d.DigitizeFrom(provider, 5)
	require.NoError(t, err)
	require.Len(t, collection.Digits, 1)
	assert.Equal(t, 3, collection.Digits[0].Channel)

	// Unknown event id means no sources: noise-only, all suppressed.
	collection, err = d.DigitizeFrom(provider, 6)
	require.NoError(t, err)
	assert.Empty(t, collection.Digits)
}

func TestDigitizeAbortPublishesNothing(t *testing.T) {
	d := NewDigitizer(testConfig(), 42)

	sources := []Source{
		{Stream: NewSliceStream([]Contribution{{Channel: 99, Amplitude: 1}})},
	}

	collection, err := d.Digitize(sources)
	assert.Nil(t, collection)
	var rangeErr *ErrChannelOutOfRange
	assert.True(t, errors.As(err, &rangeErr))
}

func TestDigitizeDeterministicEndToEnd(t *testing.T) {
	config := testConfig()
	config.NPmts = 20
	config.NSipms = 30
	config.PmtNoiseSigma = 0.8
	config.SipmNoiseSigma = 1.5

	run := func() *DigitCollection {
		d := NewDigitizer(config, 777)
		sources := []Source{
			{Stream: NewSliceStream([]Contribution{
				{Channel: 5, Amplitude: 10, Time: 1e-9, Primaries: []int64{1}},
				{Channel: 33, Amplitude: 20, Time: 2e-9, Primaries: []int64{2}},
			})},
		}
		collection, err := d.Digitize(sources)
		require.NoError(t, err)
		return collection
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("same seed produced different output:\n%s", diff)
	}
}

func TestSnapshotSortedAndComplete(t *testing.T) {
	config := testConfig()
	params := Snapshot(config, 99)

	names := make([]string, len(params))
	byName := make(map[string]float64, len(params))
	for i, param := range params {
		names[i] = param.Name
		byName[param.Name] = param.Value
	}
	assert.True(t, sort.StringsAreSorted(names))

	assert.Equal(t, 99.0, byName["random_seed"])
	assert.Equal(t, 4.0, byName["n_pmts"])
	assert.Equal(t, 1.0, byName["pmt_threshold"])
	assert.Equal(t, 1000000.0, byName["offset_multiplier"])
	assert.Equal(t, 0.0, byName["offset_strategy"])
}

func TestGeometryRegions(t *testing.T) {
	geom := Geometry{NPmts: 3, NSipms: 2}

	assert.Equal(t, 5, geom.TotalChannels())
	assert.Equal(t, PMT, geom.RegionOf(1))
	assert.Equal(t, PMT, geom.RegionOf(3))
	assert.Equal(t, SiPM, geom.RegionOf(4))
	assert.Equal(t, SiPM, geom.RegionOf(5))
}
