package digitizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuppressPerRegionThresholds(t *testing.T) {
	geom := Geometry{NPmts: 2, NSipms: 2}
	cal := &LinearCalibrator{PmtSlope: 1, SipmSlope: 1}
	filter := NewThresholdFilter(geom, cal, 1.0, 3.0)

	collection := &DigitCollection{Digits: []Digit{
		{Channel: 1, Amplitude: 0.5}, // PMT, below
		{Channel: 2, Amplitude: 2.0}, // PMT, above
		{Channel: 3, Amplitude: 2.0}, // SiPM, below its higher cut
		{Channel: 4, Amplitude: 3.5}, // SiPM, above
	}}

	require.NoError(t, filter.Suppress(collection))
	require.Len(t, collection.Digits, 2)
	assert.Equal(t, 2, collection.Digits[0].Channel)
	assert.Equal(t, 4, collection.Digits[1].Channel)
}

func TestSuppressUsesCalibratedAmplitude(t *testing.T) {
	geom := Geometry{NPmts: 1}
	// pedestal 50, slope 10: raw 70 calibrates to 2.0
	cal := &LinearCalibrator{PmtPedestal: 50, PmtSlope: 10, SipmSlope: 1}
	filter := NewThresholdFilter(geom, cal, 1.0, 1.0)

	collection := &DigitCollection{Digits: []Digit{{Channel: 1, Amplitude: 70}}}
	require.NoError(t, filter.Suppress(collection))
	assert.Len(t, collection.Digits, 1)

	collection = &DigitCollection{Digits: []Digit{{Channel: 1, Amplitude: 55}}}
	require.NoError(t, filter.Suppress(collection))
	assert.Empty(t, collection.Digits)
}

func TestSuppressWithoutCalibrator(t *testing.T) {
	filter := NewThresholdFilter(Geometry{NPmts: 1}, nil, 1.0, 1.0)
	collection := &DigitCollection{Digits: []Digit{{Channel: 1, Amplitude: 10}}}

	err := filter.Suppress(collection)
	var calErr *ErrMissingCalibrator
	require.True(t, errors.As(err, &calErr))
	// Nothing was filtered
	assert.Len(t, collection.Digits, 1)
}

func TestCompactAssignsContiguousIndices(t *testing.T) {
	collection := &DigitCollection{Digits: []Digit{
		{Channel: 2, Index: -1},
		{Channel: 9, Index: -1},
		{Channel: 40, Index: -1},
	}}

	collection.Compact()

	assert.True(t, collection.Compacted)
	for i, digit := range collection.Digits {
		assert.Equal(t, i, digit.Index)
		if i > 0 {
			assert.Greater(t, digit.Channel, collection.Digits[i-1].Channel)
		}
	}
}

func TestCompactEmptyCollection(t *testing.T) {
	collection := &DigitCollection{}
	collection.Compact()
	assert.True(t, collection.Compacted)
	assert.Empty(t, collection.Digits)
}

func TestLinearCalibratorRoundTrip(t *testing.T) {
	cal := &LinearCalibrator{
		PmtPedestal:  0,
		PmtSlope:     10000000,
		SipmPedestal: 100,
		SipmSlope:    2000,
	}

	for _, energy := range []float64{0, 0.01, 1.5} {
		assert.InDelta(t, energy, cal.Calibrate(PMT, cal.Digitize(PMT, energy)), 1e-12)
		assert.InDelta(t, energy, cal.Calibrate(SiPM, cal.Digitize(SiPM, energy)), 1e-12)
	}
	assert.Equal(t, 100.0, cal.Digitize(SiPM, 0))
}
