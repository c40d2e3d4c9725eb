package digitizer

import "sort"

// ThresholdFilter suppresses digits whose calibrated amplitude falls
// below the threshold of their plane. Suppression drops the digit
// entirely, provenance included.
type ThresholdFilter struct {
	geom          Geometry
	cal           Calibrator
	pmtThreshold  float64
	sipmThreshold float64
}

func NewThresholdFilter(geom Geometry, cal Calibrator, pmtThreshold float64, sipmThreshold float64) *ThresholdFilter {
	return &ThresholdFilter{
		geom:          geom,
		cal:           cal,
		pmtThreshold:  pmtThreshold,
		sipmThreshold: sipmThreshold,
	}
}

func (f *ThresholdFilter) Threshold(region SensorType) float64 {
	if region == PMT {
		return f.pmtThreshold
	}
	return f.sipmThreshold
}

// Suppress removes below-threshold digits in place. Nothing is
// filtered when no calibrator is configured.
func (f *ThresholdFilter) Suppress(collection *DigitCollection) error {
	if f.cal == nil {
		return &ErrMissingCalibrator{}
	}
	kept := collection.Digits[:0]
	for _, digit := range collection.Digits {
		region := f.geom.RegionOf(digit.Channel)
		if f.cal.Calibrate(region, digit.Amplitude) < f.Threshold(region) {
			continue
		}
		kept = append(kept, digit)
	}
	collection.Digits = kept
	return nil
}

// Compact closes the gaps left by suppression and assigns each
// surviving digit its stable output index: ascending channel order,
// indices 0..k-1. The index is the handle later passes use to refer
// back to a digit.
func (c *DigitCollection) Compact() {
	sort.Slice(c.Digits, func(i, j int) bool {
		return c.Digits[i].Channel < c.Digits[j].Channel
	})
	for i := range c.Digits {
		c.Digits[i].Index = i
	}
	c.Compacted = true
}
