package digitizer

// Calibrator converts between deposited energy and the raw amplitude
// units stored in a digit. Digitize packs an energy into raw units
// (used when synthesizing noise), Calibrate is the inverse applied
// before threshold comparison. Both are monotonic.
type Calibrator interface {
	Digitize(region SensorType, energy float64) float64
	Calibrate(region SensorType, amplitude float64) float64
}

// LinearCalibrator models each plane's readout as a pedestal plus a
// linear gain.
type LinearCalibrator struct {
	PmtPedestal  float64
	PmtSlope     float64
	SipmPedestal float64
	SipmSlope    float64
}

func NewLinearCalibrator(config Configuration) *LinearCalibrator {
	return &LinearCalibrator{
		PmtPedestal:  config.PmtPedestal,
		PmtSlope:     config.PmtSlope,
		SipmPedestal: config.SipmPedestal,
		SipmSlope:    config.SipmSlope,
	}
}

func (c *LinearCalibrator) params(region SensorType) (pedestal float64, slope float64) {
	if region == PMT {
		return c.PmtPedestal, c.PmtSlope
	}
	return c.SipmPedestal, c.SipmSlope
}

func (c *LinearCalibrator) Digitize(region SensorType, energy float64) float64 {
	pedestal, slope := c.params(region)
	return pedestal + energy*slope
}

func (c *LinearCalibrator) Calibrate(region SensorType, amplitude float64) float64 {
	pedestal, slope := c.params(region)
	return (amplitude - pedestal) / slope
}
