package digitizer

// Geometry describes the channel space of one detector configuration.
// Channel ids are 1-based and contiguous: PMTs occupy [1, NPmts] and
// SiPMs occupy [NPmts+1, NPmts+NSipms].
type Geometry struct {
	NPmts  int
	NSipms int
}

func (g Geometry) TotalChannels() int {
	return g.NPmts + g.NSipms
}

func (g Geometry) RegionOf(channel int) SensorType {
	if channel <= g.NPmts {
		return PMT
	}
	return SiPM
}

// Contribution is one source's deposit at one channel.
type Contribution struct {
	Channel   int
	Amplitude float64
	Time      float64
	// Ids of the primary particles responsible for the deposit,
	// local to the source that produced it.
	Primaries []int64
}

// Digit is the final per-channel aggregate: noise plus the summed
// contributions from every source, with the front-edge time and the
// merged primary list.
type Digit struct {
	Channel   int
	Amplitude float64
	Time      float64
	Primaries []int64
	// Position in the compacted collection. Valid only after
	// compaction, -1 before.
	Index int
}

// DigitCollection holds the digits of one event. It is dense over the
// channel space right after the merge and contiguous in channel order
// after suppression and compaction.
type DigitCollection struct {
	Digits    []Digit
	Compacted bool
}

type EventType struct {
	RunNumber uint32
	EventID   uint32
	Timestamp uint64
	Digits    *DigitCollection
	Params    []Param
	Error     bool
}

// Param is one entry of the parameter snapshot persisted next to the
// digits, so a file always records how it was produced.
type Param struct {
	Name  string
	Value float64
}
