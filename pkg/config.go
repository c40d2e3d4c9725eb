package digitizer

type OffsetStrategy string

const (
	// Primary ids from source i are shifted by i * offset_multiplier.
	OffsetFixedMultiplier OffsetStrategy = "fixed"
	// Primary ids from source i are shifted by source_masks[i].
	OffsetExternalMask OffsetStrategy = "mask"
)

type Configuration struct {
	MaxEvents        int            `json:"max_events"`
	Verbosity        int            `json:"verbosity"`
	Skip             int            `json:"skip"`
	RunNumber        int            `json:"run_number"`
	FileIn           string         `json:"file_in"`
	FileOut          string         `json:"file_out"`
	NPmts            int            `json:"n_pmts"`
	NSipms           int            `json:"n_sipms"`
	PmtNoiseSigma    float64        `json:"pmt_noise_sigma"`
	SipmNoiseSigma   float64        `json:"sipm_noise_sigma"`
	PmtThreshold     float64        `json:"pmt_threshold"`
	SipmThreshold    float64        `json:"sipm_threshold"`
	PmtPedestal      float64        `json:"pmt_pedestal"`
	PmtSlope         float64        `json:"pmt_slope"`
	SipmPedestal     float64        `json:"sipm_pedestal"`
	SipmSlope        float64        `json:"sipm_slope"`
	OffsetStrategy   OffsetStrategy `json:"offset_strategy"`
	OffsetMultiplier int64          `json:"offset_multiplier"`
	SourceMasks      []int64        `json:"source_masks"`
	RandomSeed       uint64         `json:"random_seed"`
	NoDB             bool           `json:"no_db"`
	Host             string         `json:"host"`
	User             string         `json:"user"`
	Passwd           string         `json:"pass"`
	DBName           string         `json:"dbname"`
	NumWorkers       int            `json:"num_workers"`
	WriteData        bool           `json:"write_data"`
	Parallel         bool           `json:"parallel"`
	CompressionLevel int            `json:"compression_level"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
