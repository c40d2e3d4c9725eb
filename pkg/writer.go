package digitizer

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer persists compacted digit collections to HDF5. One file per
// run: /Run holds event numbers and run info, /Digits the digit and
// provenance tables, /Digitizer the parameter snapshot the digits were
// produced with. Writing the same writer from several goroutines is
// not supported, events are serialized by the results loop.
type Writer struct {
	File            *hdf5.File
	Filename        string
	FirstEvt        bool
	RunGroup        *hdf5.Group
	DigitsGroup     *hdf5.Group
	DigitizerGroup  *hdf5.Group
	EventTable      *hdf5.Dataset
	RunInfoTable    *hdf5.Dataset
	DigitTable      *hdf5.Dataset
	ProvenanceTable *hdf5.Dataset
	ParamsTable     *hdf5.Dataset
	EvtCounter      int
	DigitRows       int
	ProvRows        int
}

func NewWriter(filename string) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{}
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.DigitsGroup = createGroup(writer.File, "Digits")
	writer.DigitizerGroup = createGroup(writer.File, "Digitizer")
	writer.EventTable = createTable(writer.RunGroup, "events", EventDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.DigitTable = createTable(writer.DigitsGroup, "digits", DigitHDF5{})
	writer.ProvenanceTable = createTable(writer.DigitsGroup, "provenance", ProvenanceHDF5{})
	writer.ParamsTable = createTable(writer.DigitizerGroup, "configuration", ParamHDF5{})
	writer.EvtCounter = 0
	return writer
}

// WriteEvent appends one compacted collection. Run info and the
// parameter snapshot are written once, with the first event.
func (w *Writer) WriteEvent(event *EventType) {
	geom := Geometry{NPmts: configuration.NPmts, NSipms: configuration.NSipms}

	if !w.FirstEvt {
		writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(event.RunNumber)}, 0)
		w.writeParams(event.Params)
		w.FirstEvt = true
	}

	writeEntryToTable(w.EventTable, EventDataHDF5{
		evt_number: int32(event.EventID),
		timestamp:  event.Timestamp,
	}, w.EvtCounter)

	digits := make([]DigitHDF5, len(event.Digits.Digits))
	provenance := make([]ProvenanceHDF5, 0, len(event.Digits.Digits))
	for i, digit := range event.Digits.Digits {
		digits[i] = DigitHDF5{
			evt_number:  int32(event.EventID),
			idx:         int32(digit.Index),
			channel:     int32(digit.Channel),
			sensor_type: int32(geom.RegionOf(digit.Channel)),
			amplitude:   digit.Amplitude,
			time:        digit.Time,
			nprimaries:  int32(len(digit.Primaries)),
		}
		for _, primary := range digit.Primaries {
			provenance = append(provenance, ProvenanceHDF5{
				evt_number: int32(event.EventID),
				idx:        int32(digit.Index),
				primary:    primary,
			})
		}
	}

	if len(digits) > 0 {
		writeArrayToTable(w.DigitTable, &digits, w.DigitRows)
		w.DigitRows += len(digits)
	}
	if len(provenance) > 0 {
		writeArrayToTable(w.ProvenanceTable, &provenance, w.ProvRows)
		w.ProvRows += len(provenance)
	}

	w.EvtCounter++
}

func (w *Writer) writeParams(params []Param) {
	rows := make([]ParamHDF5, len(params))
	for i, param := range params {
		rows[i] = ParamHDF5{
			paramStr: convertToHdf5String(param.Name),
			value:    param.Value,
		}
	}
	writeArrayToTable(w.ParamsTable, &rows, 0)
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing hdf5 writer %s", w.Filename), "writer")
	}
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.DigitTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing digit table: %w", err))
	}
	if err := w.ProvenanceTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing provenance table: %w", err))
	}
	if err := w.ParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing params table: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Run group: %w", err))
	}
	if err := w.DigitsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Digits group: %w", err))
	}
	if err := w.DigitizerGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing Digitizer group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	for _, err := range errs {
		logger.Error(err.Error())
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
