package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	digitizer "github.com/next-exp/digitizer_go/pkg"
)

// Simulated deposits come in a flat little-endian binary file, one
// event after another. Each event starts with EventHeaderStruct, the
// payload holds one block per source: SourceHeaderStruct followed by
// NContribs contribution records sorted by channel. A contribution is
// ContribHeaderStruct followed by NPrimaries int64 primary ids.
const EVENT_MARKER uint32 = 0x5344544E // "SDTN"

type EventHeaderStruct struct {
	EventMarker   uint32
	EventSize     uint32 // header + payload, in bytes
	EventId       uint32
	EventRunNb    uint32
	EventNSources uint32
	EventFlags    uint32 // reserved, keeps the struct padding-free
	EventTime     uint64
}

type SourceHeaderStruct struct {
	SourceNb    uint32
	NContribs   uint32
	PrimaryMask int64
}

type ContribHeaderStruct struct {
	Channel    int32
	Amplitude  float32
	Time       float32
	NPrimaries int32
}

type FileReader struct {
	File     *os.File
	EvtCount int
}

func NewFileReader(file *os.File) *FileReader {
	return &FileReader{File: file, EvtCount: -1}
}

func (f *FileReader) getNextEvent() (EventHeaderStruct, []digitizer.Source, error) {
	header, payload, err := readEvent(f.File)
	if err != nil {
		return header, nil, err
	}
	if !validEvent(header) {
		return f.getNextEvent()
	}
	f.EvtCount++
	if f.EvtCount >= configuration.MaxEvents {
		return header, nil, io.EOF
	}
	if f.EvtCount < configuration.Skip {
		return f.getNextEvent()
	}
	sources, err := readSources(payload, header)
	if err != nil {
		return header, nil, err
	}
	return header, sources, nil
}

func readEvent(file *os.File) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	headerBinary := make([]byte, headerSize)
	nRead, err := file.Read(headerBinary)
	if err != nil {
		return header, nil, err
	}
	if nRead == 0 {
		return header, nil, io.EOF
	}

	headerReader := bytes.NewReader(headerBinary)
	binary.Read(headerReader, binary.LittleEndian, &header)

	payloadSize := header.EventSize - uint32(headerSize)
	payload := make([]byte, payloadSize)
	_, err = io.ReadFull(file, payload)
	if err != nil {
		return header, nil, fmt.Errorf("error reading event payload: %w", err)
	}
	return header, payload, nil
}

func readSources(payload []byte, header EventHeaderStruct) ([]digitizer.Source, error) {
	reader := bytes.NewReader(payload)
	sources := make([]digitizer.Source, 0, header.EventNSources)

	for s := uint32(0); s < header.EventNSources; s++ {
		var srcHeader SourceHeaderStruct
		if err := binary.Read(reader, binary.LittleEndian, &srcHeader); err != nil {
			return nil, fmt.Errorf("event %d: error reading source header %d: %w", header.EventId, s, err)
		}

		contribs := make([]digitizer.Contribution, 0, srcHeader.NContribs)
		for c := uint32(0); c < srcHeader.NContribs; c++ {
			var record ContribHeaderStruct
			if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
				return nil, fmt.Errorf("event %d: error reading contribution %d of source %d: %w",
					header.EventId, c, s, err)
			}
			var primaries []int64
			if record.NPrimaries > 0 {
				primaries = make([]int64, record.NPrimaries)
				if err := binary.Read(reader, binary.LittleEndian, primaries); err != nil {
					return nil, fmt.Errorf("event %d: error reading primaries of source %d: %w",
						header.EventId, s, err)
				}
			}
			contribs = append(contribs, digitizer.Contribution{
				Channel:   int(record.Channel),
				Amplitude: float64(record.Amplitude),
				Time:      float64(record.Time),
				Primaries: primaries,
			})
		}

		mask := srcHeader.PrimaryMask
		// Masks in the configuration file win over the ones stored
		// with the data.
		if int(s) < len(configuration.SourceMasks) {
			mask = configuration.SourceMasks[s]
		}
		sources = append(sources, digitizer.Source{
			Stream: digitizer.NewSliceStream(contribs),
			Mask:   mask,
		})
	}
	return sources, nil
}

func validEvent(header EventHeaderStruct) bool {
	return header.EventMarker == EVENT_MARKER
}

func countEvents(file *os.File) int {
	evtCount := 0
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	for {
		headerBinary := make([]byte, headerSize)
		nRead, err := file.Read(headerBinary)
		if err != nil || nRead == 0 {
			break
		}

		headerReader := bytes.NewReader(headerBinary)
		binary.Read(headerReader, binary.LittleEndian, &header)
		payloadSize := int64(header.EventSize) - int64(headerSize)
		file.Seek(payloadSize, 1)

		if !validEvent(header) {
			continue
		}
		evtCount++
	}
	// Go back to the beginning of the file
	file.Seek(0, 0)
	return evtCount
}
