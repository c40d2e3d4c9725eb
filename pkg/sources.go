package digitizer

// SourceStream presents one source's contributions in strictly
// ascending channel order with peek/advance access. Streams are read
// fully in memory, there is no blocking access during the merge.
type SourceStream interface {
	// Peek returns the contribution under the cursor without moving
	// it. ok is false once the stream is exhausted.
	Peek() (contrib Contribution, ok bool)
	Advance()
}

// Source is one simulated input event being mixed into the readout.
type Source struct {
	Stream SourceStream
	// Mask shifts this source's primary ids when the external-mask
	// strategy is selected. Ignored under the fixed-multiplier one.
	Mask int64
}

// SourceProvider yields the sources to merge for a given event id.
type SourceProvider interface {
	Sources(eventID uint32) ([]Source, error)
}

type sliceStream struct {
	contribs []Contribution
	cursor   int
}

// NewSliceStream wraps an in-memory contribution list in a
// SourceStream. The list must already be sorted by channel; order is
// validated during the merge, not here.
func NewSliceStream(contribs []Contribution) SourceStream {
	return &sliceStream{contribs: contribs}
}

func (s *sliceStream) Peek() (Contribution, bool) {
	if s.cursor >= len(s.contribs) {
		return Contribution{}, false
	}
	return s.contribs[s.cursor], true
}

func (s *sliceStream) Advance() {
	if s.cursor < len(s.contribs) {
		s.cursor++
	}
}
