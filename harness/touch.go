package harness

// Toucher forces a real read of every unit in the regions a parser
// reports to its callbacks. Under instrumented builds (race detector,
// address sanitizer, or a parser handing out unsafely aliased buffers)
// an out-of-bounds or stale region faults at the point of the read.
// Every read folds into a sink the compiler cannot elide; the sink
// value doubles as a deterministic digest of everything reported
// during a run.
//
// A Toucher is scoped to one session and is not safe for concurrent
// use.
type Toucher struct {
	sink uint64
}

// Sink returns the accumulated digest. The value carries no meaning
// beyond being a pure function of every region touched, in order.
func (t *Toucher) Sink() uint64 { return t.sink }

// String touches every byte of s. An empty string is a no-op.
func (t *Toucher) String(s string) {
	for i := 0; i < len(s); i++ {
		t.sink += uint64(s[i])
	}
}

// Bytes touches every byte of the explicit-length region b. Embedded
// zero bytes do not stop the scan. A nil or empty region is a no-op.
func (t *Toucher) Bytes(b []byte) {
	for _, v := range b {
		t.sink += uint64(v)
	}
}

// Atts touches an attribute list of alternating names and values.
func (t *Toucher) Atts(atts []string) {
	for _, s := range atts {
		t.String(s)
	}
}

// Model walks an element declaration's content model, touching every
// name and checking the shape invariants documented on ContentModel.
// A violation panics with a *ShapeError: an invalid model is a finding
// with no recovery path. A nil model is a no-op.
func (t *Toucher) Model(m *ContentModel) {
	t.model(m, 0)
}

func (t *Toucher) model(m *ContentModel, depth int) {
	if m == nil {
		return
	}
	if depth > modelRecursionLimit {
		panic(&ShapeError{Type: m.Type, Reason: ErrModelTooDeep.Error()})
	}
	switch m.Type {
	case ContentEmpty, ContentAny:
		if m.Quant != QuantNone {
			panic(&ShapeError{Type: m.Type, Reason: "quantifier on leaf node"})
		}
		if m.Name != "" {
			panic(&ShapeError{Type: m.Type, Reason: "unexpected name"})
		}
		if len(m.Children) != 0 {
			panic(&ShapeError{Type: m.Type, Reason: "unexpected children"})
		}

	case ContentMixed:
		if m.Quant != QuantNone && m.Quant != QuantRep {
			panic(&ShapeError{Type: m.Type, Reason: "quantifier must be none or rep"})
		}
		if m.Name != "" {
			panic(&ShapeError{Type: m.Type, Reason: "unexpected name"})
		}
		for _, c := range m.Children {
			if c == nil || c.Type != ContentName {
				panic(&ShapeError{Type: m.Type, Reason: "child is not a name node"})
			}
			if len(c.Children) != 0 {
				panic(&ShapeError{Type: m.Type, Reason: "name child has children"})
			}
			t.String(c.Name)
		}

	case ContentName:
		if len(m.Children) != 0 {
			panic(&ShapeError{Type: m.Type, Reason: "unexpected children"})
		}
		t.String(m.Name)

	case ContentChoice, ContentSeq:
		if m.Name != "" {
			panic(&ShapeError{Type: m.Type, Reason: "unexpected name"})
		}
		for _, c := range m.Children {
			t.model(c, depth+1)
		}

	default:
		panic(&ShapeError{Type: m.Type, Reason: "unknown content type"})
	}
}
