package benchmarks

import (
	"github.com/markuplab/xmlfuzz/harness"
	"github.com/tinylib/msgp/msgp"
)

// Hand-written MessagePack codec for Testcase, used to compare the
// CBOR corpus format against tinylib/msgp's runtime. The framing is a
// three-element array: encoding, fault ordinals, then actions, each
// action a [kind, data] pair.

// AppendTestcase appends tc to b in MessagePack encoding.
func AppendTestcase(b []byte, tc *harness.Testcase) []byte {
	b = msgp.AppendArrayHeader(b, 3)
	b = msgp.AppendUint8(b, uint8(tc.Encoding))
	b = msgp.AppendArrayHeader(b, uint32(len(tc.FailAllocations)))
	for _, n := range tc.FailAllocations {
		b = msgp.AppendUint32(b, n)
	}
	b = msgp.AppendArrayHeader(b, uint32(len(tc.Actions)))
	for _, a := range tc.Actions {
		b = msgp.AppendArrayHeader(b, 2)
		b = msgp.AppendUint8(b, uint8(a.Kind))
		b = msgp.AppendBytes(b, a.Data)
	}
	return b
}

// ReadTestcaseBytes reads a Testcase from b and returns the remaining
// bytes.
func ReadTestcaseBytes(b []byte) (*harness.Testcase, []byte, error) {
	sz, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	if sz != 3 {
		return nil, b, msgp.ArrayError{Wanted: 3, Got: sz}
	}

	var tc harness.Testcase
	enc, b, err := msgp.ReadUint8Bytes(b)
	if err != nil {
		return nil, b, err
	}
	tc.Encoding = harness.Encoding(enc)

	sz, b, err = msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	if sz > 0 {
		tc.FailAllocations = make([]uint32, sz)
		for i := range tc.FailAllocations {
			if tc.FailAllocations[i], b, err = msgp.ReadUint32Bytes(b); err != nil {
				return nil, b, err
			}
		}
	}

	sz, b, err = msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	if sz > 0 {
		tc.Actions = make([]harness.Action, sz)
		for i := range tc.Actions {
			var pair uint32
			if pair, b, err = msgp.ReadArrayHeaderBytes(b); err != nil {
				return nil, b, err
			}
			if pair != 2 {
				return nil, b, msgp.ArrayError{Wanted: 2, Got: pair}
			}
			var kind uint8
			if kind, b, err = msgp.ReadUint8Bytes(b); err != nil {
				return nil, b, err
			}
			tc.Actions[i].Kind = harness.ActionKind(kind)
			if tc.Actions[i].Data, b, err = msgp.ReadBytesBytes(b, nil); err != nil {
				return nil, b, err
			}
		}
	}
	return &tc, b, nil
}
