package harness

import (
	"bytes"
	"testing"
)

func TestTestcaseRoundTrip(t *testing.T) {
	tc := &Testcase{
		Actions: []Action{
			Chunk([]byte("<a>")),
			ExternalEntity([]byte("<b/>")),
			Reset(),
			LastChunk([]byte("</a>")),
		},
		Encoding:        EncodingUTF16,
		FailAllocations: []uint32{0, 7, 7, 31},
	}

	data, err := EncodeTestcase(tc)
	if err != nil {
		t.Fatalf("EncodeTestcase: %v", err)
	}
	got, err := DecodeTestcase(data)
	if err != nil {
		t.Fatalf("DecodeTestcase: %v", err)
	}

	if got.Encoding != tc.Encoding {
		t.Errorf("Encoding = %d, want %d", got.Encoding, tc.Encoding)
	}
	if len(got.Actions) != len(tc.Actions) {
		t.Fatalf("actions = %d, want %d", len(got.Actions), len(tc.Actions))
	}
	for i := range tc.Actions {
		if got.Actions[i].Kind != tc.Actions[i].Kind {
			t.Errorf("action %d kind = %v, want %v", i, got.Actions[i].Kind, tc.Actions[i].Kind)
		}
		if !bytes.Equal(got.Actions[i].Data, tc.Actions[i].Data) {
			t.Errorf("action %d data = %q, want %q", i, got.Actions[i].Data, tc.Actions[i].Data)
		}
	}
	if len(got.FailAllocations) != len(tc.FailAllocations) {
		t.Fatalf("fail allocations = %v, want %v", got.FailAllocations, tc.FailAllocations)
	}
}

func TestDecodeTestcaseRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("not cbor at all"),
		{0xff, 0xff, 0xff},
		{},
	} {
		if _, err := DecodeTestcase(data); err == nil {
			t.Errorf("DecodeTestcase(%x) succeeded, want error", data)
		}
	}
}

func TestDeriveTestcaseDeterministic(t *testing.T) {
	data := []byte("some seed bytes for structured derivation")

	a := DeriveTestcase(data)
	b := DeriveTestcase(data)

	if a.Encoding != b.Encoding {
		t.Fatalf("encodings differ: %d vs %d", a.Encoding, b.Encoding)
	}
	if len(a.Actions) != len(b.Actions) {
		t.Fatalf("action counts differ: %d vs %d", len(a.Actions), len(b.Actions))
	}
	for i := range a.Actions {
		if a.Actions[i].Kind != b.Actions[i].Kind || !bytes.Equal(a.Actions[i].Data, b.Actions[i].Data) {
			t.Fatalf("action %d differs", i)
		}
	}
}

func TestDeriveTestcaseBounds(t *testing.T) {
	for _, seed := range []string{"", "a", "abcdef", "\x00\xff\x80 stuff"} {
		tc := DeriveTestcase([]byte(seed))
		if len(tc.Actions) == 0 {
			t.Errorf("seed %q: derived zero actions", seed)
		}
		for i, a := range tc.Actions {
			if a.Kind > ActionExternalEntity {
				t.Errorf("seed %q: action %d has out-of-range kind %d", seed, i, a.Kind)
			}
			if a.Kind == ActionReset && a.Data != nil {
				t.Errorf("seed %q: reset action %d carries data", seed, i)
			}
		}
		for _, n := range tc.FailAllocations {
			if n >= deriveMaxOrdinal {
				t.Errorf("seed %q: fault ordinal %d out of range", seed, n)
			}
		}
		if tc.Encoding > EncodingUnrecognized {
			t.Errorf("seed %q: encoding %d out of range", seed, tc.Encoding)
		}
	}
}
