package benchmarks

import (
	"bytes"
	"testing"

	"github.com/markuplab/xmlfuzz/harness"
	"github.com/markuplab/xmlfuzz/internal/scriptparser"
)

func newSynthFactory() harness.Factory {
	return scriptparser.New(&scriptparser.Config{Synthesize: true})
}

// Corpus codec benchmarks comparing the CBOR wire format against a
// hand-written msgp codec of the same structure.

func benchTestcase() *harness.Testcase {
	return &harness.Testcase{
		Actions: []harness.Action{
			harness.Chunk([]byte("<?xml version=\"1.0\"?><doc attr=\"value\">")),
			harness.ExternalEntity([]byte("<b>entity body</b>")),
			harness.Chunk(bytes.Repeat([]byte("<x>text</x>"), 20)),
			harness.Reset(),
			harness.LastChunk([]byte("</doc>")),
		},
		Encoding:        harness.EncodingUTF8,
		FailAllocations: []uint32{3, 17, 64, 255},
	}
}

func TestMsgpCodecRoundTrip(t *testing.T) {
	tc := benchTestcase()
	enc := AppendTestcase(nil, tc)

	got, rest, err := ReadTestcaseBytes(enc)
	if err != nil {
		t.Fatalf("ReadTestcaseBytes: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("%d trailing bytes", len(rest))
	}
	if got.Encoding != tc.Encoding {
		t.Errorf("encoding = %d, want %d", got.Encoding, tc.Encoding)
	}
	if len(got.Actions) != len(tc.Actions) {
		t.Fatalf("actions = %d, want %d", len(got.Actions), len(tc.Actions))
	}
	for i := range tc.Actions {
		if got.Actions[i].Kind != tc.Actions[i].Kind {
			t.Errorf("action %d kind mismatch", i)
		}
		if !bytes.Equal(got.Actions[i].Data, tc.Actions[i].Data) {
			t.Errorf("action %d data mismatch", i)
		}
	}
	for i, n := range tc.FailAllocations {
		if got.FailAllocations[i] != n {
			t.Errorf("fault ordinal %d mismatch", i)
		}
	}
}

func TestMsgpCodecRejectsTruncated(t *testing.T) {
	enc := AppendTestcase(nil, benchTestcase())
	for cut := 0; cut < len(enc); cut += 7 {
		if _, _, err := ReadTestcaseBytes(enc[:cut]); err == nil {
			t.Fatalf("truncation at %d decoded successfully", cut)
		}
	}
}

func BenchmarkCBOREncode(b *testing.B) {
	tc := benchTestcase()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := harness.EncodeTestcase(tc); err != nil {
			b.Fatalf("EncodeTestcase: %v", err)
		}
	}
}

func BenchmarkCBORDecode(b *testing.B) {
	enc, err := harness.EncodeTestcase(benchTestcase())
	if err != nil {
		b.Fatalf("EncodeTestcase: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := harness.DecodeTestcase(enc); err != nil {
			b.Fatalf("DecodeTestcase: %v", err)
		}
	}
}

func BenchmarkMsgpEncode(b *testing.B) {
	tc := benchTestcase()
	var out []byte
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = AppendTestcase(out[:0], tc)
	}
	_ = out
}

func BenchmarkMsgpDecode(b *testing.B) {
	enc := AppendTestcase(nil, benchTestcase())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ReadTestcaseBytes(enc); err != nil {
			b.Fatalf("ReadTestcaseBytes: %v", err)
		}
	}
}

func BenchmarkRunSyntheticTestcase(b *testing.B) {
	tc := &harness.Testcase{
		Actions: []harness.Action{
			harness.Chunk(bytes.Repeat([]byte("event storm"), 8)),
			harness.LastChunk([]byte("tail bytes")),
		},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := harness.NewRunner(newSynthFactory())
		if err := r.Run(tc); err != nil {
			b.Fatalf("Run: %v", err)
		}
	}
}
