package harness

import (
	"github.com/fxamacker/cbor/v2"
	fuzz "github.com/google/gofuzz"
)

// The corpus wire format is CBOR. Decoding limits are tight because
// corpus files are untrusted fuzzer output.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  16,
		MaxArrayElements: 4096,
		MaxMapPairs:      4096,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// EncodeTestcase serializes tc into the corpus wire format.
func EncodeTestcase(tc *Testcase) ([]byte, error) {
	return encMode.Marshal(tc)
}

// DecodeTestcase parses a corpus file into a Testcase.
func DecodeTestcase(data []byte) (*Testcase, error) {
	var tc Testcase
	if err := decMode.Unmarshal(data, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

// deriveMaxOrdinal keeps derived fault ordinals small enough to land
// inside a typical run, so injected failures actually fire.
const deriveMaxOrdinal = 64

// DeriveTestcase builds a structured Testcase from raw fuzzer bytes.
// The derivation is deterministic: identical bytes yield an identical
// testcase, which keeps findings replayable.
func DeriveTestcase(data []byte) *Testcase {
	var tc Testcase
	f := fuzz.NewFromGoFuzz(data).NilChance(0).NumElements(1, 8).Funcs(
		func(a *Action, c fuzz.Continue) {
			a.Kind = ActionKind(c.Intn(4))
			if a.Kind != ActionReset {
				c.Fuzz(&a.Data)
			}
		},
		func(e *Encoding, c fuzz.Continue) {
			*e = Encoding(c.Intn(6))
		},
	)
	f.Fuzz(&tc)
	for i, n := range tc.FailAllocations {
		tc.FailAllocations[i] = n % deriveMaxOrdinal
	}
	return &tc
}
