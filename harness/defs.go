// Package harness drives a streaming, callback-based XML parser from
// structured fuzz input.
//
// The package turns a Testcase (an ordered action sequence, an encoding
// selection, and an allocation-fault schedule) into calls against the
// parser contract defined in parser.go, while independently checking two
// safety properties:
//   - every string or byte region the parser hands to a callback is a
//     correctly bounded, readable region (Toucher);
//   - the parser survives deterministically injected allocation failures
//     without crashing or corrupting state (FaultAllocator).
//
// The package defines four cooperating pieces:
//   - FaultAllocator: the parser's sole memory provider for a run.
//   - Toucher: forces a real read of every reported region.
//   - Feed: a resumable-parse wrapper that drives suspended parses back
//     to a terminal status.
//   - Runner: the action interpreter owning the parser's lifecycle.
//
// Findings are reported the way fuzzing infrastructure expects: an
// invalid region or content model panics; everything else is an
// ordinary error return.
package harness

// Status is the tri-state outcome of a parser feed or resume call.
type Status int

const (
	// StatusOK means the call consumed its input completely.
	StatusOK Status = iota

	// StatusError means the parse failed; the parser stays in its
	// error state until reset.
	StatusError

	// StatusSuspended means a handler requested suspension; the parse
	// can be continued with Resume.
	StatusSuspended
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

const (
	// hashSalt is registered on every parser so that hash-order dependent
	// behavior is identical across runs.
	hashSalt = 0x41414141

	// namespaceSep separates namespace URIs from local names in
	// reported element names.
	namespaceSep = '|'

	// maxEntityDepth bounds nested external-entity resolution. The
	// payload for every nesting level is the same pending buffer, so
	// anything deeper only re-parses identical bytes.
	maxEntityDepth = 8

	// modelRecursionLimit bounds the content-model walk. A model deeper
	// than this is treated as malformed.
	modelRecursionLimit = 10000
)
