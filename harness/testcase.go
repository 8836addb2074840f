package harness

// Encoding selects the character encoding announced at parser creation
// and on every reset within the same testcase.
type Encoding uint8

const (
	EncodingUnspecified Encoding = iota // parser autodetects
	EncodingUTF8
	EncodingUTF16
	EncodingISO88591
	EncodingASCII
	EncodingUnrecognized // a name no parser knows, exercises UnknownEncoding
)

// Name returns the encoding name handed to the parser. Unspecified maps
// to the empty string. Unrecognized (and any out-of-range value) maps
// to a name no parser recognizes, which drives the unknown-encoding
// path.
func (e Encoding) Name() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16:
		return "UTF-16"
	case EncodingISO88591:
		return "ISO-8859-1"
	case EncodingASCII:
		return "US-ASCII"
	case EncodingUnspecified:
		return ""
	default:
		return "UNKNOWN"
	}
}

// ActionKind tags the active variant of an Action.
type ActionKind uint8

const (
	// ActionChunk feeds a non-final fragment of input.
	ActionChunk ActionKind = iota

	// ActionLastChunk feeds the final fragment and starts a fresh
	// logical sub-document afterwards.
	ActionLastChunk

	// ActionReset resets the parser unconditionally.
	ActionReset

	// ActionExternalEntity stashes a payload for the next external
	// entity reference.
	ActionExternalEntity
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionChunk:
		return "chunk"
	case ActionLastChunk:
		return "last-chunk"
	case ActionReset:
		return "reset"
	case ActionExternalEntity:
		return "external-entity"
	default:
		return "unknown"
	}
}

// Action is one step of a testcase. Data carries the payload for the
// chunk and external-entity variants and is ignored for reset.
type Action struct {
	Kind ActionKind `cbor:"0,keyasint"`
	Data []byte     `cbor:"1,keyasint,omitempty"`
}

// Chunk builds a non-final feed action.
func Chunk(data []byte) Action { return Action{Kind: ActionChunk, Data: data} }

// LastChunk builds a final feed action.
func LastChunk(data []byte) Action { return Action{Kind: ActionLastChunk, Data: data} }

// Reset builds a reset action.
func Reset() Action { return Action{Kind: ActionReset} }

// ExternalEntity builds an action that stashes payload for the next
// external entity reference.
func ExternalEntity(payload []byte) Action {
	return Action{Kind: ActionExternalEntity, Data: payload}
}

// Testcase is the top-level fuzz input: an ordered action sequence, an
// encoding selection, and the set of allocation ordinals that must
// fail. A Testcase is immutable for the duration of a run.
type Testcase struct {
	Actions         []Action `cbor:"0,keyasint"`
	Encoding        Encoding `cbor:"1,keyasint,omitempty"`
	FailAllocations []uint32 `cbor:"2,keyasint,omitempty"`
}
