package harness

// Allocator is the memory provider installed into a parser at creation.
// Parsers that support fault injection route every internal allocation
// through it and must surface a nil return as an out-of-memory error
// rather than crash.
type Allocator interface {
	// Allocate returns a buffer of n bytes, or nil on failure.
	Allocate(n int) []byte

	// Reallocate resizes b to n bytes, preserving its prefix. It
	// returns nil on failure, in which case b remains valid.
	Reallocate(b []byte, n int) []byte

	// Free releases a buffer obtained from Allocate or Reallocate.
	// It never fails.
	Free(b []byte)
}

// Factory creates a parser bound to an encoding name (empty means the
// parser autodetects), a memory provider, and a namespace separator
// byte used in reported names.
type Factory func(encoding string, mem Allocator, nsSep byte) (Parser, error)

// ParamEntityParsing selects how a parser treats parameter entities.
type ParamEntityParsing int

const (
	ParamEntityNever ParamEntityParsing = iota
	ParamEntityUnlessStandalone
	ParamEntityAlways
)

// Parser is the contract required of the streaming parser under test.
// The harness consumes this contract and never implements parsing
// itself.
type Parser interface {
	// Parse feeds one chunk. final marks the last chunk of the
	// document. The returned error is non-nil exactly when the status
	// is StatusError.
	Parse(chunk []byte, final bool) (Status, error)

	// Resume continues a suspended parse.
	Resume() (Status, error)

	// Stop requests a resumable suspension at the next safe point. It
	// is only meaningful from inside a handler.
	Stop() error

	// Reset returns the parser to its initial empty state with the
	// given encoding. Handler registrations are dropped and must be
	// redone by the caller.
	Reset(encoding string) error

	// SetHandlers registers the full handler set. Fields left nil
	// receive no events.
	SetHandlers(h *Handlers)

	// SetHashSalt fixes the salt used by the parser's internal hashing.
	SetHashSalt(salt uint64)

	// SetParamEntityParsing selects the parameter-entity mode.
	SetParamEntityParsing(mode ParamEntityParsing)

	// ExternalEntityParser creates a parser for resolving an external
	// entity, scoped to the referencing parser's context string. The
	// new parser shares the parent's allocator and starts with no
	// handlers registered.
	ExternalEntityParser(context, encoding string) (Parser, error)

	// FreeContentModel releases a content model delivered to the
	// ElementDecl handler. The model must not be used afterwards.
	FreeContentModel(m *ContentModel)

	// Close destroys the parser and releases all its resources.
	Close() error
}

// ContentType identifies the kind of a content-model node.
type ContentType int

const (
	ContentEmpty ContentType = iota
	ContentAny
	ContentMixed
	ContentName
	ContentChoice
	ContentSeq
)

// String returns the content type name.
func (c ContentType) String() string {
	switch c {
	case ContentEmpty:
		return "empty"
	case ContentAny:
		return "any"
	case ContentMixed:
		return "mixed"
	case ContentName:
		return "name"
	case ContentChoice:
		return "choice"
	case ContentSeq:
		return "seq"
	default:
		return "invalid"
	}
}

// Quant is the quantifier attached to a content-model node.
type Quant int

const (
	QuantNone Quant = iota // no quantifier
	QuantOpt               // ?
	QuantRep               // *
	QuantPlus              // +
)

// ContentModel is the structural grammar declared for an element type.
// Shape invariants, checked by Toucher.Model:
//   - empty/any: QuantNone, no name, no children
//   - mixed: QuantNone or QuantRep, no name, children all leaf name nodes
//   - name: no children
//   - choice/seq: no name
type ContentModel struct {
	Type     ContentType
	Quant    Quant
	Name     string
	Children []*ContentModel
}

// Handlers is the full set of parser event callbacks, one per event
// category.
type Handlers struct {
	ElementDecl           func(name string, model *ContentModel)
	AttlistDecl           func(elname, attname, atttype, dflt string, required bool)
	XMLDecl               func(version, encoding string, standalone int)
	StartElement          func(name string, atts []string)
	EndElement            func(name string)
	CharacterData         func(data []byte)
	ProcessingInstruction func(target, data string)
	Comment               func(data string)
	StartCdata            func()
	EndCdata              func()
	Default               func(data []byte)
	StartDoctype          func(name, sysid, pubid string, hasInternalSubset bool)
	EndDoctype            func()
	EntityDecl            func(name string, isParam bool, value []byte, base, systemID, publicID, notation string)
	UnparsedEntityDecl    func(name, base, systemID, publicID, notation string)
	NotationDecl          func(name, base, systemID, publicID string)
	StartNamespace        func(prefix, uri string)
	EndNamespace          func(prefix string)

	// NotStandalone reports whether processing may continue for a
	// document that is not standalone. Returning false aborts the
	// parse.
	NotStandalone func() bool

	// ExternalEntityRef asks the application to resolve a referenced
	// external entity. A non-nil error makes the reference a parse
	// error.
	ExternalEntityRef func(context, base, systemID, publicID string) error

	SkippedEntity func(name string, isParam bool)

	// UnknownEncoding asks the application to supply a conversion
	// table for an unrecognized encoding. Returning false rejects the
	// encoding.
	UnknownEncoding func(name string) bool
}
