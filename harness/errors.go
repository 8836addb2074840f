package harness

import "errors"

var (
	// ErrNoEntity is returned by the external-entity handler when no
	// pending payload has been supplied for resolution.
	ErrNoEntity = errors.New("xmlfuzz: no pending external entity payload")

	// ErrEntityDepth is returned when nested external-entity resolution
	// exceeds the recursion bound.
	ErrEntityDepth = errors.New("xmlfuzz: external entity nesting too deep")

	// ErrModelTooDeep is returned inside a ShapeError when a content
	// model nests beyond the recursion bound.
	ErrModelTooDeep = errors.New("xmlfuzz: content model too deep")
)

// ShapeError describes a content-model node that violates the shape
// invariants documented on ContentModel. It is delivered by panic: a
// malformed model reported by the parser is a finding, not a
// recoverable condition.
type ShapeError struct {
	Type   ContentType
	Reason string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return "xmlfuzz: content model " + e.Type.String() + " node: " + e.Reason
}
