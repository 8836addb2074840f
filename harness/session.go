package harness

// session owns one live parser instance together with the run-scoped
// state its handlers need: the resolved encoding, the fault allocator,
// the touch digest, and the pending external-entity payload. Exactly
// one session is live per testcase; it is never reused across
// testcases.
type session struct {
	parser   Parser
	encoding string
	mem      *FaultAllocator
	touch    Toucher

	// pending is the payload stashed by the most recent
	// external-entity action. A new action replaces it; resolution
	// does not consume it.
	pending []byte
}

func newSession(create Factory, enc Encoding, mem *FaultAllocator) (*session, error) {
	name := enc.Name()
	p, err := create(name, mem, namespaceSep)
	if err != nil {
		return nil, err
	}
	s := &session{parser: p, encoding: name, mem: mem}
	s.configure(p, 0)
	return s, nil
}

// reset forces the parser back to its initial empty state and redoes
// the configuration that reset drops. The encoding and allocator carry
// over unchanged.
func (s *session) reset() error {
	if err := s.parser.Reset(s.encoding); err != nil {
		return err
	}
	s.configure(s.parser, 0)
	return nil
}

func (s *session) close() error {
	return s.parser.Close()
}

// configure applies the hash salt, the parameter-entity mode, and the
// full handler set to p. Reset and external-entity creation both leave
// a parser without handlers, so this runs after every such transition.
// depth is the external-entity nesting level of p.
func (s *session) configure(p Parser, depth int) {
	p.SetHashSalt(hashSalt)
	// Always process parameter entities: it is the widest code path.
	p.SetParamEntityParsing(ParamEntityAlways)
	p.SetHandlers(s.handlers(p, depth))
}

// handlers builds the callback set for p. Every handler first touches
// every region it is given; a few carry protocol side effects beyond
// that.
func (s *session) handlers(p Parser, depth int) *Handlers {
	t := &s.touch
	return &Handlers{
		ElementDecl: func(name string, model *ContentModel) {
			t.String(name)
			t.Model(model)
			// Models are allocator-backed; release immediately so
			// declarations do not accumulate across calls.
			p.FreeContentModel(model)
		},
		AttlistDecl: func(elname, attname, atttype, dflt string, required bool) {
			t.String(elname)
			t.String(attname)
			t.String(atttype)
			t.String(dflt)
		},
		XMLDecl: func(version, encoding string, standalone int) {
			t.String(version)
			t.String(encoding)
		},
		StartElement: func(name string, atts []string) {
			t.String(name)
			t.Atts(atts)
		},
		EndElement: func(name string) {
			t.String(name)
		},
		CharacterData: func(data []byte) {
			t.Bytes(data)
		},
		ProcessingInstruction: func(target, data string) {
			t.String(target)
			t.String(data)
		},
		Comment: func(data string) {
			t.String(data)
			// Suspend here so every feed that crosses a comment
			// exercises the resume path.
			p.Stop()
		},
		StartCdata: func() {},
		EndCdata:   func() {},
		Default: func(data []byte) {
			t.Bytes(data)
		},
		StartDoctype: func(name, sysid, pubid string, hasInternalSubset bool) {
			t.String(name)
			t.String(sysid)
			t.String(pubid)
		},
		EndDoctype: func() {},
		EntityDecl: func(name string, isParam bool, value []byte, base, systemID, publicID, notation string) {
			t.String(name)
			t.Bytes(value)
			t.String(base)
			t.String(systemID)
			t.String(publicID)
			t.String(notation)
		},
		UnparsedEntityDecl: func(name, base, systemID, publicID, notation string) {
			t.String(name)
			t.String(base)
			t.String(systemID)
			t.String(publicID)
			t.String(notation)
		},
		NotationDecl: func(name, base, systemID, publicID string) {
			t.String(name)
			t.String(base)
			t.String(systemID)
			t.String(publicID)
		},
		StartNamespace: func(prefix, uri string) {
			t.String(prefix)
			t.String(uri)
		},
		EndNamespace: func(prefix string) {
			t.String(prefix)
		},
		NotStandalone: func() bool {
			// Treat every document as standalone-compatible.
			return true
		},
		ExternalEntityRef: func(context, base, systemID, publicID string) error {
			t.String(context)
			t.String(base)
			t.String(systemID)
			t.String(publicID)
			return s.resolveEntity(p, context, depth)
		},
		SkippedEntity: func(name string, isParam bool) {
			t.String(name)
		},
		UnknownEncoding: func(name string) bool {
			t.String(name)
			// The harness never supplies custom encoding tables.
			return false
		},
	}
}

// resolveEntity runs a full nested parse of the pending payload,
// scoped to the referencing parser's context, and reports that parse's
// outcome as the reference's result. With no pending payload the
// reference is refused.
func (s *session) resolveEntity(parent Parser, context string, depth int) error {
	if s.pending == nil {
		return ErrNoEntity
	}
	if depth >= maxEntityDepth {
		return ErrEntityDepth
	}
	sub, err := parent.ExternalEntityParser(context, s.encoding)
	if err != nil {
		return err
	}
	defer sub.Close()
	s.configure(sub, depth+1)
	_, err = Feed(sub, s.pending, true)
	return err
}
