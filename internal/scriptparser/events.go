package scriptparser

import "github.com/markuplab/xmlfuzz/harness"

// Event constructors, one per callback category. Each records a trace
// line when tracing is enabled and skips delivery when the handler
// field is nil, like a real parser does for unregistered handlers.

// StartElement reports an element start with alternating
// attribute-name/value pairs.
func StartElement(name string, atts ...string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("start-element " + name)
		if h.StartElement != nil {
			h.StartElement(name, atts)
		}
		return nil
	}
}

// EndElement reports an element end.
func EndElement(name string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("end-element " + name)
		if h.EndElement != nil {
			h.EndElement(name)
		}
		return nil
	}
}

// Text reports character data.
func Text(data string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("text " + data)
		if h.CharacterData != nil {
			h.CharacterData([]byte(data))
		}
		return nil
	}
}

// Comment reports a comment. The harness comment handler requests
// suspension, so a Comment event typically splits the feed into a
// suspend/resume pair.
func Comment(data string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("comment " + data)
		if h.Comment != nil {
			h.Comment(data)
		}
		return nil
	}
}

// PI reports a processing instruction.
func PI(target, data string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("pi " + target)
		if h.ProcessingInstruction != nil {
			h.ProcessingInstruction(target, data)
		}
		return nil
	}
}

// CdataSection reports a CDATA section: boundary events around the
// contained text.
func CdataSection(text string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("cdata " + text)
		if h.StartCdata != nil {
			h.StartCdata()
		}
		if h.CharacterData != nil {
			h.CharacterData([]byte(text))
		}
		if h.EndCdata != nil {
			h.EndCdata()
		}
		return nil
	}
}

// DefaultData reports unhandled markup bytes.
func DefaultData(data []byte) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("default")
		if h.Default != nil {
			h.Default(data)
		}
		return nil
	}
}

// XMLDecl reports the XML declaration.
func XMLDecl(version, encoding string, standalone int) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("xml-decl " + version)
		if h.XMLDecl != nil {
			h.XMLDecl(version, encoding, standalone)
		}
		return nil
	}
}

// Doctype reports a doctype start.
func Doctype(name, sysid, pubid string, hasInternalSubset bool) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("doctype " + name)
		if h.StartDoctype != nil {
			h.StartDoctype(name, sysid, pubid, hasInternalSubset)
		}
		return nil
	}
}

// EndDoctype reports a doctype end.
func EndDoctype() Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("end-doctype")
		if h.EndDoctype != nil {
			h.EndDoctype()
		}
		return nil
	}
}

// ElementDecl reports an element declaration carrying a content model.
func ElementDecl(name string, model *harness.ContentModel) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("element-decl " + name)
		if h.ElementDecl != nil {
			h.ElementDecl(name, model)
		}
		return nil
	}
}

// AttlistDecl reports an attribute-list declaration.
func AttlistDecl(elname, attname, atttype, dflt string, required bool) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("attlist-decl " + elname)
		if h.AttlistDecl != nil {
			h.AttlistDecl(elname, attname, atttype, dflt, required)
		}
		return nil
	}
}

// EntityDecl reports an entity declaration.
func EntityDecl(name string, isParam bool, value []byte, base, systemID, publicID, notation string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("entity-decl " + name)
		if h.EntityDecl != nil {
			h.EntityDecl(name, isParam, value, base, systemID, publicID, notation)
		}
		return nil
	}
}

// UnparsedEntityDecl reports an unparsed-entity declaration.
func UnparsedEntityDecl(name, base, systemID, publicID, notation string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("unparsed-entity-decl " + name)
		if h.UnparsedEntityDecl != nil {
			h.UnparsedEntityDecl(name, base, systemID, publicID, notation)
		}
		return nil
	}
}

// NotationDecl reports a notation declaration.
func NotationDecl(name, base, systemID, publicID string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("notation-decl " + name)
		if h.NotationDecl != nil {
			h.NotationDecl(name, base, systemID, publicID)
		}
		return nil
	}
}

// StartNamespace reports a namespace prefix binding.
func StartNamespace(prefix, uri string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("start-ns " + prefix)
		if h.StartNamespace != nil {
			h.StartNamespace(prefix, uri)
		}
		return nil
	}
}

// EndNamespace reports a namespace prefix unbinding.
func EndNamespace(prefix string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("end-ns " + prefix)
		if h.EndNamespace != nil {
			h.EndNamespace(prefix)
		}
		return nil
	}
}

// SkippedEntity reports an entity reference that was skipped.
func SkippedEntity(name string, isParam bool) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("skipped-entity " + name)
		if h.SkippedEntity != nil {
			h.SkippedEntity(name, isParam)
		}
		return nil
	}
}

// NotStandalone queries the not-standalone handler; a false answer
// fails the feed.
func NotStandalone() Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("not-standalone")
		if h.NotStandalone != nil && !h.NotStandalone() {
			return errNotStandalone
		}
		return nil
	}
}

// UnknownEncoding asks for a conversion table; a refusal fails the
// feed.
func UnknownEncoding(name string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("unknown-encoding " + name)
		if h.UnknownEncoding != nil && !h.UnknownEncoding(name) {
			return errEncodingRefused
		}
		return nil
	}
}

// ExternalEntityRef asks the application to resolve an external
// entity; the handler's error becomes the feed's error.
func ExternalEntityRef(context, base, systemID, publicID string) Event {
	return func(p *Parser, h *harness.Handlers) error {
		p.record("external-entity-ref " + systemID)
		if h.ExternalEntityRef == nil {
			return nil
		}
		return h.ExternalEntityRef(context, base, systemID, publicID)
	}
}
