package scriptparser

import (
	"errors"
	"strconv"

	"github.com/markuplab/xmlfuzz/harness"
)

var (
	errNotStandalone   = errors.New("scriptparser: document is not standalone")
	errEncodingRefused = errors.New("scriptparser: unknown encoding refused")
)

// synthesize derives an event sequence from fed bytes: one event per
// input byte, chosen by value. It is a pure function of the chunk, so
// replaying the same testcase synthesizes the same event storm. All
// synthesized content models are well-formed; shape violations are the
// harness's job to detect, not ours to fabricate.
func synthesize(chunk []byte) []Event {
	if len(chunk) == 0 {
		return nil
	}
	evs := make([]Event, 0, len(chunk))
	for i, b := range chunk {
		name := "e" + strconv.Itoa(int(b)%16)
		switch b % 17 {
		case 0:
			evs = append(evs, StartElement(name, "id", strconv.Itoa(i)))
		case 1:
			evs = append(evs, EndElement(name))
		case 2:
			evs = append(evs, Text(name))
		case 3:
			evs = append(evs, Comment("c"+name))
		case 4:
			evs = append(evs, PI("target", name))
		case 5:
			evs = append(evs, CdataSection(name))
		case 6:
			evs = append(evs, DefaultData([]byte{b, 0, b}))
		case 7:
			evs = append(evs, ElementDecl(name, synthModel(b)))
		case 8:
			evs = append(evs, Doctype(name, "sys", "pub", b&1 == 1), EndDoctype())
		case 9:
			evs = append(evs, EntityDecl(name, b&1 == 1, []byte{b}, "", "sys", "", ""))
		case 10:
			evs = append(evs, StartNamespace("p", "urn:"+name), EndNamespace("p"))
		case 11:
			evs = append(evs, ExternalEntityRef("ctx", "", "sys:"+name, ""))
		case 12:
			evs = append(evs, SkippedEntity(name, b&1 == 0))
		case 13:
			evs = append(evs, XMLDecl("1.0", "UTF-8", int(b%3)-1))
		case 14:
			evs = append(evs, AttlistDecl(name, "attr", "CDATA", "dflt", b&1 == 1))
		case 15:
			evs = append(evs,
				UnparsedEntityDecl(name, "", "sys", "", "note"),
				NotationDecl("note", "", "sys", ""))
		default:
			evs = append(evs, NotStandalone())
		}
	}
	return evs
}

// synthModel builds a small well-formed content model whose shape
// depends on the seed byte.
func synthModel(b byte) *harness.ContentModel {
	switch b % 4 {
	case 0:
		return &harness.ContentModel{Type: harness.ContentEmpty}
	case 1:
		return &harness.ContentModel{Type: harness.ContentAny}
	case 2:
		return &harness.ContentModel{
			Type:  harness.ContentMixed,
			Quant: harness.QuantRep,
			Children: []*harness.ContentModel{
				{Type: harness.ContentName, Name: "a"},
				{Type: harness.ContentName, Name: "b"},
			},
		}
	default:
		return &harness.ContentModel{
			Type:  harness.ContentChoice,
			Quant: harness.QuantOpt,
			Children: []*harness.ContentModel{
				{Type: harness.ContentName, Name: "x", Quant: harness.QuantPlus},
				{Type: harness.ContentSeq, Children: []*harness.ContentModel{
					{Type: harness.ContentName, Name: "y"},
				}},
			},
		}
	}
}
