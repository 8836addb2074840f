// Package scriptparser implements the harness parser contract without
// parsing anything. A parser replays a configured script of callback
// events per feed call, which lets tests and fuzz targets drive the
// harness through every code path (suspension, resets, nested
// external-entity parses, injected allocation failures) with fully
// predictable behavior.
//
// Every delivered event costs exactly one allocation through the
// installed allocator, and parser creation costs one more, so fault
// ordinals map to script positions deterministically.
package scriptparser

import (
	"errors"

	"github.com/markuplab/xmlfuzz/harness"
)

var (
	// ErrNoMemory is returned when the installed allocator refuses an
	// allocation. The harness treats it like any other parse error.
	ErrNoMemory = errors.New("scriptparser: out of memory")

	// ErrClosed is returned by any call on a closed parser.
	ErrClosed = errors.New("scriptparser: parser is closed")

	// ErrSuspended is returned by Parse while the parser is suspended.
	ErrSuspended = errors.New("scriptparser: parse is suspended")

	// ErrNotSuspended is returned by Resume when nothing is suspended.
	ErrNotSuspended = errors.New("scriptparser: parse is not suspended")

	// ErrFinished is returned by Parse after a final chunk has been
	// accepted and before the parser is reset.
	ErrFinished = errors.New("scriptparser: document already finished")
)

// Event injects one callback invocation into the handlers under test.
// A non-nil error makes the surrounding feed fail, the way a real
// parser turns a refused external entity or encoding into a parse
// error.
type Event func(p *Parser, h *harness.Handlers) error

// Config scripts the behavior of every parser created by one factory.
//
// Feeds[i] is the event sequence delivered by the i-th Parse call on
// the root parser; feeds beyond the script deliver nothing. Entity is
// the sequence delivered by a nested external-entity parser on its
// single final feed. When Synthesize is set, Feeds is ignored and
// events are derived deterministically from the fed bytes instead.
type Config struct {
	Feeds      [][]Event
	Entity     []Event
	Synthesize bool

	// Trace, when non-nil, records a line per delivered event across
	// all parsers created from this config, in delivery order.
	Trace *[]string
}

// Parser is a scripted implementation of harness.Parser.
type Parser struct {
	cfg      *Config
	mem      harness.Allocator
	encoding string
	nsSep    byte
	isEntity bool

	handlers *harness.Handlers
	salt     uint64
	pemode   harness.ParamEntityParsing

	scratch   []byte
	feedIdx   int
	queue     []Event
	stopReq   bool
	suspended bool
	finished  bool
	closed    bool
	err       error

	freedModels int
}

// parserCost and eventCost size the allocations a parser makes, in
// bytes. The values are arbitrary; only the call ordinals matter.
const (
	parserCost = 256
	eventCost  = 32
)

// New returns a harness.Factory producing parsers driven by cfg.
func New(cfg *Config) harness.Factory {
	return func(encoding string, mem harness.Allocator, nsSep byte) (harness.Parser, error) {
		p := &Parser{cfg: cfg, mem: mem, encoding: encoding, nsSep: nsSep}
		p.scratch = mem.Allocate(parserCost)
		if p.scratch == nil {
			return nil, ErrNoMemory
		}
		return p, nil
	}
}

// Parse implements harness.Parser.
func (p *Parser) Parse(chunk []byte, final bool) (harness.Status, error) {
	switch {
	case p.closed:
		return harness.StatusError, ErrClosed
	case p.suspended:
		return harness.StatusError, ErrSuspended
	case p.finished:
		p.err = ErrFinished
		return harness.StatusError, ErrFinished
	case p.err != nil:
		// Stuck in the error state until reset.
		return harness.StatusError, p.err
	}

	switch {
	case p.cfg.Synthesize:
		p.queue = synthesize(chunk)
	case p.isEntity:
		p.queue = p.cfg.Entity
	case p.feedIdx < len(p.cfg.Feeds):
		p.queue = p.cfg.Feeds[p.feedIdx]
		p.feedIdx++
	default:
		p.queue = nil
	}
	if final {
		p.finished = true
	}
	return p.deliver()
}

// Resume implements harness.Parser.
func (p *Parser) Resume() (harness.Status, error) {
	if p.closed {
		return harness.StatusError, ErrClosed
	}
	if !p.suspended {
		return harness.StatusError, ErrNotSuspended
	}
	p.suspended = false
	return p.deliver()
}

// deliver drains the event queue, spending one allocation per event,
// until the queue empties, an event fails, or a handler requests
// suspension.
func (p *Parser) deliver() (harness.Status, error) {
	for len(p.queue) > 0 {
		ev := p.queue[0]
		p.queue = p.queue[1:]

		buf := p.mem.Allocate(eventCost)
		if buf == nil {
			p.err = ErrNoMemory
			return harness.StatusError, ErrNoMemory
		}
		p.mem.Free(buf)

		if p.handlers != nil {
			if err := ev(p, p.handlers); err != nil {
				p.err = err
				return harness.StatusError, err
			}
		}
		if p.stopReq {
			p.stopReq = false
			p.suspended = true
			return harness.StatusSuspended, nil
		}
	}
	return harness.StatusOK, nil
}

// Stop implements harness.Parser.
func (p *Parser) Stop() error {
	if p.closed {
		return ErrClosed
	}
	p.stopReq = true
	return nil
}

// Reset implements harness.Parser. Handler registrations are dropped,
// matching the contract; the feed script position is kept so a
// testcase's feeds keep consuming the script in order across resets.
func (p *Parser) Reset(encoding string) error {
	if p.closed {
		return ErrClosed
	}
	p.encoding = encoding
	p.handlers = nil
	p.queue = nil
	p.stopReq = false
	p.suspended = false
	p.finished = false
	p.err = nil
	return nil
}

// SetHandlers implements harness.Parser.
func (p *Parser) SetHandlers(h *harness.Handlers) { p.handlers = h }

// SetHashSalt implements harness.Parser.
func (p *Parser) SetHashSalt(salt uint64) { p.salt = salt }

// SetParamEntityParsing implements harness.Parser.
func (p *Parser) SetParamEntityParsing(mode harness.ParamEntityParsing) { p.pemode = mode }

// ExternalEntityParser implements harness.Parser. The nested parser
// shares the allocator and the script config and delivers the Entity
// sequence on its feed.
func (p *Parser) ExternalEntityParser(context, encoding string) (harness.Parser, error) {
	if p.closed {
		return nil, ErrClosed
	}
	sub := &Parser{
		cfg:      p.cfg,
		mem:      p.mem,
		encoding: encoding,
		nsSep:    p.nsSep,
		isEntity: true,
	}
	sub.scratch = p.mem.Allocate(parserCost)
	if sub.scratch == nil {
		return nil, ErrNoMemory
	}
	return sub, nil
}

// FreeContentModel implements harness.Parser.
func (p *Parser) FreeContentModel(m *harness.ContentModel) {
	if m != nil {
		p.freedModels++
	}
}

// Close implements harness.Parser.
func (p *Parser) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	p.mem.Free(p.scratch)
	p.scratch = nil
	return nil
}

// HasHandlers reports whether a handler set is currently registered.
func (p *Parser) HasHandlers() bool { return p.handlers != nil }

// Suspended reports whether the parser is suspended mid-parse.
func (p *Parser) Suspended() bool { return p.suspended }

// FreedModels returns how many content models were released back to
// the parser.
func (p *Parser) FreedModels() int { return p.freedModels }

// HashSalt returns the registered hash salt.
func (p *Parser) HashSalt() uint64 { return p.salt }

// ParamEntityMode returns the registered parameter-entity mode.
func (p *Parser) ParamEntityMode() harness.ParamEntityParsing { return p.pemode }

// record appends a line to the shared trace, if one is configured.
func (p *Parser) record(line string) {
	if p.cfg.Trace != nil {
		*p.cfg.Trace = append(*p.cfg.Trace, line)
	}
}
