package scriptparser

import (
	"errors"
	"testing"

	"github.com/markuplab/xmlfuzz/harness"
)

func newParser(t *testing.T, cfg *Config, failAt ...uint32) (*Parser, *harness.FaultAllocator) {
	t.Helper()
	mem := harness.NewFaultAllocator(failAt)
	p, err := New(cfg)("UTF-8", mem, '|')
	if err != nil {
		t.Fatalf("create parser: %v", err)
	}
	return p.(*Parser), mem
}

func TestParserDeliversScriptedFeeds(t *testing.T) {
	var trace []string
	cfg := &Config{
		Feeds: [][]Event{
			{StartElement("a", "k", "v"), Text("hi")},
			{EndElement("a")},
		},
		Trace: &trace,
	}
	p, _ := newParser(t, cfg)

	var names []string
	p.SetHandlers(&harness.Handlers{
		StartElement:  func(name string, atts []string) { names = append(names, "<"+name+">") },
		EndElement:    func(name string) { names = append(names, "</"+name+">") },
		CharacterData: func(data []byte) { names = append(names, string(data)) },
	})

	if st, err := p.Parse([]byte("<a>hi"), false); st != harness.StatusOK || err != nil {
		t.Fatalf("feed 1 = (%v, %v)", st, err)
	}
	if st, err := p.Parse([]byte("</a>"), true); st != harness.StatusOK || err != nil {
		t.Fatalf("feed 2 = (%v, %v)", st, err)
	}

	want := []string{"<a>", "hi", "</a>"}
	if len(names) != len(want) {
		t.Fatalf("delivered %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("delivered %v, want %v", names, want)
		}
	}
	if len(trace) != 3 {
		t.Fatalf("trace %v, want 3 entries", trace)
	}
}

func TestParserSuspendResume(t *testing.T) {
	cfg := &Config{Feeds: [][]Event{{Comment("c"), Text("after")}}}
	p, _ := newParser(t, cfg)

	var got []string
	p.SetHandlers(&harness.Handlers{
		Comment: func(data string) {
			got = append(got, "comment")
			p.Stop()
		},
		CharacterData: func(data []byte) { got = append(got, string(data)) },
	})

	st, err := p.Parse(nil, false)
	if st != harness.StatusSuspended || err != nil {
		t.Fatalf("Parse = (%v, %v), want suspended", st, err)
	}
	if !p.Suspended() {
		t.Fatal("parser not suspended")
	}

	// Feeding while suspended is a contract violation.
	if st, _ := p.Parse(nil, false); st != harness.StatusError {
		t.Fatal("Parse while suspended should fail")
	}

	st, err = p.Resume()
	if st != harness.StatusOK || err != nil {
		t.Fatalf("Resume = (%v, %v)", st, err)
	}
	if len(got) != 2 || got[1] != "after" {
		t.Fatalf("events = %v", got)
	}

	if _, err := p.Resume(); !errors.Is(err, ErrNotSuspended) {
		t.Fatalf("second Resume err = %v, want ErrNotSuspended", err)
	}
}

func TestParserResetDropsHandlers(t *testing.T) {
	p, _ := newParser(t, &Config{Feeds: [][]Event{{Text("x")}, {Text("y")}}})
	p.SetHandlers(&harness.Handlers{})
	if !p.HasHandlers() {
		t.Fatal("handlers not registered")
	}
	if err := p.Reset("UTF-16"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if p.HasHandlers() {
		t.Fatal("Reset kept handler registrations")
	}
	// Feeding without handlers delivers nothing but still succeeds.
	if st, err := p.Parse(nil, false); st != harness.StatusOK || err != nil {
		t.Fatalf("Parse after reset = (%v, %v)", st, err)
	}
}

func TestParserFinishedState(t *testing.T) {
	p, _ := newParser(t, &Config{})
	if st, err := p.Parse(nil, true); st != harness.StatusOK || err != nil {
		t.Fatalf("final Parse = (%v, %v)", st, err)
	}
	if st, err := p.Parse(nil, false); st != harness.StatusError || !errors.Is(err, ErrFinished) {
		t.Fatalf("Parse after final = (%v, %v), want ErrFinished", st, err)
	}
	if err := p.Reset(""); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if st, err := p.Parse(nil, false); st != harness.StatusOK || err != nil {
		t.Fatalf("Parse after reset = (%v, %v)", st, err)
	}
}

func TestParserStickyError(t *testing.T) {
	cfg := &Config{Feeds: [][]Event{{UnknownEncoding("weird")}, {Text("x")}}}
	p, _ := newParser(t, cfg)
	p.SetHandlers(&harness.Handlers{
		UnknownEncoding: func(name string) bool { return false },
	})

	if st, _ := p.Parse(nil, false); st != harness.StatusError {
		t.Fatal("refused encoding should fail the feed")
	}
	// The error sticks until reset.
	if st, _ := p.Parse(nil, false); st != harness.StatusError {
		t.Fatal("parser should stay in error state")
	}
	if err := p.Reset("UTF-8"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	p.SetHandlers(&harness.Handlers{})
	if st, err := p.Parse(nil, false); st != harness.StatusOK || err != nil {
		t.Fatalf("Parse after reset = (%v, %v)", st, err)
	}
}

func TestParserAllocationFailure(t *testing.T) {
	// Ordinal 0 is parser creation; ordinal 1 is the first event.
	mem := harness.NewFaultAllocator([]uint32{1})
	p, err := New(&Config{Feeds: [][]Event{{Text("x")}}})("", mem, '|')
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p.SetHandlers(&harness.Handlers{})
	st, err := p.Parse(nil, false)
	if st != harness.StatusError || !errors.Is(err, ErrNoMemory) {
		t.Fatalf("Parse = (%v, %v), want out of memory", st, err)
	}
}

func TestParserCreationFailure(t *testing.T) {
	mem := harness.NewFaultAllocator([]uint32{0})
	if _, err := New(&Config{})("", mem, '|'); !errors.Is(err, ErrNoMemory) {
		t.Fatalf("create err = %v, want ErrNoMemory", err)
	}
}

func TestParserClosed(t *testing.T) {
	p, mem := newParser(t, &Config{})
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("double Close err = %v, want ErrClosed", err)
	}
	if st, err := p.Parse(nil, false); st != harness.StatusError || !errors.Is(err, ErrClosed) {
		t.Fatalf("Parse after Close = (%v, %v)", st, err)
	}
	if mem.Frees() == 0 {
		t.Fatal("Close did not free the parser's scratch buffer")
	}
}

func TestExternalEntityParserDeliversEntityScript(t *testing.T) {
	cfg := &Config{Entity: []Event{StartElement("b"), EndElement("b")}}
	p, _ := newParser(t, cfg)

	sub, err := p.ExternalEntityParser("ctx", "UTF-8")
	if err != nil {
		t.Fatalf("ExternalEntityParser: %v", err)
	}
	defer sub.Close()

	var names []string
	sub.SetHandlers(&harness.Handlers{
		StartElement: func(name string, atts []string) { names = append(names, name) },
		EndElement:   func(name string) { names = append(names, name) },
	})
	if st, err := sub.Parse([]byte("<b/>"), true); st != harness.StatusOK || err != nil {
		t.Fatalf("entity Parse = (%v, %v)", st, err)
	}
	if len(names) != 2 {
		t.Fatalf("entity events = %v", names)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	data := []byte("deterministic event storm \x00\xff\x7f")
	a := synthesize(data)
	b := synthesize(data)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("synthesize lengths: %d vs %d", len(a), len(b))
	}

	var t1, t2 []string
	run := func(trace *[]string) {
		cfg := &Config{Synthesize: true, Trace: trace}
		mem := harness.NewFaultAllocator(nil)
		p, err := New(cfg)("", mem, '|')
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		defer p.Close()
		p.SetHandlers(&harness.Handlers{})
		p.Parse(data, true)
	}
	run(&t1)
	run(&t2)
	if len(t1) != len(t2) {
		t.Fatalf("trace lengths differ: %d vs %d", len(t1), len(t2))
	}
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Fatalf("trace %d differs: %q vs %q", i, t1[i], t2[i])
		}
	}
}
