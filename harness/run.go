package harness

// Runner interprets testcases against parsers produced by a Factory.
// Each Run owns one parser session and one FaultAllocator, both scoped
// to that run: nothing leaks from one testcase into the next.
type Runner struct {
	create Factory
}

// NewRunner returns a Runner that creates parsers with create.
func NewRunner(create Factory) *Runner {
	return &Runner{create: create}
}

// Run replays tc's actions, strictly in order, against a single parser
// session. A testcase with no actions is a no-op: no parser is
// created.
//
// Parse errors are recovered locally by resetting the session; the
// returned error reports only conditions that prevent the run from
// continuing at all, such as parser creation failing under an injected
// allocation fault.
func (r *Runner) Run(tc *Testcase) error {
	if tc == nil || len(tc.Actions) == 0 {
		return nil
	}

	mem := NewFaultAllocator(tc.FailAllocations)
	s, err := newSession(r.create, tc.Encoding, mem)
	if err != nil {
		return err
	}
	defer s.close()

	for i := range tc.Actions {
		act := &tc.Actions[i]
		switch act.Kind {
		case ActionChunk:
			if st, _ := Feed(s.parser, act.Data, false); st == StatusError {
				// A parse error leaves the parser stuck; drop to a
				// clean sub-document and keep replaying.
				if err := s.reset(); err != nil {
					return err
				}
			}

		case ActionLastChunk:
			// The outcome does not matter: the document is over
			// either way, so start a fresh one.
			Feed(s.parser, act.Data, true)
			if err := s.reset(); err != nil {
				return err
			}

		case ActionReset:
			if err := s.reset(); err != nil {
				return err
			}

		case ActionExternalEntity:
			s.pending = act.Data
		}
	}
	return nil
}
