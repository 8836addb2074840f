package harness

// Feed drives one chunk through p and transparently resumes any
// suspension until the outcome is terminal. Handlers may suspend the
// parse at will (the comment handler does so on every comment); callers
// of Feed never observe StatusSuspended.
//
// The parse moves through a three-state machine: running, suspended,
// terminal. Parse and Resume drive running→{terminal,suspended}; this
// loop is the only place that resolves suspended back to terminal.
func Feed(p Parser, chunk []byte, final bool) (Status, error) {
	st, err := p.Parse(chunk, final)
	for st == StatusSuspended {
		st, err = p.Resume()
	}
	return st, err
}
