package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/markuplab/xmlfuzz/harness"
)

// CLI defines the fuzzcase command-line interface.
//
// fuzzcase works with corpus files in the CBOR testcase format:
//   - show: decode a corpus file and print its action sequence
//   - seed: write a starter seed corpus for a new fuzzing campaign
type CLI struct {
	Show ShowCmd `cmd:"" help:"Decode a corpus file and print its actions."`
	Seed SeedCmd `cmd:"" help:"Write a starter seed corpus."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fuzzcase"),
		kong.Description("Inspect and seed structured corpora for the XML fuzz harness."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// ShowCmd decodes one corpus file.
type ShowCmd struct {
	Path string `arg:"" help:"Corpus file to decode."`
}

func (c *ShowCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	tc, err := harness.DecodeTestcase(data)
	if err != nil {
		return fmt.Errorf("decode %q: %w", c.Path, err)
	}

	fmt.Printf("encoding: %s\n", encodingLabel(tc.Encoding))
	fmt.Printf("fail-allocations: %v\n", tc.FailAllocations)
	fmt.Printf("actions: %d\n", len(tc.Actions))
	for i, act := range tc.Actions {
		switch act.Kind {
		case harness.ActionReset:
			fmt.Printf("  %3d  %s\n", i, act.Kind)
		default:
			fmt.Printf("  %3d  %s  %s\n", i, act.Kind, preview(act.Data))
		}
	}
	return nil
}

// preview renders a payload as a quoted string, truncated so long
// corpus entries stay readable.
func preview(data []byte) string {
	const maxShown = 48
	q := strconv.Quote(string(data))
	if len(q) > maxShown {
		q = q[:maxShown-3] + `..."`
	}
	return q + " (" + strconv.Itoa(len(data)) + " bytes)"
}

func encodingLabel(e harness.Encoding) string {
	if name := e.Name(); name != "" {
		return name
	}
	return "(unspecified)"
}

// SeedCmd writes a small corpus covering the interesting harness
// transitions: plain documents, unfinished documents, resets,
// external-entity resolution, suspension via comments, and allocation
// faults.
type SeedCmd struct {
	Dir string `arg:"" optional:"" default:"corpus" help:"Output directory."`
}

func (c *SeedCmd) Run() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	for i, tc := range seedTestcases() {
		data, err := harness.EncodeTestcase(tc)
		if err != nil {
			return fmt.Errorf("encode seed %d: %w", i, err)
		}
		path := filepath.Join(c.Dir, fmt.Sprintf("seed-%02d.bin", i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	}
	return nil
}

func seedTestcases() []*harness.Testcase {
	return []*harness.Testcase{
		{
			Actions: []harness.Action{
				harness.Chunk([]byte("<a>")),
				harness.LastChunk([]byte("</a>")),
			},
			Encoding: harness.EncodingUTF8,
		},
		{
			Actions: []harness.Action{
				harness.Chunk([]byte("<a><![CDATA[")),
			},
		},
		{
			Actions: []harness.Action{
				harness.ExternalEntity([]byte("<b/>")),
				harness.LastChunk([]byte(`<!DOCTYPE d [<!ENTITY e SYSTEM "x">]><d>&e;</d>`)),
			},
			Encoding: harness.EncodingUTF8,
		},
		{
			Actions: []harness.Action{
				harness.LastChunk([]byte("<!-- suspend here --><a/>")),
			},
			Encoding: harness.EncodingISO88591,
		},
		{
			Actions: []harness.Action{
				harness.Chunk([]byte("<a>")),
				harness.Reset(),
				harness.LastChunk([]byte("<b/>")),
			},
			Encoding: harness.EncodingUTF16,
		},
		{
			Actions: []harness.Action{
				harness.LastChunk([]byte("<a/>")),
			},
			FailAllocations: []uint32{0},
		},
		{
			Actions: []harness.Action{
				harness.LastChunk([]byte("<a/>")),
			},
			Encoding:        harness.EncodingUnrecognized,
			FailAllocations: []uint32{3, 7},
		},
	}
}
