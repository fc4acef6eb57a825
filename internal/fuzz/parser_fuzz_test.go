package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"lattice/internal/diagfmt"
	"lattice/internal/parser"
	"lattice/internal/source"
	"lattice/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		result := make(chan error, 1)
		go func() {
			result <- testkit.CheckFuzzInvariantsErr(string(input))
		}()

		select {
		case err := <-result:
			if err != nil {
				t.Fatalf("%v\ninput (%d bytes): %q", err, len(input), truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func FuzzDumpTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.lt", input))
		parsed, err := parser.ParseFile(context.Background(), file, parser.Options{MaxErrors: 128})
		if err != nil {
			t.Fatal(err)
		}

		dump := diagfmt.DumpTree(parsed.Syntax())
		if got := strings.Count(dump, "err: '"); got != len(parsed.Errors()) {
			t.Fatalf("dump has %d error lines, tree has %d errors\ninput: %q",
				got, len(parsed.Errors()), truncateForLog(input, 200))
		}
		if again := diagfmt.DumpTree(parsed.Syntax()); again != dump {
			t.Fatalf("dump is not deterministic\ninput: %q", truncateForLog(input, 200))
		}
	})
}
