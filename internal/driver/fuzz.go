package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lattice/internal/testkit"
	"lattice/internal/trace"
)

// fragments spliced into inputs; braces dominate since they drive recovery.
var fragments = []string{
	"{", "}", "{", "}", "(", ")", ";", ":", ",", "->", "=",
	"fn ", "let ", "struct ", "if ", "else ", "while ", "return ",
	"\"", "//", "\n", " ", "0", "x", "+", "*",
}

type FuzzOptions struct {
	Seeds      [][]byte
	Iterations int
	MaxLen     int
	Seed       uint64 // 0 — from the clock
	CrashDir   string // "" — do not persist crashers
	// Progress is called after every iteration.
	Progress func(done, total int)
}

// Crasher is an input that broke an invariant.
type Crasher struct {
	Input []byte
	Err   error
	Path  string // set when written to CrashDir
}

type FuzzReport struct {
	Iterations int
	Seed       uint64
	Crashers   []Crasher
	Elapsed    time.Duration
}

// LoadSeeds reads every *.lt file under dir, clamped to maxLen bytes.
// A missing dir yields no seeds.
func LoadSeeds(dir string, maxLen int) ([][]byte, error) {
	files, err := ListSourceFiles(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	seeds := make([][]byte, 0, len(files))
	for _, path := range files {
		// #nosec G304 -- path comes from a directory walk
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		if maxLen > 0 && len(data) > maxLen {
			data = data[:maxLen]
		}
		seeds = append(seeds, data)
	}
	return seeds, nil
}

// Fuzz mutates seeds and runs the fuzz invariants on every mutant.
// The run is deterministic for a fixed opts.Seed.
func Fuzz(ctx context.Context, opts FuzzOptions) (*FuzzReport, error) {
	if opts.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", opts.Iterations)
	}
	if opts.MaxLen <= 0 {
		opts.MaxLen = 4096
	}
	seeds := opts.Seeds
	if len(seeds) == 0 {
		seeds = [][]byte{[]byte("fn main() { let x = 1; }")}
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.CrashDir != "" {
		if err := os.MkdirAll(opts.CrashDir, 0o750); err != nil {
			return nil, fmt.Errorf("crash dir: %w", err)
		}
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	report := &FuzzReport{Seed: opts.Seed}
	ctx, span := trace.Start(ctx, trace.ScopeRun, "fuzz")
	defer func() {
		span.Attr("iterations", strconv.Itoa(report.Iterations)).
			Attr("crashers", strconv.Itoa(len(report.Crashers))).
			End("")
	}()
	tracer := trace.FromContext(ctx)
	seen := make(map[[32]byte]struct{})
	start := time.Now()

	for i := range opts.Iterations {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
		input := mutate(rng, seeds, opts.MaxLen)
		report.Iterations++

		if err := testkit.CheckFuzzInvariantsErr(string(input)); err != nil {
			sum := sha256.Sum256(input)
			if _, dup := seen[sum]; !dup {
				seen[sum] = struct{}{}
				c := Crasher{Input: input, Err: err}
				if opts.CrashDir != "" {
					path, werr := writeCrasher(opts.CrashDir, sum, input, err)
					if werr != nil {
						return report, werr
					}
					c.Path = path
				}
				report.Crashers = append(report.Crashers, c)
				trace.Point(tracer, trace.ScopeRun, "crasher", hex.EncodeToString(sum[:8]))
			}
		}
		if opts.Progress != nil {
			opts.Progress(i+1, opts.Iterations)
		}
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

func mutate(rng *rand.Rand, seeds [][]byte, maxLen int) []byte {
	base := seeds[rng.IntN(len(seeds))]
	out := append([]byte(nil), base...)

	// 1..4 мутации за итерацию
	for range 1 + rng.IntN(4) {
		switch rng.IntN(6) {
		case 0: // flip
			if len(out) > 0 {
				out[rng.IntN(len(out))] ^= byte(1 << rng.IntN(8))
			}
		case 1: // insert fragment
			frag := fragments[rng.IntN(len(fragments))]
			at := rng.IntN(len(out) + 1)
			out = append(out[:at], append([]byte(frag), out[at:]...)...)
		case 2: // delete range
			if len(out) > 0 {
				from := rng.IntN(len(out))
				to := from + 1 + rng.IntN(min(8, len(out)-from))
				out = append(out[:from], out[to:]...)
			}
		case 3: // duplicate range
			if len(out) > 0 {
				from := rng.IntN(len(out))
				to := from + 1 + rng.IntN(min(16, len(out)-from))
				chunk := append([]byte(nil), out[from:to]...)
				at := rng.IntN(len(out) + 1)
				out = append(out[:at], append(chunk, out[at:]...)...)
			}
		case 4: // splice with another seed
			other := seeds[rng.IntN(len(seeds))]
			if len(other) > 0 {
				cut := rng.IntN(len(out) + 1)
				from := rng.IntN(len(other))
				out = append(out[:cut:cut], other[from:]...)
			}
		case 5: // truncate
			if len(out) > 0 {
				out = out[:rng.IntN(len(out))]
			}
		}
	}
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

// writeCrasher stores the input as <hash>.lt and the failure as <hash>.txt.
func writeCrasher(dir string, sum [32]byte, input []byte, failure error) (string, error) {
	name := hex.EncodeToString(sum[:8])
	path := filepath.Join(dir, name+".lt")
	if err := os.WriteFile(path, input, 0o600); err != nil {
		return "", fmt.Errorf("write crasher: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(failure.Error()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write crasher: %w", err)
	}
	return path, nil
}
