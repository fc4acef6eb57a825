package driver

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzz_Deterministic(t *testing.T) {
	opts := FuzzOptions{
		Seeds:      [][]byte{[]byte("fn f() { if a { b } else { c } }"), []byte("struct S { x: i32 }")},
		Iterations: 200,
		MaxLen:     256,
		Seed:       42,
	}
	first, err := Fuzz(context.Background(), opts)
	require.NoError(t, err)
	second, err := Fuzz(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 200, first.Iterations)
	assert.Equal(t, uint64(42), first.Seed)
	assert.Equal(t, len(first.Crashers), len(second.Crashers))
	// парсер не должен ломать инварианты на мутантах
	for _, c := range first.Crashers {
		t.Errorf("crasher %q: %v", c.Input, c.Err)
	}
}

func TestFuzz_Progress(t *testing.T) {
	var calls, lastDone int
	_, err := Fuzz(context.Background(), FuzzOptions{
		Iterations: 10,
		Seed:       1,
		Progress: func(done, total int) {
			calls++
			lastDone = done
			assert.Equal(t, 10, total)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
	assert.Equal(t, 10, lastDone)
}

func TestFuzz_BadIterations(t *testing.T) {
	_, err := Fuzz(context.Background(), FuzzOptions{})
	require.Error(t, err)
}

func TestFuzz_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Fuzz(ctx, FuzzOptions{Iterations: 5, Seed: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Iterations)
}

func TestMutate_RespectsMaxLen(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seeds := [][]byte{[]byte("fn main() { let x = (1 + 2) * 3; }"), {}}
	for range 1000 {
		out := mutate(rng, seeds, 16)
		assert.LessOrEqual(t, len(out), 16)
	}
}

func TestMutate_DoesNotAliasSeeds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 9))
	seed := []byte("fn f() {}")
	seeds := [][]byte{seed}
	for range 500 {
		mutate(rng, seeds, 64)
	}
	assert.Equal(t, "fn f() {}", string(seed))
}

func TestWriteCrasher(t *testing.T) {
	dir := t.TempDir()
	var sum [32]byte
	sum[0] = 0xab
	path, err := writeCrasher(dir, sum, []byte("}{"), errors.New("boom"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ab00000000000000.lt"), path)
	input, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "}{", string(input))

	msg, err := os.ReadFile(filepath.Join(dir, "ab00000000000000.txt"))
	require.NoError(t, err)
	assert.Equal(t, "boom\n", string(msg))
}

func TestLoadSeeds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.lt", "fn aaaaaaaaaa() {}")
	writeFile(t, dir, "b.txt", "ignored")

	seeds, err := LoadSeeds(dir, 5)
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "fn aa", string(seeds[0]))

	seeds, err = LoadSeeds(filepath.Join(dir, "missing"), 5)
	require.NoError(t, err)
	assert.Empty(t, seeds)
}
