package observ

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReportMergesPhases(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	tm.End(tm.Begin("load"), "")
	tm.End(tm.Begin("parse"), "")
	tm.End(tm.Begin("parse"), "")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "load", r.Phases[0].Name)
	assert.Equal(t, "parse", r.Phases[1].Name)
	assert.InDelta(t, 1.0, r.Phases[0].DurationMS, 1e-9)
	assert.InDelta(t, 2.0, r.Phases[1].DurationMS, 1e-9)
	assert.InDelta(t, 3.0, r.TotalMS, 1e-9)
	assert.Equal(t, 1, r.Phases[0].Count)
	assert.Equal(t, 2, r.Phases[1].Count)
	assert.Contains(t, tm.Summary(), "parse x2")
}

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	boom := errors.New("boom")
	err := tm.Measure("validate", func() error { return boom })
	assert.ErrorIs(t, err, boom)

	r := tm.Report()
	require.Len(t, r.Phases, 1)
	assert.Equal(t, "failed", r.Phases[0].Note)
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)
	tm.End(tm.Begin("dump"), "cached")

	out := tm.Summary()
	assert.Contains(t, out, "timings:\n")
	assert.Contains(t, out, "dump")
	assert.Contains(t, out, "// cached")
	assert.Contains(t, out, "total")
}

func TestTimerEmptyAndBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(42, "ignored")
	assert.Equal(t, Report{}, tm.Report())
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("parse"), "")
		}()
	}
	wg.Wait()
	r := tm.Report()
	require.Len(t, r.Phases, 1)
	assert.Equal(t, 16, r.Phases[0].Count)
}
