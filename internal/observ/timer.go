package observ

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step: load, parse, validate, dump.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records phases; check workers share one, so it locks.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Begin opens a phase; pass the returned handle to End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End closes the phase behind idx. A stale or foreign idx is a no-op.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].Dur = t.now().Sub(t.phases[idx].Start)
	t.phases[idx].Note = note
}

// Measure times fn; a failing fn leaves the note "failed".
func (t *Timer) Measure(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	if err != nil {
		t.End(idx, "failed")
	} else {
		t.End(idx, "")
	}
	return err
}

func (t *Timer) Summary() string {
	var sb strings.Builder
	_ = t.WriteSummary(&sb)
	return sb.String()
}

// WriteSummary prints one line per phase name and a total.
func (t *Timer) WriteSummary(w io.Writer) error {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		name := p.Name
		if p.Count > 1 {
			name = fmt.Sprintf("%s x%d", p.Name, p.Count)
		}
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	_, err := io.WriteString(w, sb.String())
	return err
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report folds phases of the same name into one entry, in order of first
// appearance. TotalMS sums every phase, so parallel workers may push it past
// wall-clock time. The last non-empty note wins.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}

	var r Report
	pos := map[string]int{}
	for _, ph := range t.phases {
		ms := millis(ph.Dur)
		r.TotalMS += ms
		i, seen := pos[ph.Name]
		if !seen {
			i = len(r.Phases)
			pos[ph.Name] = i
			r.Phases = append(r.Phases, PhaseReport{Name: ph.Name})
		}
		r.Phases[i].DurationMS += ms
		r.Phases[i].Count++
		if ph.Note != "" {
			r.Phases[i].Note = ph.Note
		}
	}
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
