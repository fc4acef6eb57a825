package trace

import (
	"io"
	"sync"
)

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything.
var Nop Tracer = nopTracer{}

func stamp(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = nextSeq()
	}
}

// Ring keeps the last N events in memory; a crashing fuzz run dumps it.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
	level Level
}

func NewRing(capacity int, level Level) *Ring {
	if capacity <= 0 {
		capacity = 4096
	}
	return &Ring{buf: make([]Event, capacity), level: level}
}

func (r *Ring) Emit(ev *Event) {
	stamp(ev)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = *ev
	r.next = (r.next + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
}

// Snapshot returns the kept events oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	start := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// WriteTo writes the snapshot to w.
func (r *Ring) WriteTo(w io.Writer, format Format) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(encode(nil, &ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ring) Flush() error  { return nil }
func (r *Ring) Close() error  { return nil }
func (r *Ring) Level() Level  { return r.level }
func (r *Ring) Enabled() bool { return r.level >= LevelPhase }

// Stream writes each event as it arrives. Write errors are dropped: a
// broken trace output never fails a run.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	buf    []byte
	level  Level
	format Format
}

func NewStream(w io.Writer, level Level, format Format) *Stream {
	if format == FormatAuto {
		format = FormatText
	}
	return &Stream{w: w, level: level, format: format}
}

func (s *Stream) Emit(ev *Event) {
	stamp(ev)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = encode(s.buf[:0], ev, s.format)
	_, _ = s.w.Write(s.buf)
}

func (s *Stream) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer when it is an io.Closer other than
// stdout/stderr.
func (s *Stream) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if c, ok := s.w.(io.Closer); ok && !isStdStream(s.w) {
		return c.Close()
	}
	return nil
}

func (s *Stream) Level() Level  { return s.level }
func (s *Stream) Enabled() bool { return s.level >= LevelPhase }

type fanout struct {
	sinks []Tracer
	level Level
}

func (f *fanout) Emit(ev *Event) {
	for _, s := range f.sinks {
		s.Emit(ev)
	}
}

func (f *fanout) Flush() error {
	var first error
	for _, s := range f.sinks {
		if err := s.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *fanout) Close() error {
	var first error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *fanout) Level() Level  { return f.level }
func (f *fanout) Enabled() bool { return f.level >= LevelPhase }
