package trace

import (
	"fmt"
	"strings"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// check workers emit from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Level controls how deep recording goes.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // crashes only, no spans
	LevelPhase        // run and phase spans
	LevelDetail       // plus per-file spans
	LevelDebug        // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Records reports whether spans of scope are kept at this level.
// ScopePhase is recorded from LevelPhase on, ScopeFile from LevelDetail.
func (l Level) Records(scope Scope) bool {
	switch {
	case l < LevelPhase:
		return false
	case l == LevelPhase:
		return scope <= ScopePhase
	case l == LevelDetail:
		return scope <= ScopeFile
	default:
		return true
	}
}

// Scope is the granularity of a span; lower is coarser.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // one CLI invocation or CheckFiles call
	ScopePhase                  // lex, parse, validate, dump
	ScopeFile                   // one source file
	ScopeNode                   // syntax node level
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopePhase:
		return "phase"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Attr is a key/value attached to an end event. Attrs keep insertion order.
type Attr struct {
	Key, Value string
}

type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 — корневой span
	Name     string // "check", "parse", "file:a.lt"
	Detail   string
	Attrs    []Attr
	Elapsed  time.Duration // только у KindEnd
}

// Attr returns the value for key and whether it was set.
func (ev *Event) Attr(key string) (string, bool) {
	for _, a := range ev.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
