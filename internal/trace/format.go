package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Format uint8

const (
	FormatAuto   Format = iota // by output extension
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// formatForPath picks NDJSON for *.ndjson and *.jsonl outputs.
func formatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

func encode(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(dst, ev)
	}
	return appendText(dst, ev)
}

// appendText renders
//
//	[    12] > parse
//	[    13] < parse 1.2ms (ok) errors=0 nodes=14
func appendText(dst []byte, ev *Event) []byte {
	dst = fmt.Appendf(dst, "[%6d] ", ev.Seq)
	if ev.ParentID != 0 {
		dst = append(dst, "  "...)
	}
	switch ev.Kind {
	case KindBegin:
		dst = append(dst, "> "...)
	case KindEnd:
		dst = append(dst, "< "...)
	case KindHeartbeat:
		dst = append(dst, "~ "...)
	default:
		dst = append(dst, "* "...)
	}
	dst = append(dst, ev.Name...)
	if ev.Kind == KindEnd {
		dst = append(dst, ' ')
		dst = append(dst, ev.Elapsed.Round(time.Microsecond).String()...)
	}
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	for _, a := range ev.Attrs {
		dst = append(dst, ' ')
		dst = append(dst, a.Key...)
		dst = append(dst, '=')
		dst = append(dst, a.Value...)
	}
	return append(dst, '\n')
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id,omitempty"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	ElapsedUS string            `json:"elapsed_us,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:     ev.Time.UTC().Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
	}
	if ev.Kind == KindEnd {
		j.ElapsedUS = strconv.FormatInt(ev.Elapsed.Microseconds(), 10)
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		// только строки и числа
		panic(err)
	}
	dst = append(dst, data...)
	return append(dst, '\n')
}
