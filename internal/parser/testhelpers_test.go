package parser_test

import (
	"fmt"
	"iter"
	"strings"

	"lattice/internal/parser"
)

func errorsSummary(f *parser.File) string {
	errs := f.Errors()
	if len(errs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("[%s@%d] %s", e.Code.ID(), e.Offset, e.Message)
	}
	return strings.Join(lines, "; ")
}

func errorMessages(f *parser.File) []string {
	out := make([]string, 0, len(f.Errors()))
	for _, e := range f.Errors() {
		out = append(out, e.Message)
	}
	return out
}

func first[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}
