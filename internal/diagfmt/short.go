package diagfmt

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"lattice/internal/diag"
	"lattice/internal/source"
)

type shortLine struct {
	path      string
	line, col uint32
	sev       string
	code      string
	msg       string
}

// Short writes one line per diagnostic, and per note when withNotes is set:
//
//	error SYN2001 src/main.lt:1:5 expected a name
//
// Lines are sorted by path, position, severity and code, so the output is
// stable across parallel runs and usable as a golden file. Diagnostics in
// files unknown to fs are skipped.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	var lines []shortLine
	for _, d := range bag.Items() {
		if l, ok := shortAt(fs, d.Primary); ok {
			l.sev, l.code, l.msg = strings.ToLower(d.Severity.String()), d.Code.ID(), oneLine(d.Message)
			lines = append(lines, l)
		}
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortAt(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", d.Code.ID(), oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
		)
	})

	bw := bufio.NewWriter(w)
	for _, l := range lines {
		fmt.Fprintf(bw, "%s %s %s:%d:%d %s\n", l.sev, l.code, l.path, l.line, l.col, l.msg)
	}
	return bw.Flush()
}

func shortAt(fs *source.FileSet, span source.Span) (shortLine, bool) {
	f, ok := fs.Lookup(span.File)
	if !ok {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(span)
	path := f.FormatPath("relative", fs.BaseDir())
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortLine{path: path, line: start.Line, col: start.Col}, true
}

// oneLine folds a multi-line message (block structure reports carry whole
// dumps) into a single line.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
