package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lattice/internal/diag"
	"lattice/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	st := newStyles(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, &d, fs, opts, st); err != nil {
			return err
		}
	}
	return nil
}

type styles struct {
	err, warn, info, code, path, caret, note *color.Color
}

func newStyles(enabled bool) styles {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return styles{
		err:   mk(color.FgRed, color.Bold),
		warn:  mk(color.FgYellow, color.Bold),
		info:  mk(color.FgCyan),
		code:  mk(color.Bold),
		path:  mk(color.Bold),
		caret: mk(color.FgGreen, color.Bold),
		note:  mk(color.FgBlue),
	}
}

func (s styles) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return s.err
	case diag.SevWarning:
		return s.warn
	default:
		return s.info
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, st styles) error {
	f, ok := fs.Lookup(d.Primary.File)
	if !ok {
		_, err := fmt.Fprintf(w, "<unknown>: %s %s: %s\n",
			st.severity(d.Severity).Sprint(d.Severity), st.code.Sprint(d.Code.ID()), d.Message)
		return err
	}
	start, _ := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		st.path.Sprint(f.FormatPath(opts.PathMode.format(), fs.BaseDir())), start.Line, start.Col,
		st.severity(d.Severity).Sprint(d.Severity), st.code.Sprint(d.Code.ID()), d.Message); err != nil {
		return err
	}
	if err := writeContext(w, f, fs, d.Primary, opts, st); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		pos, _ := fs.Resolve(n.Span)
		if _, err := fmt.Fprintf(w, "  %s %d:%d: %s\n", st.note.Sprint("note:"), pos.Line, pos.Col, n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// writeContext prints the primary line and a caret underline. Columns are
// display cells (go-runewidth), so wide runes and tabs line up.
func writeContext(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, opts PrettyOpts, st styles) error {
	start, end := fs.Resolve(sp)
	line := strings.TrimRight(f.GetLine(start.Line), "\r")
	line = strings.ReplaceAll(line, "\t", "    ")
	if opts.Width > 0 {
		line = runewidth.Truncate(line, int(opts.Width), "…")
	}

	raw := f.GetLine(start.Line)
	prefixEnd := min(int(start.Col)-1, len(raw))
	pad := runewidth.StringWidth(strings.ReplaceAll(raw[:prefixEnd], "\t", "    "))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(raw))
		width = max(runewidth.StringWidth(strings.ReplaceAll(raw[prefixEnd:stop], "\t", "    ")), 1)
	}

	underline := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "  %s\n  %s%s\n", line, strings.Repeat(" ", pad), st.caret.Sprint(underline))
	return err
}
