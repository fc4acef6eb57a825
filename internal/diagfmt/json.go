package diagfmt

import (
	"encoding/json"
	"io"

	"lattice/internal/diag"
	"lattice/internal/source"
)

// Record is one diagnostic in the JSON output. Positions are 1-based and
// present only with JSONOpts.IncludePositions.
type Record struct {
	Code     string       `json:"code"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	File     string       `json:"file"`
	Start    uint32       `json:"start"`
	End      uint32       `json:"end"`
	Line     uint32       `json:"line,omitempty"`
	Col      uint32       `json:"col,omitempty"`
	Notes    []NoteRecord `json:"notes,omitempty"`
}

type NoteRecord struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

type Document struct {
	Diagnostics []Record `json:"diagnostics"`
	Count       int      `json:"count"`
	Truncated   bool     `json:"truncated,omitempty"`
	Dropped     int      `json:"dropped,omitempty"`
}

// BuildDocument converts bag into the JSON document without encoding it.
func BuildDocument(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Document {
	items := bag.Items()
	doc := Document{Diagnostics: make([]Record, 0, len(items)), Dropped: bag.Dropped()}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		doc.Truncated = true
	}
	for i := range items {
		doc.Diagnostics = append(doc.Diagnostics, record(&items[i], fs, opts))
	}
	doc.Count = len(doc.Diagnostics)
	return doc
}

func record(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) Record {
	r := Record{
		Code:     d.Code.ID(),
		Severity: d.Severity.String(),
		Message:  d.Message,
		Start:    d.Primary.Start,
		End:      d.Primary.End,
	}
	if f, ok := fs.Lookup(d.Primary.File); ok {
		r.File = f.FormatPath(opts.PathMode.format(), fs.BaseDir())
		if opts.IncludePositions {
			start, _ := fs.Resolve(d.Primary)
			r.Line, r.Col = start.Line, start.Col
		}
	}
	if !opts.IncludeNotes {
		return r
	}
	for _, n := range d.Notes {
		nr := NoteRecord{Message: n.Msg}
		if f, ok := fs.Lookup(n.Span.File); ok && opts.IncludePositions {
			start, _ := fs.Resolve(n.Span)
			nr.File = f.FormatPath(opts.PathMode.format(), fs.BaseDir())
			nr.Line, nr.Col = start.Line, start.Col
		}
		r.Notes = append(r.Notes, nr)
	}
	return r
}

// JSON writes bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocument(bag, fs, opts))
}
