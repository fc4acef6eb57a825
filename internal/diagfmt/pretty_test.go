package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice/internal/diag"
	"lattice/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.Add("/home/user/project/src/test.lt", content, 0)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnterminatedString,
		Message:  "unterminated string literal",
		Primary:  source.Span{File: fileID, Start: 8, End: 28},
	})

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.lt:1:9"},
		{"Relative path", PathModeRelative, "src/test.lt:1:9"},
		{"Basename only", PathModeBasename, "test.lt:1:9"},
		{"Auto keeps short path", PathModeAuto, "/home/user/project/src/test.lt:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode}))
			assert.Contains(t, buf.String(), tt.contains)
			assert.Contains(t, buf.String(), "ERROR LEX1002: unterminated string literal")
		})
	}
}

func TestPrettyCaretUnderline(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("caret.lt", []byte("fn f() {\n\tlet = 1;\n}\n"))
	bag := diag.NewBag(10)
	// "let" on line 2 starts at byte 10
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectName,
		Message:  "expected a name",
		Primary:  source.Span{File: id, Start: 10, End: 13},
	})

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "caret.lt:2:2: ERROR SYN2003: expected a name", lines[0])
	assert.Equal(t, "      let = 1;", lines[1])
	assert.Equal(t, "      ^~~", lines[2])
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("wide.lt", []byte("let 名前 = @;\n"))
	bag := diag.NewBag(10)
	off := uint32(strings.Index("let 名前 = @;", "@"))
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "unknown character '@'",
		Primary:  source.Span{File: id, Start: off, End: off + 1},
	})

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	lines := strings.Split(buf.String(), "\n")
	// "let " (4) + two wide runes (4) + " = " (3)
	assert.Equal(t, "  "+strings.Repeat(" ", 11)+"^", lines[2])
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.lt", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SynExpectItem, Message: "m", Primary: source.Span{File: id, End: 1}})

	var plain, colored bytes.Buffer
	require.NoError(t, Pretty(&plain, bag, fs, PrettyOpts{Color: false}))
	require.NoError(t, Pretty(&colored, bag, fs, PrettyOpts{Color: true}))
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestDiagnosticsJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.lt", []byte("a\nbc"))
	bag := diag.NewBag(10)
	for i := range 3 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynExpectItem,
			Message:  "m",
			Primary:  source.Span{File: id, Start: uint32(i + 1), End: uint32(i + 2)},
			Notes:    []diag.Note{{Span: source.Span{File: id}, Msg: "see here"}},
		})
	}
	doc := BuildDocument(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 2, PathMode: PathModeBasename})
	require.Equal(t, 2, doc.Count)
	assert.True(t, doc.Truncated)
	assert.Equal(t, "SYN2002", doc.Diagnostics[0].Code)
	assert.Equal(t, uint32(2), doc.Diagnostics[1].Line)
	assert.Equal(t, uint32(1), doc.Diagnostics[1].Col)
	assert.Equal(t, "j.lt", doc.Diagnostics[0].File)
	require.Len(t, doc.Diagnostics[0].Notes, 1)
	assert.Equal(t, uint32(1), doc.Diagnostics[0].Notes[0].Line)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{}))
	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Count)
	assert.Empty(t, decoded.Diagnostics[0].Notes)
	assert.Zero(t, decoded.Diagnostics[0].Line)
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/testdata/sample.lt", []byte("a\nb\n"), 0)

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LexIdentNotNFC,
		Message:  "another",
		Primary:  source.Span{File: file, Start: 2, End: 3},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "first line\nsecond",
		Primary:  source.Span{File: file, Start: 0, End: 1},
		Notes:    []diag.Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"}},
	})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Primary: source.Span{File: 7}})

	var buf bytes.Buffer
	require.NoError(t, Short(&buf, bag, fs, true))
	assert.Equal(t, "error SYN2001 testdata/sample.lt:1:1 first line second\n"+
		"note SYN2001 testdata/sample.lt:2:1 note line\n"+
		"warning LEX1005 testdata/sample.lt:2:1 another\n", buf.String())

	buf.Reset()
	require.NoError(t, Short(&buf, diag.NewBag(1), fs, true))
	assert.Empty(t, buf.String())
}
