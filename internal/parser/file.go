package parser

import (
	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/source"
	"lattice/internal/syntax"
)

// File is the result of parsing one source file. The tree is always
// complete: every byte of the input belongs to exactly one token.
type File struct {
	tree   *syntax.Tree
	source *source.File
}

// Syntax returns the root SOURCE_FILE node.
func (f *File) Syntax() syntax.Node { return f.tree.Root() }

// Tree returns the underlying tree.
func (f *File) Tree() *syntax.Tree { return f.tree }

// Source returns the file the tree was parsed from.
func (f *File) Source() *source.File { return f.source }

// AST returns the typed view of the root.
func (f *File) AST() ast.SourceFile {
	sf, ok := ast.CastSourceFile(f.tree.Root())
	if !ok {
		panic("parser: root is not a SOURCE_FILE")
	}
	return sf
}

// Errors returns the syntax errors in discovery order. READONLY.
func (f *File) Errors() []syntax.SyntaxError { return f.tree.Errors() }

// Diagnostics converts the syntax errors into diagnostics for f's file.
func (f *File) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(f.tree.Errors()))
	for _, e := range f.tree.Errors() {
		code := e.Code
		if code == 0 {
			code = diag.SynUnexpectedToken
		}
		out = append(out, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     code,
			Message:  e.Message,
			Primary:  source.At(f.source.ID, e.Offset),
		})
	}
	return out
}
