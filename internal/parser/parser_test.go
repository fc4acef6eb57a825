package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice/internal/ast"
	"lattice/internal/diag"
	"lattice/internal/parser"
	"lattice/internal/source"
	"lattice/internal/syntax"
	"lattice/internal/testkit"
	"lattice/internal/trace"
)

func TestParseFunctionSignature(t *testing.T) {
	f := parser.Parse("fn add(a: i32, b: i32) -> i32 { a + b }\n")
	require.Empty(t, f.Errors(), errorsSummary(f))

	var fns []ast.FnDef
	for fn := range f.AST().Functions() {
		fns = append(fns, fn)
	}
	require.Len(t, fns, 1)
	fn := fns[0]

	name, ok := fn.Name()
	require.True(t, ok)
	assert.Equal(t, "add", name.Text())

	params, ok := fn.Params()
	require.True(t, ok)
	var got []string
	for p := range params.Params() {
		pn, _ := p.Name()
		pt, _ := p.Type()
		got = append(got, pn.Text()+":"+pt.Text())
	}
	assert.Equal(t, []string{"a:i32", "b:i32"}, got)

	ret, ok := fn.RetType()
	require.True(t, ok)
	rt, ok := ret.Type()
	require.True(t, ok)
	assert.Equal(t, "i32", rt.Text())

	body, ok := fn.Body()
	require.True(t, ok)
	var stmts []ast.Stmt
	for st := range body.Stmts() {
		stmts = append(stmts, st)
	}
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(ast.ExprStmt)
	require.True(t, ok)
	assert.False(t, es.HasSemicolon())
}

func TestParseStructForms(t *testing.T) {
	f := parser.Parse("struct P { x: i32, y: i32, }\nstruct U;\n")
	require.Empty(t, f.Errors(), errorsSummary(f))

	var names []string
	var fieldCounts []int
	for item := range f.AST().Items() {
		s, ok := item.(ast.StructDef)
		require.True(t, ok)
		n, _ := s.Name()
		names = append(names, n.Text())
		count := 0
		for range s.Fields() {
			count++
		}
		fieldCounts = append(fieldCounts, count)
	}
	assert.Equal(t, []string{"P", "U"}, names)
	assert.Equal(t, []int{2, 0}, fieldCounts)
}

func TestParsePrecedence(t *testing.T) {
	f := parser.Parse("fn f() { 1 + 2 * 3 - 4; }")
	require.Empty(t, f.Errors(), errorsSummary(f))

	fn, ok := first(f.AST().Functions())
	require.True(t, ok)
	body, _ := fn.Body()
	st, ok := first(body.Stmts())
	require.True(t, ok)
	expr, ok := st.(ast.ExprStmt).Expr()
	require.True(t, ok)

	// ((1 + (2 * 3)) - 4)
	top := expr.(ast.BinExpr)
	op, _ := top.Op()
	assert.Equal(t, syntax.Minus, op.Kind())

	lhs, _ := top.Lhs()
	plus := lhs.(ast.BinExpr)
	op, _ = plus.Op()
	assert.Equal(t, syntax.Plus, op.Kind())

	rhs, _ := plus.Rhs()
	mul := rhs.(ast.BinExpr)
	op, _ = mul.Op()
	assert.Equal(t, syntax.Star, op.Kind())
	assert.Equal(t, "2 * 3", mul.Syntax().Text())
}

func TestParseCallAndPrefix(t *testing.T) {
	f := parser.Parse("fn f() { -g(1, x)(2); }")
	require.Empty(t, f.Errors(), errorsSummary(f))

	var prefix ast.PrefixExpr
	found := false
	for n := range f.Syntax().Descendants() {
		if e, ok := ast.CastExpr(n); ok {
			if p, ok := e.(ast.PrefixExpr); ok {
				prefix, found = p, true
				break
			}
		}
	}
	require.True(t, found)
	assert.Equal(t, syntax.Minus, prefix.Op().Kind())

	operand, ok := prefix.Operand()
	require.True(t, ok)
	outer, ok := operand.(ast.CallExpr)
	require.True(t, ok)
	callee, _ := outer.Callee()
	inner, ok := callee.(ast.CallExpr)
	require.True(t, ok)
	args, _ := inner.Args()
	n := 0
	for range args.Args() {
		n++
	}
	assert.Equal(t, 2, n)
}

func TestParseIfElseChain(t *testing.T) {
	f := parser.Parse("fn f() { if a { 1 } else if b { 2 } else { 3 } }")
	require.Empty(t, f.Errors(), errorsSummary(f))

	var first ast.IfExpr
	for n := range f.Syntax().Descendants() {
		if n.Kind() == syntax.IfExpr {
			e, _ := ast.CastExpr(n)
			first = e.(ast.IfExpr)
			break
		}
	}
	els, ok := first.Else()
	require.True(t, ok)
	chained, ok := els.If()
	require.True(t, ok)
	last, ok := chained.Else()
	require.True(t, ok)
	blk, ok := last.Block()
	require.True(t, ok)
	assert.Equal(t, "{ 3 }", blk.Syntax().Text())
}

func TestParseErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"fn", []string{"expected a name", "expected a parameter list", "expected a block"}},
		{"fn f() { let = 1; }", []string{"expected a name"}},
		{"fn f() { 1 2 }", []string{"expected SEMI"}},
		{"}", []string{"unmatched closing brace"}},
		{"x", []string{"expected an item"}},
		{"{ }", []string{"unexpected block"}},
		{"fn f(a) {}", []string{"expected COLON"}},
		{"fn f(,) {}", []string{"expected a parameter"}},
		{"fn f() -> {}", []string{"expected a type"}},
		{"fn f() { if { } }", []string{"expected a condition"}},
		{"struct S", []string{"expected a field list"}},
		{"struct S { 1 }", []string{"expected a field"}},
		{"fn f() { return 1 }", []string{"expected SEMI"}},
		{"fn f() { (1 }", []string{"expected R_PAREN"}},
		{"fn f() { 1 + }", []string{"expected an expression"}},
		{"fn f() {", []string{"expected R_CURLY"}},
		{"fn f() { g(;) }", []string{"expected an argument"}},
		{"fn f() { ; }", []string{"expected a statement"}},
		{"fn f() { @ }", []string{"unknown character '@'", "expected a statement"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := parser.Parse(tt.input)
			assert.Equal(t, tt.want, errorMessages(f), errorsSummary(f))
		})
	}
}

func TestParseErrorOffsets(t *testing.T) {
	f := parser.Parse("fn")
	require.Len(t, f.Errors(), 3)
	for _, e := range f.Errors() {
		// "expected ..." sits right after the last good token
		assert.EqualValues(t, 2, e.Offset)
	}

	f = parser.Parse("  }")
	require.Len(t, f.Errors(), 1)
	assert.EqualValues(t, 2, f.Errors()[0].Offset)
	assert.Equal(t, diag.SynUnmatchedBrace, f.Errors()[0].Code)
}

func TestParseLossless(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"// only a comment",
		"  fn   f ( )  {  }  ",
		"fn /* inner */ f() { /* body */ }",
		"}{)(][",
		"fn f() { \"open string\n}",
		"fn f() { 0x_ }",
		"struct 🦀 { }",
	}
	for _, in := range inputs {
		f := parser.Parse(in)
		root := f.Syntax()
		assert.Equal(t, in, root.Text())
		assert.Equal(t, syntax.SourceFile, root.Kind())
		assert.NoError(t, testkit.CheckTreeInvariants(root), "input %q", in)
		assert.NoError(t, testkit.CheckBlockStructure(root), "input %q", in)
	}
}

func TestParseTriviaPlacement(t *testing.T) {
	f := parser.Parse(" fn /*c*/ f() {} ")
	root := f.Syntax()

	first := root.FirstChild()
	assert.Equal(t, syntax.Whitespace, first.Kind())
	assert.Equal(t, syntax.Whitespace, root.LastChild().Kind())

	fn := first.NextSibling()
	require.Equal(t, syntax.FnDef, fn.Kind())
	assert.Equal(t, "fn /*c*/ f() {}", fn.Text())
	assert.True(t, fn.ChildOfKind(syntax.Comment).IsValid())
}

func TestParseMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("many.lt", []byte("a b c d e")))

	f, err := parser.ParseFile(context.Background(), file, parser.Options{MaxErrors: 2})
	require.NoError(t, err)

	errs := f.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, diag.SynExpectItem, errs[0].Code)
	assert.Equal(t, diag.SynExpectItem, errs[1].Code)
	assert.Equal(t, diag.SynErrorLimitReached, errs[2].Code)
	// the tree itself is still complete
	assert.Equal(t, "a b c d e", f.Syntax().Text())
}

func TestParseFileCanceled(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.lt", []byte("fn f() {}")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.ParseFile(ctx, file, parser.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseFileTraces(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.lt", []byte("fn f() {}")))

	ring := trace.NewRing(16, trace.LevelDebug)
	_, err := parser.ParseFile(context.Background(), file, parser.Options{Tracer: ring})
	require.NoError(t, err)

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindEnd {
			names = append(names, ev.Name)
		}
	}
	assert.Equal(t, []string{"lex", "parse"}, names)
}

func TestFileDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("d.lt", []byte("fn f() {\n  let = 1;\n}\n")))
	f, err := parser.ParseFile(context.Background(), file, parser.Options{})
	require.NoError(t, err)

	diags := f.Diagnostics()
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, diag.SynExpectName, d.Code)
	assert.Equal(t, file.ID, d.Primary.File)

	start, _ := fs.Resolve(d.Primary)
	assert.Equal(t, source.LineCol{Line: 2, Col: 6}, start)
}

func TestParseDeepNesting(t *testing.T) {
	for _, in := range []string{
		strings.Repeat("{", 2000),
		"fn f() {" + strings.Repeat("(", 2000) + "1",
		"fn f() {" + strings.Repeat("-", 2000) + "1; }",
		"fn f() { x" + strings.Repeat(" + x", 2000) + "; }",
	} {
		f := parser.Parse(in)
		assert.Equal(t, in, f.Syntax().Text())
		assert.NoError(t, testkit.CheckBlockStructure(f.Syntax()))
	}
}
