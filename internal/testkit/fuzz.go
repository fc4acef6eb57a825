package testkit

import (
	"fmt"
	"runtime/debug"

	"lattice/internal/ast"
	"lattice/internal/diagfmt"
	"lattice/internal/parser"
	"lattice/internal/syntax"
)

// CheckFuzzInvariants parses text, validates brace structure and walks the
// typed view and the error list. Any violation panics. The input is never
// modified, so calling it twice on the same text behaves the same.
func CheckFuzzInvariants(text string) {
	file := parser.Parse(text)
	root := file.Syntax()
	ValidateBlockStructure(root)
	exerciseAST(file.AST())
	_ = file.Errors()
}

// FuzzFailure is a recovered invariant violation for one input.
type FuzzFailure struct {
	Input string
	Panic any
	Stack []byte
}

func (f *FuzzFailure) Error() string {
	return fmt.Sprintf("fuzz invariant violated: %v\ninput: %q", f.Panic, f.Input)
}

func (f *FuzzFailure) Unwrap() error {
	if err, ok := f.Panic.(error); ok {
		return err
	}
	return nil
}

// CheckFuzzInvariantsErr runs CheckFuzzInvariants plus the tree shape and
// dump checks, converting any panic into a *FuzzFailure.
func CheckFuzzInvariantsErr(text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FuzzFailure{Input: text, Panic: r, Stack: debug.Stack()}
		}
	}()

	CheckFuzzInvariants(text)

	file := parser.Parse(text)
	if err := CheckTreeInvariants(file.Syntax()); err != nil {
		panic(err)
	}
	dump := diagfmt.DumpTree(file.Syntax())
	Invariant(dump == diagfmt.DumpTree(file.Syntax()), "tree dump is not deterministic")
	return nil
}

// exerciseAST touches every typed accessor on every node. Results are
// discarded; the point is that none of them panics on a broken tree.
func exerciseAST(sf ast.SourceFile) {
	for item := range sf.Items() {
		_, _ = item.Name()
	}
	for fn := range sf.Functions() {
		_, _ = fn.Body()
	}

	for n := range sf.Syntax().Descendants() {
		exerciseNode(n)
	}
}

func exerciseNode(n syntax.Node) {
	if fn, ok := ast.CastFnDef(n); ok {
		_, _ = fn.Name()
		_, _ = fn.RetType()
		_, _ = fn.FnKeyword()
		if params, ok := fn.Params(); ok {
			for p := range params.Params() {
				_, _ = p.Name()
				_, _ = p.Type()
			}
		}
	}
	if s, ok := ast.CastStructDef(n); ok {
		_, _ = s.Name()
		for f := range s.Fields() {
			_, _ = f.Name()
			_, _ = f.Type()
		}
	}
	if b, ok := ast.CastBlock(n); ok {
		_, _ = b.LCurly()
		_, _ = b.RCurly()
		for st := range b.Stmts() {
			exerciseStmt(st)
		}
	}
	if e, ok := ast.CastExpr(n); ok {
		exerciseExpr(e)
	}
}

func exerciseStmt(st ast.Stmt) {
	switch st := st.(type) {
	case ast.LetStmt:
		_, _ = st.Name()
		_, _ = st.Init()
	case ast.ExprStmt:
		_, _ = st.Expr()
		_ = st.HasSemicolon()
	case ast.ReturnStmt:
		_, _ = st.Value()
	case ast.ItemStmt:
		_, _ = st.Item.Name()
	}
}

func exerciseExpr(e ast.Expr) {
	switch e := e.(type) {
	case ast.Literal:
		_ = e.Token()
	case ast.PathExpr:
		if ref, ok := e.NameRef(); ok {
			_ = ref.Text()
		}
	case ast.CallExpr:
		_, _ = e.Callee()
		if args, ok := e.Args(); ok {
			for range args.Args() {
			}
		}
	case ast.ParenExpr:
		_, _ = e.Inner()
	case ast.BinExpr:
		_, _ = e.Lhs()
		_, _ = e.Rhs()
		_, _ = e.Op()
	case ast.PrefixExpr:
		_ = e.Op()
		_, _ = e.Operand()
	case ast.IfExpr:
		_, _ = e.Cond()
		_, _ = e.Then()
		if els, ok := e.Else(); ok {
			_, _ = els.If()
			_, _ = els.Block()
		}
	case ast.WhileExpr:
		_, _ = e.Cond()
		_, _ = e.Body()
	case ast.BlockExpr:
		_, _ = e.Block()
	}
}
