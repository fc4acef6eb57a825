package ast

import (
	"iter"

	"lattice/internal/syntax"
)

type Block struct{ node syntax.Node }

func CastBlock(n syntax.Node) (Block, bool) { return Block{n}, isKind(n, syntax.Block) }

func (b Block) Syntax() syntax.Node { return b.node }
func (b Block) Stmts() iter.Seq[Stmt] { return children(b.node, CastStmt) }

// LCurly / RCurly return the delimiters; RCurly is absent in an unclosed block.
func (b Block) LCurly() (syntax.Node, bool) { return token(b.node, syntax.LCurly) }
func (b Block) RCurly() (syntax.Node, bool) { return token(b.node, syntax.RCurly) }

// Stmt is LetStmt, ExprStmt, ReturnStmt or a nested Item.
type Stmt interface {
	Node
	stmt()
}

func CastStmt(n syntax.Node) (Stmt, bool) {
	if !n.IsValid() {
		return nil, false
	}
	switch n.Kind() {
	case syntax.LetStmt:
		return LetStmt{n}, true
	case syntax.ExprStmt:
		return ExprStmt{n}, true
	case syntax.ReturnStmt:
		return ReturnStmt{n}, true
	case syntax.FnDef:
		return ItemStmt{FnDef{n}}, true
	case syntax.StructDef:
		return ItemStmt{StructDef{n}}, true
	}
	return nil, false
}

type LetStmt struct{ node syntax.Node }

func (LetStmt) stmt() {}

func CastLetStmt(n syntax.Node) (LetStmt, bool) { return LetStmt{n}, isKind(n, syntax.LetStmt) }

func (s LetStmt) Syntax() syntax.Node { return s.node }
func (s LetStmt) Name() (Name, bool) { return firstChild(s.node, CastName) }
func (s LetStmt) Init() (Expr, bool) { return firstChild(s.node, CastExpr) }

type ExprStmt struct{ node syntax.Node }

func (ExprStmt) stmt() {}

func CastExprStmt(n syntax.Node) (ExprStmt, bool) {
	return ExprStmt{n}, isKind(n, syntax.ExprStmt)
}

func (s ExprStmt) Syntax() syntax.Node { return s.node }
func (s ExprStmt) Expr() (Expr, bool) { return firstChild(s.node, CastExpr) }

// HasSemicolon reports whether the statement ends with ';'.
func (s ExprStmt) HasSemicolon() bool {
	_, ok := token(s.node, syntax.Semi)
	return ok
}

type ReturnStmt struct{ node syntax.Node }

func (ReturnStmt) stmt() {}

func CastReturnStmt(n syntax.Node) (ReturnStmt, bool) {
	return ReturnStmt{n}, isKind(n, syntax.ReturnStmt)
}

func (s ReturnStmt) Syntax() syntax.Node { return s.node }
func (s ReturnStmt) Value() (Expr, bool) { return firstChild(s.node, CastExpr) }

// ItemStmt is a function or struct declared inside a block.
type ItemStmt struct{ Item Item }

func (ItemStmt) stmt() {}

func (s ItemStmt) Syntax() syntax.Node { return s.Item.Syntax() }
