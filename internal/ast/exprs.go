package ast

import (
	"iter"

	"lattice/internal/syntax"
)

// Expr is any expression node.
type Expr interface {
	Node
	expr()
}

func CastExpr(n syntax.Node) (Expr, bool) {
	if !n.IsValid() {
		return nil, false
	}
	switch n.Kind() {
	case syntax.Literal:
		return Literal{n}, true
	case syntax.PathExpr:
		return PathExpr{n}, true
	case syntax.CallExpr:
		return CallExpr{n}, true
	case syntax.ParenExpr:
		return ParenExpr{n}, true
	case syntax.BinExpr:
		return BinExpr{n}, true
	case syntax.PrefixExpr:
		return PrefixExpr{n}, true
	case syntax.IfExpr:
		return IfExpr{n}, true
	case syntax.WhileExpr:
		return WhileExpr{n}, true
	case syntax.BlockExpr:
		return BlockExpr{n}, true
	}
	return nil, false
}

type Literal struct{ node syntax.Node }

func (Literal) expr() {}
func (l Literal) Syntax() syntax.Node { return l.node }

// Token returns the literal token (INT_NUMBER, STRING, TRUE_KW, FALSE_KW).
func (l Literal) Token() syntax.Node {
	for c := range l.node.Children() {
		if !c.Kind().IsTrivia() {
			return c
		}
	}
	return syntax.Node{}
}

type PathExpr struct{ node syntax.Node }

func (PathExpr) expr() {}
func (p PathExpr) Syntax() syntax.Node { return p.node }
func (p PathExpr) NameRef() (NameRef, bool) { return firstChild(p.node, CastNameRef) }

type CallExpr struct{ node syntax.Node }

func (CallExpr) expr() {}
func (c CallExpr) Syntax() syntax.Node { return c.node }
func (c CallExpr) Callee() (Expr, bool) { return firstChild(c.node, CastExpr) }
func (c CallExpr) Args() (ArgList, bool) { return firstChild(c.node, CastArgList) }

type ArgList struct{ node syntax.Node }

func CastArgList(n syntax.Node) (ArgList, bool) { return ArgList{n}, isKind(n, syntax.ArgList) }

func (a ArgList) Syntax() syntax.Node { return a.node }
func (a ArgList) Args() iter.Seq[Expr] { return children(a.node, CastExpr) }

type ParenExpr struct{ node syntax.Node }

func (ParenExpr) expr() {}
func (p ParenExpr) Syntax() syntax.Node { return p.node }
func (p ParenExpr) Inner() (Expr, bool) { return firstChild(p.node, CastExpr) }

type BinExpr struct{ node syntax.Node }

func (BinExpr) expr() {}
func (b BinExpr) Syntax() syntax.Node { return b.node }
func (b BinExpr) Lhs() (Expr, bool) { return nthChild(b.node, 0, CastExpr) }
func (b BinExpr) Rhs() (Expr, bool) { return nthChild(b.node, 1, CastExpr) }

// Op returns the operator token.
func (b BinExpr) Op() (syntax.Node, bool) {
	for c := range b.node.Children() {
		if c.IsLeaf() && !c.Kind().IsTrivia() {
			return c, true
		}
	}
	return syntax.Node{}, false
}

type PrefixExpr struct{ node syntax.Node }

func (PrefixExpr) expr() {}
func (p PrefixExpr) Syntax() syntax.Node { return p.node }
func (p PrefixExpr) Operand() (Expr, bool) { return firstChild(p.node, CastExpr) }

// Op returns the '-' or '!' token.
func (p PrefixExpr) Op() syntax.Node { return p.node.FirstChild() }

type IfExpr struct{ node syntax.Node }

func (IfExpr) expr() {}
func (i IfExpr) Syntax() syntax.Node { return i.node }
func (i IfExpr) Cond() (Expr, bool) { return firstChild(i.node, CastExpr) }
func (i IfExpr) Then() (Block, bool) { return firstChild(i.node, CastBlock) }
func (i IfExpr) Else() (ElseBranch, bool) {
	return firstChild(i.node, CastElseBranch)
}

type ElseBranch struct{ node syntax.Node }

func CastElseBranch(n syntax.Node) (ElseBranch, bool) {
	return ElseBranch{n}, isKind(n, syntax.ElseBranch)
}

func (e ElseBranch) Syntax() syntax.Node { return e.node }

// If returns the chained "else if"; Block the plain "else { }".
func (e ElseBranch) If() (IfExpr, bool) {
	return firstChild(e.node, func(n syntax.Node) (IfExpr, bool) {
		return IfExpr{n}, isKind(n, syntax.IfExpr)
	})
}

func (e ElseBranch) Block() (Block, bool) { return firstChild(e.node, CastBlock) }

type WhileExpr struct{ node syntax.Node }

func (WhileExpr) expr() {}
func (w WhileExpr) Syntax() syntax.Node { return w.node }
func (w WhileExpr) Cond() (Expr, bool) { return firstChild(w.node, CastExpr) }
func (w WhileExpr) Body() (Block, bool) { return firstChild(w.node, CastBlock) }

type BlockExpr struct{ node syntax.Node }

func (BlockExpr) expr() {}
func (b BlockExpr) Syntax() syntax.Node { return b.node }
func (b BlockExpr) Block() (Block, bool) { return firstChild(b.node, CastBlock) }
