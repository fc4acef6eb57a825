package ast

import (
	"iter"

	"lattice/internal/syntax"
)

// Node is implemented by every typed wrapper.
type Node interface {
	Syntax() syntax.Node
}

// firstChild returns the first child castable by cast.
func firstChild[T any](n syntax.Node, cast func(syntax.Node) (T, bool)) (T, bool) {
	for c := range n.Children() {
		if v, ok := cast(c); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// children yields every child castable by cast.
func children[T any](n syntax.Node, cast func(syntax.Node) (T, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range n.Children() {
			if v, ok := cast(c); ok && !yield(v) {
				return
			}
		}
	}
}

// nthChild returns the i-th (0-based) child castable by cast.
func nthChild[T any](n syntax.Node, i int, cast func(syntax.Node) (T, bool)) (T, bool) {
	for v := range children(n, cast) {
		if i == 0 {
			return v, true
		}
		i--
	}
	var zero T
	return zero, false
}

// token returns the first direct child token of kind k.
func token(n syntax.Node, k syntax.Kind) (syntax.Node, bool) {
	c := n.ChildOfKind(k)
	return c, c.IsValid()
}

func isKind(n syntax.Node, k syntax.Kind) bool {
	return n.IsValid() && n.Kind() == k
}
