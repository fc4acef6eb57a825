package syntax

import (
	"fmt"
	"iter"
)

// Node is a cheap, comparable handle to a node of a Tree.
// The zero Node is "absent": IsValid reports false and every
// navigation method returns the zero Node again.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) IsValid() bool { return n.tree != nil && n.id != NoNodeID }

func (n Node) ID() NodeID { return n.id }

func (n Node) Tree() *Tree { return n.tree }

func (n Node) link(id NodeID) Node {
	if id == NoNodeID {
		return Node{}
	}
	return Node{tree: n.tree, id: id}
}

func (n Node) Kind() Kind {
	if !n.IsValid() {
		return Tombstone
	}
	return n.tree.data(n.id).kind
}

func (n Node) Range() TextRange {
	if !n.IsValid() {
		return TextRange{}
	}
	return n.tree.data(n.id).rng
}

// Parent is absent only for the root.
func (n Node) Parent() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.link(n.tree.data(n.id).parent)
}

func (n Node) FirstChild() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.link(n.tree.data(n.id).firstChild)
}

func (n Node) LastChild() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.link(n.tree.data(n.id).lastChild)
}

func (n Node) NextSibling() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.link(n.tree.data(n.id).next)
}

func (n Node) PrevSibling() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.link(n.tree.data(n.id).prev)
}

// IsLeaf reports whether the node has no children. Tokens are always
// leaves; an empty composite node (e.g. an ERROR with nothing in it) is too.
func (n Node) IsLeaf() bool {
	return !n.FirstChild().IsValid()
}

// Text returns the source slice covered by the node.
func (n Node) Text() string {
	if !n.IsValid() {
		return ""
	}
	r := n.Range()
	return n.tree.text[r.Start:r.End]
}

// Errors returns the error list attached to the tree this node belongs to.
func (n Node) Errors() []SyntaxError {
	if n.tree == nil {
		return nil
	}
	return n.tree.errors
}

// Children iterates over direct children in source order.
func (n Node) Children() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildOfKind returns the first direct child of kind k.
func (n Node) ChildOfKind(k Kind) Node {
	for c := range n.Children() {
		if c.Kind() == k {
			return c
		}
	}
	return Node{}
}

// Descendants yields n and every node below it in pre-order.
func (n Node) Descendants() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		w := n.Preorder()
		for {
			ev, ok := w.Next()
			if !ok {
				return
			}
			if ev.Kind == Enter && !yield(ev.Node) {
				return
			}
		}
	}
}

// Ancestors yields n, its parent, and so on up to the root.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for cur := n; cur.IsValid(); cur = cur.Parent() {
			if !yield(cur) {
				return
			}
		}
	}
}

// String renders the node as KIND@[start; end).
func (n Node) String() string {
	if !n.IsValid() {
		return "<none>"
	}
	return fmt.Sprintf("%s@%s", n.Kind(), n.Range())
}
