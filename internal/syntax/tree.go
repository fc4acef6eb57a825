package syntax

import (
	"fmt"

	"lattice/internal/diag"
)

// NodeID addresses a node inside its Tree's arena. NoNodeID means "absent".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

type nodeData struct {
	kind       Kind
	rng        TextRange
	parent     NodeID
	firstChild NodeID
	lastChild  NodeID
	prev       NodeID
	next       NodeID
}

// SyntaxError is a recoverable error recorded while building the tree.
type SyntaxError struct {
	Offset  TextSize
	Message string
	Code    diag.Code
}

func (e SyntaxError) String() string {
	return e.Message
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Message)
}

// Tree owns the source text, every node and the error list.
// A finished Tree is immutable and safe for concurrent readers.
type Tree struct {
	text   string
	nodes  *Arena[nodeData]
	root   NodeID
	errors []SyntaxError
}

// Root returns the top-level node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: t.root}
}

// Text returns the full source text the tree was built from.
func (t *Tree) Text() string { return t.text }

// Errors returns the recorded errors in discovery order.
// READONLY: callers must copy before reordering.
func (t *Tree) Errors() []SyntaxError { return t.errors }

// NodeCount returns the number of nodes, tokens included.
func (t *Tree) NodeCount() int { return int(t.nodes.Len()) }

// Node returns the handle for id, or the zero Node if id is out of range.
func (t *Tree) Node(id NodeID) Node {
	if id == NoNodeID || uint32(id) > t.nodes.Len() {
		return Node{}
	}
	return Node{tree: t, id: id}
}

func (t *Tree) data(id NodeID) *nodeData {
	return t.nodes.Get(uint32(id))
}
