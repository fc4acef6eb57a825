package syntax

import (
	"fmt"

	"fortio.org/safecast"
)

// Builder assembles a Tree from a flat sequence of start/token/finish calls.
// Misuse (unbalanced nodes, tokens outside any node, running past the text)
// is a programming error and panics.
type Builder struct {
	text   string
	nodes  *Arena[nodeData]
	stack  []NodeID
	pos    TextSize
	end    TextSize
	root   NodeID
	errors []SyntaxError
}

// NewBuilder prepares a builder over text.
func NewBuilder(text string) *Builder {
	end, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("syntax: text length overflow: %w", err))
	}
	return &Builder{
		text:  text,
		nodes: NewArena[nodeData](len(text)/2 + 1),
		end:   end,
	}
}

// Pos returns the offset of the next token.
func (b *Builder) Pos() TextSize { return b.pos }

// StartNode opens a composite node at the current position.
func (b *Builder) StartNode(kind Kind) {
	if b.root != NoNodeID {
		panic("syntax: StartNode after the root was finished")
	}
	id := b.alloc(kind, TextRange{Start: b.pos, End: b.pos})
	b.stack = append(b.stack, id)
}

// Token appends a leaf of kind covering the next n bytes.
func (b *Builder) Token(kind Kind, n TextSize) {
	if len(b.stack) == 0 {
		panic(fmt.Sprintf("syntax: token %s outside of any node", kind))
	}
	if b.pos+n > b.end {
		panic(fmt.Sprintf("syntax: token %s at %d+%d runs past text end %d", kind, b.pos, n, b.end))
	}
	b.alloc(kind, RangeAt(b.pos, n))
	b.pos += n
}

// FinishNode closes the innermost open node.
func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		panic("syntax: FinishNode without matching StartNode")
	}
	id := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.nodes.Get(uint32(id)).rng.End = b.pos
	if len(b.stack) == 0 {
		b.root = NodeID(id)
	}
}

// Error records a syntax error. Errors are kept in call order.
func (b *Builder) Error(err SyntaxError) {
	b.errors = append(b.errors, err)
}

// Finish returns the completed tree. Every started node must be finished
// and every byte of the text must belong to a token.
func (b *Builder) Finish() *Tree {
	if len(b.stack) != 0 {
		panic(fmt.Sprintf("syntax: %d nodes left open", len(b.stack)))
	}
	if b.root == NoNodeID {
		panic("syntax: no root node")
	}
	if b.pos != b.end {
		panic(fmt.Sprintf("syntax: tree covers %d of %d bytes", b.pos, b.end))
	}
	return &Tree{
		text:   b.text,
		nodes:  b.nodes,
		root:   b.root,
		errors: b.errors,
	}
}

func (b *Builder) alloc(kind Kind, rng TextRange) NodeID {
	var parent NodeID
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1]
	}
	id := NodeID(b.nodes.Allocate(nodeData{kind: kind, rng: rng, parent: parent}))
	if parent == NoNodeID {
		return id
	}
	p := b.nodes.Get(uint32(parent))
	if p.lastChild != NoNodeID {
		b.nodes.Get(uint32(p.lastChild)).next = id
		b.nodes.Get(uint32(id)).prev = p.lastChild
	} else {
		p.firstChild = id
	}
	p.lastChild = id
	return id
}
