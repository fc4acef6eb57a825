package parser

import (
	"slices"

	"lattice/internal/syntax"
)

type eventKind uint8

const (
	evOpen eventKind = iota + 1
	evClose
	evAdvance
)

// event is one step of the flat parse log replayed by build.
type event struct {
	kind eventKind
	node syntax.Kind // только для evOpen
}

type markOpened struct{ index int }

type markClosed struct{ index int }

func (p *Parser) open() markOpened {
	m := markOpened{index: len(p.events)}
	p.events = append(p.events, event{kind: evOpen, node: syntax.Tombstone})
	return m
}

// openBefore starts a node that wraps an already closed one (left operand
// of a binary expression, callee of a call).
func (p *Parser) openBefore(m markClosed) markOpened {
	p.events = slices.Insert(p.events, m.index, event{kind: evOpen, node: syntax.Tombstone})
	return markOpened{index: m.index}
}

func (p *Parser) close(m markOpened, kind syntax.Kind) markClosed {
	p.events[m.index].node = kind
	p.events = append(p.events, event{kind: evClose})
	p.fuel = fuelLimit
	return markClosed(m)
}

// build replays the events into a tree. Trivia goes to the enclosing node
// before a node opens and before each token, never before a close, so
// nodes never start or end with trivia. The root absorbs the leading and
// trailing trivia of the file.
func (p *Parser) build() *syntax.Tree {
	b := syntax.NewBuilder(p.text)
	next := 0
	flushTrivia := func() {
		for next < len(p.tokens) && p.tokens[next].IsTrivia() {
			b.Token(p.tokens[next].Kind, p.tokens[next].Len())
			next++
		}
	}

	depth := 0
	for _, ev := range p.events {
		switch ev.kind {
		case evOpen:
			if ev.node == syntax.Tombstone {
				panic("parser: node opened but never closed")
			}
			if depth > 0 {
				flushTrivia()
			}
			b.StartNode(ev.node)
			depth++
		case evClose:
			if depth == 1 {
				flushTrivia()
			}
			b.FinishNode()
			depth--
		case evAdvance:
			flushTrivia()
			tok := p.tokens[next]
			b.Token(tok.Kind, tok.Len())
			next++
		}
	}

	for _, e := range p.errors {
		b.Error(e)
	}
	return b.Finish()
}
