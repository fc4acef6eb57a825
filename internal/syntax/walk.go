package syntax

import "iter"

// WalkKind distinguishes the two traversal events.
type WalkKind uint8

const (
	Enter WalkKind = iota + 1
	Leave
)

func (k WalkKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	}
	return "unknown"
}

// WalkEvent is emitted once on entry and once on exit of every node.
type WalkEvent struct {
	Kind WalkKind
	Node Node
}

// Walker produces pre-order enter/leave events for a subtree. It follows
// parent and sibling links instead of recursing, so arbitrarily deep trees
// need no extra stack.
type Walker struct {
	start Node
	next  WalkEvent
	done  bool
}

// Preorder returns a walker over the subtree rooted at n.
// A walker over the zero Node yields nothing.
func (n Node) Preorder() *Walker {
	w := &Walker{start: n}
	w.Reset()
	return w
}

// Reset rewinds the walker to the first event.
func (w *Walker) Reset() {
	w.done = !w.start.IsValid()
	w.next = WalkEvent{Kind: Enter, Node: w.start}
}

// Next returns the next event and false once the subtree is exhausted.
func (w *Walker) Next() (WalkEvent, bool) {
	if w.done {
		return WalkEvent{}, false
	}
	ev := w.next
	switch ev.Kind {
	case Enter:
		if c := ev.Node.FirstChild(); c.IsValid() {
			w.next = WalkEvent{Kind: Enter, Node: c}
		} else {
			w.next = WalkEvent{Kind: Leave, Node: ev.Node}
		}
	case Leave:
		if ev.Node == w.start {
			w.done = true
			break
		}
		if s := ev.Node.NextSibling(); s.IsValid() {
			w.next = WalkEvent{Kind: Enter, Node: s}
		} else {
			w.next = WalkEvent{Kind: Leave, Node: ev.Node.Parent()}
		}
	}
	return ev, true
}

// Events adapts the walker to a range-over-func sequence.
func (w *Walker) Events() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) {
		for {
			ev, ok := w.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}
