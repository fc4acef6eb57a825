package testkit

import (
	"fmt"
	"strings"

	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// CheckTreeInvariants verifies the shape of a finished tree:
//  1. the root spans the whole text and has no parent
//  2. children tile their parent: contiguous, ordered, no gaps
//  3. parent and sibling back-links agree with the child lists
//  4. tokens are non-empty leaves, composite leaves are empty
//  5. concatenated token text reproduces the source
func CheckTreeInvariants(root syntax.Node) error {
	fail := func(n syntax.Node, format string, args ...any) error {
		return &InvariantError{Code: diag.InvTreeShape, Node: n, Message: fmt.Sprintf(format, args...)}
	}

	if !root.IsValid() {
		return fail(root, "root is absent")
	}
	text := root.Tree().Text()
	if rng := root.Range(); rng.Start != 0 || int(rng.End) != len(text) {
		return fail(root, "root range %s does not cover text of length %d", rng, len(text))
	}
	if root.Parent().IsValid() {
		return fail(root, "root has a parent")
	}

	var rebuilt strings.Builder
	rebuilt.Grow(len(text))
	for n := range root.Descendants() {
		kind := n.Kind()
		if kind == syntax.Tombstone || kind == syntax.EOF {
			return fail(n, "kind %s must not appear in a tree", kind)
		}

		if n.IsLeaf() {
			if kind.IsToken() {
				if n.Range().Empty() {
					return fail(n, "empty token")
				}
				rebuilt.WriteString(n.Text())
			} else if !n.Range().Empty() {
				return fail(n, "childless node with non-empty range")
			}
			continue
		}
		if kind.IsToken() {
			return fail(n, "token has children")
		}

		pos := n.Range().Start
		prev := syntax.Node{}
		for c := range n.Children() {
			if c.Parent() != n {
				return fail(c, "parent link points to %s, want %s", c.Parent(), n)
			}
			if c.PrevSibling() != prev {
				return fail(c, "prev sibling is %s, want %s", c.PrevSibling(), prev)
			}
			if c.Range().Start != pos {
				return fail(c, "child starts at %d, want %d", c.Range().Start, pos)
			}
			pos = c.Range().End
			prev = c
		}
		if n.LastChild() != prev {
			return fail(n, "last child is %s, want %s", n.LastChild(), prev)
		}
		if pos != n.Range().End {
			return fail(n, "children end at %d, node ends at %d", pos, n.Range().End)
		}
	}

	if rebuilt.String() != text {
		return fail(root, "token text does not reproduce the source")
	}
	return nil
}
