package testkit

import (
	"fmt"

	"lattice/internal/diag"
	"lattice/internal/diagfmt"
	"lattice/internal/syntax"
)

// CheckBlockStructure verifies that every '{' ... '}' pair shares a parent
// and sits at the edges of it. A '}' with nothing open is skipped: unmatched
// closers are already reported by the parser.
func CheckBlockStructure(root syntax.Node) error {
	var open []syntax.Node
	for node := range root.Descendants() {
		switch node.Kind() {
		case syntax.LCurly:
			open = append(open, node)
		case syntax.RCurly:
			if len(open) == 0 {
				continue
			}
			pair := open[len(open)-1]
			open = open[:len(open)-1]

			if node.Parent() != pair.Parent() {
				return &InvariantError{
					Code: diag.InvBlockStructure,
					Node: node,
					Message: fmt.Sprintf("\nunpaired curlies:\n%s\n%s\n",
						root.Text(), diagfmt.DumpTree(root)),
				}
			}
			if node.NextSibling().IsValid() || pair.PrevSibling().IsValid() {
				return &InvariantError{
					Code: diag.InvBlockStructure,
					Node: node,
					Message: fmt.Sprintf("\nfloating curlies at %s\nfile:\n%s\nerror:\n%s\n",
						node, root.Text(), node.Text()),
				}
			}
		}
	}
	return nil
}

// ValidateBlockStructure is CheckBlockStructure that panics on violation.
func ValidateBlockStructure(root syntax.Node) {
	if err := CheckBlockStructure(root); err != nil {
		panic(err)
	}
}
