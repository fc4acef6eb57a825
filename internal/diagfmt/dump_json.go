package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lattice/internal/syntax"
)

// NodeJSON is one node of the JSON tree dump.
type NodeJSON struct {
	Kind     string      `json:"kind"`
	Range    [2]uint32   `json:"range"`
	Text     string      `json:"text,omitempty"` // только у токенов
	Children []*NodeJSON `json:"children,omitempty"`
}

// ErrorJSON is one syntax error of the JSON tree dump.
type ErrorJSON struct {
	Offset  uint32 `json:"offset"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TreeJSON is the root structure of DumpTreeJSON.
type TreeJSON struct {
	Root   *NodeJSON   `json:"root"`
	Errors []ErrorJSON `json:"errors"`
}

// BuildTreeJSON builds the JSON tree without serializing it. The walk is
// iterative, so deep trees are fine.
func BuildTreeJSON(root syntax.Node) TreeJSON {
	var out TreeJSON
	var stack []*NodeJSON

	for ev := range root.Preorder().Events() {
		switch ev.Kind {
		case syntax.Enter:
			rng := ev.Node.Range()
			n := &NodeJSON{Kind: ev.Node.Kind().String(), Range: [2]uint32{rng.Start, rng.End}}
			if ev.Node.Kind().IsToken() {
				n.Text = ev.Node.Text()
			}
			if len(stack) == 0 {
				out.Root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case syntax.Leave:
			stack = stack[:len(stack)-1]
		}
	}

	errs := sortedErrors(root)
	out.Errors = make([]ErrorJSON, 0, len(errs))
	for _, e := range errs {
		out.Errors = append(out.Errors, ErrorJSON{Offset: e.Offset, Code: e.Code.ID(), Message: e.Message})
	}
	return out
}

// DumpTreeJSON writes the tree and its sorted errors as indented JSON.
func DumpTreeJSON(w io.Writer, root syntax.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(BuildTreeJSON(root)); err != nil {
		return fmt.Errorf("encode tree json: %w", err)
	}
	return nil
}
