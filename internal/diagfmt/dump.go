package diagfmt

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"lattice/internal/syntax"
)

// indentUnit is one level of tree indentation.
const indentUnit = "  "

// DumpTree renders root and the errors of its tree.
//
// Errors are sorted by offset (stable, so ties keep discovery order). Each
// error is printed once, at the indentation of the first leaf whose end
// offset is at or past the error offset; errors beyond the last leaf are
// printed unindented after the tree.
func DumpTree(root syntax.Node) string {
	var sb strings.Builder
	writeTree(&sb, root)
	return sb.String()
}

// DumpTreeTo streams the DumpTree rendering into w.
func DumpTreeTo(w io.Writer, root syntax.Node) error {
	bw := bufio.NewWriter(w)
	writeTree(bw, root)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tree dump: %w", err)
	}
	return nil
}

// writeTree renders into w. Write errors are left to the caller: a
// bufio.Writer keeps the first one for Flush, a strings.Builder has none.
func writeTree(w io.Writer, root syntax.Node) {
	errs := sortedErrors(root)
	next := 0
	level := 0

	walker := root.Preorder()
	for {
		ev, ok := walker.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case syntax.Enter:
			indent := strings.Repeat(indentUnit, level)
			fmt.Fprintf(w, "%s%s\n", indent, ev.Node)
			if ev.Node.IsLeaf() {
				end := ev.Node.Range().End
				for next < len(errs) && errs[next].Offset <= end {
					fmt.Fprintf(w, "%serr: '%s'\n", indent, errs[next].Message)
					next++
				}
			}
			level++
		case syntax.Leave:
			level--
		}
	}
	if level != 0 {
		panic(fmt.Sprintf("diagfmt: walk left level %d, want 0", level))
	}

	for _, e := range errs[next:] {
		fmt.Fprintf(w, "err: '%s'\n", e.Message)
	}
}

// sortedErrors copies the tree's errors ordered by offset.
func sortedErrors(root syntax.Node) []syntax.SyntaxError {
	errs := slices.Clone(root.Errors())
	slices.SortStableFunc(errs, func(a, b syntax.SyntaxError) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return errs
}
