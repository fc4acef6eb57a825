// Package syntax holds the lossless concrete syntax tree produced by the
// parser.
//
// Invariants:
//   - Every byte of the source belongs to exactly one leaf (token) node.
//   - A node's range lies within its parent's range; siblings are ordered
//     and contiguous.
//   - Nodes live in an arena owned by the Tree and are addressed by NodeID;
//     parent and sibling links are plain indices, never owning pointers.
//   - Errors are stored on the Tree in discovery order and are not sorted
//     against tree offsets.
package syntax
