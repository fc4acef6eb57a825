// Package diagfmt renders syntax trees, token streams and diagnostics as
// text or JSON.
//
// DumpTree is the snapshot format used by golden tests and by
// `lattice parse`: one line per node in pre-order, indented two spaces per
// level, with the tree's errors interleaved right after the leaf they
// belong to.
package diagfmt
