// Package ast is a typed, read-only view over the lossless syntax tree.
//
// Every wrapper holds a syntax.Node and looks its children up on demand;
// nothing is copied. Missing pieces of an erroneous tree come back as
// zero values with ok=false, never as panics.
package ast
