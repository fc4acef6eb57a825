// Package driver wires the lexer, parser, dump renderer and invariant
// checks into the operations behind the lattice CLI: tokenize, parse,
// check a directory in parallel and run a mutation fuzz session.
package driver
