// Package testkit holds consistency checks for parsed trees.
//
// The checks are cheap enough to run on every file in `lattice check` and
// on every input of a fuzz session. Panicking forms (ValidateBlockStructure,
// CheckFuzzInvariants) are for tests and fuzz targets; the error-returning
// forms are for everything else.
package testkit
