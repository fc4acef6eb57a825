// Package diag defines diagnostic codes, severities and the Bag/Reporter
// plumbing shared by the lexer, parser, driver and CLI.
//
// Syntax errors live on the syntax tree as offset+message records; the
// driver lifts them into Diagnostics (with file spans) for display.
package diag
