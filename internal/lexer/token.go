package lexer

import (
	"lattice/internal/source"
	"lattice/internal/syntax"
)

// Token is a single lexeme. Text is the exact source slice; trivia
// (whitespace, comments) are ordinary tokens so the tree stays lossless.
type Token struct {
	Kind syntax.Kind
	Span source.Span
	Text string
}

// Len returns the token length in bytes.
func (t Token) Len() uint32 { return t.Span.Len() }

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }
