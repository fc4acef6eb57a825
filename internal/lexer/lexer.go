package lexer

import (
	"unicode/utf8"

	"lattice/internal/source"
	"lattice/internal/syntax"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token, trivia included. After the end of input it
// keeps returning an empty EOF token.
func (lx *Lexer) Next() Token {
	if lx.cursor.EOF() {
		return Token{Kind: syntax.EOF, Span: source.At(lx.file.ID, lx.cursor.Offset())}
	}

	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		return lx.scanWhitespace()
	case ch == '/' && lx.atComment():
		return lx.scanComment()
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// All lexes the rest of the file, EOF excluded.
func (lx *Lexer) All() []Token {
	var out []Token
	for {
		tok := lx.Next()
		if tok.Kind == syntax.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// Tokenize lexes text as a virtual file and drops lexical errors.
func Tokenize(text string) []Token {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(text)))
	return New(file, Options{}).All()
}

func (lx *Lexer) emit(kind syntax.Kind, start Mark) Token {
	sp := lx.cursor.SpanFrom(start)
	return Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
