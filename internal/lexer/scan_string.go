package lexer

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// scanString reads "..." with backslash escapes. A string cut by a newline
// or EOF is reported; the token stops before the newline.
func (lx *Lexer) scanString() Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(syntax.String, start)
		case '\n':
			goto unterminated
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				goto unterminated
			}
			lx.cursor.BumpRune()
		default:
			lx.cursor.BumpRune()
		}
	}

unterminated:
	tok := lx.emit(syntax.String, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
