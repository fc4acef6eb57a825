package lexer

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// scanWhitespace коалесцирует подряд идущие ' ', '\t', '\r', '\n' в один токен.
func (lx *Lexer) scanWhitespace() Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(syntax.Whitespace, start)
}

func (lx *Lexer) atComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}

// scanComment handles "//..." up to the newline and nested "/* ... */".
// An unterminated block comment is reported and runs to EOF.
func (lx *Lexer) scanComment() Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Eat('/') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.emit(syntax.Comment, start)
	}

	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(syntax.Comment, start)
	if depth > 0 {
		lx.report(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
	}
	return tok
}
