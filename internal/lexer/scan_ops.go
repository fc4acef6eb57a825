package lexer

import (
	"fmt"

	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// scanOperatorOrPunct: longest match first.
func (lx *Lexer) scanOperatorOrPunct() Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		var k syntax.Kind
		switch {
		case b0 == '=' && b1 == '=':
			k = syntax.EqEq
		case b0 == '!' && b1 == '=':
			k = syntax.Neq
		case b0 == '<' && b1 == '=':
			k = syntax.LtEq
		case b0 == '>' && b1 == '=':
			k = syntax.GtEq
		case b0 == '&' && b1 == '&':
			k = syntax.AmpAmp
		case b0 == '|' && b1 == '|':
			k = syntax.PipePipe
		case b0 == '-' && b1 == '>':
			k = syntax.ThinArrow
		}
		if k != syntax.Tombstone {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(k, start)
		}
	}

	var k syntax.Kind
	switch lx.cursor.Peek() {
	case '{':
		k = syntax.LCurly
	case '}':
		k = syntax.RCurly
	case '(':
		k = syntax.LParen
	case ')':
		k = syntax.RParen
	case ';':
		k = syntax.Semi
	case ',':
		k = syntax.Comma
	case ':':
		k = syntax.Colon
	case '.':
		k = syntax.Dot
	case '=':
		k = syntax.Eq
	case '<':
		k = syntax.Lt
	case '>':
		k = syntax.Gt
	case '+':
		k = syntax.Plus
	case '-':
		k = syntax.Minus
	case '*':
		k = syntax.Star
	case '/':
		k = syntax.Slash
	case '!':
		k = syntax.Bang
	}
	if k != syntax.Tombstone {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	// неизвестный символ: целиком одна руна (или один байт невалидного UTF-8)
	r, _ := lx.cursor.PeekRune()
	lx.cursor.BumpRune()
	tok := lx.emit(syntax.ErrorToken, start)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
