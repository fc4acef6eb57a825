package lexer

import (
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// Поддержка: 0, 123, 1_000, 0x..., 0b..., 0o...
// Хвост из букв/цифр после числа съедаем в тот же токен и репортим как BadNumber.
func (lx *Lexer) scanNumber() Token {
	start := lx.cursor.Mark()

	accept := isDec
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		prefixed := true
		switch b1 {
		case 'x', 'X':
			accept = isHex
		case 'b', 'B':
			accept = isBin
		case 'o', 'O':
			accept = isOct
		default:
			prefixed = false
		}
		if prefixed {
			lx.cursor.Bump()
			lx.cursor.Bump()
		}
	}

	digits := 0
	for {
		b := lx.cursor.Peek()
		if accept(b) {
			digits++
		} else if b != '_' {
			break
		}
		lx.cursor.Bump()
	}

	bad := digits == 0
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}

	tok := lx.emit(syntax.IntNumber, start)
	if bad {
		lx.report(diag.LexBadNumber, tok.Span, "malformed integer literal")
	}
	return tok
}

func isBin(b byte) bool { return b == '0' || b == '1' }

func isOct(b byte) bool { return b >= '0' && b <= '7' }
