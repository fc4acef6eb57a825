package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"lattice/internal/asciibuf"
	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые и только ASCII. Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.PeekRune()
	if r < utf8.RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
	} else if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}

	// Ключевое слово собираем в стековый буфер; как только встретился
	// не-ASCII символ или буфер переполнен, это точно не keyword.
	var storage [syntax.MaxKeywordLen]byte
	kw := asciibuf.New(storage[:])
	maybeKeyword := true
	ascii := true

	for {
		r, sz = lx.cursor.PeekRune()
		if sz == 0 {
			break
		}
		if r < utf8.RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
		} else {
			if !isIdentContinueRune(r) {
				break
			}
			ascii = false
		}
		if maybeKeyword {
			maybeKeyword = kw.TryPush(r)
		}
		lx.cursor.BumpRune()
	}

	tok := lx.emit(syntax.Ident, start)
	if maybeKeyword {
		if k, ok := syntax.LookupKeyword(kw.Bytes()); ok {
			tok.Kind = k
			return tok
		}
	}
	if !ascii && !norm.NFC.IsNormalString(tok.Text) {
		lx.report(diag.LexIdentNotNFC, tok.Span, "identifier is not in NFC form")
	}
	return tok
}
