package lexer

import "unicode"

// ASCII byte classes.
const (
	clsSpace uint8 = 1 << iota
	clsDigit
	clsHex
	clsIdentStart
)

var asciiClass = func() (t [128]uint8) {
	for _, b := range []byte(" \t\n\r") {
		t[b] |= clsSpace
	}
	for b := '0'; b <= '9'; b++ {
		t[b] |= clsDigit | clsHex
	}
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= clsIdentStart
		t[b-'a'+'A'] |= clsIdentStart
	}
	for b := 'a'; b <= 'f'; b++ {
		t[b] |= clsHex
		t[b-'a'+'A'] |= clsHex
	}
	t['_'] |= clsIdentStart
	return t
}()

func is(b byte, cls uint8) bool { return b < 0x80 && asciiClass[b]&cls != 0 }

func isSpace(b byte) bool { return is(b, clsSpace) }
func isDec(b byte) bool { return is(b, clsDigit) }
func isHex(b byte) bool { return is(b, clsHex) }
func isIdentStartByte(b byte) bool { return is(b, clsIdentStart) }
func isIdentContinueByte(b byte) bool { return is(b, clsIdentStart|clsDigit) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
