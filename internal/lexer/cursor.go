package lexer

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"lattice/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	src  []byte
	file source.FileID
	off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic("lexer: file larger than 4 GiB: " + f.Path)
	}
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) Offset() uint32 { return c.off }

func (c *Cursor) EOF() bool { return int(c.off) >= len(c.src) }

func (c *Cursor) at(i uint32) byte {
	if int(i) >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *Cursor) Peek() byte { return c.at(c.off) }

// Peek2 is false when fewer than two bytes remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if int(c.off)+1 >= len(c.src) {
		return 0, 0, false
	}
	return c.src[c.off], c.src[c.off+1], true
}

func (c *Cursor) Bump() byte {
	b := c.at(c.off)
	if !c.EOF() {
		c.off++
	}
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.off] != b {
		return false
	}
	c.off++
	return true
}

// PeekRune decodes the rune under the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	switch {
	case c.EOF():
		return utf8.RuneError, 0
	case c.src[c.off] < utf8.RuneSelf:
		return rune(c.src[c.off]), 1
	}
	return utf8.DecodeRune(c.src[c.off:])
}

// BumpRune skips one rune, or one byte of invalid UTF-8.
func (c *Cursor) BumpRune() {
	_, n := c.PeekRune()
	c.off += uint32(n) // n <= utf8.UTFMax
}

// Mark запоминает позицию для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}

func (c *Cursor) Reset(m Mark) { c.off = uint32(m) }
