package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lattice/internal/source"
)

func TestCursorMarkReset(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.lt", []byte("abc"))))

	m := c.Mark()
	assert.Equal(t, byte('a'), c.Bump())
	assert.True(t, c.Eat('b'))
	assert.False(t, c.Eat('x'))
	sp := c.SpanFrom(m)
	assert.Equal(t, uint32(0), sp.Start)
	assert.Equal(t, uint32(2), sp.End)

	_, _, ok := c.Peek2()
	assert.False(t, ok)

	c.Reset(m)
	b0, b1, ok := c.Peek2()
	assert.True(t, ok)
	assert.Equal(t, byte('a'), b0)
	assert.Equal(t, byte('b'), b1)

	c.Bump()
	c.Bump()
	c.Bump()
	assert.Equal(t, uint32(3), c.Offset())
	assert.True(t, c.EOF())
	assert.Equal(t, byte(0), c.Peek())
	assert.Equal(t, byte(0), c.Bump())
}

func TestCursorRunes(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("r.lt", []byte("é\xffa"))))

	r, n := c.PeekRune()
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, n)
	c.BumpRune()
	c.BumpRune() // invalid byte counts as one
	assert.Equal(t, uint32(3), c.Offset())
	assert.Equal(t, byte('a'), c.Peek())
	c.BumpRune()
	_, n = c.PeekRune()
	assert.Zero(t, n)
}

func TestByteClasses(t *testing.T) {
	assert.True(t, isSpace('\r'))
	assert.False(t, isSpace('x'))
	assert.True(t, isHex('F'))
	assert.False(t, isHex('g'))
	assert.True(t, isIdentStartByte('_'))
	assert.False(t, isIdentStartByte('1'))
	assert.True(t, isIdentContinueByte('1'))
	assert.False(t, isDec(0xC3))
}
