package asciibuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushWithinCapacity(t *testing.T) {
	var storage [3]byte
	s := New(storage[:])
	require.Equal(t, 0, s.Len())

	s.Push('a')
	s.Push('b')
	s.Push('c')

	assert.Equal(t, "abc", s.String())
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []byte("abc"), storage[:])
}

func TestPushPastCapacityPanics(t *testing.T) {
	var storage [3]byte
	s := New(storage[:])
	for _, c := range "abc" {
		s.Push(c)
	}
	assert.Panics(t, func() { s.Push('d') })
	assert.Equal(t, "abc", s.String())
}

func TestPushNonASCIIPanics(t *testing.T) {
	var storage [8]byte
	s := New(storage[:])
	assert.Panics(t, func() { s.Push('é') })
	assert.Panics(t, func() { s.Push(0x80) })
	assert.Equal(t, 0, s.Len())
}

func TestZeroCapacity(t *testing.T) {
	s := New(nil)
	assert.Equal(t, 0, s.Cap())
	assert.Equal(t, "", s.String())
	assert.Panics(t, func() { s.Push('x') })
}

func TestTryPush(t *testing.T) {
	var storage [2]byte
	s := New(storage[:])

	assert.True(t, s.TryPush('o'))
	assert.False(t, s.TryPush('ж'))
	assert.True(t, s.TryPush('k'))
	assert.False(t, s.TryPush('!'))
	assert.Equal(t, "ok", s.String())
}

func TestStringIsPrefixInOrder(t *testing.T) {
	storage := make([]byte, 16)
	s := New(storage)
	in := "fn main"
	for i, c := range in {
		s.Push(c)
		require.Equal(t, in[:i+1], s.String())
	}
	assert.Equal(t, []byte(in), s.Bytes())
}
