// Package asciibuf provides a fixed-capacity ASCII text accumulator that
// writes into caller-owned storage.
//
// The buffer never allocates and never grows past len(storage). Pushing a
// byte past capacity or a non-ASCII rune is a contract violation and panics.
package asciibuf

import "fmt"

// MutASCIIString is an append-only view over borrowed storage.
// The storage must not be written by anyone else while the view is alive.
type MutASCIIString struct {
	buf []byte
	n   int
}

// New borrows buf; the resulting string is empty.
func New(buf []byte) *MutASCIIString {
	return &MutASCIIString{buf: buf}
}

// Push appends c. It panics when the storage is full or c is not ASCII.
func (s *MutASCIIString) Push(c rune) {
	if s.n >= len(s.buf) {
		panic(fmt.Sprintf("asciibuf: push %q past capacity %d", c, len(s.buf)))
	}
	if c < 0 || c >= 0x80 {
		panic(fmt.Sprintf("asciibuf: non-ASCII rune %U", c))
	}
	s.buf[s.n] = byte(c)
	s.n++
}

// TryPush is Push without the panic: it reports whether c was appended.
func (s *MutASCIIString) TryPush(c rune) bool {
	if s.n >= len(s.buf) || c < 0 || c >= 0x80 {
		return false
	}
	s.buf[s.n] = byte(c)
	s.n++
	return true
}

// String returns the written prefix.
func (s *MutASCIIString) String() string {
	return string(s.buf[:s.n])
}

// Bytes returns the written prefix without copying. READONLY.
func (s *MutASCIIString) Bytes() []byte {
	return s.buf[:s.n]
}

// Len returns the number of bytes written so far.
func (s *MutASCIIString) Len() int { return s.n }

// Cap returns the capacity of the borrowed storage.
func (s *MutASCIIString) Cap() int { return len(s.buf) }
