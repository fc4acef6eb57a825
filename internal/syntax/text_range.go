package syntax

import "fmt"

// TextSize is a byte offset into the source text.
type TextSize = uint32

// TextRange is a half-open byte range [Start; End).
type TextRange struct {
	Start TextSize
	End   TextSize
}

// NewRange builds a range, panicking if start > end.
func NewRange(start, end TextSize) TextRange {
	if start > end {
		panic(fmt.Sprintf("syntax: invalid range [%d; %d)", start, end))
	}
	return TextRange{Start: start, End: end}
}

// RangeAt is the range of length n starting at offset.
func RangeAt(offset, n TextSize) TextRange {
	return TextRange{Start: offset, End: offset + n}
}

func (r TextRange) Len() TextSize { return r.End - r.Start }

func (r TextRange) Empty() bool { return r.Start == r.End }

// Contains reports whether other lies inside r.
func (r TextRange) Contains(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// ContainsOffset reports whether off lies in [Start; End].
// The end is inclusive so that a position right after the last byte
// still belongs to the range.
func (r TextRange) ContainsOffset(off TextSize) bool {
	return r.Start <= off && off <= r.End
}

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	if other.Start < r.Start {
		r.Start = other.Start
	}
	if other.End > r.End {
		r.End = other.End
	}
	return r
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d; %d)", r.Start, r.End)
}
