package types

import "slices"

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span is a half-open byte range [Start, End) in source text.
type Span struct {
	Start ByteOffset
	End   ByteOffset
}

// NewSpan creates a new span.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// IsSynthetic reports whether the span is the zero span used for
// constructs with no source position, such as a missing module header.
func (s Span) IsSynthetic() bool {
	return s == Span{}
}

// BuildLineTable returns the byte offset of the start of every line.
// Entry i holds the offset where line i+1 begins.
func BuildLineTable(source []byte) []int {
	table := []int{0}
	for i, b := range source {
		if b == '\n' {
			table = append(table, i+1)
		}
	}
	return table
}

// LineCol converts a byte offset to a 1-based line and column using a
// table built by BuildLineTable. Returns (0, 0) for an empty table.
func LineCol(table []int, offset ByteOffset) (line, col int) {
	if len(table) == 0 {
		return 0, 0
	}
	off := int(offset)
	// The line is the last entry starting at or before off.
	idx, found := slices.BinarySearch(table, off)
	if !found {
		idx--
	}
	idx = max(idx, 0)
	return idx + 1, off - table[idx] + 1
}
