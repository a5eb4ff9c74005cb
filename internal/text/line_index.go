package text

import (
	"slices"
	"unicode/utf8"
)

// LineIndex maps byte offsets to 1-based (line, column) locations over a
// UTF-8 source buffer, where column counts Unicode characters rather than
// bytes. It is built once in a single pass over the source (the
// "precomputed line-offset index" a SourceTracker needs for O(1)
// line-to-text lookup and O(log n) offset-to-(line,col) conversion).
type LineIndex struct {
	src        []byte
	lineStarts []ByteOffset // lineStarts[i] is the byte offset where line i+1 begins
}

// NewLineIndex builds an index over src.
func NewLineIndex(src []byte) *LineIndex {
	starts := []ByteOffset{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineIndex{src: src, lineStarts: starts}
}

// LineCount returns the number of logical lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.lineStarts)
}

// Line returns the 1-based line's text, without a trailing newline. An
// out-of-range line number yields an empty string.
func (li *LineIndex) Line(n int) string {
	if li == nil || n < 1 || n > len(li.lineStarts) {
		return ""
	}
	start := li.lineStarts[n-1]
	end := ByteOffset(len(li.src))
	if n < len(li.lineStarts) {
		end = li.lineStarts[n] - 1 // exclude the '\n'
	}
	if end > start && li.src[end-1] == '\r' {
		end--
	}
	if end < start {
		end = start
	}
	return string(li.src[start:end])
}

// OffsetToLocation converts a byte offset to a 1-based (line, column)
// pair, counting columns in Unicode characters.
func (li *LineIndex) OffsetToLocation(off ByteOffset) (line, col int) {
	if li == nil {
		return 1, 1
	}
	idx := li.lineForOffset(off)
	lineStart := li.lineStarts[idx]
	col = 1 + utf8.RuneCount(li.src[lineStart:off])
	return idx + 1, col
}

// lineForOffset returns the 0-based index of the line containing off.
func (li *LineIndex) lineForOffset(off ByteOffset) int {
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}
