package text

import "unicode/utf8"

// SourceTracker holds the source bytes for one compilation job and tracks
// the lexer's current cursor position, reporting 1-based (line, column)
// pairs with column counted in Unicode characters. It backs its
// line-to-text lookups with a LineIndex built once on construction, so
// get_source_line (used heavily for diagnostic carets) is O(1) and
// arbitrary offset-to-(line,col) conversion is O(log n).
type SourceTracker struct {
	filename string
	src      []byte
	index    *LineIndex

	pos    ByteOffset
	line   int
	column int
}

// NewSourceTracker creates a tracker positioned at the start of src.
func NewSourceTracker(src []byte, filename string) *SourceTracker {
	return &SourceTracker{
		filename: filename,
		src:      src,
		index:    NewLineIndex(src),
		pos:      0,
		line:     1,
		column:   1,
	}
}

// Filename returns the source file name used in locations.
func (t *SourceTracker) Filename() string { return t.filename }

// Source returns the full source buffer.
func (t *SourceTracker) Source() []byte { return t.src }

// Position returns the current byte offset, line, and column.
func (t *SourceTracker) Position() (offset ByteOffset, line, column int) {
	return t.pos, t.line, t.column
}

// Advance moves the cursor forward by one UTF-8 rune starting at the
// current position, updating line/column bookkeeping. A '\n' increments
// the line and resets the column to 1; any other rune advances the column
// by one Unicode character. It returns the rune consumed and its byte
// width, or (utf8.RuneError, 0) if the cursor is already at end of input.
func (t *SourceTracker) Advance() (r rune, size int) {
	if int(t.pos) >= len(t.src) {
		return utf8.RuneError, 0
	}
	r, size = utf8.DecodeRune(t.src[t.pos:])
	t.pos += ByteOffset(size)
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r, size
}

// MakeLocation builds a Location spanning from (startLine, startCol) to the
// tracker's current position.
func (t *SourceTracker) MakeLocation(startLine, startCol int) Location {
	return Location{
		File:      t.filename,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   t.line,
		EndCol:    t.column,
	}
}

// GetSourceLine returns the 1-based line's text without its trailing
// newline. An out-of-range line number yields an empty string.
func (t *SourceTracker) GetSourceLine(n int) string {
	return t.index.Line(n)
}

// LocationForOffset builds a Location for the single-position span at off,
// using the precomputed line index rather than the tracker's live cursor.
func (t *SourceTracker) LocationForOffset(off ByteOffset) Location {
	line, col := t.index.OffsetToLocation(off)
	return Location{File: t.filename, StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}
