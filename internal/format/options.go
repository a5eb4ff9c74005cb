// Package format implements the visitor-based formatter: it walks a CST
// and regenerates canonical source text, skipping every synthetic token a
// parser error-recovery inserted.
package format

// IndentStyle selects how the formatter's indent method renders one level
// of nesting.
type IndentStyle int

const (
	Spaces IndentStyle = iota
	Tabs
)

// Options mirrors the spec's FormatOptions. The formatter reads
// IndentStyle, IndentWidth and SpaceAfterComma; MaxLineLength,
// SpaceBeforeParen and NewlineBeforeBrace are carried but no rule reads
// them. The running indent level is kept by the formatter, not here.
type Options struct {
	IndentStyle        IndentStyle
	IndentWidth        int // spaces per level; ignored when IndentStyle == Tabs
	MaxLineLength      int
	SpaceBeforeParen   bool
	SpaceAfterComma    bool
	NewlineBeforeBrace bool
}

// DefaultOptions matches the seed-scenario output in §8: four-space
// indent, a space after every comma, no space before a call's '('.
func DefaultOptions() Options {
	return Options{
		IndentStyle:     Spaces,
		IndentWidth:     4,
		MaxLineLength:   100,
		SpaceAfterComma: true,
	}
}
