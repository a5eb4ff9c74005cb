package diag

import "github.com/begoniahe/zero/internal/text"

// Diagnostic is the uniform record shape every reporting subsystem (lexer,
// token preprocessor, parser) reports into its own collector. The
// formatter reports no diagnostics.
type Diagnostic struct {
	Level      Level
	Code       Code
	Location   text.Location
	Args       []string
	SourceLine string
}

// Collector accumulates diagnostics for a single pipeline stage. It never
// panics and never stops a stage early; callers decide whether an
// accumulated Error blocks progression to the next stage.
type Collector struct {
	diagnostics []Diagnostic
}

// Report appends a diagnostic to the collector.
func (c *Collector) Report(level Level, code Code, loc text.Location, args ...string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Level:    level,
		Code:     code,
		Location: loc,
		Args:     args,
	})
}

// Diagnostics returns the accumulated diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any collected diagnostic is Error or Fatal.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Level == Error || d.Level == Fatal {
			return true
		}
	}
	return false
}

// Len reports how many diagnostics have been collected.
func (c *Collector) Len() int { return len(c.diagnostics) }
