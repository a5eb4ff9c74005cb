package diag

import "sort"

// Catalog resolves a diagnostic code to its localized message template. It
// is implemented by internal/locale so that diag never has to know how a
// catalog file is loaded or cached.
type Catalog interface {
	// Format renders code's message template with args substituted for
	// {0}, {1}, ... placeholders.
	Format(code Code, args []string) string
	// Help returns the code's help line, or "" if it has none.
	Help(code Code) string
}

// Engine is the process for one compilation job's diagnostics: an
// ordered, append-only collection with running error/warning counters,
// rendered against a locale Catalog.
type Engine struct {
	catalog     Catalog
	diagnostics []Diagnostic
	errors      int
	warnings    int
}

// NewEngine creates an engine that renders diagnostics through catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Report appends d to the engine, merging diagnostics from a single stage's
// Collector.
func (e *Engine) Report(d Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
	switch d.Level {
	case Warning:
		e.warnings++
	default:
		e.errors++
	}
}

// Merge reports every diagnostic in ds, filling in each one's SourceLine
// from lineOf(StartLine) when lineOf is non-nil.
func (e *Engine) Merge(ds []Diagnostic, lineOf func(int) string) {
	for _, d := range ds {
		if lineOf != nil {
			d.SourceLine = lineOf(d.Location.StartLine)
		}
		e.Report(d)
	}
}

// Catalog returns the locale catalog this engine renders against.
func (e *Engine) Catalog() Catalog { return e.catalog }

// HasErrors reports whether any reported diagnostic is Error or Fatal level.
func (e *Engine) HasErrors() bool { return e.errors > 0 }

// ErrorCount and WarningCount report running totals.
func (e *Engine) ErrorCount() int   { return e.errors }
func (e *Engine) WarningCount() int { return e.warnings }

// Diagnostics returns all reported diagnostics, sorted for deterministic
// output: by location (line, then column), then level, then code, so the
// sequence of (code, line, col) triples emitted for a given input is
// stable across runs regardless of which stage reported first.
func (e *Engine) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.StartLine != b.Location.StartLine {
			return a.Location.StartLine < b.Location.StartLine
		}
		if a.Location.StartCol != b.Location.StartCol {
			return a.Location.StartCol < b.Location.StartCol
		}
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		return a.Code < b.Code
	})
	return out
}
