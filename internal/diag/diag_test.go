package diag_test

import (
	"strings"
	"testing"

	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/text"
)

type stubCatalog struct{}

func (stubCatalog) Format(code diag.Code, args []string) string {
	return "stub message for " + string(code)
}
func (stubCatalog) Help(code diag.Code) string { return "" }

func TestCollectorAccumulatesInOrder(t *testing.T) {
	var c diag.Collector
	c.Report(diag.Warning, diag.T0001ScientificIntOverflow, text.Location{})
	c.Report(diag.Error, diag.L0007UnterminatedString, text.Location{})
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if !c.HasErrors() {
		t.Error("HasErrors() = false, want true after an Error-level report")
	}
	ds := c.Diagnostics()
	if ds[0].Code != diag.T0001ScientificIntOverflow || ds[1].Code != diag.L0007UnterminatedString {
		t.Errorf("Diagnostics() out of report order: %v", ds)
	}
}

func TestEngineSortsDeterministically(t *testing.T) {
	e := diag.NewEngine(stubCatalog{})
	e.Report(diag.Diagnostic{Level: diag.Error, Code: diag.P0001UnexpectedToken, Location: text.Location{StartLine: 5, StartCol: 1}})
	e.Report(diag.Diagnostic{Level: diag.Error, Code: diag.L0007UnterminatedString, Location: text.Location{StartLine: 1, StartCol: 3}})
	e.Report(diag.Diagnostic{Level: diag.Warning, Code: diag.T0001ScientificIntOverflow, Location: text.Location{StartLine: 1, StartCol: 1}})

	got := e.Diagnostics()
	if len(got) != 3 {
		t.Fatalf("Diagnostics() len = %d, want 3", len(got))
	}
	if got[0].Location.StartLine != 1 || got[0].Location.StartCol != 1 {
		t.Errorf("first diagnostic = %+v, want line 1 col 1", got[0])
	}
	if got[1].Location.StartCol != 3 {
		t.Errorf("second diagnostic = %+v, want col 3", got[1])
	}
	if got[2].Location.StartLine != 5 {
		t.Errorf("third diagnostic = %+v, want line 5", got[2])
	}
}

func TestEngineHasErrorsOnlyCountsErrorAndFatal(t *testing.T) {
	e := diag.NewEngine(stubCatalog{})
	e.Report(diag.Diagnostic{Level: diag.Warning, Code: diag.T0001ScientificIntOverflow})
	if e.HasErrors() {
		t.Error("a single Warning should not count as an error")
	}
	e.Report(diag.Diagnostic{Level: diag.Error, Code: diag.L0007UnterminatedString})
	if !e.HasErrors() {
		t.Error("expected HasErrors() = true after an Error-level report")
	}
	if e.ErrorCount() != 1 || e.WarningCount() != 1 {
		t.Errorf("ErrorCount/WarningCount = %d/%d, want 1/1", e.ErrorCount(), e.WarningCount())
	}
}

func TestRenderIncludesCodeAndSource(t *testing.T) {
	d := diag.Diagnostic{
		Level:      diag.Error,
		Code:       diag.L0007UnterminatedString,
		Location:   text.Location{File: "t.zero", StartLine: 1, StartCol: 1, EndCol: 2},
		SourceLine: `"abc`,
	}
	out := diag.Render(d, stubCatalog{}, false)
	if !strings.Contains(out, "L0007") {
		t.Errorf("rendered output missing code: %q", out)
	}
	if !strings.Contains(out, "(from: lexer)") {
		t.Errorf("rendered output missing source suffix: %q", out)
	}
	if !strings.Contains(out, "-->") {
		t.Errorf("rendered output missing location arrow: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("rendered output missing caret underline: %q", out)
	}
}

func TestRenderNoColorOmitsEscapeCodes(t *testing.T) {
	d := diag.Diagnostic{Level: diag.Warning, Code: diag.T0001ScientificIntOverflow, Location: text.Location{File: "t.zero", StartLine: 1, StartCol: 1}}
	out := diag.Render(d, stubCatalog{}, false)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("useColor=false must not emit ANSI escapes: %q", out)
	}
}
