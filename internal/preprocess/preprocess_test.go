package preprocess_test

import (
	"testing"

	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/preprocess"
)

func scientific(text string) lexer.Token {
	return lexer.Token{Kind: lexer.ScientificExponent, Text: text, Line: 1, Column: 1}
}

func TestProcessClassifiesIntegerExponents(t *testing.T) {
	cases := []string{"1e10", "1.5e10", "2e0"}
	for _, src := range cases {
		out, diags := preprocess.Process([]lexer.Token{scientific(src)}, "t.zero")
		if len(diags) != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", src, diags)
		}
		if out[0].Kind != lexer.Integer {
			t.Errorf("%q: kind = %s, want Integer", src, out[0].Kind)
		}
	}
}

func TestProcessClassifiesFloatExponents(t *testing.T) {
	cases := []string{"1.5e-10", "1.23e1", "1e-1"}
	for _, src := range cases {
		out, diags := preprocess.Process([]lexer.Token{scientific(src)}, "t.zero")
		if len(diags) != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", src, diags)
		}
		if out[0].Kind != lexer.Float {
			t.Errorf("%q: kind = %s, want Float", src, out[0].Kind)
		}
	}
}

func TestProcessDetectsIntegerOverflow(t *testing.T) {
	out, diags := preprocess.Process([]lexer.Token{scientific("1e20")}, "t.zero")
	if out[0].Kind != lexer.Float {
		t.Errorf("kind = %s, want Float (falls back past i64 range)", out[0].Kind)
	}
	if len(diags) != 1 || diags[0].Code != diag.T0001ScientificIntOverflow {
		t.Errorf("diagnostics = %v, want [%s]", diags, diag.T0001ScientificIntOverflow)
	}
}

func TestProcessDetectsFloatOverflow(t *testing.T) {
	out, diags := preprocess.Process([]lexer.Token{scientific("1e400")}, "t.zero")
	if out[0].Kind != lexer.Unknown {
		t.Errorf("kind = %s, want Unknown (past double range)", out[0].Kind)
	}
	if len(diags) != 1 || diags[0].Code != diag.T0002ScientificFloatOverflow {
		t.Errorf("diagnostics = %v, want [%s]", diags, diag.T0002ScientificFloatOverflow)
	}
}

func TestProcessLeavesNonExponentTokensUntouched(t *testing.T) {
	toks := []lexer.Token{
		{Kind: lexer.Integer, Text: "10", Line: 1, Column: 1},
		{Kind: lexer.Identifier, Text: "x", Line: 1, Column: 4},
	}
	out, diags := preprocess.Process(toks, "t.zero")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if out[0].Kind != lexer.Integer || out[1].Kind != lexer.Identifier {
		t.Errorf("tokens mutated: %v", out)
	}
}

func TestProcessIsDeterministic(t *testing.T) {
	toks := []lexer.Token{scientific("6.022e23")}
	out1, diags1 := preprocess.Process(toks, "t.zero")
	out2, diags2 := preprocess.Process(toks, "t.zero")
	if out1[0].Kind != out2[0].Kind {
		t.Errorf("non-deterministic kind: %s vs %s", out1[0].Kind, out2[0].Kind)
	}
	if len(diags1) != len(diags2) {
		t.Errorf("non-deterministic diagnostics: %v vs %v", diags1, diags2)
	}
}
