package parser_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/parser"
	"github.com/begoniahe/zero/internal/preprocess"
)

func parseSource(t *testing.T, src string) (*cst.Node, []diag.Diagnostic) {
	t.Helper()
	lexRes := lexer.Lex([]byte(src), "t.zero")
	toks, ppDiags := preprocess.Process(lexRes.Tokens, "t.zero")
	root, parseDiags := parser.Parse(toks, "t.zero")
	all := append(append([]diag.Diagnostic{}, lexRes.Diagnostics...), ppDiags...)
	all = append(all, parseDiags...)
	return root, all
}

func countKind(n *cst.Node, k cst.Kind) int {
	count := 0
	cst.Walk(n, func(node *cst.Node) {
		if node.Kind == k {
			count++
		}
	})
	return count
}

func TestParseVarDecl(t *testing.T) {
	root, diags := parseSource(t, "let x: Int = 10;\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if countKind(root, cst.VarDeclaration) != 1 {
		t.Error("expected exactly one VarDeclaration node")
	}
}

func TestParseFnDecl(t *testing.T) {
	root, diags := parseSource(t, "fn add(a: Int, b: Int) -> Int { return a + b; }\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if countKind(root, cst.FnDeclaration) != 1 {
		t.Error("expected exactly one FnDeclaration node")
	}
	if countKind(root, cst.Param) != 2 {
		t.Error("expected exactly two Param nodes")
	}
}

func TestParseStructLiteralDisambiguation(t *testing.T) {
	// In an expression position, `P { x: 1 }` is a struct literal.
	root, diags := parseSource(t, "let p = P { x: 1 };\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if countKind(root, cst.StructInitExpr) != 1 {
		t.Error("expected P { x: 1 } to parse as a struct literal")
	}
}

func TestParseIfConditionNeverParsesAsStructLiteral(t *testing.T) {
	// `if flag { x: 1 }` — the block body looks like a struct-literal peek
	// but must be parsed as the if's block, not folded into the condition.
	root, diags := parseSource(t, "fn f() { if flag { x: 1; } }\n")
	if countKind(root, cst.StructInitExpr) != 0 {
		t.Error("condition must never absorb the following block as a struct literal")
	}
	_ = diags
}

func TestParseDuplicateFieldName(t *testing.T) {
	_, diags := parseSource(t, "struct S { a: Int, a: Int }\n")
	found := false
	for _, d := range diags {
		if d.Code == diag.S0012DuplicateFieldName {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s for duplicate field name, got %v", diag.S0012DuplicateFieldName, diags)
	}
}

func TestParseNoFalseDuplicateAcrossStructs(t *testing.T) {
	_, diags := parseSource(t, "struct S { a: Int } struct T { a: Int }\n")
	for _, d := range diags {
		if d.Code == diag.S0012DuplicateFieldName {
			t.Errorf("field name reused across separate structs must not be flagged: %v", diags)
		}
	}
}

func TestParseErrorRecoveryInsertsSyntheticToken(t *testing.T) {
	// Missing semicolon: parser should recover with a synthetic ';' rather
	// than aborting, and report a diagnostic.
	root, diags := parseSource(t, "let x = 10\nlet y = 20;\n")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the missing semicolon")
	}
	if countKind(root, cst.VarDeclaration) != 2 {
		t.Error("parser should recover and still find both declarations")
	}

	var synthetic []*cst.Node
	cst.Walk(root, func(n *cst.Node) {
		if n.IsLeaf() && n.Token.IsSynthetic {
			synthetic = append(synthetic, n)
		}
	})
	if len(synthetic) == 0 {
		t.Error("expected at least one synthetic recovery token in the tree")
	}
}

func TestParseTupleVsParenExpression(t *testing.T) {
	root, diags := parseSource(t, "let a = (1);\nlet b = (1, 2);\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if countKind(root, cst.ParenExpr) != 1 {
		t.Error("single parenthesized expression should be a ParenExpr, not a tuple")
	}
	if countKind(root, cst.TupleLiteral) != 1 {
		t.Error("comma-separated parenthesized expression should be a TupleLiteral")
	}
}

func TestParseLosslessRoundTrip(t *testing.T) {
	src := "let x = 10; // keep me\nfn f(a: Int) -> Int { return a; }\n"
	lexRes := lexer.Lex([]byte(src), "t.zero")
	toks, _ := preprocess.Process(lexRes.Tokens, "t.zero")
	root, diags := parser.Parse(toks, "t.zero")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	leaves := cst.Leaves(root)
	var wantTexts []string
	for _, tok := range toks {
		if tok.Kind == lexer.EndOfFile {
			continue
		}
		wantTexts = append(wantTexts, tok.Text)
	}
	if len(leaves) != len(wantTexts) {
		t.Fatalf("leaf count = %d, want %d", len(leaves), len(wantTexts))
	}
	for i, want := range wantTexts {
		if leaves[i].Text != want {
			t.Errorf("leaf[%d] = %q, want %q", i, leaves[i].Text, want)
		}
	}
}

// TestParseIsDeterministic parses the same source twice and diffs the
// resulting leaf token sequences with go-test/deep, which (unlike plain
// reflect.DeepEqual) reports exactly which field of which leaf differs
// rather than just "not equal".
func TestParseIsDeterministic(t *testing.T) {
	src := "fn f(a: Int) -> Int { if a { return a; } return 0; }\n"
	root1, _ := parseSource(t, src)
	root2, _ := parseSource(t, src)

	leaves1 := cst.Leaves(root1)
	leaves2 := cst.Leaves(root2)
	if diff := deep.Equal(leaves1, leaves2); diff != nil {
		t.Errorf("parse is not deterministic: %v", diff)
	}
}

func TestParseStructMissingCommaOrBrace(t *testing.T) {
	_, diags := parseSource(t, "struct S { a: Int b: Int }\n")
	found := false
	for _, d := range diags {
		if d.Code == diag.S0006ExpectedCommaOrRightBrace {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s, got %v", diag.S0006ExpectedCommaOrRightBrace, diags)
	}
}

func TestParseParamMissingColon(t *testing.T) {
	_, diags := parseSource(t, "fn f(a Int) {}\n")
	found := false
	for _, d := range diags {
		if d.Code == diag.P0011ExpectedTypeAnnotation {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s, got %v", diag.P0011ExpectedTypeAnnotation, diags)
	}
}

func TestParseTypeUnionAndIntersection(t *testing.T) {
	root, diags := parseSource(t, "type T = Int | Str;\ntype U = A & B;\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if countKind(root, cst.UnionType) != 1 {
		t.Error("expected one UnionType node")
	}
	if countKind(root, cst.IntersectionType) != 1 {
		t.Error("expected one IntersectionType node")
	}
}
