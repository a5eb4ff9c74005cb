package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/begoniahe/zero/internal/lexer"
)

func TestEscapeTokenValue(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a\nb", `a\nb`},
		{"a\tb", `a\tb`},
		{"a\"b", `a\"b`},
		{"a\\b", `a\\b`},
		{"\x01", `\x01`},
	}
	for _, tc := range cases {
		if got := escapeTokenValue(tc.in); got != tc.want {
			t.Errorf("escapeTokenValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseIndentWidth(t *testing.T) {
	if n, err := parseIndentWidth("4"); err != nil || n != 4 {
		t.Errorf("parseIndentWidth(4) = (%d, %v), want (4, nil)", n, err)
	}
	if _, err := parseIndentWidth("0"); err == nil {
		t.Error("parseIndentWidth(0) should reject out-of-range width")
	}
	if _, err := parseIndentWidth("17"); err == nil {
		t.Error("parseIndentWidth(17) should reject out-of-range width")
	}
	if _, err := parseIndentWidth("x"); err == nil {
		t.Error("parseIndentWidth(non-numeric) should fail")
	}
}

func TestWriteTokensFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.zero")
	if err := os.WriteFile(path, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	toks := []lexer.Token{
		{Kind: lexer.KwLet, Text: "let", Line: 1, Column: 1},
		{Kind: lexer.Identifier, Text: "x", Line: 1, Column: 5},
		{Kind: lexer.EndOfFile, Line: 1, Column: 11},
	}
	if err := writeTokensFile(path, toks); err != nil {
		t.Fatalf("writeTokensFile: %v", err)
	}

	out, err := os.ReadFile(path + ".tokens")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(out)
	if !strings.HasPrefix(content, "# Tokenization Result\n") {
		t.Errorf("missing header, got: %q", content)
	}
	if !strings.Contains(content, "Total tokens: 3") {
		t.Errorf("missing token count, got: %q", content)
	}
	if !strings.Contains(content, "Let") || !strings.Contains(content, "Identifier") {
		t.Errorf("missing expected token kinds, got: %q", content)
	}
}

func TestIsTerminalNonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if isTerminal(&buf) {
		t.Error("a bytes.Buffer should never be reported as a terminal")
	}
}
