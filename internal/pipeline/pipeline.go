// Package pipeline wires the four core stages — lexer, token
// preprocessor, parser, and diagnostic engine — into the single-file
// compilation job the CLI drives: lex, preprocess, parse, merge
// diagnostics, and report whether an Error-level diagnostic blocks
// progression to the next stage.
package pipeline

import (
	"log/slog"

	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/locale"
	"github.com/begoniahe/zero/internal/parser"
	"github.com/begoniahe/zero/internal/preprocess"
	"github.com/begoniahe/zero/internal/text"
)

// Result is one file's compilation job: its token stream (post-
// preprocessing), its CST root (nil if the parser never ran), and the
// diagnostic engine holding every stage's merged, rendering-ready output.
type Result struct {
	Filename string
	Tokens   []lexer.Token
	Root     *cst.Node
	Engine   *diag.Engine
}

// Run lexes, preprocesses, and parses src, merging each stage's
// diagnostics into a locale-rendered engine. Per §7, an Error-level
// diagnostic from the lexer or token preprocessor blocks the parser from
// running for this file; the parser itself never stops early once
// started.
func Run(src []byte, filename string, loc string) Result {
	tracker := text.NewSourceTracker(src, filename)
	catalog := locale.Load(loc)
	engine := diag.NewEngine(catalog)
	lineOf := func(n int) string { return tracker.GetSourceLine(n) }

	slog.Debug("lexing", slog.String("file", filename), slog.Int("bytes", len(src)))
	lexRes := lexer.Lex(src, filename)
	engine.Merge(lexRes.Diagnostics, lineOf)
	slog.Debug("lexed", slog.String("file", filename),
		slog.Int("tokens", len(lexRes.Tokens)), slog.Int("diagnostics", len(lexRes.Diagnostics)))

	tokens, ppDiags := preprocess.Process(lexRes.Tokens, filename)
	engine.Merge(ppDiags, lineOf)
	slog.Debug("preprocessed", slog.String("file", filename), slog.Int("diagnostics", len(ppDiags)))

	if engine.HasErrors() {
		slog.Debug("parse skipped", slog.String("file", filename), slog.String("reason", "earlier stage has errors"))
		return Result{Filename: filename, Tokens: tokens, Engine: engine}
	}

	root, parseDiags := parser.Parse(tokens, filename)
	engine.Merge(parseDiags, lineOf)
	slog.Debug("parsed", slog.String("file", filename), slog.Int("diagnostics", len(parseDiags)))

	return Result{Filename: filename, Tokens: tokens, Root: root, Engine: engine}
}
