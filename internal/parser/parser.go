// Package parser implements the hand-written recursive-descent parser:
// token vector in, a single lossless CST root out, with synchronizing
// error recovery so one pass surfaces as many diagnostics as possible.
package parser

import (
	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/text"
)

// statementStartKinds are the keywords that may begin a declaration or
// statement; they double as synchronization landmarks during recovery.
var statementStartKinds = map[lexer.Kind]bool{
	lexer.KwLet: true, lexer.KwVar: true, lexer.KwFn: true,
	lexer.KwReturn: true, lexer.KwIf: true, lexer.KwWhile: true,
}

// junkAtDeclarationStart are tokens that cannot begin a declaration, a
// statement, or an expression on their own; one of these sitting at a
// declaration boundary means the declaration fails before producing any
// CST node at all (§4.4.7's to-statement-start strategy).
var junkAtDeclarationStart = map[lexer.Kind]bool{
	lexer.RightParen: true, lexer.RightBracket: true, lexer.Comma: true,
	lexer.Colon: true, lexer.Arrow: true, lexer.DotDot: true,
	lexer.Equal: true, lexer.EqualEqual: true, lexer.BangEqual: true,
	lexer.Less: true, lexer.LessEqual: true, lexer.Greater: true, lexer.GreaterEqual: true,
	lexer.AndAnd: true, lexer.OrOr: true,
	lexer.PlusEqual: true, lexer.MinusEqual: true, lexer.StarEqual: true,
	lexer.SlashEqual: true, lexer.PercentEqual: true,
	lexer.Star: true, lexer.Slash: true, lexer.Percent: true, lexer.Dot: true,
	lexer.Unknown: true,
}

// Parser walks a token vector by index, producing a CST and a stream of
// diagnostics. It never stops at the first error: consume failures
// synchronize to a landmark and resume.
type Parser struct {
	tokens    []lexer.Token
	pos       int
	filename  string
	collector *diag.Collector

	// noStructLiteral suppresses the struct-literal postfix (§4.4.3) while
	// parsing a control-flow head (if/while condition), so the following
	// '{' is always left for the block it introduces rather than risking
	// the "Identifier ':'" struct-literal peek matching on, e.g.,
	// `if flag { x: 1 }`.
	noStructLiteral bool

	// seenFieldNames tracks duplicate field names (§4.4.6) within the
	// struct declaration currently being parsed.
	seenFieldNames map[string]bool
}

// Parse builds a CST Program root from tokens (already lexed and run
// through the token preprocessor). filename stamps diagnostic locations.
func Parse(tokens []lexer.Token, filename string) (*cst.Node, []diag.Diagnostic) {
	p := &Parser{tokens: tokens, filename: filename, collector: &diag.Collector{}}
	root := p.parseProgram()
	return root, p.collector.Diagnostics()
}

// --- cursor ---

func (p *Parser) cur() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eofToken()
}

func (p *Parser) peek(k int) lexer.Token {
	i := p.pos + k
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.eofToken()
}

func (p *Parser) eofToken() lexer.Token {
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		return lexer.Token{Kind: lexer.EndOfFile, Line: last.Line, Column: last.Column}
	}
	return lexer.Token{Kind: lexer.EndOfFile, Line: 1, Column: 1}
}

func (p *Parser) atEOF() bool { return p.cur().Kind == lexer.EndOfFile }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k lexer.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// locFor builds a Location spanning a single token.
func (p *Parser) locFor(t lexer.Token) text.Location {
	endCol := t.Column + runeLen(t.Text)
	return text.Location{File: p.filename, StartLine: t.Line, StartCol: t.Column, EndLine: t.Line, EndCol: endCol}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}

// span merges two locations into one covering both.
func span(a, b text.Location) text.Location {
	return text.Location{File: a.File, StartLine: a.StartLine, StartCol: a.StartCol, EndLine: b.EndLine, EndCol: b.EndCol}
}

// --- diagnostics ---

func (p *Parser) report(level diag.Level, code diag.Code, loc text.Location, args ...string) {
	p.collector.Report(level, code, loc, args...)
}

// lastDiagIdx returns the index of the most recently reported diagnostic,
// for callers that report a generic code first (P0001, or a general S-code
// via expect) and then learn enough from what follows to rewrite it to a
// more specific one.
func (p *Parser) lastDiagIdx() int {
	return p.collector.Len() - 1
}

// patchDiagCode rewrites the code of the diagnostic at idx in place.
func (p *Parser) patchDiagCode(idx int, code diag.Code) {
	p.collector.Diagnostics()[idx].Code = code
}

// leaf consumes the current token unconditionally and wraps it as a CST
// leaf of the given kind.
func (p *Parser) leaf(kind cst.Kind) *cst.Node {
	t := p.advance()
	return cst.NewLeaf(kind, t, p.locFor(t))
}

// expect consumes the current token if it matches want, reporting
// P0001_UnexpectedToken and synthesizing a token of the expected kind
// otherwise. The CST always gains a node of the requested leaf kind, so
// tree shape survives a mismatch.
func (p *Parser) expect(want lexer.Kind, kind cst.Kind) *cst.Node {
	if p.check(want) {
		return p.leaf(kind)
	}
	cur := p.cur()
	loc := p.locFor(cur)
	p.report(diag.Error, diag.P0001UnexpectedToken, loc, describeToken(cur))
	synth := lexer.Synthetic(want, "", loc)
	return cst.NewLeaf(kind, synth, loc)
}

func describeToken(t lexer.Token) string {
	if t.Kind == lexer.EndOfFile {
		return "end of input"
	}
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}

// expectIdentifier is expect specialized for an identifier, since callers
// frequently need the name text regardless of recovery.
func (p *Parser) expectIdentifier() *cst.Node {
	return p.expect(lexer.Identifier, cst.Identifier)
}

// --- synchronization (§4.4.7) ---

// syncToSemicolon skips until ';', '}', or a statement-starting keyword,
// consuming the ';' if that's what stopped it. Used after a failed
// declaration or statement.
func (p *Parser) syncToSemicolon() {
	for !p.atEOF() {
		if p.check(lexer.Semicolon) {
			p.advance()
			return
		}
		if p.check(lexer.RightBrace) || statementStartKinds[p.cur().Kind] {
			return
		}
		p.advance()
	}
}

// syncToStatementStart skips using the same landmark set but never
// consumes the terminator. Used inside blocks and at the top level when a
// declaration fails before producing any node.
func (p *Parser) syncToStatementStart() {
	for !p.atEOF() {
		if p.check(lexer.Semicolon) || p.check(lexer.RightBrace) || statementStartKinds[p.cur().Kind] {
			return
		}
		p.advance()
	}
}

// syncToBlockEnd tracks brace depth and skips until the matching '}'
// without consuming it.
func (p *Parser) syncToBlockEnd() {
	depth := 0
	for !p.atEOF() {
		switch p.cur().Kind {
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}
