package parser

import (
	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
)

// parseProgram is the grammar's program := (declaration | comment)*.
func (p *Parser) parseProgram() *cst.Node {
	start := p.locFor(p.cur())
	var children []*cst.Node
	for !p.atEOF() {
		if p.check(lexer.Comment) {
			children = append(children, p.leaf(cst.Comment))
			continue
		}
		if decl := p.parseDeclaration(); decl != nil {
			children = append(children, decl)
		}
	}
	end := start
	if len(children) > 0 {
		end = children[len(children)-1].Location
	}
	if len(children) == 0 {
		// Every non-leaf node needs >=1 child; an empty program still
		// needs somewhere to anchor, so synthesize nothing and leave an
		// empty StatementList-free Program — acceptable for an empty
		// source file, the one legitimate zero-declaration input.
	}
	return cst.NewInner(cst.Program, span(start, end), children...)
}

// parseDeclaration implements declaration := var_decl | fn_decl |
// struct_decl | type_alias_decl | statement. A token that cannot begin any
// of those productions fails before producing any node at all; it is
// reported once, skipped to the next statement landmark (§4.4.7's
// to-statement-start strategy), and parseDeclaration returns nil so callers
// simply omit it from the child list.
func (p *Parser) parseDeclaration() *cst.Node {
	if junkAtDeclarationStart[p.cur().Kind] {
		cur := p.cur()
		p.report(diag.Error, diag.P0001UnexpectedToken, p.locFor(cur), describeToken(cur))
		p.syncToStatementStart()
		return nil
	}
	switch p.cur().Kind {
	case lexer.KwLet, lexer.KwVar:
		return p.parseVarDecl()
	case lexer.KwFn:
		return p.parseFnDecl()
	case lexer.KwStruct:
		return p.parseStructDecl()
	case lexer.KwType:
		return p.parseTypeAliasDecl()
	default:
		return p.parseStatement()
	}
}

// parseVarDecl implements var_decl := ('let'|'var') Ident (':' type_expr)?
// ('=' expression)? ';'.
func (p *Parser) parseVarDecl() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	children := []*cst.Node{kw, p.expectIdentifier()}

	if p.check(lexer.Colon) {
		children = append(children, p.leaf(cst.Delimiter), p.parseTypeExpr())
	}
	if p.check(lexer.Equal) {
		children = append(children, p.leaf(cst.Operator), p.parseExpression())
	}

	semi := p.expectSemicolon()
	children = append(children, semi)
	children = p.attachInlineComment(children, semi)

	return cst.NewInner(cst.VarDeclaration, span(start, children[len(children)-1].Location), children...)
}

// expectSemicolon consumes ';', recovering with syncToSemicolon on a
// mismatch so CST shape still closes out with a synthetic ';'.
func (p *Parser) expectSemicolon() *cst.Node {
	if p.check(lexer.Semicolon) {
		return p.leaf(cst.Delimiter)
	}
	cur := p.cur()
	loc := p.locFor(cur)
	p.report(diag.Error, diag.P0001UnexpectedToken, loc, describeToken(cur))
	p.syncToSemicolon()
	synth := lexer.Synthetic(lexer.Semicolon, "", loc)
	return cst.NewLeaf(cst.Delimiter, synth, loc)
}

// attachInlineComment appends a trailing Comment as the last child when it
// sits on the same source line as the statement's closing ';', per the
// inline-comment rule in §3/§4.5.
func (p *Parser) attachInlineComment(children []*cst.Node, terminator *cst.Node) []*cst.Node {
	if p.check(lexer.Comment) && p.cur().Line == terminator.Token.Line {
		children = append(children, p.leaf(cst.Comment))
	}
	return children
}

// parseFnDecl implements fn_decl := 'fn' Ident '(' param_list? ')'
// ('->' type_expr)? block.
func (p *Parser) parseFnDecl() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	name := p.expectIdentifier()
	lparen := p.expect(lexer.LeftParen, cst.Delimiter)
	params := p.parseParamList()
	rparen := p.expect(lexer.RightParen, cst.Delimiter)

	children := []*cst.Node{kw, name, lparen, params, rparen}
	if p.check(lexer.Arrow) {
		children = append(children, p.leaf(cst.Operator), p.parseTypeExpr())
	}
	block := p.parseBlock()
	children = append(children, block)

	return cst.NewInner(cst.FnDeclaration, span(start, block.Location), children...)
}

// parseParamList implements param_list as a comma-separated list of
// Ident ':' type_expr, trailing comma allowed for uniformity with tuple
// types (§9 Open Questions).
func (p *Parser) parseParamList() *cst.Node {
	start := p.locFor(p.cur())
	var children []*cst.Node
	for !p.check(lexer.RightParen) && !p.atEOF() {
		children = append(children, p.parseParam())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	end := start
	if len(children) > 0 {
		end = children[len(children)-1].Location
	}
	return cst.NewInner(cst.ParamList, span(start, end), children...)
}

func (p *Parser) parseParam() *cst.Node {
	name := p.expectIdentifier()
	colon := p.expect(lexer.Colon, cst.Delimiter)
	if colon.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.P0011ExpectedTypeAnnotation)
	}
	typ := p.parseTypeExpr()
	return cst.NewInner(cst.Param, span(name.Location, typ.Location), name, colon, typ)
}

// parseStructDecl implements struct_decl := 'struct' Ident '{' (field
// (',' field)* ','?)? '}' ';'?, with duplicate-field detection (§4.4.6).
func (p *Parser) parseStructDecl() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	name := p.expect(lexer.Identifier, cst.Identifier)
	if name.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0001ExpectedStructName)
	}
	lbrace := p.expect(lexer.LeftBrace, cst.Delimiter)
	if lbrace.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0002ExpectedLeftBraceInStruct)
	}

	prevSeen := p.seenFieldNames
	p.seenFieldNames = map[string]bool{}

	var children []*cst.Node = []*cst.Node{kw, name, lbrace}
	for !p.check(lexer.RightBrace) && !p.atEOF() {
		children = append(children, p.parseStructField())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	p.seenFieldNames = prevSeen

	if !p.check(lexer.RightBrace) && !p.atEOF() {
		// The field loop broke on something other than ',' or '}' — a
		// malformed field. Anonymous struct-type fields nest '{'/'}', so a
		// naive landmark scan could stop at an inner brace; track depth
		// instead to land on the struct's own closing brace.
		cur := p.cur()
		p.report(diag.Error, diag.S0006ExpectedCommaOrRightBrace, p.locFor(cur), describeToken(cur))
		p.syncToBlockEnd()
	}

	rbrace := p.expect(lexer.RightBrace, cst.Delimiter)
	if rbrace.Token.IsSynthetic && !p.check(lexer.EndOfFile) {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0006ExpectedCommaOrRightBrace)
	}
	children = append(children, rbrace)
	end := rbrace.Location
	if p.check(lexer.Semicolon) {
		semi := p.leaf(cst.Delimiter)
		children = append(children, semi)
		end = semi.Location
	}
	return cst.NewInner(cst.StructDeclaration, span(start, end), children...)
}

func (p *Parser) parseStructField() *cst.Node {
	name := p.expect(lexer.Identifier, cst.Identifier)
	if name.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0003ExpectedFieldName)
	} else if p.seenFieldNames != nil {
		if p.seenFieldNames[name.Token.Text] {
			p.report(diag.Error, diag.S0012DuplicateFieldName, name.Location, name.Token.Text)
		}
		p.seenFieldNames[name.Token.Text] = true
	}
	colon := p.expect(lexer.Colon, cst.Delimiter)
	if colon.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0004ExpectedColonAfterFieldName)
	}
	typ := p.parseTypeExpr()
	return cst.NewInner(cst.Field, span(name.Location, typ.Location), name, colon, typ)
}

// parseTypeAliasDecl implements type_alias_decl := 'type' Ident '='
// type_expr ';'.
func (p *Parser) parseTypeAliasDecl() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	name := p.expectIdentifier()
	eq := p.expect(lexer.Equal, cst.Operator)
	if eq.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0008ExpectedEqualInTypeAlias)
	}
	typ := p.parseTypeExpr()
	semi := p.expectSemicolon()
	return cst.NewInner(cst.TypeAliasDeclaration, span(start, semi.Location), kw, name, eq, typ, semi)
}
