package parser

import (
	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/lexer"
)

// parseStatement implements statement := return_stmt | if_stmt |
// while_stmt | block | expr_stmt.
func (p *Parser) parseStatement() *cst.Node {
	switch p.cur().Kind {
	case lexer.KwReturn:
		return p.parseReturnStmt()
	case lexer.KwIf:
		return p.parseIfStmt()
	case lexer.KwWhile:
		return p.parseWhileStmt()
	case lexer.LeftBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock implements block := '{' (declaration | comment)* '}'.
func (p *Parser) parseBlock() *cst.Node {
	start := p.locFor(p.cur())
	lbrace := p.expect(lexer.LeftBrace, cst.Delimiter)

	bodyStart := p.locFor(p.cur())
	var stmts []*cst.Node
	for !p.check(lexer.RightBrace) && !p.atEOF() {
		if p.check(lexer.Comment) {
			stmts = append(stmts, p.leaf(cst.Comment))
			continue
		}
		before := p.pos
		if decl := p.parseDeclaration(); decl != nil {
			stmts = append(stmts, decl)
		}
		if p.pos == before {
			// Safety valve: parseDeclaration must always advance; if it
			// somehow didn't, force progress so recovery can't loop.
			p.advance()
		}
	}
	bodyEnd := bodyStart
	if len(stmts) > 0 {
		bodyEnd = stmts[len(stmts)-1].Location
	}
	stmtList := cst.NewInner(cst.StatementList, span(bodyStart, bodyEnd), stmts...)

	rbrace := p.expect(lexer.RightBrace, cst.Delimiter)
	children := []*cst.Node{lbrace}
	if len(stmts) > 0 {
		children = append(children, stmtList)
	} else {
		// StatementList is itself a non-leaf node; an empty block still
		// needs a child, so we only attach it when non-empty and fall
		// back to the braces alone otherwise.
	}
	children = append(children, rbrace)
	return cst.NewInner(cst.BlockStmt, span(start, rbrace.Location), children...)
}

// parseReturnStmt implements return_stmt := 'return' expression? ';'.
func (p *Parser) parseReturnStmt() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	children := []*cst.Node{kw}
	if !p.check(lexer.Semicolon) {
		children = append(children, p.parseExpression())
	}
	semi := p.expectSemicolon()
	children = append(children, semi)
	children = p.attachInlineComment(children, semi)
	return cst.NewInner(cst.ReturnStmt, span(start, children[len(children)-1].Location), children...)
}

// parseIfStmt implements if_stmt := 'if' expression block ('else'
// (if_stmt | block))?.
func (p *Parser) parseIfStmt() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	cond := p.parseConditionExpression()
	thenBlock := p.parseBlock()
	children := []*cst.Node{kw, cond, thenBlock}
	end := thenBlock.Location

	if p.check(lexer.KwElse) {
		elseKw := p.leaf(cst.Delimiter)
		children = append(children, elseKw)
		var branch *cst.Node
		if p.check(lexer.KwIf) {
			branch = p.parseIfStmt()
		} else {
			branch = p.parseBlock()
		}
		children = append(children, branch)
		end = branch.Location
	}
	return cst.NewInner(cst.IfStmt, span(start, end), children...)
}

// parseWhileStmt implements while_stmt := 'while' expression block.
func (p *Parser) parseWhileStmt() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	cond := p.parseConditionExpression()
	body := p.parseBlock()
	return cst.NewInner(cst.WhileStmt, span(start, body.Location), kw, cond, body)
}

// parseConditionExpression parses an expression in a control-flow head,
// suppressing the struct-literal postfix (§4.4.3) so a following '{'
// always opens the block rather than racing a struct literal.
func (p *Parser) parseConditionExpression() *cst.Node {
	prev := p.noStructLiteral
	p.noStructLiteral = true
	defer func() { p.noStructLiteral = prev }()
	return p.parseExpression()
}

// parseExprStmt implements expr_stmt := expression ';' (Comment)?.
func (p *Parser) parseExprStmt() *cst.Node {
	start := p.locFor(p.cur())
	expr := p.parseExpression()
	semi := p.expectSemicolon()
	children := []*cst.Node{expr, semi}
	children = p.attachInlineComment(children, semi)
	return cst.NewInner(cst.ExprStmt, span(start, children[len(children)-1].Location), children...)
}
