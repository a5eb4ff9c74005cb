package parser

import (
	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
)

// parseExpression is the grammar's expression := assignment entry point.
func (p *Parser) parseExpression() *cst.Node {
	return p.parseAssignment()
}

// parseAssignment implements assignment := logical_or ('=' assignment)?,
// right-associative. The target's CST kind decides which of the three
// assignment node kinds is produced (§9 Open Questions: member-assignment
// targets stay flat rather than nesting one MemberAssignExpr per '.').
func (p *Parser) parseAssignment() *cst.Node {
	left := p.parseLogicalOr()
	if !p.check(lexer.Equal) {
		return left
	}
	eq := p.leaf(cst.Operator)
	right := p.parseAssignment()

	kind := cst.AssignExpr
	switch left.Kind {
	case cst.MemberExpr:
		kind = cst.MemberAssignExpr
	case cst.IndexExpr:
		kind = cst.IndexAssignExpr
	case cst.Identifier:
		kind = cst.AssignExpr
	default:
		p.report(diag.Error, diag.P0013InvalidAssignmentTarget, left.Location)
	}
	return cst.NewInner(kind, span(left.Location, right.Location), left, eq, right)
}

// binaryLevel parses one level of left-associative binary operators.
func (p *Parser) binaryLevel(next func() *cst.Node, kinds ...lexer.Kind) *cst.Node {
	left := next()
	for {
		matched := false
		for _, k := range kinds {
			if p.check(k) {
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
		op := p.leaf(cst.Operator)
		right := next()
		left = cst.NewInner(cst.BinaryExpr, span(left.Location, right.Location), left, op, right)
	}
}

func (p *Parser) parseLogicalOr() *cst.Node {
	return p.binaryLevel(p.parseLogicalAnd, lexer.OrOr)
}

func (p *Parser) parseLogicalAnd() *cst.Node {
	return p.binaryLevel(p.parseEquality, lexer.AndAnd)
}

func (p *Parser) parseEquality() *cst.Node {
	return p.binaryLevel(p.parseComparison, lexer.EqualEqual, lexer.BangEqual)
}

func (p *Parser) parseComparison() *cst.Node {
	return p.binaryLevel(p.parseTerm, lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual)
}

func (p *Parser) parseTerm() *cst.Node {
	return p.binaryLevel(p.parseFactor, lexer.Plus, lexer.Minus)
}

func (p *Parser) parseFactor() *cst.Node {
	return p.binaryLevel(p.parseUnary, lexer.Star, lexer.Slash, lexer.Percent)
}

// parseUnary implements unary := ('!'|'-') unary | call.
func (p *Parser) parseUnary() *cst.Node {
	if p.check(lexer.Bang) || p.check(lexer.Minus) {
		op := p.leaf(cst.Operator)
		operand := p.parseUnary()
		return cst.NewInner(cst.UnaryExpr, span(op.Location, operand.Location), op, operand)
	}
	return p.parseCall()
}

// parseCall implements the postfix chain: call | index | member |
// struct-literal, applied repeatedly to a primary expression.
func (p *Parser) parseCall() *cst.Node {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.LeftParen):
			expr = p.parseCallArgs(expr)
		case p.check(lexer.LeftBracket):
			expr = p.parseIndex(expr)
		case p.check(lexer.Dot):
			expr = p.parseMember(expr)
		case p.check(lexer.LeftBrace):
			next, ok := p.tryStructInit(expr)
			if !ok {
				return expr
			}
			expr = next
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(callee *cst.Node) *cst.Node {
	lparen := p.leaf(cst.Delimiter)
	args := p.parseArgList()
	rparen := p.expect(lexer.RightParen, cst.Delimiter)
	return cst.NewInner(cst.CallExpr, span(callee.Location, rparen.Location), callee, lparen, args, rparen)
}

func (p *Parser) parseArgList() *cst.Node {
	start := p.locFor(p.cur())
	var children []*cst.Node
	for !p.check(lexer.RightParen) && !p.atEOF() {
		children = append(children, p.parseExpression())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	end := start
	if len(children) > 0 {
		end = children[len(children)-1].Location
	}
	return cst.NewInner(cst.ArgList, span(start, end), children...)
}

func (p *Parser) parseIndex(base *cst.Node) *cst.Node {
	lbracket := p.leaf(cst.Delimiter)
	idx := p.parseExpression()
	rbracket := p.expect(lexer.RightBracket, cst.Delimiter)
	return cst.NewInner(cst.IndexExpr, span(base.Location, rbracket.Location), base, lbracket, idx, rbracket)
}

func (p *Parser) parseMember(base *cst.Node) *cst.Node {
	dot := p.leaf(cst.Delimiter)
	name := p.expectIdentifier()
	return cst.NewInner(cst.MemberExpr, span(base.Location, name.Location), base, dot, name)
}

// tryStructInit implements the disambiguation rule in §4.4.3: peek one
// token past '{' to decide between a struct literal and a block start. On
// a non-match, the '{' is left unconsumed for the caller.
func (p *Parser) tryStructInit(base *cst.Node) (*cst.Node, bool) {
	if p.noStructLiteral {
		return base, false
	}
	after := p.peek(1)
	isStruct := after.Kind == lexer.RightBrace ||
		(after.Kind == lexer.Identifier && p.peek(2).Kind == lexer.Colon)
	if !isStruct {
		return base, false
	}

	lbrace := p.leaf(cst.Delimiter)
	body := p.parseStructInitBody()
	rbrace := p.expect(lexer.RightBrace, cst.Delimiter)
	return cst.NewInner(cst.StructInitExpr, span(base.Location, rbrace.Location), base, lbrace, body, rbrace), true
}

func (p *Parser) parseStructInitBody() *cst.Node {
	start := p.locFor(p.cur())
	var children []*cst.Node
	for !p.check(lexer.RightBrace) && !p.atEOF() {
		children = append(children, p.parseFieldInit())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	end := start
	if len(children) > 0 {
		end = children[len(children)-1].Location
	}
	return cst.NewInner(cst.StructInitBody, span(start, end), children...)
}

func (p *Parser) parseFieldInit() *cst.Node {
	name := p.expect(lexer.Identifier, cst.Identifier)
	if name.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0013ExpectedStructFieldInit)
	}
	colon := p.expect(lexer.Colon, cst.Delimiter)
	value := p.parseExpression()
	return cst.NewInner(cst.FieldInit, span(name.Location, value.Location), name, colon, value)
}

// parsePrimary implements primary := literal | Ident | '(' expression ')'
// | '(' tuple_body ')' | '[' elems? ']' | fn_literal.
func (p *Parser) parsePrimary() *cst.Node {
	switch p.cur().Kind {
	case lexer.Integer:
		return p.leaf(cst.IntegerLiteral)
	case lexer.Float:
		return p.leaf(cst.FloatLiteral)
	case lexer.String:
		return p.leaf(cst.StringLiteral)
	case lexer.KwTrue, lexer.KwFalse:
		return p.leaf(cst.BoolLiteral)
	case lexer.Identifier:
		return p.leaf(cst.Identifier)
	case lexer.LeftParen:
		return p.parseParenOrTuple()
	case lexer.LeftBracket:
		return p.parseArrayLiteral()
	case lexer.KwFn:
		return p.parseFnLiteral()
	default:
		cur := p.cur()
		loc := p.locFor(cur)
		p.report(diag.Error, diag.P0005ExpectedExpression, loc, describeToken(cur))
		if !p.atEOF() {
			p.advance()
		}
		synth := lexer.Synthetic(lexer.Integer, "", loc)
		return cst.NewLeaf(cst.IntegerLiteral, synth, loc)
	}
}

// parseParenOrTuple implements the tuple/parenthesized-expression
// disambiguation (§4.4.5): after the first expression, a following ','
// means a tuple (trailing comma allowed); otherwise it's a parenthesized
// expression.
func (p *Parser) parseParenOrTuple() *cst.Node {
	start := p.locFor(p.cur())
	lparen := p.leaf(cst.Delimiter)

	if p.check(lexer.RightParen) {
		rparen := p.leaf(cst.Delimiter)
		return cst.NewInner(cst.TupleLiteral, span(start, rparen.Location), lparen, rparen)
	}

	first := p.parseExpression()
	if !p.check(lexer.Comma) {
		rparen := p.expect(lexer.RightParen, cst.Delimiter)
		return cst.NewInner(cst.ParenExpr, span(start, rparen.Location), lparen, first, rparen)
	}

	children := []*cst.Node{lparen, first}
	for p.check(lexer.Comma) {
		children = append(children, p.leaf(cst.Delimiter))
		if p.check(lexer.RightParen) {
			break
		}
		children = append(children, p.parseExpression())
	}
	rparen := p.expect(lexer.RightParen, cst.Delimiter)
	children = append(children, rparen)
	return cst.NewInner(cst.TupleLiteral, span(start, rparen.Location), children...)
}

// parseArrayLiteral implements '[' elems? ']'.
func (p *Parser) parseArrayLiteral() *cst.Node {
	start := p.locFor(p.cur())
	lbracket := p.leaf(cst.Delimiter)
	children := []*cst.Node{lbracket}
	for !p.check(lexer.RightBracket) && !p.atEOF() {
		children = append(children, p.parseExpression())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	rbracket := p.expect(lexer.RightBracket, cst.Delimiter)
	children = append(children, rbracket)
	return cst.NewInner(cst.ArrayLiteral, span(start, rbracket.Location), children...)
}

// parseFnLiteral implements the fn_literal primary: an anonymous function
// value sharing fn_decl's parameter/return/body grammar, minus the name.
func (p *Parser) parseFnLiteral() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	lparen := p.expect(lexer.LeftParen, cst.Delimiter)
	params := p.parseParamList()
	rparen := p.expect(lexer.RightParen, cst.Delimiter)
	children := []*cst.Node{kw, lparen, params, rparen}
	if p.check(lexer.Arrow) {
		children = append(children, p.leaf(cst.Operator), p.parseTypeExpr())
	}
	body := p.parseBlock()
	children = append(children, body)
	return cst.NewInner(cst.FnLiteral, span(start, body.Location), children...)
}
