package parser

import (
	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
)

// parseTypeExpr is the grammar's type_expr := type_union entry point.
func (p *Parser) parseTypeExpr() *cst.Node {
	return p.parseTypeUnion()
}

// parseTypeUnion implements type_union := type_intersection
// ('|' type_intersection)*, built as a left-associative chain of binary
// UnionType nodes (mirroring BinaryExpr) so multiple arms still read in
// left-to-right source order.
func (p *Parser) parseTypeUnion() *cst.Node {
	left := p.parseTypeIntersection()
	for p.check(lexer.Pipe) {
		op := p.leaf(cst.Operator)
		right := p.parseTypeIntersection()
		left = cst.NewInner(cst.UnionType, span(left.Location, right.Location), left, op, right)
	}
	return left
}

// parseTypeIntersection implements type_intersection := type_primary
// ('&' type_primary)*.
func (p *Parser) parseTypeIntersection() *cst.Node {
	left := p.parseTypePrimary()
	for p.check(lexer.Amp) {
		op := p.leaf(cst.Operator)
		right := p.parseTypePrimary()
		left = cst.NewInner(cst.IntersectionType, span(left.Location, right.Location), left, op, right)
	}
	return left
}

// parseTypePrimary implements type_primary, then repeatedly applies the
// array suffix (§4.4.4): '~' type_primary | 'struct' anon-struct-body |
// '(' type_list ')' ('->' type_or_tuple)? | Ident, each optionally
// followed by one or more '[' Integer? ']'.
func (p *Parser) parseTypePrimary() *cst.Node {
	base := p.parseTypePrimaryBase()
	for p.check(lexer.LeftBracket) {
		base = p.parseArraySuffix(base)
	}
	return base
}

func (p *Parser) parseTypePrimaryBase() *cst.Node {
	switch p.cur().Kind {
	case lexer.Tilde:
		op := p.leaf(cst.Operator)
		inner := p.parseTypePrimary()
		return cst.NewInner(cst.NegationType, span(op.Location, inner.Location), op, inner)
	case lexer.KwStruct:
		return p.parseAnonStructType()
	case lexer.LeftParen:
		return p.parseTupleOrFuncSigType()
	case lexer.Identifier:
		t := p.advance()
		return cst.NewLeaf(cst.NamedType, t, p.locFor(t))
	default:
		cur := p.cur()
		loc := p.locFor(cur)
		p.report(diag.Error, diag.S0007ExpectedTypeName, loc, describeToken(cur))
		synth := lexer.Synthetic(lexer.Identifier, "", loc)
		return cst.NewLeaf(cst.NamedType, synth, loc)
	}
}

func (p *Parser) parseArraySuffix(base *cst.Node) *cst.Node {
	lbracket := p.leaf(cst.Delimiter)
	if p.check(lexer.Integer) {
		size := p.leaf(cst.IntegerLiteral)
		rbracket := p.expect(lexer.RightBracket, cst.Delimiter)
		return cst.NewInner(cst.SizedArrayType, span(base.Location, rbracket.Location), base, lbracket, size, rbracket)
	}
	rbracket := p.expect(lexer.RightBracket, cst.Delimiter)
	return cst.NewInner(cst.ArrayType, span(base.Location, rbracket.Location), base, lbracket, rbracket)
}

// parseAnonStructType implements the anonymous-struct type_primary form:
// 'struct' '{' field (',' field)* ','? '}'.
func (p *Parser) parseAnonStructType() *cst.Node {
	start := p.locFor(p.cur())
	kw := p.leaf(cst.Delimiter)
	lbrace := p.expect(lexer.LeftBrace, cst.Delimiter)
	if lbrace.Token.IsSynthetic {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0002ExpectedLeftBraceInStruct)
	}

	prevSeen := p.seenFieldNames
	p.seenFieldNames = map[string]bool{}

	children := []*cst.Node{kw, lbrace}
	for !p.check(lexer.RightBrace) && !p.atEOF() {
		children = append(children, p.parseStructField())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	p.seenFieldNames = prevSeen

	rbrace := p.expect(lexer.RightBrace, cst.Delimiter)
	if rbrace.Token.IsSynthetic && !p.check(lexer.EndOfFile) {
		p.patchDiagCode(p.lastDiagIdx(), diag.S0006ExpectedCommaOrRightBrace)
	}
	children = append(children, rbrace)
	return cst.NewInner(cst.AnonStructType, span(start, rbrace.Location), children...)
}

// parseTupleOrFuncSigType implements '(' type_list ')'
// ('->' type_or_tuple)?. A type_list is a comma-separated run of
// type_expr with an allowed trailing comma, covering the zero-, one-, and
// many-element cases uniformly as a TupleType; a following '->' turns the
// parenthesized list into a FunctionSignatureType's parameter list.
func (p *Parser) parseTupleOrFuncSigType() *cst.Node {
	start := p.locFor(p.cur())
	lparen := p.leaf(cst.Delimiter)

	children := []*cst.Node{lparen}
	for !p.check(lexer.RightParen) && !p.atEOF() {
		children = append(children, p.parseTypeExpr())
		if !p.check(lexer.Comma) {
			break
		}
		children = append(children, p.leaf(cst.Delimiter))
	}
	rparen := p.expect(lexer.RightParen, cst.Delimiter)
	var pendingDiagIdx = -1
	if rparen.Token.IsSynthetic {
		pendingDiagIdx = p.lastDiagIdx()
		p.patchDiagCode(pendingDiagIdx, diag.S0010ExpectedRightParenInTuple)
	}
	children = append(children, rparen)

	if !p.check(lexer.Arrow) {
		return cst.NewInner(cst.TupleType, span(start, rparen.Location), children...)
	}

	if pendingDiagIdx >= 0 {
		p.patchDiagCode(pendingDiagIdx, diag.S0011ExpectedRightParenInFuncSig)
	}
	arrow := p.leaf(cst.Operator)
	ret := p.parseTypeExpr()
	children = append(children, arrow, ret)
	return cst.NewInner(cst.FunctionSignatureType, span(start, ret.Location), children...)
}
