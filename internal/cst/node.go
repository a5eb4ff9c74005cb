// Package cst defines the lossless concrete syntax tree the parser builds
// and the formatter walks: every token the lexer produced — keywords,
// punctuation, literals, identifiers, comments — is reachable as a leaf,
// in source order, under exclusive parent ownership.
package cst

import (
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/text"
)

// Kind identifies a CST node's syntactic category. The set spans
// declarations, statements, expressions, type expressions, the
// parameter/argument/statement list containers, and two leaf categories —
// Operator and Delimiter — that hold punctuation and keyword tokens in
// their textual position.
type Kind uint8

const (
	Program Kind = iota

	// Declarations.
	VarDeclaration
	FnDeclaration
	StructDeclaration
	TypeAliasDeclaration
	Field
	Param
	ParamList
	ArgList

	// Statements.
	StatementList
	BlockStmt
	ReturnStmt
	IfStmt
	WhileStmt
	ExprStmt

	// Expressions.
	AssignExpr
	MemberAssignExpr
	IndexAssignExpr
	BinaryExpr
	UnaryExpr
	CallExpr
	IndexExpr
	MemberExpr
	StructInitExpr
	StructInitBody
	FieldInit
	ParenExpr
	TupleLiteral
	ArrayLiteral
	FnLiteral

	// Leaves carrying a literal or name token.
	Identifier
	IntegerLiteral
	FloatLiteral
	StringLiteral
	BoolLiteral
	Comment

	// Type expressions.
	UnionType
	IntersectionType
	NegationType
	ArrayType
	SizedArrayType
	TupleType
	FunctionSignatureType
	AnonStructType
	NamedType

	// Punctuation/keyword leaves stored in their textual position.
	Operator
	Delimiter
)

var kindNames = [...]string{
	"Program", "VarDeclaration", "FnDeclaration", "StructDeclaration",
	"TypeAliasDeclaration", "Field", "Param", "ParamList", "ArgList",
	"StatementList", "BlockStmt", "ReturnStmt", "IfStmt", "WhileStmt", "ExprStmt",
	"AssignExpr", "MemberAssignExpr", "IndexAssignExpr", "BinaryExpr", "UnaryExpr",
	"CallExpr", "IndexExpr", "MemberExpr", "StructInitExpr", "StructInitBody",
	"FieldInit", "ParenExpr", "TupleLiteral", "ArrayLiteral", "FnLiteral",
	"Identifier", "IntegerLiteral", "FloatLiteral", "StringLiteral", "BoolLiteral",
	"Comment", "UnionType", "IntersectionType", "NegationType", "ArrayType",
	"SizedArrayType", "TupleType", "FunctionSignatureType", "AnonStructType",
	"NamedType", "Operator", "Delimiter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a tree node under exclusive parent ownership: children are owned
// by exactly one parent, in source order. A leaf node (Operator, Delimiter,
// Identifier, any literal, or Comment) carries a Token and no children;
// every other node has a nil Token. Most inner nodes have one or more
// children, but an empty ParamList, ArgList or StructInitBody, and the
// Program of an empty source, have none.
type Node struct {
	Kind     Kind
	Location text.Location
	Children []*Node
	Token    *lexer.Token
}

// NewLeaf builds a leaf node wrapping tok.
func NewLeaf(kind Kind, tok lexer.Token, loc text.Location) *Node {
	t := tok
	return &Node{Kind: kind, Location: loc, Token: &t}
}

// NewInner builds a non-leaf node spanning loc with the given children.
func NewInner(kind Kind, loc text.Location, children ...*Node) *Node {
	return &Node{Kind: kind, Location: loc, Children: children}
}

// IsLeaf reports whether n carries a token directly rather than children.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Token != nil
}

// Walk visits n and every descendant in source order, depth-first.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Leaves collects every leaf token reachable from n, in source order —
// the sequence the lossless round-trip property is checked against.
func Leaves(n *Node) []lexer.Token {
	var out []lexer.Token
	Walk(n, func(node *Node) {
		if node.IsLeaf() {
			out = append(out, *node.Token)
		}
	})
	return out
}
