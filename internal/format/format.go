package format

import (
	"strings"

	"github.com/begoniahe/zero/internal/cst"
	"github.com/begoniahe/zero/internal/lexer"
)

// Format walks root and returns the canonical text it renders to.
func Format(root *cst.Node, opts Options) string {
	f := &formatter{opts: opts}
	return f.visit(root)
}

type formatter struct {
	opts  Options
	level int
}

func (f *formatter) indent() string {
	if f.opts.IndentStyle == Tabs {
		return strings.Repeat("\t", f.level)
	}
	width := f.opts.IndentWidth
	if width <= 0 {
		width = 4
	}
	return strings.Repeat(" ", width*f.level)
}

// visit dispatches on n.Kind. Unknown/unrecognized kinds recurse through
// their children in order, concatenating without extra spacing — the
// fallback the spec calls for so the formatter degrades gracefully on any
// CST shape it doesn't have a specific rule for yet.
func (f *formatter) visit(n *cst.Node) string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return f.visitLeaf(n)
	}
	switch n.Kind {
	case cst.Program:
		return f.visitContainer(n)
	case cst.StatementList:
		return f.visitContainer(n)
	case cst.VarDeclaration:
		return f.visitTerminatedStmt(n)
	case cst.ReturnStmt:
		return f.visitTerminatedStmt(n)
	case cst.ExprStmt:
		return f.visitTerminatedStmt(n)
	case cst.TypeAliasDeclaration:
		return f.visitTypeAliasDeclaration(n)
	case cst.FnDeclaration:
		return f.visitFnDeclaration(n)
	case cst.StructDeclaration:
		return f.visitStructDeclaration(n)
	case cst.BlockStmt:
		return f.visitBlockStmt(n)
	case cst.IfStmt:
		return f.visitIfStmt(n)
	case cst.WhileStmt:
		return f.visitWhileStmt(n)
	case cst.BinaryExpr, cst.UnionType, cst.IntersectionType:
		return f.visitBinary(n)
	case cst.UnaryExpr, cst.NegationType:
		return f.visitPrefix(n)
	case cst.CallExpr, cst.IndexExpr, cst.MemberExpr:
		return f.visitPostfix(n)
	case cst.AssignExpr, cst.IndexAssignExpr, cst.MemberAssignExpr:
		return f.visitAssign(n)
	case cst.ArrayLiteral:
		return f.visitBracketedList(n, "[", "]")
	case cst.ParenExpr:
		return f.visitParenExpr(n)
	case cst.TupleLiteral, cst.TupleType:
		return f.visitBracketedList(n, "(", ")")
	case cst.FunctionSignatureType:
		return f.visitFunctionSignatureType(n)
	case cst.StructInitExpr:
		return f.visitStructInitExpr(n)
	case cst.StructInitBody:
		return f.visitCommaList(n)
	case cst.FieldInit:
		return f.visitColonPair(n)
	case cst.Field:
		return f.visitColonPair(n)
	case cst.Param:
		return f.visitColonPair(n)
	case cst.ParamList, cst.ArgList:
		return f.visitCommaList(n)
	case cst.AnonStructType:
		return f.visitAnonStructType(n)
	case cst.SizedArrayType, cst.ArrayType:
		return f.visitArrayTypeSuffix(n)
	case cst.FnLiteral:
		return f.visitFnLiteral(n)
	default:
		return f.visitContainer(n)
	}
}

func (f *formatter) visitLeaf(n *cst.Node) string {
	if n.Token.IsSynthetic {
		return ""
	}
	if n.Kind == cst.StringLiteral {
		return n.Token.RawLiteral
	}
	return n.Token.Text
}

// visitContainer concatenates each child's rendering in order. Standalone
// comments (children of Program/StatementList) get their own indented
// line.
func (f *formatter) visitContainer(n *cst.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Kind == cst.Comment {
			if c.Token.IsSynthetic {
				continue
			}
			b.WriteString(f.indent())
			b.WriteString(c.Token.Text)
			b.WriteString("\n")
			continue
		}
		b.WriteString(f.visit(c))
	}
	return b.String()
}

// noSpaceBefore reports delimiter leaves that never get a preceding
// space when joined generically (';', ':', ',', closing brackets, '.').
func noSpaceBefore(c *cst.Node) bool {
	if c == nil || c.Token == nil {
		return false
	}
	switch c.Token.Kind {
	case lexer.Semicolon, lexer.Colon, lexer.Comma,
		lexer.RightParen, lexer.RightBracket, lexer.Dot:
		return true
	default:
		return false
	}
}

// joinSpaced renders children left-to-right separated by a single space,
// suppressing the space before punctuation in noSpaceBefore and skipping
// any child (synthetic tokens included) that renders to nothing.
func (f *formatter) joinSpaced(children []*cst.Node) string {
	var b strings.Builder
	for _, c := range children {
		text := f.visit(c)
		if text == "" {
			continue
		}
		if b.Len() > 0 && !noSpaceBefore(c) {
			b.WriteString(" ")
		}
		b.WriteString(text)
	}
	return b.String()
}

// visitTerminatedStmt handles VarDeclaration/ReturnStmt/ExprStmt: an
// indented, space-joined sequence ending in ';', with the trailing
// Comment child (if present) rendered as "  // ..." before the newline.
func (f *formatter) visitTerminatedStmt(n *cst.Node) string {
	children := n.Children
	var inlineComment *cst.Node
	if last := children[len(children)-1]; last.Kind == cst.Comment {
		inlineComment = last
		children = children[:len(children)-1]
	}

	var b strings.Builder
	b.WriteString(f.indent())
	b.WriteString(f.joinSpaced(children))
	if inlineComment != nil && !inlineComment.Token.IsSynthetic {
		b.WriteString("  ")
		b.WriteString(inlineComment.Token.Text)
	}
	b.WriteString("\n")
	return b.String()
}

func (f *formatter) visitTypeAliasDeclaration(n *cst.Node) string {
	var b strings.Builder
	b.WriteString(f.indent())
	b.WriteString(f.joinSpaced(n.Children))
	b.WriteString("\n")
	return b.String()
}

// visitFnDeclaration renders "fn name(params) -> ret block" (return type
// optional).
func (f *formatter) visitFnDeclaration(n *cst.Node) string {
	var b strings.Builder
	b.WriteString(f.indent())
	b.WriteString("fn ")
	i := 1 // skip the 'fn' keyword leaf at index 0
	b.WriteString(f.visit(n.Children[i])) // name
	i++
	b.WriteString(f.visit(n.Children[i])) // '('
	i++
	b.WriteString(f.visit(n.Children[i])) // ParamList
	i++
	b.WriteString(f.visit(n.Children[i])) // ')'
	i++
	if n.Children[i].Kind == cst.Operator { // '->'
		b.WriteString(" -> ")
		i++
		b.WriteString(f.visit(n.Children[i])) // return type
		i++
	}
	b.WriteString(" ")
	b.WriteString(f.visit(n.Children[i])) // block
	return b.String()
}

func (f *formatter) visitFnLiteral(n *cst.Node) string {
	var b strings.Builder
	b.WriteString("fn")
	i := 1
	b.WriteString(f.visit(n.Children[i])) // '('
	i++
	b.WriteString(f.visit(n.Children[i])) // ParamList
	i++
	b.WriteString(f.visit(n.Children[i])) // ')'
	i++
	if n.Children[i].Kind == cst.Operator {
		b.WriteString(" -> ")
		i++
		b.WriteString(f.visit(n.Children[i]))
		i++
	}
	b.WriteString(" ")
	b.WriteString(f.visit(n.Children[i]))
	return b.String()
}

// visitStructDeclaration renders "struct Name {" newline, one indented
// field per line, "}" plus optional ';'.
func (f *formatter) visitStructDeclaration(n *cst.Node) string {
	var b strings.Builder
	b.WriteString(f.indent())
	b.WriteString("struct ")
	b.WriteString(f.visit(n.Children[1])) // name
	b.WriteString(" {\n")

	f.level++
	for _, c := range n.Children[2:] {
		switch c.Kind {
		case cst.Field:
			b.WriteString(f.indent())
			b.WriteString(f.visit(c))
			b.WriteString(",\n")
		case cst.Comment:
			if !c.Token.IsSynthetic {
				b.WriteString(f.indent())
				b.WriteString(c.Token.Text)
				b.WriteString("\n")
			}
		}
	}
	f.level--

	b.WriteString(f.indent())
	b.WriteString("}")
	// A trailing ';' (optional in the grammar) is the last non-brace
	// child, if present.
	if last := n.Children[len(n.Children)-1]; last.Token != nil && last.Token.Kind == lexer.Semicolon {
		b.WriteString(f.visit(last))
	}
	b.WriteString("\n")
	return b.String()
}

func (f *formatter) visitColonPair(n *cst.Node) string {
	return f.joinSpaced(n.Children)
}

func (f *formatter) visitCommaList(n *cst.Node) string {
	sep := ","
	if f.opts.SpaceAfterComma {
		sep = ", "
	}
	var parts []string
	for _, c := range n.Children {
		if c.Token != nil && c.Token.Kind == lexer.Comma {
			continue
		}
		if text := f.visit(c); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, sep)
}

func (f *formatter) visitBlockStmt(n *cst.Node) string {
	var b strings.Builder
	b.WriteString("{\n")
	f.level++
	for _, c := range n.Children {
		if c.Kind == cst.StatementList {
			b.WriteString(f.visit(c))
		}
	}
	f.level--
	b.WriteString(f.indent())
	b.WriteString("}\n")
	return b.String()
}

// visitIfStmt renders a top-level "if" statement: its own indent, the
// rendered if/else chain, and a trailing newline.
func (f *formatter) visitIfStmt(n *cst.Node) string {
	return f.indent() + f.renderIf(n) + "\n"
}

// renderIf renders "if <cond> <block>" optionally followed by
// "else <block>" or "else <if-chain>", without leading indent or a
// trailing newline, so a chained else-if can be inlined after "else ".
func (f *formatter) renderIf(n *cst.Node) string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(f.visit(n.Children[1])) // condition
	b.WriteString(" ")
	b.WriteString(strings.TrimSuffix(f.visit(n.Children[2]), "\n")) // then-block
	if len(n.Children) > 3 {
		b.WriteString(" else ")
		branch := n.Children[4]
		if branch.Kind == cst.IfStmt {
			b.WriteString(f.renderIf(branch))
		} else {
			b.WriteString(strings.TrimSuffix(f.visit(branch), "\n"))
		}
	}
	return b.String()
}

func (f *formatter) visitWhileStmt(n *cst.Node) string {
	var b strings.Builder
	b.WriteString(f.indent())
	b.WriteString("while ")
	b.WriteString(f.visit(n.Children[1]))
	b.WriteString(" ")
	b.WriteString(strings.TrimSuffix(f.visit(n.Children[2]), "\n"))
	b.WriteString("\n")
	return b.String()
}

// visitBinary handles BinaryExpr/UnionType/IntersectionType uniformly:
// "<left> <op> <right>".
func (f *formatter) visitBinary(n *cst.Node) string {
	return f.visit(n.Children[0]) + " " + f.visit(n.Children[1]) + " " + f.visit(n.Children[2])
}

// visitPrefix handles UnaryExpr/NegationType: "<op><operand>", no space.
func (f *formatter) visitPrefix(n *cst.Node) string {
	return f.visit(n.Children[0]) + f.visit(n.Children[1])
}

// visitAssign handles AssignExpr/IndexAssignExpr/MemberAssignExpr:
// "<lhs> = <rhs>".
func (f *formatter) visitAssign(n *cst.Node) string {
	return f.visit(n.Children[0]) + " " + f.visit(n.Children[1]) + " " + f.visit(n.Children[2])
}

// visitPostfix handles CallExpr/IndexExpr/MemberExpr: no space between the
// callee/object and '('/'['/'.'.
func (f *formatter) visitPostfix(n *cst.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(f.visit(c))
	}
	return b.String()
}

func (f *formatter) visitParenExpr(n *cst.Node) string {
	return "(" + f.visit(n.Children[1]) + ")"
}

// visitBracketedList handles ArrayLiteral/TupleLiteral/TupleType:
// "open e1, e2, ... close" with no inner padding.
func (f *formatter) visitBracketedList(n *cst.Node, open, close string) string {
	sep := ","
	if f.opts.SpaceAfterComma {
		sep = ", "
	}
	var parts []string
	for _, c := range n.Children {
		if c.Token != nil && (isBracket(c.Token.Kind) || c.Token.Kind == lexer.Comma) {
			continue
		}
		if text := f.visit(c); text != "" {
			parts = append(parts, text)
		}
	}
	return open + strings.Join(parts, sep) + close
}

func isBracket(k lexer.Kind) bool {
	switch k {
	case lexer.LeftParen, lexer.RightParen, lexer.LeftBracket, lexer.RightBracket:
		return true
	default:
		return false
	}
}

func (f *formatter) visitStructInitExpr(n *cst.Node) string {
	base := f.visit(n.Children[0])
	body := f.visit(n.Children[2]) // StructInitBody
	return base + " {" + body + "}"
}

func (f *formatter) visitAnonStructType(n *cst.Node) string {
	var fields []string
	for _, c := range n.Children {
		if c.Kind == cst.Field {
			fields = append(fields, f.visit(c))
		}
	}
	return "struct {" + strings.Join(fields, ", ") + "}"
}

// visitArrayTypeSuffix handles ArrayType/SizedArrayType: "<base>[]" or
// "<base>[N]", no space.
func (f *formatter) visitArrayTypeSuffix(n *cst.Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(f.visit(c))
	}
	return b.String()
}

// visitFunctionSignatureType renders "(T1, T2) -> R".
func (f *formatter) visitFunctionSignatureType(n *cst.Node) string {
	var parts []string
	var arrowIdx = -1
	for i, c := range n.Children {
		if c.Token != nil && c.Token.Kind == lexer.Arrow {
			arrowIdx = i
			break
		}
	}
	params := n.Children[:arrowIdx]
	ret := n.Children[arrowIdx+1]

	sep := ","
	if f.opts.SpaceAfterComma {
		sep = ", "
	}
	for _, c := range params {
		if c.Token != nil && (isBracket(c.Token.Kind) || c.Token.Kind == lexer.Comma) {
			continue
		}
		if text := f.visit(c); text != "" {
			parts = append(parts, text)
		}
	}
	return "(" + strings.Join(parts, sep) + ") -> " + f.visit(ret)
}
