// Package lexer turns Zero source text into a token stream: identifiers,
// keywords, numeric and string literals, operators, delimiters, and
// comments, with UTF-8-aware identifier scanning and best-effort recovery
// on malformed input.
package lexer

import "github.com/begoniahe/zero/internal/text"

// Kind identifies the syntactic category of a Token.
type Kind uint8

const (
	Integer Kind = iota
	Float
	String
	Identifier
	ScientificExponent // intermediate kind; TokenPreprocessor rewrites it away
	Comment

	// Keywords.
	KwLet
	KwVar
	KwFn
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwStruct
	KwEnum
	KwType
	KwTrait
	KwTrue
	KwFalse

	// Arithmetic operators.
	Plus
	Minus
	Star
	Slash
	Percent

	// Assignment and comparison.
	Equal
	PlusEqual
	MinusEqual
	StarEqual
	PercentEqual
	SlashEqual
	EqualEqual
	BangEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Logical / type operators.
	AndAnd
	OrOr
	Amp  // unmatched '&', consumed by the type-expression parser as intersection
	Pipe // unmatched '|', consumed by the type-expression parser as union
	Bang
	Tilde

	// Delimiters.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Semicolon
	Colon
	Dot
	DotDot
	Arrow

	// Special.
	EndOfFile
	Unknown
)

var kindNames = map[Kind]string{
	Integer: "Integer", Float: "Float", String: "String",
	Identifier: "Identifier", ScientificExponent: "ScientificExponent", Comment: "Comment",
	KwLet: "Let", KwVar: "Var", KwFn: "Fn", KwReturn: "Return", KwIf: "If", KwElse: "Else",
	KwWhile: "While", KwFor: "For", KwIn: "In", KwStruct: "Struct", KwEnum: "Enum",
	KwType: "Type", KwTrait: "Trait", KwTrue: "True", KwFalse: "False",
	Plus: "Plus", Minus: "Minus", Star: "Star", Slash: "Slash", Percent: "Percent",
	Equal: "Equal", PlusEqual: "PlusEqual", MinusEqual: "MinusEqual", StarEqual: "StarEqual",
	PercentEqual: "PercentEqual", SlashEqual: "SlashEqual", EqualEqual: "EqualEqual",
	BangEqual: "BangEqual", Less: "Less", LessEqual: "LessEqual", Greater: "Greater",
	GreaterEqual: "GreaterEqual", AndAnd: "And", OrOr: "Or", Amp: "Amp", Pipe: "Pipe",
	Bang: "Bang", Tilde: "Tilde",
	LeftParen: "LeftParen", RightParen: "RightParen", LeftBrace: "LeftBrace",
	RightBrace: "RightBrace", LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	Comma: "Comma", Semicolon: "Semicolon", Colon: "Colon", Dot: "Dot", DotDot: "DotDot",
	Arrow: "Arrow", EndOfFile: "EndOfFile", Unknown: "Unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var keywords = map[string]Kind{
	"let": KwLet, "var": KwVar, "fn": KwFn, "return": KwReturn,
	"if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor, "in": KwIn,
	"struct": KwStruct, "enum": KwEnum, "type": KwType, "trait": KwTrait,
	"true": KwTrue, "false": KwFalse,
}

// LookupKeyword reports the keyword Kind for word, if any.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// Token is an immutable value produced by the lexer and consumed by the
// parser. Once constructed it is never mutated.
type Token struct {
	Kind        Kind
	Text        string // exact source slice, e.g. "0xFF", "\"hi\\n\""
	RawLiteral  string // for strings: the original quoted text, byte-for-byte
	Value       string // for strings: the decoded value; unused otherwise
	Line        int    // 1-based
	Column      int    // 1-based, counts Unicode characters
	IsSynthetic bool   // true only for parser-fabricated recovery tokens
	IsRawString bool   // meaningful only when Kind == String
}

// Synthetic builds a parser-fabricated token of the given kind at loc,
// carrying no source text, for use in error recovery. The formatter must
// never emit output for a synthetic token.
func Synthetic(kind Kind, text string, loc text.Location) Token {
	return Token{
		Kind:        kind,
		Text:        text,
		Line:        loc.StartLine,
		Column:      loc.StartCol,
		IsSynthetic: true,
	}
}
