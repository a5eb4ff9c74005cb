// Package diag defines diagnostic levels, stable diagnostic codes, the
// per-stage collector every subsystem reports into, and the engine that
// renders a compilation job's diagnostics through a locale catalog.
package diag

// Level distinguishes diagnostics that block compilation from ones that
// merely inform.
type Level int

const (
	Warning Level = iota // non-fatal; compilation may continue
	Error                // compilation fails, but the current file's pipeline continues
	Fatal                // halts the current file's pipeline immediately
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "error"
	default:
		return "note"
	}
}

// Code is a stable diagnostic identifier: L (lexer), T (token preprocessor),
// P (parser), S (struct/type expression).
type Code string

const (
	// Lexer.
	L0001MissingHexDigits      Code = "L0001"
	L0002MissingBinaryDigits   Code = "L0002"
	L0003MissingOctalDigits    Code = "L0003"
	L0004MissingExponentDigits Code = "L0004"
	L0005InvalidTrailingChar   Code = "L0005"
	L0006InvalidEscapeSequence Code = "L0006"
	L0007UnterminatedString    Code = "L0007"
	L0008InvalidHexEscape      Code = "L0008"
	L0009InvalidUnicodeEscape  Code = "L0009"
	L0010InvalidCharacter      Code = "L0010"
	L0011InvalidUtf8Sequence   Code = "L0011"

	// Token preprocessor.
	T0001ScientificIntOverflow   Code = "T0001"
	T0002ScientificFloatOverflow Code = "T0002"

	// Parser (general).
	P0001UnexpectedToken         Code = "P0001"
	P0005ExpectedExpression      Code = "P0005"
	P0011ExpectedTypeAnnotation  Code = "P0011"
	P0013InvalidAssignmentTarget Code = "P0013"

	// Parser (struct/type expression).
	S0001ExpectedStructName          Code = "S0001"
	S0002ExpectedLeftBraceInStruct   Code = "S0002"
	S0003ExpectedFieldName           Code = "S0003"
	S0004ExpectedColonAfterFieldName Code = "S0004"
	S0005ExpectedFieldType           Code = "S0005"
	S0006ExpectedCommaOrRightBrace   Code = "S0006"
	S0007ExpectedTypeName            Code = "S0007"
	S0008ExpectedEqualInTypeAlias    Code = "S0008"
	S0009ExpectedTypeExpression      Code = "S0009"
	S0010ExpectedRightParenInTuple   Code = "S0010"
	S0011ExpectedRightParenInFuncSig Code = "S0011"
	S0012DuplicateFieldName          Code = "S0012"
	S0013ExpectedStructFieldInit     Code = "S0013"
)

// Source names the subsystem a code belongs to, used in the "(from: ...)"
// suffix of a rendered diagnostic and as a fallback message-catalog field.
func (c Code) Source() string {
	switch c[0] {
	case 'L':
		return "lexer"
	case 'T':
		return "token_preprocessor"
	case 'P':
		return "parser"
	case 'S':
		return "parser"
	default:
		return "system"
	}
}
