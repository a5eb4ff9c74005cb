// Package preprocess implements the token preprocessor: a pure
// Tokens→Tokens transformation that resolves every lexer-emitted
// ScientificExponent token into a concrete Integer or Float kind, checking
// magnitude against signed-64-bit and double-precision float overflow
// bounds along the way. Every other token passes through unchanged.
package preprocess

import (
	"strings"

	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/text"
)

// Process rewrites every ScientificExponent token in tokens and returns the
// resulting token slice plus any overflow diagnostics. Process is stateless
// and side-effect-free: the same input always yields the same output.
func Process(tokens []lexer.Token, filename string) ([]lexer.Token, []diag.Diagnostic) {
	out := make([]lexer.Token, len(tokens))
	collector := &diag.Collector{}
	for i, tok := range tokens {
		if tok.Kind != lexer.ScientificExponent {
			out[i] = tok
			continue
		}
		kind, overflow := classify(tok.Text)
		if overflow != "" {
			loc := text.Location{File: filename, StartLine: tok.Line, StartCol: tok.Column, EndLine: tok.Line, EndCol: tok.Column + len(tok.Text)}
			collector.Report(diag.Warning, overflow, loc, tok.Text)
		}
		tok.Kind = kind
		out[i] = tok
	}
	return out, collector.Diagnostics()
}

// classify decomposes a "mantissa e exponent" literal and decides its
// final kind, per the decision table in §4.3: an exponent < 0 gives a
// Float (or Unknown with T0002 past double range); an integral mantissa (or one whose decimal digits don't exceed
// the exponent) is an Integer provided it fits a signed 64-bit magnitude,
// else it falls back to Float (T0001) or, past double range, Unknown
// (T0002).
func classify(literal string) (kind lexer.Kind, overflowCode diag.Code) {
	eIdx := strings.IndexAny(literal, "eE")
	if eIdx < 0 {
		// Defensive: not actually a scientific literal; treat as Integer.
		return lexer.Integer, ""
	}
	mantissa := literal[:eIdx]
	expPart := literal[eIdx+1:]

	negExp := strings.HasPrefix(expPart, "-")
	expDigits := strings.TrimLeft(expPart, "+-")
	exponent := parseSmallInt(expDigits)
	if negExp {
		exponent = -exponent
	}

	intPart := mantissa
	fracPart := ""
	if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
		intPart = mantissa[:dot]
		fracPart = mantissa[dot+1:]
	}

	decimalDigits := len(strings.TrimRight(fracPart, "0"))
	magnitude := magnitudeOf(intPart, fracPart, exponent)

	var wantInteger bool
	switch {
	case exponent < 0:
		wantInteger = false
	case fracPart == "":
		wantInteger = true
	case decimalDigits > exponent:
		wantInteger = false
	default:
		wantInteger = true
	}

	if !wantInteger {
		if magnitude > 308 {
			return lexer.Unknown, diag.T0002ScientificFloatOverflow
		}
		return lexer.Float, ""
	}

	if magnitude > 308 {
		return lexer.Unknown, diag.T0002ScientificFloatOverflow
	}
	if magnitude > 18 {
		return lexer.Float, diag.T0001ScientificIntOverflow
	}
	return lexer.Integer, ""
}

// magnitudeOf approximates log10 of the literal's value as
// (significant_digits - 1) + adjusted_exponent, where adjusted_exponent
// accounts for the mantissa's fractional digits shifting the decimal
// point.
func magnitudeOf(intPart, fracPart string, exponent int) int {
	combined := strings.TrimLeft(intPart+fracPart, "0")
	significantDigits := len(combined)
	if significantDigits == 0 {
		significantDigits = 1
	}
	adjustedExponent := exponent - len(fracPart)
	return (significantDigits - 1) + adjustedExponent
}

// parseSmallInt parses a decimal digit run, clamping rather than
// overflowing; exponents in realistic inputs never approach this range,
// but lexer-accepted input has no upper bound on digit count.
func parseSmallInt(digits string) int {
	const clamp = 1_000_000
	var v int
	for _, c := range digits {
		v = v*10 + int(c-'0')
		if v > clamp {
			return clamp
		}
	}
	return v
}
