package locale_test

import (
	"strings"
	"testing"

	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/locale"
)

func TestLoadDefaultLocale(t *testing.T) {
	cat := locale.Load(locale.DefaultLocale)
	msg := cat.Format(diag.L0007UnterminatedString, nil)
	if msg == "" || msg == "unknown error" {
		t.Errorf("expected a real message for L0007 in en_US, got %q", msg)
	}
}

func TestLoadUnknownLocaleFallsBackToDefault(t *testing.T) {
	cat := locale.Load("xx_XX")
	msg := cat.Format(diag.L0007UnterminatedString, nil)
	if msg == "" || msg == "unknown error" {
		t.Errorf("expected fallback to en_US's message, got %q", msg)
	}
}

func TestFormatSubstitutesPlaceholders(t *testing.T) {
	cat := locale.Load(locale.DefaultLocale)
	msg := cat.Format(diag.L0005InvalidTrailingChar, []string{"x"})
	if strings.Contains(msg, "{0}") {
		t.Errorf("placeholder not substituted: %q", msg)
	}
}

func TestFormatUnknownCodeUsesGenericMessage(t *testing.T) {
	cat := locale.Load(locale.DefaultLocale)
	msg := cat.Format(diag.Code("Z9999"), nil)
	if msg != "unknown error" {
		t.Errorf("Format(unregistered code) = %q, want %q", msg, "unknown error")
	}
}

func TestAllLocalesCoverSameCodes(t *testing.T) {
	codes := []diag.Code{
		diag.L0001MissingHexDigits, diag.L0011InvalidUtf8Sequence,
		diag.T0001ScientificIntOverflow, diag.T0002ScientificFloatOverflow,
		diag.P0001UnexpectedToken, diag.S0012DuplicateFieldName,
	}
	for _, loc := range []string{"en_US", "zh_CN", "ne_KO"} {
		cat := locale.Load(loc)
		for _, code := range codes {
			if msg := cat.Format(code, nil); msg == "unknown error" {
				t.Errorf("locale %s has no entry for %s", loc, code)
			}
		}
	}
}
