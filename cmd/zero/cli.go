package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/begoniahe/zero/internal/diag"
	"github.com/begoniahe/zero/internal/format"
	"github.com/begoniahe/zero/internal/lexer"
	"github.com/begoniahe/zero/internal/locale"
	"github.com/begoniahe/zero/internal/pipeline"
)

// runSummary accumulates the counters a subcommand reports in its
// end-of-run summary line: how many files it touched, how many carried at
// least one error, and how many tokens it lexed in total.
type runSummary struct {
	files  int
	errors int
	tokens int
}

// report prints "N files, N errors, N tokens" with humanized (thousands-
// separated) counts, mirroring the kind of end-of-run line playbymail's
// tooling prints after a batch run.
func (s runSummary) report(w io.Writer) {
	fmt.Fprintf(w, "%s files, %s errors, %s tokens\n",
		humanize.Comma(int64(s.files)), humanize.Comma(int64(s.errors)), humanize.Comma(int64(s.tokens)))
}

// cliOptions accumulates the flat set of options the CLI runs with:
// defaults overridden by command-line flags. --indent-width is validated
// once before any file is processed.
type cliOptions struct {
	Locale string

	// fmt-only.
	InPlace     bool
	IndentWidth int
	UseTabs     bool
}

func newCLIOptions() cliOptions {
	return cliOptions{
		Locale:      locale.DefaultLocale,
		IndentWidth: 4,
	}
}

func (o cliOptions) formatOptions() format.Options {
	opts := format.DefaultOptions()
	opts.IndentWidth = o.IndentWidth
	if o.UseTabs {
		opts.IndentStyle = format.Tabs
	}
	return opts
}

// runTokenize implements the "tokenize" subcommand: writes a <file>.tokens
// sidecar per §6's format, and returns false if any file fails.
func runTokenize(stderr io.Writer, opts cliOptions, files []string) bool {
	ok := true
	var summary runSummary
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			ok = false
			continue
		}
		summary.files++
		res := pipeline.Run(src, path, opts.Locale)
		summary.tokens += len(res.Tokens)
		if err := writeTokensFile(path, res.Tokens); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			ok = false
			continue
		}
		if !renderDiagnostics(stderr, res.Engine, opts.Locale) {
			ok = false
			summary.errors++
		}
	}
	summary.report(stderr)
	return ok
}

// runParse implements the "parse" subcommand: diagnostics to stderr only.
func runParse(stderr io.Writer, opts cliOptions, files []string) bool {
	ok := true
	var summary runSummary
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			ok = false
			continue
		}
		summary.files++
		res := pipeline.Run(src, path, opts.Locale)
		summary.tokens += len(res.Tokens)
		if !renderDiagnostics(stderr, res.Engine, opts.Locale) {
			ok = false
			summary.errors++
		}
	}
	summary.report(stderr)
	return ok
}

// runFmt implements the "fmt" subcommand: writes a <file>.formatted
// sidecar, or edits in place with --in-place.
func runFmt(stdout, stderr io.Writer, opts cliOptions, files []string) bool {
	ok := true
	var summary runSummary
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			ok = false
			continue
		}
		summary.files++
		res := pipeline.Run(src, path, opts.Locale)
		summary.tokens += len(res.Tokens)
		if !renderDiagnostics(stderr, res.Engine, opts.Locale) {
			ok = false
			summary.errors++
		}
		if res.Root == nil {
			ok = false
			continue
		}
		out := format.Format(res.Root, opts.formatOptions())
		if opts.InPlace {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				ok = false
			}
			continue
		}
		if err := os.WriteFile(path+".formatted", []byte(out), 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			ok = false
		}
	}
	summary.report(stderr)
	return ok
}

// renderDiagnostics prints every diagnostic in engine and reports whether
// the file should count as a success (no Error/Fatal diagnostics).
func renderDiagnostics(w io.Writer, engine *diag.Engine, loc string) bool {
	catalog := engine.Catalog()
	for _, d := range engine.Diagnostics() {
		fmt.Fprint(w, diag.Render(d, catalog, isTerminal(w)))
	}
	return !engine.HasErrors()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func writeTokensFile(sourcePath string, tokens []lexer.Token) error {
	var b strings.Builder
	b.WriteString("# Tokenization Result\n")
	fmt.Fprintf(&b, "# Source: %s\n", sourcePath)
	fmt.Fprintf(&b, "# Total tokens: %d\n", len(tokens))
	b.WriteString("# Format: Index\tLine:Column\tType\tValue\n\n")
	for i, t := range tokens {
		fmt.Fprintf(&b, "%d\t%d:%d\t%s\t\"%s\"\n", i, t.Line, t.Column, t.Kind.String(), escapeTokenValue(t.Text))
	}
	return os.WriteFile(sourcePath+".tokens", []byte(b.String()), 0o644)
}

// escapeTokenValue escapes a token's text for the .tokens value column:
// \n \t \r \0 \\ \" are backslash-escaped; other control bytes (< 0x20)
// become \xHH.
func escapeTokenValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\x%02X`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func parseIndentWidth(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 16 {
		return 0, fmt.Errorf("--indent-width must be between 1 and 16, got %d", n)
	}
	return n, nil
}
