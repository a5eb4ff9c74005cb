// Command zero is the CLI front-end for the Zero compiler's lexer,
// token preprocessor, parser, and formatter: tokenize, parse, and fmt
// subcommands over one or more source files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/begoniahe/zero/internal/locale"
)

// version is stamped at build time; left at this placeholder value since
// release packaging is out of this repository's scope. Build carries
// whatever VCS commit semver.Commit() can discover at build time, mirroring
// how playbymail/ottomap's main.go builds its own version value.
var version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts := newCLIOptions()
	runID := uuid.NewString()
	configureLogging(runID)

	root := &cobra.Command{
		Use:           "zero",
		Short:         "Zero language front-end: tokenize, parse, and format source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}
	root.PersistentFlags().StringVar(&opts.Locale, "locale", locale.DefaultLocale, "diagnostic message locale (en_US, zh_CN, ne_KO)")

	tokenizeCmd := &cobra.Command{
		Use:   "tokenize <files...>",
		Short: "Lex each file and write a <file>.tokens listing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runTokenize(cmd.ErrOrStderr(), opts, args) {
				return errSilentFailure
			}
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <files...>",
		Short: "Parse each file and report diagnostics to stderr",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runParse(cmd.ErrOrStderr(), opts, args) {
				return errSilentFailure
			}
			return nil
		},
	}

	fmtCmd := &cobra.Command{
		Use:   "fmt <files...>",
		Short: "Format each file, writing <file>.formatted or editing in place",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !runFmt(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args) {
				return errSilentFailure
			}
			return nil
		},
	}
	fmtCmd.Flags().BoolVarP(&opts.InPlace, "in-place", "i", false, "edit files in place instead of writing .formatted")
	fmtCmd.Flags().BoolVar(&opts.UseTabs, "use-tabs", false, "indent with tabs instead of spaces")
	var indentWidthFlag string
	fmtCmd.Flags().StringVar(&indentWidthFlag, "indent-width", "4", "spaces per indent level (1-16)")
	origFmtRunE := fmtCmd.RunE
	fmtCmd.RunE = func(cmd *cobra.Command, args []string) error {
		w, err := parseIndentWidth(indentWidthFlag)
		if err != nil {
			return err
		}
		opts.IndentWidth = w
		return origFmtRunE(cmd, args)
	}

	root.AddCommand(tokenizeCmd, parseCmd, fmtCmd)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if err != errSilentFailure {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// errSilentFailure signals a file-level failure already reported as
// rendered diagnostics; main must still exit 1 without printing it again.
var errSilentFailure = fmt.Errorf("one or more files failed")

// configureLogging wires the ZERO_LOG ambient trace knob (§10): setting
// ZERO_LOG=debug enables structured, leveled output for diagnosing the
// compiler itself. There is no command-line flag for it; it is off by
// default and never used for the compiler's own diagnostic output. Every
// invocation gets a random correlation ID attached to the default logger so
// concurrent `zero` runs in, e.g., CI logs stay distinguishable.
func configureLogging(runID string) {
	level := slog.LevelWarn
	if os.Getenv("ZERO_LOG") == "debug" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("run", runID))
}
