// Command loxi is the loxi language driver: it runs a Lox source file,
// starts the interactive REPL, or runs one of the tokenize/parse
// debugging subcommands (§6.2).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/loxlang/loxi/internal/lox"
	"github.com/loxlang/loxi/internal/loxerr"
	"github.com/loxlang/loxi/internal/repl"
)

var (
	noColor bool
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loxi [path]",
		Short:         "loxi is a tree-walking interpreter for Lox",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runREPL()
			}
			return runFile(args[0])
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "emit structured trace logging to stderr")

	root.AddCommand(newRunCmd(), newTokenizeCmd(), newParseCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <path>",
		Short: "run a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <path>",
		Short: "print the token stream for a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebug(args[0], true)
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>",
		Short: "print the parsed AST for a Lox source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebug(args[0], false)
		},
	}
}

// newLogger returns a no-op logger unless --verbose was given, in which
// case it writes leveled trace lines to stderr (§6's ambient logging
// stack).
func newLogger(w io.Writer) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func stderrWriter() io.Writer {
	if noColor || !isatty.IsTerminal(os.Stderr.Fd()) {
		return os.Stderr
	}
	return errColorWriter{errColor()}
}

func errColor() *color.Color {
	c := color.New(color.FgRed)
	if noColor {
		c.DisableColor()
	}
	return c
}

// errColorWriter paints every write red; the core packages only ever
// write plain-text diagnostics (§6.1), color is layered on here.
type errColorWriter struct{ c *color.Color }

func (w errColorWriter) Write(p []byte) (int, error) {
	w.c.Fprint(os.Stderr, string(p))
	return len(p), nil
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	if code := runSource(path, src, os.Stdout, stderrWriter(), newLogger(os.Stderr)); code != 0 {
		os.Exit(code)
	}
	return nil
}

// runSource drives one file through the language pipeline and returns the
// process exit code its outcome implies (§6.2, §7): 0 on success, 65 on
// any static error, 70 on a runtime error.
func runSource(path string, src []byte, stdout, stderr io.Writer, log zerolog.Logger) int {
	runtime := lox.New(stdout, stderr)
	runtime.SetLogger(log)
	runtime.Run(path, src)

	switch {
	case runtime.Reporter.HadError():
		return 65
	case runtime.Reporter.HadRuntimeError():
		return 70
	}
	return 0
}

func runREPL() error {
	prompt := "> "
	if !noColor && isatty.IsTerminal(os.Stdout.Fd()) {
		prompt = color.New(color.FgGreen).Sprint("> ")
	}
	return repl.New(prompt, noColor).Run(os.Stdout)
}

func runDebug(path string, tokensOnly bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	reporter := loxerr.New(stderrWriter())
	tokens, stmts, ok := lox.ParseOnly(reporter, path, src)
	if tokensOnly {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
	} else {
		for _, stmt := range stmts {
			fmt.Println(stmt.String())
		}
	}
	if !ok {
		os.Exit(65)
	}
	return nil
}
