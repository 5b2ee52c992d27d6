// Package repl implements the interactive Read-Eval-Print Loop for loxi.
// A single Lox runtime is reused across lines so top-level `var`/`fun`/
// `class` declarations persist for the rest of the session (§6.3).
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/loxlang/loxi/internal/lox"
)

// Repl is one interactive session: a prompt, a banner, and the colors
// used to format its output.
type Repl struct {
	Prompt string
	Banner string

	errColor  *color.Color
	infoColor *color.Color
}

// New creates a Repl. When noColor is true, ANSI codes are suppressed
// regardless of whether the output is a terminal.
func New(prompt string, noColor bool) *Repl {
	errColor := color.New(color.FgRed)
	infoColor := color.New(color.FgCyan)
	if noColor {
		errColor.DisableColor()
		infoColor.DisableColor()
	}
	return &Repl{
		Prompt:    prompt,
		Banner:    "loxi, a tree-walking Lox interpreter\nType Ctrl+D to exit.",
		errColor:  errColor,
		infoColor: infoColor,
	}
}

// colorWriter wraps an io.Writer so every write is painted with c,
// letting the core's plain-text diagnostics (§6.1) pick up color only at
// this ambient CLI/REPL layer.
type colorWriter struct {
	out io.Writer
	c   *color.Color
}

func (w colorWriter) Write(p []byte) (int, error) {
	w.c.Fprint(w.out, string(p))
	return len(p), nil
}

// Run starts the loop, reading from a readline-managed terminal and
// writing results and diagnostics to out. It returns once the user
// exits (Ctrl+D or Ctrl+C on an empty line).
func (r *Repl) Run(out io.Writer) error {
	r.infoColor.Fprintln(out, r.Banner)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.Prompt,
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	runtime := lox.New(out, colorWriter{out: out, c: r.errColor})

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(strings.TrimSpace(line)) == 0 {
				break
			}
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		runtime.Run("<repl>", []byte(line))
		if runtime.Reporter.HadError() || runtime.Reporter.HadRuntimeError() {
			runtime.Reporter.Reset()
		}
	}

	return nil
}
