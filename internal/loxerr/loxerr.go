// Package loxerr implements the host error sink the language core consumes:
// compile-time diagnostics (lexer/parser/resolver) and runtime errors, each
// formatted per the specification's observable error message contract.
package loxerr

import (
	"fmt"
	"io"

	"github.com/loxlang/loxi/internal/token"
)

// RuntimeError is the only error type the evaluator constructs. It carries
// the offending token so the host can report its source location.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Collector is the default Reporter: it writes diagnostics to an injected
// writer and tracks the two sticky error flags the pipeline's control flow
// depends on (§7: "Runtime errors terminate the run... static vs runtime
// exit codes").
type Collector struct {
	Out             io.Writer
	hadError        bool
	hadRuntimeError bool
}

// New creates a Collector writing to out.
func New(out io.Writer) *Collector {
	return &Collector{Out: out}
}

// Report implements the compile-time diagnostic sink shared by the lexer,
// parser and resolver: `[line N] Error <where>: <message>`.
func (c *Collector) Report(line int, where, message string) {
	c.hadError = true
	fmt.Fprintf(c.Out, "[line %d] Error%s: %s\n", line, where, message)
}

// RuntimeError implements the evaluator's diagnostic sink:
// `<message>\n[line N]`.
func (c *Collector) RuntimeError(err *RuntimeError) {
	c.hadRuntimeError = true
	fmt.Fprintf(c.Out, "%s\n[line %d]\n", err.Message, err.Token.Loc.Row)
}

// HadError reports whether any lex/parse/resolve error was seen.
func (c *Collector) HadError() bool { return c.hadError }

// HadRuntimeError reports whether a runtime error aborted evaluation.
func (c *Collector) HadRuntimeError() bool { return c.hadRuntimeError }

// Reset clears both error flags, allowing a REPL to recover after a bad line.
func (c *Collector) Reset() {
	c.hadError = false
	c.hadRuntimeError = false
}
