// Package lox wires the lexer, parser, resolver and interpreter into the
// single pipeline the CLI driver and REPL both drive (§2 of the
// specification).
package lox

import (
	"io"

	"github.com/loxlang/loxi/internal/ast"
	"github.com/loxlang/loxi/internal/interp"
	"github.com/loxlang/loxi/internal/lexer"
	"github.com/loxlang/loxi/internal/loxerr"
	"github.com/loxlang/loxi/internal/parser"
	"github.com/loxlang/loxi/internal/resolver"
	"github.com/loxlang/loxi/internal/token"
	"github.com/rs/zerolog"
)

// Lox owns one interpreter and its error collector; a single instance is
// reused across an entire REPL session so top-level declarations persist.
type Lox struct {
	Reporter    *loxerr.Collector
	Interpreter *interp.Interpreter
}

// New creates a Lox runtime writing `print` output to stdout and
// diagnostics (compile-time and runtime errors) to stderr. Separating the
// two streams lets a host colorize diagnostics without touching program
// output (§6.1: colorization is an ambient CLI-layer concern).
func New(stdout, stderr io.Writer) *Lox {
	reporter := loxerr.New(stderr)
	return &Lox{
		Reporter:    reporter,
		Interpreter: interp.New(reporter, stdout),
	}
}

// SetLogger installs a structured logger used for opt-in tracing; the
// default is a no-op logger.
func (l *Lox) SetLogger(log zerolog.Logger) { l.Interpreter.Log = log }

// Run lexes, parses, resolves and (if no static error occurred) evaluates
// source attributed to path. It never panics; static errors are reported
// through Reporter and evaluation is skipped, matching §7's policy.
func (l *Lox) Run(path string, src []byte) {
	log := l.Interpreter.Log

	scanner := lexer.New(l.Reporter, path, src)
	tokens := scanner.Scan()
	log.Debug().Str("path", path).Int("tokens", len(tokens)).Msg("lexed")

	p := parser.New(l.Reporter, tokens)
	stmts := p.Parse()
	log.Debug().Str("path", path).Int("statements", len(stmts)).Msg("parsed")
	if p.HadError || scanner.HadError {
		log.Debug().Str("path", path).Msg("static error, skipping resolve and interpret")
		return
	}

	r := resolver.New(l.Reporter)
	r.Resolve(stmts)
	log.Debug().Str("path", path).Int("locals", len(r.Locals())).Msg("resolved")
	if r.HadError {
		log.Debug().Str("path", path).Msg("resolve error, skipping interpret")
		return
	}

	l.Interpreter.AddLocals(r.Locals())
	log.Debug().Str("path", path).Msg("interpreting")
	l.Interpreter.Interpret(stmts)
}

// ParseOnly runs just the lexer and parser, for the `tokenize`/`parse`
// debugging subcommands.
func ParseOnly(reporter *loxerr.Collector, path string, src []byte) (tokens []token.Token, stmts []ast.Stmt, ok bool) {
	scanner := lexer.New(reporter, path, src)
	toks := scanner.Scan()
	p := parser.New(reporter, toks)
	stmts = p.Parse()
	return toks, stmts, !p.HadError && !scanner.HadError
}
