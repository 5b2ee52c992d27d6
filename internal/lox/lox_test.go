package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/loxi/internal/loxerr"
)

func TestRunPrintsToStdoutAndErrorsToStderr(t *testing.T) {
	var out, errs bytes.Buffer
	l := New(&out, &errs)
	l.Run("<test>", []byte(`print 1 + 1;`))
	assert.Equal(t, "2\n", out.String())
	assert.Empty(t, errs.String())
}

func TestRunSkipsEvaluationOnStaticError(t *testing.T) {
	var out, errs bytes.Buffer
	l := New(&out, &errs)
	l.Run("<test>", []byte(`var a = ;`))
	assert.Empty(t, out.String())
	assert.NotEmpty(t, errs.String())
}

func TestRunReportsRuntimeErrorsToStderr(t *testing.T) {
	var out, errs bytes.Buffer
	l := New(&out, &errs)
	l.Run("<test>", []byte(`print nope;`))
	assert.True(t, l.Reporter.HadRuntimeError())
	assert.Contains(t, errs.String(), "Undefined variable 'nope'.")
}

// A REPL reuses one Lox across independent Run calls; declarations from
// an earlier call must still resolve in a later one (§6.3).
func TestRunPersistsDeclarationsAcrossCalls(t *testing.T) {
	var out, errs bytes.Buffer
	l := New(&out, &errs)
	l.Run("<repl>", []byte(`var counter = 0;`))
	l.Run("<repl>", []byte(`fun bump() { counter = counter + 1; return counter; }`))
	l.Run("<repl>", []byte(`print bump();`))
	l.Run("<repl>", []byte(`print bump();`))
	require.Empty(t, errs.String())
	assert.Equal(t, "1\n2\n", out.String())
}

// A closure created on one line must keep resolving its captured local
// after a later, independently-resolved line runs.
func TestRunKeepsEarlierClosuresResolvableAfterLaterCalls(t *testing.T) {
	var out, errs bytes.Buffer
	l := New(&out, &errs)
	l.Run("<repl>", []byte(`
		fun makeCounter() {
			var i = 0;
			fun counter() {
				i = i + 1;
				return i;
			}
			return counter;
		}
		var c = makeCounter();
	`))
	l.Run("<repl>", []byte(`var unrelated = 1;`))
	l.Run("<repl>", []byte(`print c();`))
	l.Run("<repl>", []byte(`print c();`))
	require.Empty(t, errs.String())
	assert.Equal(t, "1\n2\n", out.String())
}

func TestParseOnlyReturnsTokensAndStmtsWithoutEvaluating(t *testing.T) {
	var errs bytes.Buffer
	collector := loxerr.New(&errs)
	tokens, stmts, ok := ParseOnly(collector, "<test>", []byte(`print 1;`))
	assert.True(t, ok)
	assert.NotEmpty(t, tokens)
	assert.Len(t, stmts, 1)
}
