package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/loxi/internal/lexer"
	"github.com/loxlang/loxi/internal/loxerr"
	"github.com/loxlang/loxi/internal/parser"
	"github.com/loxlang/loxi/internal/resolver"
)

// run lexes, parses, resolves and interprets src, returning stdout and
// whatever diagnostics landed on the collector.
func run(t *testing.T, src string) (stdout string, collector *loxerr.Collector) {
	t.Helper()
	var out bytes.Buffer
	var errs bytes.Buffer
	collector = loxerr.New(&errs)

	s := lexer.New(collector, "<test>", []byte(src))
	toks := s.Scan()
	p := parser.New(collector, toks)
	stmts := p.Parse()
	require.False(t, s.HadError || p.HadError, "unexpected static error: %s", errs.String())

	r := resolver.New(collector)
	r.Resolve(stmts)
	require.False(t, r.HadError, "unexpected resolve error: %s", errs.String())

	in := New(collector, &out)
	in.AddLocals(r.Locals())
	in.Interpret(stmts)
	return out.String(), collector
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	out, _ := run(t, `print 1 + 2 * 3;`)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretMixedPlusIsARuntimeError(t *testing.T) {
	_, c := run(t, `print "foo" + 1;`)
	assert.True(t, c.HadRuntimeError())
}

func TestInterpretNumberPrintsWithoutTrailingZero(t *testing.T) {
	out, _ := run(t, `print 6 / 2;`)
	assert.Equal(t, "3\n", out)
}

func TestInterpretUninitializedVarIsNil(t *testing.T) {
	out, _ := run(t, `var x; print x;`)
	assert.Equal(t, "nil\n", out)
}

func TestInterpretClosureCaptureCounter(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var i = 0;
			fun counter() {
				i = i + 1;
				return i;
			}
			return counter;
		}
		var c = makeCounter();
		print c();
		print c();
		print c();
	`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpretClassInheritanceAndSuper(t *testing.T) {
	out, _ := run(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof";
			}
		}
		Dog().speak();
	`)
	assert.Equal(t, "...\nWoof\n", out)
}

func TestInterpretInitializerAlwaysReturnsInstance(t *testing.T) {
	out, _ := run(t, `
		class Box {
			init(v) { this.v = v; }
		}
		var b = Box(42);
		print b.v;
	`)
	assert.Equal(t, "42\n", out)
}

func TestInterpretUndefinedVariableIsARuntimeError(t *testing.T) {
	_, c := run(t, `print nope;`)
	assert.True(t, c.HadRuntimeError())
}

func TestInterpretCallingNonFunctionIsARuntimeError(t *testing.T) {
	_, c := run(t, `var x = 1; x();`)
	assert.True(t, c.HadRuntimeError())
}

func TestInterpretArityMismatchIsARuntimeError(t *testing.T) {
	_, c := run(t, `fun f(a) { return a; } f(1, 2);`)
	assert.True(t, c.HadRuntimeError())
}

func TestInterpretLogicalOperatorsShortCircuit(t *testing.T) {
	out, _ := run(t, `
		fun sideEffect() { print "called"; return true; }
		if (false and sideEffect()) {}
		if (true or sideEffect()) {}
	`)
	assert.Equal(t, "", out)
}

func TestInterpretNaNIsNeverEqualToItself(t *testing.T) {
	out, _ := run(t, `print (0/0 == 0/0);`)
	assert.Equal(t, "false\n", out)
}

func TestInterpretClockIsCallableWithNoArgs(t *testing.T) {
	out, c := run(t, `print clock() >= 0;`)
	assert.False(t, c.HadRuntimeError())
	assert.Equal(t, "true", strings.TrimSpace(out))
}
