package loxerr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loxlang/loxi/internal/token"
)

func TestReportFormatsCompileTimeDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.Report(3, " at 'x'", "Unexpected character.")
	assert.Equal(t, "[line 3] Error at 'x': Unexpected character.\n", buf.String())
	assert.True(t, c.HadError())
}

func TestRuntimeErrorFormatsRuntimeDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.RuntimeError(&RuntimeError{Token: token.Token{Loc: token.Location{Row: 5}}, Message: "Undefined variable 'x'."})
	assert.Equal(t, "Undefined variable 'x'.\n[line 5]\n", buf.String())
	assert.True(t, c.HadRuntimeError())
}

func TestResetClearsBothFlags(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.Report(1, "", "boom")
	c.RuntimeError(&RuntimeError{Token: token.Token{}, Message: "boom"})
	c.Reset()
	assert.False(t, c.HadError())
	assert.False(t, c.HadRuntimeError())
}

func TestRuntimeErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = &RuntimeError{Message: "oops"}
	assert.Equal(t, "oops", err.Error())
}
