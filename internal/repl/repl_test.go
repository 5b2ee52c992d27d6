package repl

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestNewSetsPromptAndBanner(t *testing.T) {
	r := New("> ", false)
	assert.Equal(t, "> ", r.Prompt)
	assert.Contains(t, r.Banner, "loxi")
}

func TestColorWriterWrapsUnderlyingWriter(t *testing.T) {
	var buf bytes.Buffer
	c := color.New(color.FgRed)
	c.DisableColor()
	w := colorWriter{out: &buf, c: c}
	n, err := w.Write([]byte("boom"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "boom", buf.String())
}

func TestNewWithNoColorSuppressesAnsiCodes(t *testing.T) {
	r := New("> ", true)
	assert.Equal(t, "hi", r.errColor.Sprint("hi"))
	assert.Equal(t, "hi", r.infoColor.Sprint("hi"))
}
