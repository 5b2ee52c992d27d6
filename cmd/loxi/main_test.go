package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRunSourceExitCodes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"success", `print 1 + 1;`, 0},
		{"static error", `var a = ;`, 65},
		{"runtime error", `print nope;`, 70},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errs bytes.Buffer
			got := runSource("<test>", []byte(tc.src), &out, &errs, zerolog.Nop())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRunSourceSuccessWritesProgramOutput(t *testing.T) {
	var out, errs bytes.Buffer
	code := runSource("<test>", []byte(`print "hi";`), &out, &errs, zerolog.Nop())
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi\n", out.String())
	assert.Empty(t, errs.String())
}
