package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/loxi/internal/token"
)

type recordingReporter struct {
	lines    []int
	messages []string
}

func (r *recordingReporter) Report(line int, where, message string) {
	r.lines = append(r.lines, line)
	r.messages = append(r.messages, message)
}

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	rep := &recordingReporter{}
	s := New(rep, "<test>", []byte(src))
	toks := s.Scan()
	require.False(t, s.HadError, "unexpected lexer error: %v", rep.messages)
	return toks
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scan(t, "(){},.-+;*/ == != <= >= < > = !")
	got := types(toks)
	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash,
		token.EqualEqual, token.BangEqual, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.Equal, token.Bang,
		token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestScanIgnoresLineComments(t *testing.T) {
	toks := scan(t, "1 // a comment\n+ 2")
	assert.Equal(t, []token.Type{token.Number, token.Plus, token.Number, token.EOF}, types(toks))
}

func TestScanStringLiteral(t *testing.T) {
	toks := scan(t, `"hello world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.String, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
	assert.True(t, toks[0].HasLit)
}

func TestScanMultilineStringAdvancesLine(t *testing.T) {
	toks := scan(t, "\"a\nb\"\n1")
	require.Len(t, toks, 3)
	assert.Equal(t, 3, toks[1].Loc.Row)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	rep := &recordingReporter{}
	s := New(rep, "<test>", []byte(`"unterminated`))
	s.Scan()
	assert.True(t, s.HadError)
	assert.Equal(t, []string{"Unterminated string."}, rep.messages)
}

func TestScanNumberLiterals(t *testing.T) {
	toks := scan(t, "123 45.67")
	require.Len(t, toks, 3)
	assert.Equal(t, "123", toks[0].Literal)
	assert.Equal(t, "45.67", toks[1].Literal)
}

func TestScanNumberDotNotFollowedByDigitStaysSeparate(t *testing.T) {
	toks := scan(t, "123.")
	assert.Equal(t, []token.Type{token.Number, token.Dot, token.EOF}, types(toks))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scan(t, "class fun var myVar")
	assert.Equal(t, []token.Type{token.Class, token.Fun, token.Var, token.Identifier, token.EOF}, types(toks))
}

func TestScanUnexpectedCharacterReportsButContinues(t *testing.T) {
	rep := &recordingReporter{}
	s := New(rep, "<test>", []byte("1 @ 2"))
	toks := s.Scan()
	assert.True(t, s.HadError)
	assert.Equal(t, []token.Type{token.Number, token.Number, token.EOF}, types(toks))
}
