package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "CLASS", Class.String())
	assert.Equal(t, "UNKNOWN", Type(-1).String())
	assert.Equal(t, "UNKNOWN", Type(len(names)+1).String())
}

func TestTokenStringWithAndWithoutLiteral(t *testing.T) {
	withLit := Token{Type: String, Lexeme: `"hi"`, Literal: "hi", HasLit: true}
	assert.Equal(t, `STRING "hi" hi`, withLit.String())

	noLit := Token{Type: Plus, Lexeme: "+"}
	assert.Equal(t, "PLUS + null", noLit.String())
}

func TestKeywordsCoverAllReservedWords(t *testing.T) {
	for _, word := range []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	} {
		_, ok := Keywords[word]
		assert.True(t, ok, "missing keyword %q", word)
	}
	assert.Len(t, Keywords, 16)
}

func TestTokenLineReadsLocationRow(t *testing.T) {
	tok := Token{Loc: Location{Row: 7}}
	assert.Equal(t, 7, tok.Line())
}
