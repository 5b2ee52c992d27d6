package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loxlang/loxi/internal/token"
)

func TestNextIDIsMonotonicAndUnique(t *testing.T) {
	a := NextID()
	b := NextID()
	assert.NotEqual(t, a, b)
	assert.Greater(t, b, a)
}

func TestExpressionNodesGetDistinctIDsEvenWithIdenticalContent(t *testing.T) {
	name := token.Token{Type: token.Identifier, Lexeme: "x"}
	v1 := NewVariable(name)
	v2 := NewVariable(name)
	assert.NotEqual(t, v1.ID(), v2.ID())
}

func TestBinaryStringRendersPrefixForm(t *testing.T) {
	one := NewLiteral(token.Token{Type: token.Number}, "1")
	two := NewLiteral(token.Token{Type: token.Number}, "2")
	plus := token.Token{Type: token.Plus, Lexeme: "+"}
	bin := NewBinary(one, plus, two)
	assert.Equal(t, "(+ 1 2)", bin.String())
}

func TestVarStmtStringWithAndWithoutInitializer(t *testing.T) {
	name := token.Token{Lexeme: "a"}
	withInit := &VarStmt{NameTok: name, Init: NewLiteral(token.Token{}, "1")}
	assert.Equal(t, "(var a 1)", withInit.String())

	noInit := &VarStmt{NameTok: name}
	assert.Equal(t, "(var a)", noInit.String())
}

func TestClassStmtStringIncludesMethods(t *testing.T) {
	method := &FunctionStmt{NameTok: token.Token{Lexeme: "speak"}}
	cls := &ClassStmt{NameTok: token.Token{Lexeme: "Dog"}, Methods: []*FunctionStmt{method}}
	assert.Equal(t, "(class Dog (fun speak ()))", cls.String())
}
