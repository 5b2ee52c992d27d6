// Package ast defines the Lox abstract syntax tree.
//
// Expression and statement nodes are plain tagged structs dispatched on by
// type switches in the resolver and interpreter packages (no Visitor
// indirection, no v-table). Every expression node carries a monotonically
// increasing node id, assigned once at parse time, which the resolver uses
// as the key for its distance side table. Two syntactically identical
// expressions at different source positions are always different keys.
package ast

import (
	"fmt"
	"strings"

	"github.com/loxlang/loxi/internal/token"
)

var nextID int

// NextID returns a fresh, process-wide unique node id. Called only by the
// parser when it constructs an expression node.
func NextID() int {
	nextID++
	return nextID
}

// Expr is any expression node.
type Expr interface {
	ID() int
	String() string
}

// Stmt is any statement node.
type Stmt interface {
	String() string
}

type node struct{ id int }

func (n node) ID() int { return n.id }

// ---- Expressions ----

type Literal struct {
	node
	Token token.Token
	// Value holds the textual form used to reconstruct the literal; the
	// interpreter re-derives the typed value from Token directly.
	Value string
}

func NewLiteral(tok token.Token, value string) *Literal {
	return &Literal{node: node{NextID()}, Token: tok, Value: value}
}
func (l *Literal) String() string { return l.Value }

type Variable struct {
	node
	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{node: node{NextID()}, Name: name}
}
func (v *Variable) String() string { return v.Name.Lexeme }

type Assign struct {
	node
	Name  token.Token
	Value Expr
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{node: node{NextID()}, Name: name, Value: value}
}
func (a *Assign) String() string { return fmt.Sprintf("(= %s %s)", a.Name.Lexeme, a.Value) }

type Unary struct {
	node
	Op      token.Token
	Operand Expr
}

func NewUnary(op token.Token, operand Expr) *Unary {
	return &Unary{node: node{NextID()}, Op: op, Operand: operand}
}
func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Operand) }

type Binary struct {
	node
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewBinary(left Expr, op token.Token, right Expr) *Binary {
	return &Binary{node: node{NextID()}, Left: left, Op: op, Right: right}
}
func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }

type Logical struct {
	node
	Left  Expr
	Op    token.Token
	Right Expr
}

func NewLogical(left Expr, op token.Token, right Expr) *Logical {
	return &Logical{node: node{NextID()}, Left: left, Op: op, Right: right}
}
func (l *Logical) String() string { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }

type Grouping struct {
	node
	Inner Expr
}

func NewGrouping(inner Expr) *Grouping {
	return &Grouping{node: node{NextID()}, Inner: inner}
}
func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

type Call struct {
	node
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func NewCall(callee Expr, paren token.Token, args []Expr) *Call {
	return &Call{node: node{NextID()}, Callee: callee, Paren: paren, Args: args}
}
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Callee, strings.Join(parts, " "))
}

type Get struct {
	node
	Object Expr
	Name   token.Token
}

func NewGet(object Expr, name token.Token) *Get {
	return &Get{node: node{NextID()}, Object: object, Name: name}
}
func (g *Get) String() string { return fmt.Sprintf("(get %s %s)", g.Object, g.Name.Lexeme) }

type Set struct {
	node
	Object Expr
	Name   token.Token
	Value  Expr
}

func NewSet(object Expr, name token.Token, value Expr) *Set {
	return &Set{node: node{NextID()}, Object: object, Name: name, Value: value}
}
func (s *Set) String() string {
	return fmt.Sprintf("(set %s %s %s)", s.Object, s.Name.Lexeme, s.Value)
}

type This struct {
	node
	Keyword token.Token
}

func NewThis(keyword token.Token) *This {
	return &This{node: node{NextID()}, Keyword: keyword}
}
func (t *This) String() string { return "this" }

type Super struct {
	node
	Keyword token.Token
	Method  token.Token
}

func NewSuper(keyword, method token.Token) *Super {
	return &Super{node: node{NextID()}, Keyword: keyword, Method: method}
}
func (s *Super) String() string { return fmt.Sprintf("(super %s)", s.Method.Lexeme) }

// ---- Statements ----

type ExprStmt struct{ Expr Expr }

func (s *ExprStmt) String() string { return s.Expr.String() }

type PrintStmt struct{ Expr Expr }

func (s *PrintStmt) String() string { return fmt.Sprintf("(print %s)", s.Expr) }

type VarStmt struct {
	NameTok token.Token
	Init    Expr // nil if no initializer
}

func (s *VarStmt) String() string {
	if s.Init == nil {
		return fmt.Sprintf("(var %s)", s.NameTok.Lexeme)
	}
	return fmt.Sprintf("(var %s %s)", s.NameTok.Lexeme, s.Init)
}

type BlockStmt struct{ Stmts []Stmt }

func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, " "))
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return fmt.Sprintf("(if %s %s)", s.Cond, s.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", s.Cond, s.Then, s.Else)
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func (s *WhileStmt) String() string { return fmt.Sprintf("(while %s %s)", s.Cond, s.Body) }

type FunctionStmt struct {
	NameTok token.Token
	Params  []token.Token
	Body    []Stmt
}

func (s *FunctionStmt) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Lexeme
	}
	return fmt.Sprintf("(fun %s (%s))", s.NameTok.Lexeme, strings.Join(parts, " "))
}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", s.Value)
}

type ClassStmt struct {
	NameTok    token.Token
	Superclass *Variable // nil if no superclass
	Methods    []*FunctionStmt
}

func (s *ClassStmt) String() string {
	parts := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		parts[i] = m.String()
	}
	return fmt.Sprintf("(class %s %s)", s.NameTok.Lexeme, strings.Join(parts, " "))
}
