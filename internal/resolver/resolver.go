// Package resolver performs the static variable-resolution pass: for every
// expression that reads or assigns a name bound in an enclosing non-global
// scope, it records the number of scopes between that expression and its
// binding (the "distance"), keyed by the expression's node id.
package resolver

import (
	"github.com/loxlang/loxi/internal/ast"
	"github.com/loxlang/loxi/internal/token"
)

// Reporter receives resolver diagnostics; satisfied by *loxerr.Collector.
type Reporter interface {
	Report(line int, where, message string)
}

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks an already-parsed AST and produces a node-id → distance
// table for the interpreter.
type Resolver struct {
	reporter     Reporter
	scopes       []map[string]bool
	locals       map[int]int
	currentFunc  functionType
	currentClass classType
	HadError     bool
}

// New creates a Resolver reporting diagnostics to reporter.
func New(reporter Reporter) *Resolver {
	return &Resolver{reporter: reporter, locals: make(map[int]int)}
}

// Locals returns the resolved node-id → distance table.
func (r *Resolver) Locals() map[int]int { return r.locals }

// Resolve resolves an entire program.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.err(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: a global, left unrecorded.
}

func (r *Resolver) err(tok token.Token, message string) {
	r.HadError = true
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	if r.reporter != nil {
		r.reporter.Report(tok.Loc.Row, where, message)
	}
}

// ---- Statements ----

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.Resolve(st.Stmts)
		r.endScope()
	case *ast.VarStmt:
		r.declare(st.NameTok)
		if st.Init != nil {
			r.resolveExpr(st.Init)
		}
		r.define(st.NameTok)
	case *ast.FunctionStmt:
		r.declare(st.NameTok)
		r.define(st.NameTok)
		r.resolveFunction(st, funcFunction)
	case *ast.ExprStmt:
		r.resolveExpr(st.Expr)
	case *ast.IfStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *ast.PrintStmt:
		r.resolveExpr(st.Expr)
	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.err(st.Keyword, "Can't return from top-level code.")
		}
		if st.Value != nil {
			if r.currentFunc == funcInitializer {
				r.err(st.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(st.Value)
		}
	case *ast.WhileStmt:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Body)
	case *ast.ClassStmt:
		r.resolveClass(st)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosing := r.currentFunc
	r.currentFunc = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, s := range fn.Body {
		r.resolveStmt(s)
	}
	r.endScope()

	r.currentFunc = enclosing
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(c.NameTok)
	r.define(c.NameTok)

	if c.Superclass != nil {
		r.currentClass = classSubclass
		if c.NameTok.Lexeme == c.Superclass.Name.Lexeme {
			r.err(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range c.Methods {
		typ := funcMethod
		if method.NameTok.Lexeme == "init" {
			typ = funcInitializer
		}
		r.resolveFunction(method, typ)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

// ---- Expressions ----

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; declared && !defined {
				r.err(ex.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(ex, ex.Name)
	case *ast.Assign:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex, ex.Name)
	case *ast.Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Logical:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Unary:
		r.resolveExpr(ex.Operand)
	case *ast.Call:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(ex.Object)
	case *ast.Set:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.err(ex.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(ex, ex.Keyword)
	case *ast.Super:
		if r.currentClass == classNone {
			r.err(ex.Keyword, "Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.err(ex.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(ex, ex.Keyword)
	case *ast.Grouping:
		r.resolveExpr(ex.Inner)
	case *ast.Literal:
		// nothing to resolve
	default:
		panic("resolver: unhandled expression type")
	}
}
