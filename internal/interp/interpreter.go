// Package interp implements the Lox tree-walking evaluator: the third and
// final pass of the pipeline, dispatching on AST node kind and consuming
// the resolver's node-id → distance table for local variable lookups.
package interp

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/loxlang/loxi/internal/ast"
	"github.com/loxlang/loxi/internal/loxerr"
	"github.com/loxlang/loxi/internal/token"
	"github.com/rs/zerolog"
)

// Reporter is the runtime-error half of the host API (§6.1); satisfied by
// *loxerr.Collector.
type Reporter interface {
	RuntimeError(err *loxerr.RuntimeError)
}

// Interpreter owns the global frame, the current frame pointer, and the
// resolver's distance table. A single Interpreter is reused across an
// entire REPL session so that top-level declarations persist line to line.
type Interpreter struct {
	Globals  *Environment
	env      *Environment
	locals   map[int]int
	reporter Reporter
	stdout   io.Writer
	Log      zerolog.Logger
}

// New creates an Interpreter writing `print` output to stdout and runtime
// diagnostics through reporter. Its distance table starts empty; call
// AddLocals with the resolver's output before Interpret.
func New(reporter Reporter, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Ar:   0,
		Fn: func(*Interpreter, []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	return &Interpreter{
		Globals:  globals,
		env:      globals,
		locals:   make(map[int]int),
		reporter: reporter,
		stdout:   stdout,
		Log:      zerolog.Nop(),
	}
}

// AddLocals merges a resolver pass's distance table into the interpreter's
// running table. Merging rather than replacing lets a long-lived
// interpreter (a REPL session) keep resolving closures created by earlier
// lines after a later line is resolved independently.
func (in *Interpreter) AddLocals(locals map[int]int) {
	for id, distance := range locals {
		in.locals[id] = distance
	}
}

// Interpret executes a program's statements in the global frame, reporting
// (and absorbing) any runtime error via the Reporter (§7).
func (in *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			if rerr, ok := err.(*loxerr.RuntimeError); ok {
				in.reporter.RuntimeError(rerr)
			}
			return
		}
	}
}

// ---- Statement execution ----

func (in *Interpreter) exec(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.ExprStmt:
		_, err := in.eval(st.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.eval(st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, Stringify(v))
		return nil

	case *ast.VarStmt:
		var v Value = Nil{}
		if st.Init != nil {
			var err error
			v, err = in.eval(st.Init)
			if err != nil {
				return err
			}
		}
		in.env.Define(st.NameTok.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.execBlockStmts(st.Stmts, NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.eval(st.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return in.exec(st.Then)
		} else if st.Else != nil {
			return in.exec(st.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(st.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := in.exec(st.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &Function{Decl: st, Closure: in.env}
		in.env.Define(st.NameTok.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil{}
		if st.Value != nil {
			var err error
			v, err = in.eval(st.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{Value: v}

	case *ast.ClassStmt:
		return in.execClass(st)

	default:
		panic("interp: unhandled statement type")
	}
}

// execBlockStmts runs stmts in env as the current frame, restoring the
// previous frame on every exit path, including an error or a return unwind
// (§4.4 "Blocks", invariant §8.2).
func (in *Interpreter) execBlockStmts(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execClass(st *ast.ClassStmt) error {
	var superclass *Class
	if st.Superclass != nil {
		v, err := in.eval(st.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &loxerr.RuntimeError{Token: st.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(st.NameTok.Lexeme, Nil{})

	classEnv := in.env
	if superclass != nil {
		classEnv = NewEnvironment(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(st.Methods))
	for _, m := range st.Methods {
		methods[m.NameTok.Lexeme] = &Function{
			Decl:          m,
			Closure:       classEnv,
			IsInitializer: m.NameTok.Lexeme == "init",
		}
	}

	class := &Class{Name: st.NameTok.Lexeme, Superclass: superclass, Methods: methods}
	return in.env.Assign(st.NameTok, class)
}

// ---- Expression evaluation ----

func (in *Interpreter) eval(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return literalValue(ex), nil

	case *ast.Grouping:
		return in.eval(ex.Inner)

	case *ast.Variable:
		return in.lookupVariable(ex.Name, ex)

	case *ast.Assign:
		v, err := in.eval(ex.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[ex.ID()]; ok {
			in.env.AssignAt(distance, ex.Name, v)
		} else if err := in.Globals.Assign(ex.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Unary:
		return in.evalUnary(ex)

	case *ast.Binary:
		return in.evalBinary(ex)

	case *ast.Logical:
		left, err := in.eval(ex.Left)
		if err != nil {
			return nil, err
		}
		if ex.Op.Type == token.Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else {
			if !IsTruthy(left) {
				return left, nil
			}
		}
		return in.eval(ex.Right)

	case *ast.Call:
		return in.evalCall(ex)

	case *ast.Get:
		obj, err := in.eval(ex.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &loxerr.RuntimeError{Token: ex.Name, Message: "Only instances have properties."}
		}
		if v, ok := inst.Get(ex.Name.Lexeme); ok {
			return v, nil
		}
		return nil, &loxerr.RuntimeError{Token: ex.Name, Message: "Undefined property '" + ex.Name.Lexeme + "'."}

	case *ast.Set:
		obj, err := in.eval(ex.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &loxerr.RuntimeError{Token: ex.Name, Message: "Only instances have fields."}
		}
		v, err := in.eval(ex.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(ex.Name.Lexeme, v)
		return v, nil

	case *ast.This:
		return in.lookupVariable(ex.Keyword, ex)

	case *ast.Super:
		return in.evalSuper(ex)

	default:
		panic("interp: unhandled expression type")
	}
}

func literalValue(l *ast.Literal) Value {
	switch l.Token.Type {
	case token.True:
		return Bool(true)
	case token.False:
		return Bool(false)
	case token.Nil:
		return Nil{}
	case token.String:
		return String(l.Token.Literal)
	case token.Number:
		f, _ := strconv.ParseFloat(l.Token.Literal, 64)
		return Number(f)
	}
	return Nil{}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr.ID()]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.Globals.Get(name)
}

func (in *Interpreter) evalUnary(u *ast.Unary) (Value, error) {
	right, err := in.eval(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op.Type {
	case token.Bang:
		return Bool(!IsTruthy(right)), nil
	case token.Minus:
		n, ok := right.(Number)
		if !ok {
			return nil, &loxerr.RuntimeError{Token: u.Op, Message: "Operand must be a number."}
		}
		return -n, nil
	}
	panic("interp: unhandled unary operator")
}

func (in *Interpreter) evalBinary(b *ast.Binary) (Value, error) {
	left, err := in.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op.Type {
	case token.Plus:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if lok && rok {
			return ln + rn, nil
		}
		ls, lok := left.(String)
		rs, rok := right.(String)
		if lok && rok {
			return ls + rs, nil
		}
		return nil, &loxerr.RuntimeError{Token: b.Op, Message: "Operands must be two numbers or two strings."}

	case token.Minus:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil

	case token.Star:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil

	case token.Slash:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil

	case token.Greater:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l > r), nil

	case token.GreaterEqual:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l >= r), nil

	case token.Less:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l < r), nil

	case token.LessEqual:
		l, r, err := numberOperands(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l <= r), nil

	case token.EqualEqual:
		return Bool(Equal(left, right)), nil

	case token.BangEqual:
		return Bool(!Equal(left, right)), nil
	}
	panic("interp: unhandled binary operator")
}

func numberOperands(op token.Token, left, right Value) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, &loxerr.RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return l, r, nil
}

func (in *Interpreter) evalCall(c *ast.Call) (Value, error) {
	calleeVal, err := in.eval(c.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callee, ok := calleeVal.(Callable)
	if !ok {
		return nil, &loxerr.RuntimeError{Token: c.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != callee.Arity() {
		return nil, &loxerr.RuntimeError{
			Token:   c.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)),
		}
	}
	return callee.Call(in, args)
}

func (in *Interpreter) evalSuper(s *ast.Super) (Value, error) {
	distance := in.locals[s.ID()]
	superVal := in.env.GetAt(distance, "super")
	super := superVal.(*Class)
	this := in.env.GetAt(distance-1, "this").(*Instance)

	method := super.FindMethod(s.Method.Lexeme)
	if method == nil {
		return nil, &loxerr.RuntimeError{Token: s.Method, Message: "Undefined property '" + s.Method.Lexeme + "'."}
	}
	return method.Bind(this), nil
}
