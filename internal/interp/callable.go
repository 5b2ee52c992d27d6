package interp

import (
	"fmt"

	"github.com/loxlang/loxi/internal/ast"
)

// Callable is any Value that can appear as a Call's callee: user
// functions, classes (as constructors) and native functions.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// NativeFunction wraps a host-provided builtin such as clock.
type NativeFunction struct {
	Name string
	Ar   int
	Fn   func(in *Interpreter, args []Value) (Value, error)
}

func (*NativeFunction) Kind() ValueKind { return KindFunction }
func (n *NativeFunction) String() string { return "<native fn>" }
func (n *NativeFunction) Arity() int     { return n.Ar }
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

// Function is a user-defined Lox function or method: its declaration plus
// the lexical frame captured at declaration time (§3 "Closure").
type Function struct {
	Decl          *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (*Function) Kind() ValueKind { return KindFunction }
func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Decl.NameTok.Lexeme) }
func (f *Function) Arity() int      { return len(f.Decl.Params) }

// Call binds parameters in a fresh frame over the closure and executes the
// body; a Return unwinds to exactly this call boundary (§4.4, §7). A
// function that reaches its body end yields nil, except an initializer,
// which always yields the bound instance.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	name := f.Decl.NameTok.Lexeme
	in.Log.Debug().Str("fn", name).Int("args", len(args)).Msg("call")

	env := NewEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.execBlockStmts(f.Decl.Body, env)
	sig, isReturn := asReturn(err)
	in.Log.Debug().Str("fn", name).Bool("error", err != nil && !isReturn).Msg("return")
	if isReturn {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return sig.Value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// Bind produces a new Function whose closure is a synthetic one-slot
// frame binding `this` to instance, parented at f's own closure (§4.4
// "Binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a Lox class: a name, an optional superclass, and its own
// (non-inherited) methods.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (*Class) Kind() ValueKind { return KindClass }
func (c *Class) String() string { return c.Name }

// FindMethod walks the superclass chain; the first hit wins (§3).
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init`, or 0 if the class has none (§4.4
// "Calling a class").
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a fresh instance, invokes `init` if present, and always
// returns the instance regardless of what `init` returns (§4.4, §4.5
// "Initializer").
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	in.Log.Debug().Str("class", c.Name).Msg("construct")
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live Lox object: a class reference plus a mutable field
// map whose entries are created on first assignment (§3).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) Kind() ValueKind { return KindInstance }
func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get implements property access: a field wins over a method; a missing
// field falls back to a bound method lookup (§4.4 "Method access").
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m.Bind(i), true
	}
	return nil, false
}

// Set assigns a field, creating it on first use.
func (i *Instance) Set(name string, value Value) {
	i.Fields[name] = value
}
