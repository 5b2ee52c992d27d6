package interp

import (
	"github.com/loxlang/loxi/internal/loxerr"
	"github.com/loxlang/loxi/internal/token"
)

// Environment is a single lexical scope frame: a name→value map plus a
// link to its parent frame. The global frame has a nil parent.
type Environment struct {
	parent *Environment
	values map[string]Value
}

// NewEnvironment creates a scope frame chained to parent (nil for the
// global frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]Value)}
}

// Define inserts or overwrites a binding in this frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get walks the parent chain looking for name, per the unresolved/global
// lookup path of §4.4.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, &loxerr.RuntimeError{Token: name, Message: "Undefined variable '" + name.Lexeme + "'."}
}

// Assign walks the parent chain and overwrites the first frame that
// already defines name.
func (e *Environment) Assign(name token.Token, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return &loxerr.RuntimeError{Token: name, Message: "Undefined variable '" + name.Lexeme + "'."}
}

// ancestor returns the frame `distance` parent-links up from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads a name known to exist at exactly `distance` scopes up,
// the resolver-assisted fast path of §4.5.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt writes a name known to exist at exactly `distance` scopes up.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}
