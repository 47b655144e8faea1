// Package environment implements Grove's lexical scope stack: an ordered
// list of scopes, innermost last, searched outward on lookup.
package environment

import "github.com/groveembed/grove/pkg/value"

// Environment is a stack of scopes. It always holds at least one scope —
// the global scope — which PopScope can never remove.
type Environment struct {
	scopes []map[string]value.Value
}

// New returns an Environment with a single, empty global scope.
func New() *Environment {
	return &Environment{scopes: []map[string]value.Value{make(map[string]value.Value)}}
}

// PushScope opens a new innermost scope.
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, make(map[string]value.Value))
}

// PopScope closes the innermost scope. It is a no-op at depth 1 — the
// global scope is never removed.
func (e *Environment) PopScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Define binds name in the innermost scope, shadowing any outer binding
// of the same name. Redefining an existing name in the same scope
// overwrites it.
func (e *Environment) Define(name string, v value.Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// Set walks outward from the innermost scope and assigns to the first
// scope that already binds name, returning false if no scope does.
func (e *Environment) Set(name string, v value.Value) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return true
		}
	}
	return false
}

// Get walks outward from the innermost scope and returns the first
// binding of name, or (zero value, false) if none exists.
func (e *Environment) Get(name string) (value.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Depth reports the current number of open scopes, mostly useful in
// tests that assert push/pop balance.
func (e *Environment) Depth() int {
	return len(e.scopes)
}
