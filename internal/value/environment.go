package value

import "github.com/tinyscm-go/tinyscm/internal/diagnostics"

// Frame is one mapping of symbols to values, the basic unit composing
// an Environment.
type Frame map[Symbol]Value

// Environment is a non-empty chain of Frames, youngest first.
// Closures hold a reference to their defining Environment; since Go's
// garbage collector traces reference cycles, an Environment chain that
// loops back on itself through a global closure is collected correctly
// without the
// handle-based arena that a non-GC'd host language would need.
type Environment struct {
	vars  Frame
	outer *Environment
}

// NewGlobalEnvironment returns a fresh, empty top-level Environment.
func NewGlobalEnvironment() *Environment {
	return &Environment{vars: make(Frame)}
}

// Define binds var to val in the youngest frame, overwriting any
// existing binding there.
func (e *Environment) Define(sym Symbol, val Value) {
	e.vars[sym] = val
}

// frameOf walks frames youngest-to-oldest looking for sym, returning the
// frame that defines it.
func (e *Environment) frameOf(sym Symbol) *Environment {
	for f := e; f != nil; f = f.outer {
		if _, ok := f.vars[sym]; ok {
			return f
		}
	}
	return nil
}

// Lookup walks frames youngest-to-oldest; the first hit wins.
func (e *Environment) Lookup(sym Symbol) (Value, error) {
	if f := e.frameOf(sym); f != nil {
		return f.vars[sym], nil
	}
	return nil, diagnostics.NewSchemeError(diagnostics.ErrUnboundVariable, "unbound variable: %s", sym)
}

// Set mutates the first frame (youngest-to-oldest) containing sym; it
// never creates a new binding.
func (e *Environment) Set(sym Symbol, val Value) error {
	f := e.frameOf(sym)
	if f == nil {
		return diagnostics.NewSchemeError(diagnostics.ErrUnboundVariable, "unbound variable: %s", sym)
	}
	f.vars[sym] = val
	return nil
}

// ExtendEmpty prepends a fresh, empty frame to the chain. Used by forms
// that build up bindings one at a time (let*, letrec, named let) rather
// than all at once from a parameter list.
func (e *Environment) ExtendEmpty() *Environment {
	return &Environment{vars: make(Frame), outer: e}
}

// Extend constructs a new frame binding params to args in order and
// prepends it to the chain, returning the new Environment.
func (e *Environment) Extend(params ParamList, args []Value) (*Environment, error) {
	required := len(params.Required)
	if params.Rest == nil {
		if len(args) != required {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity,
				"expected %d argument(s), got %d", required, len(args))
		}
	} else if len(args) < required {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity,
			"expected at least %d argument(s), got %d", required, len(args))
	}

	frame := make(Frame, required+1)
	for i, sym := range params.Required {
		frame[sym] = args[i]
	}
	if params.Rest != nil {
		frame[*params.Rest] = List(args[required:]...)
	}
	return &Environment{vars: frame, outer: e}, nil
}
