package value

import "github.com/tinyscm-go/tinyscm/internal/diagnostics"

// ParamList is a parsed lambda/macro parameter list: a fixed prefix of
// required parameters plus an optional rest parameter for the classic
// "(a b . rest)" variadic shape used by define-macro's `. body` form
// and, by extension, ordinary lambdas.
type ParamList struct {
	Required []Symbol
	Rest     *Symbol // nil if there is no rest parameter
}

// ParseParamList interprets a Scheme parameter-list value: a proper list
// of symbols, an improper list ending in a rest symbol, or a bare symbol
// (all arguments collected into one list). Parameters must be distinct.
func ParseParamList(v Value) (ParamList, error) {
	var pl ParamList
	seen := map[Symbol]bool{}
	add := func(s Symbol) error {
		if seen[s] {
			return diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "duplicate parameter name: %s", s)
		}
		seen[s] = true
		return nil
	}

	if sym, ok := v.(Symbol); ok {
		if err := add(sym); err != nil {
			return pl, err
		}
		pl.Rest = &sym
		return pl, nil
	}

	for {
		switch t := v.(type) {
		case EmptyListValue:
			return pl, nil
		case *Pair:
			sym, ok := t.First.(Symbol)
			if !ok {
				return pl, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "parameter is not a symbol")
			}
			if err := add(sym); err != nil {
				return pl, err
			}
			pl.Required = append(pl.Required, sym)
			v = t.Rest
		case Symbol:
			if err := add(t); err != nil {
				return pl, err
			}
			rest := t
			pl.Rest = &rest
			return pl, nil
		default:
			return pl, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed parameter list")
		}
	}
}

// LambdaProcedure is a user-defined procedure with lexical scope: it
// closes over the environment active at the point of its `lambda` form.
type LambdaProcedure struct {
	Name   string // empty for anonymous lambdas; filled in by `define` sugar
	Params ParamList
	Body   []Value
	Env    *Environment
}

func (*LambdaProcedure) isValue() {}

// DynamicLambdaProcedure is like LambdaProcedure but does not capture an
// environment: free variables in its body resolve in the caller's
// environment at call time.
type DynamicLambdaProcedure struct {
	Params ParamList
	Body   []Value
}

func (*DynamicLambdaProcedure) isValue() {}

// MacroProcedure is applied to its unevaluated operand list; its result
// is re-evaluated in the caller's environment.
type MacroProcedure struct {
	Name   string
	Params ParamList
	Body   []Value
	Env    *Environment
}

func (*MacroProcedure) isValue() {}

// PrimitiveFn is the Go signature every host-implemented procedure has.
// env is nil unless NeedsEnv is set on the owning PrimitiveProcedure.
type PrimitiveFn func(args []Value, env *Environment) (Value, error)

// PrimitiveProcedure wraps a host function as a Scheme-callable value.
type PrimitiveProcedure struct {
	Name     string
	NeedsEnv bool
	Fn       PrimitiveFn
}

func (*PrimitiveProcedure) isValue() {}

// IsProcedure reports whether v is any procedure variant, macros
// included. A MacroProcedure is expanded at its call site; applying one
// as a value (as `apply` does) is rejected by the evaluator.
func IsProcedure(v Value) bool {
	switch v.(type) {
	case *PrimitiveProcedure, *LambdaProcedure, *DynamicLambdaProcedure, *MacroProcedure:
		return true
	default:
		return false
	}
}
