package builtins

import (
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func unaryPredicate(name string, pred func(value.Value) bool) value.PrimitiveFn {
	return func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires exactly one argument", name)
		}
		return value.Boolean(pred(args[0])), nil
	}
}

func (r *registry) registerPredicates(env *value.Environment) {
	define(env, "atom?", unaryPredicate("atom?", value.IsAtom))
	define(env, "boolean?", unaryPredicate("boolean?", func(v value.Value) bool {
		_, ok := v.(value.Boolean)
		return ok
	}))
	define(env, "integer?", unaryPredicate("integer?", func(v value.Value) bool {
		_, ok := v.(value.Integer)
		return ok
	}))
	define(env, "real?", unaryPredicate("real?", func(v value.Value) bool {
		_, ok := value.NumericValue(v)
		return ok
	}))
	define(env, "number?", unaryPredicate("number?", func(v value.Value) bool {
		_, ok := value.NumericValue(v)
		return ok
	}))
	define(env, "string?", unaryPredicate("string?", func(v value.Value) bool {
		_, ok := v.(value.String)
		return ok
	}))
	define(env, "symbol?", unaryPredicate("symbol?", func(v value.Value) bool {
		_, ok := v.(value.Symbol)
		return ok
	}))
	define(env, "pair?", unaryPredicate("pair?", func(v value.Value) bool {
		_, ok := v.(*value.Pair)
		return ok
	}))
	define(env, "null?", unaryPredicate("null?", func(v value.Value) bool {
		_, ok := v.(value.EmptyListValue)
		return ok
	}))
	define(env, "list?", unaryPredicate("list?", value.IsProperList))
	define(env, "procedure?", unaryPredicate("procedure?", value.IsProcedure))
	define(env, "promise?", unaryPredicate("promise?", func(v value.Value) bool {
		_, ok := v.(*value.Promise)
		return ok
	}))
	define(env, "scheme-valid-cdr?", unaryPredicate("scheme-valid-cdr?", value.ScmValidCdr))

	define(env, "zero?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "zero?: requires exactly one argument")
		}
		f, ok := value.NumericValue(args[0])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "zero?: not a number: %s", value.Write(args[0]))
		}
		return value.Boolean(f == 0), nil
	})
	define(env, "even?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "even?: requires exactly one argument")
		}
		i, ok := args[0].(value.Integer)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "even?: not an integer: %s", value.Write(args[0]))
		}
		return value.Boolean(i%2 == 0), nil
	})
	define(env, "odd?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "odd?: requires exactly one argument")
		}
		i, ok := args[0].(value.Integer)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "odd?: not an integer: %s", value.Write(args[0]))
		}
		return value.Boolean(i%2 != 0), nil
	})

	define(env, "not", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "not: requires exactly one argument")
		}
		return value.Boolean(!value.Truthy(args[0])), nil
	})

	define(env, "eq?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "eq?: requires exactly two arguments")
		}
		return value.Boolean(value.Eq(args[0], args[1])), nil
	})
	define(env, "eqv?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "eqv?: requires exactly two arguments")
		}
		return value.Boolean(value.Eqv(args[0], args[1])), nil
	})
	define(env, "equal?", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "equal?: requires exactly two arguments")
		}
		return value.Boolean(value.Equal(args[0], args[1])), nil
	})
}
