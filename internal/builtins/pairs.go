package builtins

import (
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func (r *registry) registerPairs(env *value.Environment) {
	define(env, "cons", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "cons: requires exactly two arguments")
		}
		return value.NewPair(args[0], args[1]), nil
	})

	define(env, "car", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "car: requires exactly one argument")
		}
		p, ok := args[0].(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "car: not a pair: %s", value.Write(args[0]))
		}
		return p.First, nil
	})

	define(env, "cdr", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "cdr: requires exactly one argument")
		}
		p, ok := args[0].(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "cdr: not a pair: %s", value.Write(args[0]))
		}
		return p.Rest, nil
	})

	define(env, "set-car!", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "set-car!: requires exactly two arguments")
		}
		p, ok := args[0].(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "set-car!: not a pair: %s", value.Write(args[0]))
		}
		p.First = args[1]
		return value.Unspecified, nil
	})

	define(env, "set-cdr!", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "set-cdr!: requires exactly two arguments")
		}
		p, ok := args[0].(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "set-cdr!: not a pair: %s", value.Write(args[0]))
		}
		if !value.ScmValidCdr(args[1]) {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "set-cdr!: value is not a valid cdr: %s", value.Write(args[1]))
		}
		p.Rest = args[1]
		return value.Unspecified, nil
	})

	define(env, "list", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		return value.List(args...), nil
	})

	define(env, "length", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "length: requires exactly one argument")
		}
		n, ok := value.Length(args[0])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "length: not a proper list: %s", value.Write(args[0]))
		}
		return value.Integer(n), nil
	})

	define(env, "append", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) == 0 {
			return value.EmptyList, nil
		}
		result := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			appended, ok := value.Append(args[i], result)
			if !ok {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "append: not a proper list: %s", value.Write(args[i]))
			}
			result = appended
		}
		return result, nil
	})

	define(env, "reverse", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "reverse: requires exactly one argument")
		}
		elems, ok := value.ToSlice(args[0])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "reverse: not a proper list: %s", value.Write(args[0]))
		}
		var result value.Value = value.EmptyList
		for _, e := range elems {
			result = value.NewPair(e, result)
		}
		return result, nil
	})
}
