package builtins

import (
	"math"

	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func asFloat(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Integer:
		return float64(t), true
	case value.Real:
		return float64(t), true
	default:
		return 0, false
	}
}

func allIntegers(args []value.Value) bool {
	for _, a := range args {
		if _, ok := a.(value.Integer); !ok {
			return false
		}
	}
	return true
}

func numericArgs(name string, args []value.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := asFloat(a)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "%s: not a number: %s", name, value.Write(a))
		}
		out[i] = f
	}
	return out, nil
}

// ensureInt normalizes an integral-valued float arithmetic result back to
// Integer, mirroring original_source/primitive_procs.py's `_ensure_int`
// (`if int(x) == x: x = int(x)`). A Real result only stays Real when it
// actually carries a fractional part.
func ensureInt(f float64) value.Value {
	if i := int64(f); float64(i) == f {
		return value.Integer(i)
	}
	return value.Real(f)
}

func (r *registry) registerArithmetic(env *value.Environment) {
	define(env, "+", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if allIntegers(args) {
			var sum int64
			for _, a := range args {
				sum += int64(a.(value.Integer))
			}
			return value.Integer(sum), nil
		}
		fs, err := numericArgs("+", args)
		if err != nil {
			return nil, err
		}
		var sum float64
		for _, f := range fs {
			sum += f
		}
		return ensureInt(sum), nil
	})

	define(env, "-", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) == 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "-: requires at least one argument")
		}
		if allIntegers(args) {
			ints := make([]int64, len(args))
			for i, a := range args {
				ints[i] = int64(a.(value.Integer))
			}
			if len(ints) == 1 {
				return value.Integer(-ints[0]), nil
			}
			result := ints[0]
			for _, n := range ints[1:] {
				result -= n
			}
			return value.Integer(result), nil
		}
		fs, err := numericArgs("-", args)
		if err != nil {
			return nil, err
		}
		if len(fs) == 1 {
			return ensureInt(-fs[0]), nil
		}
		result := fs[0]
		for _, f := range fs[1:] {
			result -= f
		}
		return ensureInt(result), nil
	})

	define(env, "*", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if allIntegers(args) {
			var product int64 = 1
			for _, a := range args {
				product *= int64(a.(value.Integer))
			}
			return value.Integer(product), nil
		}
		fs, err := numericArgs("*", args)
		if err != nil {
			return nil, err
		}
		product := 1.0
		for _, f := range fs {
			product *= f
		}
		return ensureInt(product), nil
	})

	define(env, "/", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) == 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "/: requires at least one argument")
		}
		fs, err := numericArgs("/", args)
		if err != nil {
			return nil, err
		}
		if len(fs) == 1 {
			if fs[0] == 0 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrDivisionByZero, "/: division by zero")
			}
			return ensureInt(1 / fs[0]), nil
		}
		result := fs[0]
		for _, f := range fs[1:] {
			if f == 0 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrDivisionByZero, "/: division by zero")
			}
			result /= f
		}
		return ensureInt(result), nil
	})

	define(env, "abs", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "abs: requires exactly one argument")
		}
		if i, ok := args[0].(value.Integer); ok {
			if i < 0 {
				return -i, nil
			}
			return i, nil
		}
		f, ok := asFloat(args[0])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "abs: not a number: %s", value.Write(args[0]))
		}
		return ensureInt(math.Abs(f)), nil
	})

	define(env, "expt", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "expt: requires exactly two arguments")
		}
		if b, ok := args[0].(value.Integer); ok {
			if e, ok := args[1].(value.Integer); ok && e >= 0 {
				result := int64(1)
				for i := int64(0); i < int64(e); i++ {
					result *= int64(b)
				}
				return value.Integer(result), nil
			}
		}
		fs, err := numericArgs("expt", args)
		if err != nil {
			return nil, err
		}
		return ensureInt(math.Pow(fs[0], fs[1])), nil
	})

	intBinOp := func(name string, fn func(a, b int64) (int64, error)) value.PrimitiveFn {
		return func(args []value.Value, _ *value.Environment) (value.Value, error) {
			if len(args) != 2 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires exactly two arguments", name)
			}
			a, aok := args[0].(value.Integer)
			b, bok := args[1].(value.Integer)
			if !aok || !bok {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "%s: requires integer arguments", name)
			}
			result, err := fn(int64(a), int64(b))
			if err != nil {
				return nil, err
			}
			return value.Integer(result), nil
		}
	}

	define(env, "modulo", intBinOp("modulo", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diagnostics.NewSchemeError(diagnostics.ErrDivisionByZero, "modulo: division by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}))
	define(env, "quotient", intBinOp("quotient", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diagnostics.NewSchemeError(diagnostics.ErrDivisionByZero, "quotient: division by zero")
		}
		return a / b, nil
	}))
	define(env, "remainder", intBinOp("remainder", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diagnostics.NewSchemeError(diagnostics.ErrDivisionByZero, "remainder: division by zero")
		}
		return a % b, nil
	}))

	unaryFloat := func(name string, fn func(float64) float64) value.PrimitiveFn {
		return func(args []value.Value, _ *value.Environment) (value.Value, error) {
			if len(args) != 1 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires exactly one argument", name)
			}
			f, ok := asFloat(args[0])
			if !ok {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "%s: not a number: %s", name, value.Write(args[0]))
			}
			return ensureInt(fn(f)), nil
		}
	}

	binaryFloat := func(name string, fn func(a, b float64) float64) value.PrimitiveFn {
		return func(args []value.Value, _ *value.Environment) (value.Value, error) {
			if len(args) != 2 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires exactly two arguments", name)
			}
			fs, err := numericArgs(name, args)
			if err != nil {
				return nil, err
			}
			return ensureInt(fn(fs[0], fs[1])), nil
		}
	}

	define(env, "sqrt", unaryFloat("sqrt", math.Sqrt))
	define(env, "sin", unaryFloat("sin", math.Sin))
	define(env, "cos", unaryFloat("cos", math.Cos))
	define(env, "tan", unaryFloat("tan", math.Tan))
	define(env, "asin", unaryFloat("asin", math.Asin))
	define(env, "acos", unaryFloat("acos", math.Acos))
	define(env, "atan", unaryFloat("atan", math.Atan))
	define(env, "atan2", binaryFloat("atan2", math.Atan2))
	define(env, "sinh", unaryFloat("sinh", math.Sinh))
	define(env, "cosh", unaryFloat("cosh", math.Cosh))
	define(env, "tanh", unaryFloat("tanh", math.Tanh))
	define(env, "log", unaryFloat("log", math.Log))
	define(env, "log10", unaryFloat("log10", math.Log10))
	define(env, "log2", unaryFloat("log2", math.Log2))
	define(env, "exp", unaryFloat("exp", math.Exp))
	define(env, "floor", unaryFloat("floor", math.Floor))
	define(env, "ceiling", unaryFloat("ceiling", math.Ceil))
	define(env, "ceil", unaryFloat("ceil", math.Ceil))
	define(env, "round", unaryFloat("round", math.RoundToEven))
	define(env, "truncate", unaryFloat("truncate", math.Trunc))
	define(env, "trunc", unaryFloat("trunc", math.Trunc))

	cmp := func(name string, pred func(a, b float64) bool) value.PrimitiveFn {
		return func(args []value.Value, _ *value.Environment) (value.Value, error) {
			if len(args) < 2 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires at least two arguments", name)
			}
			fs, err := numericArgs(name, args)
			if err != nil {
				return nil, err
			}
			for i := 0; i < len(fs)-1; i++ {
				if !pred(fs[i], fs[i+1]) {
					return value.Boolean(false), nil
				}
			}
			return value.Boolean(true), nil
		}
	}
	define(env, "=", cmp("=", func(a, b float64) bool { return a == b }))
	define(env, "<", cmp("<", func(a, b float64) bool { return a < b }))
	define(env, ">", cmp(">", func(a, b float64) bool { return a > b }))
	define(env, "<=", cmp("<=", func(a, b float64) bool { return a <= b }))
	define(env, ">=", cmp(">=", func(a, b float64) bool { return a >= b }))

	define(env, "max", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) == 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "max: requires at least one argument")
		}
		fs, err := numericArgs("max", args)
		if err != nil {
			return nil, err
		}
		best := fs[0]
		for _, f := range fs[1:] {
			if f > best {
				best = f
			}
		}
		if allIntegers(args) {
			return value.Integer(int64(best)), nil
		}
		return ensureInt(best), nil
	})
	define(env, "min", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) == 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "min: requires at least one argument")
		}
		fs, err := numericArgs("min", args)
		if err != nil {
			return nil, err
		}
		best := fs[0]
		for _, f := range fs[1:] {
			if f < best {
				best = f
			}
		}
		if allIntegers(args) {
			return value.Integer(int64(best)), nil
		}
		return ensureInt(best), nil
	})
}
