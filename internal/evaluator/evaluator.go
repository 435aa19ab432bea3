// Package evaluator walks parsed Scheme expressions against an
// Environment, dispatching special forms and trampolining tail calls so
// deep recursion in tail position never grows the host stack.
package evaluator

import (
	"github.com/tinyscm-go/tinyscm/internal/config"
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// Evaluator carries the one piece of mutable state evaluation needs
// beyond the environment chain: the non-tail call depth counter used to
// detect runaway (non-tail) recursion before the host stack itself
// overflows.
type Evaluator struct {
	depth int
	limit int
}

// New returns an Evaluator with the default recursion ceiling.
func New() *Evaluator {
	return &Evaluator{limit: config.DefaultRecursionLimit}
}

// Eval evaluates expr in env and fully resolves any tail call chain
// before returning, so callers never observe a *value.TailPromise.
func (ev *Evaluator) Eval(expr value.Value, env *value.Environment) (value.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > ev.limit {
		return nil, diagnostics.RecursionLimitError()
	}
	for {
		v, err := ev.evalStep(expr, env)
		if err != nil {
			return nil, err
		}
		tp, ok := v.(*value.TailPromise)
		if !ok {
			return v, nil
		}
		expr, env = tp.Expr, tp.Env
	}
}

// evalStep performs one step of evaluation. When expr is in tail
// position relative to its caller, a special form may return a
// *value.TailPromise instead of recursing, letting the Eval loop above
// unwind the Go stack between tail calls.
func (ev *Evaluator) evalStep(expr value.Value, env *value.Environment) (value.Value, error) {
	switch t := expr.(type) {
	case value.Symbol:
		return env.Lookup(t)
	case *value.Pair:
		return ev.evalPair(t, env)
	default:
		// Self-evaluating: booleans, numbers, strings, the empty list,
		// procedures encountered as data, etc.
		return expr, nil
	}
}

func (ev *Evaluator) evalPair(p *value.Pair, env *value.Environment) (value.Value, error) {
	if sym, ok := p.First.(value.Symbol); ok {
		if fn, ok := specialForms[string(sym)]; ok {
			return fn(ev, p.Rest, env)
		}
		if v, err := env.Lookup(sym); err == nil {
			if macro, ok := v.(*value.MacroProcedure); ok {
				return ev.expandMacro(macro, p.Rest, env)
			}
		}
	}

	op, err := ev.Eval(p.First, env)
	if err != nil {
		return nil, err
	}
	args, err := ev.evalArgs(p.Rest, env)
	if err != nil {
		return nil, err
	}
	return ev.ApplyTail(op, args, env)
}

// expandMacro binds macro's parameters to the unevaluated operand forms,
// evaluates its body to produce an expansion, then evaluates that
// expansion in the caller's environment, in tail position. Unlike
// procedure application, operands are never evaluated before binding,
// and the expansion is re-evaluated rather than returned as data.
func (ev *Evaluator) expandMacro(macro *value.MacroProcedure, operands value.Value, callerEnv *value.Environment) (value.Value, error) {
	operandForms, ok := value.ToSlice(operands)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "improper macro operand list")
	}
	bindEnv, err := macro.Env.Extend(macro.Params, operandForms)
	if err != nil {
		return nil, err
	}
	expansion, err := ev.evalBodyResolved(macro.Body, bindEnv)
	if err != nil {
		return nil, err
	}
	return &value.TailPromise{Expr: expansion, Env: callerEnv}, nil
}

// evalBodyResolved evaluates body like evalBodyNonTail, but fully
// resolves the tail expression's value instead of returning a pending
// *value.TailPromise.
func (ev *Evaluator) evalBodyResolved(body []value.Value, env *value.Environment) (value.Value, error) {
	v, err := ev.evalBodyNonTail(body, env)
	if err != nil {
		return nil, err
	}
	if tp, ok := v.(*value.TailPromise); ok {
		return ev.Eval(tp.Expr, tp.Env)
	}
	return v, nil
}

// evalArgs evaluates every element of a proper-list operand spine.
func (ev *Evaluator) evalArgs(v value.Value, env *value.Environment) ([]value.Value, error) {
	var args []value.Value
	for {
		switch t := v.(type) {
		case value.EmptyListValue:
			return args, nil
		case *value.Pair:
			a, err := ev.Eval(t.First, env)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			v = t.Rest
		default:
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "improper argument list")
		}
	}
}

// evalBodyTail evaluates a procedure/let body, a sequence of
// expressions whose value is that of the last one, which is evaluated
// in tail position and returned as a possibly-unresolved
// *value.TailPromise.
func (ev *Evaluator) evalBodyTail(body []value.Value, env *value.Environment) (value.Value, error) {
	if len(body) == 0 {
		return value.Unspecified, nil
	}
	for _, e := range body[:len(body)-1] {
		if _, err := ev.Eval(e, env); err != nil {
			return nil, err
		}
	}
	return &value.TailPromise{Expr: body[len(body)-1], Env: env}, nil
}

// Apply calls op with args, evaluated as if the call appeared in
// callerEnv, and fully resolves the result. Used at non-tail call sites:
// the `apply`, higher-order (`map`, `filter`, `reduce`) and stream
// primitives.
func (ev *Evaluator) Apply(op value.Value, args []value.Value, callerEnv *value.Environment) (value.Value, error) {
	v, err := ev.ApplyTail(op, args, callerEnv)
	if err != nil {
		return nil, err
	}
	if tp, ok := v.(*value.TailPromise); ok {
		return ev.Eval(tp.Expr, tp.Env)
	}
	return v, nil
}

// ApplyTail calls op with args as if the call appeared in callerEnv. For
// a LambdaProcedure or DynamicLambdaProcedure body evaluated in tail
// position, the result may be an unresolved *value.TailPromise; every
// other case returns a fully resolved value.
//
// callerEnv matters only for DynamicLambdaProcedure, whose body resolves
// free variables in the environment active at the call site rather than
// in any environment it closed over (it closes over none).
func (ev *Evaluator) ApplyTail(op value.Value, args []value.Value, callerEnv *value.Environment) (value.Value, error) {
	switch fn := op.(type) {
	case *value.PrimitiveProcedure:
		var env *value.Environment
		if fn.NeedsEnv {
			env = callerEnv
		}
		return fn.Fn(args, env)
	case *value.LambdaProcedure:
		callEnv, err := fn.Env.Extend(fn.Params, args)
		if err != nil {
			return nil, err
		}
		return ev.evalBodyNonTail(fn.Body, callEnv)
	case *value.DynamicLambdaProcedure:
		if callerEnv == nil {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm,
				"dlambda cannot be applied without a caller environment")
		}
		callEnv, err := callerEnv.Extend(fn.Params, args)
		if err != nil {
			return nil, err
		}
		return ev.evalBodyNonTail(fn.Body, callEnv)
	default:
		return nil, diagnostics.NewSchemeError(diagnostics.ErrUnknownProcedure, "object is not applicable: %s", value.Write(op))
	}
}

// evalBodyNonTail is evalBodyTail with the call counted against the
// non-tail recursion depth limit, applied once per lambda/dlambda
// invocation rather than per primitive call.
func (ev *Evaluator) evalBodyNonTail(body []value.Value, env *value.Environment) (value.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > ev.limit {
		return nil, diagnostics.RecursionLimitError()
	}
	return ev.evalBodyTail(body, env)
}
