package evaluator

import (
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// specialFormFn evaluates one special form given its unevaluated operand
// list (the cdr of the whole form) and the environment it appears in. A
// form in tail position returns a *value.TailPromise instead of
// recursing into Eval directly.
type specialFormFn func(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error)

var specialForms map[string]specialFormFn

func init() {
	specialForms = map[string]specialFormFn{
		"quote":            evalQuote,
		"if":               evalIf,
		"cond":             evalCond,
		"and":              evalAnd,
		"or":               evalOr,
		"begin":            evalBegin,
		"let":              evalLet,
		"let*":             evalLetStar,
		"letrec":           evalLetrec,
		"lambda":           evalLambda,
		"dlambda":          evalDlambda,
		"define":           evalDefine,
		"set!":             evalSet,
		"quasiquote":       evalQuasiquote,
		"unquote":          evalUnquoteOutsideQuasiquote,
		"unquote-splicing": evalUnquoteOutsideQuasiquote,
		"define-macro":     evalDefineMacro,
		"delay":            evalDelay,
		"cons-stream":      evalConsStream,
	}
}

func operandSlice(v value.Value) ([]value.Value, error) {
	vs, ok := value.ToSlice(v)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "improper form")
	}
	return vs, nil
}

func evalQuote(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) != 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "quote requires exactly one operand")
	}
	return args[0], nil
}

func evalIf(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 2 || len(args) > 3 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "if requires a test, a consequent and an optional alternative")
	}
	test, err := ev.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if value.Truthy(test) {
		return &value.TailPromise{Expr: args[1], Env: env}, nil
	}
	if len(args) == 3 {
		return &value.TailPromise{Expr: args[2], Env: env}, nil
	}
	return value.Unspecified, nil
}

// evalCond evaluates (cond (test expr...) ... (else expr...)); else, if
// present, must be the final clause. A clause with no body yields the
// test's own (truthy) value, the one-armed `(test)` shorthand.
func evalCond(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	clauses, err := operandSlice(operands)
	if err != nil {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed cond")
	}
	for i, clause := range clauses {
		parts, err := operandSlice(clause)
		if err != nil || len(parts) == 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed cond clause")
		}
		if sym, ok := parts[0].(value.Symbol); ok && sym == "else" {
			if i != len(clauses)-1 {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrCondElseNotLast, "else clause must be last in cond")
			}
			return ev.evalBodyTail(parts[1:], env)
		}
		test, err := ev.Eval(parts[0], env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(test) {
			if len(parts) == 1 {
				return test, nil
			}
			return ev.evalBodyTail(parts[1:], env)
		}
	}
	return value.Unspecified, nil
}

func evalAnd(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed and")
	}
	if len(args) == 0 {
		return value.Boolean(true), nil
	}
	for _, a := range args[:len(args)-1] {
		v, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(v) {
			return v, nil
		}
	}
	return &value.TailPromise{Expr: args[len(args)-1], Env: env}, nil
}

func evalOr(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed or")
	}
	if len(args) == 0 {
		return value.Boolean(false), nil
	}
	for _, a := range args[:len(args)-1] {
		v, err := ev.Eval(a, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return v, nil
		}
	}
	return &value.TailPromise{Expr: args[len(args)-1], Env: env}, nil
}

func evalBegin(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed begin")
	}
	return ev.evalBodyTail(args, env)
}

// bindingPairs parses a let-style binding list: ((name expr) ...).
func bindingPairs(v value.Value) ([]value.Symbol, []value.Value, error) {
	bindings, err := operandSlice(v)
	if err != nil {
		return nil, nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed binding list")
	}
	names := make([]value.Symbol, len(bindings))
	exprs := make([]value.Value, len(bindings))
	for i, b := range bindings {
		parts, err := operandSlice(b)
		if err != nil || len(parts) != 2 {
			return nil, nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed binding")
		}
		sym, ok := parts[0].(value.Symbol)
		if !ok {
			return nil, nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "binding name is not a symbol")
		}
		names[i] = sym
		exprs[i] = parts[1]
	}
	return names, exprs, nil
}

// evalLet handles both plain `(let ((n e) ...) body...)` and named let,
// `(let loop ((n e) ...) body...)`, which desugars to a letrec-bound
// local procedure immediately applied to the initial values.
func evalLet(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed let")
	}

	if name, ok := args[0].(value.Symbol); ok {
		if len(args) < 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed named let")
		}
		names, exprs, err := bindingPairs(args[1])
		if err != nil {
			return nil, err
		}
		initVals := make([]value.Value, len(exprs))
		for i, e := range exprs {
			v, err := ev.Eval(e, env)
			if err != nil {
				return nil, err
			}
			initVals[i] = v
		}
		loopEnv := env.ExtendEmpty()
		proc := &value.LambdaProcedure{
			Name:   string(name),
			Params: value.ParamList{Required: names},
			Body:   args[2:],
			Env:    loopEnv,
		}
		loopEnv.Define(name, proc)
		return ev.ApplyTail(proc, initVals, env)
	}

	names, exprs, err := bindingPairs(args[0])
	if err != nil {
		return nil, err
	}
	vals := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := ev.Eval(e, env)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	callEnv, err := env.Extend(value.ParamList{Required: names}, vals)
	if err != nil {
		return nil, err
	}
	return ev.evalBodyTail(args[1:], callEnv)
}

func evalLetStar(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed let*")
	}
	names, exprs, err := bindingPairs(args[0])
	if err != nil {
		return nil, err
	}
	cur := env
	for i := range names {
		v, err := ev.Eval(exprs[i], cur)
		if err != nil {
			return nil, err
		}
		next := cur.ExtendEmpty()
		next.Define(names[i], v)
		cur = next
	}
	return ev.evalBodyTail(args[1:], cur)
}

// evalLetrec binds every name to an unspecified placeholder before
// evaluating any initializer, so initializers (typically lambdas) can
// refer to each other and to themselves.
func evalLetrec(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed letrec")
	}
	names, exprs, err := bindingPairs(args[0])
	if err != nil {
		return nil, err
	}
	letrecEnv := env.ExtendEmpty()
	for _, n := range names {
		letrecEnv.Define(n, value.Unspecified)
	}
	for i, n := range names {
		v, err := ev.Eval(exprs[i], letrecEnv)
		if err != nil {
			return nil, err
		}
		letrecEnv.Define(n, v)
	}
	return ev.evalBodyTail(args[1:], letrecEnv)
}

func evalLambda(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed lambda")
	}
	params, err := value.ParseParamList(args[0])
	if err != nil {
		return nil, err
	}
	return &value.LambdaProcedure{Params: params, Body: args[1:], Env: env}, nil
}

func evalDlambda(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed dlambda")
	}
	params, err := value.ParseParamList(args[0])
	if err != nil {
		return nil, err
	}
	return &value.DynamicLambdaProcedure{Params: params, Body: args[1:]}, nil
}

// evalDefine handles both `(define name expr)` and the procedure-sugar
// `(define (name . params) body...)`, equivalent to
// `(define name (lambda params body...))`.
func evalDefine(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed define")
	}

	if sig, ok := args[0].(*value.Pair); ok {
		nameSym, ok := sig.First.(value.Symbol)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "define target name is not a symbol")
		}
		params, err := value.ParseParamList(sig.Rest)
		if err != nil {
			return nil, err
		}
		proc := &value.LambdaProcedure{Name: string(nameSym), Params: params, Body: args[1:], Env: env}
		env.Define(nameSym, proc)
		return value.Symbol(nameSym), nil
	}

	nameSym, ok := args[0].(value.Symbol)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "define target is not a symbol")
	}
	if len(args) != 2 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "define requires exactly one value expression")
	}
	v, err := ev.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if proc, ok := v.(*value.LambdaProcedure); ok && proc.Name == "" {
		proc.Name = string(nameSym)
	}
	env.Define(nameSym, v)
	return nameSym, nil
}

func evalSet(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) != 2 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed set!")
	}
	nameSym, ok := args[0].(value.Symbol)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "set! target is not a symbol")
	}
	v, err := ev.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(nameSym, v); err != nil {
		return nil, err
	}
	return value.Unspecified, nil
}

func evalUnquoteOutsideQuasiquote(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "unquote used outside quasiquote")
}

func evalDefineMacro(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) < 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "malformed define-macro")
	}
	sig, ok := args[0].(*value.Pair)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "define-macro requires a (name . params) signature")
	}
	nameSym, ok := sig.First.(value.Symbol)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "macro name is not a symbol")
	}
	params, err := value.ParseParamList(sig.Rest)
	if err != nil {
		return nil, err
	}
	macro := &value.MacroProcedure{Name: string(nameSym), Params: params, Body: args[1:], Env: env}
	env.Define(nameSym, macro)
	return value.Symbol(nameSym), nil
}

func evalDelay(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) != 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "delay requires exactly one operand")
	}
	return value.NewPromise(args[0], env), nil
}

// evalConsStream is `(cons-stream a b)`, sugar for
// `(cons a (delay b))` that avoids evaluating b eagerly.
func evalConsStream(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) != 2 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "cons-stream requires exactly two operands")
	}
	head, err := ev.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	return value.NewPair(head, value.NewPromise(args[1], env)), nil
}
