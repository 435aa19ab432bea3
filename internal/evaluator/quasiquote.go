package evaluator

import (
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// evalQuasiquote implements `expr, walking expr and replacing ,x with
// the value of x and ,@x with the spliced-in elements of x, both only
// at nesting depth 1. A nested quasiquote increases depth; a nested
// unquote/unquote-splicing decreases it, so doubly-nested quasiquote
// forms pass their own unquotes through untouched, to be resolved by
// the outer quasiquote's own evaluation.
func evalQuasiquote(ev *Evaluator, operands value.Value, env *value.Environment) (value.Value, error) {
	args, err := operandSlice(operands)
	if err != nil || len(args) != 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "quasiquote requires exactly one operand")
	}
	return quasiExpand(ev, args[0], env, 1)
}

func formHead(v value.Value) (value.Symbol, []value.Value, bool) {
	p, ok := v.(*value.Pair)
	if !ok {
		return "", nil, false
	}
	sym, ok := p.First.(value.Symbol)
	if !ok {
		return "", nil, false
	}
	rest, ok := value.ToSlice(p.Rest)
	if !ok {
		return "", nil, false
	}
	return sym, rest, true
}

func quasiExpand(ev *Evaluator, expr value.Value, env *value.Environment, depth int) (value.Value, error) {
	if sym, args, ok := formHead(expr); ok && len(args) == 1 {
		switch sym {
		case "unquote":
			if depth == 1 {
				return ev.Eval(args[0], env)
			}
			inner, err := quasiExpand(ev, args[0], env, depth-1)
			if err != nil {
				return nil, err
			}
			return value.List(value.Symbol("unquote"), inner), nil
		case "quasiquote":
			inner, err := quasiExpand(ev, args[0], env, depth+1)
			if err != nil {
				return nil, err
			}
			return value.List(value.Symbol("quasiquote"), inner), nil
		}
	}

	p, ok := expr.(*value.Pair)
	if !ok {
		return expr, nil
	}

	if sym, args, ok := formHead(p); ok && sym == "unquote-splicing" && len(args) == 1 {
		if depth == 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrMalformedForm, "unquote-splicing not valid in this context")
		}
		inner, err := quasiExpand(ev, args[0], env, depth-1)
		if err != nil {
			return nil, err
		}
		return value.List(value.Symbol("unquote-splicing"), inner), nil
	}

	if headSym, headArgs, ok := formHead(p.First); ok && headSym == "unquote-splicing" && len(headArgs) == 1 && depth == 1 {
		spliced, err := ev.Eval(headArgs[0], env)
		if err != nil {
			return nil, err
		}
		restExpanded, err := quasiExpand(ev, p.Rest, env, depth)
		if err != nil {
			return nil, err
		}
		result, ok := value.Append(spliced, restExpanded)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "unquote-splicing value is not a proper list")
		}
		return result, nil
	}

	first, err := quasiExpand(ev, p.First, env, depth)
	if err != nil {
		return nil, err
	}
	rest, err := quasiExpand(ev, p.Rest, env, depth)
	if err != nil {
		return nil, err
	}
	return value.NewPair(first, rest), nil
}
