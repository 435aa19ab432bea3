package builtins

import (
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func (r *registry) force(v value.Value) (value.Value, error) {
	p, ok := v.(*value.Promise)
	if !ok {
		return v, nil
	}
	return r.ev.Force(p)
}

func (r *registry) registerHigherOrder(env *value.Environment) {
	defineNeedsEnv(env, "apply", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) < 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "apply: requires a procedure and at least one list argument")
		}
		proc := args[0]
		last := args[len(args)-1]
		tail, ok := value.ToSlice(last)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "apply: last argument is not a proper list: %s", value.Write(last))
		}
		callArgs := append([]value.Value{}, args[1:len(args)-1]...)
		callArgs = append(callArgs, tail...)
		return r.ev.Apply(proc, callArgs, env)
	})

	defineNeedsEnv(env, "eval", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "eval: requires exactly one argument")
		}
		return r.ev.Eval(args[0], env)
	})

	defineNeedsEnv(env, "map", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) < 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "map: requires a procedure and at least one list")
		}
		proc := args[0]
		lists := make([][]value.Value, len(args)-1)
		minLen := -1
		for i, l := range args[1:] {
			elems, ok := value.ToSlice(l)
			if !ok {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "map: not a proper list: %s", value.Write(l))
			}
			lists[i] = elems
			if minLen == -1 || len(elems) < minLen {
				minLen = len(elems)
			}
		}
		results := make([]value.Value, minLen)
		for i := 0; i < minLen; i++ {
			callArgs := make([]value.Value, len(lists))
			for j, l := range lists {
				callArgs[j] = l[i]
			}
			v, err := r.ev.Apply(proc, callArgs, env)
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return value.List(results...), nil
	})

	defineNeedsEnv(env, "filter", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "filter: requires a predicate and a list")
		}
		elems, ok := value.ToSlice(args[1])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "filter: not a proper list: %s", value.Write(args[1]))
		}
		var kept []value.Value
		for _, e := range elems {
			v, err := r.ev.Apply(args[0], []value.Value{e}, env)
			if err != nil {
				return nil, err
			}
			if value.Truthy(v) {
				kept = append(kept, e)
			}
		}
		return value.List(kept...), nil
	})

	defineNeedsEnv(env, "reduce", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 3 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "reduce: requires a procedure, an initial value and a list")
		}
		elems, ok := value.ToSlice(args[2])
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "reduce: not a proper list: %s", value.Write(args[2]))
		}
		acc := args[1]
		for _, e := range elems {
			v, err := r.ev.Apply(args[0], []value.Value{acc, e}, env)
			if err != nil {
				return nil, err
			}
			acc = v
		}
		return acc, nil
	})

	define(env, "force", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "force: requires exactly one argument")
		}
		p, ok := args[0].(*value.Promise)
		if !ok {
			return args[0], nil
		}
		return r.ev.Force(p)
	})

	r.registerStreams(env)
}

func (r *registry) registerStreams(env *value.Environment) {
	define(env, "stream-car", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		p, err := r.requireStreamPair("stream-car", args)
		if err != nil {
			return nil, err
		}
		return p.First, nil
	})

	define(env, "stream-cdr", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		p, err := r.requireStreamPair("stream-cdr", args)
		if err != nil {
			return nil, err
		}
		return r.force(p.Rest)
	})

	define(env, "stream-null?", unaryPredicate("stream-null?", func(v value.Value) bool {
		_, ok := v.(value.EmptyListValue)
		return ok
	}))

	define(env, "stream-pair?", unaryPredicate("stream-pair?", func(v value.Value) bool {
		p, ok := v.(*value.Pair)
		return ok && value.IsStreamPair(p)
	}))

	define(env, "stream-ref", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "stream-ref: requires a stream and an index")
		}
		n, ok := args[1].(value.Integer)
		if !ok || n < 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "stream-ref: index must be a non-negative integer")
		}
		s := args[0]
		for i := int64(0); i < int64(n); i++ {
			p, err := r.requireStreamPair("stream-ref", []value.Value{s})
			if err != nil {
				return nil, err
			}
			s, err = r.force(p.Rest)
			if err != nil {
				return nil, err
			}
		}
		p, err := r.requireStreamPair("stream-ref", []value.Value{s})
		if err != nil {
			return nil, err
		}
		return p.First, nil
	})

	defineNeedsEnv(env, "stream-map", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "stream-map: requires a procedure and a stream")
		}
		return r.streamMap(args[0], args[1], env)
	})

	defineNeedsEnv(env, "stream-filter", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 2 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "stream-filter: requires a predicate and a stream")
		}
		return r.streamFilter(args[0], args[1], env)
	})

	defineNeedsEnv(env, "stream-reduce", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 3 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "stream-reduce: requires a procedure, an initial value and a stream")
		}
		return r.streamReduce(args[0], args[1], args[2], env)
	})
}

// streamReduce walks a (possibly infinite, in which case the caller must
// supply a predicate-bounded stream) stream via Force rather than
// flattening it to a slice first, the way reduce does for proper lists.
func (r *registry) streamReduce(proc, acc, s value.Value, env *value.Environment) (value.Value, error) {
	cur := s
	for {
		if _, empty := cur.(value.EmptyListValue); empty {
			return acc, nil
		}
		p, ok := cur.(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "stream-reduce: not a stream: %s", value.Write(cur))
		}
		v, err := r.ev.Apply(proc, []value.Value{acc, p.First}, env)
		if err != nil {
			return nil, err
		}
		acc = v
		forced, err := r.force(p.Rest)
		if err != nil {
			return nil, err
		}
		cur = forced
	}
}

func (r *registry) requireStreamPair(name string, args []value.Value) (*value.Pair, error) {
	if len(args) != 1 {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "%s: requires exactly one argument", name)
	}
	p, ok := args[0].(*value.Pair)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "%s: not a stream pair: %s", name, value.Write(args[0]))
	}
	return p, nil
}

// streamMap computes one element eagerly (the head, via proc applied to
// the stream's car) and wraps the recursive call over the rest in a
// host promise, so an infinite stream maps to another infinite stream
// without ever looping.
func (r *registry) streamMap(proc, s value.Value, env *value.Environment) (value.Value, error) {
	if _, empty := s.(value.EmptyListValue); empty {
		return value.EmptyList, nil
	}
	p, ok := s.(*value.Pair)
	if !ok {
		return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "stream-map: not a stream: %s", value.Write(s))
	}
	head, err := r.ev.Apply(proc, []value.Value{p.First}, env)
	if err != nil {
		return nil, err
	}
	rest := p.Rest
	tail := value.NewHostPromise(func() (value.Value, error) {
		forced, err := r.force(rest)
		if err != nil {
			return nil, err
		}
		return r.streamMap(proc, forced, env)
	})
	return value.NewPair(head, tail), nil
}

// streamFilter skips leading elements that fail pred eagerly (which may
// involve forcing several tail promises before the first keeper or the
// stream's end), then wraps the filtering of the rest in a host
// promise, so that work is deferred to the first stream-cdr that needs
// it.
func (r *registry) streamFilter(pred, s value.Value, env *value.Environment) (value.Value, error) {
	cur := s
	for {
		if _, empty := cur.(value.EmptyListValue); empty {
			return value.EmptyList, nil
		}
		p, ok := cur.(*value.Pair)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "stream-filter: not a stream: %s", value.Write(cur))
		}
		keep, err := r.ev.Apply(pred, []value.Value{p.First}, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(keep) {
			rest := p.Rest
			tail := value.NewHostPromise(func() (value.Value, error) {
				forced, err := r.force(rest)
				if err != nil {
					return nil, err
				}
				return r.streamFilter(pred, forced, env)
			})
			return value.NewPair(p.First, tail), nil
		}
		forced, err := r.force(p.Rest)
		if err != nil {
			return nil, err
		}
		cur = forced
	}
}
