package evaluator

import "github.com/tinyscm-go/tinyscm/internal/value"

// Force evaluates p's suspended expression (or invokes its host thunk)
// on first call and caches the result; subsequent calls return the
// cached value without re-running any side effect.
func (ev *Evaluator) Force(p *value.Promise) (value.Value, error) {
	if p.Forced {
		return p.Cached, nil
	}
	var v value.Value
	var err error
	if p.Thunk != nil {
		v, err = p.Thunk()
	} else {
		v, err = ev.Eval(p.Expr, p.Env)
	}
	if err != nil {
		return nil, err
	}
	p.Forced = true
	p.Cached = v
	return v, nil
}
