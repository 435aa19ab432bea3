package value

// Promise is a suspended expression plus the environment it closes
// over; `force` evaluates it and yields a value. Its identity is
// preserved across force: forcing never replaces the Promise value
// itself, only its cached result.
//
// Memoization is not required by every Scheme dialect, but this
// implementation memoizes, since repeated forcing re-doing the same
// (possibly expensive, possibly side-effecting-once) work is the
// surprising behavior, not the helpful one, and SICP-style stream code
// is written assuming it.
//
// Thunk is an alternative to Expr/Env for promises built directly by a
// host-implemented primitive (stream-map, stream-filter) rather than by
// the `delay`/`cons-stream` special forms; exactly one of Thunk or Expr
// is set.
type Promise struct {
	Expr   Value
	Env    *Environment
	Thunk  func() (Value, error)
	Forced bool
	Cached Value
}

func (*Promise) isValue() {}

// NewPromise wraps expr/env as an unforced Promise.
func NewPromise(expr Value, env *Environment) *Promise {
	return &Promise{Expr: expr, Env: env}
}

// NewHostPromise wraps a Go thunk as an unforced Promise.
func NewHostPromise(thunk func() (Value, error)) *Promise {
	return &Promise{Thunk: thunk}
}

// TailPromise is the trampoline's internal continuation: a deferred
// (expr, env) pair produced when eval is called in tail position. It
// must never escape to user-visible data. The evaluator's Eval, Apply
// and Force loop until a non-TailPromise value is produced; ApplyTail
// may hand one back to its caller inside the evaluator.
type TailPromise struct {
	Expr Value
	Env  *Environment
}

func (*TailPromise) isValue() {}
