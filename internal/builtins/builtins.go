// Package builtins implements the primitive procedure library every
// top-level environment starts with: arithmetic, predicates, pair/list
// operations, I/O, file loading, higher-order procedures and streams.
package builtins

import (
	"io"

	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// registry bundles the collaborators a handful of primitives need beyond
// their own arguments: an Evaluator to call back into (apply, map,
// force) and a sink for display/print/newline output.
type registry struct {
	ev  *evaluator.Evaluator
	out io.Writer
}

// Register installs every primitive procedure into env. ev is used by
// primitives that call back into evaluation (apply, map, filter,
// reduce, eval, force); out receives display/displayln/print/
// print-then-return/newline output.
func Register(env *value.Environment, ev *evaluator.Evaluator, out io.Writer) {
	r := &registry{ev: ev, out: out}
	r.registerArithmetic(env)
	r.registerPredicates(env)
	r.registerPairs(env)
	r.registerIO(env)
	r.registerHigherOrder(env)
	r.registerGensym(env)
}

func define(env *value.Environment, name string, fn value.PrimitiveFn) {
	env.Define(value.Symbol(name), &value.PrimitiveProcedure{Name: name, Fn: fn})
}

func defineNeedsEnv(env *value.Environment, name string, fn value.PrimitiveFn) {
	env.Define(value.Symbol(name), &value.PrimitiveProcedure{Name: name, NeedsEnv: true, Fn: fn})
}
