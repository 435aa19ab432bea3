package builtins

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// registerGensym installs `gensym`, used by define-macro bodies to mint
// a fresh symbol guaranteed not to collide with anything the macro's
// caller wrote, avoiding variable capture in expansions that introduce
// their own local bindings.
func (r *registry) registerGensym(env *value.Environment) {
	define(env, "gensym", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		prefix := "g"
		if len(args) == 1 {
			if s, ok := args[0].(value.Symbol); ok {
				prefix = string(s)
			} else if s, ok := args[0].(value.String); ok {
				prefix = string(s)
			}
		}
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		return value.Symbol(prefix + "-" + id[:12]), nil
	})
}
