package builtins

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tinyscm-go/tinyscm/internal/config"
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/parser"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func (r *registry) registerIO(env *value.Environment) {
	define(env, "display", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "display: requires exactly one argument")
		}
		fmt.Fprint(r.out, value.Display(args[0]))
		return value.Unspecified, nil
	})

	define(env, "displayln", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "displayln: requires exactly one argument")
		}
		fmt.Fprintln(r.out, value.Display(args[0]))
		return value.Unspecified, nil
	})

	define(env, "newline", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 0 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "newline: requires no arguments")
		}
		fmt.Fprintln(r.out)
		return value.Unspecified, nil
	})

	define(env, "print", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "print: requires exactly one argument")
		}
		fmt.Fprintln(r.out, value.Write(args[0]))
		return value.Unspecified, nil
	})

	// print-then-return writes the read syntax of its argument and then
	// returns it unchanged, for dropping into the middle of an expression
	// to see an intermediate value pass through.
	define(env, "print-then-return", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "print-then-return: requires exactly one argument")
		}
		fmt.Fprintln(r.out, value.Write(args[0]))
		return args[0], nil
	})

	define(env, "error", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		msg := ""
		for i, a := range args {
			if i > 0 {
				msg += " "
			}
			msg += value.Display(a)
		}
		return nil, diagnostics.NewSchemeError(diagnostics.ErrUserError, "%s", msg)
	})

	define(env, "exit", func(args []value.Value, _ *value.Environment) (value.Value, error) {
		code := 0
		if len(args) == 1 {
			if i, ok := args[0].(value.Integer); ok {
				code = int(i)
			}
		}
		os.Exit(code)
		return value.Unspecified, nil
	})

	defineNeedsEnv(env, "load", func(args []value.Value, env *value.Environment) (value.Value, error) {
		if len(args) != 1 {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongArity, "load: requires exactly one argument")
		}
		name, ok := args[0].(value.String)
		if !ok {
			return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "load: not a string: %s", value.Write(args[0]))
		}
		return value.Unspecified, r.loadFile(string(name), env)
	})

	defineNeedsEnv(env, "load-all", func(args []value.Value, env *value.Environment) (value.Value, error) {
		for _, a := range args {
			name, ok := a.(value.String)
			if !ok {
				return nil, diagnostics.NewSchemeError(diagnostics.ErrWrongType, "load-all: not a string: %s", value.Write(a))
			}
			if err := r.loadFile(string(name), env); err != nil {
				return nil, err
			}
		}
		return value.Unspecified, nil
	})
}

// openSchemeFile mirrors the classic "try the bare name, then retry with
// .scm appended" behavior of `load`: a script can say (load "sieve")
// and find sieve.scm without spelling out the suffix.
func openSchemeFile(name string) (*os.File, error) {
	f, err := os.Open(name)
	if err == nil {
		return f, nil
	}
	f2, err2 := os.Open(name + config.ScmSuffix)
	if err2 == nil {
		return f2, nil
	}
	return nil, diagnostics.NewSchemeError(diagnostics.ErrUserError, "load: cannot open %q or %q", name, name+config.ScmSuffix)
}

// fileLineSource adapts a bufio.Scanner to parser.LineSource.
type fileLineSource struct {
	scanner *bufio.Scanner
}

func (s *fileLineSource) NextLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", diagnostics.EndOfInput{}
}

// LoadFile reads and evaluates name (or name+".scm") against env using
// ev, the same machinery the `load` primitive uses. Exported so the CLI
// front end can load startup files before the REPL begins.
func LoadFile(ev *evaluator.Evaluator, env *value.Environment, name string) error {
	r := &registry{ev: ev}
	return r.loadFile(name, env)
}

func (r *registry) loadFile(name string, env *value.Environment) error {
	f, err := openSchemeFile(name)
	if err != nil {
		return err
	}
	defer f.Close()

	p := parser.New(&fileLineSource{scanner: bufio.NewScanner(f)}, nil)
	for {
		expr, err := p.Parse()
		if err != nil {
			var eoi diagnostics.EndOfInput
			if asEndOfInput(err, &eoi) {
				return nil
			}
			return err
		}
		if _, err := r.ev.Eval(expr, env); err != nil {
			return err
		}
	}
}

func asEndOfInput(err error, target *diagnostics.EndOfInput) bool {
	eoi, ok := err.(diagnostics.EndOfInput)
	if ok {
		*target = eoi
	}
	return ok
}
