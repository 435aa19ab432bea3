// Command tinyscm is the command-line front end for the interpreter: it
// parses flags, builds the global environment, optionally loads files,
// and drives the read-eval-print loop over stdin.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tinyscm-go/tinyscm/internal/builtins"
	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/repl"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

const version = "tinyscm 0.1.0"

type flags struct {
	load      bool
	ast       bool
	version   bool
	filenames []string
}

func parseFlags(args []string) flags {
	var f flags
	for _, a := range args {
		switch a {
		case "--load":
			f.load = true
		case "--ast":
			f.ast = true
		case "-v", "--version":
			f.version = true
		default:
			f.filenames = append(f.filenames, a)
		}
	}
	return f
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	f := parseFlags(args)
	if f.version {
		fmt.Println(version)
		return 0
	}

	env := value.NewGlobalEnvironment()
	ev := evaluator.New()
	builtins.Register(env, ev, os.Stdout)

	if f.load {
		for _, name := range f.filenames {
			if err := loadStartupFile(ev, env, name); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				return 1
			}
		}
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	r := repl.New(env, ev, os.Stdin, os.Stdout, interactive, f.ast)
	return r.Run()
}

func loadStartupFile(ev *evaluator.Evaluator, env *value.Environment, name string) error {
	return builtins.LoadFile(ev, env, name)
}
