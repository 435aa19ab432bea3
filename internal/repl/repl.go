// Package repl wires an input stream through the tokenizer, parser and
// evaluator, printing either evaluation results or parsed syntax, and
// containing errors to the top-level expression that raised them.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tinyscm-go/tinyscm/internal/config"
	"github.com/tinyscm-go/tinyscm/internal/diagnostics"
	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/parser"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

// REPL reads expressions from In, evaluates them against Env, and
// writes results (or, in AST mode, the parsed syntax) to Out.
type REPL struct {
	Env         *value.Environment
	Ev          *evaluator.Evaluator
	Out         io.Writer
	PrintAST    bool
	Interactive bool

	src *lineSource
	p   *parser.Parser
}

// New builds a REPL reading from in and writing to out. interactive
// controls whether prompts are printed at all, true for an attached
// terminal and false when stdin is a pipe or file redirect.
func New(env *value.Environment, ev *evaluator.Evaluator, in io.Reader, out io.Writer, interactive, printAST bool) *REPL {
	src := &lineSource{scanner: bufio.NewScanner(in), out: out, interactive: interactive, firstLine: true}
	warn := func(msg string) { fmt.Fprintln(out, "Warning:", msg) }
	return &REPL{
		Env:         env,
		Ev:          ev,
		Out:         out,
		PrintAST:    printAST,
		Interactive: interactive,
		src:         src,
		p:           parser.New(src, warn),
	}
}

// Run drives the read-eval-print loop until end of input, returning the
// process exit code: 0 on a clean EOF, 1 if any form along the way failed
// to parse or evaluate.
func (r *REPL) Run() int {
	hadError := false
	for {
		r.src.firstLine = true
		for {
			expr, err := r.p.Parse()
			if err != nil {
				if _, ok := err.(diagnostics.EndOfInput); ok {
					if r.Interactive {
						fmt.Fprintln(r.Out)
					}
					if hadError {
						return 1
					}
					return 0
				}
				fmt.Fprintln(r.Out, err.Error())
				hadError = true
				break
			}

			if r.PrintAST {
				fmt.Fprintln(r.Out, value.Write(expr))
			} else if !r.evalAndPrint(expr) {
				hadError = true
			}

			if r.p.IsBufferEmpty() {
				break
			}
		}
	}
}

// evalAndPrint evaluates and prints expr, returning false if evaluation
// raised an error (which it has already printed).
func (r *REPL) evalAndPrint(expr value.Value) bool {
	v, err := r.Ev.Eval(expr, r.Env)
	if err != nil {
		fmt.Fprintln(r.Out, err.Error())
		return false
	}
	if _, unspecified := v.(value.UnspecifiedValue); unspecified {
		return true
	}
	fmt.Fprintln(r.Out, value.Write(v))
	return true
}

// lineSource adapts a bufio.Scanner into a parser.LineSource, printing
// the primary prompt before the first line of a fresh batch of
// top-level forms and the continuation prompt before every line after
// that, matching how a partially-typed form should look on screen.
type lineSource struct {
	scanner     *bufio.Scanner
	out         io.Writer
	interactive bool
	firstLine   bool
}

func (s *lineSource) NextLine() (string, error) {
	if s.interactive {
		if s.firstLine {
			fmt.Fprint(s.out, config.Prompt)
		} else {
			fmt.Fprint(s.out, config.ContinuationPrompt)
		}
	}
	s.firstLine = false
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", diagnostics.EndOfInput{}
}
