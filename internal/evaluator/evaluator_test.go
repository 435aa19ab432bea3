package evaluator_test

import (
	"bytes"
	"testing"

	"github.com/tinyscm-go/tinyscm/internal/builtins"
	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/parser"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

type errEOF struct{}

func (errEOF) Error() string { return "end of input" }

func newEnv() (*value.Environment, *evaluator.Evaluator, *bytes.Buffer) {
	env := value.NewGlobalEnvironment()
	ev := evaluator.New()
	var out bytes.Buffer
	builtins.Register(env, ev, &out)
	return env, ev, &out
}

// evalSource parses and evaluates every top-level form in src in
// sequence, returning the value of the last one.
func evalSource(t *testing.T, ev *evaluator.Evaluator, env *value.Environment, src string) value.Value {
	t.Helper()
	p := parser.New(&stringLines{lines: splitForms(src)}, nil)
	var last value.Value = value.Unspecified
	for {
		expr, err := p.Parse()
		if err != nil {
			return last
		}
		v, err := ev.Eval(expr, env)
		if err != nil {
			t.Fatalf("eval error for %q: %v", src, err)
		}
		last = v
	}
}

// stringLines is a parser.LineSource over a fixed slice of lines.
type stringLines struct {
	lines []string
	pos   int
}

func (s *stringLines) NextLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", errEOF{}
	}
	l := s.lines[s.pos]
	s.pos++
	return l, nil
}

// splitForms cuts src wherever parenthesis depth returns to zero and
// hands each top-level form to the parser as one line of input; any
// trailing text after the last closing parenthesis (a bare symbol, say)
// becomes one more line.
func splitForms(src string) []string {
	var lines []string
	start := 0
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lines = append(lines, src[start:i+1])
				start = i + 1
			}
		}
	}
	if start < len(src) {
		rest := src[start:]
		if len(bytesTrim(rest)) > 0 {
			lines = append(lines, rest)
		}
	}
	return lines
}

func bytesTrim(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\n' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\n' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

func TestArithmeticAndTruthiness(t *testing.T) {
	env, ev, _ := newEnv()
	v := evalSource(t, ev, env, `(+ 1 2 3)`)
	if v != value.Integer(6) {
		t.Errorf("got %v, want 6", value.Write(v))
	}
	v = evalSource(t, ev, env, `(if (> 3 2) "yes" "no")`)
	if v != value.String("yes") {
		t.Errorf("got %v, want yes", value.Write(v))
	}
	v = evalSource(t, ev, env, `(if #f "yes" "no")`)
	if v != value.String("no") {
		t.Errorf("got %v, want no", value.Write(v))
	}
}

func TestClosureOverMutatedState(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define (make-counter)
	  (define n 0)
	  (lambda ()
	    (set! n (+ n 1))
	    n))
	(define c (make-counter))
	(c)
	(c)
	(c)
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(3) {
		t.Errorf("got %v, want 3", value.Write(v))
	}
}

func TestTailRecursionDoesNotOverflow(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define (loop n acc)
	  (if (= n 0) acc (loop (- n 1) (+ acc 1))))
	(loop 200000 0)
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(200000) {
		t.Errorf("got %v, want 200000", value.Write(v))
	}
}

func TestQuasiquoteNestedUnquote(t *testing.T) {
	env, ev, _ := newEnv()
	src := "(define x 5) `(a ,x (b ,(+ x 1)))"
	v := evalSource(t, ev, env, src)
	want := value.List(
		value.Symbol("a"),
		value.Integer(5),
		value.List(value.Symbol("b"), value.Integer(6)),
	)
	if !value.Equal(v, want) {
		t.Errorf("got %v, want %v", value.Write(v), value.Write(want))
	}
}

func TestDefineMacroWhen(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define-macro (my-when test . body)
	  (list (quote if) test (cons (quote begin) body) #f))
	(my-when (> 3 2) 1 2 3)
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(3) {
		t.Errorf("got %v, want 3", value.Write(v))
	}
}

func TestStreamIntsFrom(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define (ints-from n) (cons-stream n (ints-from (+ n 1))))
	(define s (ints-from 1))
	(stream-car (stream-cdr (stream-cdr s)))
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(3) {
		t.Errorf("got %v, want 3", value.Write(v))
	}
}

func TestDynamicLambdaScopesToCaller(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define y 100)
	(define f (dlambda () y))
	(define (call-it) (define y 1) (f))
	(call-it)
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(1) {
		t.Errorf("got %v, want 1 (dlambda should resolve y in the caller's environment)", value.Write(v))
	}
}

func TestLetStarSequentialScope(t *testing.T) {
	env, ev, _ := newEnv()
	v := evalSource(t, ev, env, `(let* ((a 1) (b (+ a 1))) (+ a b))`)
	if v != value.Integer(3) {
		t.Errorf("got %v, want 3", value.Write(v))
	}
}

func TestLetrecMutualRecursion(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
	         (odd? (lambda (n) (if (= n 0) #f (even? (- n 1))))))
	  (even? 10))
	`
	v := evalSource(t, ev, env, src)
	if v != value.Boolean(true) {
		t.Errorf("got %v, want #t", value.Write(v))
	}
}

func TestNamedLet(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(let loop ((i 0) (acc 0))
	  (if (= i 5) acc (loop (+ i 1) (+ acc i))))
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(10) {
		t.Errorf("got %v, want 10", value.Write(v))
	}
}

func TestCondElse(t *testing.T) {
	env, ev, _ := newEnv()
	v := evalSource(t, ev, env, `(cond (#f 1) (#f 2) (else 3))`)
	if v != value.Integer(3) {
		t.Errorf("got %v, want 3", value.Write(v))
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	env, ev, _ := newEnv()
	src := `
	(define calls 0)
	(define (bump) (set! calls (+ calls 1)) #t)
	(and #f (bump))
	calls
	`
	v := evalSource(t, ev, env, src)
	if v != value.Integer(0) {
		t.Errorf("and should short-circuit before evaluating (bump), got calls=%v", value.Write(v))
	}
}
