package builtins_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tinyscm-go/tinyscm/internal/builtins"
	"github.com/tinyscm-go/tinyscm/internal/evaluator"
	"github.com/tinyscm-go/tinyscm/internal/value"
)

func TestLoadFindsFileWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.scm")
	if err := os.WriteFile(path, []byte("(define loaded-value 42)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := value.NewGlobalEnvironment()
	ev := evaluator.New()

	if err := builtins.LoadFile(ev, env, filepath.Join(dir, "defs")); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	v, err := env.Lookup(value.Symbol("loaded-value"))
	if err != nil {
		t.Fatalf("loaded-value should be bound after load: %v", err)
	}
	if v != value.Integer(42) {
		t.Errorf("got %v, want 42", value.Write(v))
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	env := value.NewGlobalEnvironment()
	ev := evaluator.New()
	if err := builtins.LoadFile(ev, env, filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("loading a nonexistent file should error")
	}
}

func TestLoadEvaluatesMultipleTopLevelForms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.scm")
	src := "(define a 1)\n(define b (+ a 1))\n(define c (+ b 1))\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	env, ev, _ := newEnv()
	if err := builtins.LoadFile(ev, env, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	v, err := env.Lookup(value.Symbol("c"))
	if err != nil || v != value.Integer(3) {
		t.Errorf("got (%v, %v), want (3, nil)", v, err)
	}
}
