package value

import "testing"

func TestTruthy(t *testing.T) {
	if Truthy(Boolean(false)) {
		t.Error("Boolean(false) should be falsy")
	}
	cases := []Value{Boolean(true), Integer(0), String(""), EmptyList, Unspecified}
	for _, c := range cases {
		if !Truthy(c) {
			t.Errorf("%#v should be truthy", c)
		}
	}
}

func TestIsAtom(t *testing.T) {
	if IsAtom(NewPair(Integer(1), EmptyList)) {
		t.Error("a pair should not be an atom")
	}
	if !IsAtom(Integer(1)) {
		t.Error("an integer should be an atom")
	}
}

func TestListAndToSlice(t *testing.T) {
	l := List(Integer(1), Integer(2), Integer(3))
	elems, ok := ToSlice(l)
	if !ok {
		t.Fatal("expected a proper list")
	}
	if len(elems) != 3 || elems[0] != Integer(1) || elems[2] != Integer(3) {
		t.Errorf("got %#v", elems)
	}
}

func TestToSliceImproperList(t *testing.T) {
	l := NewPair(Integer(1), Integer(2))
	if _, ok := ToSlice(l); ok {
		t.Error("a dotted pair should not flatten as a proper list")
	}
}

func TestLength(t *testing.T) {
	n, ok := Length(List(Integer(1), Integer(2)))
	if !ok || n != 2 {
		t.Errorf("got (%d, %v), want (2, true)", n, ok)
	}
}

func TestScmValidCdr(t *testing.T) {
	if !ScmValidCdr(EmptyList) {
		t.Error("EmptyList should be a valid cdr")
	}
	if !ScmValidCdr(NewPair(Integer(1), EmptyList)) {
		t.Error("a Pair should be a valid cdr")
	}
	if ScmValidCdr(Integer(5)) {
		t.Error("an Integer should not be a valid cdr")
	}
}

func TestAppend(t *testing.T) {
	a := List(Integer(1), Integer(2))
	b := List(Integer(3))
	result, ok := Append(a, b)
	if !ok {
		t.Fatal("append of two proper lists should succeed")
	}
	elems, _ := ToSlice(result)
	if len(elems) != 3 {
		t.Fatalf("got %#v", elems)
	}

	// Mutating the result must not alias a's original spine.
	if p, ok := result.(*Pair); ok {
		p.First = Integer(99)
	}
	firstOfA, _ := ToSlice(a)
	if firstOfA[0] != Integer(1) {
		t.Error("append must copy a's spine, not alias it")
	}
}

func TestParseParamListBareSymbol(t *testing.T) {
	pl, err := ParseParamList(Symbol("args"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pl.Rest == nil || *pl.Rest != "args" || len(pl.Required) != 0 {
		t.Errorf("got %#v", pl)
	}
}

func TestParseParamListProperList(t *testing.T) {
	pl, err := ParseParamList(List(Symbol("a"), Symbol("b")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pl.Required) != 2 || pl.Rest != nil {
		t.Errorf("got %#v", pl)
	}
}

func TestParseParamListDotted(t *testing.T) {
	pl, err := ParseParamList(NewPair(Symbol("a"), Symbol("rest")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pl.Required) != 1 || pl.Required[0] != "a" || pl.Rest == nil || *pl.Rest != "rest" {
		t.Errorf("got %#v", pl)
	}
}

func TestParseParamListDuplicate(t *testing.T) {
	_, err := ParseParamList(List(Symbol("a"), Symbol("a")))
	if err == nil {
		t.Error("expected an error for a duplicate parameter name")
	}
}

func TestEnvironmentLookupAndShadow(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("x", Integer(1))
	child := global.ExtendEmpty()
	child.Define("x", Integer(2))

	v, err := child.Lookup("x")
	if err != nil || v != Integer(2) {
		t.Errorf("got (%v, %v), want (2, nil)", v, err)
	}
	v, err = global.Lookup("x")
	if err != nil || v != Integer(1) {
		t.Errorf("parent binding should be unaffected by child shadowing, got (%v, %v)", v, err)
	}
}

func TestEnvironmentSetMutatesDefiningFrame(t *testing.T) {
	global := NewGlobalEnvironment()
	global.Define("x", Integer(1))
	child := global.ExtendEmpty()

	if err := child.Set("x", Integer(42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := global.Lookup("x")
	if v != Integer(42) {
		t.Errorf("set! through a child frame should mutate the defining frame, got %v", v)
	}
}

func TestEnvironmentSetUnboundFails(t *testing.T) {
	env := NewGlobalEnvironment()
	if err := env.Set("never-defined", Integer(1)); err == nil {
		t.Error("set! on an unbound variable should fail")
	}
}

func TestEnvironmentLookupUnboundFails(t *testing.T) {
	env := NewGlobalEnvironment()
	if _, err := env.Lookup("never-defined"); err == nil {
		t.Error("lookup of an unbound variable should fail")
	}
}
