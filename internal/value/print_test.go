package value

import "testing"

func TestDisplayVsWriteStrings(t *testing.T) {
	if got := Display(String("hi")); got != "hi" {
		t.Errorf("Display(String) = %q, want %q", got, "hi")
	}
	if got := Write(String("hi")); got != `"hi"` {
		t.Errorf("Write(String) = %q, want %q", got, `"hi"`)
	}
}

func TestWriteBooleans(t *testing.T) {
	if Write(Boolean(true)) != "#t" {
		t.Errorf("got %q, want #t", Write(Boolean(true)))
	}
	if Write(Boolean(false)) != "#f" {
		t.Errorf("got %q, want #f", Write(Boolean(false)))
	}
}

func TestWriteUnspecifiedAndEmptyList(t *testing.T) {
	if Write(Unspecified) != "undefined" {
		t.Errorf("got %q, want undefined", Write(Unspecified))
	}
	if Write(EmptyList) != "()" {
		t.Errorf("got %q, want ()", Write(EmptyList))
	}
}

func TestWriteIntegerHasNoDecimalPoint(t *testing.T) {
	if got := Write(Integer(42)); got != "42" {
		t.Errorf("got %q, want 42", got)
	}
}

func TestWriteRealHasDecimalPoint(t *testing.T) {
	if got := Write(Real(3)); got != "3." {
		t.Errorf("got %q, want a trailing decimal point for an integer-valued real", got)
	}
}

func TestWriteProperList(t *testing.T) {
	l := List(Integer(1), Integer(2), Integer(3))
	if got := Write(l); got != "(1 2 3)" {
		t.Errorf("got %q, want (1 2 3)", got)
	}
}

func TestWriteDottedPair(t *testing.T) {
	p := NewPair(Integer(1), Integer(2))
	if got := Write(p); got != "(1 . 2)" {
		t.Errorf("got %q, want (1 . 2)", got)
	}
}
