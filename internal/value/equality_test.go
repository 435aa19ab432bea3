package value

import "testing"

func TestEqOnAtoms(t *testing.T) {
	if !Eq(Integer(5), Integer(5)) {
		t.Error("equal integers should be Eq")
	}
	if !Eq(Symbol("foo"), Symbol("foo")) {
		t.Error("equal symbols should be Eq")
	}
	if Eq(Integer(5), Real(5)) {
		t.Error("an Integer and a Real should not be Eq even with the same magnitude")
	}
}

func TestEqOnPairsIsIdentity(t *testing.T) {
	a := NewPair(Integer(1), EmptyList)
	b := NewPair(Integer(1), EmptyList)
	if Eq(a, b) {
		t.Error("distinct pairs with equal contents should not be Eq")
	}
	if !Eq(a, a) {
		t.Error("a pair should be Eq to itself")
	}
}

func TestEqvNumericCrossType(t *testing.T) {
	if !Eqv(Integer(5), Real(5)) {
		t.Error("Eqv should compare Integer and Real by numeric value")
	}
	if Eqv(Integer(5), Real(5.5)) {
		t.Error("Eqv should not consider 5 and 5.5 equivalent")
	}
}

func TestEqualStructural(t *testing.T) {
	a := List(Integer(1), List(Integer(2), Integer(3)))
	b := List(Integer(1), List(Integer(2), Integer(3)))
	if !Equal(a, b) {
		t.Error("structurally identical lists should be Equal")
	}
	if Eq(a, b) {
		t.Error("distinct list spines should not be Eq")
	}

	c := List(Integer(1), List(Integer(2), Integer(4)))
	if Equal(a, c) {
		t.Error("lists differing in a nested element should not be Equal")
	}
}

func TestEqualDottedPairs(t *testing.T) {
	a := NewPair(Integer(1), Integer(2))
	b := NewPair(Integer(1), Integer(2))
	if !Equal(a, b) {
		t.Error("structurally identical dotted pairs should be Equal")
	}
}
