package value

// Pair is a mutable cons cell. Rest is ordinarily a *Pair or EmptyList
// for a proper list, or a *Promise for a stream tail (a stream pair);
// an improper (dotted) list may hold any value in Rest, since that
// looser shape is what the parser's dotted-pair grammar produces, and
// it is only `set-cdr!`/`scheme-valid-cdr?` that enforce the narrower
// Pair/EmptyList/Promise invariant.
type Pair struct {
	First Value
	Rest  Value
}

func (*Pair) isValue() {}

// NewPair conses first onto rest.
func NewPair(first, rest Value) *Pair {
	return &Pair{First: first, Rest: rest}
}

// List builds a proper list from a slice of values.
func List(vs ...Value) Value {
	var result Value = EmptyList
	for i := len(vs) - 1; i >= 0; i-- {
		result = NewPair(vs[i], result)
	}
	return result
}

// IsProperList reports whether v is a finite Pair chain ending in
// EmptyList.
func IsProperList(v Value) bool {
	for {
		switch t := v.(type) {
		case EmptyListValue:
			return true
		case *Pair:
			v = t.Rest
		default:
			return false
		}
	}
}

// IsStreamPair reports whether p's Rest slot holds a Promise rather than
// a Pair or EmptyList.
func IsStreamPair(p *Pair) bool {
	_, ok := p.Rest.(*Promise)
	return ok
}

// ToSlice flattens a proper list into a Go slice. ok is false if v is not
// a proper list.
func ToSlice(v Value) (vs []Value, ok bool) {
	for {
		switch t := v.(type) {
		case EmptyListValue:
			return vs, true
		case *Pair:
			vs = append(vs, t.First)
			v = t.Rest
		default:
			return vs, false
		}
	}
}

// Length returns the number of elements in a proper list. ok is false if
// v is not a proper list.
func Length(v Value) (n int, ok bool) {
	for {
		switch t := v.(type) {
		case EmptyListValue:
			return n, true
		case *Pair:
			n++
			v = t.Rest
		default:
			return n, false
		}
	}
}

// ScmValidCdr reports whether v is a value that `set-cdr!` is allowed to
// install into the Rest slot: a Pair, the empty list, or a Promise.
func ScmValidCdr(v Value) bool {
	switch v.(type) {
	case *Pair, EmptyListValue, *Promise:
		return true
	default:
		return false
	}
}

// Append concatenates proper lists a and b, copying a's spine so that
// mutating the result's a-derived cells never aliases the original list.
func Append(a, b Value) (Value, bool) {
	elems, ok := ToSlice(a)
	if !ok {
		return nil, false
	}
	result := b
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewPair(elems[i], result)
	}
	return result, true
}
