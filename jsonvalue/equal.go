// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

// Equal returns true if a and b are structurally equal.  Arrays must
// have equal elements in the same order.  Objects must have the same
// set of keys with equal values, in any order.  Numbers are equal if
// they have the same decimal value, so 1, 1.0 and 10e-1 are all
// equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case StringKind:
		return a.s == b.s
	case NumberKind:
		return equalNumbers(a.s, b.s)
	case ArrayKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal returns true if v is structurally equal to other.  See the
// package-level Equal.
func (v Value) Equal(other Value) bool {
	return Equal(v, other)
}
