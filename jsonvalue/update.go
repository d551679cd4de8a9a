// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

// This file contains the copy-on-write updates.  Each returns a new
// Value; the receiver is never changed.  Updates that do not apply
// (wrong kind, index out of range) return the receiver unchanged and
// false.

// SetIndex returns a copy of an array with element i replaced by x.
func (v Value) SetIndex(i int, x Value) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.items) {
		return v, false
	}
	items := make([]Value, len(v.items))
	copy(items, v.items)
	items[i] = x
	return Value{kind: ArrayKind, items: items}, true
}

// InsertAt returns a copy of an array with x inserted before element
// i, shifting later elements right.  i may be equal to the length of
// the array, in which case x is appended.
func (v Value) InsertAt(i int, x Value) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i > len(v.items) {
		return v, false
	}
	items := make([]Value, 0, len(v.items)+1)
	items = append(items, v.items[:i]...)
	items = append(items, x)
	items = append(items, v.items[i:]...)
	return Value{kind: ArrayKind, items: items}, true
}

// Append returns a copy of an array with x added at the end.
func (v Value) Append(x Value) (Value, bool) {
	return v.InsertAt(len(v.items), x)
}

// RemoveAt returns a copy of an array without element i.
func (v Value) RemoveAt(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.items) {
		return v, false
	}
	items := make([]Value, 0, len(v.items)-1)
	items = append(items, v.items[:i]...)
	items = append(items, v.items[i+1:]...)
	return Value{kind: ArrayKind, items: items}, true
}

// Set returns a copy of an object with key bound to x.  An existing
// key keeps its position; a new key goes at the end.
func (v Value) Set(key string, x Value) (Value, bool) {
	if v.kind != ObjectKind {
		return v, false
	}
	i := indexOf(v.members, key)
	if i >= 0 {
		members := make([]Member, len(v.members))
		copy(members, v.members)
		members[i].Value = x
		return Value{kind: ObjectKind, members: members}, true
	}
	members := make([]Member, 0, len(v.members)+1)
	members = append(members, v.members...)
	members = append(members, Member{Key: key, Value: x})
	return Value{kind: ObjectKind, members: members}, true
}

// Delete returns a copy of an object without key.  The second return
// is false if v is not an object or does not have key.
func (v Value) Delete(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return v, false
	}
	i := indexOf(v.members, key)
	if i < 0 {
		return v, false
	}
	members := make([]Member, 0, len(v.members)-1)
	members = append(members, v.members[:i]...)
	members = append(members, v.members[i+1:]...)
	return Value{kind: ObjectKind, members: members}, true
}
