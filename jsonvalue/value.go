// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package jsonvalue provides an immutable representation of JSON
// documents.
//
// A Value is one of null, a boolean, a number, a string, an array of
// values, or an object mapping string keys to values.  The zero Value
// is null.  Values cannot be changed once built: methods such as Set
// and InsertAt return a new Value, sharing whatever parts of the
// original were not touched.  Values can therefore be passed around
// and retained freely, and a failed multi-step update never needs to
// be rolled back.
//
// Numbers keep the literal text they were parsed from, so an integer
// stays an integer and large values are not rounded through float64.
// Objects keep their keys in insertion order for output, but compare
// equal regardless of key order.
package jsonvalue

import (
	"fmt"
	"strconv"
)

// Kind identifies which of the JSON types a Value holds.
type Kind int

const (
	// NullKind is the kind of JSON null, and of the zero Value.
	NullKind Kind = iota

	// BoolKind is the kind of true and false.
	BoolKind

	// NumberKind is the kind of JSON numbers.
	NumberKind

	// StringKind is the kind of JSON strings.
	StringKind

	// ArrayKind is the kind of JSON arrays.
	ArrayKind

	// ObjectKind is the kind of JSON objects.
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a single key-value pair in an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value.
type Value struct {
	kind Kind
	b    bool
	// s holds string contents, or the literal text of a number
	s       string
	items   []Value
	members []Member
}

// Null returns the JSON null value.  This is the same as the zero
// Value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: StringKind, s: s}
}

// Int returns a JSON number holding an integer.
func Int(i int64) Value {
	return Value{kind: NumberKind, s: strconv.FormatInt(i, 10)}
}

// Float returns a JSON number holding f, in the shortest text that
// round-trips.  NaN and infinities are not representable in JSON and
// produce null.
func Float(f float64) Value {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !isNumber(text) {
		return Null()
	}
	return Value{kind: NumberKind, s: text}
}

// NumberLiteral returns a JSON number with exactly the given text,
// which must follow the JSON number grammar.
func NumberLiteral(text string) (Value, error) {
	if !isNumber(text) {
		return Value{}, fmt.Errorf("invalid JSON number %q", text)
	}
	return Value{kind: NumberKind, s: text}, nil
}

// Array returns a JSON array holding items.  The slice is copied.
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: ArrayKind, items: copied}
}

// Object returns a JSON object holding members, in order.  If a key
// is repeated, the last value wins, but the key keeps the position of
// its first appearance.
func Object(members ...Member) Value {
	result := make([]Member, 0, len(members))
	for _, m := range members {
		if i := indexOf(result, m.Key); i >= 0 {
			result[i].Value = m.Value
			continue
		}
		result = append(result, m)
	}
	return Value{kind: ObjectKind, members: result}
}

// Kind returns the kind of value this is.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true if this is JSON null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// AsBool returns the value of a boolean.  The second return is false
// if v is not a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// AsString returns the contents of a string.  The second return is
// false if v is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.s, true
}

// NumberText returns the literal text of a number.  The second return
// is false if v is not a number.
func (v Value) NumberText() (string, bool) {
	if v.kind != NumberKind {
		return "", false
	}
	return v.s, true
}

// Len returns the number of elements of an array or members of an
// object, and 0 for anything else.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.items)
	case ObjectKind:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i'th element of an array.  The second return is
// false if v is not an array or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Elements returns a copy of the elements of an array, or nil if v
// is not an array.
func (v Value) Elements() []Value {
	if v.kind != ArrayKind {
		return nil
	}
	result := make([]Value, len(v.items))
	copy(result, v.items)
	return result
}

// Get returns the value of an object member.  The second return is
// false if v is not an object or has no member with that key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	if i := indexOf(v.members, key); i >= 0 {
		return v.members[i].Value, true
	}
	return Value{}, false
}

// Has returns true if v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the keys of an object in order, or nil if v is not an
// object.
func (v Value) Keys() []string {
	if v.kind != ObjectKind {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members of an object, in order, or
// nil if v is not an object.
func (v Value) Members() []Member {
	if v.kind != ObjectKind {
		return nil
	}
	result := make([]Member, len(v.members))
	copy(result, v.members)
	return result
}

func indexOf(members []Member, key string) int {
	for i, m := range members {
		if m.Key == key {
			return i
		}
	}
	return -1
}
