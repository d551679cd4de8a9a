// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package bridge

import (
	"math"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

// FieldKind is the JSON type a field holds.
type FieldKind int

const (
	// StringField holds a JSON string.
	StringField FieldKind = iota

	// IntField holds a JSON number with no fractional part.
	IntField

	// FloatField holds any JSON number.
	FloatField

	// BoolField holds true or false.
	BoolField
)

func (k FieldKind) String() string {
	switch k {
	case StringField:
		return "string"
	case IntField:
		return "integer"
	case FloatField:
		return "number"
	case BoolField:
		return "boolean"
	}
	return "unknown"
}

// Field describes one optional scalar field of a record type R.  A
// nil pointer in the record means the field has no value.
type Field[R any] struct {
	name string
	kind FieldKind

	// get returns the field's value, or false if it has none.
	get func(*R) (jsonvalue.Value, bool)

	// set stores a non-null value, or returns a conversion error.
	set func(*R, jsonvalue.Value) error

	// clear removes the field's value.
	clear func(*R)
}

// Name returns the JSON member name of the field.
func (f Field[R]) Name() string {
	return f.name
}

// Kind returns the JSON type of the field.
func (f Field[R]) Kind() FieldKind {
	return f.kind
}

func (f Field[R]) mismatch(got string) error {
	return patch.ErrConversion{Field: f.name, Want: f.kind.String(), Got: got}
}

// String declares a string field.  ptr returns the address of the
// field within a record.
func String[R any](name string, ptr func(*R) **string) Field[R] {
	f := Field[R]{name: name, kind: StringField}
	f.get = func(r *R) (jsonvalue.Value, bool) {
		p := *ptr(r)
		if p == nil {
			return jsonvalue.Value{}, false
		}
		return jsonvalue.String(*p), true
	}
	f.set = func(r *R, v jsonvalue.Value) error {
		s, ok := v.AsString()
		if !ok {
			return f.mismatch(v.Kind().String())
		}
		*ptr(r) = &s
		return nil
	}
	f.clear = func(r *R) { *ptr(r) = nil }
	return f
}

// Int64 declares an integer field.  Numbers written with a zero
// fraction or an exponent, such as 2.0 or 2e3, are accepted; numbers
// with a fractional part or outside the range of int64 are not.
func Int64[R any](name string, ptr func(*R) **int64) Field[R] {
	f := Field[R]{name: name, kind: IntField}
	f.get = func(r *R) (jsonvalue.Value, bool) {
		p := *ptr(r)
		if p == nil {
			return jsonvalue.Value{}, false
		}
		return jsonvalue.Int(*p), true
	}
	f.set = func(r *R, v jsonvalue.Value) error {
		i, err := f.integer(v)
		if err != nil {
			return err
		}
		*ptr(r) = &i
		return nil
	}
	f.clear = func(r *R) { *ptr(r) = nil }
	return f
}

// Int declares an integer field held in a Go int.
func Int[R any](name string, ptr func(*R) **int) Field[R] {
	f := Field[R]{name: name, kind: IntField}
	f.get = func(r *R) (jsonvalue.Value, bool) {
		p := *ptr(r)
		if p == nil {
			return jsonvalue.Value{}, false
		}
		return jsonvalue.Int(int64(*p)), true
	}
	f.set = func(r *R, v jsonvalue.Value) error {
		i64, err := f.integer(v)
		if err != nil {
			return err
		}
		if i64 < math.MinInt || i64 > math.MaxInt {
			return f.mismatch("out-of-range number")
		}
		i := int(i64)
		*ptr(r) = &i
		return nil
	}
	f.clear = func(r *R) { *ptr(r) = nil }
	return f
}

func (f Field[R]) integer(v jsonvalue.Value) (int64, error) {
	if v.Kind() != jsonvalue.NumberKind {
		return 0, f.mismatch(v.Kind().String())
	}
	i, ok := v.Int64()
	if ok {
		return i, nil
	}
	if v.IsIntegral() {
		return 0, f.mismatch("out-of-range number")
	}
	return 0, f.mismatch("fractional number")
}

// Float declares a floating-point field.
func Float[R any](name string, ptr func(*R) **float64) Field[R] {
	f := Field[R]{name: name, kind: FloatField}
	f.get = func(r *R) (jsonvalue.Value, bool) {
		p := *ptr(r)
		if p == nil {
			return jsonvalue.Value{}, false
		}
		v := jsonvalue.Float(*p)
		if v.IsNull() {
			// NaN and infinities have no JSON form
			return jsonvalue.Value{}, false
		}
		return v, true
	}
	f.set = func(r *R, v jsonvalue.Value) error {
		if v.Kind() != jsonvalue.NumberKind {
			return f.mismatch(v.Kind().String())
		}
		x, ok := v.Float64()
		if !ok {
			return f.mismatch("out-of-range number")
		}
		*ptr(r) = &x
		return nil
	}
	f.clear = func(r *R) { *ptr(r) = nil }
	return f
}

// Bool declares a boolean field.
func Bool[R any](name string, ptr func(*R) **bool) Field[R] {
	f := Field[R]{name: name, kind: BoolField}
	f.get = func(r *R) (jsonvalue.Value, bool) {
		p := *ptr(r)
		if p == nil {
			return jsonvalue.Value{}, false
		}
		return jsonvalue.Bool(*p), true
	}
	f.set = func(r *R, v jsonvalue.Value) error {
		b, ok := v.AsBool()
		if !ok {
			return f.mismatch(v.Kind().String())
		}
		*ptr(r) = &b
		return nil
	}
	f.clear = func(r *R) { *ptr(r) = nil }
	return f
}
