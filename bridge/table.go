// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package bridge converts typed records to and from JSON values.
//
// Each record type gets an explicit Table listing its fields, in
// output order, each with a name and a way to reach the field in a
// record.  Fields are optional scalars, held as pointers in the
// record:
//
//	var bookTable = bridge.NewTable(
//	    bridge.String("title", func(b *Book) **string { return &b.Title }),
//	    bridge.Int("edition", func(b *Book) **int { return &b.Edition }),
//	)
//
// Converting to a value omits fields that have no value rather than
// writing null.  Converting from a value ignores members that are not
// fields, unless the caller's Policy says otherwise, and treats a
// missing or null member as no value.  A member of the wrong type is
// always an error.
package bridge

import (
	"fmt"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

// Policy controls how strict a conversion from a JSON value is.  The
// zero Policy ignores unknown members.
type Policy struct {
	// RejectUnknown makes object members that are not fields of
	// the record an error.
	RejectUnknown bool
}

// Table is the field table for a record type R.
type Table[R any] struct {
	fields []Field[R]
	byName map[string]int
}

// NewTable creates a table from a list of fields.  It panics if two
// fields have the same name; tables are expected to be package-level
// variables.
func NewTable[R any](fields ...Field[R]) *Table[R] {
	t := &Table[R]{
		fields: make([]Field[R], len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	copy(t.fields, fields)
	for i, f := range fields {
		if _, dup := t.byName[f.name]; dup {
			panic(fmt.Sprintf("bridge: duplicate field %q", f.name))
		}
		t.byName[f.name] = i
	}
	return t
}

// Names returns the field names in table order.
func (t *Table[R]) Names() []string {
	names := make([]string, len(t.fields))
	for i, f := range t.fields {
		names[i] = f.name
	}
	return names
}

// Field finds a field by name.
func (t *Table[R]) Field(name string) (Field[R], bool) {
	i, ok := t.byName[name]
	if !ok {
		return Field[R]{}, false
	}
	return t.fields[i], true
}

// ToValue converts a record to a JSON object, with one member per
// field that has a value, in table order.
func (t *Table[R]) ToValue(rec R) jsonvalue.Value {
	members := make([]jsonvalue.Member, 0, len(t.fields))
	for _, f := range t.fields {
		if v, ok := f.get(&rec); ok {
			members = append(members, jsonvalue.Member{Key: f.name, Value: v})
		}
	}
	return jsonvalue.Object(members...)
}

// FromValue converts a JSON object to a record.  The value must be an
// object; otherwise this returns patch.ErrConversion.  Every field
// missing from the object or null in it has no value in the result.
func (t *Table[R]) FromValue(v jsonvalue.Value, policy Policy) (R, error) {
	var rec R
	if v.Kind() != jsonvalue.ObjectKind {
		return rec, patch.ErrConversion{Want: "object", Got: v.Kind().String()}
	}
	if policy.RejectUnknown {
		for _, key := range v.Keys() {
			if _, ok := t.byName[key]; !ok {
				return rec, patch.ErrUnknownField{Field: key}
			}
		}
	}
	for _, f := range t.fields {
		member, ok := v.Get(f.name)
		if !ok || member.IsNull() {
			f.clear(&rec)
			continue
		}
		if err := f.set(&rec, member); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// Copy converts a record to a value and back, producing a deep copy
// with no shared pointers.
func (t *Table[R]) Copy(rec R) R {
	// ToValue output is always an object with valid members, so
	// this cannot fail.
	result, _ := t.FromValue(t.ToValue(rec), Policy{})
	return result
}
