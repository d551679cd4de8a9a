// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonpatch

import (
	"errors"
	"fmt"

	"github.com/diffeo/go-bookpatch/jsonpointer"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

var (
	errNotArray  = errors.New("patch document must be an array")
	errNotObject = errors.New("operation must be an object")
)

// DecodeBytes parses a serialized JSON Patch document.
func DecodeBytes(data []byte) (Document, error) {
	v, err := jsonvalue.Parse(data)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Decode converts a parsed JSON Patch document into a Document.  The
// whole document is checked before anything is returned: an
// operation that is not an object, has an unknown or missing "op",
// or lacks a member its op requires is patch.ErrMalformedDocument,
// and a "path" or "from" that is not a valid JSON pointer is
// patch.ErrInvalidPointer.  Either is wrapped in patch.ErrOperation
// identifying the offending operation.  Unrecognized members are
// ignored.
func Decode(v jsonvalue.Value) (Document, error) {
	if v.Kind() != jsonvalue.ArrayKind {
		return nil, patch.ErrMalformedDocument{Err: errNotArray}
	}
	items := v.Elements()
	doc := make(Document, len(items))
	for i, item := range items {
		op, err := decodeOperation(item)
		if err != nil {
			return nil, patch.ErrOperation{Index: i, Op: string(op.Op), Err: err}
		}
		doc[i] = op
	}
	return doc, nil
}

// decodeOperation decodes a single operation.  On error, the
// returned operation still carries whatever op was found.
func decodeOperation(item jsonvalue.Value) (Operation, error) {
	var op Operation
	if item.Kind() != jsonvalue.ObjectKind {
		return op, patch.ErrMalformedDocument{Err: errNotObject}
	}
	name, err := stringMember(item, "op")
	if err != nil {
		return op, err
	}
	op.Op = Op(name)
	if !op.Op.Valid() {
		return op, patch.ErrMalformedDocument{Err: fmt.Errorf("unknown op %q", name)}
	}
	op.Path, err = pointerMember(item, "path")
	if err != nil {
		return op, err
	}
	if op.Op.needsFrom() {
		op.From, err = pointerMember(item, "from")
		if err != nil {
			return op, err
		}
	}
	if op.Op.needsValue() {
		value, ok := item.Get("value")
		if !ok {
			return op, patch.ErrMalformedDocument{Err: errMissingValue}
		}
		op.Value = &value
	}
	return op, nil
}

func stringMember(item jsonvalue.Value, key string) (string, error) {
	member, ok := item.Get(key)
	if !ok {
		return "", patch.ErrMalformedDocument{Err: fmt.Errorf("missing %q", key)}
	}
	s, ok := member.AsString()
	if !ok {
		return "", patch.ErrMalformedDocument{
			Err: fmt.Errorf("%q must be a string, not %v", key, member.Kind()),
		}
	}
	return s, nil
}

func pointerMember(item jsonvalue.Value, key string) (jsonpointer.Pointer, error) {
	s, err := stringMember(item, key)
	if err != nil {
		return nil, err
	}
	return jsonpointer.Parse(s)
}

// toValue returns the JSON form of the operation.
func (op Operation) toValue() jsonvalue.Value {
	members := []jsonvalue.Member{
		{Key: "op", Value: jsonvalue.String(string(op.Op))},
	}
	if op.From != nil {
		members = append(members, jsonvalue.Member{Key: "from", Value: jsonvalue.String(op.From.String())})
	}
	members = append(members, jsonvalue.Member{Key: "path", Value: jsonvalue.String(op.Path.String())})
	if op.Value != nil {
		members = append(members, jsonvalue.Member{Key: "value", Value: *op.Value})
	}
	return jsonvalue.Object(members...)
}

// ToValue returns the JSON form of the document.
func (d Document) ToValue() jsonvalue.Value {
	items := make([]jsonvalue.Value, len(d))
	for i, op := range d {
		items[i] = op.toValue()
	}
	return jsonvalue.Array(items...)
}

// MarshalJSON writes the document as a JSON array of operations.
func (d Document) MarshalJSON() ([]byte, error) {
	return d.ToValue().MarshalJSON()
}

// UnmarshalJSON replaces the document with a decoded one.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := DecodeBytes(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

func (d Document) String() string {
	return d.ToValue().String()
}
