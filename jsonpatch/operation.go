// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package jsonpatch applies RFC 6902 JSON Patch documents to JSON
// values.
//
// A Document is an ordered list of Operations.  Apply runs them in
// order against an immutable jsonvalue.Value; if any of them fails,
// the whole document fails and the caller's value is untouched.
//
//	doc, err := jsonpatch.DecodeBytes([]byte(`[
//	    {"op": "replace", "path": "/title", "value": "My Adventures"},
//	    {"op": "remove", "path": "/edition"}
//	]`))
//	if err != nil {
//	    return err
//	}
//	result, err := jsonpatch.Apply(target, doc)
package jsonpatch

import (
	"errors"
	"fmt"

	"github.com/diffeo/go-bookpatch/jsonpointer"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

// Op names one of the six JSON Patch operations.
type Op string

const (
	// OpAdd inserts a value into an object or array, or replaces
	// the whole document.
	OpAdd Op = "add"

	// OpRemove deletes an object member or array element.
	OpRemove Op = "remove"

	// OpReplace changes an existing value.
	OpReplace Op = "replace"

	// OpMove removes a value and adds it somewhere else.
	OpMove Op = "move"

	// OpCopy adds a copy of a value somewhere else.
	OpCopy Op = "copy"

	// OpTest checks that a value is present and equal to a given
	// value.
	OpTest Op = "test"
)

// Valid returns true if op is one of the six known operations.
func (op Op) Valid() bool {
	switch op {
	case OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest:
		return true
	}
	return false
}

// needsValue returns true if the operation requires a "value" member.
func (op Op) needsValue() bool {
	return op == OpAdd || op == OpReplace || op == OpTest
}

// needsFrom returns true if the operation requires a "from" member.
func (op Op) needsFrom() bool {
	return op == OpMove || op == OpCopy
}

// Operation is a single JSON Patch operation.
type Operation struct {
	Op Op

	// Path is the target location.  It is required for every
	// operation; the root is an empty, non-nil Pointer.
	Path jsonpointer.Pointer

	// From is the source location of move and copy, and nil for
	// every other operation.
	From jsonpointer.Pointer

	// Value is the operand of add, replace and test, and nil for
	// every other operation.
	Value *jsonvalue.Value
}

// Document is an ordered sequence of operations.
type Document []Operation

// Add returns an operation adding value at path.
func Add(path jsonpointer.Pointer, value jsonvalue.Value) Operation {
	return Operation{Op: OpAdd, Path: nonNil(path), Value: &value}
}

// Remove returns an operation removing the value at path.
func Remove(path jsonpointer.Pointer) Operation {
	return Operation{Op: OpRemove, Path: nonNil(path)}
}

// Replace returns an operation replacing the value at path.
func Replace(path jsonpointer.Pointer, value jsonvalue.Value) Operation {
	return Operation{Op: OpReplace, Path: nonNil(path), Value: &value}
}

// Move returns an operation moving the value at from to path.
func Move(from, path jsonpointer.Pointer) Operation {
	return Operation{Op: OpMove, Path: nonNil(path), From: nonNil(from)}
}

// Copy returns an operation copying the value at from to path.
func Copy(from, path jsonpointer.Pointer) Operation {
	return Operation{Op: OpCopy, Path: nonNil(path), From: nonNil(from)}
}

// Test returns an operation checking that path holds value.
func Test(path jsonpointer.Pointer, value jsonvalue.Value) Operation {
	return Operation{Op: OpTest, Path: nonNil(path), Value: &value}
}

func nonNil(p jsonpointer.Pointer) jsonpointer.Pointer {
	if p == nil {
		return jsonpointer.Root()
	}
	return p
}

var (
	errMissingPath  = errors.New(`missing "path"`)
	errMissingFrom  = errors.New(`missing "from"`)
	errMissingValue = errors.New(`missing "value"`)
)

// Validate checks that the operation is well-formed: a known op, a
// path, and the "from" or "value" member the op requires.  It does
// not look at any document.  Errors are patch.ErrMalformedDocument.
func (op Operation) Validate() error {
	if !op.Op.Valid() {
		return patch.ErrMalformedDocument{Err: fmt.Errorf("unknown op %q", string(op.Op))}
	}
	if op.Path == nil {
		return patch.ErrMalformedDocument{Err: errMissingPath}
	}
	if op.Op.needsFrom() && op.From == nil {
		return patch.ErrMalformedDocument{Err: errMissingFrom}
	}
	if op.Op.needsValue() && op.Value == nil {
		return patch.ErrMalformedDocument{Err: errMissingValue}
	}
	return nil
}

// Validate checks every operation in the document.  The error
// identifies the first operation that is not well-formed.
func (d Document) Validate() error {
	for i, op := range d {
		if err := op.Validate(); err != nil {
			return patch.ErrOperation{Index: i, Op: string(op.Op), Err: err}
		}
	}
	return nil
}

func (op Operation) String() string {
	return op.toValue().String()
}
