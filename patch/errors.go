// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package patch

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned when a document cannot be parsed,
// or when a patch document is not shaped like one (an operation
// without "op", a "move" without "from", and so on).  It is always
// detected before any operation runs.
type ErrMalformedDocument struct {
	Err error
}

func (e ErrMalformedDocument) Error() string {
	if e.Err == nil {
		return "malformed document"
	}
	return "malformed document: " + e.Err.Error()
}

// Unwrap returns the underlying parse or shape error.
func (e ErrMalformedDocument) Unwrap() error {
	return e.Err
}

// Kind returns MalformedDocument.
func (e ErrMalformedDocument) Kind() Kind {
	return MalformedDocument
}

// ErrInvalidPointer is returned when a JSON pointer, or one of its
// reference tokens, violates RFC 6901 syntax.  This includes array
// index tokens with leading zeros or signs.
type ErrInvalidPointer struct {
	Pointer string
	Reason  string
}

func (e ErrInvalidPointer) Error() string {
	return fmt.Sprintf("invalid pointer %q: %v", e.Pointer, e.Reason)
}

// Kind returns InvalidPointer.
func (e ErrInvalidPointer) Kind() Kind {
	return InvalidPointer
}

// ErrPointerNotFound is returned when a syntactically valid pointer
// names a location that does not exist in the document.
type ErrPointerNotFound struct {
	Pointer string
}

func (e ErrPointerNotFound) Error() string {
	return fmt.Sprintf("no value at %q", e.Pointer)
}

// Kind returns PointerNotFound.
func (e ErrPointerNotFound) Kind() Kind {
	return PointerNotFound
}

// ErrTestFailed is returned from a JSON Patch "test" operation whose
// location is absent or holds a different value.
type ErrTestFailed struct {
	Pointer string
	Reason  string
}

func (e ErrTestFailed) Error() string {
	return fmt.Sprintf("test failed at %q: %v", e.Pointer, e.Reason)
}

// Kind returns TestFailed.
func (e ErrTestFailed) Kind() Kind {
	return TestFailed
}

// ErrInvalidOperation is returned for operations that are well-formed
// but cannot be performed, such as moving a value into one of its own
// children or removing the document root.
type ErrInvalidOperation struct {
	Op     string
	Reason string
}

func (e ErrInvalidOperation) Error() string {
	return fmt.Sprintf("invalid %v operation: %v", e.Op, e.Reason)
}

// Kind returns InvalidOperation.
func (e ErrInvalidOperation) Kind() Kind {
	return InvalidOperation
}

// ErrConversion is returned when a value cannot be converted into a
// typed record, because the value is not an object or because a
// declared field holds a value of the wrong type.
type ErrConversion struct {
	// Field names the record field, or is empty if the whole
	// value was unsuitable.
	Field string

	// Want describes the type the field expects.
	Want string

	// Got describes what was actually found.
	Got string
}

func (e ErrConversion) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot convert %v to %v", e.Got, e.Want)
	}
	return fmt.Sprintf("field %q: cannot convert %v to %v", e.Field, e.Got, e.Want)
}

// Kind returns ConversionError.
func (e ErrConversion) Kind() Kind {
	return ConversionError
}

// ErrUnknownField is returned by a strict conversion that finds an
// object member that is not a field of the record.
type ErrUnknownField struct {
	Field string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// Kind returns ConversionError.
func (e ErrUnknownField) Kind() Kind {
	return ConversionError
}

// ErrOperation wraps a failure of a single JSON Patch operation with
// its position in the document.
type ErrOperation struct {
	Index int
	Op    string
	Err   error
}

func (e ErrOperation) Error() string {
	return fmt.Sprintf("operation %d (%v): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the failure of the operation.
func (e ErrOperation) Unwrap() error {
	return e.Err
}

// ErrUnprocessable is the single coarse-grained failure reported by
// the patch service.  The specific failure is kept in Err.
type ErrUnprocessable struct {
	Err error
}

func (e ErrUnprocessable) Error() string {
	return "unprocessable: " + e.Err.Error()
}

// Unwrap returns the specific failure.
func (e ErrUnprocessable) Unwrap() error {
	return e.Err
}

// Kind returns the kind of the wrapped failure.
func (e ErrUnprocessable) Kind() Kind {
	return KindOf(e.Err)
}

// kinded is implemented by every error type in this package that
// names a single kind.
type kinded interface {
	error
	Kind() Kind
}

// KindOf finds the most specific failure kind in an error chain.  If
// no error in the chain has a kind, returns UnknownKind.
func KindOf(err error) Kind {
	for err != nil {
		if k, ok := err.(kinded); ok {
			if _, wrapper := err.(ErrUnprocessable); !wrapper {
				return k.Kind()
			}
		}
		err = errors.Unwrap(err)
	}
	return UnknownKind
}
