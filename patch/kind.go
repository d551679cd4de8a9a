// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package patch

import (
	"fmt"
)

// Kind classifies a failure of the patch pipeline.
type Kind int

const (
	// UnknownKind is the kind of errors that did not come from
	// this pipeline.
	UnknownKind Kind = iota

	// MalformedDocument means the patch document (or a value
	// document) could not be parsed or was not shaped correctly.
	MalformedDocument

	// InvalidPointer means a JSON pointer violated RFC 6901.
	InvalidPointer

	// PointerNotFound means a well-formed pointer named an absent
	// location.
	PointerNotFound

	// TestFailed means a JSON Patch "test" operation did not match.
	TestFailed

	// InvalidOperation means an operation was semantically illegal.
	InvalidOperation

	// ConversionError means a value did not fit a typed record.
	ConversionError
)

var kindNames = map[Kind]string{
	UnknownKind:       "Unknown",
	MalformedDocument: "MalformedDocument",
	InvalidPointer:    "InvalidPointer",
	PointerNotFound:   "PointerNotFound",
	TestFailed:        "TestFailed",
	InvalidOperation:  "InvalidOperation",
	ConversionError:   "ConversionError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText returns the name of a kind.
func (k Kind) MarshalText() ([]byte, error) {
	if name, ok := kindNames[k]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("invalid kind (marshal, %+v)", int(k))
}

// UnmarshalText populates a kind from its name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("invalid kind (unmarshal, %+v)", string(text))
}
