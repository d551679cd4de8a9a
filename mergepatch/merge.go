// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package mergepatch applies RFC 7396 JSON Merge Patch documents.
//
// A merge patch looks like the document it changes.  Objects in the
// patch are merged member by member into the target, a null member
// deletes that member, and anything else replaces the target value
// outright.  Arrays are never merged, only replaced.
package mergepatch

import (
	"github.com/diffeo/go-bookpatch/jsonvalue"
)

// Apply merges patch into target and returns the result.  It cannot
// fail.  target is not changed.
//
// Members the target already has keep their positions; members the
// patch adds go at the end, in the order the patch lists them.
func Apply(target, patch jsonvalue.Value) jsonvalue.Value {
	if patch.Kind() != jsonvalue.ObjectKind {
		return patch
	}
	result := target
	if result.Kind() != jsonvalue.ObjectKind {
		result = jsonvalue.Object()
	}
	for _, m := range patch.Members() {
		if m.Value.IsNull() {
			result, _ = result.Delete(m.Key)
			continue
		}
		current, _ := result.Get(m.Key)
		result, _ = result.Set(m.Key, Apply(current, m.Value))
	}
	return result
}

// ApplyBytes parses a target and a merge patch, merges them, and
// returns the serialized result.  A syntax error in either document
// is patch.ErrMalformedDocument.
func ApplyBytes(target, patch []byte) ([]byte, error) {
	t, err := jsonvalue.Parse(target)
	if err != nil {
		return nil, err
	}
	p, err := jsonvalue.Parse(patch)
	if err != nil {
		return nil, err
	}
	return Apply(t, p).MarshalJSON()
}
