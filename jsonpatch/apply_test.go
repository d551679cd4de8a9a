// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonpatch

import (
	"testing"

	"github.com/diffeo/go-bookpatch/jsonpointer"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
	evanphx "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patchTest is one row of a table-driven patch test.  If Kind is
// UnknownKind the patch must succeed and produce Result; otherwise
// it must fail with that kind.
type patchTest struct {
	Name   string
	Doc    string
	Patch  string
	Result string
	Kind   patch.Kind
}

// rfcTests are the examples from RFC 6902 appendix A, plus the
// service's own book examples.
var rfcTests = []patchTest{
	{
		Name:   "A.1 add object member",
		Doc:    `{"foo":"bar"}`,
		Patch:  `[{"op":"add","path":"/baz","value":"qux"}]`,
		Result: `{"baz":"qux","foo":"bar"}`,
	},
	{
		Name:   "A.2 add array element",
		Doc:    `{"foo":["bar","baz"]}`,
		Patch:  `[{"op":"add","path":"/foo/1","value":"qux"}]`,
		Result: `{"foo":["bar","qux","baz"]}`,
	},
	{
		Name:   "A.3 remove object member",
		Doc:    `{"baz":"qux","foo":"bar"}`,
		Patch:  `[{"op":"remove","path":"/baz"}]`,
		Result: `{"foo":"bar"}`,
	},
	{
		Name:   "A.4 remove array element",
		Doc:    `{"foo":["bar","qux","baz"]}`,
		Patch:  `[{"op":"remove","path":"/foo/1"}]`,
		Result: `{"foo":["bar","baz"]}`,
	},
	{
		Name:   "A.5 replace value",
		Doc:    `{"baz":"qux","foo":"bar"}`,
		Patch:  `[{"op":"replace","path":"/baz","value":"boo"}]`,
		Result: `{"baz":"boo","foo":"bar"}`,
	},
	{
		Name: "A.6 move value",
		Doc:  `{"foo":{"bar":"baz","waldo":"fred"},"qux":{"corge":"grault"}}`,
		Patch: `[{"op":"move","from":"/foo/waldo","path":"/qux/thud"}]`,
		Result: `{"foo":{"bar":"baz"},"qux":{"corge":"grault","thud":"fred"}}`,
	},
	{
		Name:   "A.7 move array element",
		Doc:    `{"foo":["all","grass","cows","eat"]}`,
		Patch:  `[{"op":"move","from":"/foo/1","path":"/foo/3"}]`,
		Result: `{"foo":["all","cows","eat","grass"]}`,
	},
	{
		Name:   "A.8 test success",
		Doc:    `{"baz":"qux","foo":["a",2,"c"]}`,
		Patch:  `[{"op":"test","path":"/baz","value":"qux"},{"op":"test","path":"/foo/1","value":2}]`,
		Result: `{"baz":"qux","foo":["a",2,"c"]}`,
	},
	{
		Name:  "A.9 test failure",
		Doc:   `{"baz":"qux"}`,
		Patch: `[{"op":"test","path":"/baz","value":"bar"}]`,
		Kind:  patch.TestFailed,
	},
	{
		Name:   "A.10 add nested member object",
		Doc:    `{"foo":"bar"}`,
		Patch:  `[{"op":"add","path":"/child","value":{"grandchild":{}}}]`,
		Result: `{"foo":"bar","child":{"grandchild":{}}}`,
	},
	{
		Name:   "A.11 ignore unrecognized elements",
		Doc:    `{"foo":"bar"}`,
		Patch:  `[{"op":"add","path":"/baz","value":"qux","xyz":123}]`,
		Result: `{"foo":"bar","baz":"qux"}`,
	},
	{
		Name:  "A.12 add to nonexistent target",
		Doc:   `{"foo":"bar"}`,
		Patch: `[{"op":"add","path":"/baz/bat","value":"qux"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:   "A.14 ~ escape ordering",
		Doc:    `{"/":9,"~1":10}`,
		Patch:  `[{"op":"test","path":"/~01","value":10}]`,
		Result: `{"/":9,"~1":10}`,
	},
	{
		Name:  "A.15 comparing strings and numbers",
		Doc:   `{"/":9,"~1":10}`,
		Patch: `[{"op":"test","path":"/~01","value":"10"}]`,
		Kind:  patch.TestFailed,
	},
	{
		Name:   "A.16 add array value",
		Doc:    `{"foo":["bar"]}`,
		Patch:  `[{"op":"add","path":"/foo/-","value":["abc","def"]}]`,
		Result: `{"foo":["bar",["abc","def"]]}`,
	},
	{
		Name:   "book edit",
		Doc:    `{"title":"Foo Adventures","author":"John Appleseed","edition":1}`,
		Patch:  `[{"op":"replace","path":"/title","value":"My Adventures"},{"op":"remove","path":"/edition"},{"op":"replace","path":"/author","value":"Jane Appleseed"}]`,
		Result: `{"title":"My Adventures","author":"Jane Appleseed"}`,
	},
	{
		Name:  "book test failure",
		Doc:   `{"title":"Foo Adventures","author":"John Appleseed","edition":1}`,
		Patch: `[{"op":"test","path":"/title","value":"Nope"}]`,
		Kind:  patch.TestFailed,
	},
}

// edgeTests cover behavior the RFC leaves to the implementation or
// that is easy to get wrong.
var edgeTests = []patchTest{
	{
		Name:   "empty patch",
		Doc:    `{"a":[1,{"b":null}]}`,
		Patch:  `[]`,
		Result: `{"a":[1,{"b":null}]}`,
	},
	{
		Name:   "add replaces root",
		Doc:    `{"a":1}`,
		Patch:  `[{"op":"add","path":"","value":[1,2]}]`,
		Result: `[1,2]`,
	},
	{
		Name:   "replace root",
		Doc:    `{"a":1}`,
		Patch:  `[{"op":"replace","path":"","value":"x"}]`,
		Result: `"x"`,
	},
	{
		Name:  "remove root",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"remove","path":""}]`,
		Kind:  patch.InvalidOperation,
	},
	{
		Name:   "add overwrites member in place",
		Doc:    `{"a":1,"b":2}`,
		Patch:  `[{"op":"add","path":"/a","value":3}]`,
		Result: `{"a":3,"b":2}`,
	},
	{
		Name:   "add at array length",
		Doc:    `[1,2]`,
		Patch:  `[{"op":"add","path":"/2","value":3}]`,
		Result: `[1,2,3]`,
	},
	{
		Name:  "add past array length",
		Doc:   `[1,2]`,
		Patch: `[{"op":"add","path":"/3","value":3}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "add with leading zero index",
		Doc:   `[1,2]`,
		Patch: `[{"op":"add","path":"/01","value":3}]`,
		Kind:  patch.InvalidPointer,
	},
	{
		Name:  "add with negative index",
		Doc:   `[1,2]`,
		Patch: `[{"op":"add","path":"/-1","value":3}]`,
		Kind:  patch.InvalidPointer,
	},
	{
		Name:  "add into scalar",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"add","path":"/a/b","value":3}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "remove missing member",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"remove","path":"/b"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "remove end of array",
		Doc:   `[1]`,
		Patch: `[{"op":"remove","path":"/-"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "replace missing member",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"replace","path":"/b","value":2}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "replace past array end",
		Doc:   `[1]`,
		Patch: `[{"op":"replace","path":"/1","value":2}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:   "replace array element",
		Doc:    `[1,2]`,
		Patch:  `[{"op":"replace","path":"/1","value":{"x":true}}]`,
		Result: `[1,{"x":true}]`,
	},
	{
		Name:  "move into own child",
		Doc:   `{"a":{"b":1}}`,
		Patch: `[{"op":"move","from":"/a","path":"/a/c"}]`,
		Kind:  patch.InvalidOperation,
	},
	{
		Name:  "move onto itself",
		Doc:   `{"a":{"b":1}}`,
		Patch: `[{"op":"move","from":"/a","path":"/a"}]`,
		Kind:  patch.InvalidOperation,
	},
	{
		Name:  "move root",
		Doc:   `{"a":{"b":1}}`,
		Patch: `[{"op":"move","from":"","path":"/x"}]`,
		Kind:  patch.InvalidOperation,
	},
	{
		Name:  "move missing",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"move","from":"/b","path":"/c"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:   "move to sibling prefix",
		Doc:    `{"a":1}`,
		Patch:  `[{"op":"move","from":"/a","path":"/ab"}]`,
		Result: `{"ab":1}`,
	},
	{
		Name:   "move up to parent",
		Doc:    `{"a":{"b":{"c":1}}}`,
		Patch:  `[{"op":"move","from":"/a/b","path":"/a"}]`,
		Result: `{"a":{"c":1}}`,
	},
	{
		Name:   "copy",
		Doc:    `{"a":{"b":[1,2]}}`,
		Patch:  `[{"op":"copy","from":"/a/b","path":"/c"},{"op":"add","path":"/c/-","value":3}]`,
		Result: `{"a":{"b":[1,2]},"c":[1,2,3]}`,
	},
	{
		Name:  "copy missing",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"copy","from":"/b","path":"/c"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "test missing path",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"test","path":"/b","value":null}]`,
		Kind:  patch.TestFailed,
	},
	{
		Name:   "test numeric equality",
		Doc:    `{"a":1}`,
		Patch:  `[{"op":"test","path":"/a","value":1.0}]`,
		Result: `{"a":1}`,
	},
	{
		Name:   "test object ignores key order",
		Doc:    `{"a":{"x":1,"y":2}}`,
		Patch:  `[{"op":"test","path":"/a","value":{"y":2,"x":1}}]`,
		Result: `{"a":{"x":1,"y":2}}`,
	},
	{
		Name:   "test whole document",
		Doc:    `[1,2]`,
		Patch:  `[{"op":"test","path":"","value":[1,2]}]`,
		Result: `[1,2]`,
	},
	{
		Name:   "operations see earlier results",
		Doc:    `{}`,
		Patch:  `[{"op":"add","path":"/a","value":{}},{"op":"add","path":"/a/b","value":[]},{"op":"add","path":"/a/b/0","value":"x"},{"op":"test","path":"/a/b/0","value":"x"}]`,
		Result: `{"a":{"b":["x"]}}`,
	},
	{
		Name:  "failure after success",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"add","path":"/b","value":2},{"op":"remove","path":"/c"}]`,
		Kind:  patch.PointerNotFound,
	},
	{
		Name:  "missing value",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"add","path":"/b"}]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "missing from",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"copy","path":"/b"}]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "missing path",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"remove"}]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "unknown op",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"frobnicate","path":"/a"}]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "op not a string",
		Doc:   `{"a":1}`,
		Patch: `[{"op":1,"path":"/a"}]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "operation not an object",
		Doc:   `{"a":1}`,
		Patch: `["add"]`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "patch not an array",
		Doc:   `{"a":1}`,
		Patch: `{"op":"add","path":"/b","value":1}`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "patch not JSON",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"add",`,
		Kind:  patch.MalformedDocument,
	},
	{
		Name:  "bad pointer syntax",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"add","path":"a","value":1}]`,
		Kind:  patch.InvalidPointer,
	},
	{
		Name:  "bad pointer escape",
		Doc:   `{"a":1}`,
		Patch: `[{"op":"remove","path":"/a~2"}]`,
		Kind:  patch.InvalidPointer,
	},
}

func runPatchTest(t *testing.T, test patchTest) {
	target := jsonvalue.MustParse(test.Doc)
	result, err := applyString(target, test.Patch)
	if test.Kind == patch.UnknownKind {
		if assert.NoError(t, err) {
			assert.True(t, jsonvalue.Equal(jsonvalue.MustParse(test.Result), result),
				"got %v, want %v", result, test.Result)
		}
		return
	}
	if assert.Error(t, err) {
		assert.Equal(t, test.Kind, patch.KindOf(err), "%v", err)
	}
	// a failed patch leaves the original value in place
	assert.Equal(t, test.Doc, result.String())
}

// applyString decodes and applies a patch.  If the patch does not
// decode, returns target and the decoding error.
func applyString(target jsonvalue.Value, patchText string) (jsonvalue.Value, error) {
	doc, err := DecodeBytes([]byte(patchText))
	if err != nil {
		return target, err
	}
	return Apply(target, doc)
}

func TestRFCExamples(t *testing.T) {
	for _, test := range rfcTests {
		t.Run(test.Name, func(t *testing.T) {
			runPatchTest(t, test)
		})
	}
}

func TestEdgeCases(t *testing.T) {
	for _, test := range edgeTests {
		t.Run(test.Name, func(t *testing.T) {
			runPatchTest(t, test)
		})
	}
}

// TestAgreesWithEvanphx checks every successful RFC example against
// an independent implementation.
func TestAgreesWithEvanphx(t *testing.T) {
	for _, test := range rfcTests {
		if test.Kind != patch.UnknownKind {
			continue
		}
		t.Run(test.Name, func(t *testing.T) {
			other, err := evanphx.DecodePatch([]byte(test.Patch))
			require.NoError(t, err)
			want, err := other.Apply([]byte(test.Doc))
			require.NoError(t, err)

			got, err := ApplyBytes([]byte(test.Doc), []byte(test.Patch))
			require.NoError(t, err)
			assert.True(t, evanphx.Equal(want, got), "got %s, want %s", got, want)
		})
	}
}

func TestFailureAgreesWithEvanphx(t *testing.T) {
	for _, test := range rfcTests {
		if test.Kind == patch.UnknownKind {
			continue
		}
		t.Run(test.Name, func(t *testing.T) {
			other, err := evanphx.DecodePatch([]byte(test.Patch))
			require.NoError(t, err)
			_, err = other.Apply([]byte(test.Doc))
			assert.Error(t, err)
		})
	}
}

func TestOperationIndexInError(t *testing.T) {
	target := jsonvalue.MustParse(`{"a":1}`)
	_, err := applyString(target, `[{"op":"test","path":"/a","value":1},{"op":"remove","path":"/b"}]`)
	if assert.Error(t, err) {
		opErr, ok := err.(patch.ErrOperation)
		if assert.True(t, ok, "%T", err) {
			assert.Equal(t, 1, opErr.Index)
			assert.Equal(t, "remove", opErr.Op)
			assert.IsType(t, patch.ErrPointerNotFound{}, opErr.Err)
		}
	}
}

func TestMalformedDetectedBeforeRunning(t *testing.T) {
	// the first operation would fail, but the malformed second one
	// is reported instead
	doc := Document{
		Remove(jsonpointer.MustParse("/missing")),
		{Op: OpAdd, Path: jsonpointer.MustParse("/x")},
	}
	_, err := Apply(jsonvalue.MustParse(`{}`), doc)
	if assert.Error(t, err) {
		assert.Equal(t, patch.MalformedDocument, patch.KindOf(err))
		opErr, ok := err.(patch.ErrOperation)
		if assert.True(t, ok) {
			assert.Equal(t, 1, opErr.Index)
		}
	}
}

func TestApplySharesUntouched(t *testing.T) {
	target := jsonvalue.MustParse(`{"keep":{"deep":[1,2,3]},"edit":{"x":1}}`)
	doc := Document{
		Replace(jsonpointer.MustParse("/edit/x"), jsonvalue.Int(2)),
	}
	result, err := Apply(target, doc)
	require.NoError(t, err)
	assert.Equal(t, `{"keep":{"deep":[1,2,3]},"edit":{"x":2}}`, result.String())
	assert.Equal(t, `{"keep":{"deep":[1,2,3]},"edit":{"x":1}}`, target.String())
}

func TestReplaceVersusAdd(t *testing.T) {
	target := jsonvalue.MustParse(`{"a":{"b":1}}`)
	path := jsonpointer.MustParse("/a/new")

	_, err := Apply(target, Document{Replace(path, jsonvalue.Int(5))})
	if assert.Error(t, err) {
		assert.Equal(t, patch.PointerNotFound, patch.KindOf(err))
	}

	result, err := Apply(target, Document{Add(path, jsonvalue.Int(5))})
	if assert.NoError(t, err) {
		assert.Equal(t, `{"a":{"b":1,"new":5}}`, result.String())
	}
}
