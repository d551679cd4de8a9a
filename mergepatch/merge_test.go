// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package mergepatch

import (
	"testing"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
	evanphx "github.com/evanphx/json-patch/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcTests are the examples from RFC 7396 appendix A, and the book
// example.
var rfcTests = []struct {
	Target, Patch, Result string
}{
	{`{"a":"b"}`, `{"a":"c"}`, `{"a":"c"}`},
	{`{"a":"b"}`, `{"b":"c"}`, `{"a":"b","b":"c"}`},
	{`{"a":"b"}`, `{"a":null}`, `{}`},
	{`{"a":"b","b":"c"}`, `{"a":null}`, `{"b":"c"}`},
	{`{"a":["b"]}`, `{"a":"c"}`, `{"a":"c"}`},
	{`{"a":"c"}`, `{"a":["b"]}`, `{"a":["b"]}`},
	{`{"a":{"b":"c"}}`, `{"a":{"b":"d","c":null}}`, `{"a":{"b":"d"}}`},
	{`{"a":[{"b":"c"}]}`, `{"a":[1]}`, `{"a":[1]}`},
	{`["a","b"]`, `["c","d"]`, `["c","d"]`},
	{`{"a":"b"}`, `["c"]`, `["c"]`},
	{`{"a":"foo"}`, `null`, `null`},
	{`{"a":"foo"}`, `"bar"`, `"bar"`},
	{`{"e":null}`, `{"a":1}`, `{"e":null,"a":1}`},
	{`[1,2]`, `{"a":"b","c":null}`, `{"a":"b"}`},
	{`{}`, `{"a":{"bb":{"ccc":null}}}`, `{"a":{"bb":{}}}`},
	{
		`{"title":"Foo Adventures","author":"John Appleseed","edition":1}`,
		`{"title":"My Adventures","edition":null,"author":"Jane Appleseed"}`,
		`{"title":"My Adventures","author":"Jane Appleseed"}`,
	},
}

func TestRFCExamples(t *testing.T) {
	for _, test := range rfcTests {
		got, err := ApplyBytes([]byte(test.Target), []byte(test.Patch))
		if assert.NoError(t, err, "%v + %v", test.Target, test.Patch) {
			// output order is deterministic, so compare text
			assert.Equal(t, test.Result, string(got), "%v + %v", test.Target, test.Patch)
		}
	}
}

func TestAgreesWithEvanphx(t *testing.T) {
	for _, test := range rfcTests {
		// evanphx is only well-defined when both sides are objects
		if test.Target[0] != '{' || test.Patch[0] != '{' {
			continue
		}
		want, err := evanphx.MergePatch([]byte(test.Target), []byte(test.Patch))
		require.NoError(t, err)
		got, err := ApplyBytes([]byte(test.Target), []byte(test.Patch))
		require.NoError(t, err)
		assert.True(t, evanphx.Equal(want, got), "got %s, want %s", got, want)
	}
}

func TestNullDeletesOneLevel(t *testing.T) {
	target := jsonvalue.MustParse(`{"title":"A","edition":1,"nested":{"edition":2}}`)
	result := Apply(target, jsonvalue.MustParse(`{"edition":null}`))
	assert.Equal(t, `{"title":"A","nested":{"edition":2}}`, result.String())
}

func TestKeyOrder(t *testing.T) {
	target := jsonvalue.MustParse(`{"z":1,"a":2,"m":3}`)
	result := Apply(target, jsonvalue.MustParse(`{"new2":0,"a":9,"new1":0}`))
	assert.Equal(t, `{"z":1,"a":9,"m":3,"new2":0,"new1":0}`, result.String())
}

func TestTargetUnchanged(t *testing.T) {
	target := jsonvalue.MustParse(`{"a":{"b":1}}`)
	Apply(target, jsonvalue.MustParse(`{"a":{"b":null,"c":2}}`))
	assert.Equal(t, `{"a":{"b":1}}`, target.String())
}

func TestEmptyPatchIsIdentity(t *testing.T) {
	target := jsonvalue.MustParse(`{"a":[1,2],"b":{"c":null}}`)
	result := Apply(target, jsonvalue.Object())
	assert.True(t, jsonvalue.Equal(target, result))
}

func TestMalformed(t *testing.T) {
	_, err := ApplyBytes([]byte(`{`), []byte(`{}`))
	if assert.Error(t, err) {
		assert.Equal(t, patch.MalformedDocument, patch.KindOf(err))
	}
	_, err = ApplyBytes([]byte(`{}`), []byte(`{"a":}`))
	if assert.Error(t, err) {
		assert.Equal(t, patch.MalformedDocument, patch.KindOf(err))
	}
}
