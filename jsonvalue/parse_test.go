// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/diffeo/go-bookpatch/patch"
	"github.com/stretchr/testify/assert"
)

func TestParseRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-1.25e+10`,
		`123456789012345678901234567890`,
		`""`,
		`"hello"`,
		`[]`,
		`{}`,
		`[1,[2,[3]],{"a":null}]`,
		`{"z":1,"a":2,"m":3}`,
		`{"a":{"b":{"c":[true,false]}}}`,
	}
	for _, doc := range docs {
		v, err := ParseString(doc)
		if assert.NoError(t, err, doc) {
			assert.Equal(t, doc, v.String())
		}
	}
}

func TestParseWhitespace(t *testing.T) {
	v, err := ParseString(" {\n\t\"a\" : [ 1 , 2 ] }\r\n")
	if assert.NoError(t, err) {
		assert.Equal(t, `{"a":[1,2]}`, v.String())
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	v, err := ParseString(`{"a":1,"b":2,"a":3}`)
	if assert.NoError(t, err) {
		assert.Equal(t, `{"a":3,"b":2}`, v.String())
	}
}

func TestParseMalformed(t *testing.T) {
	docs := []string{
		``,
		`   `,
		`{`,
		`[1,]`,
		`{"a":1,}`,
		`{"a" 1}`,
		`{1:2}`,
		`nul`,
		`01`,
		`"unterminated`,
		`1 2`,
		`{} []`,
		`[1] x`,
		`'single'`,
		strings.Repeat("[", 20000) + strings.Repeat("]", 20000),
	}
	for _, doc := range docs {
		_, err := ParseString(doc)
		if assert.Error(t, err, doc) {
			assert.IsType(t, patch.ErrMalformedDocument{}, err, doc)
			assert.Equal(t, patch.MalformedDocument, patch.KindOf(err), doc)
		}
	}
}

func TestParseStrings(t *testing.T) {
	v, err := ParseString(`"a\"b\\c\/d\né😀"`)
	if assert.NoError(t, err) {
		s, ok := v.AsString()
		assert.True(t, ok)
		assert.Equal(t, "a\"b\\c/d\né😀", s)
	}
}

func TestReadFrom(t *testing.T) {
	v, err := ReadFrom(strings.NewReader(`{"title":"Foo"}`))
	if assert.NoError(t, err) {
		assert.Equal(t, `{"title":"Foo"}`, v.String())
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse(`{`) })
}

func TestEncodeEscapes(t *testing.T) {
	v := String("quote\" backslash\\ nl\n tab\t cr\r bell\x07 é")
	assert.Equal(t, `"quote\" backslash\\ nl\n tab\t cr\r bell\u0007 é"`, v.String())

	// whatever we write, encoding/json must read back the same string
	var s string
	if assert.NoError(t, json.Unmarshal([]byte(v.String()), &s)) {
		got, _ := v.AsString()
		assert.Equal(t, got, s)
	}

	assert.Equal(t, `"\ufffd"`, String("\xff").String())
}

func TestValueInsideStruct(t *testing.T) {
	type wrapper struct {
		Doc Value `json:"doc"`
	}
	var w wrapper
	err := json.Unmarshal([]byte(`{"doc":{"b":1,"a":2.50}}`), &w)
	if assert.NoError(t, err) {
		assert.Equal(t, `{"b":1,"a":2.50}`, w.Doc.String())
	}
	out, err := json.Marshal(w)
	if assert.NoError(t, err) {
		assert.Equal(t, `{"doc":{"b":1,"a":2.50}}`, string(out))
	}
}
