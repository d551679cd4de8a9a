// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/diffeo/go-bookpatch/patch"
)

// Parse parses a single JSON document.  Any syntax error, including
// an empty document or trailing data after the first value, returns
// patch.ErrMalformedDocument.
//
// If an object repeats a key, the last value wins, and the key keeps
// the position of its first appearance.
func Parse(data []byte) (Value, error) {
	// Validate the whole input first; this rejects trailing
	// garbage and bounds the nesting depth before we recurse.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, patch.ErrMalformedDocument{Err: err}
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	v, err := decode(decoder)
	if err != nil {
		return Value{}, patch.ErrMalformedDocument{Err: err}
	}
	return v, nil
}

// ParseString parses a JSON document held in a string.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// ReadFrom parses a single JSON document from a reader, such as an
// HTTP request body.
func ReadFrom(r io.Reader) (Value, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Value{}, err
	}
	return Parse(data)
}

// MustParse parses a JSON document and panics on error.  It is
// intended for literals in tests and initializers.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return v
}

var errUnexpectedToken = errors.New("unexpected token")

func decode(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := token.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Value{kind: NumberKind, s: string(t)}, nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(decoder)
		case '{':
			return decodeObject(decoder)
		}
	}
	return Value{}, fmt.Errorf("%v %v", errUnexpectedToken, token)
}

func decodeArray(decoder *json.Decoder) (Value, error) {
	items := []Value{}
	for decoder.More() {
		item, err := decode(decoder)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	// consume the closing ]
	if _, err := decoder.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: ArrayKind, items: items}, nil
}

func decodeObject(decoder *json.Decoder) (Value, error) {
	members := []Member{}
	seen := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := token.(string)
		if !ok {
			return Value{}, fmt.Errorf("%v %v", errUnexpectedToken, token)
		}
		value, err := decode(decoder)
		if err != nil {
			return Value{}, err
		}
		if i, dup := seen[key]; dup {
			members[i].Value = value
			continue
		}
		seen[key] = len(members)
		members = append(members, Member{Key: key, Value: value})
	}
	// consume the closing }
	if _, err := decoder.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: ObjectKind, members: members}, nil
}
