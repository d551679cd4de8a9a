// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package jsonpointer implements RFC 6901 JSON Pointers.
//
// A Pointer is a sequence of reference tokens, already unescaped.
// The empty Pointer refers to the whole document.  A nil Pointer is
// also the whole document as far as this package is concerned, but
// callers such as the jsonpatch package use nil to mean "no pointer
// given".
package jsonpointer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

// Pointer is a parsed JSON pointer.
type Pointer []string

// Root returns the pointer to the whole document.
func Root() Pointer {
	return Pointer{}
}

// New returns a pointer made of the given unescaped tokens.
func New(tokens ...string) Pointer {
	p := make(Pointer, len(tokens))
	copy(p, tokens)
	return p
}

// Parse parses the string form of a JSON pointer.  The empty string
// is the root; anything else must begin with "/".  Within a token,
// "~0" stands for "~" and "~1" for "/"; any other use of "~" is
// invalid.
func Parse(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, patch.ErrInvalidPointer{Pointer: s, Reason: "must be empty or start with /"}
	}
	parts := strings.Split(s[1:], "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		token, ok := unescape(part)
		if !ok {
			return nil, patch.ErrInvalidPointer{Pointer: s, Reason: "~ must be followed by 0 or 1"}
		}
		p[i] = token
	}
	return p, nil
}

// MustParse parses a pointer and panics if it is invalid.
func MustParse(s string) Pointer {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func unescape(part string) (string, bool) {
	if !strings.Contains(part, "~") {
		return part, true
	}
	var b strings.Builder
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(part) {
			return "", false
		}
		i++
		switch part[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", false
		}
	}
	return b.String(), true
}

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

// String returns the RFC 6901 string form of the pointer.
func (p Pointer) String() string {
	var b strings.Builder
	for _, token := range p {
		b.WriteByte('/')
		b.WriteString(escaper.Replace(token))
	}
	return b.String()
}

// MarshalText returns the string form of the pointer.
func (p Pointer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a pointer in place.
func (p *Pointer) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsRoot returns true if p refers to the whole document.
func (p Pointer) IsRoot() bool {
	return len(p) == 0
}

// Parent splits p into the pointer to its containing value and the
// final token.  The root has no parent.
func (p Pointer) Parent() (Pointer, string, error) {
	if len(p) == 0 {
		return nil, "", patch.ErrInvalidPointer{Pointer: "", Reason: "the root has no parent"}
	}
	return p[:len(p)-1 : len(p)-1], p[len(p)-1], nil
}

// Append returns a new pointer with token added at the end.  p is
// not changed.
func (p Pointer) Append(token string) Pointer {
	result := make(Pointer, len(p)+1)
	copy(result, p)
	result[len(p)] = token
	return result
}

// HasPrefix returns true if prefix is p itself or one of its
// ancestors.
func (p Pointer) HasPrefix(prefix Pointer) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, token := range prefix {
		if p[i] != token {
			return false
		}
	}
	return true
}

// Equal returns true if p and q name the same location.
func (p Pointer) Equal(q Pointer) bool {
	return len(p) == len(q) && p.HasPrefix(q)
}

var indexPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// ArrayIndex interprets token, part of pointer p, as an index into an
// array of the given length.  "-" means one past the end and returns
// length.  The result is always between 0 and length inclusive;
// larger indexes are ErrPointerNotFound.  Tokens that are not
// canonical non-negative integers are ErrInvalidPointer.
func ArrayIndex(p Pointer, token string, length int) (int, error) {
	if token == "-" {
		return length, nil
	}
	if !indexPattern.MatchString(token) {
		return 0, patch.ErrInvalidPointer{
			Pointer: p.String(),
			Reason:  strconv.Quote(token) + " is not an array index",
		}
	}
	i, err := strconv.Atoi(token)
	if err != nil || i > length {
		return 0, patch.ErrPointerNotFound{Pointer: p.String()}
	}
	return i, nil
}

// Child returns the member or element of v named by token, part of
// pointer p.  A missing key, an index at or past the end of an array,
// "-", or any token applied to a scalar is ErrPointerNotFound.
func Child(v jsonvalue.Value, p Pointer, token string) (jsonvalue.Value, error) {
	switch v.Kind() {
	case jsonvalue.ObjectKind:
		if child, ok := v.Get(token); ok {
			return child, nil
		}
	case jsonvalue.ArrayKind:
		i, err := ArrayIndex(p, token, v.Len())
		if err != nil {
			return jsonvalue.Value{}, err
		}
		if child, ok := v.Index(i); ok {
			return child, nil
		}
	}
	return jsonvalue.Value{}, patch.ErrPointerNotFound{Pointer: p.String()}
}

// Resolve returns the value in v that p refers to.
func Resolve(v jsonvalue.Value, p Pointer) (jsonvalue.Value, error) {
	var err error
	for _, token := range p {
		v, err = Child(v, p, token)
		if err != nil {
			return jsonvalue.Value{}, err
		}
	}
	return v, nil
}

// Has returns true if p refers to an existing value in v.
func Has(v jsonvalue.Value, p Pointer) bool {
	_, err := Resolve(v, p)
	return err == nil
}
