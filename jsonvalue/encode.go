// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

import (
	"strconv"
	"unicode/utf8"
)

const hex = "0123456789abcdef"

// AppendJSON appends the compact JSON encoding of v to buf.  Object
// members are written in insertion order.
func (v Value) AppendJSON(buf []byte) []byte {
	switch v.kind {
	case NullKind:
		return append(buf, "null"...)
	case BoolKind:
		return strconv.AppendBool(buf, v.b)
	case NumberKind:
		return append(buf, v.s...)
	case StringKind:
		return appendString(buf, v.s)
	case ArrayKind:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.AppendJSON(buf)
		}
		return append(buf, ']')
	case ObjectKind:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			buf = m.Value.AppendJSON(buf)
		}
		return append(buf, '}')
	}
	return append(buf, "null"...)
}

// MarshalJSON returns the compact JSON encoding of v.  It never
// fails.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil), nil
}

// UnmarshalJSON replaces v with the parsed contents of data.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	return string(v.AppendJSON(nil))
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"', c == '\\':
				buf = append(buf, '\\', c)
			case c == '\n':
				buf = append(buf, '\\', 'n')
			case c == '\r':
				buf = append(buf, '\\', 'r')
			case c == '\t':
				buf = append(buf, '\\', 't')
			case c < 0x20:
				buf = append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			default:
				buf = append(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, `\ufffd`...)
		} else {
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return append(buf, '"')
}
