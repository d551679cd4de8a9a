// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"strconv"
)

// FormatID renders a record ID as it appears in a URL.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a record ID out of a URL.  It must be a plain
// decimal integer with no sign or leading zeros; anything else is
// ErrBadRequest.
func ParseID(s string) (int64, error) {
	bad := len(s) == 0 || (len(s) > 1 && s[0] == '0')
	for _, c := range s {
		if c < '0' || c > '9' {
			bad = true
			break
		}
	}
	if bad {
		return 0, ErrBadRequest{Err: fmt.Errorf("invalid ID %q", s)}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrBadRequest{Err: fmt.Errorf("invalid ID %q", s)}
	}
	return id, nil
}
