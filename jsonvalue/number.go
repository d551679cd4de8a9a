// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonvalue

import (
	"errors"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func isNumber(text string) bool {
	return numberPattern.MatchString(text)
}

// errNotNumber is returned from the numeric accessors if the value is
// not a number at all.
var errNotNumber = errors.New("not a number")

// Decimal returns the exact decimal value of a number.
func (v Value) Decimal() (*apd.Decimal, error) {
	if v.kind != NumberKind {
		return nil, errNotNumber
	}
	d, _, err := apd.NewFromString(v.s)
	return d, err
}

// Int64 returns the value of a number as an integer.  The second
// return is false if v is not a number, is not integral, or does not
// fit in an int64.  Integral values written with a fraction or
// exponent, such as 2.0 or 2e1, are accepted.
func (v Value) Int64() (int64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
		return i, true
	}
	n := normalize(v.s)
	if n.coef == "0" {
		return 0, true
	}
	// int64 has at most 19 digits
	if n.exp.Sign() < 0 || !n.exp.IsInt64() || int64(len(n.coef))+n.exp.Int64() > 19 {
		return 0, false
	}
	text := n.coef + strings.Repeat("0", int(n.exp.Int64()))
	if n.neg {
		text = "-" + text
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float64 returns the value of a number as the nearest float64.  The
// second return is false if v is not a number or is out of range.
func (v Value) Float64() (float64, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsIntegral returns true if v is a number with no fractional part.
func (v Value) IsIntegral() bool {
	if v.kind != NumberKind {
		return false
	}
	n := normalize(v.s)
	return n.coef == "0" || n.exp.Sign() >= 0
}

// equalNumbers returns true if two number literals have the same
// decimal value.
func equalNumbers(a, b string) bool {
	if a == b {
		return true
	}
	da, _, errA := apd.NewFromString(a)
	db, _, errB := apd.NewFromString(b)
	if errA == nil && errB == nil {
		return da.Cmp(db) == 0
	}
	// Out of the decimal library's exponent range.
	na, nb := normalize(a), normalize(b)
	return na.neg == nb.neg && na.coef == nb.coef && na.exp.Cmp(nb.exp) == 0
}

// normalNumber is a number literal as coef * 10^exp, with no leading
// or trailing zeros in coef.  Zero is always coef "0", exponent 0,
// not negative.
type normalNumber struct {
	neg  bool
	coef string
	exp  *big.Int
}

// normalize rewrites a number literal that matches numberPattern
// into its normal form.  Exponents are arbitrary precision.
func normalize(text string) normalNumber {
	n := normalNumber{exp: new(big.Int)}
	if strings.HasPrefix(text, "-") {
		n.neg = true
		text = text[1:]
	}
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		exp := strings.TrimPrefix(text[i+1:], "+")
		n.exp.SetString(exp, 10)
		text = text[:i]
	}
	digits := text
	if i := strings.IndexByte(text, '.'); i >= 0 {
		frac := text[i+1:]
		digits = text[:i] + frac
		n.exp.Sub(n.exp, big.NewInt(int64(len(frac))))
	}
	digits = strings.TrimLeft(digits, "0")
	trimmed := strings.TrimRight(digits, "0")
	n.exp.Add(n.exp, big.NewInt(int64(len(digits)-len(trimmed))))
	if trimmed == "" {
		return normalNumber{coef: "0", exp: new(big.Int)}
	}
	n.coef = trimmed
	return n
}
