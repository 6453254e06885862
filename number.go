// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"math"
	"strconv"

	"github.com/open-flash/v8json/internal/jsonwire"
	"github.com/open-flash/v8json/internal/ryu"
)

// Number represents a JSON number in exactly one of four representations:
// an int64, a uint64, a float64, or a verbatim literal (as captured by
// decoding under [ArbitraryPrecision] or by [NumberFromLiteral]).
// The representation is fixed at construction time and determines both the
// numeric semantics (see [Number.Equal]) and the exact text the encoder
// emits. The zero Number is the integer 0.
//
// Number is not comparable with ==; use [Number.Equal].
type Number struct {
	nonComparable

	typ  byte // one of numUint64, numInt64, numFloat64, or numVerbatim
	bits uint64
	lit  string
}

const (
	numUint64 byte = iota // the zero Number is uint64(0)
	numInt64
	numFloat64
	numVerbatim
)

// NumberFromLiteral constructs a verbatim Number from a JSON number literal.
// The literal must match the RFC 8259 number grammar exactly, with nothing
// surrounding it; it is otherwise kept as-is, so values beyond the range or
// precision of the machine representations survive re-encoding untouched.
func NumberFromLiteral(lit string) (Number, error) {
	n, err := jsonwire.ConsumeNumber([]byte(lit))
	if err != nil {
		return Number{}, newSyntaxError([]byte(lit), n, err)
	}
	if n < len(lit) {
		str := "invalid character " + jsonwire.QuoteRune(lit[n:]) + " after number"
		return Number{}, syntaxErrorAt([]byte(lit), n, ErrNumberSyntax, str)
	}
	return Number{typ: numVerbatim, lit: lit}, nil
}

// IsVerbatim reports whether the number holds a verbatim literal rather
// than a machine representation.
func (n Number) IsVerbatim() bool {
	return n.typ == numVerbatim
}

// Int64 returns the number as an int64 and reports whether the underlying
// representation is an integer that fits. Floating-point numbers never
// report true, even when integral; verbatim literals report true exactly
// when they spell an integer in the int64 range.
func (n Number) Int64() (int64, bool) {
	switch n.typ {
	case numInt64:
		return int64(n.bits), true
	case numUint64:
		if n.bits <= math.MaxInt64 {
			return int64(n.bits), true
		}
	case numVerbatim:
		neg, u, ok := n.verbatimInt()
		switch {
		case !ok || (!neg && u > math.MaxInt64) || (neg && u > 1<<63):
			return 0, false
		case neg && u == 1<<63:
			return math.MinInt64, true
		case neg:
			return -int64(u), true
		default:
			return int64(u), true
		}
	}
	return 0, false
}

// Uint64 returns the number as a uint64 and reports whether the underlying
// representation is a non-negative integer that fits. Floating-point
// numbers never report true.
func (n Number) Uint64() (uint64, bool) {
	switch n.typ {
	case numUint64:
		return n.bits, true
	case numInt64:
		if int64(n.bits) >= 0 {
			return n.bits, true
		}
	case numVerbatim:
		if neg, u, ok := n.verbatimInt(); ok && !neg {
			return u, true
		}
	}
	return 0, false
}

// Float64 returns the number converted to a float64. Integers beyond 2⁵³
// round to the nearest representable value; verbatim literals beyond the
// float64 range saturate to an infinity.
func (n Number) Float64() float64 {
	switch n.typ {
	case numInt64:
		return float64(int64(n.bits))
	case numFloat64:
		return math.Float64frombits(n.bits)
	case numVerbatim:
		f, _ := strconv.ParseFloat(n.lit, 64)
		return f
	default:
		return float64(n.bits)
	}
}

// verbatimInt splits an integer verbatim literal into its sign and
// magnitude. It reports false for literals with float syntax and for
// magnitudes beyond uint64.
func (n Number) verbatimInt() (neg bool, u uint64, ok bool) {
	lit := n.lit
	if jsonwire.HasFloatSyntax([]byte(lit)) {
		return false, 0, false
	}
	if neg = len(lit) > 0 && lit[0] == '-'; neg {
		lit = lit[1:]
	}
	u, ok = jsonwire.ParseUint([]byte(lit))
	return neg, u, ok
}

// String returns the exact literal the encoder emits for this number.
func (n Number) String() string {
	switch n.typ {
	case numInt64:
		return strconv.FormatInt(int64(n.bits), 10)
	case numFloat64:
		return string(ryu.AppendFloat64(nil, math.Float64frombits(n.bits)))
	case numVerbatim:
		return n.lit
	default:
		return strconv.FormatUint(n.bits, 10)
	}
}

// Equal reports whether two numbers are the same JSON number.
//
// The int64 and uint64 representations unify numerically, so Int(42) equals
// Uint(42). Floating-point numbers compare with ==, so -0 equals 0.
// Integers never equal floating-point numbers, even at equal magnitudes:
// the representations encode differently and decode from distinct literals.
// A verbatim literal equals only a verbatim literal with identical text.
func (n Number) Equal(m Number) bool {
	if n.typ == numVerbatim || m.typ == numVerbatim {
		return n.typ == m.typ && n.lit == m.lit
	}
	if (n.typ == numFloat64) != (m.typ == numFloat64) {
		return false
	}
	if n.typ == numFloat64 {
		return math.Float64frombits(n.bits) == math.Float64frombits(m.bits)
	}
	if n.typ == numInt64 && int64(n.bits) < 0 {
		return m.typ == numInt64 && n.bits == m.bits
	}
	if m.typ == numInt64 && int64(m.bits) < 0 {
		return false
	}
	return n.bits == m.bits
}
