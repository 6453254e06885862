// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ryu

import (
	"math"
	"strconv"
)

// AppendFloat64 appends the ECMAScript rendering of the finite value f to
// dst and returns the extended buffer.
//
// The digits are the shortest run that parses back to exactly f.
// Magnitudes in [1e-6, 1e21) are rendered positionally; everything else uses
// exponential notation with a mandatory exponent sign and no zero padding.
// Negative zero renders as "-0".
//
// The behavior is undefined for NaN and infinities; callers reject those
// before calling.
func AppendFloat64(dst []byte, f float64) []byte {
	if f == 0 {
		if math.Signbit(f) {
			return append(dst, '-', '0')
		}
		return append(dst, '0')
	}

	b := math.Float64bits(f)
	if b>>63 != 0 {
		dst = append(dst, '-')
	}
	ieeeMantissa := b & (1<<mantBits - 1)
	ieeeExponent := int(b >> mantBits & (1<<expBits - 1))

	d, ok := smallInt(ieeeMantissa, ieeeExponent)
	if ok {
		for d.mantissa%10 == 0 {
			d.mantissa /= 10
			d.exponent++
		}
	} else {
		d = shortestDecimal(ieeeMantissa, ieeeExponent)
	}
	return appendDecimal(dst, d)
}

// appendDecimal renders mantissa * 10^exponent following the notation rules
// of ECMA-262 section 7.1.12.1, steps 5 through 10.
func appendDecimal(dst []byte, d decimal) []byte {
	var scratch [20]byte
	digits := strconv.AppendUint(scratch[:0], d.mantissa, 10)
	k := len(digits)
	n := k + d.exponent // position of the decimal point

	switch {
	case k <= n && n <= 21:
		// An integer: all digits, then n-k zeros.
		dst = append(dst, digits...)
		dst = appendZeros(dst, n-k)
	case 0 < n && n <= 21:
		// The decimal point falls inside the digit run.
		dst = append(dst, digits[:n]...)
		dst = append(dst, '.')
		dst = append(dst, digits[n:]...)
	case -6 < n && n <= 0:
		// Small magnitude: "0." and -n leading zeros.
		dst = append(dst, '0', '.')
		dst = appendZeros(dst, -n)
		dst = append(dst, digits...)
	default:
		// Exponential notation.
		dst = append(dst, digits[0])
		if k > 1 {
			dst = append(dst, '.')
			dst = append(dst, digits[1:]...)
		}
		dst = append(dst, 'e')
		if n-1 < 0 {
			dst = append(dst, '-')
			dst = strconv.AppendInt(dst, int64(1-n), 10)
		} else {
			dst = append(dst, '+')
			dst = strconv.AppendInt(dst, int64(n-1), 10)
		}
	}
	return dst
}

func appendZeros(dst []byte, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, '0')
	}
	return dst
}
