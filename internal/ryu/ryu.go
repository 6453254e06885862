// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ryu converts IEEE 754 double-precision values to the decimal
// form produced by ECMAScript engines: the shortest digit sequence that
// parses back to exactly the same value, rendered with the engine's
// fixed/exponential notation rules.
//
// Digit generation follows the Ryū algorithm (Ulf Adams, PLDI 2018).
// Rendering follows ECMA-262 section 7.1.12.1.
package ryu

import "math/bits"

const (
	mantBits = 52
	expBits  = 11
	expBias  = 1023
)

// decimal is a decimal floating-point number, mantissa * 10^exponent.
// The mantissa carries no trailing zero digits.
type decimal struct {
	mantissa uint64
	exponent int
}

// pow5bits returns ceil(log2(5^e)), or 1 when e == 0.
// Valid for 0 <= e <= 3528.
func pow5bits(e int) int {
	return int(uint32(e)*1217359>>19) + 1
}

// log10pow2 returns floor(log10(2^e)). Valid for 0 <= e <= 1650.
func log10pow2(e int) int {
	return int(uint32(e) * 78913 >> 18)
}

// log10pow5 returns floor(log10(5^e)). Valid for 0 <= e <= 2620.
func log10pow5(e int) int {
	return int(uint32(e) * 732923 >> 20)
}

// mulShift64 returns floor((m * mul) / 2^shift) for 64 < shift < 128.
func mulShift64(m uint64, mul uint128, shift int) uint64 {
	hi1, lo1 := bits.Mul64(m, mul.hi)
	hi0, _ := bits.Mul64(m, mul.lo)
	sum, carry := bits.Add64(hi0, lo1, 0)
	return (hi1+carry)<<(128-shift) | sum>>(shift-64)
}

// mulShiftAll64 applies mulShift64 to the scaled value 4*m2 and to both
// boundaries of its rounding interval.
func mulShiftAll64(m2 uint64, mul uint128, shift int, mmShift uint64) (vr, vp, vm uint64) {
	vr = mulShift64(4*m2, mul, shift)
	vp = mulShift64(4*m2+2, mul, shift)
	vm = mulShift64(4*m2-1-mmShift, mul, shift)
	return vr, vp, vm
}

// pow5Factor returns the number of times v is divisible by 5.
func pow5Factor(v uint64) int {
	// 5*mInv5 == 1 (mod 2^64), so multiples of 5 and only those map to
	// values at most nDiv5 == floor(2^64 / 5).
	const mInv5 = 14757395258967641293
	const nDiv5 = 3689348814741910323
	n := 0
	for {
		v *= mInv5
		if v > nDiv5 {
			return n
		}
		n++
	}
}

func multipleOfPowerOf5(v uint64, p int) bool {
	return pow5Factor(v) >= p
}

func multipleOfPowerOf2(v uint64, p int) bool {
	return v&(1<<uint(p)-1) == 0
}

// smallInt handles doubles that are exact integers below 2^53, covering
// counters and hand-written values without the full algorithm. The returned
// mantissa may carry trailing zero digits; the caller strips them.
func smallInt(ieeeMantissa uint64, ieeeExponent int) (decimal, bool) {
	m2 := uint64(1)<<mantBits | ieeeMantissa
	e2 := ieeeExponent - expBias - mantBits

	if e2 > 0 {
		// 2^53 or larger.
		return decimal{}, false
	}
	if e2 < -52 {
		// Has a fractional part smaller than any 52-bit significand.
		return decimal{}, false
	}
	// m2 is in [2^52, 2^53); the value is an integer iff the low -e2 bits
	// of the significand are zero.
	if m2&(uint64(1)<<uint(-e2)-1) != 0 {
		return decimal{}, false
	}
	return decimal{mantissa: m2 >> uint(-e2)}, true
}

// shortestDecimal returns the decimal representation of the finite, nonzero
// double with the given IEEE fields that uses the fewest digits while still
// converting back to exactly the same double. Ties round to even.
func shortestDecimal(ieeeMantissa uint64, ieeeExponent int) decimal {
	var m2 uint64
	var e2 int
	if ieeeExponent == 0 {
		m2 = ieeeMantissa
		e2 = 1 - expBias - mantBits - 2
	} else {
		m2 = uint64(1)<<mantBits | ieeeMantissa
		e2 = ieeeExponent - expBias - mantBits - 2
	}
	acceptBounds := m2&1 == 0

	// The rounding interval of the value, scaled by 4 so that the halfway
	// points become integers: mv is the value itself, mv+2 the upper
	// boundary, and mv-1-mmShift the lower boundary.
	mv := 4 * m2
	var mmShift uint64
	if ieeeMantissa != 0 || ieeeExponent <= 1 {
		mmShift = 1
	}

	// Scale the value and both boundaries by a power of 10 chosen so that
	// the shortest digit run can be read off the integer parts, tracking
	// whether the discarded fractional parts were exactly zero.
	var vr, vp, vm uint64
	var e10 int
	var vmIsTrailingZeros, vrIsTrailingZeros bool
	if e2 >= 0 {
		q := log10pow2(e2)
		if e2 > 3 {
			q--
		}
		e10 = q
		k := pow5InvBitcount + pow5bits(q) - 1
		vr, vp, vm = mulShiftAll64(m2, pow5InvSplit[q], -e2+q+k, mmShift)
		if q <= 21 {
			// At most one of mv-1-mmShift, mv, and mv+2 is a
			// multiple of 5, given that mv has two trailing zero bits.
			if mv%5 == 0 {
				vrIsTrailingZeros = multipleOfPowerOf5(mv, q)
			} else if acceptBounds {
				vmIsTrailingZeros = multipleOfPowerOf5(mv-1-mmShift, q)
			} else if multipleOfPowerOf5(mv+2, q) {
				vp--
			}
		}
	} else {
		q := log10pow5(-e2)
		if -e2 > 1 {
			q--
		}
		e10 = q + e2
		i := -e2 - q
		k := pow5bits(i) - pow5Bitcount
		vr, vp, vm = mulShiftAll64(m2, pow5Split[i], q-k, mmShift)
		if q <= 1 {
			// {vr,vp,vm} has trailing zeros iff {mv,mv+2,mv-1-mmShift}
			// has at least q trailing zero bits; mv always has two.
			vrIsTrailingZeros = true
			if acceptBounds {
				vmIsTrailingZeros = mmShift == 1
			} else {
				vp--
			}
		} else if q < 63 {
			vrIsTrailingZeros = multipleOfPowerOf2(mv, q)
		}
	}

	// Remove digits until one more removal would collapse the interval.
	var removed int
	var lastRemovedDigit uint8
	var out uint64
	if vmIsTrailingZeros || vrIsTrailingZeros {
		// Rare: the exactness bookkeeping matters.
		for vp/10 > vm/10 {
			vmIsTrailingZeros = vmIsTrailingZeros && vm%10 == 0
			vrIsTrailingZeros = vrIsTrailingZeros && lastRemovedDigit == 0
			lastRemovedDigit = uint8(vr % 10)
			vr /= 10
			vp /= 10
			vm /= 10
			removed++
		}
		if vmIsTrailingZeros {
			for vm%10 == 0 {
				vrIsTrailingZeros = vrIsTrailingZeros && lastRemovedDigit == 0
				lastRemovedDigit = uint8(vr % 10)
				vr /= 10
				vp /= 10
				vm /= 10
				removed++
			}
		}
		if vrIsTrailingZeros && lastRemovedDigit == 5 && vr%2 == 0 {
			// The exact value ends in ...500...0; round to even.
			lastRemovedDigit = 4
		}
		out = vr
		if (vr == vm && (!acceptBounds || !vmIsTrailingZeros)) || lastRemovedDigit >= 5 {
			out++
		}
	} else {
		// Common case. Peeling two digits at a time first saves a few
		// divisions on typical inputs.
		roundUp := false
		if vp/100 > vm/100 {
			roundUp = vr%100 >= 50
			vr /= 100
			vp /= 100
			vm /= 100
			removed += 2
		}
		for vp/10 > vm/10 {
			roundUp = vr%10 >= 5
			vr /= 10
			vp /= 10
			vm /= 10
			removed++
		}
		out = vr
		if vr == vm || roundUp {
			out++
		}
	}
	return decimal{mantissa: out, exponent: e10 + removed}
}
