// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ryu

import "math/big"

// uint128 is a 128-bit unsigned integer split into two 64-bit halves.
type uint128 struct {
	hi uint64
	lo uint64
}

const (
	pow5Bitcount    = 125 // bits kept of each power of five
	pow5InvBitcount = 125 // bits kept of each inverse power of five

	pow5TableSize    = 326 // covers 5^i for the full binary64 exponent range
	pow5InvTableSize = 292
)

var (
	pow5Split    [pow5TableSize]uint128
	pow5InvSplit [pow5InvTableSize]uint128
)

// The conversion multiplies by 125-bit truncations of 5^i and 2^k/5^q.
// Deriving the tables once at startup keeps them reviewable; embedding them
// would be over six hundred lines of opaque 128-bit constants. The values
// are pinned by TestPowerTables and, transitively, by every conversion test.
func init() {
	one := big.NewInt(1)
	five := big.NewInt(5)
	mask64 := new(big.Int).Sub(new(big.Int).Lsh(one, 64), one)

	split := func(v *big.Int) uint128 {
		return uint128{
			hi: new(big.Int).Rsh(v, 64).Uint64(),
			lo: new(big.Int).And(v, mask64).Uint64(),
		}
	}

	pow := new(big.Int).Set(one) // 5^i
	for i := range pow5Split {
		// floor(5^i / 2^(pow5bits(i) - pow5Bitcount))
		v := new(big.Int).Set(pow)
		if shift := pow5bits(i) - pow5Bitcount; shift > 0 {
			v.Rsh(v, uint(shift))
		} else {
			v.Lsh(v, uint(-shift))
		}
		pow5Split[i] = split(v)
		pow.Mul(pow, five)
	}

	pow.Set(one) // 5^q
	for q := range pow5InvSplit {
		// floor(2^(pow5bits(q) - 1 + pow5InvBitcount) / 5^q) + 1
		v := new(big.Int).Lsh(one, uint(pow5bits(q)-1+pow5InvBitcount))
		v.Quo(v, pow)
		v.Add(v, one)
		pow5InvSplit[q] = split(v)
		pow.Mul(pow, five)
	}
}
