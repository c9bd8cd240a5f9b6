//
// powmod.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mpint

import (
	"math/bits"
)

// PowMod computes base^exponent mod modulus with the left-to-right
// square-and-multiply method. The products are carried in 128 bits
// before reduction so the result is exact for all 64-bit operands.
// PowMod panics if modulus is 0.
func PowMod(base, exponent, modulus uint64) uint64 {
	if modulus == 0 {
		panic("mpint: zero modulus")
	}
	base %= modulus
	r := 1 % modulus

	for i := bits.Len64(exponent) - 1; i >= 0; i-- {
		r = mulMod(r, r, modulus)
		if (exponent>>uint(i))&0x1 == 1 {
			r = mulMod(r, base, modulus)
		}
	}
	return r
}

// PowMod32 is PowMod for 32-bit operands. The accumulator is 64 bits
// wide.
func PowMod32(base, exponent, modulus uint32) uint32 {
	if modulus == 0 {
		panic("mpint: zero modulus")
	}
	m := uint64(modulus)
	b := uint64(base) % m
	r := 1 % m

	for i := bits.Len32(exponent) - 1; i >= 0; i-- {
		r = r * r % m
		if (exponent>>uint(i))&0x1 == 1 {
			r = r * b % m
		}
	}
	return uint32(r)
}

// mulMod returns a*b mod m for a, b < m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}
