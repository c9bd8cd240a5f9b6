//
// powmod_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mpint

import (
	"math"
	"math/big"
	"math/rand"
	"testing"
)

var powModTests = []struct {
	base     uint64
	exponent uint64
	modulus  uint64
	expected uint64
}{
	{27, 13, 16, 11},
	{2, 10, 1000, 24},
	{7, 0, 13, 1},
	{7, 0, 1, 0},
	{0, 0, 5, 1},
	{0, 5, 5, 0},
	{12345, 6789, 1, 0},
	{math.MaxUint64, 2, math.MaxUint64, 0},
	{math.MaxUint64 - 1, 2, math.MaxUint64, 1},
	{11, 13, 4150806161, 457302894},
}

func TestPowMod(t *testing.T) {
	for _, test := range powModTests {
		r := PowMod(test.base, test.exponent, test.modulus)
		if r != test.expected {
			t.Errorf("PowMod(%v, %v, %v)=%v, expected %v",
				test.base, test.exponent, test.modulus, r, test.expected)
		}
	}
}

func TestPowMod32(t *testing.T) {
	for _, test := range powModTests {
		if test.base > math.MaxUint32 || test.exponent > math.MaxUint32 ||
			test.modulus > math.MaxUint32 {
			continue
		}
		r := PowMod32(uint32(test.base), uint32(test.exponent),
			uint32(test.modulus))
		if uint64(r) != test.expected {
			t.Errorf("PowMod32(%v, %v, %v)=%v, expected %v",
				test.base, test.exponent, test.modulus, r, test.expected)
		}
	}
}

func TestPowModRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		base := rnd.Uint64()
		exponent := rnd.Uint64()
		modulus := rnd.Uint64() | 1
		if i%4 == 0 {
			// Near-maximum moduli square past 64 bits.
			modulus |= 1 << 63
		}

		r := PowMod(base, exponent, modulus)
		if r >= modulus {
			t.Fatalf("PowMod(%v, %v, %v)=%v out of range",
				base, exponent, modulus, r)
		}
		expected := new(big.Int).Exp(
			new(big.Int).SetUint64(base),
			new(big.Int).SetUint64(exponent),
			new(big.Int).SetUint64(modulus))
		if expected.Uint64() != r {
			t.Fatalf("PowMod(%v, %v, %v)=%v, expected %v",
				base, exponent, modulus, r, expected)
		}

		r32 := PowMod32(uint32(base), uint32(exponent), uint32(modulus))
		if r32 >= uint32(modulus) {
			t.Fatalf("PowMod32(%v, %v, %v)=%v out of range",
				uint32(base), uint32(exponent), uint32(modulus), r32)
		}
		if r32 != uint32(PowMod(uint64(uint32(base)),
			uint64(uint32(exponent)), uint64(uint32(modulus)))) {
			t.Fatalf("PowMod32 and PowMod disagree")
		}
	}
}

func TestPowModZeroModulus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("PowMod with zero modulus did not panic")
		}
	}()
	PowMod(1, 1, 0)
}

func BenchmarkPowMod(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PowMod(uint64(i), 65537, 18446744073709551557)
	}
}
