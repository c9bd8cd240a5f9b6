//
// mpint.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package mpint implements the integer arithmetic of the ring Z/NZ
// used by the public key encryption schemes.
package mpint

import (
	"math/big"
)

// FromBytes creates a non-negative integer from the big-endian bytes.
func FromBytes(data []byte) *big.Int {
	return big.NewInt(0).SetBytes(data)
}

// Sub returns a-b.
func Sub(a, b *big.Int) *big.Int {
	return big.NewInt(0).Sub(a, b)
}

// Exp returns x^y mod m. Operands that fit in 64 bits are computed
// with PowMod; larger operands use arbitrary precision arithmetic.
func Exp(x, y, m *big.Int) *big.Int {
	if fitsUint64(x) && fitsUint64(y) && fitsUint64(m) && m.Sign() > 0 {
		r := PowMod(x.Uint64(), y.Uint64(), m.Uint64())
		return big.NewInt(0).SetUint64(r)
	}
	return big.NewInt(0).Exp(x, y, m)
}

// Bytes returns the big-endian bytes of x left-padded with zeros to
// size bytes. Values wider than size are returned unpadded.
func Bytes(x *big.Int, size int) []byte {
	data := x.Bytes()
	if len(data) >= size {
		return data
	}
	result := make([]byte, size)
	copy(result[size-len(data):], data)
	return result
}

func fitsUint64(x *big.Int) bool {
	return x.Sign() >= 0 && x.IsUint64()
}
