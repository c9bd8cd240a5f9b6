//
// modulus.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mpint

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus implements exponentiation modulo n. When the factorization
// n = p⋅q is known, xᵉ (mod n) is computed with two exponentiations
// modulo p and q and recombined with the CRT.
type Modulus struct {
	n *saferith.Modulus
	// n = p⋅q
	p, q *saferith.Modulus
	// pInv = p⁻¹ (mod q)
	pNat, pInv *saferith.Nat
}

// NewModulus creates a modulus without a known factorization.
func NewModulus(n *big.Int) *Modulus {
	return &Modulus{
		n: saferith.ModulusFromNat(natFromBig(n)),
	}
}

// ModulusFromFactors creates a modulus n = p⋅q with the cached values
// needed for CRT exponentiation.
func ModulusFromFactors(p, q *big.Int) *Modulus {
	pNat := natFromBig(p)
	qNat := natFromBig(q)

	nNat := new(saferith.Nat).Mul(pNat, qNat, -1)
	qMod := saferith.ModulusFromNat(qNat)

	return &Modulus{
		n:    saferith.ModulusFromNat(nNat),
		p:    saferith.ModulusFromNat(pNat),
		q:    qMod,
		pNat: pNat,
		pInv: new(saferith.Nat).ModInverse(pNat, qMod),
	}
}

// Exp returns xᵉ (mod n).
func (m *Modulus) Exp(x, e *big.Int) *big.Int {
	xNat := natFromBig(x)
	eNat := natFromBig(e)

	if !m.hasFactorization() {
		return new(saferith.Nat).Exp(xNat, eNat, m.n).Big()
	}

	var xp, xq saferith.Nat
	xp.Exp(xNat, eNat, m.p) // x₁ = xᵉ (mod p)
	xq.Exp(xNat, eNat, m.q) // x₂ = xᵉ (mod q)

	// r = x₁ + p ⋅ [p⁻¹ (mod q)] ⋅ [x₂ - x₁] (mod n)
	r := xq.ModSub(&xq, &xp, m.n)
	r.ModMul(r, m.pInv, m.n)
	r.ModMul(r, m.pNat, m.n)
	r.ModAdd(r, &xp, m.n)

	return r.Big()
}

func (m *Modulus) hasFactorization() bool {
	return m.p != nil && m.q != nil && m.pNat != nil && m.pInv != nil
}

func natFromBig(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBig(x, x.BitLen())
}
