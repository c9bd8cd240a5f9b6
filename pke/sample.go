//
// sample.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// smallPrimesBound limits the trial division of sampled moduli.
const smallPrimesBound = 1024

var smallPrimes = sieve(smallPrimesBound)

func sieve(limit int) []uint64 {
	composite := make([]bool, limit)
	var primes []uint64
	for i := 2; i < limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// SamplePublicKey samples a public key without a secret key. The
// modulus has the shape of a generated modulus:
//
//   - exactly Bits bits
//   - the top Bits/2 bits are the top half of a product of two
//     random Bits/2-bit values with their top two bits set
//   - the bottom Bits/2 bits are uniformly random and the modulus is odd
//   - no prime factor that a product of two Bits/2-bit primes
//     could not have, up to smallPrimesBound
//   - for each prime r dividing the public exponent, the residue
//     modulo r has the distribution of p⋅q where p, q ≢ 0, 1 (mod r)
//
// The public exponent is the scheme's exponent. The factorization of
// the modulus is never computed.
func (rsa *TextbookRSA) SamplePublicKey() (*PublicKey, error) {
	half := rsa.params.Bits / 2
	buf := make([]byte, (half+7)/8)
	a := new(big.Int)
	b := new(big.Int)
	low := new(big.Int)
	bound := smallFactorBound(rsa.params.Bits)
	residues := primeFactors(uint64(rsa.params.PublicExponent))

	for i := 0; i < rsa.params.attempts(); i++ {
		if err := rsa.candidate(buf, half); err != nil {
			return nil, err
		}
		a.SetBytes(buf)
		if err := rsa.candidate(buf, half); err != nil {
			return nil, err
		}
		b.SetBytes(buf)
		if err := rsa.randomBits(buf, half); err != nil {
			return nil, err
		}
		low.SetBytes(buf)

		n := new(big.Int).Mul(a, b)
		n.Rsh(n, uint(half))
		n.Lsh(n, uint(half))
		n.Or(n, low)
		n.SetBit(n, 0, 1)

		if n.BitLen() != rsa.params.Bits || hasSmallFactor(n, bound) {
			continue
		}
		ok, err := rsa.acceptResidues(n, residues)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return &PublicKey{
			N: n,
			E: rsa.params.exponent(),
		}, nil
	}
	return nil, errors.Wrapf(ErrKeyGeneration,
		"no %d-bit public key in %d attempts", rsa.params.Bits,
		rsa.params.attempts())
}

// smallFactorBound returns the trial division bound for bits-bit
// moduli. The prime factors of a generated modulus have their top two
// bits set so they are at least 2^(bits/2-1).
func smallFactorBound(bits int) uint64 {
	half := bits / 2
	if half-1 < 64 && uint64(1)<<(half-1) < smallPrimesBound {
		return uint64(1) << (half - 1)
	}
	return smallPrimesBound
}

// hasSmallFactor tests if n has a prime factor below bound.
func hasSmallFactor(n *big.Int, bound uint64) bool {
	m := new(big.Int)
	for _, p := range smallPrimes {
		if p >= bound {
			break
		}
		m.SetUint64(p)
		if m.Mod(n, m).Sign() == 0 {
			return true
		}
	}
	return false
}

// acceptResidues decides by rejection sampling if n is kept. A
// generated prime p satisfies gcd(e, p-1)=1 so p mod r is in
// [2, r-1] for each prime r dividing e. Of the (r-2)^2 residue pairs
// of p and q, r-2 give N ≡ 1 (mod r), r-3 give each other nonzero
// residue, and none give 0. A uniform nonzero residue x is accepted
// with probability count(x)/(r-2).
func (rsa *TextbookRSA) acceptResidues(n *big.Int, primes []uint64) (
	bool, error) {

	m := new(big.Int)
	for _, r := range primes {
		x := m.Mod(n, new(big.Int).SetUint64(r)).Uint64()
		switch x {
		case 0:
			return false, nil
		case 1:
			continue
		}
		u, err := rand.Int(rsa.rand, new(big.Int).SetUint64(r-2))
		if err != nil {
			return false, errors.WithMessage(err,
				"pke: failed to read random data")
		}
		if u.Uint64() >= r-3 {
			return false, nil
		}
	}
	return true, nil
}

// primeFactors returns the distinct prime factors of n.
func primeFactors(n uint64) []uint64 {
	var result []uint64
	for p := uint64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		result = append(result, p)
		for n%p == 0 {
			n /= p
		}
	}
	if n > 1 {
		result = append(result, n)
	}
	return result
}
