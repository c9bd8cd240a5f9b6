//
// rsa.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/markkurossi/pkeot/mpint"
	"github.com/pkg/errors"
)

var (
	_ PKE[*big.Int, *big.Int, *SecretKey, *PublicKey] = &TextbookRSA{}
	_ OSPK[*PublicKey]                                 = &TextbookRSA{}
)

// TextbookRSA implements unpadded RSA encryption. Encryption is
// deterministic.
type TextbookRSA struct {
	params Params
	rand   io.Reader
}

// NewTextbookRSA creates a new RSA scheme with the parameters. The
// random source is used for key generation and key sampling; nil
// random selects crypto/rand.Reader.
func NewTextbookRSA(params Params, random io.Reader) (*TextbookRSA, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if random == nil {
		random = rand.Reader
	}
	return &TextbookRSA{
		params: params,
		rand: &lockedReader{
			r: random,
		},
	}, nil
}

// Params returns the scheme parameters.
func (rsa *TextbookRSA) Params() Params {
	return rsa.params
}

// Name returns the scheme name.
func (rsa *TextbookRSA) Name() string {
	return fmt.Sprintf("rsa-%d", rsa.params.Bits)
}

// MessageBound returns the exclusive upper bound 2^(Bits-1) of
// messages. All generated and sampled moduli are above the bound.
func (rsa *TextbookRSA) MessageBound() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(rsa.params.Bits-1))
}

// GenerateKey generates a new RSA keypair.
func (rsa *TextbookRSA) GenerateKey() (*SecretKey, *PublicKey, error) {
	bits := rsa.params.Bits / 2
	e := rsa.params.exponent()

	p, err := rsa.generatePrime(bits, e)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "pke: prime p")
	}
	for i := 0; ; i++ {
		if i >= rsa.params.attempts() {
			return nil, nil, errors.WithMessage(ErrKeyGeneration,
				"pke: no distinct prime q")
		}
		q, err := rsa.generatePrime(bits, e)
		if err != nil {
			return nil, nil, errors.WithMessage(err, "pke: prime q")
		}
		if p.Cmp(q) == 0 {
			continue
		}
		return KeyFromPrimes(p, q, e)
	}
}

// generatePrime searches for a prime p of bits bits with
// gcd(e, p-1)=1. The top two bits of the candidates are set so that
// the product of two such primes has exactly 2⋅bits bits.
func (rsa *TextbookRSA) generatePrime(bits int, e *big.Int) (
	*big.Int, error) {

	buf := make([]byte, (bits+7)/8)
	one := big.NewInt(1)
	p := new(big.Int)
	pm1 := new(big.Int)
	gcd := new(big.Int)

	for i := 0; i < rsa.params.attempts(); i++ {
		if err := rsa.candidate(buf, bits); err != nil {
			return nil, err
		}
		buf[len(buf)-1] |= 1
		p.SetBytes(buf)

		if !p.ProbablyPrime(rsa.params.Rounds) {
			continue
		}
		pm1.Sub(p, one)
		if gcd.GCD(nil, nil, e, pm1).Cmp(one) != 0 {
			continue
		}
		return p, nil
	}
	return nil, errors.Wrapf(ErrKeyGeneration,
		"no %d-bit prime in %d attempts", bits, rsa.params.attempts())
}

// candidate reads a random bits-bit value with the top two bits set
// into buf.
func (rsa *TextbookRSA) candidate(buf []byte, bits int) error {
	if err := rsa.randomBits(buf, bits); err != nil {
		return err
	}
	b := topBits(bits)
	if b >= 2 {
		buf[0] |= 3 << (b - 2)
	} else {
		buf[0] |= 1
		buf[1] |= 0x80
	}
	return nil
}

// Encrypt encrypts the message m ∈ [0, N) with the public key.
func (rsa *TextbookRSA) Encrypt(pk *PublicKey, m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, ErrMessageRange
	}
	return mpint.Exp(m, pk.E, pk.N), nil
}

// Decrypt decrypts the ciphertext c ∈ [0, N) with the secret key.
func (rsa *TextbookRSA) Decrypt(sk *SecretKey, c *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(sk.N) >= 0 {
		return nil, ErrMessageRange
	}
	return sk.Exp(c), nil
}

// randomBits reads a uniformly random value below 2^bits into buf.
func (rsa *TextbookRSA) randomBits(buf []byte, bits int) error {
	if _, err := io.ReadFull(rsa.rand, buf); err != nil {
		return errors.WithMessage(err, "pke: failed to read random data")
	}
	buf[0] &= uint8(int(1<<topBits(bits)) - 1)
	return nil
}

// topBits returns the number of value bits in the first byte of a
// bits-bit big-endian value.
func topBits(bits int) uint {
	b := uint(bits % 8)
	if b == 0 {
		b = 8
	}
	return b
}

type lockedReader struct {
	m sync.Mutex
	r io.Reader
}

func (r *lockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.r.Read(p)
}
