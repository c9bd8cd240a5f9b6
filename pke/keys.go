//
// keys.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/markkurossi/pkeot/mpint"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// PublicKey implements an RSA public key.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

type rawPublicKey struct {
	N []byte
	E []byte
}

// Size returns the modulus size in bytes.
func (pk *PublicKey) Size() int {
	return (pk.N.BitLen() + 7) / 8
}

// Equal tests if the argument key is equal to this key.
func (pk *PublicKey) Equal(o *PublicKey) bool {
	return pk.N.Cmp(o.N) == 0 && pk.E.Cmp(o.E) == 0
}

// MarshalBinary encodes the key in CBOR.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(&rawPublicKey{
		N: pk.N.Bytes(),
		E: pk.E.Bytes(),
	})
}

// UnmarshalBinary decodes the key from its CBOR encoding.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var raw rawPublicKey
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "pke: failed to decode public key")
	}
	if len(raw.N) == 0 || len(raw.E) == 0 {
		return errors.New("pke: truncated public key")
	}
	pk.N = mpint.FromBytes(raw.N)
	pk.E = mpint.FromBytes(raw.E)
	return nil
}

// Fingerprint returns a short BLAKE3 fingerprint of the key.
func (pk *PublicKey) Fingerprint() string {
	data, err := pk.MarshalBinary()
	if err != nil {
		return "?"
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func (pk *PublicKey) String() string {
	return fmt.Sprintf("{N=%v, e=%v}", pk.N, pk.E)
}

// SecretKey implements an RSA secret key. The primes P and Q are
// optional; when set, decryption uses the CRT.
type SecretKey struct {
	N *big.Int
	D *big.Int
	P *big.Int
	Q *big.Int

	modulus *mpint.Modulus
}

type rawSecretKey struct {
	N []byte
	D []byte
	P []byte `cbor:",omitempty"`
	Q []byte `cbor:",omitempty"`
}

func newSecretKey(n, d, p, q *big.Int) *SecretKey {
	sk := &SecretKey{
		N: n,
		D: d,
		P: p,
		Q: q,
	}
	sk.init()
	return sk
}

func (sk *SecretKey) init() {
	if sk.P != nil && sk.Q != nil {
		sk.modulus = mpint.ModulusFromFactors(sk.P, sk.Q)
	} else {
		sk.modulus = mpint.NewModulus(sk.N)
	}
}

// Exp returns c^d mod N.
func (sk *SecretKey) Exp(c *big.Int) *big.Int {
	if sk.modulus == nil {
		sk.init()
	}
	return sk.modulus.Exp(c, sk.D)
}

// MarshalBinary encodes the key in CBOR.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	raw := &rawSecretKey{
		N: sk.N.Bytes(),
		D: sk.D.Bytes(),
	}
	if sk.P != nil && sk.Q != nil {
		raw.P = sk.P.Bytes()
		raw.Q = sk.Q.Bytes()
	}
	return cbor.Marshal(raw)
}

// UnmarshalBinary decodes the key from its CBOR encoding.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	var raw rawSecretKey
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "pke: failed to decode secret key")
	}
	if len(raw.N) == 0 || len(raw.D) == 0 {
		return errors.New("pke: truncated secret key")
	}
	sk.N = mpint.FromBytes(raw.N)
	sk.D = mpint.FromBytes(raw.D)
	sk.P = nil
	sk.Q = nil
	if len(raw.P) > 0 && len(raw.Q) > 0 {
		sk.P = mpint.FromBytes(raw.P)
		sk.Q = mpint.FromBytes(raw.Q)
	}
	sk.init()
	return nil
}

// KeyFromPrimes creates a keypair from the primes p and q and the
// public exponent e. The private exponent is the inverse of e modulo
// φ(N)=(p-1)(q-1).
func KeyFromPrimes(p, q, e *big.Int) (*SecretKey, *PublicKey, error) {
	if p.Cmp(q) == 0 {
		return nil, nil, errors.Wrap(ErrInvalidParams, "equal primes")
	}
	one := big.NewInt(1)
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(mpint.Sub(p, one), mpint.Sub(q, one))

	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, nil, errors.Wrapf(ErrInvalidParams,
			"e=%v not invertible mod φ(N)", e)
	}
	sk := newSecretKey(n, d, new(big.Int).Set(p), new(big.Int).Set(q))
	pk := &PublicKey{
		N: new(big.Int).Set(n),
		E: new(big.Int).Set(e),
	}
	return sk, pk, nil
}
