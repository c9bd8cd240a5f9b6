//
// rsa_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"math/big"
	"testing"

	"github.com/markkurossi/pkeot/prg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func newScheme(t testing.TB, bits int, seed string) *TextbookRSA {
	rsa, err := NewTextbookRSA(DefaultParams(bits), prg.NewFromString(seed))
	require.NoError(t, err)
	return rsa
}

func TestKeyFromPrimesReference(t *testing.T) {
	sk, pk, err := KeyFromPrimes(big.NewInt(63691), big.NewInt(65171),
		big.NewInt(13))
	require.NoError(t, err)
	assert.Equal(t, int64(4150806161), pk.N.Int64())
	assert.Equal(t, int64(1277131477), sk.D.Int64())

	rsa := newScheme(t, 32, "reference")
	c, err := rsa.Encrypt(pk, big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, int64(457302894), c.Int64())

	m, err := rsa.Decrypt(sk, c)
	require.NoError(t, err)
	assert.Equal(t, int64(11), m.Int64())
}

func TestKeyFromPrimesInvalid(t *testing.T) {
	_, _, err := KeyFromPrimes(big.NewInt(7), big.NewInt(7), big.NewInt(5))
	assert.ErrorIs(t, err, ErrInvalidParams)

	// φ = 6⋅10 = 60 and gcd(3, 60) = 3.
	_, _, err = KeyFromPrimes(big.NewInt(7), big.NewInt(11), big.NewInt(3))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestGenerateKey(t *testing.T) {
	for _, bits := range []int{16, 32, 64, 128, 512} {
		rsa := newScheme(t, bits, "generate")
		sk, pk, err := rsa.GenerateKey()
		require.NoError(t, err, "bits=%d", bits)

		assert.Equal(t, bits, pk.N.BitLen(), "modulus size")
		assert.Equal(t, 0, pk.N.Cmp(sk.N))
		assert.Equal(t, int64(DefaultPublicExponent), pk.E.Int64())
		assert.True(t, pk.N.Cmp(rsa.MessageBound()) > 0)

		one := big.NewInt(1)
		phi := new(big.Int).Mul(new(big.Int).Sub(sk.P, one),
			new(big.Int).Sub(sk.Q, one))
		ed := new(big.Int).Mul(pk.E, sk.D)
		assert.Equal(t, 0, ed.Mod(ed, phi).Cmp(one), "e⋅d ≢ 1 (mod φ)")

		messages := []*big.Int{
			big.NewInt(0),
			big.NewInt(1),
			new(big.Int).Sub(pk.N, one),
			new(big.Int).Rsh(pk.N, 1),
		}
		for _, m := range messages {
			c, err := rsa.Encrypt(pk, m)
			require.NoError(t, err)
			assert.True(t, c.Cmp(pk.N) < 0)

			d, err := rsa.Decrypt(sk, c)
			require.NoError(t, err)
			assert.Equal(t, 0, m.Cmp(d), "bits=%d: m=%v, got %v",
				bits, m, d)
		}
	}
}

func TestGenerateKeyReproducible(t *testing.T) {
	sk1, pk1, err := newScheme(t, 128, "seed").GenerateKey()
	require.NoError(t, err)
	sk2, pk2, err := newScheme(t, 128, "seed").GenerateKey()
	require.NoError(t, err)

	assert.True(t, pk1.Equal(pk2))
	assert.Equal(t, 0, sk1.D.Cmp(sk2.D))

	_, pk3, err := newScheme(t, 128, "other seed").GenerateKey()
	require.NoError(t, err)
	assert.False(t, pk1.Equal(pk3))
}

func TestGenerateKeyBudget(t *testing.T) {
	params := DefaultParams(32)
	params.MaxAttempts = 10

	// With zero entropy every candidate is 0xc001 = 13⋅3781.
	rsa, err := NewTextbookRSA(params, zeroReader{})
	require.NoError(t, err)

	_, _, err = rsa.GenerateKey()
	assert.ErrorIs(t, err, ErrKeyGeneration)

	_, err = rsa.SamplePublicKey()
	assert.ErrorIs(t, err, ErrKeyGeneration)
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams(DefaultBits).Validate())

	invalid := []Params{
		DefaultParams(8),
		DefaultParams(65),
		{Bits: 64, PublicExponent: 4},
		{Bits: 64, PublicExponent: 1},
		{Bits: 64, PublicExponent: 3, MaxAttempts: -1},
		{Bits: 64, PublicExponent: 3, Rounds: -1},
	}
	for _, params := range invalid {
		_, err := NewTextbookRSA(params, nil)
		assert.ErrorIs(t, err, ErrInvalidParams, "%+v", params)
	}
}

func TestEncryptRange(t *testing.T) {
	rsa := newScheme(t, 64, "range")
	sk, pk, err := rsa.GenerateKey()
	require.NoError(t, err)

	_, err = rsa.Encrypt(pk, pk.N)
	assert.ErrorIs(t, err, ErrMessageRange)
	_, err = rsa.Encrypt(pk, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrMessageRange)
	_, err = rsa.Decrypt(sk, new(big.Int).Add(sk.N, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrMessageRange)
}

func TestKeyEncoding(t *testing.T) {
	rsa := newScheme(t, 256, "encoding")
	sk, pk, err := rsa.GenerateKey()
	require.NoError(t, err)

	data, err := pk.MarshalBinary()
	require.NoError(t, err)
	var pk2 PublicKey
	require.NoError(t, pk2.UnmarshalBinary(data))
	assert.True(t, pk.Equal(&pk2))
	assert.Equal(t, pk.Fingerprint(), pk2.Fingerprint())
	assert.Len(t, pk.Fingerprint(), 16)

	data, err = sk.MarshalBinary()
	require.NoError(t, err)
	var sk2 SecretKey
	require.NoError(t, sk2.UnmarshalBinary(data))

	m := big.NewInt(424242)
	c, err := rsa.Encrypt(&pk2, m)
	require.NoError(t, err)
	d, err := rsa.Decrypt(&sk2, c)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Cmp(d))

	// Without the primes decryption does not use the CRT.
	plain := &SecretKey{N: sk.N, D: sk.D}
	d, err = rsa.Decrypt(plain, c)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Cmp(d))

	assert.Error(t, pk2.UnmarshalBinary([]byte{0xff}))
	assert.Error(t, sk2.UnmarshalBinary(nil))
}

func benchmarkGenerateKey(b *testing.B, bits int) {
	rsa, err := NewTextbookRSA(DefaultParams(bits), nil)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := rsa.GenerateKey(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateKey512(b *testing.B) {
	benchmarkGenerateKey(b, 512)
}

func BenchmarkGenerateKey1024(b *testing.B) {
	benchmarkGenerateKey(b, 1024)
}
