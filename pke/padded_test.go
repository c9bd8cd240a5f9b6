//
// padded_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddedRSA(t *testing.T) {
	rsa := NewPaddedRSA(newScheme(t, 512, "padded"))
	assert.Equal(t, 63, rsa.BlockLen())
	assert.Equal(t, 52, rsa.MaxMessageLen())

	sk, pk, err := rsa.GenerateKey()
	require.NoError(t, err)

	for _, msg := range [][]byte{
		{},
		[]byte("hello, world"),
		bytes.Repeat([]byte{0xa5}, rsa.MaxMessageLen()),
	} {
		c1, err := rsa.Encrypt(pk, msg)
		require.NoError(t, err)
		c2, err := rsa.Encrypt(pk, msg)
		require.NoError(t, err)
		assert.NotEqual(t, 0, c1.Cmp(c2), "encryption is deterministic")

		m, err := rsa.Decrypt(sk, c1)
		require.NoError(t, err)
		assert.Equal(t, msg, m)
	}

	_, err = rsa.Encrypt(pk, make([]byte, rsa.MaxMessageLen()+1))
	assert.ErrorIs(t, err, ErrMessageRange)
}

func TestPaddedRSASampledKey(t *testing.T) {
	rsa := NewPaddedRSA(newScheme(t, 512, "padded sample"))
	sk, _, err := rsa.GenerateKey()
	require.NoError(t, err)

	fake, err := rsa.SamplePublicKey()
	require.NoError(t, err)

	c, err := rsa.Encrypt(fake, []byte("secret"))
	require.NoError(t, err)
	assert.True(t, c.Cmp(fake.N) < 0)

	if c.Cmp(sk.N) < 0 {
		m, err := rsa.Decrypt(sk, c)
		if err == nil {
			assert.NotEqual(t, []byte("secret"), m)
		}
	}
}
