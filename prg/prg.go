//
// prg.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package prg implements a seeded pseudorandom entropy source. The
// output is the ChaCha20 keystream keyed by the BLAKE3 hash of the
// seed so key generation and key sampling can be replayed in tests.
package prg

import (
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

var (
	_ io.Reader = &Reader{}
)

// Reader implements io.Reader returning the keystream. It is safe
// for concurrent use.
type Reader struct {
	m      sync.Mutex
	cipher *chacha20.Cipher
}

// New creates a new reader for the seed.
func New(seed []byte) *Reader {
	key := blake3.Sum256(seed)
	var nonce [chacha20.NonceSize]byte

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed.
		panic(err)
	}
	return &Reader{
		cipher: c,
	}
}

// NewFromString creates a new reader for the seed string.
func NewFromString(seed string) *Reader {
	return New([]byte(seed))
}

// Read fills p with the next len(p) keystream bytes.
func (r *Reader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()

	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
