//
// pke.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package pke implements public key encryption schemes with
// obliviously samplable public keys.
package pke

import (
	"github.com/pkg/errors"
)

var (
	// ErrKeyGeneration is returned when the prime or public key
	// search exceeds its attempt budget.
	ErrKeyGeneration = errors.New("key generation failed")
	// ErrInvalidParams is returned for invalid scheme parameters.
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrMessageRange is returned when a message or ciphertext is
	// outside the domain of the key.
	ErrMessageRange = errors.New("message out of range")
)

// PKE defines a public key encryption scheme over messages M,
// ciphertexts C, secret keys SK, and public keys PK.
type PKE[M, C, SK, PK any] interface {
	// GenerateKey generates a new keypair.
	GenerateKey() (SK, PK, error)

	// Encrypt encrypts the message with the public key.
	Encrypt(pk PK, m M) (C, error)

	// Decrypt decrypts the ciphertext with the secret key.
	Decrypt(sk SK, c C) (M, error)
}

// OSPK defines obliviously samplable public keys. A sampled key is
// indistinguishable from a generated one but nobody knows its secret
// key.
type OSPK[PK any] interface {
	// SamplePublicKey samples a public key without a secret key.
	SamplePublicKey() (PK, error)
}
