//
// padded.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"fmt"
	"math/big"

	"github.com/markkurossi/pkeot/mpint"
	"github.com/markkurossi/pkeot/pkcs1"
	"github.com/pkg/errors"
)

var (
	_ PKE[[]byte, *big.Int, *SecretKey, *PublicKey] = &PaddedRSA{}
	_ OSPK[*PublicKey]                               = &PaddedRSA{}
)

// PaddedRSA implements RSA encryption of byte messages formatted as
// PKCS #1 BT2 encryption blocks. The random padding makes encryption
// non-deterministic.
type PaddedRSA struct {
	*TextbookRSA
}

// NewPaddedRSA creates a new padded RSA scheme on top of the textbook
// scheme.
func NewPaddedRSA(rsa *TextbookRSA) *PaddedRSA {
	return &PaddedRSA{
		TextbookRSA: rsa,
	}
}

// Name returns the scheme name.
func (rsa *PaddedRSA) Name() string {
	return fmt.Sprintf("rsa-pkcs1-%d", rsa.params.Bits)
}

// BlockLen returns the encryption block length in bytes. All blocks
// are below MessageBound.
func (rsa *PaddedRSA) BlockLen() int {
	return (rsa.params.Bits - 1) / 8
}

// MaxMessageLen returns the maximum message length in bytes.
func (rsa *PaddedRSA) MaxMessageLen() int {
	return pkcs1.MaxDataLen(rsa.BlockLen())
}

// Encrypt encrypts the message with the public key.
func (rsa *PaddedRSA) Encrypt(pk *PublicKey, m []byte) (*big.Int, error) {
	if len(m) > rsa.MaxMessageLen() {
		return nil, errors.Wrapf(ErrMessageRange, "message length %d > %d",
			len(m), rsa.MaxMessageLen())
	}
	block, err := pkcs1.NewEncryptionBlock(rsa.rand, pkcs1.BT2,
		rsa.BlockLen(), m)
	if err != nil {
		return nil, err
	}
	return rsa.TextbookRSA.Encrypt(pk, mpint.FromBytes(block))
}

// Decrypt decrypts the ciphertext with the secret key.
func (rsa *PaddedRSA) Decrypt(sk *SecretKey, c *big.Int) ([]byte, error) {
	x, err := rsa.TextbookRSA.Decrypt(sk, c)
	if err != nil {
		return nil, err
	}
	block := mpint.Bytes(x, rsa.BlockLen())
	if len(block) != rsa.BlockLen() {
		return nil, pkcs1.ErrorInvalidEncryptionBlock
	}
	return pkcs1.ParseEncryptionBlock(block)
}
