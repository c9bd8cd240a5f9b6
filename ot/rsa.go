//
// rsa.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/markkurossi/pkeot/pke"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

const (
	protocolVersion = 1
)

// RSAScheme defines RSA based encryption schemes with obliviously
// samplable public keys over messages M.
type RSAScheme[M any] interface {
	pke.PKE[M, *big.Int, *pke.SecretKey, *pke.PublicKey]
	pke.OSPK[*pke.PublicKey]

	// Name returns the scheme name.
	Name() string
}

// NewTextbook creates an oblivious transfer of integer messages with
// the textbook RSA scheme.
func NewTextbook(rsa *pke.TextbookRSA, opts ...Option) *PKEOT[*big.Int,
	*big.Int, *pke.SecretKey, *pke.PublicKey] {

	return New[*big.Int, *big.Int, *pke.SecretKey, *pke.PublicKey](
		rsa, rsa, opts...)
}

// NewPadded creates an oblivious transfer of byte messages with the
// padded RSA scheme.
func NewPadded(rsa *pke.PaddedRSA, opts ...Option) *PKEOT[[]byte,
	*big.Int, *pke.SecretKey, *pke.PublicKey] {

	return New[[]byte, *big.Int, *pke.SecretKey, *pke.PublicKey](
		rsa, rsa, opts...)
}

func protocolName(scheme interface{ Name() string }) string {
	return fmt.Sprintf("pkeot/%d %s", protocolVersion, scheme.Name())
}

// RSASender implements the sender of the RSA oblivious transfer over
// an IO connection.
type RSASender[M any] struct {
	scheme RSAScheme[M]
	sender *Sender[M, *big.Int, *pke.SecretKey, *pke.PublicKey]
	io     IO
}

// NewRSASender creates a new RSA OT sender.
func NewRSASender[M any](scheme RSAScheme[M], opts ...Option) *RSASender[M] {
	ot := New[M, *big.Int, *pke.SecretKey, *pke.PublicKey](scheme, scheme,
		opts...)
	return &RSASender[M]{
		scheme: scheme,
		sender: ot.Sender(),
	}
}

// InitSender initializes the OT sender.
func (s *RSASender[M]) InitSender(io IO) error {
	s.io = io
	if err := SendString(io, protocolName(s.scheme)); err != nil {
		return err
	}
	return io.Flush()
}

// Send transfers one of the messages to the receiver.
func (s *RSASender[M]) Send(messages []M) error {
	if err := s.io.SendUint32(len(messages)); err != nil {
		return err
	}
	if err := s.io.Flush(); err != nil {
		return err
	}

	keys, err := ReceivePublicKeys(s.io, len(messages))
	if err != nil {
		return errors.WithMessage(err, "ot: receiving public keys")
	}
	if len(keys) == 0 {
		return errors.Wrap(ErrInvalidIndex, "ot: receiver aborted")
	}
	if len(keys) != len(messages) {
		return errors.Wrapf(ErrLengthMismatch,
			"%d messages, %d public keys", len(messages), len(keys))
	}
	for idx, key := range keys {
		jww.DEBUG.Printf("OT sender: key %d: %s", idx, key.Fingerprint())
	}

	ciphertexts, err := s.sender.Encrypt(messages, keys)
	if err != nil {
		return err
	}
	return SendCiphertexts(s.io, ciphertexts, keys)
}

// RSAReceiver implements the receiver of the RSA oblivious transfer
// over an IO connection.
type RSAReceiver[M any] struct {
	scheme RSAScheme[M]
	ot     *PKEOT[M, *big.Int, *pke.SecretKey, *pke.PublicKey]
	io     IO
	id     uuid.UUID
}

// NewRSAReceiver creates a new RSA OT receiver.
func NewRSAReceiver[M any](scheme RSAScheme[M],
	opts ...Option) *RSAReceiver[M] {

	return &RSAReceiver[M]{
		scheme: scheme,
		ot: New[M, *big.Int, *pke.SecretKey, *pke.PublicKey](scheme, scheme,
			opts...),
	}
}

// InitReceiver initializes the OT receiver.
func (r *RSAReceiver[M]) InitReceiver(io IO) error {
	r.io = io

	name, err := ReceiveString(io)
	if err != nil {
		return err
	}
	if name != protocolName(r.scheme) {
		return errors.Errorf("invalid protocol %s, expected %s",
			name, protocolName(r.scheme))
	}
	return nil
}

// ID returns the ID of the latest transfer.
func (r *RSAReceiver[M]) ID() uuid.UUID {
	return r.id
}

// Receive receives the message at the choice index.
func (r *RSAReceiver[M]) Receive(choice int) (M, error) {
	var zero M

	n, err := r.io.ReceiveUint32()
	if err != nil {
		return zero, err
	}
	xfer, err := r.ot.NewReceiverXfer(n, choice)
	if err != nil {
		// Abort the sender with an empty key list.
		if err := SendPublicKeys(r.io, nil); err != nil {
			jww.WARN.Printf("OT receiver: abort failed: %v", err)
		}
		return zero, err
	}
	r.id = xfer.ID()

	if err := SendPublicKeys(r.io, xfer.PublicKeys()); err != nil {
		return zero, err
	}
	ciphertexts, err := ReceiveCiphertexts(r.io, n)
	if err != nil {
		return zero, errors.WithMessage(err, "ot: receiving ciphertexts")
	}
	return xfer.Decrypt(ciphertexts)
}
