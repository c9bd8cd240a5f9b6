//
// ot.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

// Package ot implements 1-out-of-n oblivious transfer from public key
// encryption with obliviously samplable public keys. The receiver
// generates one real keypair and samples n-1 public keys without
// secret keys. The real key is placed at the choice index. The
// sender encrypts each message with its public key and the receiver
// can decrypt only the chosen one.
package ot

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidIndex is returned if the choice index is not in
	// [0, n) for n messages.
	ErrInvalidIndex = errors.New("invalid choice index")
	// ErrLengthMismatch is returned if the message, public key, or
	// ciphertext lists have different lengths.
	ErrLengthMismatch = errors.New("list length mismatch")
)

// Unit is the empty output of the sender.
type Unit struct{}

// ObliviousTransfer defines the 1-out-of-n oblivious transfer
// functionality. The sender inputs messages and the receiver inputs
// the choice index. The sender's output is empty and the receiver's
// output is messages[choice].
type ObliviousTransfer[M any] interface {
	Eval(messages []M, choice int) (Unit, M, error)
}

func checkChoice(n, choice int) error {
	if n <= 0 || choice < 0 || choice >= n {
		return errors.Wrapf(ErrInvalidIndex, "choice %d for %d messages",
			choice, n)
	}
	return nil
}
