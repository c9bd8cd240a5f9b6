//
// io.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"math/big"

	"github.com/markkurossi/pkeot/mpint"
	"github.com/markkurossi/pkeot/pke"
	"github.com/pkg/errors"
)

// IO defines an I/O interface to communicate between peers.
type IO interface {
	// SendData sends binary data.
	SendData(val []byte) error

	// SendUint32 sends an uint32 value.
	SendUint32(val int) error

	// Flush flushed any pending data in the connection.
	Flush() error

	// ReceiveData receives binary data.
	ReceiveData() ([]byte, error)

	// ReceiveUint32 receives an uint32 value.
	ReceiveUint32() (int, error)
}

// SendString sends a string value.
func SendString(io IO, str string) error {
	return io.SendData([]byte(str))
}

// ReceiveString receives a string value.
func ReceiveString(io IO) (string, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SendBigInt sends a big.Int value left-padded to size bytes.
func SendBigInt(io IO, val *big.Int, size int) error {
	return io.SendData(mpint.Bytes(val, size))
}

// ReceiveBigInt receives a big.Int from the connection.
func ReceiveBigInt(io IO) (*big.Int, error) {
	data, err := io.ReceiveData()
	if err != nil {
		return nil, err
	}
	return mpint.FromBytes(data), nil
}

// SendPublicKeys sends a count-prefixed list of public keys.
func SendPublicKeys(io IO, keys []*pke.PublicKey) error {
	if err := io.SendUint32(len(keys)); err != nil {
		return err
	}
	for _, key := range keys {
		data, err := key.MarshalBinary()
		if err != nil {
			return err
		}
		if err := io.SendData(data); err != nil {
			return err
		}
	}
	return io.Flush()
}

// ReceivePublicKeys receives a count-prefixed list of at most limit
// public keys.
func ReceivePublicKeys(io IO, limit int) ([]*pke.PublicKey, error) {
	count, err := receiveCount(io, limit)
	if err != nil {
		return nil, err
	}
	keys := make([]*pke.PublicKey, count)
	for i := 0; i < count; i++ {
		data, err := io.ReceiveData()
		if err != nil {
			return nil, err
		}
		keys[i] = new(pke.PublicKey)
		if err := keys[i].UnmarshalBinary(data); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// SendCiphertexts sends a count-prefixed list of ciphertexts. Each
// ciphertext is left-padded to the modulus size of its key.
func SendCiphertexts(io IO, ciphertexts []*big.Int,
	keys []*pke.PublicKey) error {

	if err := io.SendUint32(len(ciphertexts)); err != nil {
		return err
	}
	for i, c := range ciphertexts {
		if err := SendBigInt(io, c, keys[i].Size()); err != nil {
			return err
		}
	}
	return io.Flush()
}

// ReceiveCiphertexts receives a count-prefixed list of at most limit
// ciphertexts.
func ReceiveCiphertexts(io IO, limit int) ([]*big.Int, error) {
	count, err := receiveCount(io, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		result[i], err = ReceiveBigInt(io)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func receiveCount(io IO, limit int) (int, error) {
	count, err := io.ReceiveUint32()
	if err != nil {
		return 0, err
	}
	if count > limit {
		return 0, errors.Wrapf(ErrLengthMismatch,
			"received %d items, expected at most %d", count, limit)
	}
	return count, nil
}
