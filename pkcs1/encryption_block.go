//
// encryption_block.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//
// PKCS #1 Encryption-block formatting, RFC 2313.

package pkcs1

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// EncryptionBlockType specifies the encryption block type and how the
// padding is detected.
type EncryptionBlockType byte

// Block types.
const (
	BT0 EncryptionBlockType = iota
	BT1
	BT2
)

const (
	// MinPadLen specifies the minimum padding length.
	MinPadLen = 8
	// Overhead specifies the number of non-data bytes in a block
	// with the minimum padding.
	Overhead = 3 + MinPadLen
)

var (
	// ErrorInvalidEncryptionBlock error is returned in the encryption
	// block is malformed.
	ErrorInvalidEncryptionBlock = errors.New("invalid encryption block")
	// ErrorDataTooLong is returned if the data does not fit into the
	// encryption block.
	ErrorDataTooLong = errors.New("data too long")
)

// NewEncryptionBlock creates a new encryption block with the given
// type and data. The argument blockLen specifies the length of the
// resulting block. The BT2 padding is read from the random source
// rand; nil rand selects crypto/rand.Reader. The function will return
// an error if the blockLen is too short to contain valid block
// formatting and MinPadLen of padding. A block type BT, a padding
// string PS, and the data D shall be formatted into an octet string
// EB, the encryption block.
//
//	EB = 00 || BT || PS || 00 || D .           (1)
func NewEncryptionBlock(random io.Reader, bt EncryptionBlockType,
	blockLen int, data []byte) ([]byte, error) {

	padLen := blockLen - 3 - len(data)
	if padLen < MinPadLen {
		return nil, ErrorDataTooLong
	}
	if random == nil {
		random = rand.Reader
	}

	block := make([]byte, blockLen)
	block[0] = 0
	block[1] = byte(bt)
	ps := block[2 : 2+padLen]

	switch bt {
	case BT0:
		return nil, errors.New("block type 0 not supported")

	case BT1:
		for i := range ps {
			ps[i] = 0xff
		}

	case BT2:
		if _, err := io.ReadFull(random, ps); err != nil {
			return nil, err
		}
		var b [1]byte
		for i := range ps {
			for ps[i] == 0 {
				if _, err := io.ReadFull(random, b[:]); err != nil {
					return nil, err
				}
				ps[i] = b[0]
			}
		}

	default:
		return nil, fmt.Errorf("invalid encryption block type %d", bt)
	}
	copy(block[3+padLen:], data)

	return block, nil
}

// MaxDataLen returns the maximum data length for the block length.
func MaxDataLen(blockLen int) int {
	l := blockLen - Overhead
	if l < 0 {
		return 0
	}
	return l
}

// ParseEncryptionBlock parses the argument encryption block and
// returns its data.
func ParseEncryptionBlock(block []byte) ([]byte, error) {
	if len(block) < 4 {
		return nil, errors.New("truncated encryption block")
	}
	if block[0] != 0 {
		return nil, ErrorInvalidEncryptionBlock
	}
	switch EncryptionBlockType(block[1]) {
	case BT1, BT2:
	default:
		return nil, fmt.Errorf("invalid encryption block type %d", block[1])
	}

	for i := 2; i < len(block); i++ {
		if block[i] == 0 {
			if i-2 < MinPadLen {
				return nil, ErrorInvalidEncryptionBlock
			}
			return block[i+1:], nil
		}
	}
	return nil, ErrorInvalidEncryptionBlock
}
