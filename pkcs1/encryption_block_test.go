//
// encryption_block_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package pkcs1

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/markkurossi/pkeot/prg"
)

func TestEncryptionBlock(t *testing.T) {
	data := []byte{'h', 'e', 'l', 'l', 'o'}

	_, err := NewEncryptionBlock(nil, BT0, 2048/8, data)
	if err == nil {
		t.Fatal("BT0 succeeded")
	}

	block, err := NewEncryptionBlock(nil, BT1, 2048/8, data)
	if err != nil {
		t.Fatalf("Failed to create BT1: %s", err)
	}
	parsed, err := ParseEncryptionBlock(block)
	if err != nil {
		t.Fatalf("Failed to parse BT1 block: %s", err)
	}
	if !bytes.Equal(data, parsed) {
		t.Fatalf("Parsed invalid BT1 data")
	}

	block, err = NewEncryptionBlock(nil, BT2, 2048/8, data)
	if err != nil {
		t.Fatalf("Failed to create BT2: %s", err)
	}
	parsed, err = ParseEncryptionBlock(block)
	if err != nil {
		t.Fatalf("Failed to parse BT2 block: %s", err)
	}
	if !bytes.Equal(data, parsed) {
		t.Fatalf("Parsed invalid BT2 data")
	}

	block, err = NewEncryptionBlock(nil, BT2, len(data)+MinPadLen+3-1, data)
	if err == nil {
		fmt.Printf("Encoded:\n%s", hex.Dump(block))
		t.Fatal("Too long data encoded")
	}
}

func TestEncryptionBlockSeeded(t *testing.T) {
	data := []byte("message")
	blockLen := MaxDataLen(64) + Overhead

	b1, err := NewEncryptionBlock(prg.NewFromString("pad"), BT2, blockLen,
		data)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := NewEncryptionBlock(prg.NewFromString("pad"), BT2, blockLen,
		data)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Errorf("same seed produced different blocks")
	}

	r := prg.NewFromString("pad")
	b1, _ = NewEncryptionBlock(r, BT2, blockLen, data)
	b2, _ = NewEncryptionBlock(r, BT2, blockLen, data)
	if bytes.Equal(b1, b2) {
		t.Errorf("consecutive BT2 blocks are equal")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := [][]byte{
		{0, 2, 0},
		{1, 2, 0xff, 0xff, 0, 'a'},
		{0, 3, 0xff, 0xff, 0, 'a'},
		{0, 2, 0xff, 0xff, 0, 'a'},
		{0, 2, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for idx, test := range tests {
		_, err := ParseEncryptionBlock(test)
		if err == nil {
			t.Errorf("test %d: parsed invalid block %x", idx, test)
		}
	}
}

func TestMaxDataLen(t *testing.T) {
	if MaxDataLen(5) != 0 {
		t.Errorf("MaxDataLen(5)=%v", MaxDataLen(5))
	}
	if MaxDataLen(32) != 32-Overhead {
		t.Errorf("MaxDataLen(32)=%v", MaxDataLen(32))
	}
}
