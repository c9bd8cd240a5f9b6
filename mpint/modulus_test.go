//
// modulus_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mpint

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestModulusCRT(t *testing.T) {
	p, err := rand.Prime(rand.Reader, 256)
	if err != nil {
		t.Fatal(err)
	}
	q, err := rand.Prime(rand.Reader, 256)
	if err != nil {
		t.Fatal(err)
	}
	n := new(big.Int).Mul(p, q)

	plain := NewModulus(n)
	crt := ModulusFromFactors(p, q)

	for i := 0; i < 16; i++ {
		x, err := rand.Int(rand.Reader, n)
		if err != nil {
			t.Fatal(err)
		}
		e, err := rand.Int(rand.Reader, n)
		if err != nil {
			t.Fatal(err)
		}
		expected := new(big.Int).Exp(x, e, n)

		r := plain.Exp(x, e)
		if r.Cmp(expected) != 0 {
			t.Errorf("plain Exp=%v, expected %v", r, expected)
		}
		r = crt.Exp(x, e)
		if r.Cmp(expected) != 0 {
			t.Errorf("CRT Exp=%v, expected %v", r, expected)
		}
	}
}

func TestModulusSmall(t *testing.T) {
	m := ModulusFromFactors(big.NewInt(63691), big.NewInt(65171))

	c := m.Exp(big.NewInt(11), big.NewInt(13))
	if c.Int64() != 457302894 {
		t.Fatalf("Exp(11, 13)=%v, expected 457302894", c)
	}
	r := m.Exp(c, big.NewInt(1277131477))
	if r.Int64() != 11 {
		t.Errorf("Exp(%v, d)=%v, expected 11", c, r)
	}
}
