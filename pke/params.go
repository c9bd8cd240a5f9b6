//
// params.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package pke

import (
	"math/big"

	"github.com/pkg/errors"
)

const (
	// MinBits specifies the minimum modulus size in bits.
	MinBits = 16
	// DefaultBits specifies the default modulus size in bits.
	DefaultBits = 2048
	// DefaultPublicExponent specifies the default public exponent.
	DefaultPublicExponent = 65537
	// DefaultRounds specifies the default number of Miller-Rabin
	// rounds in primality tests.
	DefaultRounds = 20
)

// Params define the RSA scheme parameters.
type Params struct {
	// Bits is the modulus size in bits. It must be even.
	Bits int
	// PublicExponent is the public exponent e. It must be odd and
	// at least 3.
	PublicExponent int
	// MaxAttempts limits the number of candidates tried for each
	// prime and each sampled public key. Zero selects 64⋅Bits.
	MaxAttempts int
	// Rounds is the number of Miller-Rabin rounds.
	Rounds int
}

// DefaultParams returns the default parameters for the modulus size
// bits.
func DefaultParams(bits int) Params {
	return Params{
		Bits:           bits,
		PublicExponent: DefaultPublicExponent,
		Rounds:         DefaultRounds,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Bits < MinBits || p.Bits%2 != 0 {
		return errors.Wrapf(ErrInvalidParams, "modulus size %d", p.Bits)
	}
	if p.PublicExponent < 3 || p.PublicExponent%2 == 0 {
		return errors.Wrapf(ErrInvalidParams, "public exponent %d",
			p.PublicExponent)
	}
	if p.MaxAttempts < 0 {
		return errors.Wrapf(ErrInvalidParams, "max attempts %d",
			p.MaxAttempts)
	}
	if p.Rounds < 0 {
		return errors.Wrapf(ErrInvalidParams, "rounds %d", p.Rounds)
	}
	return nil
}

func (p Params) attempts() int {
	if p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return 64 * p.Bits
}

func (p Params) exponent() *big.Int {
	return big.NewInt(int64(p.PublicExponent))
}
