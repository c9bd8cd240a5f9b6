//
// pkeot.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/markkurossi/pkeot/pke"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/sync/errgroup"
)

// Option configures the oblivious transfer.
type Option func(*config)

type config struct {
	concurrency int
}

// WithConcurrency limits the number of goroutines used for key
// sampling and encryption. Values below 1 select one goroutine.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

// PKEOT implements ObliviousTransfer with the public key encryption
// scheme and the public key sampler.
type PKEOT[M, C, SK, PK any] struct {
	scheme  pke.PKE[M, C, SK, PK]
	sampler pke.OSPK[PK]
	config  config
}

// New creates a new oblivious transfer.
func New[M, C, SK, PK any](scheme pke.PKE[M, C, SK, PK],
	sampler pke.OSPK[PK], opts ...Option) *PKEOT[M, C, SK, PK] {

	ot := &PKEOT[M, C, SK, PK]{
		scheme:  scheme,
		sampler: sampler,
		config: config{
			concurrency: runtime.GOMAXPROCS(0),
		},
	}
	for _, opt := range opts {
		opt(&ot.config)
	}
	return ot
}

// Eval runs the sender and receiver in-process and returns the
// receiver's output messages[choice].
func (ot *PKEOT[M, C, SK, PK]) Eval(messages []M, choice int) (
	Unit, M, error) {

	var zero M

	// Receiver.
	xfer, err := ot.NewReceiverXfer(len(messages), choice)
	if err != nil {
		return Unit{}, zero, err
	}

	// Sender.
	ciphertexts, err := ot.Sender().Encrypt(messages, xfer.PublicKeys())
	if err != nil {
		return Unit{}, zero, err
	}

	// Receiver.
	m, err := xfer.Decrypt(ciphertexts)
	if err != nil {
		return Unit{}, zero, err
	}
	return Unit{}, m, nil
}

// Sender creates the sender role of the transfer.
func (ot *PKEOT[M, C, SK, PK]) Sender() *Sender[M, C, SK, PK] {
	return &Sender[M, C, SK, PK]{
		scheme: ot.scheme,
		config: ot.config,
	}
}

// NewReceiverXfer creates the receiver role for a transfer of n
// messages. It generates the keypair and the public key list.
func (ot *PKEOT[M, C, SK, PK]) NewReceiverXfer(n, choice int) (
	*ReceiverXfer[M, C, SK, PK], error) {

	if err := checkChoice(n, choice); err != nil {
		return nil, err
	}
	id := uuid.New()

	sk, pk, err := ot.scheme.GenerateKey()
	if err != nil {
		jww.WARN.Printf("OT %s: key generation failed: %v", id, err)
		return nil, errors.WithMessage(err, "ot: receiver key generation")
	}

	keys := make([]PK, n)
	keys[choice] = pk

	err = parallel(ot.config.concurrency, n, func(i int) error {
		if i == choice {
			return nil
		}
		key, err := ot.sampler.SamplePublicKey()
		if err != nil {
			return errors.WithMessagef(err, "ot: sampling key %d", i)
		}
		keys[i] = key
		return nil
	})
	if err != nil {
		jww.WARN.Printf("OT %s: %v", id, err)
		return nil, err
	}
	jww.DEBUG.Printf("OT %s: receiver created %d public keys", id, n)

	return &ReceiverXfer[M, C, SK, PK]{
		id:     id,
		scheme: ot.scheme,
		choice: choice,
		sk:     sk,
		keys:   keys,
	}, nil
}

// Sender implements the sender role of the transfer.
type Sender[M, C, SK, PK any] struct {
	scheme pke.PKE[M, C, SK, PK]
	config config
}

// Encrypt encrypts messages[i] with keys[i] for all i.
func (s *Sender[M, C, SK, PK]) Encrypt(messages []M, keys []PK) ([]C, error) {
	if len(messages) != len(keys) {
		return nil, errors.Wrapf(ErrLengthMismatch,
			"%d messages, %d public keys", len(messages), len(keys))
	}
	result := make([]C, len(messages))

	err := parallel(s.config.concurrency, len(messages), func(i int) error {
		c, err := s.scheme.Encrypt(keys[i], messages[i])
		if err != nil {
			return errors.WithMessagef(err, "ot: encrypting message %d", i)
		}
		result[i] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	jww.DEBUG.Printf("OT: sender encrypted %d messages", len(messages))

	return result, nil
}

// ReceiverXfer implements the receiver role of one transfer. It
// holds the secret key and the choice index.
type ReceiverXfer[M, C, SK, PK any] struct {
	id     uuid.UUID
	scheme pke.PKE[M, C, SK, PK]
	choice int
	sk     SK
	keys   []PK
}

// ID returns the transfer ID.
func (r *ReceiverXfer[M, C, SK, PK]) ID() uuid.UUID {
	return r.id
}

// Choice returns the choice index.
func (r *ReceiverXfer[M, C, SK, PK]) Choice() int {
	return r.choice
}

// PublicKeys returns the public key list for the sender.
func (r *ReceiverXfer[M, C, SK, PK]) PublicKeys() []PK {
	return r.keys
}

// Decrypt decrypts the chosen message from the sender's ciphertexts.
func (r *ReceiverXfer[M, C, SK, PK]) Decrypt(ciphertexts []C) (M, error) {
	var zero M

	if len(ciphertexts) != len(r.keys) {
		return zero, errors.Wrapf(ErrLengthMismatch,
			"%d ciphertexts, %d public keys", len(ciphertexts), len(r.keys))
	}
	m, err := r.scheme.Decrypt(r.sk, ciphertexts[r.choice])
	if err != nil {
		jww.WARN.Printf("OT %s: decrypt failed: %v", r.id, err)
		return zero, errors.WithMessage(err, "ot: receiver decrypt")
	}
	jww.DEBUG.Printf("OT %s: receiver decrypted message", r.id)

	return m, nil
}

// parallel calls fn(i) for i in [0, n) with at most limit concurrent
// calls. It returns the first error.
func parallel(limit, n int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	return g.Wait()
}
