//
// conn.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements buffered peer connections for the oblivious
// transfer protocols.
package p2p

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/markkurossi/pkeot/ot"
	"github.com/pkg/errors"
)

var (
	_ ot.IO = &Conn{}
)

// MaxDataLen is the maximum length of a data frame.
const MaxDataLen = 16 * 1024 * 1024

// ErrDataTooLong is returned for data frames longer than MaxDataLen.
var ErrDataTooLong = errors.New("p2p: data too long")

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 1024 * 1024
)

// IOStats implements I/O statistics.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:    new(atomic.Uint64),
		Recvd:   new(atomic.Uint64),
		Flushed: new(atomic.Uint64),
	}
}

// Add adds the argument stats to this IOStats and returns the sum.
func (stats IOStats) Add(o IOStats) IOStats {
	sum := NewIOStats()
	sum.Sent.Store(stats.Sent.Load() + o.Sent.Load())
	sum.Recvd.Store(stats.Recvd.Load() + o.Recvd.Load())
	sum.Flushed.Store(stats.Flushed.Load() + o.Flushed.Load())
	return sum
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent.Load() + stats.Recvd.Load()
}

// Conn implements the ot.IO interface over a byte stream. Outgoing
// data is collected into buffers that a writer goroutine writes to
// the stream. The buffers cycle between the free and queue channels.
type Conn struct {
	Stats IOStats

	rw io.ReadWriter

	out   []byte
	free  chan []byte
	queue chan []byte

	errMu    sync.Mutex
	writeErr error

	in    []byte
	start int
	end   int
}

// NewConn creates a new connection around the argument stream.
func NewConn(rw io.ReadWriter) *Conn {
	c := &Conn{
		Stats: NewIOStats(),
		rw:    rw,
		free:  make(chan []byte, numBuffers),
		queue: make(chan []byte, numBuffers),
		in:    make([]byte, readBufSize),
	}
	for i := 0; i < numBuffers; i++ {
		c.free <- make([]byte, 0, writeBufSize)
	}
	c.out = <-c.free

	go c.writer()

	return c
}

func (c *Conn) writer() {
	for buf := range c.queue {
		if _, err := c.rw.Write(buf); err != nil {
			c.errMu.Lock()
			if c.writeErr == nil {
				c.writeErr = err
			}
			c.errMu.Unlock()
		}
		c.free <- buf[:0]
	}
	close(c.free)
}

func (c *Conn) err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.writeErr
}

// Flush hands any pending data to the writer goroutine.
func (c *Conn) Flush() error {
	if len(c.out) == 0 {
		return c.err()
	}
	c.Stats.Sent.Add(uint64(len(c.out)))
	c.Stats.Flushed.Add(1)

	c.queue <- c.out
	c.out = <-c.free

	return c.err()
}

// Close flushes pending data, waits for the writer goroutine, and
// closes the stream if it is an io.Closer.
func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	close(c.queue)
	for range c.free {
	}
	if err := c.err(); err != nil {
		return err
	}
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SendUint32 sends an uint32 value.
func (c *Conn) SendUint32(val int) error {
	if cap(c.out)-len(c.out) < 4 {
		if err := c.Flush(); err != nil {
			return err
		}
	}
	c.out = bo.AppendUint32(c.out, uint32(val))
	return nil
}

// SendData sends length-prefixed binary data.
func (c *Conn) SendData(val []byte) error {
	if len(val) > MaxDataLen {
		return errors.Wrapf(ErrDataTooLong, "sending %d bytes", len(val))
	}
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	for len(val) > 0 {
		if len(c.out) == cap(c.out) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := min(cap(c.out)-len(c.out), len(val))
		c.out = append(c.out, val[:n]...)
		val = val[n:]
	}
	return nil
}

// fill reads from the stream until at least n unread bytes are
// buffered.
func (c *Conn) fill(n int) error {
	if c.start > 0 {
		c.end = copy(c.in, c.in[c.start:c.end])
		c.start = 0
	}
	for c.end < n {
		got, err := c.rw.Read(c.in[c.end:])
		c.Stats.Recvd.Add(uint64(got))
		c.end += got
		if err != nil {
			if c.end >= n {
				break
			}
			return err
		}
	}
	return nil
}

// ReceiveUint32 receives an uint32 value.
func (c *Conn) ReceiveUint32() (int, error) {
	if c.end-c.start < 4 {
		if err := c.fill(4); err != nil {
			return 0, err
		}
	}
	val := bo.Uint32(c.in[c.start:])
	c.start += 4

	return int(val), nil
}

// ReceiveData receives length-prefixed binary data.
func (c *Conn) ReceiveData() ([]byte, error) {
	l, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if l > MaxDataLen {
		return nil, errors.Wrapf(ErrDataTooLong, "receiving %d bytes", l)
	}
	result := make([]byte, l)

	n := copy(result, c.in[c.start:c.end])
	c.start += n
	if n < l {
		got, err := io.ReadFull(c.rw, result[n:])
		c.Stats.Recvd.Add(uint64(got))
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
