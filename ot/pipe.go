//
// pipe.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"encoding/binary"
	"fmt"
	"io"
)

var (
	bo    = binary.BigEndian
	_  IO = &Pipe{}
)

// Pipe implements the IO interface with in-memory io.Pipe.
type Pipe struct {
	rBuf []byte
	wBuf []byte
	r    *io.PipeReader
	w    *io.PipeWriter
}

// NewPipe creates a new in-memory pipe.
func NewPipe() (*Pipe, *Pipe) {
	ar, aw := io.Pipe()
	br, bw := io.Pipe()

	return &Pipe{
			rBuf: make([]byte, 64*1024),
			wBuf: make([]byte, 64*1024),
			r:    ar,
			w:    bw,
		}, &Pipe{
			rBuf: make([]byte, 64*1024),
			wBuf: make([]byte, 64*1024),
			r:    br,
			w:    aw,
		}
}

// SendData sends binary data.
func (p *Pipe) SendData(val []byte) error {
	l := len(val)
	if 4+l > len(p.wBuf) {
		return fmt.Errorf("pipe buffer too short: %d > %d", l, len(p.wBuf)-4)
	}
	bo.PutUint32(p.wBuf, uint32(l))
	copy(p.wBuf[4:], val)
	_, err := p.w.Write(p.wBuf[:4+l])
	return err
}

// SendUint32 sends an uint32 value.
func (p *Pipe) SendUint32(val int) error {
	bo.PutUint32(p.wBuf, uint32(val))
	_, err := p.w.Write(p.wBuf[:4])
	return err
}

// Flush flushed any pending data in the connection.
func (p *Pipe) Flush() error {
	return nil
}

// Close closes the pipe.
func (p *Pipe) Close() error {
	return p.w.Close()
}

// ReceiveData receives binary data.
func (p *Pipe) ReceiveData() ([]byte, error) {
	l, err := p.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if l > len(p.rBuf) {
		return nil, fmt.Errorf("pipe buffer too short: %d > %d", l, len(p.rBuf))
	}
	if _, err := io.ReadFull(p.r, p.rBuf[:l]); err != nil {
		return nil, err
	}
	result := make([]byte, l)
	copy(result, p.rBuf[:l])
	return result, nil
}

// ReceiveUint32 receives an uint32 value.
func (p *Pipe) ReceiveUint32() (int, error) {
	_, err := io.ReadFull(p.r, p.rBuf[:4])
	if err != nil {
		return 0, err
	}
	return int(bo.Uint32(p.rBuf)), nil
}
