//
// p2p.go
//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

var bo = binary.BigEndian

// Listen accepts one peer connection at the address.
func Listen(addr string) (*Conn, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	jww.INFO.Printf("P2P: listening at %s", listener.Addr())
	nc, err := listener.Accept()
	if err != nil {
		return nil, errors.WithMessage(err, "p2p: accept failed")
	}
	jww.INFO.Printf("P2P: accepted connection from %s", nc.RemoteAddr())

	return NewConn(nc), nil
}

// Dial connects to the peer at the address. Failed connection
// attempts are retried after delay until the attempts are exhausted.
func Dial(addr string, attempts int, delay time.Duration) (*Conn, error) {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		var nc net.Conn
		nc, err = net.Dial("tcp", addr)
		if err == nil {
			jww.INFO.Printf("P2P: connected to %s", addr)
			return NewConn(nc), nil
		}
		if i+1 < attempts {
			jww.WARN.Printf("P2P: connect to %s failed, retrying in %s: %v",
				addr, delay, err)
			<-time.After(delay)
		}
	}
	return nil, errors.Wrapf(err, "p2p: connect to %s failed", addr)
}
