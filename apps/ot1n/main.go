//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command ot1n runs 1-out-of-n oblivious transfers in-process or
// between two peers over TCP.
package main

import (
	"github.com/markkurossi/pkeot/apps/ot1n/cmd"
)

func main() {
	cmd.Execute()
}
