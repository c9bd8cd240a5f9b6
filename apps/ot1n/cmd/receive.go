//
// receive.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package cmd

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/markkurossi/pkeot/ot"
	"github.com/markkurossi/pkeot/p2p"
	"github.com/markkurossi/pkeot/pke"
	"github.com/markkurossi/pkeot/timing"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var (
	receiveConnect string
	receiveChoice  int
	receiveRetries int
)

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Run the receiver over TCP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := p2p.Dial(receiveConnect, receiveRetries, time.Second)
		if err != nil {
			return err
		}
		defer conn.Close()

		t := timing.New()
		m, err := receiveMain(viper.GetViper(), conn, receiveChoice)
		if err != nil {
			return err
		}
		t.Sample("Receive", []string{
			timing.FileSize(conn.Stats.Sum()).String(),
		})
		fmt.Printf("m%d: %s\n", receiveChoice, m)
		if showTiming {
			t.Print(os.Stdout, conn.Stats)
		}
		return nil
	},
}

func init() {
	receiveCmd.Flags().StringVarP(&receiveConnect, "connect", "C",
		"localhost:8080", "sender address")
	receiveCmd.Flags().IntVarP(&receiveChoice, "choice", "c", 0,
		"choice index")
	receiveCmd.Flags().IntVar(&receiveRetries, "retries", 10,
		"connection attempts")
	rootCmd.AddCommand(receiveCmd)
}

// receiveMain runs one transfer as the receiver over the connection
// and returns the formatted output message.
func receiveMain(v *viper.Viper, io ot.IO, choice int) (string, error) {
	rsa, err := newRSA(v)
	if err != nil {
		return "", err
	}
	if v.GetBool("padded") {
		m, err := receive[[]byte](pke.NewPaddedRSA(rsa), v, io, choice)
		return formatMessage(m), err
	}
	m, err := receive[*big.Int](rsa, v, io, choice)
	return formatMessage(m), err
}

func receive[M any](scheme ot.RSAScheme[M], v *viper.Viper, io ot.IO,
	choice int) (M, error) {

	receiver := ot.NewRSAReceiver[M](scheme, options(v)...)
	if err := receiver.InitReceiver(io); err != nil {
		var zero M
		return zero, err
	}
	m, err := receiver.Receive(choice)
	if err == nil {
		jww.INFO.Printf("OT receiver: transfer %s done", receiver.ID())
	}
	return m, err
}
