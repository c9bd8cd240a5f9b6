//
// send.go
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

	"github.com/markkurossi/pkeot/ot"
	"github.com/markkurossi/pkeot/p2p"
	"github.com/markkurossi/pkeot/pke"
	"github.com/markkurossi/pkeot/timing"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var (
	sendListen   string
	sendMessages []string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Run the sender over TCP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := p2p.Listen(sendListen)
		if err != nil {
			return err
		}
		defer conn.Close()

		t := timing.New()
		if err := sendMain(viper.GetViper(), conn, sendMessages); err != nil {
			return err
		}
		t.Sample("Send", []string{
			timing.FileSize(conn.Stats.Sum()).String(),
		})
		fmt.Printf("sent %d messages\n", len(sendMessages))
		if showTiming {
			t.Print(os.Stdout, conn.Stats)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendListen, "listen", "l", ":8080",
		"listen address")
	sendCmd.Flags().StringSliceVarP(&sendMessages, "messages", "m", nil,
		"comma-separated sender messages")
	rootCmd.AddCommand(sendCmd)
}

// sendMain runs one transfer as the sender over the connection.
func sendMain(v *viper.Viper, io ot.IO, values []string) error {
	rsa, err := newRSA(v)
	if err != nil {
		return err
	}
	jww.INFO.Printf("OT sender: %d messages, %d-bit keys", len(values),
		rsa.Params().Bits)

	if v.GetBool("padded") {
		return send[[]byte](pke.NewPaddedRSA(rsa), v, io, parseBytes(values))
	}
	messages, err := parseInts(values)
	if err != nil {
		return err
	}
	return send[*big.Int](rsa, v, io, messages)
}

func send[M any](scheme ot.RSAScheme[M], v *viper.Viper, io ot.IO,
	messages []M) error {

	sender := ot.NewRSASender[M](scheme, options(v)...)
	if err := sender.InitSender(io); err != nil {
		return err
	}
	return sender.Send(messages)
}
