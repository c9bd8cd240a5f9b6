//
// eval.go
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
	"github.com/spf13/viper"
)

var (
	evalMessages []string
	evalChoice   int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run sender and receiver in-process",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, t, err := evalMain(viper.GetViper(), evalMessages, evalChoice)
		if err != nil {
			return err
		}
		fmt.Printf("m%d: %s\n", evalChoice, m)
		if showTiming {
			t.Print(os.Stdout, p2p.NewIOStats())
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringSliceVarP(&evalMessages, "messages", "m", nil,
		"comma-separated sender messages")
	evalCmd.Flags().IntVarP(&evalChoice, "choice", "c", 0,
		"receiver's choice index")
	rootCmd.AddCommand(evalCmd)
}

// evalMain runs the transfer in-process and returns the formatted
// output message.
func evalMain(v *viper.Viper, values []string, choice int) (
	string, *timing.Timing, error) {

	rsa, err := newRSA(v)
	if err != nil {
		return "", nil, err
	}
	if v.GetBool("padded") {
		m, t, err := evalPhases(ot.NewPadded(pke.NewPaddedRSA(rsa),
			options(v)...), parseBytes(values), choice)
		return formatMessage(m), t, err
	}
	messages, err := parseInts(values)
	if err != nil {
		return "", nil, err
	}
	m, t, err := evalPhases(ot.NewTextbook(rsa, options(v)...),
		messages, choice)
	return formatMessage(m), t, err
}

func evalPhases[M any](o *ot.PKEOT[M, *big.Int, *pke.SecretKey,
	*pke.PublicKey], messages []M, choice int) (M, *timing.Timing, error) {

	var zero M
	t := timing.New()

	xfer, err := o.NewReceiverXfer(len(messages), choice)
	if err != nil {
		return zero, nil, err
	}
	keys := time.Now()

	ciphertexts, err := o.Sender().Encrypt(messages, xfer.PublicKeys())
	if err != nil {
		return zero, nil, err
	}
	encrypt := time.Now()

	m, err := xfer.Decrypt(ciphertexts)
	if err != nil {
		return zero, nil, err
	}

	sample := t.Sample("Eval", []string{fmt.Sprintf("%d", len(messages))})
	sample.SubSample("Keys", keys)
	sample.SubSample("Encrypt", encrypt)
	sample.SubSample("Decrypt", sample.End)

	return m, t, nil
}
