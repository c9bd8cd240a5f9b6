//
// scheme.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package cmd

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/markkurossi/pkeot/ot"
	"github.com/markkurossi/pkeot/pke"
	"github.com/markkurossi/pkeot/prg"
	"github.com/spf13/viper"
)

// newRSA creates the textbook RSA scheme from the configuration.
func newRSA(v *viper.Viper) (*pke.TextbookRSA, error) {
	params := pke.DefaultParams(v.GetInt("bits"))
	params.PublicExponent = v.GetInt("exponent")

	var random io.Reader
	if seed := v.GetString("seed"); len(seed) > 0 {
		random = prg.NewFromString(seed)
	}
	return pke.NewTextbookRSA(params, random)
}

func options(v *viper.Viper) []ot.Option {
	var opts []ot.Option
	if n := v.GetInt("concurrency"); n > 0 {
		opts = append(opts, ot.WithConcurrency(n))
	}
	return opts
}

// parseInts parses decimal or 0x-prefixed integer messages.
func parseInts(values []string) ([]*big.Int, error) {
	var result []*big.Int
	for _, value := range values {
		i, ok := new(big.Int).SetString(strings.TrimSpace(value), 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer message: %s", value)
		}
		result = append(result, i)
	}
	return result, nil
}

func parseBytes(values []string) [][]byte {
	var result [][]byte
	for _, value := range values {
		result = append(result, []byte(value))
	}
	return result
}

func formatMessage(m any) string {
	switch v := m.(type) {
	case []byte:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
