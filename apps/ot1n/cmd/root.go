//
// root.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package cmd implements the ot1n command line interface.
package cmd

import (
	"os"
	"strings"

	"github.com/markkurossi/pkeot/pke"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	verbose    bool
	showTiming bool
)

var rootCmd = &cobra.Command{
	Use:   "ot1n",
	Short: "1-out-of-n oblivious transfer with RSA",
	Long: `ot1n transfers one of n sender messages to the receiver without
the sender learning which message was chosen. The transfer runs
in-process with the eval command or between two peers with the send
and receive commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("ot1n: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLog)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&showTiming, "timing", false, "print timing report")
	flags.Int("bits", 1024, "RSA modulus size in bits")
	flags.Int("exponent", pke.DefaultPublicExponent, "RSA public exponent")
	flags.String("seed", "",
		"seed for deterministic randomness (empty uses crypto/rand)")
	flags.Int("concurrency", 0,
		"goroutines for key sampling and encryption (0 uses GOMAXPROCS)")
	flags.Bool("padded", false, "transfer byte messages with PKCS #1 padding")

	for _, key := range []string{"bits", "exponent", "seed", "concurrency",
		"padded", "verbose"} {
		err := viper.BindPFlag(key, flags.Lookup(key))
		handleBindingError(err, key)
	}
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads the config file and environment variables.
func initConfig() {
	viper.SetEnvPrefix("OT1N")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Unable to read config file (%s): %s", cfgFile,
			err.Error())
	}
	jww.INFO.Printf("Using config file %s", viper.ConfigFileUsed())
}

// initLog sets the logging thresholds.
func initLog() {
	if viper.GetBool("verbose") {
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetStdoutThreshold(jww.LevelDebug)
	} else {
		jww.SetLogThreshold(jww.LevelInfo)
		jww.SetStdoutThreshold(jww.LevelInfo)
	}
}
