// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	versionKey  = "version"
	httpHostKey = "http-host"
	httpPortKey = "http-port"
	logLevelKey = "log-level"
)

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("hypervm", flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints version and quit")
	fs.String(httpHostKey, "127.0.0.1", "Host the JSON-RPC endpoint listens on")
	fs.Uint(httpPortKey, 9750, "Port the JSON-RPC endpoint listens on")
	fs.String(logLevelKey, "info", "Log level")

	return fs
}

// getViper returns the viper environment for the host binary
func getViper() (*viper.Viper, error) {
	v := viper.New()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	return v, nil
}
