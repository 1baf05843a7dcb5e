/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultDataDirname = "data"
	defaultLogDirname  = "logs"
	defaultLogFilename = "sortd.log"
	defaultDebugLevel  = "info"
	defaultMetricsAddr = ":9390"
)

// Config defines the configuration options for the sortition node.
//
// See LoadConfig for details on the configuration load process.
type Config struct {
	DataDir     string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`
	MetricsAddr string `long:"metricsaddr" description:"Listen address of the prometheus metrics endpoint"`
	TestNet     bool   `long:"testnet" description:"Use the test network"`
	SimNet      bool   `long:"simnet" description:"Use the simulation test network"`
}

var globalCfg *Config

// GlobalConfig returns the loaded configuration.  LoadConfig must have been
// called first.
func GlobalConfig() *Config {
	return globalCfg
}

// LoadConfig initializes and parses the config using command line options.
//
// The configuration proceeds from a sane default state; command line options
// then override anything the operator cares to change.  The resulting config
// is made available through GlobalConfig.
func LoadConfig() (*Config, error) {
	cfg := Config{
		DataDir:     defaultDataDirname,
		LogDir:      defaultLogDirname,
		DebugLevel:  defaultDebugLevel,
		MetricsAddr: defaultMetricsAddr,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	// Multiple networks can't be selected simultaneously.
	if cfg.TestNet && cfg.SimNet {
		return nil, fmt.Errorf("the testnet and simnet params can't be used together -- choose one of the two")
	}
	switch {
	case cfg.TestNet:
		activeNetParams = &testNet3Params
	case cfg.SimNet:
		activeNetParams = &simNetParams
	}

	// Append the network name to the data and log directories so it is
	// "namespaced" per network.
	cfg.DataDir = filepath.Join(cfg.DataDir, activeNetParams.Name)
	cfg.LogDir = filepath.Join(cfg.LogDir, activeNetParams.Name)

	globalCfg = &cfg
	return &cfg, nil
}

// LogFile returns the path of the rotated log file for the active network.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}
