/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

// Package chaincfg holds the per-network parameters of the observed burn
// chain.  The first block height and hash seed every fork's sentinel
// snapshot; both are consensus parameters and must match the wider system's
// genesis configuration.
package chaincfg

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Params groups the burn chain parameters for one network.
type Params struct {
	// Name is the directory name used for data and logs of this network.
	Name string

	// ChainName is the name of the observed burn chain.
	ChainName string

	// FirstBlockHeight is the burn chain height at which this chain's
	// history begins.  The sentinel genesis snapshot sits at this height.
	FirstBlockHeight uint64

	// FirstBlockHash is the burn block hash at FirstBlockHeight.
	FirstBlockHash chainhash.Hash

	// FirstBlockTimestamp is the timestamp of the first burn block,
	// in seconds since the epoch.
	FirstBlockTimestamp uint64
}

// MainNetParams contains parameters specific to the main network.
var MainNetParams = Params{
	Name:                "mainnet",
	ChainName:           "bitcoin",
	FirstBlockHeight:    530000,
	FirstBlockHash:      newHashFromStr("000000000000000000139045e5b57ad0f7e4ff4b7b05b0b33e3e1c4b1145d3af"),
	FirstBlockTimestamp: 1530214761,
}

// TestNet3Params contains parameters specific to the test network (version 3).
var TestNet3Params = Params{
	Name:                "testnet",
	ChainName:           "bitcoin",
	FirstBlockHeight:    1343000,
	FirstBlockHash:      newHashFromStr("00000000000003b2d1d9fc87b4fd39631d6c1e87d19e79b1633b4a2bcff0ed67"),
	FirstBlockTimestamp: 1533920841,
}

// SimNetParams contains parameters specific to the simulation test network.
// The first block hash is an arbitrary sentinel; simnet forks never cross
// a real burn chain.
var SimNetParams = Params{
	Name:                "simnet",
	ChainName:           "regtest",
	FirstBlockHeight:    120,
	FirstBlockHash:      newHashFromStr("0000000000000000000000000000000000000000000000000000000000000123"),
	FirstBlockTimestamp: 0,
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in
// that it panics on an error since it will only be called with hard-coded,
// and therefore known good, hashes.
func newHashFromStr(hexStr string) chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return *hash
}
