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
	"github.com/multivactech/sortition/model/chaincfg"
)

// activeNetParams is a pointer to the parameters specific to the
// currently active burn chain network.
var activeNetParams = &mainNetParams

// netParams is used to group parameters for various networks such as the main
// network and test networks.
type netParams struct {
	*chaincfg.Params
}

// mainNetParams contains parameters specific to the main network.
var mainNetParams = netParams{
	Params: &chaincfg.MainNetParams,
}

// testNet3Params contains parameters specific to the test network (version 3).
var testNet3Params = netParams{
	Params: &chaincfg.TestNet3Params,
}

// simNetParams contains parameters specific to the simulation test network.
var simNetParams = netParams{
	Params: &chaincfg.SimNetParams,
}

// ActiveNetParams returns a pointer to the parameters specific to the
// currently active burn chain network.
func ActiveNetParams() *netParams {
	return activeNetParams
}
