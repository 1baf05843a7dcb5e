/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package server

import (
	"github.com/multivactech/sortition/interface/iburnchain"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/processor/shared/chain"
)

// provideBurnChain opens the on-disk burn chain service for the configured
// network.  The default consensus hash derivation is used.
func provideBurnChain(dataDir string, chainParams *chaincfg.Params) iburnchain.BurnChain {
	return chain.NewService(dataDir, chainParams, nil)
}
