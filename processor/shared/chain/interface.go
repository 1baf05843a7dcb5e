/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
)

// ChainReader provides read access to previously processed fork state.  The
// snapshot builder sources VRF seeds through it; BurnDB is the production
// implementation and the test fakes stand in for it elsewhere.
type ChainReader interface {
	// GetLastSnapshotWithSortition returns the snapshot of the nearest
	// ancestor, at or below the given height on the fork identified by
	// tipBlockHash, whose sortition succeeded.  The walk always terminates
	// because the initial snapshot reports a sortition.
	GetLastSnapshotWithSortition(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error)

	// GetBlockCommit returns the block commit with the given txid recorded
	// in the given burn block, or nil if no such commit is stored.
	GetBlockCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) (*wire.MsgBlockCommit, error)
}
