// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package iburnchain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
)

// BurnChain is the processing and query surface of the burn chain.
type BurnChain interface {
	// ProcessBlock runs one burn block through sortition and returns its
	// snapshot.  The block's parent must have been processed already.
	ProcessBlock(header *wire.BurnBlockHeader, commits []*wire.MsgBlockCommit,
		txids []chainhash.Hash) (*sortition.BlockSnapshot, error)

	// GetSnapshot returns the snapshot of the given burn block, nil if the
	// block was never processed.
	GetSnapshot(blockHash *chainhash.Hash) (*sortition.BlockSnapshot, error)

	// GetChainTip returns the snapshot of the highest processed burn block.
	GetChainTip() (*sortition.BlockSnapshot, error)

	// GetAncestorSnapshot returns the snapshot at the given height on the
	// fork identified by tipBlockHash.
	GetAncestorSnapshot(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error)

	// GetLastSnapshotWithSortition returns the nearest sortition-bearing
	// snapshot at or below the given height on the given fork.
	GetLastSnapshotWithSortition(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error)

	// GetStableSnapshot returns the snapshot a stable number of
	// confirmations below the chain tip.
	GetStableSnapshot() (*sortition.BlockSnapshot, error)

	// IsFreshConsensusHash reports whether the given consensus hash is
	// recent enough on the given fork to bind new operations to.
	IsFreshConsensusHash(consensusHash sortition.ConsensusHash, tipBlockHash *chainhash.Hash) (bool, error)

	// GetBlockCommit returns the commit with the given txid recorded in
	// the given burn block, nil if no such commit is stored.
	GetBlockCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) (*wire.MsgBlockCommit, error)

	// SetIndexRoot recomputes and stores the commitment root of the given
	// burn block over the given operations.
	SetIndexRoot(blockHash *chainhash.Hash, txids []chainhash.Hash) (chainhash.Hash, error)
}
