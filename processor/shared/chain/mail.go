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

type processBlockRequest struct {
	header  *wire.BurnBlockHeader
	commits []*wire.MsgBlockCommit
	txids   []chainhash.Hash
}

type processBlockResponse struct {
	snapshot *sortition.BlockSnapshot
	err      error
}

type ancestorRequest struct {
	height  uint64
	tipHash chainhash.Hash
}

type snapshotResponse struct {
	snapshot *sortition.BlockSnapshot
	err      error
}

type blockCommitRequest struct {
	txid      chainhash.Hash
	blockHash chainhash.Hash
}

type blockCommitResponse struct {
	commit *wire.MsgBlockCommit
	err    error
}

type freshConsensusHashRequest struct {
	consensusHash sortition.ConsensusHash
	tipHash       chainhash.Hash
}

type freshConsensusHashResponse struct {
	fresh bool
	err   error
}

type setIndexRootRequest struct {
	blockHash chainhash.Hash
	txids     []chainhash.Hash
}

type setIndexRootResponse struct {
	root chainhash.Hash
	err  error
}
