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
	"github.com/multivactech/sortition/processor/shared/message"
)

// Service is the threaded front of the burn chain.  It implements the
// iburnchain.BurnChain interface by relaying every call through the actor's
// mailbox.
type Service struct {
	actor    message.Actor
	actorCtx *message.ActorContext
}

// ProcessBlock sends a ProcessBlock Event to the service's actor and waits
// for the resulting snapshot.
func (s *Service) ProcessBlock(header *wire.BurnBlockHeader, commits []*wire.MsgBlockCommit,
	txids []chainhash.Hash) (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtProcessBlock,
		&processBlockRequest{header: header, commits: commits, txids: txids})).(*processBlockResponse)
	return resp.snapshot, resp.err
}

// GetSnapshot sends a SnapshotByHash Event to the service's actor and waits
// for the snapshot of the given burn block, nil if it was never processed.
func (s *Service) GetSnapshot(blockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtSnapshotByHash, *blockHash)).(*snapshotResponse)
	return resp.snapshot, resp.err
}

// GetChainTip sends a ChainTip Event to the service's actor and waits for the
// snapshot of the highest processed burn block.
func (s *Service) GetChainTip() (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtChainTip, nil)).(*snapshotResponse)
	return resp.snapshot, resp.err
}

// GetAncestorSnapshot sends an AncestorSnapshot Event to the service's actor
// and waits for the snapshot at the given height on the given fork.
func (s *Service) GetAncestorSnapshot(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtAncestorSnapshot,
		&ancestorRequest{height: height, tipHash: *tipBlockHash})).(*snapshotResponse)
	return resp.snapshot, resp.err
}

// GetLastSnapshotWithSortition sends a LastSortitionSnapshot Event to the
// service's actor and waits for the nearest sortition-bearing snapshot at or
// below the given height on the given fork.
func (s *Service) GetLastSnapshotWithSortition(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtLastSortitionSnapshot,
		&ancestorRequest{height: height, tipHash: *tipBlockHash})).(*snapshotResponse)
	return resp.snapshot, resp.err
}

// GetStableSnapshot sends a StableSnapshot Event to the service's actor and
// waits for the snapshot a stable number of confirmations below the tip.
func (s *Service) GetStableSnapshot() (*sortition.BlockSnapshot, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtStableSnapshot, nil)).(*snapshotResponse)
	return resp.snapshot, resp.err
}

// IsFreshConsensusHash sends a FreshConsensusHash Event to the service's
// actor and waits for the freshness verdict on the given fork.
func (s *Service) IsFreshConsensusHash(consensusHash sortition.ConsensusHash, tipBlockHash *chainhash.Hash) (bool, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtFreshConsensusHash,
		&freshConsensusHashRequest{consensusHash: consensusHash, tipHash: *tipBlockHash})).(*freshConsensusHashResponse)
	return resp.fresh, resp.err
}

// GetBlockCommit sends a BlockCommit Event to the service's actor and waits
// for the commit with the given txid in the given burn block.
func (s *Service) GetBlockCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) (*wire.MsgBlockCommit, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtBlockCommit,
		&blockCommitRequest{txid: *txid, blockHash: *blockHash})).(*blockCommitResponse)
	return resp.commit, resp.err
}

// SetIndexRoot sends a SetIndexRoot Event to the service's actor and waits
// for the recomputed commitment root of the given burn block.
func (s *Service) SetIndexRoot(blockHash *chainhash.Hash, txids []chainhash.Hash) (chainhash.Hash, error) {
	resp := s.actorCtx.SendAndWait(s.actor, message.NewEvent(evtSetIndexRoot,
		&setIndexRootRequest{blockHash: *blockHash, txids: txids})).(*setIndexRootResponse)
	return resp.root, resp.err
}
