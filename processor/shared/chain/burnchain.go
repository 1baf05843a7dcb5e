/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/metrics"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
	"github.com/multivactech/sortition/processor/shared/message"
)

// burnChain is the actor behind Service.  All block processing and fork
// queries funnel through its mailbox, so burn blocks are processed strictly
// one at a time and reads never observe a half-written round.
type burnChain struct {
	db      *BurnDB
	builder *SnapshotBuilder
	metrics *metrics.Metrics
}

func newBurnChain(dataDir string, netParams *chaincfg.Params, hasher sortition.ConsensusHasher) *burnChain {
	bdb, err := NewBurnDB(dataDir, netParams)
	if err != nil {
		panic(err)
	}
	return &burnChain{
		db:      bdb,
		builder: NewSnapshotBuilder(bdb, netParams, hasher),
		metrics: metrics.Metric,
	}
}

// ProcessBlock runs one burn block through the snapshot builder and persists
// the outcome.  The parent block must have been processed already; a block
// arriving before its parent is rejected, not queued.  Reprocessing a block
// returns the stored snapshot unchanged.
func (bc *burnChain) ProcessBlock(header *wire.BurnBlockHeader, commits []*wire.MsgBlockCommit,
	txids []chainhash.Hash) (*sortition.BlockSnapshot, error) {

	start := time.Now()

	existing, err := bc.db.GetSnapshot(&header.BlockHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Debugf("burn block %v was already processed", header.BlockHash)
		return existing, nil
	}

	parent, err := bc.db.GetSnapshot(&header.PrevBlockHash)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("burn block %v arrived before its parent %v", header.BlockHash, header.PrevBlockHash)
	}
	if header.Height != parent.Height+1 {
		return nil, fmt.Errorf("burn block %v claims height %d but extends height %d",
			header.BlockHash, header.Height, parent.Height)
	}

	dist, err := sortition.MakeBurnDistribution(commits)
	if err != nil {
		return nil, err
	}

	sn, err := bc.builder.MakeSnapshot(parent, header, dist, txids)
	if err != nil {
		return nil, err
	}
	if err := bc.db.StoreSnapshot(sn, commits); err != nil {
		return nil, err
	}
	root, err := bc.db.SetIndexRoot(&header.BlockHash, txids)
	if err != nil {
		return nil, err
	}
	sn.IndexRoot = root

	bc.recordMetrics(sn, dist, len(commits))
	bc.metrics.ProcessBlockDuration.Observe(time.Since(start).Seconds())
	log.Infof("processed burn block %v at height %d: sortition %v, total burn %d",
		header.BlockHash, header.Height, sn.Sortition, sn.TotalBurn)
	return sn, nil
}

func (bc *burnChain) recordMetrics(sn *sortition.BlockSnapshot, dist *sortition.BurnDistribution, numCommits int) {
	if sn.Height >= bc.db.tipHeight {
		bc.metrics.BurnTipHeight.Set(float64(sn.Height))
		bc.metrics.TotalBurn.Set(float64(sn.TotalBurn))
	}
	if sn.Sortition {
		bc.metrics.SortitionCnt.Inc()
		return
	}

	var reason string
	switch {
	case sn.SortitionDisabled:
		reason = "disabled"
	case numCommits == 0:
		reason = "no_commits"
	default:
		if total, ok := dist.TotalBurns(); !ok {
			reason = "burn_overflow"
		} else if total == 0 {
			reason = "no_burns"
		} else {
			reason = "unknown"
		}
	}
	bc.metrics.NoSortitionCnt.WithLabelValues(reason).Inc()
}

// Act implements the message.Actor interface.
func (bc *burnChain) Act(e *message.Event, callback func(m interface{})) {
	switch e.Topic {
	case evtProcessBlock:
		req := e.Extra.(*processBlockRequest)
		sn, err := bc.ProcessBlock(req.header, req.commits, req.txids)
		callback(&processBlockResponse{snapshot: sn, err: err})
	case evtSnapshotByHash:
		blockHash := e.Extra.(chainhash.Hash)
		sn, err := bc.db.GetSnapshot(&blockHash)
		callback(&snapshotResponse{snapshot: sn, err: err})
	case evtChainTip:
		sn, err := bc.db.ChainTip()
		callback(&snapshotResponse{snapshot: sn, err: err})
	case evtAncestorSnapshot:
		req := e.Extra.(*ancestorRequest)
		sn, err := bc.db.GetAncestorSnapshot(req.height, &req.tipHash)
		callback(&snapshotResponse{snapshot: sn, err: err})
	case evtLastSortitionSnapshot:
		req := e.Extra.(*ancestorRequest)
		sn, err := bc.db.GetLastSnapshotWithSortition(req.height, &req.tipHash)
		callback(&snapshotResponse{snapshot: sn, err: err})
	case evtBlockCommit:
		req := e.Extra.(*blockCommitRequest)
		commit, err := bc.db.GetBlockCommit(&req.txid, &req.blockHash)
		callback(&blockCommitResponse{commit: commit, err: err})
	case evtFreshConsensusHash:
		req := e.Extra.(*freshConsensusHashRequest)
		fresh, err := bc.db.IsFreshConsensusHash(req.consensusHash, &req.tipHash)
		callback(&freshConsensusHashResponse{fresh: fresh, err: err})
	case evtStableSnapshot:
		sn, err := bc.db.GetStableSnapshot()
		callback(&snapshotResponse{snapshot: sn, err: err})
	case evtSetIndexRoot:
		req := e.Extra.(*setIndexRootRequest)
		root, err := bc.db.SetIndexRoot(&req.blockHash, req.txids)
		callback(&setIndexRootResponse{root: root, err: err})
	}
}
