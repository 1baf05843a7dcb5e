/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package testutil

import (
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
)

type commitKey struct {
	txid      chainhash.Hash
	blockHash chainhash.Hash
}

// FakeBurnChain is an in-memory burn chain used for testing the snapshot
// builder without a disk store.  It implements the chain.ChainReader
// interface and offers helpers for growing forks block by block.
type FakeBurnChain struct {
	Params    *chaincfg.Params
	snapshots map[chainhash.Hash]*sortition.BlockSnapshot
	commits   map[commitKey]*wire.MsgBlockCommit
	t         *testing.T
}

// NewFakeBurnChain returns a fake burn chain seeded with the initial snapshot
// of the given network.
func NewFakeBurnChain(t *testing.T, netParams *chaincfg.Params) *FakeBurnChain {
	fc := &FakeBurnChain{
		Params:    netParams,
		snapshots: make(map[chainhash.Hash]*sortition.BlockSnapshot),
		commits:   make(map[commitKey]*wire.MsgBlockCommit),
		t:         t,
	}
	initial := sortition.InitialSnapshot(netParams)
	fc.snapshots[initial.BlockHash] = initial
	return fc
}

// Initial returns the seeded initial snapshot.
func (fc *FakeBurnChain) Initial() *sortition.BlockSnapshot {
	return fc.snapshots[fc.Params.FirstBlockHash]
}

// AddSnapshot records a processed snapshot together with the block commits of
// its burn block.
func (fc *FakeBurnChain) AddSnapshot(sn *sortition.BlockSnapshot, commits ...*wire.MsgBlockCommit) {
	fc.snapshots[sn.BlockHash] = sn
	for _, commit := range commits {
		fc.commits[commitKey{txid: commit.Txid, blockHash: sn.BlockHash}] = commit
	}
}

// DropCommit removes a stored block commit.  Tests use it to simulate a
// corrupted store.
func (fc *FakeBurnChain) DropCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) {
	delete(fc.commits, commitKey{txid: *txid, blockHash: *blockHash})
}

// GetLastSnapshotWithSortition walks the fork identified by tipBlockHash down
// from the given height to the nearest sortition-bearing snapshot.
func (fc *FakeBurnChain) GetLastSnapshotWithSortition(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	sn, ok := fc.snapshots[*tipBlockHash]
	if !ok {
		return nil, fmt.Errorf("no snapshot for fork tip %v", tipBlockHash)
	}
	for sn.Height > height {
		parent, ok := fc.snapshots[sn.ParentBlockHash]
		if !ok {
			return nil, fmt.Errorf("no snapshot for ancestor %v", sn.ParentBlockHash)
		}
		sn = parent
	}
	for !sn.Sortition {
		parent, ok := fc.snapshots[sn.ParentBlockHash]
		if !ok {
			return nil, fmt.Errorf("no snapshot for ancestor %v", sn.ParentBlockHash)
		}
		sn = parent
	}
	return sn, nil
}

// GetBlockCommit returns the commit with the given txid recorded in the given
// burn block, nil if there is none.
func (fc *FakeBurnChain) GetBlockCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) (*wire.MsgBlockCommit, error) {
	return fc.commits[commitKey{txid: *txid, blockHash: *blockHash}], nil
}

// NextHeader builds a burn block header extending the given parent snapshot.
// The block hash is derived from the parent and the tag, so distinct tags on
// the same parent yield distinct forks deterministically.
func (fc *FakeBurnChain) NextHeader(parent *sortition.BlockSnapshot, tag string) *wire.BurnBlockHeader {
	return &wire.BurnBlockHeader{
		Height:        parent.Height + 1,
		BlockHash:     FakeBlockHash(parent.Height+1, tag),
		PrevBlockHash: parent.BlockHash,
		Timestamp:     1547800000 + (parent.Height+1)*600,
	}
}

// FakeBlockHash derives a deterministic burn block hash for tests.
func FakeBlockHash(height uint64, tag string) chainhash.Hash {
	return chainhash.HashH([]byte(fmt.Sprintf("burn_block_%d_%s", height, tag)))
}

// FakeTxid derives a deterministic txid for tests.
func FakeTxid(height uint64, tag string) chainhash.Hash {
	return chainhash.HashH([]byte(fmt.Sprintf("txid_%d_%s", height, tag)))
}

// FakeCommit builds a block commit candidate with the given burn fee.  The
// committed seed is derived from the tag so every candidate chains a distinct
// seed.
func FakeCommit(height uint64, tag string, burnFee uint64) *wire.MsgBlockCommit {
	return &wire.MsgBlockCommit{
		Txid:            FakeTxid(height, tag),
		BlockHeaderHash: chainhash.HashH([]byte(fmt.Sprintf("chain_block_%d_%s", height, tag))),
		NewSeed:         chainhash.HashH([]byte(fmt.Sprintf("seed_%d_%s", height, tag))),
		BurnFee:         burnFee,
		BlockHeight:     height,
	}
}
