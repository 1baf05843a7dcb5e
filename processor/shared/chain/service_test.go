/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/wire"
	"github.com/multivactech/sortition/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	return NewService(t.TempDir(), &chaincfg.SimNetParams, nil)
}

func nextTestHeader(parentHeight uint64, parentHash chainhash.Hash, tag string) *wire.BurnBlockHeader {
	return &wire.BurnBlockHeader{
		Height:        parentHeight + 1,
		BlockHash:     testutil.FakeBlockHash(parentHeight+1, tag),
		PrevBlockHash: parentHash,
		Timestamp:     1547800000 + (parentHeight+1)*600,
	}
}

func TestServiceProcessBlock(t *testing.T) {
	s := newTestService(t)

	tip, err := s.GetChainTip()
	require.NoError(t, err)
	require.True(t, tip.IsInitial())

	header := nextTestHeader(tip.Height, tip.BlockHash, "one")
	commit := testutil.FakeCommit(header.Height, "one", 100)
	txids := []chainhash.Hash{commit.Txid}

	sn, err := s.ProcessBlock(header, []*wire.MsgBlockCommit{commit}, txids)
	require.NoError(t, err)
	assert.True(t, sn.Sortition)
	assert.Equal(t, commit.Txid, sn.WinningBlockTxid)
	assert.NotEqual(t, chainhash.Hash{}, sn.IndexRoot,
		"processing must leave the commitment root patched in")

	tip, err = s.GetChainTip()
	require.NoError(t, err)
	assert.Equal(t, header.BlockHash, tip.BlockHash)

	stored, err := s.GetBlockCommit(&commit.Txid, &header.BlockHash)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, commit.BurnFee, stored.BurnFee)
}

func TestServiceRejectsOrphanBlocks(t *testing.T) {
	s := newTestService(t)

	tip, err := s.GetChainTip()
	require.NoError(t, err)

	// The parent of this header was never processed.
	orphan := nextTestHeader(tip.Height+5, testutil.FakeBlockHash(tip.Height+5, "unseen"), "orphan")
	_, err = s.ProcessBlock(orphan, nil, nil)
	assert.Error(t, err, "a block must not be processed before its parent")

	// A header lying about its height is rejected as well.
	lying := nextTestHeader(tip.Height, tip.BlockHash, "lying")
	lying.Height += 3
	_, err = s.ProcessBlock(lying, nil, nil)
	assert.Error(t, err)
}

func TestServiceProcessBlockIsIdempotent(t *testing.T) {
	s := newTestService(t)

	tip, err := s.GetChainTip()
	require.NoError(t, err)

	header := nextTestHeader(tip.Height, tip.BlockHash, "dup")
	commit := testutil.FakeCommit(header.Height, "dup", 10)

	first, err := s.ProcessBlock(header, []*wire.MsgBlockCommit{commit}, nil)
	require.NoError(t, err)

	second, err := s.ProcessBlock(header, []*wire.MsgBlockCommit{commit}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ToBytesArray(), second.ToBytesArray(),
		"reprocessing a block must return the stored snapshot unchanged")
}

func TestServiceQueriesAcrossForks(t *testing.T) {
	s := newTestService(t)

	tip, err := s.GetChainTip()
	require.NoError(t, err)

	header1 := nextTestHeader(tip.Height, tip.BlockHash, "base")
	commit1 := testutil.FakeCommit(header1.Height, "base", 10)
	sn1, err := s.ProcessBlock(header1, []*wire.MsgBlockCommit{commit1}, nil)
	require.NoError(t, err)

	headerA := nextTestHeader(sn1.Height, sn1.BlockHash, "a")
	snA, err := s.ProcessBlock(headerA, nil, nil)
	require.NoError(t, err)

	headerB := nextTestHeader(sn1.Height, sn1.BlockHash, "b")
	snB, err := s.ProcessBlock(headerB, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, snA.BlockHash, snB.BlockHash)

	// Both forks resolve their last sortition to the shared ancestor.
	last, err := s.GetLastSnapshotWithSortition(snA.Height, &snA.BlockHash)
	require.NoError(t, err)
	assert.Equal(t, sn1.BlockHash, last.BlockHash)

	last, err = s.GetLastSnapshotWithSortition(snB.Height, &snB.BlockHash)
	require.NoError(t, err)
	assert.Equal(t, sn1.BlockHash, last.BlockHash)

	ancestor, err := s.GetAncestorSnapshot(sn1.Height, &snB.BlockHash)
	require.NoError(t, err)
	assert.Equal(t, sn1.BlockHash, ancestor.BlockHash)

	got, err := s.GetSnapshot(&snA.BlockHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snA.Height, got.Height)
}

func TestServiceStabilityQueries(t *testing.T) {
	s := newTestService(t)

	tip, err := s.GetChainTip()
	require.NoError(t, err)

	header := nextTestHeader(tip.Height, tip.BlockHash, "stab")
	sn, err := s.ProcessBlock(header, nil, nil)
	require.NoError(t, err)

	// One block deep, only the initial snapshot is stable.
	stable, err := s.GetStableSnapshot()
	require.NoError(t, err)
	assert.Equal(t, tip.BlockHash, stable.BlockHash)

	fresh, err := s.IsFreshConsensusHash(sn.ConsensusHash, &sn.BlockHash)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = s.IsFreshConsensusHash(sn.ConsensusHash, &tip.BlockHash)
	require.NoError(t, err)
	assert.False(t, fresh, "a descendant's consensus hash is unknown to its ancestor's fork")
}
