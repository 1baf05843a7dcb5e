/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"fmt"
	"math"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
	"github.com/multivactech/sortition/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(fc *testutil.FakeBurnChain) *SnapshotBuilder {
	return NewSnapshotBuilder(fc, fc.Params, nil)
}

// processFakeBlock runs one block through the builder and records the outcome
// in the fake chain, the way the service does against the disk store.
func processFakeBlock(t *testing.T, fc *testutil.FakeBurnChain, parent *sortition.BlockSnapshot,
	header *wire.BurnBlockHeader, commits []*wire.MsgBlockCommit) *sortition.BlockSnapshot {

	dist, err := sortition.MakeBurnDistribution(commits)
	require.NoError(t, err)
	sn, err := testBuilder(fc).MakeSnapshot(parent, header, dist, nil)
	require.NoError(t, err)
	fc.AddSnapshot(sn, commits...)
	return sn
}

func TestEmptyBlockProducesNoSortition(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()
	header := fc.NextHeader(initial, "empty")

	sn := processFakeBlock(t, fc, initial, header, nil)

	assert.False(t, sn.Sortition)
	assert.False(t, sn.SortitionDisabled)
	assert.Equal(t, uint64(0), sn.TotalBurn)
	assert.Equal(t, uint64(0), sn.NumSortitions)
	assert.Equal(t, initial.SortitionHash.MixBurnHeader(&header.BlockHash), sn.SortitionHash,
		"an empty block still advances the hash chain by its block hash")
	assert.Equal(t, chainhash.Hash{}, sn.WinningBlockTxid)
	assert.Equal(t, chainhash.Hash{}, sn.WinningBlockHash)
}

func TestSingleCandidateAlwaysWins(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()
	header := fc.NextHeader(initial, "solo")
	commit := testutil.FakeCommit(header.Height, "solo", 100)

	sn := processFakeBlock(t, fc, initial, header, []*wire.MsgBlockCommit{commit})

	assert.True(t, sn.Sortition)
	assert.Equal(t, commit.Txid, sn.WinningBlockTxid)
	assert.Equal(t, commit.BlockHeaderHash, sn.WinningBlockHash)
	assert.Equal(t, uint64(100), sn.TotalBurn)
	assert.Equal(t, uint64(1), sn.NumSortitions)

	winnerSeed := sortition.VRFSeedFromHash(commit.NewSeed)
	expected := initial.SortitionHash.MixBurnHeader(&header.BlockHash).MixVRFSeed(&winnerSeed)
	assert.Equal(t, expected, sn.SortitionHash,
		"the winner's seed must be folded into the final hash")
}

func TestZeroBurnBlockProducesNoSortition(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()
	header := fc.NextHeader(initial, "zeroburn")
	commits := []*wire.MsgBlockCommit{
		testutil.FakeCommit(header.Height, "a", 0),
		testutil.FakeCommit(header.Height, "b", 0),
	}

	sn := processFakeBlock(t, fc, initial, header, commits)

	assert.False(t, sn.Sortition)
	assert.False(t, sn.SortitionDisabled)
	assert.Equal(t, uint64(0), sn.TotalBurn)
}

func TestRoundOverflowSkipsSortitionAndRecovers(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	header1 := fc.NextHeader(initial, "overflowing")
	commits := []*wire.MsgBlockCommit{
		testutil.FakeCommit(header1.Height, "a", math.MaxUint64),
		testutil.FakeCommit(header1.Height, "b", math.MaxUint64),
	}
	sn1 := processFakeBlock(t, fc, initial, header1, commits)

	assert.False(t, sn1.Sortition)
	assert.False(t, sn1.SortitionDisabled, "a per-round overflow must not latch the lockout")
	assert.Equal(t, uint64(0), sn1.TotalBurn)

	// The fork keeps electing winners afterwards.
	header2 := fc.NextHeader(sn1, "normal")
	commit := testutil.FakeCommit(header2.Height, "c", 500)
	sn2 := processFakeBlock(t, fc, sn1, header2, []*wire.MsgBlockCommit{commit})

	assert.True(t, sn2.Sortition)
	assert.Equal(t, uint64(500), sn2.TotalBurn)
}

func TestCumulativeOverflowDisablesSortitionForGood(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	header1 := fc.NextHeader(initial, "rich")
	commit1 := testutil.FakeCommit(header1.Height, "rich", 10)
	sn1 := processFakeBlock(t, fc, initial, header1, []*wire.MsgBlockCommit{commit1})
	require.True(t, sn1.Sortition)

	// Push the fork to the edge of the accounting domain.
	frozenTotal := uint64(math.MaxUint64 - 5)
	sn1.TotalBurn = frozenTotal
	fc.AddSnapshot(sn1, commit1)

	header2 := fc.NextHeader(sn1, "straw")
	commit2 := testutil.FakeCommit(header2.Height, "straw", 10)
	sn2 := processFakeBlock(t, fc, sn1, header2, []*wire.MsgBlockCommit{commit2})

	assert.False(t, sn2.Sortition)
	assert.True(t, sn2.SortitionDisabled, "a cumulative overflow must latch the lockout")
	assert.Equal(t, frozenTotal, sn2.TotalBurn, "the burn total freezes at the pre-overflow value")
	assert.Equal(t, sn1.SortitionHash.MixBurnHeader(&header2.BlockHash), sn2.SortitionHash)

	// Descendants inherit the lockout no matter how modest their burns.
	header3 := fc.NextHeader(sn2, "after")
	commit3 := testutil.FakeCommit(header3.Height, "after", 1)
	sn3 := processFakeBlock(t, fc, sn2, header3, []*wire.MsgBlockCommit{commit3})

	assert.False(t, sn3.Sortition)
	assert.True(t, sn3.SortitionDisabled)
	assert.Equal(t, frozenTotal, sn3.TotalBurn)
	assert.Equal(t, sn2.SortitionHash.MixBurnHeader(&header3.BlockHash), sn3.SortitionHash,
		"the hash chain keeps advancing on a locked-out fork")
}

func TestWinnerSeedSourcedFromNearestSortition(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	// One sortition, then a stretch of empty blocks.
	header1 := fc.NextHeader(initial, "winner")
	commit1 := testutil.FakeCommit(header1.Height, "winner", 50)
	sn1 := processFakeBlock(t, fc, initial, header1, []*wire.MsgBlockCommit{commit1})
	require.True(t, sn1.Sortition)

	sn2 := processFakeBlock(t, fc, sn1, fc.NextHeader(sn1, "idle1"), nil)
	sn3 := processFakeBlock(t, fc, sn2, fc.NextHeader(sn2, "idle2"), nil)

	header4 := fc.NextHeader(sn3, "contested")
	commits := []*wire.MsgBlockCommit{
		testutil.FakeCommit(header4.Height, "a", 30),
		testutil.FakeCommit(header4.Height, "b", 70),
	}
	dist, err := sortition.MakeBurnDistribution(commits)
	require.NoError(t, err)

	sn4, err := testBuilder(fc).MakeSnapshot(sn3, header4, dist, nil)
	require.NoError(t, err)
	require.True(t, sn4.Sortition)

	// Replay the draw with the seed committed by the round-1 winner.  The
	// builder must have sampled with exactly that seed.
	seed := sortition.VRFSeedFromHash(commit1.NewSeed)
	mixed := sn3.SortitionHash.MixBurnHeader(&header4.BlockHash)
	index, ok := sampleBurnDistribution(dist, &seed, &mixed)
	require.True(t, ok)
	assert.Equal(t, dist.Point(index).Candidate.Txid, sn4.WinningBlockTxid)
}

func TestFirstRoundUsesInitialSeed(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	header := fc.NextHeader(initial, "first")
	commits := []*wire.MsgBlockCommit{
		testutil.FakeCommit(header.Height, "a", 10),
		testutil.FakeCommit(header.Height, "b", 10),
	}
	dist, err := sortition.MakeBurnDistribution(commits)
	require.NoError(t, err)

	sn, err := testBuilder(fc).MakeSnapshot(initial, header, dist, nil)
	require.NoError(t, err)
	require.True(t, sn.Sortition)

	seed := sortition.InitialVRFSeed()
	mixed := initial.SortitionHash.MixBurnHeader(&header.BlockHash)
	index, ok := sampleBurnDistribution(dist, &seed, &mixed)
	require.True(t, ok)
	assert.Equal(t, dist.Point(index).Candidate.Txid, sn.WinningBlockTxid)
}

func TestMissingWinningCommitPanics(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	header1 := fc.NextHeader(initial, "winner")
	commit1 := testutil.FakeCommit(header1.Height, "winner", 50)
	sn1 := processFakeBlock(t, fc, initial, header1, []*wire.MsgBlockCommit{commit1})
	require.True(t, sn1.Sortition)

	// Simulate store corruption: the winning commit vanishes.
	fc.DropCommit(&sn1.WinningBlockTxid, &sn1.BlockHash)

	header2 := fc.NextHeader(sn1, "next")
	commits := []*wire.MsgBlockCommit{
		testutil.FakeCommit(header2.Height, "a", 10),
		testutil.FakeCommit(header2.Height, "b", 10),
	}
	dist, err := sortition.MakeBurnDistribution(commits)
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = testBuilder(fc).MakeSnapshot(sn1, header2, dist, nil)
	})
}

func TestNonChildHeaderPanics(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()
	dist, err := sortition.MakeBurnDistribution(nil)
	require.NoError(t, err)

	badParent := fc.NextHeader(initial, "detached")
	badParent.PrevBlockHash = testutil.FakeBlockHash(99, "elsewhere")
	assert.Panics(t, func() {
		_, _ = testBuilder(fc).MakeSnapshot(initial, badParent, dist, nil)
	})

	badHeight := fc.NextHeader(initial, "skipping")
	badHeight.Height += 1
	assert.Panics(t, func() {
		_, _ = testBuilder(fc).MakeSnapshot(initial, badHeight, dist, nil)
	})
}

func TestSnapshotsAreDeterministic(t *testing.T) {
	run := func() []byte {
		fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
		sn := fc.Initial()
		for _, burns := range []uint64{0, 25, 0, 100} {
			header := fc.NextHeader(sn, "det")
			var commits []*wire.MsgBlockCommit
			if burns > 0 {
				commits = append(commits,
					testutil.FakeCommit(header.Height, "a", burns),
					testutil.FakeCommit(header.Height, "b", burns*2))
			}
			next := processFakeBlock(t, fc, sn, header, commits)
			assert.GreaterOrEqual(t, next.TotalBurn, sn.TotalBurn,
				"burn totals never decrease along a fork")
			sn = next
		}
		return sn.ToBytesArray()
	}

	first := run()
	require.NotNil(t, first)
	assert.Equal(t, first, run(), "two replays of the same fork must agree byte for byte")
}

func TestSortitionFollowsBurnWeight(t *testing.T) {
	fc := testutil.NewFakeBurnChain(t, &chaincfg.SimNetParams)
	initial := fc.Initial()

	// Sample many independent single-block forks off the same parent; the
	// block hash varies per fork, so each is a fresh draw.  The heavy
	// candidate burns 3x the light one and should win about 75% of them.
	const rounds = 400
	heavyWins := 0
	for i := 0; i < rounds; i++ {
		header := fc.NextHeader(initial, fmt.Sprintf("fork%d", i))
		commits := []*wire.MsgBlockCommit{
			testutil.FakeCommit(header.Height, "light", 100),
			testutil.FakeCommit(header.Height, "heavy", 300),
		}
		dist, err := sortition.MakeBurnDistribution(commits)
		require.NoError(t, err)
		sn, err := testBuilder(fc).MakeSnapshot(initial, header, dist, nil)
		require.NoError(t, err)
		require.True(t, sn.Sortition)
		if sn.WinningBlockTxid == commits[1].Txid {
			heavyWins++
		}
	}

	// Loose bounds; the draw is deterministic per fork but behaves like a
	// fair weighted sample across forks.
	assert.Greater(t, heavyWins, rounds*60/100)
	assert.Less(t, heavyWins, rounds*90/100)
}
