/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
)

// SnapshotBuilder produces the snapshot for each burn block as it is
// processed.  All of its inputs are either explicit arguments or reads of
// already-committed fork state through the ChainReader, so the output is a
// pure function of the fork's history and the new block.
type SnapshotBuilder struct {
	reader ChainReader
	params *chaincfg.Params
	hasher sortition.ConsensusHasher
}

// NewSnapshotBuilder returns a builder reading ancestor state through the
// given reader.  A nil hasher selects the default consensus hash derivation.
func NewSnapshotBuilder(reader ChainReader, params *chaincfg.Params, hasher sortition.ConsensusHasher) *SnapshotBuilder {
	if hasher == nil {
		hasher = sortition.DeriveConsensusHash
	}
	return &SnapshotBuilder{reader: reader, params: params, hasher: hasher}
}

// MakeSnapshot processes one burn block on top of its parent snapshot and
// returns the child snapshot.  It decides whether a sortition occurs, picks
// the winner if one does, and advances the cumulative fork state.
//
// The header must extend the parent snapshot; the caller validating that is
// part of this function's contract and a violation is treated as corruption,
// not as an error to recover from.  Storage errors from the reader are the
// only error returns.
func (b *SnapshotBuilder) MakeSnapshot(parent *sortition.BlockSnapshot, header *wire.BurnBlockHeader,
	dist *sortition.BurnDistribution, txids []chainhash.Hash) (*sortition.BlockSnapshot, error) {

	if parent.BlockHash != header.PrevBlockHash {
		panic(fmt.Sprintf("FATAL: block %v does not extend the parent snapshot's block %v",
			header.BlockHash, parent.BlockHash))
	}
	if parent.Height+1 != header.Height {
		panic(fmt.Sprintf("FATAL: block height %d does not follow the parent snapshot's height %d",
			header.Height, parent.Height))
	}

	// The accumulator advances on every block, sortition or not, so the
	// chain commits to the full burn block history.
	nextSortitionHash := parent.SortitionHash.MixBurnHeader(&header.BlockHash)

	if parent.SortitionDisabled {
		sortLog.Debugf("SORTITION(%d): sortition is disabled on this fork", header.Height)
		return b.makeSnapshotNoSortition(parent, header, parent.TotalBurn, true, nextSortitionHash, txids), nil
	}

	if dist.Len() == 0 {
		sortLog.Debugf("SORTITION(%d): no block commits in burn block %v", header.Height, header.BlockHash)
		return b.makeSnapshotNoSortition(parent, header, parent.TotalBurn, false, nextSortitionHash, txids), nil
	}

	blockBurnTotal, ok := dist.TotalBurns()
	if !ok {
		sortLog.Warnf("SORTITION(%d): burn count exceeds the maximum threshold", header.Height)
		return b.makeSnapshotNoSortition(parent, header, parent.TotalBurn, false, nextSortitionHash, txids), nil
	}
	if blockBurnTotal == 0 {
		sortLog.Debugf("SORTITION(%d): no burns in burn block %v", header.Height, header.BlockHash)
		return b.makeSnapshotNoSortition(parent, header, parent.TotalBurn, false, nextSortitionHash, txids), nil
	}

	nextBurnTotal := parent.TotalBurn + blockBurnTotal
	if nextBurnTotal < parent.TotalBurn {
		// The cumulative accounting can never recover from this, so the
		// fork stops producing winners for good.
		sortLog.Warnf("SORTITION(%d): cumulative burn has overflown, subsequent sortitions will be denied",
			header.Height)
		return b.makeSnapshotNoSortition(parent, header, parent.TotalBurn, true, nextSortitionHash, txids), nil
	}

	winner, err := b.selectWinningCommit(header, &nextSortitionHash, dist)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		panic("FATAL: there must be a winner if the burn distribution has one or more candidates")
	}

	// Fold the winner's committed seed in so the next round's draw depends
	// on this round's outcome.
	winnerSeed := sortition.VRFSeedFromHash(winner.NewSeed)
	finalSortitionHash := nextSortitionHash.MixVRFSeed(&winnerSeed)

	opsHash := sortition.OpsHashFromTxids(txids)
	consensusHash := b.hasher(opsHash, parent.Height, b.params.FirstBlockHeight,
		&header.PrevBlockHash, &header.BlockHash, nextBurnTotal)

	sortLog.Debugf("SORTITION(%d): the winner is block %v (commit %v)",
		header.Height, winner.BlockHeaderHash, winner.Txid)

	return &sortition.BlockSnapshot{
		Height:               header.Height,
		BlockHash:            header.BlockHash,
		ParentBlockHash:      header.PrevBlockHash,
		Timestamp:            header.Timestamp,
		ConsensusHash:        consensusHash,
		OpsHash:              opsHash,
		TotalBurn:            nextBurnTotal,
		Sortition:            true,
		SortitionDisabled:    false,
		SortitionHash:        finalSortitionHash,
		WinningBlockTxid:     winner.Txid,
		WinningBlockHash:     winner.BlockHeaderHash,
		NumSortitions:        parent.NumSortitions + 1,
		CanonicalTipHeight:   parent.CanonicalTipHeight,
		CanonicalTipHash:     parent.CanonicalTipHash,
		CanonicalTipBurnHash: parent.CanonicalTipBurnHash,
	}, nil
}

// makeSnapshotNoSortition records a burn block that produced no winner.  The
// burn total carries over unchanged and the sortition hash still advances by
// the block hash alone.
func (b *SnapshotBuilder) makeSnapshotNoSortition(parent *sortition.BlockSnapshot, header *wire.BurnBlockHeader,
	burnTotal uint64, disable bool, sortitionHash sortition.SortitionHash, txids []chainhash.Hash) *sortition.BlockSnapshot {

	opsHash := sortition.OpsHashFromTxids(txids)
	consensusHash := b.hasher(opsHash, parent.Height, b.params.FirstBlockHeight,
		&header.PrevBlockHash, &header.BlockHash, burnTotal)

	return &sortition.BlockSnapshot{
		Height:               header.Height,
		BlockHash:            header.BlockHash,
		ParentBlockHash:      header.PrevBlockHash,
		Timestamp:            header.Timestamp,
		ConsensusHash:        consensusHash,
		OpsHash:              opsHash,
		TotalBurn:            burnTotal,
		Sortition:            false,
		SortitionDisabled:    parent.SortitionDisabled || disable,
		SortitionHash:        sortitionHash,
		NumSortitions:        parent.NumSortitions,
		CanonicalTipHeight:   parent.CanonicalTipHeight,
		CanonicalTipHash:     parent.CanonicalTipHash,
		CanonicalTipBurnHash: parent.CanonicalTipBurnHash,
	}
}

// selectWinningCommit picks the winning block commit for the round, or nil
// if the distribution cannot be sampled.  The seed feeding the draw comes
// from the winner of the nearest ancestor round that had one, or from the
// initial seed if no ancestor does.
func (b *SnapshotBuilder) selectWinningCommit(header *wire.BurnBlockHeader,
	sortitionHash *sortition.SortitionHash, dist *sortition.BurnDistribution) (*wire.MsgBlockCommit, error) {

	ancestor, err := b.reader.GetLastSnapshotWithSortition(header.Height-1, &header.PrevBlockHash)
	if err != nil {
		return nil, err
	}

	var seed sortition.VRFSeed
	if ancestor.IsInitial() {
		seed = sortition.InitialVRFSeed()
	} else {
		commit, err := b.reader.GetBlockCommit(&ancestor.WinningBlockTxid, &ancestor.BlockHash)
		if err != nil {
			return nil, err
		}
		if commit == nil {
			// A sortition-bearing snapshot always has its winning commit
			// stored alongside it.
			panic(fmt.Sprintf("FATAL: no block commit %v for burn block %v (indicates corruption)",
				ancestor.WinningBlockTxid, ancestor.BlockHash))
		}
		seed = sortition.VRFSeedFromHash(commit.NewSeed)
	}

	index, ok := sampleBurnDistribution(dist, &seed, sortitionHash)
	if !ok {
		return nil, nil
	}
	return dist.Point(index).Candidate, nil
}

// sampleBurnDistribution maps the round's randomness onto the distribution
// and returns the index of the candidate whose range it lands in.  With a
// single candidate there is nothing to sample; it wins outright.
func sampleBurnDistribution(dist *sortition.BurnDistribution, seed *sortition.VRFSeed,
	sortitionHash *sortition.SortitionHash) (int, bool) {

	if dist.Len() == 0 {
		return 0, false
	}
	if dist.Len() == 1 {
		return 0, true
	}

	index := sortitionHash.MixVRFSeed(seed).ToUint256()
	for i := 0; i < dist.Len(); i++ {
		point := dist.Point(i)
		if !index.Lt(point.RangeStart) && index.Lt(point.RangeEnd) {
			sortLog.Debugf("sampled %v: sortition index = %d", index, i)
			return i, true
		}
	}

	// Construction guarantees the ranges partition the whole domain, so a
	// miss can only mean the distribution memory was corrupted.
	panic(fmt.Sprintf("FATAL: unable to map the sortition index %v to a candidate range", index))
}
