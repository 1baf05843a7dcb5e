// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package sortition

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/multivactech/sortition/model/chaincfg"
)

// BlockSnapshot is the immutable per-round checkpoint of a fork: the
// sortition outcome for one burn block plus the cumulative chain state it
// implies.  Exactly one snapshot exists per (fork, height).  A snapshot is
// created once by the snapshot builder and never modified afterwards, with
// one exception: IndexRoot is patched by the storage layer once the block's
// commitment is computed.
type BlockSnapshot struct {
	// Height of the burn block this snapshot was taken at.
	Height uint64

	// BlockHash is the burn block's identifier.
	BlockHash chainhash.Hash

	// ParentBlockHash is the identifier of the parent burn block.  The
	// builder requires ParentBlockHash == parent.BlockHash.
	ParentBlockHash chainhash.Hash

	// Timestamp of the burn block, in seconds since the epoch.
	Timestamp uint64

	// ConsensusHash is the running fingerprint of this fork's history up
	// to and including this block.
	ConsensusHash ConsensusHash

	// OpsHash digests this block's ordered txids.
	OpsHash OpsHash

	// TotalBurn is the cumulative burn on this fork.  It is monotonic
	// non-decreasing until SortitionDisabled latches.
	TotalBurn uint64

	// Sortition reports whether a winner was chosen for this block.
	Sortition bool

	// SortitionDisabled latches true when the cumulative burn accounting
	// overflows.  From then on the fork stays queryable but produces no
	// further winners; the flag and the frozen TotalBurn are copied to
	// every descendant.
	SortitionDisabled bool

	// SortitionHash is the hash chain accumulator after this block.
	SortitionHash SortitionHash

	// WinningBlockTxid is the txid of the winning block commit, or the
	// zero sentinel if no sortition occurred.
	WinningBlockTxid chainhash.Hash

	// WinningBlockHash is the identifier of the chain block produced by
	// the winner, or the zero sentinel if no sortition occurred.
	WinningBlockHash chainhash.Hash

	// IndexRoot is the commitment root over this block's recorded
	// operations.  It is written as a placeholder by the builder and
	// patched by the storage layer.
	IndexRoot chainhash.Hash

	// NumSortitions counts the sortitions on this fork to date.
	NumSortitions uint64

	// Canonical downstream chain tip bookkeeping.  Opaque to the
	// sortition core; copied forward from parent to child unchanged.
	CanonicalTipHeight   uint64
	CanonicalTipHash     chainhash.Hash
	CanonicalTipBurnHash chainhash.Hash
}

// InitialSnapshot returns the sentinel genesis snapshot seeding a fork at
// the configured first burn block.
func InitialSnapshot(params *chaincfg.Params) *BlockSnapshot {
	return &BlockSnapshot{
		Height:          params.FirstBlockHeight,
		BlockHash:       params.FirstBlockHash,
		ParentBlockHash: chainhash.Hash{},
		Timestamp:       params.FirstBlockTimestamp,
		TotalBurn:       0,
		Sortition:       true,
		SortitionHash:   InitialSortitionHash(),
		NumSortitions:   0,
	}
}

// IsInitial reports whether this is the sentinel genesis snapshot, i.e. no
// block has been folded into its hash chain yet.
func (sn *BlockSnapshot) IsInitial() bool {
	return sn.SortitionHash == InitialSortitionHash()
}

func (sn *BlockSnapshot) String() string {
	return fmt.Sprintf("{Height:%d, BlockHash:%v, Sortition:%v, TotalBurn:%d, NumSortitions:%d, WinningBlockTxid:%v}",
		sn.Height,
		sn.BlockHash,
		sn.Sortition,
		sn.TotalBurn,
		sn.NumSortitions,
		sn.WinningBlockTxid)
}

// Deserialize decodes a snapshot from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (sn *BlockSnapshot) Deserialize(r io.Reader) error {
	return rlp.Decode(r, sn)
}

// Serialize encodes a snapshot to w using a format that is suitable for
// long-term storage such as a database.
func (sn *BlockSnapshot) Serialize(w io.Writer) error {
	return rlp.Encode(w, sn)
}

// ToBytesArray serialize the snapshot to byte array.
func (sn *BlockSnapshot) ToBytesArray() []byte {
	ret, err := rlp.EncodeToBytes(sn)
	if err != nil {
		return nil
	}
	return ret
}
