// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Package sortition holds the consensus-critical value types of the
// proof-of-burn leader election: the sortition hash chain, VRF seeds, the
// weighted burn distribution and the per-block snapshot.  Every operation in
// this package is deterministic and must reproduce bit-exact on all nodes.
//
// The mixing hash (SHA-256), the 20-byte consensus hash width and the
// big-endian 256-bit projection are consensus parameters.  They must match
// the wider system's genesis configuration and cannot be changed without
// forking every node.
package sortition

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/holiman/uint256"
)

// SortitionHashSize is the byte width of the sortition hash accumulator.
const SortitionHashSize = 32

// SortitionHash is the 32-byte accumulator of the hash chain driving winner
// selection.  Each burn block header is folded in unconditionally, and each
// winning commit's VRF seed is folded in after its round resolves, so the
// chain stays unpredictable before a block is mined and cannot be biased by
// empty blocks.
type SortitionHash [SortitionHashSize]byte

// InitialSortitionHash returns the sentinel accumulator value seeding every
// fork before its first block is processed.
func InitialSortitionHash() SortitionHash {
	return SortitionHash{}
}

// MixBurnHeader folds a burn block hash into the accumulator and returns the
// advanced value.  The receiver is not modified.
func (sh SortitionHash) MixBurnHeader(blockHash *chainhash.Hash) SortitionHash {
	buf := make([]byte, 0, SortitionHashSize+chainhash.HashSize)
	buf = append(buf, sh[:]...)
	buf = append(buf, blockHash[:]...)

	var next SortitionHash
	copy(next[:], chainhash.HashB(buf))
	return next
}

// MixVRFSeed folds a VRF seed into the accumulator and returns the advanced
// value.  The receiver is not modified.
func (sh SortitionHash) MixVRFSeed(seed *VRFSeed) SortitionHash {
	buf := make([]byte, 0, SortitionHashSize+VRFSeedSize)
	buf = append(buf, sh[:]...)
	buf = append(buf, seed[:]...)

	var next SortitionHash
	copy(next[:], chainhash.HashB(buf))
	return next
}

// ToUint256 projects the accumulator into the 256-bit sampling domain,
// reading the 32 bytes big-endian.
func (sh SortitionHash) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes(sh[:])
}

func (sh SortitionHash) String() string {
	return hex.EncodeToString(sh[:])
}

// VRFSeedSize is the byte width of a VRF seed.
const VRFSeedSize = 32

// VRFSeed is a verifiable random function output committed to by a block
// commit candidate.  Seeds are chained across rounds: the next round's draw
// depends on the seed of whichever candidate actually won this round.
type VRFSeed [VRFSeedSize]byte

// InitialVRFSeed returns the sentinel seed used on a fork before any
// sortition has occurred.
func InitialVRFSeed() VRFSeed {
	return VRFSeed{}
}

// IsInitial reports whether the seed is the sentinel initial value.
func (s *VRFSeed) IsInitial() bool {
	return *s == VRFSeed{}
}

// VRFSeedFromHash converts a committed 32-byte seed value carried on the
// wire into a VRFSeed.
func VRFSeedFromHash(h chainhash.Hash) VRFSeed {
	return VRFSeed(h)
}

func (s VRFSeed) String() string {
	return hex.EncodeToString(s[:])
}
