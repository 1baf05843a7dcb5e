// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package sortition

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// OpsHashSize is the byte width of an operations hash.
const OpsHashSize = 32

// OpsHash is the digest of a burn block's ordered transaction ids.
type OpsHash [OpsHashSize]byte

// OpsHashFromTxids digests the block's txids in block order.  An empty txid
// list digests the empty string; there is no separate sentinel.
func OpsHashFromTxids(txids []chainhash.Hash) OpsHash {
	buf := make([]byte, 0, len(txids)*chainhash.HashSize)
	for i := range txids {
		buf = append(buf, txids[i][:]...)
	}

	var oh OpsHash
	copy(oh[:], chainhash.HashB(buf))
	return oh
}

func (oh OpsHash) String() string {
	return hex.EncodeToString(oh[:])
}

// ConsensusHashSize is the byte width of a consensus hash.
const ConsensusHashSize = 20

// ConsensusHash is the running fingerprint of a fork's whole history.  Two
// nodes that agree on a consensus hash agree on every snapshot behind it.
type ConsensusHash [ConsensusHashSize]byte

func (ch ConsensusHash) String() string {
	return hex.EncodeToString(ch[:])
}

// ConsensusHasher derives the consensus hash for a new block from its
// operations hash and the fork state it extends.  The derivation must be a
// pure function of its arguments; the snapshot builder treats it as an
// injected collaborator so the wider system can supply its own formula.
type ConsensusHasher func(opsHash OpsHash, parentHeight uint64, firstHeight uint64,
	parentBlockHash *chainhash.Hash, blockHash *chainhash.Hash, totalBurn uint64) ConsensusHash

// DeriveConsensusHash is the default ConsensusHasher: RIPEMD160(SHA-256)
// over the canonical encoding of the derivation tuple.
func DeriveConsensusHash(opsHash OpsHash, parentHeight uint64, firstHeight uint64,
	parentBlockHash *chainhash.Hash, blockHash *chainhash.Hash, totalBurn uint64) ConsensusHash {

	buf := make([]byte, 0, OpsHashSize+2*8+2*chainhash.HashSize+8)
	buf = append(buf, opsHash[:]...)
	buf = binary.BigEndian.AppendUint64(buf, parentHeight)
	buf = binary.BigEndian.AppendUint64(buf, firstHeight)
	buf = append(buf, parentBlockHash[:]...)
	buf = append(buf, blockHash[:]...)
	buf = binary.BigEndian.AppendUint64(buf, totalBurn)

	var ch ConsensusHash
	copy(ch[:], btcutil.Hash160(buf))
	return ch
}
