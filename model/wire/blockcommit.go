// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package wire

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/rlp"
)

// MsgBlockCommit is a leader block commit: a burn chain transaction through
// which a candidate burns funds for the right to produce the next chain
// block.  The committed NewSeed is only folded into the sortition hash chain
// if this candidate wins, so future draws cannot be computed before the
// current round resolves.
//
// Note that NewSeed is not guaranteed to be the hash of a valid VRF proof.
// Nodes only build off of commits for which they have the block data and the
// proof inside it verifies.
type MsgBlockCommit struct {
	// Txid of the burn chain transaction carrying this commit.
	Txid chainhash.Hash

	// BlockHeaderHash is the identifier of the chain block this commit
	// would append if it wins the sortition.
	BlockHeaderHash chainhash.Hash

	// NewSeed is the VRF seed committed to for the next round.
	NewSeed chainhash.Hash

	// VRFPublicKey is the registered key the seed's proof must verify
	// under.  Verification happens outside this module.
	VRFPublicKey []byte

	// BurnFee is the amount of burn chain tokens destroyed by this commit.
	BurnFee uint64

	// BlockHeight is the burn chain height the commit was mined at.
	BlockHeight uint64
}

func (c *MsgBlockCommit) String() string {
	return fmt.Sprintf("{Txid:%v, BlockHeaderHash:%v, BurnFee:%d, BlockHeight:%d}",
		c.Txid,
		c.BlockHeaderHash,
		c.BurnFee,
		c.BlockHeight)
}

// Deserialize decodes a block commit from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (c *MsgBlockCommit) Deserialize(r io.Reader) error {
	return rlp.Decode(r, c)
}

// Serialize encodes a block commit to w using a format that is suitable for
// long-term storage such as a database.
func (c *MsgBlockCommit) Serialize(w io.Writer) error {
	return rlp.Encode(w, c)
}

// ToBytesArray serialize the block commit to byte array.
func (c *MsgBlockCommit) ToBytesArray() []byte {
	ret, err := rlp.EncodeToBytes(c)
	if err != nil {
		return nil
	}
	return ret
}
