// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/rlp"
)

// BurnBlockHeader describes one block observed on the underlying burn chain.
// It is the per-round input of the snapshot builder: exactly one snapshot is
// derived per header per fork.
type BurnBlockHeader struct {
	// Height of the block on the burn chain.
	Height uint64

	// BlockHash is the burn chain block identifier.
	BlockHash chainhash.Hash

	// PrevBlockHash is the identifier of this block's parent.
	PrevBlockHash chainhash.Hash

	// Timestamp of the block, in seconds since the epoch.
	Timestamp uint64

	// NumTxs is the number of transactions carried by the block.
	NumTxs uint64
}

func (h *BurnBlockHeader) String() string {
	return fmt.Sprintf("{Height:%d, BlockHash:%v, PrevBlockHash:%v, Timestamp:%d, NumTxs:%d}",
		h.Height,
		h.BlockHash,
		h.PrevBlockHash,
		h.Timestamp,
		h.NumTxs)
}

// Deserialize decodes a burn block header from r into the receiver using a
// format that is suitable for long-term storage such as a database.
func (h *BurnBlockHeader) Deserialize(r io.Reader) error {
	return rlp.Decode(r, h)
}

// Serialize encodes a burn block header to w using a format that is suitable
// for long-term storage such as a database.
func (h *BurnBlockHeader) Serialize(w io.Writer) error {
	return rlp.Encode(w, h)
}

// ToBytesArray serialize the burn block header to byte array.
func (h *BurnBlockHeader) ToBytesArray() []byte {
	ret, err := rlp.EncodeToBytes(h)
	if err != nil {
		return nil
	}
	return ret
}
