// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package sortition

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialSnapshot(t *testing.T) {
	sn := InitialSnapshot(&chaincfg.SimNetParams)

	assert.Equal(t, chaincfg.SimNetParams.FirstBlockHeight, sn.Height)
	assert.Equal(t, chaincfg.SimNetParams.FirstBlockHash, sn.BlockHash)
	assert.Equal(t, uint64(0), sn.TotalBurn)
	assert.Equal(t, uint64(0), sn.NumSortitions)
	assert.True(t, sn.Sortition, "the initial snapshot reports a sortition so ancestor walks terminate")
	assert.False(t, sn.SortitionDisabled)
	assert.True(t, sn.IsInitial())
}

func TestIsInitialFollowsSortitionHash(t *testing.T) {
	sn := InitialSnapshot(&chaincfg.SimNetParams)
	blockHash := chainhash.HashH([]byte("burn block"))
	sn.SortitionHash = sn.SortitionHash.MixBurnHeader(&blockHash)

	assert.False(t, sn.IsInitial(), "any mixed-in block must clear the initial state")
}

func TestSnapshotSerializeRoundTrip(t *testing.T) {
	sn := &BlockSnapshot{
		Height:           121,
		BlockHash:        chainhash.HashH([]byte("block")),
		ParentBlockHash:  chainhash.HashH([]byte("parent")),
		Timestamp:        1547800600,
		TotalBurn:        12345,
		Sortition:        true,
		WinningBlockTxid: chainhash.HashH([]byte("txid")),
		WinningBlockHash: chainhash.HashH([]byte("winner")),
		NumSortitions:    1,
	}
	blockHash := chainhash.HashH([]byte("block"))
	sn.SortitionHash = InitialSortitionHash().MixBurnHeader(&blockHash)

	var buf bytes.Buffer
	require.NoError(t, sn.Serialize(&buf))

	decoded := new(BlockSnapshot)
	require.NoError(t, decoded.Deserialize(&buf))
	assert.Equal(t, sn, decoded)

	// The byte encoding itself must be deterministic: nodes compare stored
	// snapshots byte for byte.
	assert.Equal(t, sn.ToBytesArray(), decoded.ToBytesArray())
}
