// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package sortition

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
)

func TestMixBurnHeaderAdvancesChain(t *testing.T) {
	blockHash := chainhash.HashH([]byte("burn block"))

	h0 := InitialSortitionHash()
	h1 := h0.MixBurnHeader(&blockHash)

	assert.NotEqual(t, h0, h1, "mixing a block must advance the accumulator")
	assert.Equal(t, InitialSortitionHash(), h0, "the receiver must not be modified")
	assert.Equal(t, h1, h0.MixBurnHeader(&blockHash), "mixing must be deterministic")

	otherHash := chainhash.HashH([]byte("other burn block"))
	assert.NotEqual(t, h1, h0.MixBurnHeader(&otherHash))
}

func TestMixVRFSeedAdvancesChain(t *testing.T) {
	blockHash := chainhash.HashH([]byte("burn block"))
	seed := VRFSeedFromHash(chainhash.HashH([]byte("seed")))

	h1 := InitialSortitionHash().MixBurnHeader(&blockHash)
	h2 := h1.MixVRFSeed(&seed)

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h2, h1.MixVRFSeed(&seed), "mixing must be deterministic")

	otherSeed := VRFSeedFromHash(chainhash.HashH([]byte("other seed")))
	assert.NotEqual(t, h2, h1.MixVRFSeed(&otherSeed))
}

func TestToUint256IsBigEndian(t *testing.T) {
	var sh SortitionHash
	sh[SortitionHashSize-1] = 0x01

	assert.Equal(t, uint64(1), sh.ToUint256().Uint64(),
		"the low byte of the projection must be the last byte of the hash")

	var top SortitionHash
	top[0] = 0x80
	assert.Equal(t, 256, top.ToUint256().BitLen(),
		"the first byte of the hash must land in the high bits")
}

func TestVRFSeedInitial(t *testing.T) {
	seed := InitialVRFSeed()
	assert.True(t, seed.IsInitial())

	seed = VRFSeedFromHash(chainhash.HashH([]byte("seed")))
	assert.False(t, seed.IsInitial())
}

func TestOpsHashFromTxids(t *testing.T) {
	empty := OpsHashFromTxids(nil)
	assert.Equal(t, empty, OpsHashFromTxids([]chainhash.Hash{}),
		"nil and empty txid lists must digest identically")

	txids := []chainhash.Hash{
		chainhash.HashH([]byte("tx1")),
		chainhash.HashH([]byte("tx2")),
	}
	assert.NotEqual(t, empty, OpsHashFromTxids(txids))
	assert.Equal(t, OpsHashFromTxids(txids), OpsHashFromTxids(txids))

	reversed := []chainhash.Hash{txids[1], txids[0]}
	assert.NotEqual(t, OpsHashFromTxids(txids), OpsHashFromTxids(reversed),
		"the ops hash must depend on txid order")
}

func TestDeriveConsensusHash(t *testing.T) {
	parentHash := chainhash.HashH([]byte("parent"))
	blockHash := chainhash.HashH([]byte("block"))
	opsHash := OpsHashFromTxids(nil)

	ch := DeriveConsensusHash(opsHash, 120, 120, &parentHash, &blockHash, 0)
	assert.Equal(t, ch, DeriveConsensusHash(opsHash, 120, 120, &parentHash, &blockHash, 0))

	assert.NotEqual(t, ch, DeriveConsensusHash(opsHash, 120, 120, &parentHash, &blockHash, 1),
		"the consensus hash must depend on the burn total")
	assert.NotEqual(t, ch, DeriveConsensusHash(opsHash, 121, 120, &parentHash, &blockHash, 0),
		"the consensus hash must depend on the parent height")
}
