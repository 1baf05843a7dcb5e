/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	lru "github.com/hashicorp/golang-lru"
	"github.com/multivactech/sortition/base/db"
	"github.com/multivactech/sortition/configs/params"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/model/wire"
)

const (
	snapshotKeyTemplate = "snapshot_%s"
	commitKeyTemplate   = "commit_%s_%s"
	chainTipKey         = "chaintip"
	dbNameSpace         = "burnData"
)

// BurnDB is the disk store for burn chain state: one snapshot per processed
// burn block, the block commits recorded in each block, and the hash of the
// highest processed block.  It implements ChainReader for the snapshot
// builder.
//
// Forks share the store.  A snapshot is addressed by its block hash and links
// to its parent by hash, so any fork can be walked tip-to-genesis without the
// store knowing which tip is canonical.
type BurnDB struct {
	chainDB db.DB
	cache   *lru.Cache
	params  *chaincfg.Params

	// tipHash and tipHeight track the highest snapshot written so far.
	tipHash   chainhash.Hash
	tipHeight uint64
}

// NewBurnDB opens (creating if needed) the burn chain store under dataDir and
// makes sure the initial snapshot of the configured network is present.
func NewBurnDB(dataDir string, netParams *chaincfg.Params) (*BurnDB, error) {
	chainDB, err := db.OpenDB(dataDir, dbNameSpace)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New(params.SnapshotCacheSize)
	if err != nil {
		return nil, err
	}

	bdb := &BurnDB{
		chainDB: chainDB,
		cache:   cache,
		params:  netParams,
	}
	if err := bdb.init(); err != nil {
		return nil, err
	}
	return bdb, nil
}

func (bdb *BurnDB) init() error {
	// Seed the store with the initial snapshot on first start.
	first, err := bdb.GetSnapshot(&bdb.params.FirstBlockHash)
	if err != nil {
		return err
	}
	if first == nil {
		initial := sortition.InitialSnapshot(bdb.params)
		burnDBLog.Infof("bootstrapping burn chain store for %s at height %d", bdb.params.Name, initial.Height)
		if err := bdb.writeSnapshot(db.NewBatch(), initial, nil); err != nil {
			return err
		}
	}

	rawTip, err := bdb.chainDB.Get([]byte(chainTipKey))
	if err != nil {
		return fmt.Errorf("burn chain store has no chain tip: %v", err)
	}
	copy(bdb.tipHash[:], rawTip)

	tip, err := bdb.GetSnapshot(&bdb.tipHash)
	if err != nil {
		return err
	}
	if tip == nil {
		return fmt.Errorf("burn chain store tip %v has no snapshot", bdb.tipHash)
	}
	bdb.tipHeight = tip.Height
	burnDBLog.Debugf("burn chain tip is %v at height %d", bdb.tipHash, bdb.tipHeight)
	return nil
}

// Close releases the underlying database.
func (bdb *BurnDB) Close() error {
	return bdb.chainDB.Close()
}

// StoreSnapshot persists a processed block's snapshot together with the block
// commits it recorded.  The writes land in one batch: a snapshot must never
// become readable without its commits, or seed sourcing on descendant blocks
// would hit the corruption path.
func (bdb *BurnDB) StoreSnapshot(sn *sortition.BlockSnapshot, commits []*wire.MsgBlockCommit) error {
	batch := db.NewBatch()
	for _, commit := range commits {
		raw := commit.ToBytesArray()
		if raw == nil {
			return fmt.Errorf("cannot encode block commit %v", commit.Txid)
		}
		if err := batch.Put(getCommitKey(&commit.Txid, &sn.BlockHash), raw); err != nil {
			return err
		}
	}
	return bdb.writeSnapshot(batch, sn, commits)
}

func (bdb *BurnDB) writeSnapshot(batch db.Batch, sn *sortition.BlockSnapshot, commits []*wire.MsgBlockCommit) error {
	raw := sn.ToBytesArray()
	if raw == nil {
		return fmt.Errorf("cannot encode snapshot %v", sn.BlockHash)
	}
	if err := batch.Put(getSnapshotKey(&sn.BlockHash), raw); err != nil {
		return err
	}
	advanceTip := sn.Height >= bdb.tipHeight
	if advanceTip {
		if err := batch.Put([]byte(chainTipKey), sn.BlockHash[:]); err != nil {
			return err
		}
	}

	if err := bdb.chainDB.Write(batch); err != nil {
		return err
	}

	bdb.cache.Add(sn.BlockHash, sn)
	if advanceTip {
		bdb.tipHash = sn.BlockHash
		bdb.tipHeight = sn.Height
	}
	burnDBLog.Debugf("stored snapshot %v (height %d, sortition %v, %d commits)",
		sn.BlockHash, sn.Height, sn.Sortition, len(commits))
	return nil
}

// GetSnapshot returns the snapshot of the given burn block, or nil if the
// block has not been processed.
func (bdb *BurnDB) GetSnapshot(blockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	if cached, ok := bdb.cache.Get(*blockHash); ok {
		return cached.(*sortition.BlockSnapshot), nil
	}

	key := getSnapshotKey(blockHash)
	has, err := bdb.chainDB.Has(key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	raw, err := bdb.chainDB.Get(key)
	if err != nil {
		return nil, err
	}

	sn := new(sortition.BlockSnapshot)
	if err := sn.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot %v: %v", blockHash, err)
	}
	bdb.cache.Add(*blockHash, sn)
	return sn, nil
}

// ChainTip returns the snapshot of the highest processed burn block.
func (bdb *BurnDB) ChainTip() (*sortition.BlockSnapshot, error) {
	tip, err := bdb.GetSnapshot(&bdb.tipHash)
	if err != nil {
		return nil, err
	}
	if tip == nil {
		return nil, fmt.Errorf("burn chain store tip %v has no snapshot", bdb.tipHash)
	}
	return tip, nil
}

// GetAncestorSnapshot returns the snapshot at the given height on the fork
// identified by tipBlockHash, walking parent links down from the tip.
func (bdb *BurnDB) GetAncestorSnapshot(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	sn, err := bdb.GetSnapshot(tipBlockHash)
	if err != nil {
		return nil, err
	}
	if sn == nil {
		return nil, fmt.Errorf("no snapshot for fork tip %v", tipBlockHash)
	}
	if height > sn.Height {
		return nil, fmt.Errorf("height %d is above fork tip %v at height %d", height, tipBlockHash, sn.Height)
	}

	for sn.Height > height {
		parent, err := bdb.GetSnapshot(&sn.ParentBlockHash)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("fork %v has no snapshot for ancestor %v at height %d",
				tipBlockHash, sn.ParentBlockHash, sn.Height-1)
		}
		sn = parent
	}
	return sn, nil
}

// GetLastSnapshotWithSortition returns the nearest sortition-bearing snapshot
// at or below the given height on the fork identified by tipBlockHash.  The
// initial snapshot bears a sortition, so the walk always finds one.
func (bdb *BurnDB) GetLastSnapshotWithSortition(height uint64, tipBlockHash *chainhash.Hash) (*sortition.BlockSnapshot, error) {
	sn, err := bdb.GetAncestorSnapshot(height, tipBlockHash)
	if err != nil {
		return nil, err
	}
	for !sn.Sortition {
		parent, err := bdb.GetSnapshot(&sn.ParentBlockHash)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("fork %v has no snapshot for ancestor %v at height %d",
				tipBlockHash, sn.ParentBlockHash, sn.Height-1)
		}
		sn = parent
	}
	return sn, nil
}

// IsFreshConsensusHash reports whether the given consensus hash was produced
// within the last params.ConsensusHashLifetime blocks of the fork identified
// by tipBlockHash.  Operations bound to a stale consensus hash are rejected
// by the ingestion pipeline.
func (bdb *BurnDB) IsFreshConsensusHash(ch sortition.ConsensusHash, tipBlockHash *chainhash.Hash) (bool, error) {
	sn, err := bdb.GetSnapshot(tipBlockHash)
	if err != nil {
		return false, err
	}
	if sn == nil {
		return false, fmt.Errorf("no snapshot for fork tip %v", tipBlockHash)
	}

	for i := 0; i <= params.ConsensusHashLifetime; i++ {
		if sn.ConsensusHash == ch {
			return true, nil
		}
		if sn.IsInitial() {
			break
		}
		parent, err := bdb.GetSnapshot(&sn.ParentBlockHash)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, fmt.Errorf("fork %v has no snapshot for ancestor %v at height %d",
				tipBlockHash, sn.ParentBlockHash, sn.Height-1)
		}
		sn = parent
	}
	return false, nil
}

// GetStableSnapshot returns the snapshot params.StableConfirmations blocks
// below the chain tip, or the initial snapshot while the chain is shorter
// than that.
func (bdb *BurnDB) GetStableSnapshot() (*sortition.BlockSnapshot, error) {
	tip, err := bdb.ChainTip()
	if err != nil {
		return nil, err
	}

	stableHeight := bdb.params.FirstBlockHeight
	if tip.Height >= bdb.params.FirstBlockHeight+params.StableConfirmations {
		stableHeight = tip.Height - params.StableConfirmations
	}
	return bdb.GetAncestorSnapshot(stableHeight, &tip.BlockHash)
}

// GetBlockCommit returns the block commit with the given txid recorded in the
// given burn block, or nil if no such commit is stored.
func (bdb *BurnDB) GetBlockCommit(txid *chainhash.Hash, blockHash *chainhash.Hash) (*wire.MsgBlockCommit, error) {
	key := getCommitKey(txid, blockHash)
	has, err := bdb.chainDB.Has(key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	raw, err := bdb.chainDB.Get(key)
	if err != nil {
		return nil, err
	}

	commit := new(wire.MsgBlockCommit)
	if err := commit.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("cannot decode block commit %v: %v", txid, err)
	}
	return commit, nil
}

// SetIndexRoot computes the commitment root over the block's recorded
// operations and patches it into the stored snapshot.  It returns the root.
// This is the one mutation a snapshot sees after creation.
func (bdb *BurnDB) SetIndexRoot(blockHash *chainhash.Hash, txids []chainhash.Hash) (chainhash.Hash, error) {
	sn, err := bdb.GetSnapshot(blockHash)
	if err != nil {
		return chainhash.Hash{}, err
	}
	if sn == nil {
		return chainhash.Hash{}, fmt.Errorf("no snapshot for burn block %v", blockHash)
	}

	root, err := computeIndexRoot(blockHash, txids)
	if err != nil {
		return chainhash.Hash{}, err
	}

	patched := *sn
	patched.IndexRoot = root
	raw := patched.ToBytesArray()
	if raw == nil {
		return chainhash.Hash{}, fmt.Errorf("cannot encode snapshot %v", blockHash)
	}
	if err := bdb.chainDB.Put(getSnapshotKey(blockHash), raw); err != nil {
		return chainhash.Hash{}, err
	}
	bdb.cache.Add(*blockHash, &patched)
	burnDBLog.Debugf("patched index root of snapshot %v to %v", blockHash, root)
	return root, nil
}

func getSnapshotKey(blockHash *chainhash.Hash) []byte {
	return []byte(fmt.Sprintf(snapshotKeyTemplate, blockHash))
}

func getCommitKey(txid *chainhash.Hash, blockHash *chainhash.Hash) []byte {
	return []byte(fmt.Sprintf(commitKeyTemplate, txid, blockHash))
}
