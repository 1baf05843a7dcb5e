// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.
package params

const (
	// LeveldbCacheMb defines the write buffer size of leveldb.
	LeveldbCacheMb = 64

	// LeveldbBlockCacheMb defines the capacity of the leveldb's 'sorted table' block caching.
	LeveldbBlockCacheMb = 128

	// LeveldbFileNumber defines the capacity of the leveldb's open files caching.
	LeveldbFileNumber = 64

	// SnapshotCacheSize define the size of the lru map holding recently
	// touched block snapshots during ancestor walks.
	SnapshotCacheSize = 4096

	// ConsensusHashLifetime is the number of burn blocks for which a
	// consensus hash remains fresh enough to bind new operations to.
	ConsensusHashLifetime = 24

	// StableConfirmations is the number of confirmations after which a burn
	// block is treated as final by the ingestion pipeline.
	StableConfirmations = 7
)
