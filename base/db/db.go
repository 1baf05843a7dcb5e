// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package db

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

type dbImpl struct {
	db *leveldb.DB // LevelDB instance
	fn string      // filename
}

// Get retrieves the given key if it's present in the key-value store.
func (db *dbImpl) Get(key []byte) ([]byte, error) {
	return db.db.Get(key, nil)
}

// Put inserts the given value into the key-value store.
func (db *dbImpl) Put(key []byte, value []byte) error {
	return db.db.Put(key, value, nil)
}

// Has retrieves if a key is present in the key-value store.
func (db *dbImpl) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

// Delete removes the key from the key-value store.
func (db *dbImpl) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

// Write applies the given batch to the store in one atomic transaction.
// A block's transactions and its snapshot must land together, or not at all.
func (db *dbImpl) Write(b Batch) error {
	bt, ok := b.(*batch)
	if !ok {
		return errors.New("can't write batch: unknown type")
	}
	tx, err := db.db.OpenTransaction()
	if err != nil {
		return err
	}
	if err := tx.Write(bt.b, nil); err != nil {
		tx.Discard()
		return err
	}
	return tx.Commit()
}

// GetIter return the iterator of the db
func (db *dbImpl) GetIter() iterator.Iterator {
	return db.db.NewIterator(nil, nil)
}

// Close will close the database connection.
func (db *dbImpl) Close() error {
	return db.db.Close()
}
