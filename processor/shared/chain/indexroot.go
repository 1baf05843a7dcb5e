/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/providenetwork/merkletree"
)

// txidContent adapts a transaction id to a merkle tree leaf.
type txidContent struct {
	h chainhash.Hash
}

// CalculateHash returns the leaf hash of the underlying txid.
func (tc txidContent) CalculateHash() ([]byte, error) {
	sum := sha256.Sum256(tc.h[:])
	return sum[:], nil
}

// Equals returns true if the given content carries the same txid.
func (tc txidContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(txidContent)
	if !ok {
		return false, errors.New("merkle tree content type mismatch")
	}
	return tc.h == o.h, nil
}

// computeIndexRoot builds the commitment root over a burn block's recorded
// operations.  The block hash is the first leaf so two blocks with the same
// operations still commit to distinct roots, and so empty blocks have a
// well-defined non-degenerate tree.
func computeIndexRoot(blockHash *chainhash.Hash, txids []chainhash.Hash) (chainhash.Hash, error) {
	contents := make([]merkletree.Content, 0, len(txids)+1)
	contents = append(contents, txidContent{h: *blockHash})
	for i := range txids {
		contents = append(contents, txidContent{h: txids[i]})
	}

	tree, err := merkletree.NewTreeWithHashStrategy(contents, func() hash.Hash {
		return sha256.New()
	})
	if err != nil {
		return chainhash.Hash{}, err
	}

	root := tree.MerkleRoot()
	if len(root) != chainhash.HashSize {
		// The sha256 strategy always yields 32-byte roots.
		return chainhash.Hash{}, errors.New("unexpected merkle root width")
	}

	var rootHash chainhash.Hash
	copy(rootHash[:], root)
	return rootHash, nil
}

// indexRootMatches reports whether the stored root commits to the given
// operations.
func indexRootMatches(stored *chainhash.Hash, blockHash *chainhash.Hash, txids []chainhash.Hash) (bool, error) {
	root, err := computeIndexRoot(blockHash, txids)
	if err != nil {
		return false, err
	}
	return bytes.Equal(stored[:], root[:]), nil
}
