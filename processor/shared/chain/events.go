/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import "github.com/multivactech/sortition/processor/shared/message"

const (
	evtProcessBlock message.EventTopic = iota
	evtSnapshotByHash
	evtChainTip
	evtAncestorSnapshot
	evtLastSortitionSnapshot
	evtBlockCommit
	evtSetIndexRoot
	evtFreshConsensusHash
	evtStableSnapshot
)
