/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/multivactech/sortition/model/sortition"
	"github.com/multivactech/sortition/processor/shared/message"
)

// NewService returns a new instance of Service backed by the on-disk burn
// chain under dataDir.  A nil hasher selects the default consensus hash
// derivation.
func NewService(dataDir string, netParams *chaincfg.Params, hasher sortition.ConsensusHasher) *Service {
	s := &Service{actorCtx: message.NewActorContext()}
	s.actor = newBurnChain(dataDir, netParams, hasher)
	s.actorCtx.StartActor(s.actor)
	return s
}
