/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

package chain

import (
	"github.com/btcsuite/btclog"
	"github.com/multivactech/sortition/logger"
)

// log is a logger that is initialized with no output filters.  This
// means the package will not perform any logging by default until the caller
// requests it.
var log btclog.Logger
var sortLog btclog.Logger
var burnDBLog btclog.Logger
var logBackend *btclog.Backend

func init() {
	logBackend = logger.BackendLogger()
	log = logBackend.Logger(logger.ChainLoggerTag)
	log.SetLevel(logger.ChainLogLevel)
	sortLog = logBackend.Logger(logger.SortitionLoggerTag)
	sortLog.SetLevel(logger.SortLogLevel)
	burnDBLog = logBackend.Logger(logger.BurnDBLoggerTag)
	burnDBLog.SetLevel(logger.BurnDBLogLevel)
}
