// Copyright (c) 2018-present, MultiVAC Foundation.
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

// This file used to set the log level of subsystem logger

package logger

import "github.com/btcsuite/btclog"

const (
	// SortLogLevel -> sortition core
	SortLogLevel = btclog.LevelInfo
	// BurnDBLogLevel -> burn chain database
	BurnDBLogLevel = btclog.LevelInfo
	// ChainLogLevel -> chain service
	ChainLogLevel = btclog.LevelInfo
	// WireLogLevel -> wire
	WireLogLevel = btclog.LevelInfo
	// ServerLogLevel -> server
	ServerLogLevel = btclog.LevelInfo
)
