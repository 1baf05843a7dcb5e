/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/multivactech/sortition/configs/config"
	"github.com/multivactech/sortition/logger"
	"github.com/multivactech/sortition/server"
	"github.com/multivactech/sortition/server/shutdown"
)

// sortdMain is the real main function for sortd.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
// The optional serverChan parameter is mainly used by the service code to be
// notified with the server once it is setup so it can gracefully stop it when
// requested.
func sortdMain(serverChan chan<- *server.Server) error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	defer logger.LogCleanup()
	if err != nil {
		return err
	}
	logger.InitLevel()

	// Get a channel that will be closed when a shutdown signal has been
	// triggered either from an OS signal such as SIGINT (Ctrl+C) or from
	// another subsystem.
	interrupt := shutdown.InterruptListener()
	defer logger.ServerLogger().Info("Shutdown complete")

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		logger.ServerLogger().Errorf("%v", err)
		return err
	}
	logger.InitLogRotator(cfg.LogFile())
	if cfg.DebugLevel != "" {
		logger.SetLogLevels(cfg.DebugLevel)
	}

	// Return now if an interrupt signal was triggered.
	if shutdown.InterruptRequested(interrupt) {
		return nil
	}

	// Create server and start it.
	srv := server.NewServer(cfg.DataDir, config.ActiveNetParams().Params, cfg.MetricsAddr)
	defer func() {
		logger.ServerLogger().Infof("Gracefully shutting down the server...")
		if err := srv.Stop(); err != nil {
			logger.ServerLogger().Errorf("%v", err)
		}
		srv.WaitForShutdown()
		logger.ServerLogger().Infof("Server shutdown complete")
	}()

	srv.Start()
	if serverChan != nil {
		serverChan <- srv
	}

	// Wait until the interrupt signal is received from an OS signal or
	// shutdown is requested through one of the subsystems.
	<-interrupt
	return nil
}

func main() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Block processing can cause bursty allocations.  This limits the
	// garbage collector from excessively overallocating during bursts.
	debug.SetGCPercent(10)

	// Work around defer not working after os.Exit()
	if err := sortdMain(nil); err != nil {
		os.Exit(1)
	}
}
