/**
 * Copyright (c) 2018-present, MultiVAC Foundation.
 *
 * This source code is licensed under the MIT license found in the
 * LICENSE file in the root directory of this source tree.
 */

// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2017 The Decred developers

package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/multivactech/sortition/interface/iburnchain"
	"github.com/multivactech/sortition/logger"
	"github.com/multivactech/sortition/metrics"
	"github.com/multivactech/sortition/model/chaincfg"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server ties the burn chain service to the operational surface of the node:
// the metrics endpoint and lifecycle management.
type Server struct {
	started     int32
	shutdown    int32
	startupTime int64

	chainParams   *chaincfg.Params
	burnChain     iburnchain.BurnChain
	metricsServer *http.Server

	wg   sync.WaitGroup
	quit chan struct{}
}

// BurnChain returns the burn chain service this server runs.
func (s *Server) BurnChain() iburnchain.BurnChain {
	return s.burnChain
}

// Start brings the server's subsystems online.
func (s *Server) Start() {
	// Already started?
	if atomic.AddInt32(&s.started, 1) != 1 {
		return
	}

	// Server startup time.  Used for uptime calculation.
	s.startupTime = time.Now().Unix()

	if s.metricsServer != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			logger.ServerLogger().Infof("Metrics endpoint listening on %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.ServerLogger().Errorf("Metrics endpoint failed: %v", err)
			}
		}()
	}

	logger.ServerLogger().Infof("Starting server for %s", s.chainParams.Name)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	// Make sure this only happens once.
	if atomic.AddInt32(&s.shutdown, 1) != 1 {
		logger.ServerLogger().Infof("Server is already in the process of shutting down")
		return nil
	}

	logger.ServerLogger().Warnf("Server shutting down")

	if s.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.ServerLogger().Errorf("Metrics endpoint shutdown failed: %v", err)
		}
	}

	// Signal the remaining goroutines to quit.
	close(s.quit)
	return nil
}

// WaitForShutdown blocks until the server's goroutines have stopped.
func (s *Server) WaitForShutdown() {
	s.wg.Wait()
}

func provideServer(chainParams *chaincfg.Params, metricsAddr string,
	burnChain iburnchain.BurnChain, _ *metrics.Metrics) *Server {

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		chainParams:   chainParams,
		burnChain:     burnChain,
		metricsServer: &http.Server{Addr: metricsAddr, Handler: mux},
		quit:          make(chan struct{}),
	}
}
