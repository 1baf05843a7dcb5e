//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package server

import (
	di "github.com/google/wire"
	"github.com/multivactech/sortition/metrics"
	"github.com/multivactech/sortition/model/chaincfg"
)

// NewServer creates a Server instance wired to an on-disk burn chain under
// dataDir and a metrics endpoint on metricsAddr.
func NewServer(dataDir string, chainParams *chaincfg.Params, metricsAddr string) *Server {
	panic(di.Build(di.NewSet(
		provideServer,
		provideBurnChain,
		metrics.ProvideMonitorMetrics)))
}
