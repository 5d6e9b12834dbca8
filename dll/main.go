// Command dll is the proxy library. Build it with
//
//	go build -buildmode=c-shared -o dxgi.dll ./dll
//
// and deploy it under the name of the library it stands in for. Every
// export resolves the genuine library in the system directory and forwards
// the call unchanged.
package main

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sliverarmory/tether"
	"github.com/sliverarmory/tether/config"
	"github.com/sliverarmory/tether/forward"
	"github.com/sliverarmory/tether/notify"
)

// proxy is built on the first forwarded call and never changes afterwards.
var proxy = sync.OnceValue(func() *forward.Forwarder {
	return newForwarder(loadConfig())
})

// loadConfig never fails: a broken config file falls back to defaults so
// forwarding keeps working.
func loadConfig() (config.Config, *zap.Logger) {
	cfg, cfgErr := config.FromEnv()
	if cfgErr != nil {
		cfg = config.Default()
	}
	logger, err := cfg.Logger()
	if err != nil {
		logger = zap.NewNop()
	}
	if cfgErr != nil {
		logger.Warn("using default config", zap.Error(cfgErr))
	}
	return cfg, logger
}

func newForwarder(cfg config.Config, logger *zap.Logger) *forward.Forwarder {
	opts := []tether.Option{tether.WithLogger(logger)}
	if cfg.Cache {
		opts = append(opts, tether.WithCache())
	}
	return forward.New(
		tether.New(opts...),
		notify.ForMode(cfg.Notify, logger),
		forward.WithLogger(logger),
	)
}

func main() {}
