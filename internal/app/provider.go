package app

import (
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dshills/tickbind/internal/config"
	"github.com/dshills/tickbind/internal/config/watcher"
	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
	"github.com/dshills/tickbind/internal/input/codec"
	"github.com/dshills/tickbind/internal/input/key"
	"github.com/dshills/tickbind/internal/metrics"
)

var ProviderSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideRegistry,
	metrics.New,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	ProvideCodecs,
	ProvideManager,
	ProvideWatcher,
	ProvideServer,
	New,
)

func ProvideLogLevel(cfg *config.Config) zap.AtomicLevel {
	return NewLevel(cfg.Log)
}

func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, func()) {
	logger := NewLogger(cfg.Log, level)
	return logger, func() { _ = logger.Sync() }
}

func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideCodecs returns the built-in codec tables, or the configured table
// files after checking every name they list has a variant.
func ProvideCodecs(cfg *config.Config) (codec.Set, error) {
	if cfg.Codecs.Kinds == "" {
		return binding.DefaultCodecs(), nil
	}

	set, err := codec.LoadSet(cfg.Codecs.Kinds, cfg.Codecs.Keys)
	if err != nil {
		return codec.Set{}, NewComponentError("codecs", "load", err)
	}
	if err := event.VerifyKinds(cfg.Codecs.Kinds, set.Kinds); err != nil {
		return codec.Set{}, NewComponentError("codecs", "verify", err)
	}
	if err := key.VerifyTable(cfg.Codecs.Keys, set.Keys); err != nil {
		return codec.Set{}, NewComponentError("codecs", "verify", err)
	}
	return set, nil
}

func ProvideManager(logger *zap.Logger, codecs codec.Set, collector *metrics.Collector) (*binding.Manager, func()) {
	m := binding.NewManager(
		binding.WithLogger(logger),
		binding.WithCodecs(codecs),
		binding.WithObserver(collector),
	)
	return m, m.Close
}

// ProvideWatcher returns nil when reloading is disabled.
func ProvideWatcher(cfg *config.Config, logger *zap.Logger) (*watcher.Watcher, func(), error) {
	if !cfg.Bindings.Watch {
		return nil, func() {}, nil
	}
	w, err := watcher.New(
		watcher.WithLogger(logger),
		watcher.WithDebounce(time.Duration(cfg.Bindings.DebounceMS)*time.Millisecond),
	)
	if err != nil {
		return nil, nil, NewComponentError("watcher", "create", err)
	}
	return w, w.Stop, nil
}

// ProvideServer returns nil when no metrics address is configured. The
// server also exposes the log level for runtime changes.
func ProvideServer(cfg *config.Config, g prometheus.Gatherer, level zap.AtomicLevel, logger *zap.Logger) *metrics.Server {
	if cfg.Metrics.Addr == "" {
		return nil
	}
	return metrics.NewServer(cfg.Metrics.Addr, g, logger, metrics.WithLogLevel(level))
}
