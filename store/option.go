package store

import (
	"time"

	"github.com/tryfix/ktopology/backend"
	"github.com/tryfix/ktopology/backend/memory"
	"github.com/tryfix/log"
	"github.com/tryfix/metrics"
)

type storeOptions struct {
	backend         backend.Backend
	backendBuilder  backend.Builder
	expiry          time.Duration
	logger          log.Logger
	metricsReporter metrics.Reporter
}

type Options func(config *storeOptions)

func (c *storeOptions) apply(options ...Options) {
	c.logger = log.NewNoopLogger()
	c.metricsReporter = metrics.NoopReporter()

	for _, opt := range options {
		opt(c)
	}

	if c.backend == nil && c.backendBuilder == nil {
		conf := memory.NewConfig()
		conf.Logger = c.logger
		conf.MetricsReporter = c.metricsReporter
		c.backendBuilder = memory.Builder(conf)
	}
}

func WithBackend(backend backend.Backend) Options {
	return func(config *storeOptions) {
		config.backend = backend
	}
}

func WithBackendBuilder(builder backend.Builder) Options {
	return func(config *storeOptions) {
		config.backendBuilder = builder
	}
}

func WithExpiry(expiry time.Duration) Options {
	return func(config *storeOptions) {
		config.expiry = expiry
	}
}

func WithLogger(logger log.Logger) Options {
	return func(config *storeOptions) {
		config.logger = logger
	}
}

func WithMetricsReporter(reporter metrics.Reporter) Options {
	return func(config *storeOptions) {
		config.metricsReporter = reporter
	}
}
