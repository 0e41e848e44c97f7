/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package memory

import (
	"sync"
	"time"

	"github.com/tryfix/ktopology/backend"
	"github.com/tryfix/log"
	"github.com/tryfix/metrics"
)

type record struct {
	key       []byte
	value     []byte
	createdAt time.Time
	expiry    time.Duration
}

func (r record) expired() bool {
	return r.expiry > 0 && time.Since(r.createdAt) > r.expiry
}

type config struct {
	ExpiredRecordCleanupInterval time.Duration
	MetricsReporter              metrics.Reporter
	Logger                       log.Logger
}

func NewConfig() *config {
	conf := new(config)
	conf.parse()

	return conf
}

func (c *config) parse() {
	if c.Logger == nil {
		c.Logger = log.NewNoopLogger()
	}

	if c.MetricsReporter == nil {
		c.MetricsReporter = metrics.NoopReporter()
	}

	if c.ExpiredRecordCleanupInterval < 1 {
		c.ExpiredRecordCleanupInterval = 100 * time.Millisecond
	}
}

type memory struct {
	mu      *sync.RWMutex
	records map[string]record
	expiry  time.Duration
	stop    chan struct{}
	logger  log.Logger
	metrics struct {
		readLatency   metrics.Observer
		updateLatency metrics.Observer
		deleteLatency metrics.Observer
		storageSize   metrics.Gauge
	}
}

func Builder(config *config) backend.Builder {
	return func(name string) (backend.Backend, error) {
		return NewMemoryBackend(config), nil
	}
}

func NewMemoryBackend(config *config) backend.Backend {
	config.parse()

	m := &memory{
		mu:      new(sync.RWMutex),
		records: make(map[string]record),
		stop:    make(chan struct{}),
		logger:  config.Logger.NewLog(log.Prefixed(`memory-backend`)),
	}

	labels := []string{`name`, `type`}
	m.metrics.readLatency = config.MetricsReporter.Observer(metrics.MetricConf{Path: `backend_read_latency_microseconds`, Labels: labels})
	m.metrics.updateLatency = config.MetricsReporter.Observer(metrics.MetricConf{Path: `backend_update_latency_microseconds`, Labels: labels})
	m.metrics.storageSize = config.MetricsReporter.Gauge(metrics.MetricConf{Path: `backend_storage_size`, Labels: labels})
	m.metrics.deleteLatency = config.MetricsReporter.Observer(metrics.MetricConf{Path: `backend_delete_latency_microseconds`, Labels: labels})

	go m.runCleaner(config.ExpiredRecordCleanupInterval)

	return m
}

func (m *memory) runCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stop:
			return
		}
	}
}

func (m *memory) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, rec := range m.records {
		if rec.expired() {
			delete(m.records, key)
		}
	}

	m.metrics.storageSize.Count(float64(len(m.records)), map[string]string{`name`: m.Name(), `type`: `memory`})
}

func (m *memory) Name() string {
	return `memory`
}

func (m *memory) String() string {
	return `memory`
}

func (m *memory) Persistent() bool {
	return false
}

func (m *memory) Set(key []byte, value []byte, expiry time.Duration) error {
	defer func(begin time.Time) {
		m.metrics.updateLatency.Observe(float64(time.Since(begin).Nanoseconds()/1e3), map[string]string{`name`: m.Name(), `type`: `memory`})
	}(time.Now())

	if expiry == 0 {
		expiry = m.expiry
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[string(key)] = record{
		key:       key,
		value:     value,
		expiry:    expiry,
		createdAt: time.Now(),
	}

	return nil
}

func (m *memory) Get(key []byte) ([]byte, error) {
	defer func(begin time.Time) {
		m.metrics.readLatency.Observe(float64(time.Since(begin).Nanoseconds()/1e3), map[string]string{`name`: m.Name(), `type`: `memory`})
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[string(key)]
	if !ok || rec.expired() {
		return nil, nil
	}

	return rec.value, nil
}

func (m *memory) Iterator() backend.Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]record, 0, len(m.records))
	for _, rec := range m.records {
		if !rec.expired() {
			records = append(records, rec)
		}
	}

	return &iterator{records: records, valid: len(records) > 0}
}

func (m *memory) Delete(key []byte) error {
	defer func(begin time.Time) {
		m.metrics.deleteLatency.Observe(float64(time.Since(begin).Nanoseconds()/1e3), map[string]string{`name`: m.Name(), `type`: `memory`})
	}(time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, string(key))
	return nil
}

func (m *memory) SetExpiry(expiry time.Duration) {
	m.expiry = expiry
}

func (m *memory) Close() error {
	close(m.stop)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil

	return nil
}

func (m *memory) Destroy() error {
	return nil
}
