/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package topology

import (
	"fmt"

	"github.com/tryfix/ktopology/encoding"
	"github.com/tryfix/ktopology/store"
	"github.com/tryfix/log"
	"github.com/tryfix/metrics"
)

type BuilderConfig struct {
	Logger          log.Logger
	MetricsReporter metrics.Reporter
}

func NewBuilderConfig() *BuilderConfig {
	conf := new(BuilderConfig)
	conf.parse()

	return conf
}

func (c *BuilderConfig) parse() {
	if c.Logger == nil {
		c.Logger = log.NewNoopLogger()
	}

	if c.MetricsReporter == nil {
		c.MetricsReporter = metrics.NoopReporter()
	}
}

// Builder assembles an acyclic graph of source, processor and sink nodes
// and partitions it into task groups. It is a configuration-time object:
// populate it fully on a single goroutine, then hand it over. Group
// computation is memoized on first use and is not invalidated by later
// mutation, so querying groups before the specification is complete is a
// caller error.
type Builder struct {
	nodeFactories map[string]nodeFactory
	nodeOrder     []string // insertion order, a valid topological order

	sourceTopicNames map[string]bool
	nodeToTopics     map[string][]string

	nodeGrouper             Grouper
	nodeGroups              map[int][]string // memoized by NodeGroups
	copartitionSourceGroups [][]string

	stateStores     map[string]store.Supplier
	stateStoreUsers map[string][]string

	logger  log.Logger
	metrics struct {
		nodesRegistered metrics.Counter
		buildLatency    metrics.Observer
	}
}

func NewBuilder(config *BuilderConfig) *Builder {
	config.parse()

	b := &Builder{
		nodeFactories:    make(map[string]nodeFactory),
		sourceTopicNames: make(map[string]bool),
		nodeToTopics:     make(map[string][]string),
		nodeGrouper:      newQuickUnion(),
		stateStores:      make(map[string]store.Supplier),
		stateStoreUsers:  make(map[string][]string),
		logger:           config.Logger.NewLog(log.Prefixed(`topology-builder`)),
	}

	b.metrics.nodesRegistered = config.MetricsReporter.Counter(metrics.MetricConf{
		Path:   `topology_builder_nodes_registered`,
		Labels: []string{`type`},
	})
	b.metrics.buildLatency = config.MetricsReporter.Observer(metrics.MetricConf{
		Path: `topology_builder_build_latency_microseconds`,
	})

	return b
}

type SourceOption func(*sourceNodeFactory)

// WithKeyDecoder overrides the engine default key decoder of a source.
func WithKeyDecoder(builder encoding.Builder) SourceOption {
	return func(f *sourceNodeFactory) {
		f.keyDecoder = builder
	}
}

// WithValDecoder overrides the engine default value decoder of a source.
func WithValDecoder(builder encoding.Builder) SourceOption {
	return func(f *sourceNodeFactory) {
		f.valDecoder = builder
	}
}

type SinkOption func(*sinkNodeFactory)

// WithKeyEncoder overrides the engine default key encoder of a sink.
func WithKeyEncoder(builder encoding.Builder) SinkOption {
	return func(f *sinkNodeFactory) {
		f.keyEncoder = builder
	}
}

// WithValEncoder overrides the engine default value encoder of a sink.
func WithValEncoder(builder encoding.Builder) SinkOption {
	return func(f *sinkNodeFactory) {
		f.valEncoder = builder
	}
}

// AddSource registers a source node consuming the given topics. A topic
// can only ever be claimed by one source across the builder.
func (b *Builder) AddSource(name string, topics []string, options ...SourceOption) error {
	if _, ok := b.nodeFactories[name]; ok {
		return fmt.Errorf(`node [%s]: %w`, name, ErrNodeAlreadyExists)
	}

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		if b.sourceTopicNames[topic] || seen[topic] {
			return fmt.Errorf(`topic [%s]: %w`, topic, ErrTopicAlreadyRegistered)
		}
		seen[topic] = true
	}

	factory := &sourceNodeFactory{
		nodeName: name,
		topics:   append([]string(nil), topics...),
	}
	for _, opt := range options {
		opt(factory)
	}

	b.nodeFactories[name] = factory
	b.nodeOrder = append(b.nodeOrder, name)
	for _, topic := range topics {
		b.sourceTopicNames[topic] = true
	}
	b.nodeToTopics[name] = factory.topics
	b.nodeGrouper.Add(name)

	b.metrics.nodesRegistered.Count(1, map[string]string{`type`: string(TypeSource)})
	b.logger.Debug(fmt.Sprintf(`source [%s] registered for topics %v`, name, topics))

	return nil
}

// AddProcessor registers a processor node downstream of the given
// parents. The processor and its parents always end up in the same task
// group.
func (b *Builder) AddProcessor(name string, supplier ProcessorSupplier, parents []string) error {
	if err := b.validateNode(name, parents); err != nil {
		return err
	}

	b.nodeFactories[name] = &processorNodeFactory{
		nodeName: name,
		parents:  append([]string(nil), parents...),
		supplier: supplier,
	}
	b.nodeOrder = append(b.nodeOrder, name)
	b.nodeGrouper.Add(name)
	b.nodeGrouper.Unite(name, parents...)

	b.metrics.nodesRegistered.Count(1, map[string]string{`type`: string(TypeProcessor)})
	b.logger.Debug(fmt.Sprintf(`processor [%s] registered with parents %v`, name, parents))

	return nil
}

// AddSink registers a sink node writing to the given topic.
func (b *Builder) AddSink(name string, topic string, parents []string, options ...SinkOption) error {
	if err := b.validateNode(name, parents); err != nil {
		return err
	}

	factory := &sinkNodeFactory{
		nodeName: name,
		parents:  append([]string(nil), parents...),
		topic:    topic,
	}
	for _, opt := range options {
		opt(factory)
	}

	b.nodeFactories[name] = factory
	b.nodeOrder = append(b.nodeOrder, name)
	b.nodeGrouper.Add(name)
	b.nodeGrouper.Unite(name, parents...)

	b.metrics.nodesRegistered.Count(1, map[string]string{`type`: string(TypeSink)})
	b.logger.Debug(fmt.Sprintf(`sink [%s] registered on topic [%s] with parents %v`, name, topic, parents))

	return nil
}

// validateNode checks name and parent invariants without mutating the
// builder, so a failed add registers nothing.
func (b *Builder) validateNode(name string, parents []string) error {
	if _, ok := b.nodeFactories[name]; ok {
		return fmt.Errorf(`node [%s]: %w`, name, ErrNodeAlreadyExists)
	}

	for _, parent := range parents {
		if parent == name {
			return fmt.Errorf(`node [%s]: %w`, name, ErrSelfParent)
		}
		if _, ok := b.nodeFactories[parent]; !ok {
			return fmt.Errorf(`node [%s] parent [%s]: %w`, name, parent, ErrUnknownParent)
		}
	}

	return nil
}

// AddStateStore registers a state store supplier and connects it to the
// named processors.
func (b *Builder) AddStateStore(supplier store.Supplier, processorNames ...string) error {
	storeName := supplier.Name()
	if _, ok := b.stateStores[storeName]; ok {
		return fmt.Errorf(`state store [%s]: %w`, storeName, ErrStateStoreAlreadyExists)
	}

	for _, processorName := range processorNames {
		if err := b.validateStoreUser(processorName); err != nil {
			return err
		}
	}

	b.stateStores[storeName] = supplier
	b.stateStoreUsers[storeName] = []string{}

	for _, processorName := range processorNames {
		b.connect(processorName, storeName)
	}

	b.logger.Debug(fmt.Sprintf(`state store [%s] registered with processors %v`, storeName, processorNames))

	return nil
}

// ConnectProcessorAndStateStores connects a registered processor to the
// named state stores.
func (b *Builder) ConnectProcessorAndStateStores(processorName string, stateStoreNames ...string) error {
	for _, storeName := range stateStoreNames {
		if _, ok := b.stateStores[storeName]; !ok {
			return fmt.Errorf(`state store [%s]: %w`, storeName, ErrUnknownStateStore)
		}
		if err := b.validateStoreUser(processorName); err != nil {
			return err
		}
	}

	for _, storeName := range stateStoreNames {
		b.connect(processorName, storeName)
	}

	return nil
}

func (b *Builder) validateStoreUser(processorName string) error {
	factory, ok := b.nodeFactories[processorName]
	if !ok {
		return fmt.Errorf(`processor [%s]: %w`, processorName, ErrUnknownProcessor)
	}

	if _, ok := factory.(*processorNodeFactory); !ok {
		return fmt.Errorf(`node [%s]: %w`, processorName, ErrNotAProcessor)
	}

	return nil
}

// connect assumes the store and the processor are both validated.
// Processors sharing a store keep mutable local state in common, so the
// new user is united with the store's first user in the grouper.
func (b *Builder) connect(processorName string, storeName string) {
	users := b.stateStoreUsers[storeName]
	if len(users) > 0 {
		b.nodeGrouper.Unite(users[0], processorName)
	}
	if !contains(users, processorName) {
		b.stateStoreUsers[storeName] = append(users, processorName)
	}

	factory := b.nodeFactories[processorName].(*processorNodeFactory)
	if !contains(factory.stateStores, storeName) {
		factory.stateStores = append(factory.stateStores, storeName)
	}
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}

	return false
}
