/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package topology

import (
	"fmt"

	"github.com/tryfix/ktopology/store"
)

// Topology is a materialized, runnable processing graph. It is created
// fresh on every Build call, shares no mutable state with the Builder
// and is owned exclusively by the caller.
type Topology struct {
	id             string
	nodes          []Node
	sourcesByTopic map[string]*SourceNode
	stateStores    []store.Supplier
}

// ID identifies this materialization, unique per Build call.
func (t *Topology) ID() string {
	return t.id
}

// Nodes returns the instantiated nodes in topological order.
func (t *Topology) Nodes() []Node {
	nodes := make([]Node, len(t.nodes))
	copy(nodes, t.nodes)

	return nodes
}

// SourceByTopic returns the source node owning the given topic.
func (t *Topology) SourceByTopic(topic string) (*SourceNode, bool) {
	source, ok := t.sourcesByTopic[topic]
	return source, ok
}

// Sources returns the topic to source node mapping.
func (t *Topology) Sources() map[string]*SourceNode {
	sources := make(map[string]*SourceNode, len(t.sourcesByTopic))
	for topic, source := range t.sourcesByTopic {
		sources[topic] = source
	}

	return sources
}

// StateStores returns the store suppliers referenced by the processors in
// this topology, deduplicated by store name.
func (t *Topology) StateStores() []store.Supplier {
	stores := make([]store.Supplier, len(t.stateStores))
	copy(stores, t.stateStores)

	return stores
}

func (t *Topology) String() string {
	return fmt.Sprintf(`topology [%s] nodes: %d sources: %d stores: %d`,
		t.id, len(t.nodes), len(t.sourcesByTopic), len(t.stateStores))
}
