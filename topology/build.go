/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package topology

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tryfix/ktopology/store"
)

// Build materializes the whole topology: every registered node,
// instantiated and wired parent to child.
func (b *Builder) Build() (*Topology, error) {
	return b.build(nil)
}

// BuildGroup materializes the nodes of a single task group. A group id
// unknown to NodeGroups yields an empty topology.
func (b *Builder) BuildGroup(groupID int) (*Topology, error) {
	if b.nodeGroups == nil {
		b.nodeGroups = b.makeNodeGroups()
	}

	nodeGroup := make(map[string]bool)
	for _, name := range b.nodeGroups[groupID] {
		nodeGroup[name] = true
	}

	return b.build(nodeGroup)
}

// build runs a single linear pass over the insertion-ordered factories.
// Insertion order is a valid topological order (parents must exist at
// insertion time), so every parent is already instantiated when its
// child links to it. A nil nodeGroup includes every node.
func (b *Builder) build(nodeGroup map[string]bool) (t *Topology, err error) {
	defer func() {
		if r := recover(); r != nil {
			// unreachable with a validated builder; reaching it means a
			// registry invariant is broken
			t = nil
			err = fmt.Errorf(`%w: %v`, ErrNodeConstruction, r)
		}
	}()

	begin := time.Now()

	nodes := make([]Node, 0, len(b.nodeOrder))
	nodesByName := make(map[string]Node, len(b.nodeOrder))
	sourcesByTopic := make(map[string]*SourceNode)

	var storeSuppliers []store.Supplier
	collectedStores := make(map[string]bool)

	for _, name := range b.nodeOrder {
		if nodeGroup != nil && !nodeGroup[name] {
			continue
		}

		factory := b.nodeFactories[name]
		node := factory.build()
		nodes = append(nodes, node)
		nodesByName[name] = node

		switch f := factory.(type) {
		case *sourceNodeFactory:
			for _, topic := range f.topics {
				sourcesByTopic[topic] = node.(*SourceNode)
			}

		case *processorNodeFactory:
			for _, parent := range f.parents {
				nodesByName[parent].AddChild(node)
			}
			for _, storeName := range f.stateStores {
				if !collectedStores[storeName] {
					collectedStores[storeName] = true
					storeSuppliers = append(storeSuppliers, b.stateStores[storeName])
				}
			}

		case *sinkNodeFactory:
			for _, parent := range f.parents {
				nodesByName[parent].AddChild(node)
			}

		default:
			panic(fmt.Sprintf(`unknown node factory [%T]`, factory))
		}
	}

	topology := &Topology{
		id:             uuid.New().String(),
		nodes:          nodes,
		sourcesByTopic: sourcesByTopic,
		stateStores:    storeSuppliers,
	}

	b.metrics.buildLatency.Observe(float64(time.Since(begin).Nanoseconds()/1e3), nil)
	b.logger.Debug(fmt.Sprintf(`built %s`, topology))

	return topology, nil
}
