/**
 * Copyright 2020 TryFix Engineering.
 * All rights reserved.
 * Authors:
 *    Gayan Yapa (gmbyapa@gmail.com)
 */

package topology

import (
	"context"
)

type Type string

const (
	TypeSource    Type = `source`
	TypeProcessor Type = `processor`
	TypeSink      Type = `sink`
)

// Node is a single vertex of a materialized topology. Parent to child
// links are wired during Build; the builder itself never runs a node.
type Node interface {
	Name() string
	Type() Type
	Childs() []Node
	AddChild(node Node)
}

// Processor is the per-record execution contract of a processor node.
// This package only carries Processor instances from supplier to
// topology; running them is the execution engine's concern.
type Processor interface {
	Run(ctx context.Context, kIn, vIn interface{}) (kOut, vOut interface{}, err error)
}

// ProcessorSupplier produces one Processor instance. It is called exactly
// once per processor node on every Build.
type ProcessorSupplier func() Processor
