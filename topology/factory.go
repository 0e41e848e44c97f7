package topology

import (
	"github.com/tryfix/ktopology/encoding"
)

// nodeFactory is the node specification held by the Builder. It is a
// closed set: sourceNodeFactory, processorNodeFactory and
// sinkNodeFactory are the only implementations, and build switches over
// them exhaustively.
type nodeFactory interface {
	name() string
	build() Node
}

type sourceNodeFactory struct {
	nodeName   string
	topics     []string
	keyDecoder encoding.Builder
	valDecoder encoding.Builder
}

func (f *sourceNodeFactory) name() string {
	return f.nodeName
}

func (f *sourceNodeFactory) build() Node {
	topics := make([]string, len(f.topics))
	copy(topics, f.topics)

	return &SourceNode{
		name:       f.nodeName,
		topics:     topics,
		keyDecoder: f.keyDecoder,
		valDecoder: f.valDecoder,
	}
}

type processorNodeFactory struct {
	nodeName    string
	parents     []string
	supplier    ProcessorSupplier
	stateStores []string
}

func (f *processorNodeFactory) name() string {
	return f.nodeName
}

func (f *processorNodeFactory) build() Node {
	stores := make([]string, len(f.stateStores))
	copy(stores, f.stateStores)

	return &ProcessorNode{
		name:        f.nodeName,
		processor:   f.supplier(),
		stateStores: stores,
	}
}

type sinkNodeFactory struct {
	nodeName   string
	parents    []string
	topic      string
	keyEncoder encoding.Builder
	valEncoder encoding.Builder
}

func (f *sinkNodeFactory) name() string {
	return f.nodeName
}

func (f *sinkNodeFactory) build() Node {
	return &SinkNode{
		name:       f.nodeName,
		topic:      f.topic,
		keyEncoder: f.keyEncoder,
		valEncoder: f.valEncoder,
	}
}
