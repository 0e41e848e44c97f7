package topology

import (
	"github.com/tryfix/ktopology/encoding"
)

// SourceNode consumes one or more topics and forwards records to its
// child nodes.
type SourceNode struct {
	name       string
	topics     []string
	keyDecoder encoding.Builder
	valDecoder encoding.Builder
	childs     []Node
}

func (n *SourceNode) Name() string {
	return n.name
}

func (n *SourceNode) Type() Type {
	return TypeSource
}

func (n *SourceNode) Childs() []Node {
	return n.childs
}

func (n *SourceNode) AddChild(node Node) {
	n.childs = append(n.childs, node)
}

func (n *SourceNode) Topics() []string {
	topics := make([]string, len(n.topics))
	copy(topics, n.topics)

	return topics
}

// KeyDecoder returns the decoder builder for record keys, nil when the
// engine default applies.
func (n *SourceNode) KeyDecoder() encoding.Builder {
	return n.keyDecoder
}

// ValDecoder returns the decoder builder for record values, nil when the
// engine default applies.
func (n *SourceNode) ValDecoder() encoding.Builder {
	return n.valDecoder
}
