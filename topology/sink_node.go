package topology

import (
	"github.com/tryfix/ktopology/encoding"
)

// SinkNode receives records from its parents and writes them to a topic.
type SinkNode struct {
	name       string
	topic      string
	keyEncoder encoding.Builder
	valEncoder encoding.Builder
	childs     []Node
}

func (n *SinkNode) Name() string {
	return n.name
}

func (n *SinkNode) Type() Type {
	return TypeSink
}

func (n *SinkNode) Childs() []Node {
	return n.childs
}

func (n *SinkNode) AddChild(node Node) {
	n.childs = append(n.childs, node)
}

func (n *SinkNode) Topic() string {
	return n.topic
}

// KeyEncoder returns the encoder builder for record keys, nil when the
// engine default applies.
func (n *SinkNode) KeyEncoder() encoding.Builder {
	return n.keyEncoder
}

// ValEncoder returns the encoder builder for record values, nil when the
// engine default applies.
func (n *SinkNode) ValEncoder() encoding.Builder {
	return n.valEncoder
}
