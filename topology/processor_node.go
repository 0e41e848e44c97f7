package topology

// ProcessorNode receives records from its parents, processes them through
// its Processor instance and forwards results to its child nodes.
type ProcessorNode struct {
	name        string
	processor   Processor
	stateStores []string
	childs      []Node
}

func (n *ProcessorNode) Name() string {
	return n.name
}

func (n *ProcessorNode) Type() Type {
	return TypeProcessor
}

func (n *ProcessorNode) Childs() []Node {
	return n.childs
}

func (n *ProcessorNode) AddChild(node Node) {
	n.childs = append(n.childs, node)
}

func (n *ProcessorNode) Processor() Processor {
	return n.processor
}

// StateStores returns the names of the state stores this node is
// connected to.
func (n *ProcessorNode) StateStores() []string {
	stores := make([]string, len(n.stateStores))
	copy(stores, n.stateStores)

	return stores
}
