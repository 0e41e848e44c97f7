package topology

import (
	"errors"
	"testing"
)

func assembleTestTopology(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_a`, []string{`topic_1`}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddSource(`source_b`, []string{`topic_2`}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddProcessor(`processor_a`, mockSupplier, []string{`source_a`}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddProcessor(`processor_b`, mockSupplier, []string{`source_b`}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddSink(`sink_a`, `topic_out`, []string{`processor_a`}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddStateStore(mockStoreSupplier{`store_a`}, `processor_a`); err != nil {
		t.Fatal(err)
	}
	if err := b.AddStateStore(mockStoreSupplier{`store_b`}, `processor_b`); err != nil {
		t.Fatal(err)
	}

	return b
}

func nodeByName(nodes []Node, name string) Node {
	for _, node := range nodes {
		if node.Name() == name {
			return node
		}
	}

	return nil
}

func hasChild(parent Node, child string) bool {
	for _, node := range parent.Childs() {
		if node.Name() == child {
			return true
		}
	}

	return false
}

func TestBuilder_Build_Whole_Topology(t *testing.T) {
	b := assembleTestTopology(t)

	topology, err := b.Build()
	if err != nil {
		t.Error(err)
		return
	}

	nodes := topology.Nodes()
	if len(nodes) != 5 {
		t.Errorf(`expected 5 nodes, got %d`, len(nodes))
	}

	for _, edge := range [][2]string{
		{`source_a`, `processor_a`},
		{`source_b`, `processor_b`},
		{`processor_a`, `sink_a`},
	} {
		parent := nodeByName(nodes, edge[0])
		if parent == nil {
			t.Errorf(`node [%s] missing`, edge[0])
			continue
		}
		if !hasChild(parent, edge[1]) {
			t.Errorf(`edge [%s]->[%s] missing`, edge[0], edge[1])
		}
	}

	if len(topology.StateStores()) != 2 {
		t.Errorf(`expected 2 store suppliers, got %d`, len(topology.StateStores()))
	}

	source, ok := topology.SourceByTopic(`topic_1`)
	if !ok || source.Name() != `source_a` {
		t.Errorf(`topic_1 should map to source_a`)
	}
}

func TestBuilder_BuildGroup_Scopes_Nodes_And_Stores(t *testing.T) {
	b := assembleTestTopology(t)

	// group 0 belongs to source_a's chain
	topology, err := b.BuildGroup(0)
	if err != nil {
		t.Error(err)
		return
	}

	nodes := topology.Nodes()
	if len(nodes) != 3 {
		t.Errorf(`expected 3 nodes, got %d`, len(nodes))
	}

	for _, name := range []string{`source_a`, `processor_a`, `sink_a`} {
		if nodeByName(nodes, name) == nil {
			t.Errorf(`node [%s] missing from group`, name)
		}
	}

	if nodeByName(nodes, `source_b`) != nil || nodeByName(nodes, `processor_b`) != nil {
		t.Errorf(`group must not contain nodes of other groups`)
	}

	stores := topology.StateStores()
	if len(stores) != 1 || stores[0].Name() != `store_a` {
		t.Errorf(`store suppliers must be limited to the group, got %v`, stores)
	}

	if _, ok := topology.SourceByTopic(`topic_2`); ok {
		t.Errorf(`topic_2 does not belong to this group`)
	}
}

func TestBuilder_BuildGroup_Unknown_Id_Yields_Empty_Topology(t *testing.T) {
	b := assembleTestTopology(t)

	topology, err := b.BuildGroup(99)
	if err != nil {
		t.Error(err)
		return
	}

	if len(topology.Nodes()) != 0 {
		t.Errorf(`expected an empty topology, got %d nodes`, len(topology.Nodes()))
	}

	if len(topology.StateStores()) != 0 {
		t.Fail()
	}
}

func TestBuilder_Build_Returns_Independent_Instances(t *testing.T) {
	b := assembleTestTopology(t)

	first, err := b.Build()
	if err != nil {
		t.Error(err)
		return
	}

	second, err := b.Build()
	if err != nil {
		t.Error(err)
		return
	}

	if first.ID() == second.ID() {
		t.Errorf(`each build must produce a distinct topology instance`)
	}

	if nodeByName(first.Nodes(), `processor_a`) == nodeByName(second.Nodes(), `processor_a`) {
		t.Errorf(`builds must not share node instances`)
	}
}

func TestBuilder_Build_Wraps_Construction_Failures(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source`, []string{`topic_1`}); err != nil {
		t.Fatal(err)
	}

	panicking := func() Processor {
		panic(`supplier blew up`)
	}
	if err := b.AddProcessor(`processor`, panicking, []string{`source`}); err != nil {
		t.Fatal(err)
	}

	_, err := b.Build()
	if !errors.Is(err, ErrNodeConstruction) {
		t.Errorf(`expected ErrNodeConstruction, got %v`, err)
	}
}

func BenchmarkBuilder_Build(b *testing.B) {
	builder := NewBuilder(NewBuilderConfig())

	if err := builder.AddSource(`source`, []string{`topic_1`}); err != nil {
		b.Fatal(err)
	}
	if err := builder.AddProcessor(`processor`, mockSupplier, []string{`source`}); err != nil {
		b.Fatal(err)
	}
	if err := builder.AddSink(`sink`, `topic_out`, []string{`processor`}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Build(); err != nil {
			b.Fatal(err)
		}
	}
}
