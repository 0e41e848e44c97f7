package topology

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tryfix/ktopology/store"
)

type mockProcessor struct{}

func (mockProcessor) Run(ctx context.Context, kIn, vIn interface{}) (interface{}, interface{}, error) {
	return kIn, vIn, nil
}

func mockSupplier() Processor {
	return mockProcessor{}
}

type mockStoreSupplier struct {
	storeName string
}

func (s mockStoreSupplier) Name() string {
	return s.storeName
}

func (s mockStoreSupplier) Build() (store.Store, error) {
	return nil, nil
}

func TestBuilder_AddSource_Duplicate_Name(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}

	err := b.AddSource(`source`, []string{`topic_2`})
	if !errors.Is(err, ErrNodeAlreadyExists) {
		t.Errorf(`expected ErrNodeAlreadyExists, got %v`, err)
	}

	if len(b.Describe()) != 1 {
		t.Errorf(`failed add must not register the node`)
	}
}

func TestBuilder_AddSource_Duplicate_Topic(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_1`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}

	err := b.AddSource(`source_2`, []string{`topic_2`, `topic_1`})
	if !errors.Is(err, ErrTopicAlreadyRegistered) {
		t.Errorf(`expected ErrTopicAlreadyRegistered, got %v`, err)
	}

	// the failed add must not claim topic_2 either
	if !reflect.DeepEqual(b.SourceTopics(), []string{`topic_1`}) {
		t.Errorf(`unexpected source topics %v`, b.SourceTopics())
	}
}

func TestBuilder_AddProcessor_Self_Parent(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	err := b.AddProcessor(`processor`, mockSupplier, []string{`processor`})
	if !errors.Is(err, ErrSelfParent) {
		t.Errorf(`expected ErrSelfParent, got %v`, err)
	}
}

func TestBuilder_AddProcessor_Unknown_Parent(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	err := b.AddProcessor(`processor`, mockSupplier, []string{`missing`})
	if !errors.Is(err, ErrUnknownParent) {
		t.Errorf(`expected ErrUnknownParent, got %v`, err)
	}

	if len(b.Describe()) != 0 {
		t.Errorf(`failed add must not register the node`)
	}
}

func TestBuilder_AddSink_Validations(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}

	if err := b.AddSink(`source`, `topic_out`, []string{`source`}); !errors.Is(err, ErrNodeAlreadyExists) {
		t.Errorf(`expected ErrNodeAlreadyExists, got %v`, err)
	}

	if err := b.AddSink(`sink`, `topic_out`, []string{`sink`}); !errors.Is(err, ErrSelfParent) {
		t.Errorf(`expected ErrSelfParent, got %v`, err)
	}

	if err := b.AddSink(`sink`, `topic_out`, []string{`missing`}); !errors.Is(err, ErrUnknownParent) {
		t.Errorf(`expected ErrUnknownParent, got %v`, err)
	}

	if err := b.AddSink(`sink`, `topic_out`, []string{`source`}); err != nil {
		t.Error(err)
	}
}

func TestBuilder_AddStateStore_Duplicate(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddStateStore(mockStoreSupplier{`store`}); err != nil {
		t.Error(err)
		return
	}

	err := b.AddStateStore(mockStoreSupplier{`store`})
	if !errors.Is(err, ErrStateStoreAlreadyExists) {
		t.Errorf(`expected ErrStateStoreAlreadyExists, got %v`, err)
	}
}

func TestBuilder_Connect_Unknown_Store(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddProcessor(`processor`, mockSupplier, []string{`source`}); err != nil {
		t.Error(err)
		return
	}

	err := b.ConnectProcessorAndStateStores(`processor`, `missing`)
	if !errors.Is(err, ErrUnknownStateStore) {
		t.Errorf(`expected ErrUnknownStateStore, got %v`, err)
	}
}

func TestBuilder_Connect_Unknown_Processor(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddStateStore(mockStoreSupplier{`store`}); err != nil {
		t.Error(err)
		return
	}

	err := b.ConnectProcessorAndStateStores(`missing`, `store`)
	if !errors.Is(err, ErrUnknownProcessor) {
		t.Errorf(`expected ErrUnknownProcessor, got %v`, err)
	}
}

func TestBuilder_Connect_Rejects_Sources_And_Sinks(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSink(`sink`, `topic_out`, []string{`source`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddStateStore(mockStoreSupplier{`store`}); err != nil {
		t.Error(err)
		return
	}

	if err := b.ConnectProcessorAndStateStores(`source`, `store`); !errors.Is(err, ErrNotAProcessor) {
		t.Errorf(`expected ErrNotAProcessor, got %v`, err)
	}

	if err := b.ConnectProcessorAndStateStores(`sink`, `store`); !errors.Is(err, ErrNotAProcessor) {
		t.Errorf(`expected ErrNotAProcessor, got %v`, err)
	}

	if err := b.AddStateStore(mockStoreSupplier{`store_2`}, `source`); !errors.Is(err, ErrNotAProcessor) {
		t.Errorf(`expected ErrNotAProcessor, got %v`, err)
	}
}

func TestBuilder_NodeGroups_Independent_Chains(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_a`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSource(`source_b`, []string{`topic_2`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddProcessor(`processor_a`, mockSupplier, []string{`source_a`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddProcessor(`processor_b`, mockSupplier, []string{`source_b`}); err != nil {
		t.Error(err)
		return
	}

	want := map[int][]string{
		0: {`processor_a`, `source_a`},
		1: {`processor_b`, `source_b`},
	}
	if !reflect.DeepEqual(b.NodeGroups(), want) {
		t.Errorf(`unexpected node groups %v`, b.NodeGroups())
	}

	wantTopics := map[int][]string{
		0: {`topic_1`},
		1: {`topic_2`},
	}
	if !reflect.DeepEqual(b.TopicGroups(), wantTopics) {
		t.Errorf(`unexpected topic groups %v`, b.TopicGroups())
	}
}

func TestBuilder_Shared_Store_Colocates_Processors(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_a`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSource(`source_b`, []string{`topic_2`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddProcessor(`processor_a`, mockSupplier, []string{`source_a`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddProcessor(`processor_b`, mockSupplier, []string{`source_b`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddStateStore(mockStoreSupplier{`shared_store`}, `processor_a`, `processor_b`); err != nil {
		t.Error(err)
		return
	}

	want := map[int][]string{
		0: {`processor_a`, `processor_b`, `source_a`, `source_b`},
	}
	if !reflect.DeepEqual(b.NodeGroups(), want) {
		t.Errorf(`unexpected node groups %v`, b.NodeGroups())
	}
}

func TestBuilder_NodeGroups_Deterministic(t *testing.T) {
	assemble := func(sourcesFirst bool) *Builder {
		b := NewBuilder(NewBuilderConfig())

		if sourcesFirst {
			_ = b.AddSource(`source_a`, []string{`topic_1`})
			_ = b.AddSource(`source_b`, []string{`topic_2`})
		} else {
			_ = b.AddSource(`source_b`, []string{`topic_2`})
			_ = b.AddSource(`source_a`, []string{`topic_1`})
		}
		_ = b.AddProcessor(`processor_a`, mockSupplier, []string{`source_a`})
		_ = b.AddProcessor(`processor_b`, mockSupplier, []string{`source_b`})

		return b
	}

	first := assemble(true)
	second := assemble(false)

	if !reflect.DeepEqual(first.NodeGroups(), second.NodeGroups()) {
		t.Errorf(`group assignment depends on add order: %v vs %v`,
			first.NodeGroups(), second.NodeGroups())
	}

	// repeated calls on one builder must agree as well
	if !reflect.DeepEqual(first.NodeGroups(), first.NodeGroups()) {
		t.Fail()
	}
}

func TestBuilder_NodeGroups_Memoized_Not_Invalidated(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_a`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}

	before := b.NodeGroups()

	// groups are computed once; later mutation is documented as not
	// reflected until a fresh builder is assembled
	if err := b.AddSource(`source_b`, []string{`topic_2`}); err != nil {
		t.Error(err)
		return
	}

	if !reflect.DeepEqual(b.NodeGroups(), before) {
		t.Errorf(`memoized groups must not change after mutation`)
	}
}

func TestBuilder_CopartitionGroups(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_a`, []string{`topic_1`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSource(`source_b`, []string{`topic_2`, `topic_3`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSource(`source_c`, []string{`topic_4`}); err != nil {
		t.Error(err)
		return
	}

	b.CopartitionSources([]string{`source_a`, `source_b`})
	b.CopartitionSources([]string{`source_c`})

	want := [][]string{
		{`topic_1`, `topic_2`, `topic_3`},
		{`topic_4`},
	}
	if !reflect.DeepEqual(b.CopartitionGroups(), want) {
		t.Errorf(`unexpected copartition groups %v`, b.CopartitionGroups())
	}
}

func TestBuilder_SourceTopics(t *testing.T) {
	b := NewBuilder(NewBuilderConfig())

	if err := b.AddSource(`source_b`, []string{`topic_2`}); err != nil {
		t.Error(err)
		return
	}
	if err := b.AddSource(`source_a`, []string{`topic_1`, `topic_3`}); err != nil {
		t.Error(err)
		return
	}

	if !reflect.DeepEqual(b.SourceTopics(), []string{`topic_1`, `topic_2`, `topic_3`}) {
		t.Errorf(`unexpected source topics %v`, b.SourceTopics())
	}
}
